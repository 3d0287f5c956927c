package workflow

import (
	"sync"
	"time"
)

// Level tags a log entry for display.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// LogEntry is a single user-facing narration line. Entries are append-only
// and never mutated or removed.
type LogEntry struct {
	ID      int
	Time    time.Time
	Message string
	Level   Level
}

// Log is the append-only ordered sequence of entries for one session.
// An optional sink is invoked synchronously for each appended entry so the
// terminal can render the log panel as it grows.
type Log struct {
	mu      sync.Mutex
	entries []LogEntry
	nextID  int
	sink    func(LogEntry)
}

// NewLog creates an empty log. sink may be nil.
func NewLog(sink func(LogEntry)) *Log {
	return &Log{sink: sink}
}

// Append adds an entry and returns it.
func (l *Log) Append(level Level, message string) LogEntry {
	l.mu.Lock()
	l.nextID++
	e := LogEntry{
		ID:      l.nextID,
		Time:    time.Now(),
		Message: message,
		Level:   level,
	}
	l.entries = append(l.entries, e)
	sink := l.sink
	l.mu.Unlock()

	if sink != nil {
		sink(e)
	}
	return e
}

// Entries returns a copy of the full sequence in append order.
func (l *Log) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
