package terminal

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

var stdin = bufio.NewReader(os.Stdin)

// ReadLine prompts for a single line of input and returns it trimmed.
// ok is false when stdin is closed, so callers can stop looping.
func ReadLine(label string) (line string, ok bool) {
	fmt.Printf("%s%s%s ", Bold, label, Reset)
	raw, err := stdin.ReadString('\n')
	if err != nil && raw == "" {
		return "", false
	}
	return strings.TrimSpace(raw), true
}

// ReadSecret prompts for a credential without echoing it. When stdin is
// not a terminal (tests, pipes) it falls back to a plain line read.
func ReadSecret(label string) string {
	fmt.Printf("%s%s%s ", Bold, label, Reset)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, _ := stdin.ReadString('\n')
		return strings.TrimSpace(line)
	}
	data, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Confirm asks a yes/no question. Empty input means yes; closed stdin
// means no.
func Confirm(label string) bool {
	answer, ok := ReadLine(label + " [Y/n]")
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "" || answer == "y" || answer == "yes"
}
