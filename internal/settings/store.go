// Package settings persists the promptship credential record.
// The record is a single flat JSON file, overwritten wholesale on save.
// Token fields are kept in the OS keychain (or a file fallback) and
// replaced with "secret:<key>" references in the JSON file.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/promptship/promptship/internal/settings/secrets"
)

// storeFile is the filename for the persisted settings record.
const storeFile = "settings.json"

// secretRefPrefix marks a token field as a reference to a secret store key.
const secretRefPrefix = "secret:"

// Settings is the flat credential record.
type Settings struct {
	// GeminiKey authenticates generation calls.
	GeminiKey string `json:"gemini_key,omitempty"`
	// GitHubToken authenticates repository provisioning.
	GitHubToken string `json:"github_token,omitempty"`
	// VercelToken authenticates hosting registration. Optional.
	VercelToken string `json:"vercel_token,omitempty"`
	// GitHubLogin is the account login resolved by token verification.
	GitHubLogin string `json:"github_login,omitempty"`
}

// HasCredentials reports whether the two required credentials are present.
func (s Settings) HasCredentials() bool {
	return s.GeminiKey != "" && s.GitHubToken != ""
}

// Store persists Settings to <dir>/settings.json.
type Store struct {
	mu      sync.Mutex
	dir     string
	secrets secrets.Store
}

// NewStore creates a store rooted at the given directory, using the best
// available secret backend (OS keychain or file fallback).
func NewStore(dir string) *Store {
	return &Store{dir: dir, secrets: secrets.New(dir)}
}

// NewStoreWithSecrets creates a store with a custom secret store (for testing).
func NewStoreWithSecrets(dir string, ss secrets.Store) *Store {
	return &Store{dir: dir, secrets: ss}
}

// secretFields maps each token field to its secret store key.
func secretFields(s *Settings) map[string]*string {
	return map[string]*string{
		secrets.Key("gemini", "key"):   &s.GeminiKey,
		secrets.Key("github", "token"): &s.GitHubToken,
		secrets.Key("vercel", "token"): &s.VercelToken,
	}
}

// Load reads the settings record from disk. A missing file yields zero
// Settings without error. Secret references are resolved transparently;
// an unresolvable reference clears the field so callers see it as absent.
func (st *Store) Load() (Settings, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	var s Settings
	data, err := os.ReadFile(filepath.Join(st.dir, storeFile))
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}

	for _, field := range secretFields(&s) {
		if !strings.HasPrefix(*field, secretRefPrefix) {
			continue
		}
		key := strings.TrimPrefix(*field, secretRefPrefix)
		val, err := st.secrets.Get(key)
		if err != nil {
			*field = ""
			continue
		}
		*field = val
	}

	return s, nil
}

// Save writes the settings record to disk, overwriting any previous record.
// Raw token values are moved into the secret store first.
func (st *Store) Save(s Settings) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	for key, field := range secretFields(&s) {
		if *field == "" || strings.HasPrefix(*field, secretRefPrefix) {
			continue
		}
		if err := st.secrets.Set(key, *field); err != nil {
			return fmt.Errorf("failed to store credentials securely: %w", err)
		}
		*field = secretRefPrefix + key
	}

	if err := os.MkdirAll(st.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(st.dir, storeFile), data, 0o600)
}
