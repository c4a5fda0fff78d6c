// Package file persists the session credential in a file under the user's
// XDG state directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

const (
	appName = "newsreader"
	// CredentialFile is the fixed name the credential is stored under.
	CredentialFile = "authToken"
)

// StateDir returns the XDG state directory for the news reader.
// Checks XDG_STATE_HOME first, falls back to ~/.local/state.
func StateDir() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".local", "state")
	}
	return filepath.Join(base, appName)
}

// CredentialStore keeps the credential in <dir>/authToken with 0600
// permissions. Writes go through a temp file and a rename.
type CredentialStore struct {
	dir string
}

// NewCredentialStore returns a store rooted at dir, or at StateDir when dir
// is empty.
func NewCredentialStore(dir string) *CredentialStore {
	if dir == "" {
		dir = StateDir()
	}
	return &CredentialStore{dir: dir}
}

// Path returns the credential file location.
func (s *CredentialStore) Path() string {
	return filepath.Join(s.dir, CredentialFile)
}

func (s *CredentialStore) Save(_ context.Context, credential string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create state directory %s: %w", s.dir, err)
	}

	tmp, err := os.CreateTemp(s.dir, CredentialFile+".*")
	if err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save credential: %w", err)
	}
	if _, err := tmp.WriteString(credential); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save credential: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (s *CredentialStore) Load(_ context.Context) (string, error) {
	b, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return "", domain.ErrNoCredential
	}
	if err != nil {
		return "", fmt.Errorf("load credential: %w", err)
	}
	if len(b) == 0 {
		return "", domain.ErrNoCredential
	}
	return string(b), nil
}

func (s *CredentialStore) Clear(_ context.Context) error {
	if err := os.Remove(s.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}
