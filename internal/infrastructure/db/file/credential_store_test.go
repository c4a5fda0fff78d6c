package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

func TestStateDir_EnvVar(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")
	if got, want := StateDir(), "/custom/state/newsreader"; got != want {
		t.Errorf("StateDir() = %q, want %q", got, want)
	}
}

func TestStateDir_Default(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", "/home/testuser")
	if got, want := StateDir(), "/home/testuser/.local/state/newsreader"; got != want {
		t.Errorf("StateDir() = %q, want %q", got, want)
	}
}

func TestCredentialStore_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	store := NewCredentialStore(dir)
	ctx := context.Background()

	if _, err := store.Load(ctx); err != domain.ErrNoCredential {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
	if err := store.Save(ctx, "T"); err != nil {
		t.Fatalf("save: %v", err)
	}

	info, err := os.Stat(store.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("credential file mode = %o, want 600", perm)
	}

	got, err := store.Load(ctx)
	if err != nil || got != "T" {
		t.Fatalf("load = %q, %v; want T", got, err)
	}

	if err := store.Save(ctx, "U"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _ := store.Load(ctx); got != "U" {
		t.Fatalf("expected U after overwrite, got %q", got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the credential file, found %d entries", len(entries))
	}
}

func TestCredentialStore_Clear(t *testing.T) {
	store := NewCredentialStore(t.TempDir())
	ctx := context.Background()

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear on empty store: %v", err)
	}
	_ = store.Save(ctx, "T")
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Load(ctx); err != domain.ErrNoCredential {
		t.Fatalf("expected ErrNoCredential after clear, got %v", err)
	}
}

func TestCredentialStore_EmptyFileIsNoCredential(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, CredentialFile), nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewCredentialStore(dir).Load(context.Background()); err != domain.ErrNoCredential {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}

func TestCredentialStore_LoadIsVerbatim(t *testing.T) {
	store := NewCredentialStore(t.TempDir())
	ctx := context.Background()

	for _, credential := range []string{" T ", "T\n", "  \n"} {
		if err := store.Save(ctx, credential); err != nil {
			t.Fatalf("save %q: %v", credential, err)
		}
		got, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("load %q: %v", credential, err)
		}
		if got != credential {
			t.Fatalf("load = %q, want %q", got, credential)
		}
	}
}
