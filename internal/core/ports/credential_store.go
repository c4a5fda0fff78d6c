package ports

import "context"

// CredentialStore persists the bearer credential across process restarts
// under a single fixed key. Load returns domain.ErrNoCredential when nothing
// is stored.
type CredentialStore interface {
	Save(ctx context.Context, credential string) error
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}
