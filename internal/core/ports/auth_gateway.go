package ports

import (
	"context"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

// AuthGateway is the typed view of the authentication operations of the remote API.
type AuthGateway interface {
	// CurrentIdentity resolves the identity behind credential. A nil identity
	// with a nil error means the server does not recognise the credential.
	CurrentIdentity(ctx context.Context, credential string) (*domain.Identity, error)
	Login(ctx context.Context, email, password string) (string, *domain.Identity, error)
	Register(ctx context.Context, email, password, name string) error
	VerifyEmail(ctx context.Context, token string) error
	SendVerificationEmail(ctx context.Context, email, credential string) error
}
