package ports

import (
	"context"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

// LoginInput carries the login form.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"required"`
}

// SessionService owns the process-wide session state. Transitions never
// return errors: failures are reported through the state's Error field and
// the notifier, and the returned snapshot is always settled.
type SessionService interface {
	State() domain.SessionState
	Subscribe(fn func(domain.SessionState)) (unsubscribe func())

	Restore(ctx context.Context) domain.SessionState
	Login(ctx context.Context, in LoginInput) domain.SessionState
	Register(ctx context.Context, in RegisterInput) domain.SessionState
	Logout(ctx context.Context) domain.SessionState
	VerifyEmail(ctx context.Context, token string) domain.SessionState
	SendVerificationEmail(ctx context.Context) domain.SessionState
}
