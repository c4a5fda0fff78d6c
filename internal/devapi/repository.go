// Package devapi is a self-contained GraphQL backend for local development.
// It answers the twelve operations the client sends, keeps accounts and
// reading state in memory or MongoDB, and logs verification tokens instead
// of mailing them.
package devapi

import (
	"context"
	"errors"
	"time"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

var (
	ErrAccountExists      = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("an email and a password of at least 6 characters are required")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnknownArticle     = errors.New("unknown article")
)

// Account is a registered user as the backend stores it.
type Account struct {
	ID                string
	Email             string
	Name              string
	PasswordHash      string
	EmailVerified     bool
	VerificationToken string
	Preferences       domain.Preferences
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Identity is the account as the client sees it.
func (a *Account) Identity() domain.Identity {
	return domain.Identity{
		ID:            a.ID,
		Email:         a.Email,
		Name:          a.Name,
		EmailVerified: a.EmailVerified,
		Preferences:   a.Preferences.Normalize(),
	}
}

// ReadingState is the per-account saved and read article sets.
type ReadingState struct {
	Saved []string
	Read  []string
}

func (r ReadingState) IsSaved(id string) bool { return contains(r.Saved, id) }
func (r ReadingState) IsRead(id string) bool  { return contains(r.Read, id) }

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByVerificationToken(ctx context.Context, token string) (*Account, error)
	Update(ctx context.Context, account *Account) error
}

// ArticleRepository holds the shared catalogue. Saved and read flags on the
// stored articles are ignored; they come from ReadingStateRepository.
type ArticleRepository interface {
	List(ctx context.Context) ([]domain.Article, error)
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	Upsert(ctx context.Context, article domain.Article) error
}

type ReadingStateRepository interface {
	Get(ctx context.Context, accountID string) (ReadingState, error)
	SetSaved(ctx context.Context, accountID, articleID string, saved bool) error
	MarkRead(ctx context.Context, accountID, articleID string) error
}
