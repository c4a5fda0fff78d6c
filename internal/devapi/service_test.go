package devapi

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

func newTestService(t *testing.T) (*Service, *MemoryAccounts) {
	t.Helper()
	accounts := NewMemoryAccounts()
	svc := NewService(accounts, NewMemoryArticles(), NewMemoryReadingState(), "test-secret", time.Hour, zerolog.Nop())
	svc.hashCost = bcrypt.MinCost
	require.NoError(t, svc.Seed(context.Background(), "demo@example.com", "password123"))
	return svc, accounts
}

func TestService_RegisterLoginVerify(t *testing.T) {
	ctx := context.Background()
	svc, accounts := newTestService(t)

	_, err := svc.Register(ctx, " Ada@Example.com ", "secret1", "Ada")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "ada@example.com", "secret1", "Ada")
	assert.ErrorIs(t, err, ErrAccountExists)

	_, err = svc.Register(ctx, "bob@example.com", "123", "Bob")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = svc.Login(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, account, err := svc.Login(ctx, "ADA@example.com", "secret1")
	require.NoError(t, err)
	assert.False(t, account.EmailVerified)

	resolved, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, resolved.ID)

	stored, err := accounts.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, stored.VerificationToken)

	verified, err := svc.VerifyEmail(ctx, stored.VerificationToken)
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)

	_, err = svc.VerifyEmail(ctx, stored.VerificationToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "tokens are single use")
}

func TestService_AuthenticateRejectsForeignTokens(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Authenticate(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewService(NewMemoryAccounts(), NewMemoryArticles(), NewMemoryReadingState(), "other-secret", time.Hour, zerolog.Nop())
	other.hashCost = bcrypt.MinCost
	_, err = other.Register(ctx, "eve@example.com", "secret1", "Eve")
	require.NoError(t, err)
	token, _, err := other.Login(ctx, "eve@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_SendVerificationRotatesToken(t *testing.T) {
	ctx := context.Background()
	svc, accounts := newTestService(t)

	_, err := svc.Register(ctx, "ada@example.com", "secret1", "Ada")
	require.NoError(t, err)
	before, _ := accounts.FindByEmail(ctx, "ada@example.com")

	require.NoError(t, svc.SendVerification(ctx, "ada@example.com"))
	after, _ := accounts.FindByEmail(ctx, "ada@example.com")
	assert.NotEqual(t, before.VerificationToken, after.VerificationToken)

	assert.ErrorIs(t, svc.SendVerification(ctx, "nobody@example.com"), ErrAccountNotFound)
}

func TestService_DemoAccountFeed(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, account, err := svc.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)
	assert.True(t, account.EmailVerified)
	assert.Equal(t, []string{"Technology", "Health", "Science"}, account.Preferences.Topics)

	articles, err := svc.Articles(ctx, account)
	require.NoError(t, err)
	require.Len(t, articles, 6)
	assert.Equal(t, "1", articles[0].ID, "newest first")

	stats, err := svc.Stats(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, domain.DashboardStats{
		TotalArticles:      6,
		ReadArticles:       2,
		SavedArticles:      2,
		SentimentBreakdown: domain.SentimentBreakdown{Positive: 3, Neutral: 1, Negative: 2},
	}, *stats)

	require.NoError(t, svc.SetSaved(ctx, account, "1", true))
	require.NoError(t, svc.SetSaved(ctx, account, "2", false))
	require.NoError(t, svc.MarkRead(ctx, account, "3"))
	assert.ErrorIs(t, svc.MarkRead(ctx, account, "99"), ErrUnknownArticle)

	a, err := svc.Article(ctx, account, "1")
	require.NoError(t, err)
	assert.True(t, a.IsSaved)

	a, err = svc.Article(ctx, account, "2")
	require.NoError(t, err)
	assert.False(t, a.IsSaved)
	assert.True(t, a.IsRead)
}

func TestService_SeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, account, err := svc.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, svc.Seed(ctx, "demo@example.com", "password123"))

	_, again, err := svc.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, account.ID, again.ID)
}

func TestService_UpdatePreferencesNormalizes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	_, account, err := svc.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)

	updated, err := svc.UpdatePreferences(ctx, account, domain.Preferences{
		Topics:   []string{" AI ", "AI", ""},
		Keywords: []string{"chips"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"AI"}, updated.Preferences.Topics)
	assert.Equal(t, []string{}, updated.Preferences.Sources)
}
