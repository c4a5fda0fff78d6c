package devapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

const minPasswordLength = 6

// Service implements accounts, credentials and the per-account feed.
type Service struct {
	accounts AccountRepository
	articles ArticleRepository
	reading  ReadingStateRepository

	jwtSecret []byte
	tokenTTL  time.Duration
	hashCost  int
	now       func() time.Time
	log       zerolog.Logger
}

func NewService(accounts AccountRepository, articles ArticleRepository, reading ReadingStateRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *Service {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Service{
		accounts:  accounts,
		articles:  articles,
		reading:   reading,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		hashCost:  bcrypt.DefaultCost,
		now:       time.Now,
		log:       log.With().Str("component", "devapi").Logger(),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an unverified account and issues a verification token.
func (s *Service) Register(ctx context.Context, email, password, name string) (*Account, error) {
	email = normalizeEmail(email)
	if email == "" || len(password) < minPasswordLength {
		return nil, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	account := &Account{
		ID:                uuid.NewString(),
		Email:             email,
		Name:              strings.TrimSpace(name),
		PasswordHash:      string(hash),
		VerificationToken: uuid.NewString(),
		Preferences:       domain.Preferences{}.Normalize(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	s.announceToken(account)
	return account, nil
}

// Login checks the password and issues a signed credential. Unverified
// accounts get a credential too; the client decides what to do with it.
func (s *Service) Login(ctx context.Context, email, password string) (string, *Account, error) {
	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(account)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// Authenticate resolves a credential to its account.
func (s *Service) Authenticate(ctx context.Context, credential string) (*Account, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidToken
	}
	account, err := s.accounts.FindByID(ctx, sub)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return account, nil
}

// VerifyEmail consumes a verification token.
func (s *Service) VerifyEmail(ctx context.Context, token string) (*Account, error) {
	account, err := s.accounts.FindByVerificationToken(ctx, strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	account.EmailVerified = true
	account.VerificationToken = ""
	account.UpdatedAt = s.now().UTC()
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	s.log.Info().Str("account_id", account.ID).Msg("email verified")
	return account, nil
}

// SendVerification issues a fresh verification token for email.
func (s *Service) SendVerification(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if account.EmailVerified {
		return nil
	}

	account.VerificationToken = uuid.NewString()
	account.UpdatedAt = s.now().UTC()
	if err := s.accounts.Update(ctx, account); err != nil {
		return err
	}
	s.announceToken(account)
	return nil
}

// announceToken stands in for the mailer.
func (s *Service) announceToken(account *Account) {
	s.log.Info().
		Str("email", account.Email).
		Str("verification_token", account.VerificationToken).
		Msg("verification email issued")
}

// Articles returns the catalogue with the account's saved and read flags.
func (s *Service) Articles(ctx context.Context, account *Account) ([]domain.Article, error) {
	articles, err := s.articles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	state, err := s.reading.Get(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("load reading state: %w", err)
	}
	for i := range articles {
		articles[i].IsSaved = state.IsSaved(articles[i].ID)
		articles[i].IsRead = state.IsRead(articles[i].ID)
	}
	return articles, nil
}

func (s *Service) Article(ctx context.Context, account *Account, id string) (*domain.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	state, err := s.reading.Get(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("load reading state: %w", err)
	}
	article.IsSaved = state.IsSaved(id)
	article.IsRead = state.IsRead(id)
	return article, nil
}

// Stats counts the catalogue from the account's point of view.
func (s *Service) Stats(ctx context.Context, account *Account) (*domain.DashboardStats, error) {
	articles, err := s.Articles(ctx, account)
	if err != nil {
		return nil, err
	}

	stats := &domain.DashboardStats{TotalArticles: len(articles)}
	for _, a := range articles {
		if a.IsRead {
			stats.ReadArticles++
		}
		if a.IsSaved {
			stats.SavedArticles++
		}
		switch a.Sentiment {
		case domain.SentimentPositive:
			stats.SentimentBreakdown.Positive++
		case domain.SentimentNeutral:
			stats.SentimentBreakdown.Neutral++
		case domain.SentimentNegative:
			stats.SentimentBreakdown.Negative++
		}
	}
	return stats, nil
}

func (s *Service) SetSaved(ctx context.Context, account *Account, id string, saved bool) error {
	if _, err := s.articles.FindByID(ctx, id); err != nil {
		return err
	}
	return s.reading.SetSaved(ctx, account.ID, id, saved)
}

func (s *Service) MarkRead(ctx context.Context, account *Account, id string) error {
	if _, err := s.articles.FindByID(ctx, id); err != nil {
		return err
	}
	return s.reading.MarkRead(ctx, account.ID, id)
}

func (s *Service) UpdatePreferences(ctx context.Context, account *Account, prefs domain.Preferences) (*Account, error) {
	account.Preferences = prefs.Normalize()
	account.UpdatedAt = s.now().UTC()
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Seed loads the catalogue and creates a verified demo account with some
// reading history. An existing demo account is left alone.
func (s *Service) Seed(ctx context.Context, email, password string) error {
	for _, a := range SeedArticles() {
		if err := s.articles.Upsert(ctx, a); err != nil {
			return fmt.Errorf("seed article %s: %w", a.ID, err)
		}
	}
	if email == "" {
		return nil
	}

	if _, err := s.accounts.FindByEmail(ctx, normalizeEmail(email)); err == nil {
		return nil
	} else if !errors.Is(err, ErrAccountNotFound) {
		return err
	}

	account, err := s.Register(ctx, email, password, "Demo User")
	if err != nil {
		return fmt.Errorf("seed account: %w", err)
	}
	account.EmailVerified = true
	account.VerificationToken = ""
	account.Preferences = seedPreferences.Normalize()
	if err := s.accounts.Update(ctx, account); err != nil {
		return fmt.Errorf("seed account: %w", err)
	}
	for _, id := range seedSaved {
		if err := s.reading.SetSaved(ctx, account.ID, id, true); err != nil {
			return err
		}
	}
	for _, id := range seedRead {
		if err := s.reading.MarkRead(ctx, account.ID, id); err != nil {
			return err
		}
	}
	s.log.Info().Str("email", account.Email).Msg("demo account ready")
	return nil
}

func (s *Service) generateToken(account *Account) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   account.ID,
		"email": account.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}
