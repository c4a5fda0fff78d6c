package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
	"github.com/Harsha6202/personalized-news-sentiment/internal/core/metrics"
	"github.com/Harsha6202/personalized-news-sentiment/internal/core/ports"
)

// NewsService implements the feed use cases on behalf of the signed-in user.
// It keeps the last fetched feed so saved and read flags can be patched
// locally before the server confirms them.
type NewsService struct {
	gateway  ports.NewsGateway
	session  SessionReader
	notifier ports.Notifier
	log      zerolog.Logger

	mu   sync.Mutex
	feed []domain.Article
}

func NewNewsService(gateway ports.NewsGateway, session SessionReader, notifier ports.Notifier, log zerolog.Logger) *NewsService {
	return &NewsService{
		gateway:  gateway,
		session:  session,
		notifier: notifier,
		log:      log.With().Str("component", "news").Logger(),
	}
}

func (s *NewsService) credential() (string, error) {
	st := s.session.State()
	if !st.IsAuthenticated || st.Credential == "" {
		return "", domain.ErrNotAuthenticated
	}
	return st.Credential, nil
}

// Articles fetches the feed and applies filter locally.
func (s *NewsService) Articles(ctx context.Context, filter domain.ArticleFilter) (*ports.ArticlesResult, error) {
	cred, err := s.credential()
	if err != nil {
		return nil, err
	}

	articles, err := s.gateway.Articles(ctx, cred)
	if err != nil {
		return nil, fmt.Errorf("fetch articles: %w", err)
	}

	s.mu.Lock()
	s.feed = cloneArticles(articles)
	s.mu.Unlock()

	filtered := domain.FilterArticles(articles, filter)
	return &ports.ArticlesResult{
		Articles: filtered,
		Topics:   domain.Topics(articles),
		Total:    len(articles),
	}, nil
}

// Article fetches a single article and refreshes it in the local feed.
func (s *NewsService) Article(ctx context.Context, id string) (*domain.Article, error) {
	cred, err := s.credential()
	if err != nil {
		return nil, err
	}

	a, err := s.gateway.ArticleByID(ctx, cred, id)
	if err != nil {
		return nil, fmt.Errorf("fetch article: %w", err)
	}
	if a == nil {
		return nil, domain.ErrArticleNotFound
	}

	s.mu.Lock()
	s.upsert(*a)
	s.mu.Unlock()
	return a, nil
}

// ToggleSaved flips the saved flag locally, then asks the server to persist
// it. A failed request restores the previous flag.
func (s *NewsService) ToggleSaved(ctx context.Context, id string) (*domain.Article, error) {
	cred, err := s.credential()
	if err != nil {
		return nil, err
	}
	current, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	saved := !current.IsSaved
	patched := s.patch(id, func(a *domain.Article) { a.IsSaved = saved })

	if err := s.gateway.SaveArticle(ctx, cred, id, saved); err != nil {
		s.patch(id, func(a *domain.Article) { a.IsSaved = !saved })
		metrics.OptimisticRollbacksTotal.WithLabelValues("save_article").Inc()
		s.log.Warn().Err(err).Str("article_id", id).Bool("saved", saved).Msg("save article failed, rolled back")
		s.notifier.Notify(domain.Alert("Error", "Failed to save the article. Please try again later."))
		return nil, fmt.Errorf("save article: %w", err)
	}

	if saved {
		s.notifier.Notify(domain.Info("Article Saved", "The article has been saved to your profile."))
	} else {
		s.notifier.Notify(domain.Info("Article Removed", "The article has been removed from your saved items."))
	}
	return &patched, nil
}

// MarkRead marks an article as read. Already read articles are returned
// without a request.
func (s *NewsService) MarkRead(ctx context.Context, id string) (*domain.Article, error) {
	cred, err := s.credential()
	if err != nil {
		return nil, err
	}
	current, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsRead {
		return &current, nil
	}

	patched := s.patch(id, func(a *domain.Article) { a.IsRead = true })

	if err := s.gateway.MarkArticleRead(ctx, cred, id); err != nil {
		s.patch(id, func(a *domain.Article) { a.IsRead = false })
		metrics.OptimisticRollbacksTotal.WithLabelValues("mark_article_read").Inc()
		s.log.Warn().Err(err).Str("article_id", id).Msg("mark article read failed, rolled back")
		s.notifier.Notify(domain.Alert("Error", "Failed to mark the article as read."))
		return nil, fmt.Errorf("mark article read: %w", err)
	}
	return &patched, nil
}

// Share returns the article's public URL for the clipboard.
func (s *NewsService) Share(ctx context.Context, id string) (string, error) {
	if _, err := s.credential(); err != nil {
		return "", err
	}
	a, err := s.lookup(ctx, id)
	if err != nil {
		return "", err
	}
	s.notifier.Notify(domain.Info("Link Copied", "Article link has been copied to clipboard."))
	return a.URL, nil
}

func (s *NewsService) Profile(ctx context.Context) (*domain.Identity, error) {
	cred, err := s.credential()
	if err != nil {
		return nil, err
	}
	identity, err := s.gateway.UserProfile(ctx, cred)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	if identity == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return identity, nil
}

func (s *NewsService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	cred, err := s.credential()
	if err != nil {
		return nil, err
	}
	stats, err := s.gateway.DashboardStats(ctx, cred)
	if err != nil {
		return nil, fmt.Errorf("fetch dashboard stats: %w", err)
	}
	return stats, nil
}

// UpdatePreferences normalises and stores the user's feed preferences.
func (s *NewsService) UpdatePreferences(ctx context.Context, prefs domain.Preferences) (*domain.Identity, error) {
	cred, err := s.credential()
	if err != nil {
		return nil, err
	}

	identity, err := s.gateway.UpdatePreferences(ctx, cred, prefs.Normalize())
	if err != nil {
		s.log.Warn().Err(err).Msg("update preferences failed")
		s.notifier.Notify(domain.Alert("Error", "Failed to update preferences. Please try again."))
		return nil, fmt.Errorf("update preferences: %w", err)
	}

	s.notifier.Notify(domain.Info("Success", "Your preferences have been updated."))
	return identity, nil
}

// lookup returns the article from the local feed, fetching it when unknown.
func (s *NewsService) lookup(ctx context.Context, id string) (domain.Article, error) {
	s.mu.Lock()
	for _, a := range s.feed {
		if a.ID == id {
			s.mu.Unlock()
			return a, nil
		}
	}
	s.mu.Unlock()

	a, err := s.Article(ctx, id)
	if err != nil {
		return domain.Article{}, err
	}
	return *a, nil
}

// patch applies fn to the cached article and returns the result.
func (s *NewsService) patch(id string, fn func(*domain.Article)) domain.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.feed {
		if s.feed[i].ID == id {
			fn(&s.feed[i])
			return cloneArticle(s.feed[i])
		}
	}
	return domain.Article{}
}

// upsert must be called with mu held.
func (s *NewsService) upsert(a domain.Article) {
	for i := range s.feed {
		if s.feed[i].ID == a.ID {
			s.feed[i] = cloneArticle(a)
			return
		}
	}
	s.feed = append(s.feed, cloneArticle(a))
}

func cloneArticle(a domain.Article) domain.Article {
	a.Topics = append([]string(nil), a.Topics...)
	return a
}

func cloneArticles(in []domain.Article) []domain.Article {
	out := make([]domain.Article, len(in))
	for i, a := range in {
		out[i] = cloneArticle(a)
	}
	return out
}
