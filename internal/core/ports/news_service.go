package ports

import (
	"context"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

// ArticlesResult is the filtered feed plus every topic present in the
// unfiltered feed, so the UI can render the topic picker.
type ArticlesResult struct {
	Articles []domain.Article
	Topics   []string
	Total    int
}

// NewsService defines the feed use cases for the signed-in user.
type NewsService interface {
	Articles(ctx context.Context, filter domain.ArticleFilter) (*ArticlesResult, error)
	Article(ctx context.Context, id string) (*domain.Article, error)
	ToggleSaved(ctx context.Context, id string) (*domain.Article, error)
	MarkRead(ctx context.Context, id string) (*domain.Article, error)
	Share(ctx context.Context, id string) (string, error)
	Profile(ctx context.Context) (*domain.Identity, error)
	Stats(ctx context.Context) (*domain.DashboardStats, error)
	UpdatePreferences(ctx context.Context, prefs domain.Preferences) (*domain.Identity, error)
}
