package ports

import (
	"context"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

// NewsGateway is the typed view of the feed operations of the remote API.
// Every call is made on behalf of credential.
type NewsGateway interface {
	Articles(ctx context.Context, credential string) ([]domain.Article, error)
	// ArticleByID returns nil, nil when the article does not exist.
	ArticleByID(ctx context.Context, credential, id string) (*domain.Article, error)
	UserProfile(ctx context.Context, credential string) (*domain.Identity, error)
	DashboardStats(ctx context.Context, credential string) (*domain.DashboardStats, error)
	UpdatePreferences(ctx context.Context, credential string, prefs domain.Preferences) (*domain.Identity, error)
	SaveArticle(ctx context.Context, credential, id string, saved bool) error
	MarkArticleRead(ctx context.Context, credential, id string) error
}
