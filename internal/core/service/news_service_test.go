package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

type stubNewsGateway struct {
	articles  []domain.Article
	saveErr   error
	readErr   error
	prefsErr  error
	saveCalls int
	readCalls int
	lastPrefs domain.Preferences
}

func (g *stubNewsGateway) Articles(context.Context, string) ([]domain.Article, error) {
	return cloneArticles(g.articles), nil
}

func (g *stubNewsGateway) ArticleByID(_ context.Context, _ string, id string) (*domain.Article, error) {
	for _, a := range g.articles {
		if a.ID == id {
			c := cloneArticle(a)
			return &c, nil
		}
	}
	return nil, nil
}

func (g *stubNewsGateway) UserProfile(context.Context, string) (*domain.Identity, error) {
	return verifiedIdentity(), nil
}

func (g *stubNewsGateway) DashboardStats(context.Context, string) (*domain.DashboardStats, error) {
	return &domain.DashboardStats{TotalArticles: len(g.articles)}, nil
}

func (g *stubNewsGateway) UpdatePreferences(_ context.Context, _ string, prefs domain.Preferences) (*domain.Identity, error) {
	g.lastPrefs = prefs
	if g.prefsErr != nil {
		return nil, g.prefsErr
	}
	id := verifiedIdentity()
	id.Preferences = prefs
	return id, nil
}

func (g *stubNewsGateway) SaveArticle(context.Context, string, string, bool) error {
	g.saveCalls++
	return g.saveErr
}

func (g *stubNewsGateway) MarkArticleRead(context.Context, string, string) error {
	g.readCalls++
	return g.readErr
}

func sampleArticles() []domain.Article {
	return []domain.Article{
		{ID: "1", Title: "AI boom", URL: "https://example.com/1", Sentiment: domain.SentimentPositive, Topics: []string{"Technology", "AI"}},
		{ID: "2", Title: "Markets slide", URL: "https://example.com/2", Sentiment: domain.SentimentNegative, Topics: []string{"Finance", "Markets"}},
		{ID: "3", Title: "Budget talks", URL: "https://example.com/3", Sentiment: domain.SentimentNeutral, Topics: []string{"Politics"}},
	}
}

func newSignedInNews(t *testing.T, gw *stubNewsGateway) (*NewsService, *recordingNotifier) {
	t.Helper()
	auth := &stubAuthGateway{
		currentIdentityFn: func(context.Context, string) (*domain.Identity, error) {
			return verifiedIdentity(), nil
		},
	}
	session, _ := newTestSession(auth, &memCredentialStore{value: "T"})
	require.True(t, session.Restore(context.Background()).IsAuthenticated)

	n := &recordingNotifier{}
	return NewNewsService(gw, session, n, zerolog.Nop()), n
}

func TestNewsService_RequiresSession(t *testing.T) {
	session, _ := newTestSession(&stubAuthGateway{}, &memCredentialStore{})
	session.Restore(context.Background())
	svc := NewNewsService(&stubNewsGateway{}, session, &recordingNotifier{}, zerolog.Nop())

	_, err := svc.Articles(context.Background(), domain.ArticleFilter{})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = svc.Stats(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestNewsService_Articles_Filter(t *testing.T) {
	svc, _ := newSignedInNews(t, &stubNewsGateway{articles: sampleArticles()})

	res, err := svc.Articles(context.Background(), domain.ArticleFilter{Topics: []string{"AI", "Politics"}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Len(t, res.Articles, 2)
	assert.Equal(t, []string{"Technology", "AI", "Finance", "Markets", "Politics"}, res.Topics)

	res, err = svc.Articles(context.Background(), domain.ArticleFilter{Sentiment: domain.SentimentNegative})
	require.NoError(t, err)
	require.Len(t, res.Articles, 1)
	assert.Equal(t, "2", res.Articles[0].ID)
}

func TestNewsService_Article_NotFound(t *testing.T) {
	svc, _ := newSignedInNews(t, &stubNewsGateway{articles: sampleArticles()})

	_, err := svc.Article(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrArticleNotFound)
}

func TestNewsService_ToggleSaved(t *testing.T) {
	gw := &stubNewsGateway{articles: sampleArticles()}
	svc, n := newSignedInNews(t, gw)
	_, err := svc.Articles(context.Background(), domain.ArticleFilter{})
	require.NoError(t, err)

	a, err := svc.ToggleSaved(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, a.IsSaved)
	assert.Equal(t, "Article Saved", n.last().Title)

	a, err = svc.ToggleSaved(context.Background(), "1")
	require.NoError(t, err)
	assert.False(t, a.IsSaved)
	assert.Equal(t, "Article Removed", n.last().Title)
	assert.Equal(t, 2, gw.saveCalls)
}

func TestNewsService_ToggleSaved_RollsBack(t *testing.T) {
	gw := &stubNewsGateway{articles: sampleArticles(), saveErr: domain.NewNetworkFault(errors.New("offline"))}
	svc, n := newSignedInNews(t, gw)
	_, err := svc.Articles(context.Background(), domain.ArticleFilter{})
	require.NoError(t, err)

	_, err = svc.ToggleSaved(context.Background(), "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Equal(t, "Error", n.last().Title)
	assert.Equal(t, domain.VariantDestructive, n.last().Variant)

	cached, err := svc.lookup(context.Background(), "1")
	require.NoError(t, err)
	assert.False(t, cached.IsSaved, "optimistic patch must be undone")
}

func TestNewsService_MarkRead(t *testing.T) {
	gw := &stubNewsGateway{articles: sampleArticles()}
	svc, _ := newSignedInNews(t, gw)

	a, err := svc.MarkRead(context.Background(), "2")
	require.NoError(t, err)
	assert.True(t, a.IsRead)

	_, err = svc.MarkRead(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, 1, gw.readCalls, "already read article is not re-sent")
}

func TestNewsService_MarkRead_RollsBack(t *testing.T) {
	gw := &stubNewsGateway{articles: sampleArticles(), readErr: domain.NewTransportFault(500, "oops")}
	svc, _ := newSignedInNews(t, gw)

	_, err := svc.MarkRead(context.Background(), "2")
	require.ErrorIs(t, err, domain.ErrTransport)

	cached, err := svc.lookup(context.Background(), "2")
	require.NoError(t, err)
	assert.False(t, cached.IsRead)
}

func TestNewsService_Share(t *testing.T) {
	svc, n := newSignedInNews(t, &stubNewsGateway{articles: sampleArticles()})

	url, err := svc.Share(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/3", url)
	assert.Equal(t, "Link Copied", n.last().Title)
}

func TestNewsService_UpdatePreferences(t *testing.T) {
	gw := &stubNewsGateway{}
	svc, n := newSignedInNews(t, gw)

	identity, err := svc.UpdatePreferences(context.Background(), domain.Preferences{
		Topics:   []string{" AI ", "AI", ""},
		Keywords: []string{"chips"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"AI"}, gw.lastPrefs.Topics)
	assert.NotNil(t, gw.lastPrefs.Sources)
	assert.Equal(t, []string{"AI"}, identity.Preferences.Topics)
	assert.Equal(t, "Success", n.last().Title)

	gw.prefsErr = domain.NewRemoteFault("nope")
	_, err = svc.UpdatePreferences(context.Background(), domain.Preferences{})
	assert.ErrorIs(t, err, domain.ErrRemote)
	assert.Equal(t, "Error", n.last().Title)
}
