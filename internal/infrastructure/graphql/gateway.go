package graphql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
	"github.com/Harsha6202/personalized-news-sentiment/internal/core/ports"
)

// Gateway maps the typed auth and feed operations onto GraphQL documents
// sent through a QueryExecutor.
type Gateway struct {
	exec ports.QueryExecutor
}

func NewGateway(exec ports.QueryExecutor) *Gateway {
	return &Gateway{exec: exec}
}

var (
	_ ports.AuthGateway = (*Gateway)(nil)
	_ ports.NewsGateway = (*Gateway)(nil)
)

// run executes query and decodes the data payload into out.
func (g *Gateway) run(ctx context.Context, query string, vars map[string]any, credential string, out any) error {
	data, err := g.exec.Execute(ctx, query, vars, credential)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return domain.NewNetworkFault(fmt.Errorf("decode %s payload: %w", OperationName(query), err))
	}
	return nil
}

// acknowledge turns an unsuccessful ActionResult into a RemoteFault.
func acknowledge(r *ActionResult) error {
	if r == nil {
		return domain.NewRemoteFault("empty response")
	}
	if !r.Success {
		return domain.NewRemoteFault(r.Message)
	}
	return nil
}

func (g *Gateway) CurrentIdentity(ctx context.Context, credential string) (*domain.Identity, error) {
	var out struct {
		GetCurrentUser *User `json:"getCurrentUser"`
	}
	if err := g.run(ctx, getCurrentUserQuery, nil, credential, &out); err != nil {
		return nil, err
	}
	return out.GetCurrentUser.toDomain(), nil
}

func (g *Gateway) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	var out struct {
		Login *LoginResult `json:"login"`
	}
	vars := map[string]any{"email": email, "password": password}
	if err := g.run(ctx, loginMutation, vars, "", &out); err != nil {
		return "", nil, err
	}
	if out.Login == nil {
		return "", nil, domain.NewRemoteFault("login returned no result")
	}
	return out.Login.Token, out.Login.User.toDomain(), nil
}

func (g *Gateway) Register(ctx context.Context, email, password, name string) error {
	var out struct {
		Register *ActionResult `json:"register"`
	}
	vars := map[string]any{"email": email, "password": password, "name": name}
	if err := g.run(ctx, registerMutation, vars, "", &out); err != nil {
		return err
	}
	return acknowledge(out.Register)
}

func (g *Gateway) VerifyEmail(ctx context.Context, token string) error {
	var out struct {
		VerifyEmail *ActionResult `json:"verifyEmail"`
	}
	if err := g.run(ctx, verifyEmailMutation, map[string]any{"token": token}, "", &out); err != nil {
		return err
	}
	return acknowledge(out.VerifyEmail)
}

func (g *Gateway) SendVerificationEmail(ctx context.Context, email, credential string) error {
	var out struct {
		SendVerificationEmail *ActionResult `json:"sendVerificationEmail"`
	}
	if err := g.run(ctx, sendVerificationEmailMutation, map[string]any{"email": email}, credential, &out); err != nil {
		return err
	}
	return acknowledge(out.SendVerificationEmail)
}

func (g *Gateway) Articles(ctx context.Context, credential string) ([]domain.Article, error) {
	var out struct {
		Articles []Article `json:"articles"`
	}
	if err := g.run(ctx, getArticlesQuery, nil, credential, &out); err != nil {
		return nil, err
	}
	articles := make([]domain.Article, 0, len(out.Articles))
	for _, a := range out.Articles {
		articles = append(articles, a.toDomain())
	}
	return articles, nil
}

func (g *Gateway) ArticleByID(ctx context.Context, credential, id string) (*domain.Article, error) {
	var out struct {
		Article *Article `json:"article"`
	}
	if err := g.run(ctx, getArticleQuery, map[string]any{"id": id}, credential, &out); err != nil {
		return nil, err
	}
	if out.Article == nil {
		return nil, nil
	}
	a := out.Article.toDomain()
	return &a, nil
}

func (g *Gateway) UserProfile(ctx context.Context, credential string) (*domain.Identity, error) {
	var out struct {
		GetUserProfile *User `json:"getUserProfile"`
	}
	if err := g.run(ctx, getUserProfileQuery, nil, credential, &out); err != nil {
		return nil, err
	}
	return out.GetUserProfile.toDomain(), nil
}

func (g *Gateway) DashboardStats(ctx context.Context, credential string) (*domain.DashboardStats, error) {
	var out struct {
		DashboardStats *DashboardStats `json:"dashboardStats"`
	}
	if err := g.run(ctx, getDashboardStatsQuery, nil, credential, &out); err != nil {
		return nil, err
	}
	if out.DashboardStats == nil {
		return nil, domain.NewRemoteFault("dashboard stats unavailable")
	}
	s := out.DashboardStats
	return &domain.DashboardStats{
		TotalArticles: s.TotalArticles,
		ReadArticles:  s.ReadArticles,
		SavedArticles: s.SavedArticles,
		SentimentBreakdown: domain.SentimentBreakdown{
			Positive: s.SentimentBreakdown.Positive,
			Neutral:  s.SentimentBreakdown.Neutral,
			Negative: s.SentimentBreakdown.Negative,
		},
	}, nil
}

func (g *Gateway) UpdatePreferences(ctx context.Context, credential string, prefs domain.Preferences) (*domain.Identity, error) {
	var out struct {
		UpdatePreferences *User `json:"updatePreferences"`
	}
	vars := map[string]any{"preferences": FromPreferences(prefs)}
	if err := g.run(ctx, updatePreferencesMutation, vars, credential, &out); err != nil {
		return nil, err
	}
	if out.UpdatePreferences == nil {
		return nil, domain.NewRemoteFault("preferences were not updated")
	}
	return out.UpdatePreferences.toDomain(), nil
}

func (g *Gateway) SaveArticle(ctx context.Context, credential, id string, saved bool) error {
	var out struct {
		SaveArticle *ActionResult `json:"saveArticle"`
	}
	if err := g.run(ctx, saveArticleMutation, map[string]any{"id": id, "saved": saved}, credential, &out); err != nil {
		return err
	}
	return acknowledge(out.SaveArticle)
}

func (g *Gateway) MarkArticleRead(ctx context.Context, credential, id string) error {
	var out struct {
		MarkArticleRead *ActionResult `json:"markArticleRead"`
	}
	if err := g.run(ctx, markArticleReadMutation, map[string]any{"id": id}, credential, &out); err != nil {
		return err
	}
	return acknowledge(out.MarkArticleRead)
}
