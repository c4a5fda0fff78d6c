package graphql

import (
	"time"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

// Wire shapes of the remote API. Field names follow the GraphQL schema.

type Preferences struct {
	Topics          []string `json:"topics"`
	Sources         []string `json:"sources"`
	Keywords        []string `json:"keywords"`
	ExcludeKeywords []string `json:"excludeKeywords"`
}

type User struct {
	ID              string      `json:"id"`
	Email           string      `json:"email"`
	Name            string      `json:"name"`
	IsEmailVerified bool        `json:"isEmailVerified"`
	Preferences     Preferences `json:"preferences"`
}

type Article struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Source               string    `json:"source"`
	Author               string    `json:"author,omitempty"`
	PublishedAt          time.Time `json:"publishedAt"`
	URL                  string    `json:"url"`
	URLToImage           string    `json:"urlToImage,omitempty"`
	Description          string    `json:"description"`
	Content              string    `json:"content,omitempty"`
	Summary              string    `json:"summary"`
	Sentiment            string    `json:"sentiment"`
	SentimentExplanation string    `json:"sentimentExplanation,omitempty"`
	Topics               []string  `json:"topics"`
	IsRead               bool      `json:"isRead"`
	IsSaved              bool      `json:"isSaved"`
}

type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

type DashboardStats struct {
	TotalArticles      int                `json:"totalArticles"`
	ReadArticles       int                `json:"readArticles"`
	SavedArticles      int                `json:"savedArticles"`
	SentimentBreakdown SentimentBreakdown `json:"sentimentBreakdown"`
}

// ActionResult is the payload of mutations that only acknowledge.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// ToDomain converts wire preferences to their normalized domain form.
func (p Preferences) ToDomain() domain.Preferences {
	return domain.Preferences{
		Topics:          p.Topics,
		Sources:         p.Sources,
		Keywords:        p.Keywords,
		ExcludeKeywords: p.ExcludeKeywords,
	}.Normalize()
}

func (u *User) toDomain() *domain.Identity {
	if u == nil {
		return nil
	}
	return &domain.Identity{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		EmailVerified: u.IsEmailVerified,
		Preferences:   u.Preferences.ToDomain(),
	}
}

func (a Article) toDomain() domain.Article {
	return domain.Article{
		ID:                   a.ID,
		Title:                a.Title,
		Source:               a.Source,
		Author:               a.Author,
		PublishedAt:          a.PublishedAt,
		URL:                  a.URL,
		URLToImage:           a.URLToImage,
		Description:          a.Description,
		Content:              a.Content,
		Summary:              a.Summary,
		Sentiment:            domain.Sentiment(a.Sentiment),
		SentimentExplanation: a.SentimentExplanation,
		Topics:               append([]string{}, a.Topics...),
		IsRead:               a.IsRead,
		IsSaved:              a.IsSaved,
	}
}

// FromPreferences converts domain preferences to their wire form.
func FromPreferences(p domain.Preferences) Preferences {
	p = p.Normalize()
	return Preferences{
		Topics:          p.Topics,
		Sources:         p.Sources,
		Keywords:        p.Keywords,
		ExcludeKeywords: p.ExcludeKeywords,
	}
}

// FromIdentity converts an identity to its wire form.
func FromIdentity(i domain.Identity) User {
	return User{
		ID:              i.ID,
		Email:           i.Email,
		Name:            i.Name,
		IsEmailVerified: i.EmailVerified,
		Preferences:     FromPreferences(i.Preferences),
	}
}

// FromArticle converts an article to its wire form.
func FromArticle(a domain.Article) Article {
	return Article{
		ID:                   a.ID,
		Title:                a.Title,
		Source:               a.Source,
		Author:               a.Author,
		PublishedAt:          a.PublishedAt,
		URL:                  a.URL,
		URLToImage:           a.URLToImage,
		Description:          a.Description,
		Content:              a.Content,
		Summary:              a.Summary,
		Sentiment:            string(a.Sentiment),
		SentimentExplanation: a.SentimentExplanation,
		Topics:               append([]string{}, a.Topics...),
		IsRead:               a.IsRead,
		IsSaved:              a.IsSaved,
	}
}
