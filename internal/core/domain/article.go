package domain

import (
	"fmt"
	"time"
)

// Sentiment is the precomputed label attached to every article by the remote API.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ParseSentiment accepts the three known labels; the empty string means "any".
func ParseSentiment(s string) (Sentiment, error) {
	switch Sentiment(s) {
	case "", SentimentPositive, SentimentNeutral, SentimentNegative:
		return Sentiment(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSentiment, s)
}

// Article is a feed entry as returned by the remote API.
type Article struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Source               string    `json:"source"`
	Author               string    `json:"author,omitempty"`
	PublishedAt          time.Time `json:"published_at"`
	URL                  string    `json:"url"`
	URLToImage           string    `json:"url_to_image,omitempty"`
	Description          string    `json:"description"`
	Content              string    `json:"content,omitempty"`
	Summary              string    `json:"summary"`
	Sentiment            Sentiment `json:"sentiment"`
	SentimentExplanation string    `json:"sentiment_explanation,omitempty"`
	Topics               []string  `json:"topics"`
	IsRead               bool      `json:"is_read"`
	IsSaved              bool      `json:"is_saved"`
}

// SentimentBreakdown counts articles per sentiment label.
type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// DashboardStats summarises the user's reading activity.
type DashboardStats struct {
	TotalArticles      int                `json:"total_articles"`
	ReadArticles       int                `json:"read_articles"`
	SavedArticles      int                `json:"saved_articles"`
	SentimentBreakdown SentimentBreakdown `json:"sentiment_breakdown"`
}

// ArticleFilter selects feed entries. An article matches when it carries at
// least one selected topic (or none are selected) and has the selected
// sentiment (or none is selected).
type ArticleFilter struct {
	Topics    []string
	Sentiment Sentiment
}

func (f ArticleFilter) Matches(a Article) bool {
	if f.Sentiment != "" && a.Sentiment != f.Sentiment {
		return false
	}
	if len(f.Topics) == 0 {
		return true
	}
	for _, want := range f.Topics {
		for _, have := range a.Topics {
			if want == have {
				return true
			}
		}
	}
	return false
}

// ToggleTopic adds or removes a topic from the selection.
func (f ArticleFilter) ToggleTopic(topic string) ArticleFilter {
	f.Topics = toggle(cloneStrings(f.Topics), topic)
	return f
}

// ToggleSentiment selects s, or clears the selection when s is already selected.
func (f ArticleFilter) ToggleSentiment(s Sentiment) ArticleFilter {
	if f.Sentiment == s {
		f.Sentiment = ""
	} else {
		f.Sentiment = s
	}
	return f
}

// FilterArticles returns the matching articles in feed order. The result is never nil.
func FilterArticles(articles []Article, f ArticleFilter) []Article {
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}

// Topics returns every distinct topic in order of first appearance.
func Topics(articles []Article) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, a := range articles {
		for _, t := range a.Topics {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
