package devapi

import (
	"time"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedArticles is the catalogue the development backend starts with.
func SeedArticles() []domain.Article {
	return []domain.Article{
		{
			ID:                   "1",
			Title:                "Tech Giant Announces Revolutionary AI-Powered Platform",
			Source:               "TechCrunch",
			Author:               "John Smith",
			PublishedAt:          mustTime("2023-08-15T08:30:00Z"),
			URL:                  "https://example.com/article1",
			URLToImage:           "https://source.unsplash.com/random/800x600?tech",
			Description:          "A major technology company has announced a new AI platform that promises to transform how businesses operate.",
			Summary:              "A leading tech company unveiled a groundbreaking AI platform designed to revolutionize business operations through advanced machine learning capabilities.",
			Sentiment:            domain.SentimentPositive,
			SentimentExplanation: "The article conveys enthusiasm about technological advancement and economic growth potential.",
			Topics:               []string{"Technology", "AI", "Business"},
		},
		{
			ID:                   "2",
			Title:                "Global Markets Face Uncertainty Amid Economic Concerns",
			Source:               "Financial Times",
			Author:               "Sarah Johnson",
			PublishedAt:          mustTime("2023-08-14T14:45:00Z"),
			URL:                  "https://example.com/article2",
			URLToImage:           "https://source.unsplash.com/random/800x600?finance",
			Description:          "Financial markets worldwide are experiencing volatility as economic indicators suggest potential challenges ahead.",
			Summary:              "Global markets are showing signs of instability due to concerns about inflation, interest rates, and supply chain issues affecting multiple sectors.",
			Sentiment:            domain.SentimentNegative,
			SentimentExplanation: "The article expresses worry about economic instability and market downturns.",
			Topics:               []string{"Finance", "Economics", "Markets"},
		},
		{
			ID:                   "3",
			Title:                "New Study Reveals Promising Treatment for Chronic Condition",
			Source:               "Medical News Today",
			Author:               "Dr. Michael Chen",
			PublishedAt:          mustTime("2023-08-14T09:15:00Z"),
			URL:                  "https://example.com/article3",
			URLToImage:           "https://source.unsplash.com/random/800x600?medical",
			Description:          "Researchers have identified a potential breakthrough treatment for a common chronic health condition.",
			Summary:              "A clinical study has shown promising results for a new treatment approach to a widespread chronic condition, potentially improving quality of life for millions.",
			Sentiment:            domain.SentimentPositive,
			SentimentExplanation: "The article conveys hope and optimism about medical advances improving health outcomes.",
			Topics:               []string{"Health", "Medical Research", "Science"},
		},
		{
			ID:                   "4",
			Title:                "Climate Change Report Warns of Accelerating Environmental Impact",
			Source:               "Nature",
			Author:               "Emma Roberts",
			PublishedAt:          mustTime("2023-08-13T16:20:00Z"),
			URL:                  "https://example.com/article4",
			URLToImage:           "https://source.unsplash.com/random/800x600?climate",
			Description:          "A new scientific assessment indicates that climate change effects are occurring faster than previously predicted.",
			Summary:              "Latest climate research shows environmental changes accelerating at an alarming rate, with potentially severe consequences for ecosystems and communities worldwide.",
			Sentiment:            domain.SentimentNegative,
			SentimentExplanation: "The article expresses alarm about environmental degradation and its consequences.",
			Topics:               []string{"Environment", "Climate", "Science"},
		},
		{
			ID:                   "5",
			Title:                "Sports Team Celebrates Historic Championship Victory",
			Source:               "Sports Illustrated",
			Author:               "James Wilson",
			PublishedAt:          mustTime("2023-08-13T22:05:00Z"),
			URL:                  "https://example.com/article5",
			URLToImage:           "https://source.unsplash.com/random/800x600?sports",
			Description:          "The underdog team has achieved an unexpected championship win, marking a significant moment in sports history.",
			Summary:              "In a stunning upset, the underdog team secured a historic championship victory, overcoming significant challenges through teamwork and perseverance.",
			Sentiment:            domain.SentimentPositive,
			SentimentExplanation: "The article conveys excitement, joy, and celebration of achievement.",
			Topics:               []string{"Sports", "Entertainment"},
		},
		{
			ID:                   "6",
			Title:                "Political Leaders Discuss International Cooperation at Summit",
			Source:               "Reuters",
			Author:               "David Miller",
			PublishedAt:          mustTime("2023-08-12T11:30:00Z"),
			URL:                  "https://example.com/article6",
			URLToImage:           "https://source.unsplash.com/random/800x600?politics",
			Description:          "World leaders have gathered to address global challenges through diplomatic discussions.",
			Summary:              "An international summit brought together key political figures to discuss trade relations, security concerns, and collaborative approaches to global issues.",
			Sentiment:            domain.SentimentNeutral,
			SentimentExplanation: "The article presents a balanced view of diplomatic efforts without strong emotional bias.",
			Topics:               []string{"Politics", "World", "Diplomacy"},
		},
	}
}

// Reading state and preferences of the demo account.
var (
	seedSaved = []string{"2", "6"}
	seedRead  = []string{"2", "5"}

	seedPreferences = domain.Preferences{
		Topics:   []string{"Technology", "Health", "Science"},
		Sources:  []string{"TechCrunch", "Medical News Today", "Nature"},
		Keywords: []string{"AI", "research", "innovation"},
	}
)
