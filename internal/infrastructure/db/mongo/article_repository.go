package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
	"github.com/Harsha6202/personalized-news-sentiment/internal/devapi"
)

const collectionArticles = "articles"

// ArticleRepository implements devapi.ArticleRepository using MongoDB.
type ArticleRepository struct {
	col *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{col: db.Collection(collectionArticles)}
}

var _ devapi.ArticleRepository = (*ArticleRepository)(nil)

type mongoArticle struct {
	ID                   string    `bson:"_id"`
	Title                string    `bson:"title"`
	Source               string    `bson:"source"`
	Author               string    `bson:"author,omitempty"`
	PublishedAt          time.Time `bson:"published_at"`
	URL                  string    `bson:"url"`
	URLToImage           string    `bson:"url_to_image,omitempty"`
	Description          string    `bson:"description"`
	Content              string    `bson:"content,omitempty"`
	Summary              string    `bson:"summary"`
	Sentiment            string    `bson:"sentiment"`
	SentimentExplanation string    `bson:"sentiment_explanation,omitempty"`
	Topics               []string  `bson:"topics"`
}

func toMongoArticle(a domain.Article) mongoArticle {
	return mongoArticle{
		ID:                   a.ID,
		Title:                a.Title,
		Source:               a.Source,
		Author:               a.Author,
		PublishedAt:          a.PublishedAt.UTC(),
		URL:                  a.URL,
		URLToImage:           a.URLToImage,
		Description:          a.Description,
		Content:              a.Content,
		Summary:              a.Summary,
		Sentiment:            string(a.Sentiment),
		SentimentExplanation: a.SentimentExplanation,
		Topics:               a.Topics,
	}
}

func (m mongoArticle) toDomain() domain.Article {
	return domain.Article{
		ID:                   m.ID,
		Title:                m.Title,
		Source:               m.Source,
		Author:               m.Author,
		PublishedAt:          m.PublishedAt.UTC(),
		URL:                  m.URL,
		URLToImage:           m.URLToImage,
		Description:          m.Description,
		Content:              m.Content,
		Summary:              m.Summary,
		Sentiment:            domain.Sentiment(m.Sentiment),
		SentimentExplanation: m.SentimentExplanation,
		Topics:               append([]string{}, m.Topics...),
	}
}

// List returns the catalogue newest first.
func (r *ArticleRepository) List(ctx context.Context) ([]domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoArticle
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}
	out := make([]domain.Article, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoArticle
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, devapi.ErrUnknownArticle
		}
		return nil, err
	}
	a := m.toDomain()
	return &a, nil
}

// Upsert inserts or replaces an article by id.
func (r *ArticleRepository) Upsert(ctx context.Context, article domain.Article) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": article.ID}, toMongoArticle(article), options.Replace().SetUpsert(true))
	return err
}

// EnsureIndexes creates necessary indexes on the articles collection.
func (r *ArticleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "published_at", Value: -1}}},
		{Keys: bson.D{{Key: "topics", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
