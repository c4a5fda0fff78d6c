package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Harsha6202/personalized-news-sentiment/internal/devapi"
)

const readingCollection = "reading_state"

// ReadingStateRepository implements devapi.ReadingStateRepository using
// MongoDB. Each account has one document holding two id sets.
type ReadingStateRepository struct {
	db *mongo.Database
}

func NewReadingStateRepository(db *mongo.Database) *ReadingStateRepository {
	return &ReadingStateRepository{db: db}
}

var _ devapi.ReadingStateRepository = (*ReadingStateRepository)(nil)

type mongoReadingState struct {
	AccountID string   `bson:"_id"`
	Saved     []string `bson:"saved"`
	Read      []string `bson:"read"`
}

func (r *ReadingStateRepository) Get(ctx context.Context, accountID string) (devapi.ReadingState, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoReadingState
	err := r.db.Collection(readingCollection).FindOne(ctx, bson.M{"_id": accountID}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return devapi.ReadingState{}, nil
	}
	if err != nil {
		return devapi.ReadingState{}, fmt.Errorf("find reading state: %w", err)
	}
	return devapi.ReadingState{Saved: m.Saved, Read: m.Read}, nil
}

// SetSaved adds or removes articleID from the saved set.
func (r *ReadingStateRepository) SetSaved(ctx context.Context, accountID, articleID string, saved bool) error {
	op := "$pull"
	if saved {
		op = "$addToSet"
	}
	return r.apply(ctx, accountID, bson.M{
		op:     bson.M{"saved": articleID},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
}

// MarkRead adds articleID to the read set.
func (r *ReadingStateRepository) MarkRead(ctx context.Context, accountID, articleID string) error {
	return r.apply(ctx, accountID, bson.M{
		"$addToSet": bson.M{"read": articleID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
}

func (r *ReadingStateRepository) apply(ctx context.Context, accountID string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.db.Collection(readingCollection).UpdateOne(ctx, bson.M{"_id": accountID}, update, options.Update().SetUpsert(true))
	return err
}
