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

const accountsCollection = "accounts"

// AccountRepository implements devapi.AccountRepository using MongoDB.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountsCollection)}
}

var _ devapi.AccountRepository = (*AccountRepository)(nil)

type mongoPreferences struct {
	Topics          []string `bson:"topics"`
	Sources         []string `bson:"sources"`
	Keywords        []string `bson:"keywords"`
	ExcludeKeywords []string `bson:"exclude_keywords"`
}

type mongoAccount struct {
	ID                string           `bson:"_id"`
	Email             string           `bson:"email"`
	Name              string           `bson:"name"`
	PasswordHash      string           `bson:"password_hash"`
	EmailVerified     bool             `bson:"email_verified"`
	VerificationToken string           `bson:"verification_token,omitempty"`
	Preferences       mongoPreferences `bson:"preferences"`
	CreatedAt         int64            `bson:"created_at"`
	UpdatedAt         int64            `bson:"updated_at"`
}

func toMongoAccount(a *devapi.Account) mongoAccount {
	p := a.Preferences.Normalize()
	return mongoAccount{
		ID:                a.ID,
		Email:             a.Email,
		Name:              a.Name,
		PasswordHash:      a.PasswordHash,
		EmailVerified:     a.EmailVerified,
		VerificationToken: a.VerificationToken,
		Preferences: mongoPreferences{
			Topics:          p.Topics,
			Sources:         p.Sources,
			Keywords:        p.Keywords,
			ExcludeKeywords: p.ExcludeKeywords,
		},
		CreatedAt: a.CreatedAt.Unix(),
		UpdatedAt: a.UpdatedAt.Unix(),
	}
}

func (m mongoAccount) toAccount() *devapi.Account {
	return &devapi.Account{
		ID:                m.ID,
		Email:             m.Email,
		Name:              m.Name,
		PasswordHash:      m.PasswordHash,
		EmailVerified:     m.EmailVerified,
		VerificationToken: m.VerificationToken,
		Preferences: domain.Preferences{
			Topics:          m.Preferences.Topics,
			Sources:         m.Preferences.Sources,
			Keywords:        m.Preferences.Keywords,
			ExcludeKeywords: m.Preferences.ExcludeKeywords,
		}.Normalize(),
		CreatedAt: unixToTime(m.CreatedAt),
		UpdatedAt: unixToTime(m.UpdatedAt),
	}
}

func (r *AccountRepository) Create(ctx context.Context, account *devapi.Account) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, toMongoAccount(account)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return devapi.ErrAccountExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*devapi.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*devapi.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) FindByVerificationToken(ctx context.Context, token string) (*devapi.Account, error) {
	if token == "" {
		return nil, devapi.ErrAccountNotFound
	}
	return r.findOne(ctx, bson.M{"verification_token": token})
}

func (r *AccountRepository) Update(ctx context.Context, account *devapi.Account) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": account.ID}, toMongoAccount(account))
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return devapi.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*devapi.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoAccount
	if err := r.coll.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, devapi.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return m.toAccount(), nil
}

// EnsureIndexes makes email unique and verification tokens searchable.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "verification_token", Value: 1}}, Options: options.Index().SetSparse(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
