// internal/app/store/blocklist/blockliststore.go
package blockliststore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrAlreadyBlocked is returned when inserting an email that is
// already on the denylist.
var ErrAlreadyBlocked = errors.New("email is already blocked")

// Store manages the blocked_emails denylist.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("blocked_emails")}
}

// Exists reports whether the email is currently blocked.
func (s *Store) Exists(ctx context.Context, email string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

// Create inserts a denylist entry.
func (s *Store) Create(ctx context.Context, email string) (models.BlockedEmail, error) {
	entry := models.BlockedEmail{
		ID:        primitive.NewObjectID(),
		Email:     normalize.Email(email),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, entry); err != nil {
		if wafflemongo.IsDup(err) {
			return models.BlockedEmail{}, ErrAlreadyBlocked
		}
		return models.BlockedEmail{}, err
	}
	return entry, nil
}

// Delete removes a denylist entry by email. Returns the number of
// documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, email string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"email": normalize.Email(email)})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns a page of denylist entries, newest first, optionally
// filtered by a case-insensitive email substring.
func (s *Store) List(ctx context.Context, page, limit int64, search string) ([]models.BlockedEmail, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	filter := bson.M{}
	if search != "" {
		filter = bson.M{"email": primitive.Regex{Pattern: search, Options: "i"}}
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var entries []models.BlockedEmail
	if err := cur.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
