// internal/app/store/allowlist/allowliststore.go
package allowliststore

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OTPLength is the length of the invitation code (6 digits).
const OTPLength = 6

var (
	// ErrAlreadyInvited is returned when the email already has a live
	// invitation.
	ErrAlreadyInvited = errors.New("this email has already been invited")
	// ErrNotInvited is returned when no invitation exists for an email.
	ErrNotInvited = errors.New("no invitation found for this email")
	// ErrWrongOTP is returned when the presented code does not match.
	ErrWrongOTP = errors.New("invitation code does not match")
)

// Store manages pending invitations in the allowed_emails collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("allowed_emails")}
}

// Exists reports whether a live invitation exists for the email.
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

// Create persists an invitation. Call this only after the invitation
// mail was delivered; the allowlist must never hold an entry the
// candidate never received.
func (s *Store) Create(ctx context.Context, email, otp string) (models.AllowedEmail, error) {
	entry := models.AllowedEmail{
		ID:        primitive.NewObjectID(),
		Email:     normalize.Email(email),
		OTP:       otp,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, entry); err != nil {
		if wafflemongo.IsDup(err) {
			return models.AllowedEmail{}, ErrAlreadyInvited
		}
		return models.AllowedEmail{}, err
	}
	return entry, nil
}

// Verify checks the (email, otp) pair without touching the
// invitation. Returns ErrNotInvited or ErrWrongOTP on mismatch.
func (s *Store) Verify(ctx context.Context, email, otp string) error {
	var entry models.AllowedEmail
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return ErrNotInvited
	}
	if err != nil {
		return err
	}
	if entry.OTP != otp {
		return ErrWrongOTP
	}
	return nil
}

// Consume verifies the (email, otp) pair and deletes the invitation so
// it is single use. Returns ErrNotInvited or ErrWrongOTP on mismatch.
func (s *Store) Consume(ctx context.Context, email, otp string) error {
	if err := s.Verify(ctx, email, otp); err != nil {
		return err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{
		"email": normalize.Email(email),
		"otp":   otp,
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		// Consumed concurrently between the check and the delete.
		return ErrNotInvited
	}
	return nil
}

// Delete removes an invitation by ID. Returns the number of documents
// deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByEmail removes an invitation by email. Missing is not an
// error; the block flow treats zero deletions as "nothing to purge".
func (s *Store) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"email": normalize.Email(email)})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns a page of invitations filtered by a case-insensitive
// email search, newest first, plus the total match count.
func (s *Store) List(ctx context.Context, page, limit int64, search string) ([]models.AllowedEmail, int64, error) {
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

	var entries []models.AllowedEmail
	if err := cur.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// GenerateOTP produces a random 6-digit invitation code in
// [100000, 999999]. Panics if the system's cryptographic random number
// generator fails.
func GenerateOTP() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand.Read failed: " + err.Error())
	}
	n := int(b[0])<<24 | int(b[1])<<16 | int(b[2])<<8 | int(b[3])
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("%06d", (n%900000)+100000)
}
