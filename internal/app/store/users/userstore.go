// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/hierarchy"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicate is returned when a user with the same email or
	// registration number already exists.
	ErrDuplicate = errors.New("a user with this email or registration number already exists")
	errBadRole   = errors.New("role is not a hierarchy role")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByAuthToken resolves an API token to its user. Returns
// mongo.ErrNoDocuments for unknown tokens.
func (s *Store) GetByAuthToken(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"auth_token": token}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing & validating fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Email = normalize.Email(u.Email)
	u.RegistrationNumber = normalize.RegistrationNumber(u.RegistrationNumber)

	if u.Role == "" {
		u.Role = hierarchy.RoleUser
	}
	if !hierarchy.Valid(u.Role) {
		return models.User{}, errBadRole
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return u, nil
}

// UpdateRole sets a user's role. The caller is responsible for deriving
// the new role from the hierarchy; this only rejects labels outside it.
func (s *Store) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error {
	if !hierarchy.Valid(role) {
		return errBadRole
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"role":       role,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// SetAuthToken stores the API token issued at login.
func (s *Store) SetAuthToken(ctx context.Context, id primitive.ObjectID, token string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"auth_token": token,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// SetResetOTP stores a password-reset code and its expiry.
func (s *Store) SetResetOTP(ctx context.Context, id primitive.ObjectID, otp string, expiry time.Time) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"reset_password_otp": otp,
		"otp_expiry":         expiry,
		"updated_at":         time.Now().UTC(),
	}})
	return err
}

// ResetPassword replaces the password hash and retires the reset code.
// The auth token is revoked as well, so every existing session has to
// log in again with the new password.
func (s *Store) ResetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    time.Now().UTC(),
		},
		"$unset": bson.M{
			"reset_password_otp": "",
			"otp_expiry":         "",
			"auth_token":         "",
		},
	})
	return err
}

// UpdateSolvedCount sets solved_questions_count for a user. The caller
// triggers the team aggregate re-sync afterwards; the store does not.
func (s *Store) UpdateSolvedCount(ctx context.Context, id primitive.ObjectID, count int) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"solved_questions_count": count,
		"updated_at":             time.Now().UTC(),
	}})
	return err
}

// SetTeam points a user at a team, or clears the reference when teamID
// is nil.
func (s *Store) SetTeam(ctx context.Context, id primitive.ObjectID, teamID *primitive.ObjectID) error {
	var set bson.M
	if teamID == nil {
		set = bson.M{"team_id": nil, "updated_at": time.Now().UTC()}
	} else {
		set = bson.M{"team_id": *teamID, "updated_at": time.Now().UTC()}
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// ClearTeamRefs nulls team_id for every member of the given team.
// Called when a team is deleted so no user keeps a dangling reference.
func (s *Store) ClearTeamRefs(ctx context.Context, teamID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"team_id": teamID},
		bson.M{"$set": bson.M{"team_id": nil, "updated_at": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// GetByIDs loads multiple users by their ObjectIDs.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes a user by ID. Returns the number of documents deleted
// (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByEmail removes a user by email. Missing is not an error; the
// block flow treats zero deletions as "nothing to purge".
func (s *Store) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"email": normalize.Email(email)})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// TopByCurrentRank returns up to limit users holding a numeric contest
// standing, best (lowest) standing first.
func (s *Store) TopByCurrentRank(ctx context.Context, limit int64) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "current_rank", Value: 1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{"current_rank": bson.M{"$ne": nil}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AppendAward pushes a medal entry onto one of the achievement
// sequences ("gold", "silver" or "bronze"). Entries are never removed.
func (s *Store) AppendAward(ctx context.Context, id primitive.ObjectID, medal string, award models.Award) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"achievement." + medal: award},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// HasAwardForMonth reports whether any user already holds a medal for
// the given month/year. Used as the double-firing guard for the
// monthly awards job.
func (s *Store) HasAwardForMonth(ctx context.Context, month, year int) (bool, error) {
	entry := bson.M{"$elemMatch": bson.M{"month": month, "year": year}}
	count, err := s.c.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"achievement.gold": entry},
		bson.M{"achievement.silver": entry},
		bson.M{"achievement.bronze": entry},
	}})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns a page of users matched by a case-insensitive search on
// name or email, sorted by name, plus the total match count.
func (s *Store) List(ctx context.Context, page, limit int64, search string) ([]models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	filter := bson.M{}
	if search != "" {
		re := primitive.Regex{Pattern: search, Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"name": re},
			bson.M{"email": re},
		}}
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name_ci", Value: 1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
