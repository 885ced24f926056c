package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/hierarchy"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given name, email and role.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	if role == "" {
		role = hierarchy.RoleUser
	}
	now := time.Now().UTC()
	u := models.User{
		ID:                 primitive.NewObjectID(),
		Name:               name,
		NameCI:             text.Fold(name),
		Email:              email,
		RegistrationNumber: "RA" + primitive.NewObjectID().Hex()[:10],
		Role:               role,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateRankedUser inserts a user carrying a contest standing and a
// solved count.
func (f *Fixtures) CreateRankedUser(ctx context.Context, name, email string, rank, solved int) models.User {
	f.t.Helper()

	u := f.CreateUser(ctx, name, email, hierarchy.RoleMember)
	update := map[string]interface{}{
		"current_rank":           rank,
		"solved_questions_count": solved,
	}
	if _, err := f.db.Collection("users").UpdateByID(ctx, u.ID, map[string]interface{}{"$set": update}); err != nil {
		f.t.Fatalf("failed to rank test user: %v", err)
	}
	u.CurrentRank = &rank
	u.SolvedQuestionsCount = solved
	return u
}

// CreateTeam inserts an empty team with the given name.
func (f *Fixtures) CreateTeam(ctx context.Context, name string) models.Team {
	f.t.Helper()

	now := time.Now().UTC()
	team := models.Team{
		ID:         primitive.NewObjectID(),
		TeamName:   name,
		TeamNameCI: text.Fold(name),
		Members:    []primitive.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("teams").InsertOne(ctx, team); err != nil {
		f.t.Fatalf("failed to create test team: %v", err)
	}
	return team
}

// CreateAllowedEmail inserts a live invitation.
func (f *Fixtures) CreateAllowedEmail(ctx context.Context, email, otp string) models.AllowedEmail {
	f.t.Helper()

	entry := models.AllowedEmail{
		ID:        primitive.NewObjectID(),
		Email:     email,
		OTP:       otp,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("allowed_emails").InsertOne(ctx, entry); err != nil {
		f.t.Fatalf("failed to create test invitation: %v", err)
	}
	return entry
}

// CreateBlockedEmail inserts a denylist entry.
func (f *Fixtures) CreateBlockedEmail(ctx context.Context, email string) models.BlockedEmail {
	f.t.Helper()

	entry := models.BlockedEmail{
		ID:        primitive.NewObjectID(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("blocked_emails").InsertOne(ctx, entry); err != nil {
		f.t.Fatalf("failed to create test blocked email: %v", err)
	}
	return entry
}
