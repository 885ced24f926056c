// internal/app/features/progress/service_test.go
package progress

import (
	"context"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/system/apperr"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeSolvedWriter struct {
	users map[primitive.ObjectID]*models.User
}

func (f *fakeSolvedWriter) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *u
	return &cp, nil
}

func (f *fakeSolvedWriter) UpdateSolvedCount(_ context.Context, id primitive.ObjectID, count int) error {
	f.users[id].SolvedQuestionsCount = count
	return nil
}

type fakeSyncer struct {
	synced []primitive.ObjectID
}

func (f *fakeSyncer) SyncSolvedTotal(_ context.Context, teamID primitive.ObjectID) error {
	f.synced = append(f.synced, teamID)
	return nil
}

func TestUpdateSolvedCountSyncsTeam(t *testing.T) {
	teamID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	users := &fakeSolvedWriter{users: map[primitive.ObjectID]*models.User{
		userID: {ID: userID, TeamID: &teamID, SolvedQuestionsCount: 3},
	}}
	syncer := &fakeSyncer{}
	svc := NewService(users, syncer, zap.NewNop())

	if err := svc.UpdateSolvedCount(context.Background(), userID, 9); err != nil {
		t.Fatalf("UpdateSolvedCount: %v", err)
	}
	if users.users[userID].SolvedQuestionsCount != 9 {
		t.Fatalf("count = %d, want 9", users.users[userID].SolvedQuestionsCount)
	}
	if len(syncer.synced) != 1 || syncer.synced[0] != teamID {
		t.Fatalf("synced = %v, want [%s]", syncer.synced, teamID.Hex())
	}
}

func TestUpdateSolvedCountNoTeam(t *testing.T) {
	userID := primitive.NewObjectID()
	users := &fakeSolvedWriter{users: map[primitive.ObjectID]*models.User{
		userID: {ID: userID},
	}}
	syncer := &fakeSyncer{}
	svc := NewService(users, syncer, zap.NewNop())

	if err := svc.UpdateSolvedCount(context.Background(), userID, 4); err != nil {
		t.Fatalf("UpdateSolvedCount: %v", err)
	}
	if len(syncer.synced) != 0 {
		t.Fatal("sync ran for a user without a team")
	}
}

func TestUpdateSolvedCountValidation(t *testing.T) {
	users := &fakeSolvedWriter{users: map[primitive.ObjectID]*models.User{}}
	svc := NewService(users, &fakeSyncer{}, zap.NewNop())
	ctx := context.Background()

	if err := svc.UpdateSolvedCount(ctx, primitive.NewObjectID(), -1); apperr.KindOf(err) != apperr.InvalidInput {
		t.Fatalf("want InvalidInput for negative count, got %v", err)
	}
	if err := svc.UpdateSolvedCount(ctx, primitive.NewObjectID(), 1); apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("want NotFound for unknown user, got %v", err)
	}
}
