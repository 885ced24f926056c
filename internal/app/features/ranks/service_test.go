// internal/app/features/ranks/service_test.go
package ranks

import (
	"context"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/system/apperr"
	"github.com/dalemusser/clubhub/internal/app/system/hierarchy"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeUserRoles struct {
	users map[primitive.ObjectID]*models.User
}

func (f *fakeUserRoles) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRoles) UpdateRole(_ context.Context, id primitive.ObjectID, role string) error {
	u, ok := f.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.Role = role
	return nil
}

func newTestService(users *fakeUserRoles) *Service {
	return NewService(users, zap.NewNop())
}

func seedUser(f *fakeUserRoles, role string) primitive.ObjectID {
	if f.users == nil {
		f.users = map[primitive.ObjectID]*models.User{}
	}
	id := primitive.NewObjectID()
	f.users[id] = &models.User{ID: id, Role: role}
	return id
}

func TestPromoteEachStep(t *testing.T) {
	actor := primitive.NewObjectID()

	for i, from := range hierarchy.Roles[:len(hierarchy.Roles)-1] {
		want := hierarchy.Roles[i+1]
		users := &fakeUserRoles{}
		target := seedUser(users, from)
		svc := newTestService(users)

		got, err := svc.Promote(context.Background(), actor, target)
		if err != nil {
			t.Fatalf("Promote from %s: %v", from, err)
		}
		if got != want || users.users[target].Role != want {
			t.Fatalf("Promote from %s = %s, want %s", from, got, want)
		}
	}
}

func TestDemoteEachStep(t *testing.T) {
	actor := primitive.NewObjectID()

	for i, from := range hierarchy.Roles[1:] {
		want := hierarchy.Roles[i]
		users := &fakeUserRoles{}
		target := seedUser(users, from)
		svc := newTestService(users)

		got, err := svc.Demote(context.Background(), actor, target)
		if err != nil {
			t.Fatalf("Demote from %s: %v", from, err)
		}
		if got != want || users.users[target].Role != want {
			t.Fatalf("Demote from %s = %s, want %s", from, got, want)
		}
	}
}

func TestPromoteDemoteRoundTrip(t *testing.T) {
	actor := primitive.NewObjectID()
	users := &fakeUserRoles{}
	target := seedUser(users, hierarchy.RoleMember)
	svc := newTestService(users)
	ctx := context.Background()

	if _, err := svc.Promote(ctx, actor, target); err != nil {
		t.Fatalf("Promote: %v", err)
	}
	if _, err := svc.Demote(ctx, actor, target); err != nil {
		t.Fatalf("Demote: %v", err)
	}
	if got := users.users[target].Role; got != hierarchy.RoleMember {
		t.Fatalf("round trip role = %s, want %s", got, hierarchy.RoleMember)
	}
}

func TestPromoteBoundary(t *testing.T) {
	actor := primitive.NewObjectID()
	users := &fakeUserRoles{}
	target := seedUser(users, hierarchy.RoleAdmin)
	svc := newTestService(users)

	_, err := svc.Promote(context.Background(), actor, target)
	if apperr.KindOf(err) != apperr.InvalidOperation {
		t.Fatalf("want InvalidOperation at top rank, got %v", err)
	}
	if users.users[target].Role != hierarchy.RoleAdmin {
		t.Fatal("role changed at the boundary")
	}
}

func TestDemoteBoundary(t *testing.T) {
	actor := primitive.NewObjectID()
	users := &fakeUserRoles{}
	target := seedUser(users, hierarchy.RoleUser)
	svc := newTestService(users)

	_, err := svc.Demote(context.Background(), actor, target)
	if apperr.KindOf(err) != apperr.InvalidOperation {
		t.Fatalf("want InvalidOperation at bottom rank, got %v", err)
	}
}

func TestSelfActionRejected(t *testing.T) {
	users := &fakeUserRoles{}
	id := seedUser(users, hierarchy.RoleMember)
	svc := newTestService(users)
	ctx := context.Background()

	if _, err := svc.Promote(ctx, id, id); apperr.KindOf(err) != apperr.InvalidOperation {
		t.Fatalf("self promote: want InvalidOperation, got %v", err)
	}
	if _, err := svc.Demote(ctx, id, id); apperr.KindOf(err) != apperr.InvalidOperation {
		t.Fatalf("self demote: want InvalidOperation, got %v", err)
	}
	if users.users[id].Role != hierarchy.RoleMember {
		t.Fatal("role changed by a self action")
	}
}

func TestTargetNotFound(t *testing.T) {
	svc := newTestService(&fakeUserRoles{})

	_, err := svc.Promote(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("want NotFound, got %v", err)
	}
}
