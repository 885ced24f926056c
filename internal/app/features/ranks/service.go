// internal/app/features/ranks/service.go
package ranks

import (
	"context"

	"github.com/dalemusser/clubhub/internal/app/system/apperr"
	"github.com/dalemusser/clubhub/internal/app/system/hierarchy"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// UserRoles is the slice of the user store the rank engine needs.
type UserRoles interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error
}

// Service moves users one step along the role ladder. Every change is
// a single step; there is no direct role assignment.
type Service struct {
	Users UserRoles
	Log   *zap.Logger
}

func NewService(users UserRoles, logger *zap.Logger) *Service {
	return &Service{Users: users, Log: logger}
}

// Promote raises the target one rank. Self-promotion is rejected, as
// is promoting past the top of the ladder.
func (s *Service) Promote(ctx context.Context, actorID, targetID primitive.ObjectID) (string, error) {
	if actorID == targetID {
		return "", apperr.New(apperr.InvalidOperation, "Cannot promote yourself")
	}
	return s.step(ctx, targetID, hierarchy.NextHigher, "User is already at the highest rank")
}

// Demote lowers the target one rank. Self-demotion is rejected, as is
// demoting below the bottom of the ladder.
func (s *Service) Demote(ctx context.Context, actorID, targetID primitive.ObjectID) (string, error) {
	if actorID == targetID {
		return "", apperr.New(apperr.InvalidOperation, "Cannot demote yourself")
	}
	return s.step(ctx, targetID, hierarchy.NextLower, "User is already at the lowest rank")
}

func (s *Service) step(ctx context.Context, targetID primitive.ObjectID, next func(string) (string, bool), boundaryMsg string) (string, error) {
	user, err := s.Users.GetByID(ctx, targetID)
	if err == mongo.ErrNoDocuments {
		return "", apperr.New(apperr.NotFound, "User not found")
	}
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	newRole, ok := next(user.Role)
	if !ok {
		return "", apperr.New(apperr.InvalidOperation, boundaryMsg)
	}

	if err := s.Users.UpdateRole(ctx, targetID, newRole); err != nil {
		return "", apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	s.Log.Info("role changed",
		zap.String("user_id", targetID.Hex()),
		zap.String("from", user.Role),
		zap.String("to", newRole))
	return newRole, nil
}
