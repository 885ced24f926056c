// internal/app/features/progress/service.go
package progress

import (
	"context"

	"github.com/dalemusser/clubhub/internal/app/system/apperr"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SolvedWriter is the slice of the user store the progress engine
// needs.
type SolvedWriter interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateSolvedCount(ctx context.Context, id primitive.ObjectID, count int) error
}

// TeamSyncer recomputes a team's solved aggregate.
type TeamSyncer interface {
	SyncSolvedTotal(ctx context.Context, teamID primitive.ObjectID) error
}

// Service records solved-question counts. A user's count change makes
// their team's aggregate stale, so the team sync runs in the same
// request.
type Service struct {
	Users SolvedWriter
	Teams TeamSyncer
	Log   *zap.Logger
}

func NewService(users SolvedWriter, teams TeamSyncer, logger *zap.Logger) *Service {
	return &Service{Users: users, Teams: teams, Log: logger}
}

// UpdateSolvedCount sets a user's solved count and resyncs their
// team's aggregate when they have one.
func (s *Service) UpdateSolvedCount(ctx context.Context, userID primitive.ObjectID, count int) error {
	if count < 0 {
		return apperr.New(apperr.InvalidInput, "Solved count cannot be negative")
	}

	user, err := s.Users.GetByID(ctx, userID)
	if err == mongo.ErrNoDocuments {
		return apperr.New(apperr.NotFound, "User not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	if err := s.Users.UpdateSolvedCount(ctx, userID, count); err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	if user.TeamID != nil {
		if err := s.Teams.SyncSolvedTotal(ctx, *user.TeamID); err != nil {
			return err
		}
	}

	s.Log.Info("solved count updated",
		zap.String("user_id", userID.Hex()),
		zap.Int("count", count))
	return nil
}
