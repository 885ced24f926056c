// internal/app/features/teams/service.go
package teams

import (
	"context"
	"strings"

	teamstore "github.com/dalemusser/clubhub/internal/app/store/teams"
	"github.com/dalemusser/clubhub/internal/app/system/apperr"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// TeamStore is the slice of the team store the team engine needs.
type TeamStore interface {
	Create(ctx context.Context, teamName string) (models.Team, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error)
	UpdateName(ctx context.Context, id primitive.ObjectID, teamName string) error
	AddMember(ctx context.Context, id, userID primitive.ObjectID) error
	RemoveMember(ctx context.Context, id, userID primitive.ObjectID) error
	SetTotalSolved(ctx context.Context, id primitive.ObjectID, total int) error
	List(ctx context.Context) ([]models.Team, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// MemberStore is the slice of the user store the team engine needs.
type MemberStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	SetTeam(ctx context.Context, id primitive.ObjectID, teamID *primitive.ObjectID) error
	ClearTeamRefs(ctx context.Context, teamID primitive.ObjectID) (int64, error)
}

// SettingsStore reads and writes the club-wide team size.
type SettingsStore interface {
	Get(ctx context.Context) (models.ClubSettings, error)
	SetTeamSize(ctx context.Context, teamSize int, byID primitive.ObjectID, byName string) error
}

// Service is the team engine. Membership is mirrored on both sides
// (team.members and user.team_id); every mutation here keeps the two
// in step and then recomputes the team's solved aggregate.
type Service struct {
	Teams    TeamStore
	Users    MemberStore
	Settings SettingsStore
	Log      *zap.Logger
}

func NewService(teams TeamStore, users MemberStore, settings SettingsStore, logger *zap.Logger) *Service {
	return &Service{Teams: teams, Users: users, Settings: settings, Log: logger}
}

// Create makes a new empty team. Team names are unique
// case-insensitively.
func (s *Service) Create(ctx context.Context, teamName string) (*models.Team, error) {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return nil, apperr.New(apperr.InvalidInput, "Team name is required")
	}

	team, err := s.Teams.Create(ctx, teamName)
	if err == teamstore.ErrDuplicateTeam {
		return nil, apperr.New(apperr.Conflict, "Team name already exists")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	s.Log.Info("team created", zap.String("team_id", team.ID.Hex()), zap.String("name", teamName))
	return &team, nil
}

// Rename changes a team's name.
func (s *Service) Rename(ctx context.Context, teamID primitive.ObjectID, teamName string) error {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return apperr.New(apperr.InvalidInput, "Team name is required")
	}

	if _, err := s.loadTeam(ctx, teamID); err != nil {
		return err
	}

	err := s.Teams.UpdateName(ctx, teamID, teamName)
	if err == teamstore.ErrDuplicateTeam {
		return apperr.New(apperr.Conflict, "Team name already exists")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	return nil
}

// Delete disbands a team. Members' team references are cleared first
// so no user is left pointing at a dead team.
func (s *Service) Delete(ctx context.Context, teamID primitive.ObjectID) error {
	if _, err := s.loadTeam(ctx, teamID); err != nil {
		return err
	}

	cleared, err := s.Users.ClearTeamRefs(ctx, teamID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	deleted, err := s.Teams.Delete(ctx, teamID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	if deleted == 0 {
		return apperr.New(apperr.NotFound, "Team not found")
	}

	s.Log.Info("team deleted",
		zap.String("team_id", teamID.Hex()),
		zap.Int64("members_cleared", cleared))
	return nil
}

// AddMember places a user on a team, subject to the club-wide size
// limit, and resyncs the team's solved aggregate.
func (s *Service) AddMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	team, err := s.loadTeam(ctx, teamID)
	if err != nil {
		return err
	}

	user, err := s.Users.GetByID(ctx, userID)
	if err == mongo.ErrNoDocuments {
		return apperr.New(apperr.NotFound, "User not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	if user.TeamID != nil {
		return apperr.New(apperr.InvalidOperation, "User is already on a team")
	}

	settings, err := s.Settings.Get(ctx)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	if len(team.Members) >= settings.TeamSize {
		return apperr.New(apperr.InvalidOperation, "Team is already full")
	}

	if err := s.Teams.AddMember(ctx, teamID, userID); err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	if err := s.Users.SetTeam(ctx, userID, &teamID); err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	return s.SyncSolvedTotal(ctx, teamID)
}

// RemoveMember takes a user off a team and resyncs the team's solved
// aggregate.
func (s *Service) RemoveMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	if _, err := s.loadTeam(ctx, teamID); err != nil {
		return err
	}

	user, err := s.Users.GetByID(ctx, userID)
	if err == mongo.ErrNoDocuments {
		return apperr.New(apperr.NotFound, "User not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	if user.TeamID == nil || *user.TeamID != teamID {
		return apperr.New(apperr.InvalidOperation, "User is not on this team")
	}

	if err := s.Teams.RemoveMember(ctx, teamID, userID); err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	if err := s.Users.SetTeam(ctx, userID, nil); err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	return s.SyncSolvedTotal(ctx, teamID)
}

// List returns all teams, best first.
func (s *Service) List(ctx context.Context) ([]models.Team, error) {
	teams, err := s.Teams.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	return teams, nil
}

// SetTeamSize saves the club-wide team cap. Existing oversized teams
// keep their members; the cap applies to future additions only.
func (s *Service) SetTeamSize(ctx context.Context, size int, byID primitive.ObjectID, byName string) error {
	if size < 1 {
		return apperr.New(apperr.InvalidInput, "Team size must be at least 1")
	}
	if err := s.Settings.SetTeamSize(ctx, size, byID, byName); err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	s.Log.Info("team size updated", zap.Int("team_size", size), zap.String("by", byName))
	return nil
}

// SyncSolvedTotal recomputes a team's solved aggregate from its
// current members. A missing team is a no-op: the team may have been
// deleted between the triggering event and the sync, and that is not
// an error. Stale members (deleted users still listed) simply
// contribute nothing to the sum.
func (s *Service) SyncSolvedTotal(ctx context.Context, teamID primitive.ObjectID) error {
	team, err := s.Teams.GetByID(ctx, teamID)
	if err == mongo.ErrNoDocuments {
		return nil
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	total := 0
	if len(team.Members) > 0 {
		members, err := s.Users.GetByIDs(ctx, team.Members)
		if err != nil {
			return apperr.Wrap(apperr.Internal, "internal server error", err)
		}
		for _, m := range members {
			total += m.SolvedQuestionsCount
		}
	}

	if err := s.Teams.SetTotalSolved(ctx, teamID, total); err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	s.Log.Debug("team aggregate synced",
		zap.String("team_id", teamID.Hex()),
		zap.Int("total_solved", total))
	return nil
}

func (s *Service) loadTeam(ctx context.Context, teamID primitive.ObjectID) (*models.Team, error) {
	team, err := s.Teams.GetByID(ctx, teamID)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "Team not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	return team, nil
}
