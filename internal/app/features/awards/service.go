// internal/app/features/awards/service.go
package awards

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/apperr"
	"github.com/dalemusser/clubhub/internal/app/system/mailer"
	"github.com/dalemusser/clubhub/internal/app/system/tasks"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Medal labels, in award order for the monthly top three.
const (
	MedalGold   = "gold"
	MedalSilver = "silver"
	MedalBronze = "bronze"
)

var medals = []string{MedalGold, MedalSilver, MedalBronze}

// Leaderboard is the slice of the user store the awards engine needs.
type Leaderboard interface {
	TopByCurrentRank(ctx context.Context, limit int64) ([]models.User, error)
	AppendAward(ctx context.Context, id primitive.ObjectID, medal string, award models.Award) error
	HasAwardForMonth(ctx context.Context, month, year int) (bool, error)
}

// AlertSender delivers operational alerts to the maintainer address.
type AlertSender interface {
	Send(e mailer.Email) error
}

// Service hands out the monthly contest medals. The top three users by
// current contest standing get gold, silver and bronze entries in their
// achievement history.
type Service struct {
	Users      Leaderboard
	Mail       AlertSender
	AlertEmail string
	Log        *zap.Logger
}

func NewService(users Leaderboard, mail AlertSender, alertEmail string, logger *zap.Logger) *Service {
	return &Service{Users: users, Mail: mail, AlertEmail: alertEmail, Log: logger}
}

// RunMonthly executes one award cycle for the month containing now.
// A month that already has medals is skipped, so a restart near the
// firing instant cannot double-award. With no ranked users the cycle
// is a quiet no-op. A persistence failure mid-cycle alerts the
// maintainer and abandons the cycle; the guard then keeps a re-run
// from duplicating the medals already written.
func (s *Service) RunMonthly(ctx context.Context, now time.Time) error {
	month, year := int(now.Month()), now.Year()

	awarded, err := s.Users.HasAwardForMonth(ctx, month, year)
	if err != nil {
		s.alert(month, year, err)
		return apperr.Wrap(apperr.Internal, "award guard check failed", err)
	}
	if awarded {
		s.Log.Info("awards already granted for this month",
			zap.Int("month", month), zap.Int("year", year))
		return nil
	}

	top, err := s.Users.TopByCurrentRank(ctx, int64(len(medals)))
	if err != nil {
		s.alert(month, year, err)
		return apperr.Wrap(apperr.Internal, "leaderboard query failed", err)
	}
	if len(top) == 0 {
		s.Log.Info("no ranked users this month, skipping awards",
			zap.Int("month", month), zap.Int("year", year))
		return nil
	}

	award := models.Award{Month: month, Year: year}
	for i, user := range top {
		if err := s.Users.AppendAward(ctx, user.ID, medals[i], award); err != nil {
			s.alert(month, year, err)
			return apperr.Wrap(apperr.Internal, "award persist failed", err)
		}
		s.Log.Info("medal awarded",
			zap.String("medal", medals[i]),
			zap.String("user_id", user.ID.Hex()),
			zap.Int("month", month),
			zap.Int("year", year))
	}
	return nil
}

func (s *Service) alert(month, year int, cause error) {
	if s.AlertEmail == "" {
		return
	}
	msg := mailer.BuildAlertEmail(
		"Monthly awards job failed",
		fmt.Sprintf("The awards cycle for %d/%d failed: %v", month, year, cause),
	)
	msg.To = s.AlertEmail
	if err := s.Mail.Send(msg); err != nil {
		s.Log.Error("alert delivery failed", zap.Error(err))
	}
}

// Job returns the background job that fires at the last minute of each
// month.
func (s *Service) Job() tasks.Job {
	return tasks.Job{
		Name: "monthly-awards",
		Next: EndOfMonth,
		Run: func(ctx context.Context) error {
			return s.RunMonthly(ctx, time.Now())
		},
	}
}

// EndOfMonth returns the next instant of "last day of the month,
// 23:59" at or after now. Called right after a firing it rolls over to
// the following month, so the job cannot spin on the same instant.
func EndOfMonth(now time.Time) time.Time {
	// One minute before the first midnight of next month.
	firstOfNext := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	fire := firstOfNext.Add(-time.Minute)
	if fire.After(now) {
		return fire
	}
	return firstOfNext.AddDate(0, 1, 0).Add(-time.Minute)
}
