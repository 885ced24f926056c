// internal/app/features/admissions/service.go
package admissions

import (
	"context"

	allowliststore "github.com/dalemusser/clubhub/internal/app/store/allowlist"
	"github.com/dalemusser/clubhub/internal/app/system/apperr"
	"github.com/dalemusser/clubhub/internal/app/system/mailer"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Skip reasons surfaced to the admin UI so it can show exactly which
// addresses need manual follow-up.
const (
	ReasonAlreadyRegistered = "already registered"
	ReasonAlreadyInvited    = "already invited"
	ReasonBlocked           = "blocked"
	ReasonDeliveryFailed    = "delivery failed"
	ReasonInvalidEmail      = "invalid email"
	ReasonInternal          = "internal error"
)

// UserDirectory is the slice of the user store the admission engine
// needs.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// InviteStore is the slice of the allowlist store the admission engine
// needs.
type InviteStore interface {
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, email, otp string) (models.AllowedEmail, error)
}

// BlockChecker reports whether an email is on the denylist.
type BlockChecker interface {
	Exists(ctx context.Context, email string) (bool, error)
}

// Sender delivers a single mail and reports per-recipient failure.
type Sender interface {
	Send(e mailer.Email) error
}

// Skipped is one rejected candidate with its reason.
type Skipped struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// BatchResult partitions an admission batch into delivered invitations
// and skips.
type BatchResult struct {
	AdmittedCount int       `json:"added_count"`
	SkippedCount  int       `json:"skipped_count"`
	Admitted      []string  `json:"added_emails"`
	Skipped       []Skipped `json:"skipped_emails"`
}

// Service is the allowlist admission engine. Candidates are processed
// independently; one failure never aborts the batch.
type Service struct {
	Users    UserDirectory
	Invites  InviteStore
	Blocked  BlockChecker
	Mail     Sender
	SiteName string
	Log      *zap.Logger
}

func NewService(users UserDirectory, invites InviteStore, blocked BlockChecker, mail Sender, siteName string, logger *zap.Logger) *Service {
	return &Service{
		Users:    users,
		Invites:  invites,
		Blocked:  blocked,
		Mail:     mail,
		SiteName: siteName,
		Log:      logger,
	}
}

// AdmitBatch processes a batch of candidate emails. For each novel
// candidate it generates a 6-digit invitation code, attempts delivery,
// and persists the allowlist entry only after delivery succeeds, so
// the allowlist never holds an invitation nobody received. Duplicate
// candidates (registered users, live invitations, blocked addresses)
// and delivery failures are skipped with a reason; a later AdmitBatch
// covering the same email is the retry mechanism.
func (s *Service) AdmitBatch(ctx context.Context, emails []string) (*BatchResult, error) {
	if len(emails) == 0 {
		return nil, apperr.New(apperr.InvalidInput, "No emails provided or invalid input")
	}

	result := &BatchResult{
		Admitted: []string{},
		Skipped:  []Skipped{},
	}

	for _, raw := range emails {
		email := normalize.Email(raw)
		if email == "" {
			result.skip(raw, ReasonInvalidEmail)
			continue
		}
		result.add(s.admitOne(ctx, email))
	}

	result.AdmittedCount = len(result.Admitted)
	result.SkippedCount = len(result.Skipped)
	return result, nil
}

type outcome struct {
	email   string
	skipped string // empty means admitted
}

func (r *BatchResult) add(o outcome) {
	if o.skipped == "" {
		r.Admitted = append(r.Admitted, o.email)
		return
	}
	r.Skipped = append(r.Skipped, Skipped{Email: o.email, Reason: o.skipped})
}

func (r *BatchResult) skip(email, reason string) {
	r.Skipped = append(r.Skipped, Skipped{Email: email, Reason: reason})
}

func (s *Service) admitOne(ctx context.Context, email string) outcome {
	// Already a registered user?
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return outcome{email, ReasonAlreadyRegistered}
	} else if err != mongo.ErrNoDocuments {
		s.Log.Warn("user lookup failed", zap.String("email", email), zap.Error(err))
		return outcome{email, ReasonInternal}
	}

	// Already invited?
	invited, err := s.Invites.Exists(ctx, email)
	if err != nil {
		s.Log.Warn("allowlist lookup failed", zap.String("email", email), zap.Error(err))
		return outcome{email, ReasonInternal}
	}
	if invited {
		return outcome{email, ReasonAlreadyInvited}
	}

	// Blocked addresses can never be invited; unblock first.
	blocked, err := s.Blocked.Exists(ctx, email)
	if err != nil {
		s.Log.Warn("blocklist lookup failed", zap.String("email", email), zap.Error(err))
		return outcome{email, ReasonInternal}
	}
	if blocked {
		return outcome{email, ReasonBlocked}
	}

	otp := allowliststore.GenerateOTP()

	msg := mailer.BuildInvitationEmail(mailer.InvitationEmailData{
		SiteName: s.SiteName,
		Email:    email,
		OTP:      otp,
	})
	msg.To = email

	// Delivery strictly precedes persistence: never invert this.
	if err := s.Mail.Send(msg); err != nil {
		s.Log.Warn("invitation delivery failed", zap.String("email", email), zap.Error(err))
		return outcome{email, ReasonDeliveryFailed}
	}

	if _, err := s.Invites.Create(ctx, email, otp); err != nil {
		if err == allowliststore.ErrAlreadyInvited {
			// Raced with a concurrent batch covering the same email.
			return outcome{email, ReasonAlreadyInvited}
		}
		// The candidate has the mail but no allowlist entry; a re-run
		// of the batch re-invites them cleanly.
		s.Log.Error("persist invitation failed after delivery",
			zap.String("email", email), zap.Error(err))
		return outcome{email, ReasonInternal}
	}

	s.Log.Info("invitation sent", zap.String("email", email))
	return outcome{email, ""}
}
