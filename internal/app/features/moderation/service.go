// internal/app/features/moderation/service.go
package moderation

import (
	"context"

	blockliststore "github.com/dalemusser/clubhub/internal/app/store/blocklist"
	"github.com/dalemusser/clubhub/internal/app/system/apperr"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.uber.org/zap"
)

// DenyStore is the slice of the blocklist store the moderation engine
// needs.
type DenyStore interface {
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, email string) (models.BlockedEmail, error)
	Delete(ctx context.Context, email string) (int64, error)
}

// InvitePurger removes live invitations for an address being blocked.
type InvitePurger interface {
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

// UserPurger removes the account of an address being blocked.
type UserPurger interface {
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

// Service is the block/unblock engine. An address is in at most one of
// the three states (registered, invited, blocked); blocking purges the
// other two before the denylist insert.
type Service struct {
	Blocked DenyStore
	Invites InvitePurger
	Users   UserPurger
	Log     *zap.Logger
}

func NewService(blocked DenyStore, invites InvitePurger, users UserPurger, logger *zap.Logger) *Service {
	return &Service{Blocked: blocked, Invites: invites, Users: users, Log: logger}
}

// Block bans an email address. Any live invitation and any registered
// account for the address are removed first, then the denylist entry
// is inserted. Blocking an already blocked address is a conflict.
func (s *Service) Block(ctx context.Context, rawEmail string) error {
	email := normalize.Email(rawEmail)
	if email == "" {
		return apperr.New(apperr.InvalidInput, "Email is required")
	}

	blocked, err := s.Blocked.Exists(ctx, email)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	if blocked {
		return apperr.New(apperr.Conflict, "Email is already blocked")
	}

	// Purge before insert so the address never holds a second state
	// alongside the denylist entry.
	removedInvites, err := s.Invites.DeleteByEmail(ctx, email)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	removedUsers, err := s.Users.DeleteByEmail(ctx, email)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	if _, err := s.Blocked.Create(ctx, email); err != nil {
		if err == blockliststore.ErrAlreadyBlocked {
			return apperr.New(apperr.Conflict, "Email is already blocked")
		}
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	s.Log.Info("email blocked",
		zap.String("email", email),
		zap.Int64("invites_removed", removedInvites),
		zap.Int64("users_removed", removedUsers))
	return nil
}

// Unblock lifts a ban. The address returns to a neutral state; it is
// not re-invited and no account is restored.
func (s *Service) Unblock(ctx context.Context, rawEmail string) error {
	email := normalize.Email(rawEmail)
	if email == "" {
		return apperr.New(apperr.InvalidInput, "Email is required")
	}

	deleted, err := s.Blocked.Delete(ctx, email)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	if deleted == 0 {
		return apperr.New(apperr.InvalidOperation, "Email is not blocked")
	}

	s.Log.Info("email unblocked", zap.String("email", email))
	return nil
}
