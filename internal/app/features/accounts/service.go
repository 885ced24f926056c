// internal/app/features/accounts/service.go
package accounts

import (
	"context"
	"strings"
	"time"

	allowliststore "github.com/dalemusser/clubhub/internal/app/store/allowlist"
	userstore "github.com/dalemusser/clubhub/internal/app/store/users"
	"github.com/dalemusser/clubhub/internal/app/system/apperr"
	"github.com/dalemusser/clubhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubhub/internal/app/system/mailer"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserAccounts is the slice of the user store the account engine
// needs.
type UserAccounts interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u models.User) (models.User, error)
	SetAuthToken(ctx context.Context, id primitive.ObjectID, token string) error
	SetResetOTP(ctx context.Context, id primitive.ObjectID, otp string, expiry time.Time) error
	ResetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	List(ctx context.Context, page, limit int64, search string) ([]models.User, int64, error)
}

// Sender delivers outbound mail. The password-reset code is mailed
// before it is persisted, so a delivery failure leaves no live code.
type Sender interface {
	Send(e mailer.Email) error
}

// InviteConsumer checks and redeems a single-use invitation at
// registration. Verify leaves the invitation in place; Consume deletes
// it.
type InviteConsumer interface {
	Verify(ctx context.Context, email, otp string) error
	Consume(ctx context.Context, email, otp string) error
}

// BlockChecker reports whether an email is on the denylist.
type BlockChecker interface {
	Exists(ctx context.Context, email string) (bool, error)
}

// TeamDetacher takes a departing user off their team so the team's
// membership and aggregate stay consistent.
type TeamDetacher interface {
	RemoveMember(ctx context.Context, teamID, userID primitive.ObjectID) error
}

// Service handles registration, login and account administration.
// Registration is invitation-gated: it redeems the (email, code) pair
// the admission mail carried.
type Service struct {
	Users    UserAccounts
	Invites  InviteConsumer
	Blocked  BlockChecker
	Teams    TeamDetacher
	Mail     Sender
	SiteName string
	Log      *zap.Logger
}

func NewService(users UserAccounts, invites InviteConsumer, blocked BlockChecker, teams TeamDetacher, mail Sender, siteName string, logger *zap.Logger) *Service {
	return &Service{
		Users:    users,
		Invites:  invites,
		Blocked:  blocked,
		Teams:    teams,
		Mail:     mail,
		SiteName: siteName,
		Log:      logger,
	}
}

// resetOTPTTL is how long a mailed password-reset code stays valid.
const resetOTPTTL = 10 * time.Minute

// RegisterInput carries the self-service signup form.
type RegisterInput struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	OTP                string `json:"otp"`
	Bio                string `json:"bio"`
	RegistrationNumber string `json:"registration_number"`
	AcademicYear       int    `json:"academic_year"`
	PhoneNumber        string `json:"phone_number"`
	LinkedinUsername   string `json:"linkedin_username"`
	LeetcodeUsername   string `json:"leetcode_username"`
	CodechefUsername   string `json:"codechef_username"`
	CodeforcesUsername string `json:"codeforces_username"`
	Subscribed         bool   `json:"subscribed"`
}

// Register creates an account for an invited email. The invitation is
// redeemed exactly once; a wrong code leaves it intact for another
// attempt.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := normalize.Email(in.Email)
	name := normalize.Name(in.Name)
	if name == "" || email == "" || in.Password == "" || in.OTP == "" {
		return nil, apperr.New(apperr.InvalidInput, "Name, email, password and OTP are required")
	}
	if len(in.Password) < 8 {
		return nil, apperr.New(apperr.InvalidInput, "Password must be at least 8 characters")
	}

	blocked, err := s.Blocked.Exists(ctx, email)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	if blocked {
		return nil, apperr.New(apperr.Forbidden, "This email is blocked")
	}

	// Duplicate check up front so an existing user's retry does not
	// burn the invitation.
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.New(apperr.Conflict, "Email is already registered")
	} else if err != mongo.ErrNoDocuments {
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	// Check the code without consuming: the invitation must survive
	// any failure below so the candidate can retry.
	otp := strings.TrimSpace(in.OTP)
	switch err := s.Invites.Verify(ctx, email, otp); err {
	case nil:
	case allowliststore.ErrNotInvited:
		return nil, apperr.New(apperr.Forbidden, "This email is not allowed to register")
	case allowliststore.ErrWrongOTP:
		return nil, apperr.New(apperr.Unauthorized, "Invalid OTP")
	default:
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	user, err := s.Users.Create(ctx, models.User{
		Name:               name,
		Email:              email,
		PasswordHash:       string(hash),
		Bio:                htmlsanitize.Sanitize(in.Bio),
		RegistrationNumber: in.RegistrationNumber,
		AcademicYear:       in.AcademicYear,
		PhoneNumber:        strings.TrimSpace(in.PhoneNumber),
		LinkedinUsername:   strings.TrimSpace(in.LinkedinUsername),
		LeetcodeUsername:   strings.TrimSpace(in.LeetcodeUsername),
		CodechefUsername:   strings.TrimSpace(in.CodechefUsername),
		CodeforcesUsername: strings.TrimSpace(in.CodeforcesUsername),
		Subscribed:         in.Subscribed,
	})
	if err == userstore.ErrDuplicate {
		return nil, apperr.New(apperr.Conflict, "Email or registration number is already registered")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	// The account exists; the invitation is spent. A concurrent delete
	// (admin revoke, parallel attempt) is fine, anything else is only
	// logged because failing now would strand a created user.
	switch err := s.Invites.Consume(ctx, email, otp); err {
	case nil, allowliststore.ErrNotInvited:
	default:
		s.Log.Warn("invitation cleanup failed after registration",
			zap.String("email", email), zap.Error(err))
	}

	s.Log.Info("user registered", zap.String("email", email))
	return &user, nil
}

// Login checks credentials and issues a fresh API token. The same
// message covers unknown email and wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = normalize.Email(email)
	if email == "" || password == "" {
		return nil, "", apperr.New(apperr.InvalidInput, "Email and password are required")
	}

	user, err := s.Users.GetByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		return nil, "", apperr.New(apperr.Unauthorized, "Invalid email or password")
	}
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", apperr.New(apperr.Unauthorized, "Invalid email or password")
	}

	token := uuid.NewString()
	if err := s.Users.SetAuthToken(ctx, user.ID, token); err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	s.Log.Info("user logged in", zap.String("email", email))
	return user, token, nil
}

// ForgotPassword mails a short-lived reset code to a registered email.
// An unknown email gets the same silent success, so the endpoint does
// not reveal which addresses have accounts. The code is mailed before
// it is persisted; a delivery failure leaves no live code behind.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = normalize.Email(email)
	if email == "" {
		return apperr.New(apperr.InvalidInput, "Email is required")
	}

	user, err := s.Users.GetByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		s.Log.Info("password reset requested for unknown email", zap.String("email", email))
		return nil
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	otp := allowliststore.GenerateOTP()
	msg := mailer.BuildPasswordResetEmail(mailer.PasswordResetEmailData{
		SiteName: s.SiteName,
		OTP:      otp,
		Minutes:  int(resetOTPTTL / time.Minute),
	})
	msg.To = email
	if err := s.Mail.Send(msg); err != nil {
		return apperr.Wrap(apperr.Internal, "Could not send the reset email", err)
	}

	expiry := time.Now().UTC().Add(resetOTPTTL)
	if err := s.Users.SetResetOTP(ctx, user.ID, otp, expiry); err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	s.Log.Info("password reset code sent", zap.String("email", email))
	return nil
}

// ResetPassword sets a new password for the account that holds the
// mailed code. The same message covers unknown email, wrong code and
// expired code.
func (s *Service) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	email = normalize.Email(email)
	otp = strings.TrimSpace(otp)
	if email == "" || otp == "" || newPassword == "" {
		return apperr.New(apperr.InvalidInput, "Email, OTP and new password are required")
	}
	if len(newPassword) < 8 {
		return apperr.New(apperr.InvalidInput, "Password must be at least 8 characters")
	}

	user, err := s.Users.GetByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		return apperr.New(apperr.Unauthorized, "Invalid or expired OTP")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	if user.ResetPasswordOTP == "" || user.ResetPasswordOTP != otp {
		return apperr.New(apperr.Unauthorized, "Invalid or expired OTP")
	}
	if user.OTPExpiry == nil || time.Now().UTC().After(*user.OTPExpiry) {
		return apperr.New(apperr.Unauthorized, "Invalid or expired OTP")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	if err := s.Users.ResetPassword(ctx, user.ID, string(hash)); err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	s.Log.Info("password reset", zap.String("email", email))
	return nil
}

// Logout revokes the user's current API token.
func (s *Service) Logout(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.Users.SetAuthToken(ctx, userID, ""); err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	return nil
}

// DeleteUser removes an account. Admins cannot delete themselves; a
// user on a team is detached first so the team aggregate stays
// correct.
func (s *Service) DeleteUser(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	if actorID == targetID {
		return apperr.New(apperr.InvalidOperation, "Cannot delete yourself")
	}

	user, err := s.Users.GetByID(ctx, targetID)
	if err == mongo.ErrNoDocuments {
		return apperr.New(apperr.NotFound, "User not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	if user.TeamID != nil {
		if err := s.Teams.RemoveMember(ctx, *user.TeamID, targetID); err != nil {
			return err
		}
	}

	deleted, err := s.Users.Delete(ctx, targetID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	if deleted == 0 {
		return apperr.New(apperr.NotFound, "User not found")
	}

	s.Log.Info("user deleted", zap.String("user_id", targetID.Hex()))
	return nil
}

// Me returns the full profile of the authenticated user.
func (s *Service) Me(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	return user, nil
}

// ListUsers returns a page of users for the admin directory.
func (s *Service) ListUsers(ctx context.Context, page, limit int64, search string) ([]models.User, int64, error) {
	users, total, err := s.Users.List(ctx, page, limit, search)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	return users, total, nil
}
