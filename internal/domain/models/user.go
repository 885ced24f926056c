// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Award is a single monthly medal entry in a user's achievement history.
type Award struct {
	Month int `bson:"month" json:"month"`
	Year  int `bson:"year" json:"year"`
}

// Achievement holds the append-only medal history for a user.
type Achievement struct {
	Gold   []Award `bson:"gold" json:"gold"`
	Silver []Award `bson:"silver" json:"silver"`
	Bronze []Award `bson:"bronze" json:"bronze"`
}

// User represents a club member account at any rank, from prospective
// USER up to ADMIN.
//
// NOTE:
//   - TeamID is a weak reference: the team owns its members list, the
//     user record only points back for lookups.
//   - SolvedQuestionsCount is maintained by the stats-ingestion hook;
//     any change to it must be followed by a team aggregate re-sync.
type User struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name               string              `bson:"name" json:"name"`
	NameCI             string              `bson:"name_ci" json:"name_ci"` // lowercase, diacritics-stripped
	Bio                string              `bson:"bio,omitempty" json:"bio,omitempty"`
	Email              string              `bson:"email" json:"email"`
	PasswordHash       string              `bson:"password_hash" json:"-"`
	RegistrationNumber string              `bson:"registration_number" json:"registration_number"`
	AcademicYear       int                 `bson:"academic_year,omitempty" json:"academic_year,omitempty"` // 1-4
	PhoneNumber        string              `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	Role               string              `bson:"role" json:"role"` // member of hierarchy.Roles
	ProfilePicture     string              `bson:"profile_picture,omitempty" json:"profile_picture,omitempty"`
	LinkedinUsername   string              `bson:"linkedin_username,omitempty" json:"linkedin_username,omitempty"`
	LeetcodeUsername   string              `bson:"leetcode_username,omitempty" json:"leetcode_username,omitempty"`
	CodechefUsername   string              `bson:"codechef_username,omitempty" json:"codechef_username,omitempty"`
	CodeforcesUsername string              `bson:"codeforces_username,omitempty" json:"codeforces_username,omitempty"`
	TeamID             *primitive.ObjectID `bson:"team_id,omitempty" json:"team_id,omitempty"`

	SolvedQuestionsCount      int  `bson:"solved_questions_count" json:"solved_questions_count"`
	TotalContestsParticipated int  `bson:"total_contests_participated" json:"total_contests_participated"`
	CurrentRank               *int `bson:"current_rank,omitempty" json:"current_rank,omitempty"`
	Subscribed                bool `bson:"subscribed" json:"subscribed"`

	AuthToken        string     `bson:"auth_token,omitempty" json:"-"`
	ResetPasswordOTP string     `bson:"reset_password_otp,omitempty" json:"-"`
	OTPExpiry        *time.Time `bson:"otp_expiry,omitempty" json:"-"`

	Achievement Achievement `bson:"achievement" json:"achievement"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
