// internal/domain/models/allowedemail.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AllowedEmail is a pending invitation: the address may complete
// registration by presenting the matching OTP.
//
// An entry is only ever created after the invitation mail was delivered,
// so the allowlist never contains an invitation the candidate never
// received. Registration consumes (deletes) the entry.
type AllowedEmail struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	OTP       string             `bson:"otp" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
