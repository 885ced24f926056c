// internal/domain/models/blockedemail.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlockedEmail is a denylist entry. A blocked address can neither be
// invited nor register until it is explicitly unblocked.
type BlockedEmail struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
