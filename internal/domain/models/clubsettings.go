// internal/domain/models/clubsettings.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultTeamSize is used until an admin saves a club-wide value.
const DefaultTeamSize = 4

// ClubSettings is the singleton configuration document for club-wide
// values set by admins. There is exactly one document in the
// club_settings collection; reads fall back to defaults when it does
// not exist yet.
type ClubSettings struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TeamSize      int                `bson:"team_size" json:"team_size"`
	UpdatedAt     *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	UpdatedByID   primitive.ObjectID `bson:"updated_by_id,omitempty" json:"updated_by_id,omitempty"`
	UpdatedByName string             `bson:"updated_by_name,omitempty" json:"updated_by_name,omitempty"`
}
