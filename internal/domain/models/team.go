// internal/domain/models/team.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team groups users for the team leaderboard.
//
// TotalQuestionsSolved is a derived aggregate: the sum of
// solved_questions_count over the current members. It is recomputed by
// the team synchronizer after any member count change or membership
// change, never maintained incrementally.
type Team struct {
	ID                   primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	TeamName             string               `bson:"team_name" json:"team_name"`
	TeamNameCI           string               `bson:"team_name_ci" json:"team_name_ci"`
	Members              []primitive.ObjectID `bson:"members" json:"members"`
	TotalQuestionsSolved int                  `bson:"total_questions_solved" json:"total_questions_solved"`
	Rank                 int                  `bson:"rank,omitempty" json:"rank,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
