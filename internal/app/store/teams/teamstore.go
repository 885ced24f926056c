// internal/app/store/teams/teamstore.go
package teamstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/clubhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateTeam is returned when a team with the same name already
// exists.
var ErrDuplicateTeam = errors.New("a team with this name already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teams")}
}

// Create inserts a new, empty team.
func (s *Store) Create(ctx context.Context, teamName string) (models.Team, error) {
	now := time.Now().UTC()
	team := models.Team{
		ID:         primitive.NewObjectID(),
		TeamName:   teamName,
		TeamNameCI: text.Fold(teamName),
		Members:    []primitive.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := s.c.InsertOne(ctx, team); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Team{}, ErrDuplicateTeam
		}
		return models.Team{}, err
	}
	return team, nil
}

// GetByID loads a team. Returns mongo.ErrNoDocuments when the team
// does not exist (callers decide whether that is an error; the
// aggregate synchronizer tolerates it).
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	var team models.Team
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&team); err != nil {
		return nil, err
	}
	return &team, nil
}

// UpdateName renames a team.
func (s *Store) UpdateName(ctx context.Context, id primitive.ObjectID, teamName string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"team_name":    teamName,
		"team_name_ci": text.Fold(teamName),
		"updated_at":   time.Now().UTC(),
	}})
	if err != nil && wafflemongo.IsDup(err) {
		return ErrDuplicateTeam
	}
	return err
}

// AddMember adds a user to the members list (idempotent).
func (s *Store) AddMember(ctx context.Context, id, userID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"members": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// RemoveMember removes a user from the members list.
func (s *Store) RemoveMember(ctx context.Context, id, userID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"members": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// SetTotalSolved persists the recomputed aggregate.
func (s *Store) SetTotalSolved(ctx context.Context, id primitive.ObjectID, total int) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"total_questions_solved": total,
		"updated_at":             time.Now().UTC(),
	}})
	return err
}

// List returns all teams ordered by total solved, best first. Ties
// break on name so the order is stable.
func (s *Store) List(ctx context.Context) ([]models.Team, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "total_questions_solved", Value: -1},
		{Key: "team_name_ci", Value: 1},
	})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var teams []models.Team
	if err := cur.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// Delete removes a team by ID. Returns the number of documents deleted
// (0 or 1). Callers must clear the members' team references first.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
