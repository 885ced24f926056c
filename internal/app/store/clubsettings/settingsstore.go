// internal/app/store/clubsettings/settingsstore.go
package clubsettingsstore

import (
	"context"
	"time"

	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the club_settings collection, which holds a
// single club-wide configuration document.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("club_settings")}
}

// Get returns the club settings, falling back to defaults when nothing
// has been saved yet.
func (s *Store) Get(ctx context.Context) (models.ClubSettings, error) {
	var settings models.ClubSettings
	err := s.c.FindOne(ctx, bson.M{}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return models.ClubSettings{TeamSize: models.DefaultTeamSize}, nil
	}
	if err != nil {
		return models.ClubSettings{}, err
	}
	if settings.TeamSize < 1 {
		settings.TeamSize = models.DefaultTeamSize
	}
	return settings, nil
}

// SetTeamSize saves the club-wide team size. Uses upsert so it works
// whether the singleton document exists or not.
func (s *Store) SetTeamSize(ctx context.Context, teamSize int, byID primitive.ObjectID, byName string) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"team_size":       teamSize,
			"updated_at":      now,
			"updated_by_id":   byID,
			"updated_by_name": byName,
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{}, update, opts)
	return err
}
