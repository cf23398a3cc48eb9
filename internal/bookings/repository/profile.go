package repository

import (
	"context"
	"errors"

	"sagradago/pkg/config"
	"sagradago/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const UsersCollectionName = "Users"

// ProfileRepository reads the profile records mirrored from the hosted
// auth platform. Only the mobile number is consumed, as a pre-fill
// fallback during booking submission.
type ProfileRepository interface {
	FindByID(ctx context.Context, userID string) (*model.UserProfile, error)
}

type mongoProfileRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoProfileRepository(cfg *config.Config, client *mongo.Client) ProfileRepository {
	db := client.Database(cfg.MongoDatabaseName)
	return &mongoProfileRepository{
		cfg:        cfg,
		collection: db.Collection(UsersCollectionName),
	}
}

// FindByID returns nil with no error when the profile does not exist;
// a missing profile just means nothing to pre-fill.
func (r *mongoProfileRepository) FindByID(ctx context.Context, userID string) (*model.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var profile model.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &profile, nil
}
