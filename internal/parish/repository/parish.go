package repository

import (
	"context"
	"fmt"
	"time"

	"sagradago/pkg/config"
	"sagradago/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	EventsCollectionName     = "Events"
	DonationsCollectionName  = "Donations"
	VolunteersCollectionName = "Volunteers"
)

// ParishRepository persists the simple parish-office records: events,
// donations, and volunteer registrations.
type ParishRepository interface {
	CreateEvent(ctx context.Context, event *model.Event) error
	FindUpcomingEvents(ctx context.Context, from time.Time, limit int, offset int64) ([]*model.Event, error)
	CountUpcomingEvents(ctx context.Context, from time.Time) (int64, error)

	CreateDonation(ctx context.Context, donation *model.Donation) error
	FindDonationsForUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Donation, error)

	CreateVolunteer(ctx context.Context, volunteer *model.Volunteer) error
}

type mongoParishRepository struct {
	cfg        *config.Config
	events     *mongo.Collection
	donations  *mongo.Collection
	volunteers *mongo.Collection
}

func NewMongoParishRepository(cfg *config.Config, client *mongo.Client) ParishRepository {
	db := client.Database(cfg.MongoDatabaseName)
	return &mongoParishRepository{
		cfg:        cfg,
		events:     db.Collection(EventsCollectionName),
		donations:  db.Collection(DonationsCollectionName),
		volunteers: db.Collection(VolunteersCollectionName),
	}
}

func (r *mongoParishRepository) CreateEvent(ctx context.Context, event *model.Event) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	event.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.events.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid.Hex()
	}
	return nil
}

func (r *mongoParishRepository) FindUpcomingEvents(ctx context.Context, from time.Time, limit int, offset int64) ([]*model.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.events.Find(ctx, bson.M{"end_time": bson.M{"$gte": from}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*model.Event
	if err = cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}

	return events, nil
}

func (r *mongoParishRepository) CountUpcomingEvents(ctx context.Context, from time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.events.CountDocuments(ctx, bson.M{"end_time": bson.M{"$gte": from}})
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

func (r *mongoParishRepository) CreateDonation(ctx context.Context, donation *model.Donation) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	donation.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.donations.InsertOne(ctx, donation)
	if err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		donation.ID = oid.Hex()
	}
	return nil
}

func (r *mongoParishRepository) FindDonationsForUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Donation, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.donations.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find donations: %w", err)
	}
	defer cursor.Close(ctx)

	var donations []*model.Donation
	if err = cursor.All(ctx, &donations); err != nil {
		return nil, fmt.Errorf("failed to decode donations: %w", err)
	}

	return donations, nil
}

func (r *mongoParishRepository) CreateVolunteer(ctx context.Context, volunteer *model.Volunteer) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	volunteer.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.volunteers.InsertOne(ctx, volunteer)
	if err != nil {
		return fmt.Errorf("failed to create volunteer: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		volunteer.ID = oid.Hex()
	}
	return nil
}
