package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "sagradago/internal/bookings/errors"
	"sagradago/pkg/config"
	"sagradago/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	BaptismCollectionName = "Baptism_documents"
	WeddingCollectionName = "Wedding_documents"
	BurialCollectionName  = "Burial_documents"
)

// DocumentRepository persists sacrament-specific documents, one
// collection per sacrament that carries one.
type DocumentRepository interface {
	InsertBaptism(ctx context.Context, doc *model.BaptismDocument) (string, error)
	InsertWedding(ctx context.Context, doc *model.WeddingDocument) (string, error)
	InsertBurial(ctx context.Context, doc *model.BurialDocument) (string, error)
}

type mongoDocumentRepository struct {
	cfg     *config.Config
	baptism *mongo.Collection
	wedding *mongo.Collection
	burial  *mongo.Collection
}

func NewMongoDocumentRepository(cfg *config.Config, client *mongo.Client) DocumentRepository {
	db := client.Database(cfg.MongoDatabaseName)
	return &mongoDocumentRepository{
		cfg:     cfg,
		baptism: db.Collection(BaptismCollectionName),
		wedding: db.Collection(WeddingCollectionName),
		burial:  db.Collection(BurialCollectionName),
	}
}

func (r *mongoDocumentRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoDocumentRepository) insert(ctx context.Context, collection *mongo.Collection, doc any) (string, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection.Name(), err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", bookingserrors.ErrDocumentNotInserted
	}

	return oid.Hex(), nil
}

func (r *mongoDocumentRepository) InsertBaptism(ctx context.Context, doc *model.BaptismDocument) (string, error) {
	doc.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	return r.insert(ctx, r.baptism, doc)
}

func (r *mongoDocumentRepository) InsertWedding(ctx context.Context, doc *model.WeddingDocument) (string, error) {
	doc.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	return r.insert(ctx, r.wedding, doc)
}

func (r *mongoDocumentRepository) InsertBurial(ctx context.Context, doc *model.BurialDocument) (string, error) {
	doc.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	return r.insert(ctx, r.burial, doc)
}
