package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adamcernik/biketime-public-sub000/internal/model"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("record not found")

// ProductRepository is the data access contract for the products collection.
type ProductRepository interface {
	// FindAllActive returns every record participating in the public catalog.
	FindAllActive(ctx context.Context) ([]*model.Product, error)
	// FindAll returns every record including soft-deleted ones (admin grid).
	FindAll(ctx context.Context) ([]*model.Product, error)
	// FindActiveByID returns one active record or ErrNotFound.
	FindActiveByID(ctx context.Context, id string) (*model.Product, error)
	// UpdateByID applies a $set patch to one record.
	UpdateByID(ctx context.Context, id string, patch bson.M) error
	// UpsertBatch writes one import chunk, upserting by part number.
	// Returns the number of documents written.
	UpsertBatch(ctx context.Context, products []model.Product) (int, error)
}

type mongoProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{collection: db.Collection("products")}
}

func (r *mongoProductRepository) FindAllActive(ctx context.Context) ([]*model.Product, error) {
	return r.find(ctx, bson.M{"isActive": true})
}

func (r *mongoProductRepository) FindAll(ctx context.Context) ([]*model.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoProductRepository) find(ctx context.Context, filter bson.M) ([]*model.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Stable order so aggregation input order never depends on the store.
	opts := options.Find().SetSort(bson.D{{Key: "partNumber", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []*model.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *mongoProductRepository) FindActiveByID(ctx context.Context, id string) (*model.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var product model.Product
	err = r.collection.FindOne(ctx, bson.M{"_id": objID, "isActive": true}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *mongoProductRepository) UpdateByID(ctx context.Context, id string, patch bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": patch})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoProductRepository) UpsertBatch(ctx context.Context, products []model.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	writes := make([]mongo.WriteModel, 0, len(products))
	for _, p := range products {
		p.ID = primitive.NilObjectID
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"partNumber": p.PartNumber}).
			SetUpdate(bson.M{"$set": p}).
			SetUpsert(true))
	}

	res, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return 0, err
	}
	return int(res.ModifiedCount + res.UpsertedCount), nil
}
