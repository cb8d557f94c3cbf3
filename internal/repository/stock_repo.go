package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adamcernik/biketime-public-sub000/internal/model"
)

// StockRepository is the data access contract for the stock ledger
// collection. The ledger is read whole on every aggregation pass; the
// resolver needs collection-level emptiness to pick its mode.
type StockRepository interface {
	FindAll(ctx context.Context) ([]model.StockLedgerEntry, error)
	Upsert(ctx context.Context, key string, onHand, inTransit int) error
}

type mongoStockRepository struct {
	collection *mongo.Collection
}

func NewStockRepository(db *mongo.Database) StockRepository {
	return &mongoStockRepository{collection: db.Collection("stock")}
}

func (r *mongoStockRepository) FindAll(ctx context.Context) ([]model.StockLedgerEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []model.StockLedgerEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *mongoStockRepository) Upsert(ctx context.Context, key string, onHand, inTransit int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"key": key},
		bson.M{"$set": bson.M{"key": key, "onHand": onHand, "inTransit": inTransit}},
		options.Update().SetUpsert(true),
	)
	return err
}
