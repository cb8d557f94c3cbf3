package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adamcernik/biketime-public-sub000/internal/model"
)

// DealerRepository looks up registered wholesale buyers for login.
type DealerRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.Dealer, error)
}

type mongoDealerRepository struct {
	collection *mongo.Collection
}

func NewDealerRepository(db *mongo.Database) DealerRepository {
	return &mongoDealerRepository{collection: db.Collection("dealers")}
}

func (r *mongoDealerRepository) FindByEmail(ctx context.Context, email string) (*model.Dealer, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var dealer model.Dealer
	err := r.collection.FindOne(ctx, bson.M{"email": email, "isActive": true}).Decode(&dealer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dealer, nil
}
