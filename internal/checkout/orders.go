package checkout

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"spiceshop/internal/models"
)

// MongoOrderStore persists orders as single immutable inserts. Inserts are
// deliberately not retried: an ambiguous failure must not risk a duplicate
// order.
type MongoOrderStore struct {
	DB *mongo.Database
}

func (s *MongoOrderStore) Insert(ctx context.Context, order models.Order) (primitive.ObjectID, error) {
	res, err := s.DB.Collection("orders").InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("unexpected inserted id type")
	}
	return id, nil
}
