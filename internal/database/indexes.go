package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureVariantIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	variantIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "productId", Value: 1},
			{Key: "size", Value: 1},
		},
		Options: options.Index().
			SetName("productId_size_unique").
			SetUnique(true),
	}

	log.Println("EnsureVariantIndexes: creating productId_size_unique index")
	_, err := db.Collection("product_variants").Indexes().CreateOne(ctx, variantIndex)
	if err != nil {
		log.Println("EnsureVariantIndexes: variant index error:", err)
		return err
	}
	return nil
}

func EnsureCustomerIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureCustomerIndexes: creating email_unique index")
	_, err := db.Collection("customers").Indexes().CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureCustomerIndexes: email index error:", err)
		return err
	}
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("userId_index"),
		},
		{
			// guest order lookup: email match sorted newest-first
			Keys: bson.D{
				{Key: "email", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("email_createdAt_index"),
		},
	}

	log.Println("EnsureOrderIndexes: creating order indexes")
	_, err := db.Collection("orders").Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Println("EnsureOrderIndexes: order index error:", err)
		return err
	}
	return nil
}

func EnsureReviewIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reviewIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "productId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("productId_createdAt_index"),
	}

	log.Println("EnsureReviewIndexes: creating productId_createdAt_index")
	_, err := db.Collection("reviews").Indexes().CreateOne(ctx, reviewIndex)
	if err != nil {
		log.Println("EnsureReviewIndexes: review index error:", err)
		return err
	}
	return nil
}
