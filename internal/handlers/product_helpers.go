package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"spiceshop/internal/models"
)

func normalizeProductDocument(raw bson.M) (models.Product, error) {
	if cat, ok := raw["category"].(string); ok {
		raw["category"] = []string{cat}
	}

	if val, ok := raw["isFeatured"]; ok {
		switch typed := val.(type) {
		case string:
			raw["isFeatured"] = typed == "true"
		case bool:
			// already bool, keep as is
		default:
			raw["isFeatured"] = false
		}
	} else {
		raw["isFeatured"] = false
	}

	data, err := bson.Marshal(raw)
	if err != nil {
		return models.Product{}, err
	}

	var p models.Product
	if err := bson.Unmarshal(data, &p); err != nil {
		return models.Product{}, err
	}

	return p, nil
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor) ([]models.Product, error) {
	products := make([]models.Product, 0)

	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}

		product, err := normalizeProductDocument(raw)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func loadVariants(ctx context.Context, db *mongo.Database, productID interface{}) ([]models.ProductVariant, error) {
	cursor, err := db.Collection("product_variants").Find(ctx, bson.M{"productId": productID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	variants := make([]models.ProductVariant, 0)
	if err := cursor.All(ctx, &variants); err != nil {
		return nil, err
	}
	return variants, nil
}
