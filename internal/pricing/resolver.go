package pricing

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"spiceshop/internal/models"
)

// ProductNotFoundError aborts the whole order: an id the catalog does not
// know usually means a stale cart on the client.
type ProductNotFoundError struct {
	ProductID primitive.ObjectID
}

func (e ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ProductID.Hex())
}

// ResolvedPrice is the authoritative answer for one order line.
type ResolvedPrice struct {
	Name      string
	UnitPrice float64
}

// Resolver answers price lookups from the product catalog. Lookup order:
// the product_variants collection keyed by (productId, size), then the
// canonical size table. Client-submitted prices are never consulted.
type Resolver struct {
	db *mongo.Database
}

func NewResolver(db *mongo.Database) *Resolver {
	return &Resolver{db: db}
}

func (r *Resolver) Resolve(ctx context.Context, productID primitive.ObjectID, size string) (ResolvedPrice, error) {
	var product models.Product
	err := r.db.Collection("products").FindOne(ctx, bson.M{
		"_id":       productID,
		"isDeleted": bson.M{"$ne": true},
	}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return ResolvedPrice{}, ProductNotFoundError{ProductID: productID}
	}
	if err != nil {
		return ResolvedPrice{}, err
	}

	var variant models.ProductVariant
	err = r.db.Collection("product_variants").FindOne(ctx, bson.M{
		"productId": productID,
		"size":      size,
	}).Decode(&variant)
	if err == nil {
		return ResolvedPrice{Name: product.Name, UnitPrice: variant.Price}, nil
	}
	if err != mongo.ErrNoDocuments {
		return ResolvedPrice{}, err
	}

	return ResolvedPrice{Name: product.Name, UnitPrice: canonicalPrice(size)}, nil
}
