package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spiceshop/internal/models"
)

type productVariantRequest struct {
	Size  string  `json:"size" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
}

type createProductRequest struct {
	Name        string                  `json:"name" binding:"required"`
	Description string                  `json:"description"`
	Category    []string                `json:"category"`
	ImagePath   string                  `json:"imagePath"`
	IsActive    *bool                   `json:"isActive"`
	IsFeatured  bool                    `json:"isFeatured"`
	Variants    []productVariantRequest `json:"variants"`
}

type updateProductRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Category    *[]string `json:"category"`
	ImagePath   *string   `json:"imagePath"`
	IsActive    *bool     `json:"isActive"`
	IsFeatured  *bool     `json:"isFeatured"`
}

// GetAllProducts lists the catalog for the admin dashboard, deleted rows
// excluded but inactive ones included.
func GetAllProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/products"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("products").Find(ctx, bson.M{
			"isDeleted": bson.M{"$ne": true},
		}, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		products, err := decodeProducts(ctx, cursor)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products"
		defer handlePanic(c, route)

		var req createProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		product := models.Product{
			Name:        strings.TrimSpace(req.Name),
			Description: strings.TrimSpace(req.Description),
			Category:    models.StringList(req.Category),
			ImagePath:   strings.TrimSpace(req.ImagePath),
			IsActive:    isActive,
			IsFeatured:  req.IsFeatured,
			CreatedAt:   time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		productID, _ := res.InsertedID.(primitive.ObjectID)
		product.ID = productID

		variants, err := replaceVariants(ctx, db, productID, req.Variants)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"product": product, "variants": variants})
	}
}

func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/products/:id"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req updateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		set := bson.M{}
		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				respondWithError(c, http.StatusBadRequest, route, "name cannot be empty")
				return
			}
			set["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			set["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Category != nil {
			set["category"] = models.StringList(*req.Category)
		}
		if req.ImagePath != nil {
			set["imagePath"] = strings.TrimSpace(*req.ImagePath)
		}
		if req.IsActive != nil {
			set["isActive"] = *req.IsActive
		}
		if req.IsFeatured != nil {
			set["isFeatured"] = *req.IsFeatured
		}
		if len(set) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "nothing to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").UpdateOne(ctx, bson.M{
			"_id":       productID,
			"isDeleted": bson.M{"$ne": true},
		}, bson.M{"$set": set})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product updated"})
	}
}

// DeleteProduct soft-deletes so existing order records keep a resolvable
// reference.
func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/products/:id"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		res, err := db.Collection("products").UpdateOne(ctx, bson.M{
			"_id":       productID,
			"isDeleted": bson.M{"$ne": true},
		}, bson.M{"$set": bson.M{
			"isDeleted": true,
			"isActive":  false,
			"deletedAt": now,
		}})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}

// ReplaceProductVariants swaps the full variant set of a product. Partial
// edits are rare enough in the admin console that replace keeps the
// price table unambiguous.
func ReplaceProductVariants(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/products/:id/variants"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req []productVariantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("products").CountDocuments(ctx, bson.M{
			"_id":       productID,
			"isDeleted": bson.M{"$ne": true},
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if count == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		variants, err := replaceVariants(ctx, db, productID, req)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"variants": variants})
	}
}

func replaceVariants(ctx context.Context, db *mongo.Database, productID primitive.ObjectID, reqs []productVariantRequest) ([]models.ProductVariant, error) {
	if _, err := db.Collection("product_variants").DeleteMany(ctx, bson.M{"productId": productID}); err != nil {
		return nil, err
	}

	variants := make([]models.ProductVariant, 0, len(reqs))
	if len(reqs) == 0 {
		return variants, nil
	}

	docs := make([]interface{}, 0, len(reqs))
	for _, v := range reqs {
		variant := models.ProductVariant{
			ProductID: productID,
			Size:      strings.TrimSpace(v.Size),
			Price:     v.Price,
		}
		variants = append(variants, variant)
		docs = append(docs, variant)
	}

	if _, err := db.Collection("product_variants").InsertMany(ctx, docs); err != nil {
		return nil, err
	}

	return variants, nil
}
