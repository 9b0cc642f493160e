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

	"spiceshop/internal/models"
)

type categoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

func GetAllCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/categories"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("categories").Find(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		categories := make([]models.Category, 0)
		if err := cursor.All(ctx, &categories); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, categories)
	}
}

func CreateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/categories"
		defer handlePanic(c, route)

		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "name is required")
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		category := models.Category{
			Name:      strings.TrimSpace(req.Name),
			IsActive:  isActive,
			CreatedAt: time.Now(),
		}
		if req.Description != nil {
			category.Description = strings.TrimSpace(*req.Description)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("categories").InsertOne(ctx, category)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		category.ID, _ = res.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, category)
	}
}

func UpdateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/categories/:id"
		defer handlePanic(c, route)

		categoryID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "name is required")
			return
		}

		set := bson.M{"name": strings.TrimSpace(req.Name)}
		if req.Description != nil {
			set["description"] = strings.TrimSpace(*req.Description)
		}
		if req.IsActive != nil {
			set["isActive"] = *req.IsActive
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("categories").UpdateByID(ctx, categoryID, bson.M{"$set": set})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "category not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "category updated"})
	}
}

func DeleteCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/categories/:id"
		defer handlePanic(c, route)

		categoryID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("categories").DeleteOne(ctx, bson.M{"_id": categoryID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "category not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
	}
}
