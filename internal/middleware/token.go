package middleware

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserIDFromBearer verifies an Authorization header and extracts the
// canonical user id. An empty header yields (nil, nil): the caller is a
// guest. A present but invalid credential is an error; the client-supplied
// user id must never win over a failed verification.
func UserIDFromBearer(header, secret string) (*primitive.ObjectID, error) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return nil, nil
	}

	claims, err := parseBearer(raw, secret)
	if err != nil {
		return nil, err
	}

	userIDValue, ok := claims["userId"].(string)
	if !ok || strings.TrimSpace(userIDValue) == "" {
		return nil, errors.New("userId claim missing")
	}

	userID, err := primitive.ObjectIDFromHex(userIDValue)
	if err != nil {
		return nil, errors.New("invalid userId")
	}

	return &userID, nil
}

func parseBearer(header, secret string) (jwt.MapClaims, error) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid token format")
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
