package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI        string
	DBName          string
	RedisAddr       string
	RedisPassword   string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	PromoCode       string
	DeliveryFee     float64
	ResendAPIKey    string
	AdminEmail      string
	FromEmail       string
	AllowedOrigins  []string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:        getEnvOrDefault("MONGO_URI", ""),
		DBName:          getEnvOrDefault("DB_NAME", "spiceshop"),
		RedisAddr:       getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnvOrDefault("REDIS_PASSWORD", ""),
		JWTSecret:       getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL:  getDurationEnv("ACCESS_TOKEN_TTL", 20, time.Minute),
		RefreshTokenTTL: getDurationEnv("REFRESH_TOKEN_TTL", 7, 24*time.Hour),
		PromoCode:       getEnvOrDefault("PROMO_CODE", "FREEDELIVERY"),
		DeliveryFee:     getFloatEnv("DELIVERY_FEE", 100),
		ResendAPIKey:    getEnvOrDefault("RESEND_API_KEY", ""),
		AdminEmail:      getEnvOrDefault("ADMIN_EMAIL", ""),
		FromEmail:       getEnvOrDefault("FROM_EMAIL", "Royal Pure Spices <onboarding@resend.dev>"),
		AllowedOrigins:  getListEnv("ALLOWED_ORIGINS", "*"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return defaultValue
}

func getListEnv(key, defaultValue string) []string {
	raw := getEnvOrDefault(key, defaultValue)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
