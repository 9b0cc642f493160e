package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"spiceshop/internal/cart"
	"spiceshop/internal/checkout"
	"spiceshop/internal/config"
	"spiceshop/internal/database"
	"spiceshop/internal/handlers"
	"spiceshop/internal/middleware"
	"spiceshop/internal/notify"
	"spiceshop/internal/pricing"
)

const shopName = "Royal Pure Spices"

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureVariantIndexes(db); err != nil {
		log.Printf("⚠️ variant index warning: %v", err)
	}
	if err := database.EnsureCustomerIndexes(db); err != nil {
		log.Printf("⚠️ customer index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}
	if err := database.EnsureReviewIndexes(db); err != nil {
		log.Printf("⚠️ review index warning: %v", err)
	}

	cartStore := cart.NewStore(newCartBackend())

	var mailer notify.Mailer
	if config.AppEnv.ResendAPIKey != "" {
		mailer = notify.NewResendMailer(config.AppEnv.ResendAPIKey, config.AppEnv.FromEmail)
	} else {
		log.Println("⚠️ RESEND_API_KEY not set, order emails are disabled")
	}

	dispatcher := notify.NewDispatcher(mailer, 64)
	dispatcher.Start()
	defer dispatcher.Close()

	promo := pricing.PromoValidator{Code: config.AppEnv.PromoCode}

	assembler := &checkout.Assembler{
		Catalog:     pricing.NewResolver(db),
		Orders:      &checkout.MongoOrderStore{DB: db},
		Promo:       promo,
		DeliveryFee: config.AppEnv.DeliveryFee,
		Notifier: &notify.OrderNotifier{
			Dispatcher: dispatcher,
			AdminEmail: config.AppEnv.AdminEmail,
		},
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins: config.AppEnv.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "X-Session-ID"},
		MaxAge:       12 * time.Hour,
	}))

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/featured", handlers.GetFeaturedProducts(db))
	r.GET("/products/:id", handlers.GetProduct(db))
	r.GET("/products/:id/reviews", handlers.GetProductReviews(db))
	r.POST("/products/:id/reviews",
		middleware.UserAuth(config.AppEnv.JWTSecret),
		handlers.CreateProductReview(db),
	)
	r.GET("/categories", handlers.GetCategories(db))

	r.POST("/orders", handlers.CreateOrder(assembler, config.AppEnv.JWTSecret))
	r.POST("/orders/find", handlers.FindOrders(db))
	r.POST("/promo/validate", handlers.ValidatePromo(promo))
	r.POST("/contact", handlers.SendContactMessage(mailer, config.AppEnv.AdminEmail, shopName))

	r.GET("/cart", handlers.GetCart(cartStore))
	r.POST("/cart/items", handlers.AddCartItem(cartStore))
	r.PUT("/cart/items/:key", handlers.UpdateCartItem(cartStore))
	r.DELETE("/cart/items/:key", handlers.RemoveCartItem(cartStore))
	r.DELETE("/cart", handlers.ClearCart(cartStore))

	r.POST("/auth/register", handlers.Register(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/login", handlers.Login(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/refresh", handlers.Refresh(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/logout", handlers.Logout(db))
	r.GET("/auth/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))

	user := r.Group("/user")
	user.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		user.GET("/profile", handlers.GetMe(db))
		user.PUT("/profile", handlers.UpdateProfile(db))
	}

	r.POST("/admin/login", handlers.AdminLogin(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/products", handlers.GetAllProducts(db))
		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.PUT("/products/:id/variants", handlers.ReplaceProductVariants(db))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))

		admin.GET("/categories", handlers.GetAllCategories(db))
		admin.POST("/categories", handlers.CreateCategory(db))
		admin.PUT("/categories/:id", handlers.UpdateCategory(db))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(db))

		admin.GET("/orders", handlers.GetAllOrders(db))
		admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus(db))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}

// newCartBackend prefers Redis and falls back to the in-process store
// when Redis is not configured or unreachable at boot.
func newCartBackend() cart.Backend {
	if config.AppEnv.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, using in-memory cart store")
		return cart.NewMemoryBackend()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.AppEnv.RedisAddr,
		Password: config.AppEnv.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ redis unreachable (%v), using in-memory cart store", err)
		return cart.NewMemoryBackend()
	}

	log.Println("Redis connected to:", config.AppEnv.RedisAddr)
	return cart.NewRedisBackend(rdb)
}
