package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	apiv1 "github.com/NandiniVerma123/Ecommerce-BE/internal/api/v1"
	"github.com/NandiniVerma123/Ecommerce-BE/internal/config"
	"github.com/NandiniVerma123/Ecommerce-BE/internal/db"
	"github.com/NandiniVerma123/Ecommerce-BE/internal/kv"
	"github.com/NandiniVerma123/Ecommerce-BE/internal/service"
	"github.com/NandiniVerma123/Ecommerce-BE/internal/store"
	"github.com/NandiniVerma123/Ecommerce-BE/pkg/middleware"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	// Token revocation lives in Redis so every instance sees a signout.
	var revoked service.RevocationStore
	redisClient, err := kv.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, using in-memory token revocation")
		revoked = service.NewMemoryRevocationStore()
	} else {
		revoked = kv.NewRevocationStore(redisClient)
	}

	var mailer service.Mailer
	if cfg.SMTPHost != "" {
		mailer = service.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		log.Warn().Msg("SMTP not configured, emails disabled")
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create upload directory")
	}

	// Stores
	users := store.NewUserStore(pool)
	products := store.NewProductStore(pool)
	categories := store.NewCategoryStore(pool)
	carts := store.NewCartStore(pool)
	orders := store.NewOrderStore(pool)
	returns := store.NewReturnStore(pool)
	coupons := store.NewCouponStore(pool)

	// Services
	hasher := &service.BcryptHasher{Cost: cfg.BcryptCost}
	tokens := service.NewTokenService(cfg.JWTSecret, revoked)
	authService := service.NewAuthService(users, tokens, hasher, mailer, cfg.ResetBaseURL)
	userService := service.NewUserService(users, hasher, mailer)
	productService := service.NewProductService(products)
	categoryService := service.NewCategoryService(categories)
	cartService := service.NewCartService(carts, products)
	orderService := service.NewOrderService(orders, returns)
	couponService := service.NewCouponService(coupons)

	authMiddleware := middleware.NewAuthMiddleware(tokens, users)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog())
	r.Use(middleware.Metrics())
	r.Use(apiv1.CORSMiddleware())
	r.SetTrustedProxies(nil)

	r.GET("/metrics", middleware.MetricsHandler())
	r.Static("/uploads", cfg.UploadDir)

	v1 := r.Group("/api/v1")
	apiv1.RegisterRoutes(v1, apiv1.Handlers{
		Auth:       apiv1.NewAuthHandler(authService),
		Users:      apiv1.NewUserHandler(userService),
		Products:   apiv1.NewProductHandler(productService, cfg.UploadDir),
		Categories: apiv1.NewCategoryHandler(categoryService),
		Cart:       apiv1.NewCartHandler(cartService),
		Orders:     apiv1.NewOrderHandler(orderService),
		Coupons:    apiv1.NewCouponHandler(couponService),
	}, authMiddleware)

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
