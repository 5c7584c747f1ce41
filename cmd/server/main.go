package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/delivery/backend/internal/application/cart"
	catalogapp "github.com/delivery/backend/internal/application/catalog"
	identityapp "github.com/delivery/backend/internal/application/identity"
	orderingapp "github.com/delivery/backend/internal/application/ordering"
	promotionapp "github.com/delivery/backend/internal/application/promotion"
	"github.com/delivery/backend/internal/domain/ordering"
	"github.com/delivery/backend/internal/domain/shared"
	"github.com/delivery/backend/internal/infrastructure/auth"
	"github.com/delivery/backend/internal/infrastructure/cache"
	"github.com/delivery/backend/internal/infrastructure/config"
	"github.com/delivery/backend/internal/infrastructure/logger"
	"github.com/delivery/backend/internal/infrastructure/notification"
	"github.com/delivery/backend/internal/infrastructure/payment"
	"github.com/delivery/backend/internal/infrastructure/persistence"
	"github.com/delivery/backend/internal/interfaces/http/handler"
	"github.com/delivery/backend/internal/interfaces/http/middleware"
	"github.com/delivery/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting shop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	productTypeRepo := persistence.NewGormProductTypeRepository(db.DB)
	manufacturerRepo := persistence.NewGormManufacturerRepository(db.DB)
	cartRepo := persistence.NewGormCartItemRepository(db.DB)
	promoRepo := persistence.NewGormPromoCodeRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	pickupRepo := persistence.NewGormPickupPointRepository(db.DB)
	checkoutUow := persistence.NewGormCheckoutUnitOfWork(db)

	// Token blacklist: Redis when reachable, process-local otherwise.
	// A restart then forgets revoked tokens, which is acceptable for
	// the short access token lifetime
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing token blacklist", zap.Error(err))
			}
		}()
	}

	// Idempotency store for duplicate checkout detection
	var idempotencyStore shared.IdempotencyStore
	redisStore, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory idempotency store", zap.Error(err))
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
	} else {
		idempotencyStore = redisStore
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Payment gateway and order status notifications
	gateway := payment.NewSimulatedGateway(log)

	var notifier ordering.StatusNotifier
	if cfg.SMTP.Enabled {
		notifier = notification.NewSMTPNotifier(cfg.SMTP, log)
		log.Info("SMTP notifications enabled", zap.String("host", cfg.SMTP.Host))
	} else {
		notifier = notification.NewLogNotifier(log)
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, clientRepo, employeeRepo, jwtService).
		WithTokenBlacklist(blacklist)
	productService := catalogapp.NewProductService(productRepo, productTypeRepo, manufacturerRepo)
	cartService := cartapp.NewCartService(cartRepo, productRepo)
	promoService := promotionapp.NewPromoService(promoRepo, productRepo)
	checkoutService := orderingapp.NewCheckoutService(
		cartRepo,
		promoRepo,
		pickupRepo,
		checkoutUow,
		gateway,
		idempotencyStore,
		shared.IdempotencyConfig{
			Enabled: cfg.Idempotency.Enabled,
			TTL:     cfg.Idempotency.TTL,
		},
		orderingapp.DeliveryPricing{
			Base:      decimal.NewFromFloat(cfg.Delivery.BaseCost),
			PerKgRate: decimal.NewFromFloat(cfg.Delivery.PerKgRate),
		},
		log,
	)
	orderService := orderingapp.NewOrderService(
		orderRepo, pickupRepo, productRepo, clientRepo, employeeRepo, userRepo, notifier, gateway, log,
	)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Products:     handler.NewProductHandler(productService),
		Cart:         handler.NewCartHandler(cartService),
		Checkout:     handler.NewCheckoutHandler(checkoutService),
		Orders:       handler.NewOrderHandler(orderService),
		PickupPoints: handler.NewPickupPointHandler(orderService),
		Promos:       handler.NewPromoHandler(promoService),
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Per-group middleware for the storefront routes. Skip paths are
	// not needed: public endpoints simply sit outside the Authenticate
	// group
	mw := router.Middleware{
		Authenticate: middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			Logger:         log,
		}),
		OptionalAuth: middleware.OptionalJWTAuthMiddleware(jwtService),
		Principal: middleware.PrincipalMiddleware(middleware.PrincipalConfig{
			Resolver: authService,
			Logger:   log,
		}),
		RequireStaff: middleware.RequireStaff(),
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		mw.ThrottleAuth = middleware.RateLimit(authLimiter)
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(router.NewStorefront(handlers, mw))
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
