package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"modamart/internal/collection"
	"modamart/internal/config"
	custommiddleware "modamart/internal/middleware"
	"modamart/internal/repository"
	"modamart/internal/service"
	"modamart/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	db          *sql.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))

	// Redis backs cart/wishlist persistence and rate limiting
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 300,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit",
	}, logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	productRepo := repository.NewProductRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	taxonomyRepo := repository.NewTaxonomyRepository(db)

	// Cart and wishlist live in Redis; the notifier fans out badge
	// refreshes to in-process subscribers.
	store := collection.NewRedisStore(redisClient, time.Duration(cfg.Cart.TTLDays)*24*time.Hour)
	notifier := collection.NewNotifier()
	notifier.Subscribe(collection.SignalCartUpdated, func() {
		logger.Debug("Cart updated")
	})
	notifier.Subscribe(collection.SignalWishlistUpdated, func() {
		logger.Debug("Wishlist updated")
	})

	// Initialize services
	userService := service.NewUserService(userRepo, refreshTokenRepo, cfg.JWT.Secret)
	catalogService := service.NewCatalogService(productRepo, brandRepo, cfg.Catalog.ImagesPerColor)
	brandService := service.NewBrandService(brandRepo)
	taxonomyService := service.NewTaxonomyService(taxonomyRepo)
	cartService := service.NewCartService(store, notifier, catalogService)
	wishlistService := service.NewWishlistService(store, notifier, catalogService)

	// Initialize handlers
	userHandler := transport.NewUserHandler(userService, logger)
	productHandler := transport.NewProductHandler(catalogService, logger)
	brandHandler := transport.NewBrandHandler(brandService, logger)
	taxonomyHandler := transport.NewTaxonomyHandler(taxonomyService, logger)
	cartHandler := transport.NewCartHandler(cartService, logger)
	wishlistHandler := transport.NewWishlistHandler(wishlistService, logger)

	// Create middleware chains
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	adminMiddleware := custommiddleware.RequireAdmin(logger)
	ownerMiddleware := custommiddleware.CollectionOwner(logger)
	optionalAuth := custommiddleware.OptionalAuth(cfg.JWT.Secret, logger)

	// Register routes
	userHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)
	productHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)
	brandHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)
	taxonomyHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)

	// Cart and wishlist accept both authenticated users and anonymous
	// sessions, so owner resolution runs behind optional auth.
	router.Group(func(r chi.Router) {
		r.Use(optionalAuth)
		cartHandler.RegisterRoutes(r, ownerMiddleware)
		wishlistHandler.RegisterRoutes(r, ownerMiddleware)
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
