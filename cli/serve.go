package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore-service/cache"
	"bookstore-service/config"
	"bookstore-service/controllers"
	"bookstore-service/database"
	"bookstore-service/events"
	"bookstore-service/logger"
	"bookstore-service/metrics"
	"bookstore-service/middleware"
	aws_pkg "bookstore-service/pkg/aws"
	"bookstore-service/repository"
	"bookstore-service/routes"
	"bookstore-service/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Env)
			if err != nil {
				return err
			}
			defer log.Sync()

			return serve(cmd.Context(), cfg, log, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "run schema migrations before serving")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger, migrate bool) error {
	// --- Database ---
	db, err := database.Connect(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("Database close error", zap.Error(err))
		}
	}()
	if migrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	// --- Order events (optional transports) ---
	emitter := events.NewEmitter()
	if cfg.OrderEventsSNSTopicARN != "" {
		awsCfg, err := aws_pkg.LoadAWSConfig(ctx)
		if err != nil {
			return err
		}
		emitter.To(aws_pkg.NewSNSClient(awsCfg), cfg.OrderEventsSNSTopicARN)
	}
	if len(cfg.KafkaBrokers) > 0 {
		producer := events.NewKafkaProducer(cfg.KafkaBrokers, log)
		defer producer.Close()
		emitter.To(producer, cfg.OrderEventsTopic)
	}
	if !emitter.Enabled() {
		log.Warn("No event transport configured, order events will not be published")
	}

	// --- Book cache (optional) ---
	var bookCache services.BookCache
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("Redis unavailable, book cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			bookCache = cache.NewBookCache(client, cfg.BookCacheTTL, log)
		}
	}

	// --- Dependency injection ---
	tx := repository.NewGormTransactor(db)
	cartRepo := repository.NewGormCartRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	bookRepo := repository.NewGormBookRepository(db)
	categoryRepo := repository.NewGormCategoryRepository(db)
	userRepo := repository.NewGormUserRepository(db)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL)
	cartService := services.NewCartService(cartRepo, bookRepo, tx, log)
	orderService := services.NewOrderService(cartRepo, orderRepo, tx, emitter, log)
	catalogService := services.NewCatalogService(bookRepo, categoryRepo, bookCache, log)
	userService := services.NewUserService(userRepo, cartService, tx, tokenService, log)

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	serverMetrics := metrics.NewServerMetrics("api")

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(serverMetrics.Middleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	routes.Register(r, routes.Handlers{
		Auth:         controllers.NewAuthController(userService),
		Books:        controllers.NewBookController(catalogService),
		Carts:        controllers.NewCartController(cartService),
		Orders:       controllers.NewOrderController(orderService),
		Authenticate: middleware.AuthMiddleware(tokenService, cfg.TrustGatewayHeaders),
		LoginLimiter: middleware.NewRateLimiter(rate.Every(time.Minute/100), 50).Middleware(),
		Metrics:      serverMetrics.Handler(),
	})

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Bookstore service started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}

	log.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Bookstore service stopped gracefully")
	return nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
