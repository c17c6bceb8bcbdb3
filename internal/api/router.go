package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/teachreach/marketplace/docs"
	"github.com/teachreach/marketplace/internal/api/handler"
	"github.com/teachreach/marketplace/internal/api/middleware"
	"github.com/teachreach/marketplace/internal/core/domain"
	"github.com/teachreach/marketplace/internal/core/ports"
	"github.com/teachreach/marketplace/internal/core/service"
	mongostore "github.com/teachreach/marketplace/internal/infrastructure/db/mongo"
	redisstore "github.com/teachreach/marketplace/internal/infrastructure/db/redis"
	"github.com/teachreach/marketplace/internal/pkg/config"
)

// Services are the use cases the router exposes.
type Services struct {
	Auth    ports.AuthService
	Orders  ports.OrderService
	Reviews ports.ReviewService
	Users   ports.UserService
	Revoker ports.TokenRevoker
	// Ready holds the dependency probes behind /health/ready.
	Ready map[string]handler.Check
}

// Options tune the router. Registerer defaults to the global Prometheus
// registry when nil.
type Options struct {
	JWTSecret  string
	Logger     zerolog.Logger
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewServices wires repositories and services over live Mongo and Redis
// connections.
func NewServices(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) Services {
	users := mongostore.NewUserRepository(db)
	reviews := mongostore.NewReviewRepository(db)
	revoker := redisstore.NewRevocationList(rdb, cfg.TokenTTL)

	return Services{
		Auth:    service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL, cfg.AdminEmail),
		Orders:  service.NewOrderService(mongostore.NewOrderRepository(db), log),
		Reviews: service.NewReviewService(reviews, log),
		Users:   service.NewUserService(users, reviews, revoker, cfg.AdminEmail, log),
		Revoker: revoker,
		Ready: map[string]handler.Check{
			"mongodb": func(ctx context.Context) error {
				return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
			},
			"redis": func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
		},
	}
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)
	e.Validator = handler.NewValidator()

	registerer := opts.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "marketplace",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	orderHandler := handler.NewOrderHandler(svc.Orders)
	reviewHandler := handler.NewReviewHandler(svc.Reviews)
	userHandler := handler.NewUserHandler(svc.Users)

	authn := middleware.Auth(opts.JWTSecret, svc.Revoker)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// --- Orders ---
	orders := api.Group("/orders", authn)
	orders.POST("", orderHandler.Create)
	orders.GET("/myorders", orderHandler.Mine)
	orders.GET("", orderHandler.All, adminOnly)
	orders.PUT("/:id/status", orderHandler.UpdateStatus, adminOnly)

	// --- Reviews ---
	api.GET("/reviews", reviewHandler.List)
	api.POST("/reviews", reviewHandler.Create, authn)
	api.DELETE("/reviews/:id", reviewHandler.Delete, authn, adminOnly)

	// --- Accounts ---
	admin := api.Group("/admin", authn, adminOnly)
	admin.GET("/users", userHandler.List)
	admin.DELETE("/users/:id", userHandler.Delete)

	me := api.Group("/users", authn)
	me.PUT("/me", userHandler.UpdateMe)
	me.DELETE("/me", userHandler.DeleteMe)
	me.GET("/support", userHandler.Support)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(svc.Ready)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
