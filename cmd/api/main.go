// Command api serves the Chicken System restaurant REST API.
//
//	@title						Chicken System Restaurant API
//	@version					1.0
//	@description				Ordering, reservations, payments and moderation for the Chicken System restaurant.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/chickensystem/restaurant-api/internal/api"
	"github.com/chickensystem/restaurant-api/internal/api/handler"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
	"github.com/chickensystem/restaurant-api/internal/core/service"
	"github.com/chickensystem/restaurant-api/internal/infrastructure/config"
	mongodb "github.com/chickensystem/restaurant-api/internal/infrastructure/db/mongo"
	redisdb "github.com/chickensystem/restaurant-api/internal/infrastructure/db/redis"
	"github.com/chickensystem/restaurant-api/internal/infrastructure/oauth"
	"github.com/chickensystem/restaurant-api/internal/infrastructure/queue"
	"github.com/chickensystem/restaurant-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "restaurant-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db)
	products := redisdb.NewCachedProductRepository(mongodb.NewProductRepository(db), rdb, logger.Component("product_cache"))
	orders := mongodb.NewOrderRepository(db)
	payments := mongodb.NewPaymentRepository(db)
	reservations := mongodb.NewReservationRepository(db)
	testimonials := mongodb.NewTestimonialRepository(db)
	locations := mongodb.NewLocationRepository(db)
	notifications := mongodb.NewNotificationRepository(db)
	activity := mongodb.NewActivityLogRepository(db)
	idem := redisdb.NewIdempotencyStore(rdb)

	// --- Audit trail ---
	// The outbox outlives ctx so it can drain after the HTTP server stops.
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	outbox := queue.NewAuditOutbox(cfg.Audit.Workers, activity, logger.Component("audit_outbox"))
	outbox.Start(workerCtx)
	defer outbox.Close()

	var publisher ports.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kp := queue.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger.Component("kafka"))
		kp.Start()
		defer kp.Close()
		publisher = kp
	}

	tx := mongodb.NewTransactor(client, cfg.Mongo.Transactions)
	audit := service.NewAuditTrail(activity, tx, outbox, publisher, logger.Component("audit"))

	var provider ports.IdentityProvider
	if cfg.Google.Enabled() {
		provider = oauth.NewGoogleProvider(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURI)
	} else {
		log.Warn().Msg("google credentials not set, federated login disabled")
	}

	// --- Services ---
	authService := service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth"))
	svc := api.Services{
		Auth:          authService,
		Identity:      authService,
		Provider:      provider,
		Products:      service.NewProductService(products, logger.Component("products")),
		Locations:     service.NewLocationService(locations, logger.Component("locations")),
		Orders:        service.NewOrderService(orders, products, users, audit, idem, logger.Component("orders")),
		Payments:      service.NewPaymentService(payments, orders, users, audit, idem, logger.Component("payments")),
		Reservations:  service.NewReservationService(reservations, users, audit, logger.Component("reservations")),
		Testimonials:  service.NewTestimonialService(testimonials, users, audit, logger.Component("testimonials")),
		Notifications: service.NewNotificationService(notifications, users, logger.Component("notifications")),
		ActivityLogs:  service.NewActivityLogService(activity, users),
		HealthChecks: map[string]handler.HealthCheck{
			"mongodb": mongodb.Ping(db),
			"redis":   redisdb.Ping(rdb),
		},
	}

	e := api.NewRouter(svc, api.Options{
		JWTSecret:      cfg.JWTSecret,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		RateLimitRPS:   cfg.HTTP.RateLimitRPS,
		RateLimitBurst: cfg.HTTP.RateLimitBurst,
		Session: handler.SessionOptions{
			FrontendURL:  cfg.FrontendURL,
			TokenTTL:     cfg.TokenTTL,
			SecureCookie: !cfg.IsDevelopment(),
		},
	}, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
