package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	emailadapter "github.com/mejbahuddintamim/bdrent-server/internal/adapter/email"
	mongoadapter "github.com/mejbahuddintamim/bdrent-server/internal/adapter/mongo"
	natsadapter "github.com/mejbahuddintamim/bdrent-server/internal/adapter/nats"
	paymentadapter "github.com/mejbahuddintamim/bdrent-server/internal/adapter/payment"
	redisadapter "github.com/mejbahuddintamim/bdrent-server/internal/adapter/redis"
	"github.com/mejbahuddintamim/bdrent-server/internal/app/config"
	"github.com/mejbahuddintamim/bdrent-server/internal/auth"
	"github.com/mejbahuddintamim/bdrent-server/internal/platform/logger"
	"github.com/mejbahuddintamim/bdrent-server/internal/platform/tracer"
	httpport "github.com/mejbahuddintamim/bdrent-server/internal/port/http"
	"github.com/mejbahuddintamim/bdrent-server/internal/service"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type App struct {
	cfg            *config.Config
	log            logger.Logger
	server         *httpport.Server
	notifier       *service.AsyncNotifier
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	natsConn       *nats.Conn
	tracerProvider *sdktrace.TracerProvider
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	appLogger, err := logger.NewZapLogger(logger.Config{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger.Infof("Configuration loaded: Env=%s, HTTP port: %s", cfg.Env, cfg.HTTPServer.Port)

	var tracerProvider *sdktrace.TracerProvider
	if cfg.Tracing.Enabled {
		tracerProvider, err = tracer.Init(ctx, cfg.Tracing.OTLPEndpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracer: %w", err)
		}
		appLogger.Info("Tracing initialized")
	}

	appLogger.Info("Initializing MongoDB client...")
	mongoClient, err := mongoadapter.NewClient(ctx, cfg.MongoDB)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}
	appLogger.Info("MongoDB client initialized")

	appLogger.Info("Initializing Redis client...")
	redisClient, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	appLogger.Info("Redis client initialized")

	appLogger.Info("Connecting to NATS...")
	natsConn, err := natsadapter.NewConnection(cfg.NATS)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	publisher, err := natsadapter.NewPublisher(natsConn)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}
	appLogger.Info("NATS connection established")

	listingRepo := mongoadapter.NewListingRepository(mongoClient, cfg.MongoDB)
	bookingRepo := mongoadapter.NewBookingRepository(mongoClient, cfg.MongoDB)
	userRepo := mongoadapter.NewUserRepository(mongoClient, cfg.MongoDB)
	listingCache := redisadapter.NewListingCache(redisClient)

	emailSender, err := emailadapter.NewSMTPSender(cfg.SMTP, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize email sender: %w", err)
	}

	tokens, err := auth.NewTokenIssuer(cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token issuer: %w", err)
	}

	stripeGateway, err := paymentadapter.NewStripeGateway(cfg.Stripe)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Stripe gateway: %w", err)
	}
	sslGateway, err := paymentadapter.NewSSLCommerzGateway(cfg.SSLCommerz)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SSLCommerz gateway: %w", err)
	}

	notifier := service.NewAsyncNotifier(emailSender, publisher, appLogger)

	listingSvc := service.NewListingService(listingRepo, listingCache, cfg.ListingCache.TTL, appLogger)
	bookingSvc := service.NewBookingService(bookingRepo, listingRepo, userRepo, listingCache, notifier, appLogger)
	userSvc := service.NewUserService(userRepo, tokens, appLogger)
	paymentSvc := service.NewPaymentService(stripeGateway, sslGateway, appLogger)

	server := httpport.NewServer(cfg.HTTPServer, listingSvc, bookingSvc, userSvc, paymentSvc, tokens, appLogger)
	appLogger.Info("HTTP server instance created")

	return &App{
		cfg:            cfg,
		log:            appLogger,
		server:         server,
		notifier:       notifier,
		mongoClient:    mongoClient,
		redisClient:    redisClient,
		natsConn:       natsConn,
		tracerProvider: tracerProvider,
	}, nil
}

func (a *App) Run() {
	a.log.Info("Starting application components...")

	go func() {
		if err := a.server.Run(); err != nil {
			a.log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Infof("Received shutdown signal: %v. Shutting down...", receivedSignal)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.log.Errorf("Error during HTTP server shutdown: %v", err)
	} else {
		a.log.Info("HTTP server stopped")
	}

	// Stop the notifier after the server so in-flight requests can still
	// enqueue; Stop drains the queue before returning.
	a.notifier.Stop()
	a.log.Info("Notifier drained and stopped")

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(shutdownCtx); err != nil {
			a.log.Errorf("Error shutting down tracer provider: %v", err)
		}
	}

	a.log.Info("Closing connections...")
	if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
		a.log.Errorf("Error disconnecting from MongoDB: %v", err)
	}
	if err := a.redisClient.Close(); err != nil {
		a.log.Errorf("Error closing Redis client: %v", err)
	}
	a.natsConn.Close()

	a.log.Info("Application shut down")
}
