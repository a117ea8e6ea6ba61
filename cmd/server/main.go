package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/ansh-patel-repos/job-listing-portal/internal/api"
	"github.com/ansh-patel-repos/job-listing-portal/internal/config"
	"github.com/ansh-patel-repos/job-listing-portal/internal/events"
	"github.com/ansh-patel-repos/job-listing-portal/internal/oauth"
	"github.com/ansh-patel-repos/job-listing-portal/internal/repository"
	"github.com/ansh-patel-repos/job-listing-portal/internal/s3"
	"github.com/ansh-patel-repos/job-listing-portal/internal/service"
	"github.com/ansh-patel-repos/job-listing-portal/internal/token"
	"github.com/ansh-patel-repos/job-listing-portal/internal/tracing"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	api.SetupGlobalHandler("job-portal-api")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	shutdownTracer, err := tracing.InitTracerProvider("job-portal-api", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	ctx := context.Background()

	db, err := repository.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	slog.Info("Connected to MongoDB", "database", cfg.MongoDB)

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NatsURL != "" {
		natsPublisher, err := events.NewNatsPublisher(cfg.NatsURL)
		if err != nil {
			slog.Warn("Failed to connect to NATS, account events disabled", "error", err)
		} else {
			publisher = natsPublisher
			slog.Info("Connected to NATS", "url", cfg.NatsURL)
		}
	}

	userRepo := repository.NewMongoUserRepository(db)
	authService := service.NewAuthService(userRepo, publisher)
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTExpire)
	google := oauth.NewGoogleClient(cfg)

	authHandler := api.NewAuthHandler(authService, tokens, google, cfg.FrontendURL)

	var uploadHandler *api.UploadHandler
	if cfg.S3Bucket != "" {
		presigner, err := s3.NewFilePresigner(cfg)
		if err != nil {
			log.Fatalf("Failed to configure S3 presigner: %v", err)
		}
		uploadHandler = api.NewUploadHandler(authService, presigner)
	}

	app := fiber.New()
	api.SetupRoutes(app, authHandler, uploadHandler, tokens)

	slog.Info("Starting server", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
