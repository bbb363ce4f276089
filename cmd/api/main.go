package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/clutch-swap/clutch-api/internal/config"
	"github.com/clutch-swap/clutch-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/clutch-swap/clutch-api/internal/infrastructure/jwt"
	"github.com/clutch-swap/clutch-api/internal/infrastructure/memstore"
	s3infra "github.com/clutch-swap/clutch-api/internal/infrastructure/s3"
	"github.com/clutch-swap/clutch-api/internal/infrastructure/smtp"
	"github.com/clutch-swap/clutch-api/internal/infrastructure/sns"
	transporthttp "github.com/clutch-swap/clutch-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	sessionTTL := time.Duration(cfg.SessionExpiryDays) * 24 * time.Hour
	jwtProvider, err := jwtinfra.NewProvider(cfg.SessionSecret, sessionTTL)
	if err != nil {
		log.Fatalf("session token provider: %v", err)
	}
	if cfg.SessionSecret == "" {
		log.Println("WARN: SESSION_SECRET not set, sessions will not survive restarts")
	}

	deps := &transporthttp.Deps{
		Mailer:      smtp.NewMailer(cfg),
		JWTProvider: jwtProvider,
	}

	// SNS SMS sender is optional; exchange approvals work without it.
	if sender, err := sns.NewSender(cfg); err == nil {
		deps.SMSSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	switch cfg.StorageDriver {
	case "memory":
		log.Println("Using in-memory storage (data is lost on restart)")
		deps.IdentityRepo = memstore.NewIdentityStore()
		deps.SessionRepo = memstore.NewSessionStore()
		deps.VerificationRepo = memstore.NewVerificationStore()
		deps.ListingRepo = memstore.NewListingStore()
		deps.SavedRepo = memstore.NewSavedStore()
		deps.ExchangeRepo = memstore.NewExchangeStore()
		deps.PhotoRepo = memstore.NewPhotoStore()
		deps.Objects = memstore.NewObjectStore()
	default:
		// Bootstrap DynamoDB tables (creates them if they don't exist).
		dynamoClient := dynamo.NewClient(cfg)
		dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

		s3Client := s3infra.NewClient(cfg)

		deps.IdentityRepo = dynamo.NewIdentityRepo(dynamoClient, cfg.DynamoTables.Identities)
		deps.SessionRepo = dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions)
		deps.VerificationRepo = dynamo.NewVerificationRepo(dynamoClient, cfg.DynamoTables.Verifications)
		deps.ListingRepo = dynamo.NewListingRepo(dynamoClient, cfg.DynamoTables.Listings)
		deps.SavedRepo = dynamo.NewSavedRepo(dynamoClient, cfg.DynamoTables.Saved)
		deps.ExchangeRepo = dynamo.NewExchangeRepo(dynamoClient, cfg.DynamoTables.Exchanges)
		deps.PhotoRepo = dynamo.NewPhotoRepo(dynamoClient, cfg.DynamoTables.Photos)
		deps.Objects = s3infra.NewStore(s3Client, cfg.S3BucketName)
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s, storage=%s)", cfg.AppPort, cfg.AppEnv, cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
