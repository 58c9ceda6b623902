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
	"github.com/otp-auth-api/internal/config"
	"github.com/otp-auth-api/internal/domain"
	"github.com/otp-auth-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/otp-auth-api/internal/infrastructure/jwt"
	"github.com/otp-auth-api/internal/infrastructure/memory"
	"github.com/otp-auth-api/internal/infrastructure/sns"
	"github.com/otp-auth-api/internal/pkg/id"
	"github.com/otp-auth-api/internal/pkg/password"
	transporthttp "github.com/otp-auth-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("JWT provider: %v", err)
	}

	deps := &transporthttp.Deps{JWTProvider: jwtProvider}

	switch cfg.StorageBackend {
	case "memory":
		users := memory.NewUserStore()
		seedDemoUser(cfg, users)
		deps.UserRepo = users
		deps.OTPStore = memory.NewOTPStore()
		deps.RefreshTokenRepo = memory.NewRefreshTokenStore()
	default:
		// Bootstrap DynamoDB tables (creates them if they don't exist).
		dynamoClient := dynamo.NewClient(cfg)
		dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)
		deps.UserRepo = dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)
		deps.OTPStore = dynamo.NewOTPRepo(dynamoClient, cfg.DynamoTables.OneTimeCodes)
		deps.RefreshTokenRepo = dynamo.NewRefreshTokenRepo(dynamoClient, cfg.DynamoTables.RefreshTokens)
	}

	// SNS SMS sender (graceful fallback to the log sender).
	if cfg.SMSSender == "sns" {
		if sender, err := sns.NewSender(cfg); err == nil {
			deps.SMSSender = sender
		} else {
			log.Printf("WARN: SNS sender not available, falling back to log sender: %v", err)
			deps.SMSSender = sns.NewLogSender()
		}
	} else {
		deps.SMSSender = sns.NewLogSender()
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
		log.Printf("Server starting on :%s (env=%s, storage=%s)", cfg.AppPort, cfg.AppEnv, cfg.StorageBackend)
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

// seedDemoUser plants a credential in the memory backend so the login flow can
// be exercised locally. User records are otherwise owned by the
// user-management system.
func seedDemoUser(cfg *config.Config, users *memory.UserStore) {
	if cfg.DemoUserPhone == "" || cfg.DemoUserPassword == "" {
		return
	}
	hash, err := password.Hash(cfg.DemoUserPassword)
	if err != nil {
		log.Printf("WARN: could not seed demo user: %v", err)
		return
	}
	now := time.Now().UTC()
	users.Seed(domain.UserCredential{
		UserID:       id.New(),
		Phone:        cfg.DemoUserPhone,
		PasswordHash: hash,
		Enable:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	log.Printf("Seeded demo user for %s", cfg.DemoUserPhone)
}
