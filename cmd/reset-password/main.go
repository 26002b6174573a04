package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go-expiry-tracker/internal/repository"
	"go-expiry-tracker/internal/service"
	"go-expiry-tracker/pkg/config"
	"go-expiry-tracker/pkg/database"
	"go-expiry-tracker/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	email := flag.String("email", "admin@example.com", "account to reset")
	password := flag.String("password", "", "new password (at least 6 characters)")
	flag.Parse()

	// 1. Load Env
	envErr := godotenv.Load()
	log := logger.New(logger.Config{Env: "development"})
	if envErr != nil {
		log.Warn().Msg(".env file not found, relying on system env")
	}

	if len(*password) < 6 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// 2. Setup Database
	db, err := database.Connect(cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 3. Reset; open sessions end with it
	user, err := service.ForceResetPassword(ctx, repository.NewUserRepo(db), *email, *password)
	if err != nil {
		log.Fatal().Err(err).Str("email", *email).Msg("password reset failed")
	}

	log.Info().Str("email", user.Email).Msg("password reset")
}
