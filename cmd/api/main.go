package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go-expiry-tracker/internal/cache"
	"go-expiry-tracker/internal/handler"
	"go-expiry-tracker/internal/model"
	"go-expiry-tracker/internal/repository"
	"go-expiry-tracker/internal/service"
	"go-expiry-tracker/internal/ws"
	"go-expiry-tracker/pkg/config"
	"go-expiry-tracker/pkg/database"
	"go-expiry-tracker/pkg/jwt"
	"go-expiry-tracker/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// 1. Load Env
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Env: "development"}).Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	if envErr != nil {
		log.Warn().Msg(".env file not found, relying on system env")
	}

	// 2. Setup Database
	db, err := database.Connect(cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("database connection failed")
	}
	if err := db.AutoMigrate(&model.User{}, &model.Brand{}, &model.Category{}, &model.Product{}, &model.UserProduct{}); err != nil {
		log.Fatal().Err(err).Msg("auto migrate failed")
	}

	userRepo := repository.NewUserRepo(db)

	// 3. Seed default admin
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	created, err := service.SeedAdmin(seedCtx, userRepo, cfg.Admin.Email, cfg.Admin.Password)
	cancelSeed()
	if err != nil {
		log.Warn().Err(err).Msg("failed to seed admin user")
	} else if created {
		log.Info().Str("email", cfg.Admin.Email).Msg("admin user created")
	}

	// 4. Setup WebSocket Hub
	hubCtx, stopHub := context.WithCancel(context.Background())
	wsHub := ws.NewHub(log)
	go wsHub.Run(hubCtx)

	// 5. Dependency Injection (Wiring Layers)
	tokens, err := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	if err != nil {
		log.Fatal().Err(err).Msg("jwt setup failed")
	}

	catalogCache := newCatalogCache(cfg.Redis, log)

	brandRepo := repository.NewBrandRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	itemRepo := repository.NewUserProductRepo(db)

	authService := service.NewAuthService(userRepo, tokens, wsHub, cfg.Session.IdleTimeout)
	invService := service.NewInventoryService(itemRepo, productRepo, catalogCache, wsHub, log)
	dashService := service.NewDashboardService(itemRepo, brandRepo, categoryRepo, cfg.Inventory.ExpiryWarningDays)

	handlers := handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Brand:     handler.NewBrandHandler(service.NewBrandService(brandRepo)),
		Category:  handler.NewCategoryHandler(service.NewCategoryService(categoryRepo)),
		User:      handler.NewUserHandler(service.NewUserService(userRepo)),
		Inventory: handler.NewInventoryHandler(invService),
		Dashboard: handler.NewDashboardHandler(dashService),
		Role:      handler.NewRoleHandler(),
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})

	app.Use(fiberlogger.New(fiberlogger.Config{Output: log}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// 7. Routes
	handler.SetupRoutes(app, handlers, authService, wsHub)

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	stopHub()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info().Msg("server exited")
}

// newCatalogCache connects to Redis when configured. An unreachable server
// degrades to no caching instead of failing startup.
func newCatalogCache(cfg config.RedisConfig, log *logger.Logger) cache.CatalogCache {
	if strings.TrimSpace(cfg.Addr) == "" {
		return cache.Nop{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unavailable, catalog cache disabled")
		client.Close()
		return cache.Nop{}
	}

	log.Info().Str("addr", cfg.Addr).Dur("ttl", cfg.TTL).Msg("catalog cache enabled")
	return cache.NewRedisCatalogCache(client, cfg.TTL)
}
