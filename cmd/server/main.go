package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/weatherapp/backend/internal/config"
	"github.com/weatherapp/backend/internal/delivery/http"
	"github.com/weatherapp/backend/internal/repository/postgres"
	"github.com/weatherapp/backend/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg := config.Load()

	if cfg.OpenWeatherAPIKey == "" {
		log.Println("Warning: OPENWEATHERMAP_API_KEY is not set, upstream calls will be rejected")
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			log.Fatal("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = uuid.NewString()
		log.Println("Warning: JWT_SECRET is not set, using a random secret; tokens will not survive a restart")
	}

	// Database connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, closeRepo := openRepository(ctx, cfg.DatabaseURL)
	defer closeRepo()

	// Dependency Injection: Services
	owClient := service.NewOpenWeatherClient(cfg.OpenWeatherAPIKey, cfg.OpenWeatherURL, cfg.UpstreamTimeout)
	searches := service.NewRecentSearchStore(repo)
	weatherSvc := service.NewWeatherService(
		service.NewGeocoder(owClient),
		service.NewWeatherFetcher(owClient),
		searches,
	)
	authSvc := service.NewAuthService(repo, cfg.JWTSecret, cfg.JWTTTL)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Weather API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	http.SetupRoutes(app, weatherSvc, authSvc, searches, repo)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
}

// openRepository connects to PostgreSQL, falling back to in-memory storage
// when no database is configured or reachable
func openRepository(ctx context.Context, databaseURL string) (service.UserRepository, func()) {
	if databaseURL == "" {
		log.Println("DATABASE_URL not set, running with in-memory user storage")
		return postgres.NewMemoryRepository(), func() {}
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err == nil {
		err = pool.Ping(ctx)
		if err != nil {
			pool.Close()
		}
	}
	if err != nil {
		log.Printf("Warning: Could not connect to database: %v", err)
		log.Println("Running with in-memory user storage")
		return postgres.NewMemoryRepository(), func() {}
	}
	log.Println("Connected to PostgreSQL")

	repo := postgres.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		log.Fatalf("Failed to prepare database schema: %v", err)
	}

	return repo, pool.Close
}
