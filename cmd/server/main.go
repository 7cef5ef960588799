package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/talentscout/screening/internal/config"
	"github.com/talentscout/screening/internal/domain/fiber/handler"
	"github.com/talentscout/screening/internal/middleware"
	"github.com/talentscout/screening/internal/model"
	"github.com/talentscout/screening/internal/repository"
	"github.com/talentscout/screening/internal/service"
	"github.com/talentscout/screening/internal/usecase"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env != "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(100, 1*time.Minute))

	store, err := buildStore()
	if err != nil {
		log.Fatal(err)
	}
	completion, err := buildCompletion(ctx)
	if err != nil {
		log.Fatal(err)
	}

	uc := usecase.NewScreeningUsecase(store, completion)
	screeningHandler := handler.NewScreeningHandler(uc)
	screeningHandler.RegisterRoutes(app)

	log.Println("Server running on", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

// buildStore picks the candidate store backend from STORAGE_DRIVER.
func buildStore() (repository.CandidateStore, error) {
	storageConfig := config.LoadStorageConfig()
	switch storageConfig.Driver {
	case "file":
		return repository.NewFileCandidateRepository(storageConfig.DataFile), nil
	case "postgres":
		db, err := connectDB()
		if err != nil {
			return nil, err
		}
		return repository.NewCandidateRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", storageConfig.Driver)
	}
}

// buildCompletion picks the language-model provider from LLM_PROVIDER.
func buildCompletion(ctx context.Context) (service.CompletionService, error) {
	storageConfig := config.LoadStorageConfig()
	switch storageConfig.LLMProvider {
	case "gemini":
		return service.NewGeminiService(ctx)
	case "openrouter":
		return service.NewOpenRouterService()
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", storageConfig.LLMProvider)
	}
}

func connectDB() (*gorm.DB, error) {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("could not get database instance: %w", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&model.Candidate{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}
