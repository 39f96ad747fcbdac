package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"katalog/internal/config"
	"katalog/internal/handlers"
	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	repo, err := newRepository(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize %s store: %v", cfg.StoreBackend, err)
	}

	// Lifecycle events are optional; without a broker the service runs
	// with publishing disabled.
	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.EventsEnabled {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	app := newApp(cfg, repo, publisher)

	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for item events...")
			consumerErr := mqClient.ConsumeItemEvents(func(msg amqp.Delivery) error {
				log.Printf("Item event %s: %s", msg.RoutingKey, string(msg.Body))
				return nil
			})
			if consumerErr != nil {
				log.Printf("RabbitMQ consumer stopped: %v", consumerErr)
			}
		}()
	}

	log.Printf("Starting %s %s on %s (store=%s)", cfg.AppName, cfg.AppVersion, cfg.Port, cfg.StoreBackend)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// newApp assembles the Fiber application: middleware, probe routes and
// the versioned item API.
func newApp(cfg *config.Config, repo repositories.ItemRepository, publisher services.EventPublisher) *fiber.App {
	itemService := services.NewItemService(repo, publisher)
	itemHandler := handlers.NewItemHandler(itemService)
	healthHandler := handlers.NewHealthHandler(cfg)

	app := fiber.New(fiber.Config{
		AppName: fmt.Sprintf("%s %s", cfg.AppName, cfg.AppVersion),
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": fmt.Sprintf("Welcome to %s", cfg.AppName),
			"version": cfg.AppVersion,
		})
	})

	healthHandler.RegisterRoutes(app)

	apiV1 := app.Group("/api/v1")
	itemHandler.RegisterRoutes(apiV1)

	return app
}

// newRepository builds the item store selected by STORE_BACKEND.
func newRepository(cfg *config.Config) (repositories.ItemRepository, error) {
	switch cfg.StoreBackend {
	case "memory":
		return repositories.NewMemoryItemRepository(), nil
	case "sql":
		var dialector gorm.Dialector
		switch cfg.DatabaseDriver {
		case "postgres":
			dialector = postgres.Open(cfg.DatabaseDSN)
		default:
			dialector = sqlite.Open(cfg.DatabaseDSN)
		}
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return repositories.NewGORMItemRepository(db)
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return repositories.NewRedisItemRepository(client), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
