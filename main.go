package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/agendazap/agendazap-backend/database"
	"github.com/agendazap/agendazap-backend/internal/jobs"
	"github.com/agendazap/agendazap-backend/internal/models"
	"github.com/agendazap/agendazap-backend/internal/routes"
	"github.com/agendazap/agendazap-backend/internal/services"
	"github.com/agendazap/agendazap-backend/internal/storage"
)

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		err := godotenv.Load(".env")
		if err != nil {
			err = godotenv.Load("environments/.env.development")
			if err != nil {
				log.Println("⚠️  No .env file found - checking environment variables")
			}
		}
	}

	// Initialize storage
	var store storage.Store

	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		memStore := storage.NewMemoryStore()
		seedDemoAccount(memStore)
		store = memStore
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.BusinessConfig{},
			&models.Employee{},
			&models.Appointment{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}

	// Initialize the WhatsApp notifier
	var notifier services.Notifier
	twilioService, err := services.NewTwilioService()
	if err != nil {
		log.Printf("⚠️  Twilio service not initialized: %v - WhatsApp features will be limited", err)
		notifier = services.NewLogNotifier()
	} else {
		log.Println("✅ Twilio service initialized")
		notifier = twilioService
	}

	// Session store: Redis when configured, in-memory otherwise
	var sessions services.SessionStore
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisSessions, err := services.NewRedisSessionStore(addr, os.Getenv("REDIS_PASSWORD"), 0)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		sessions = redisSessions
		log.Println("✅ Using Redis session storage")
	} else {
		sessions = services.NewMemorySessionStore()
		log.Println("⚠️  Using in-memory session storage")
	}

	// The account the chat flow books against
	chatAccountID := os.Getenv("CHAT_ACCOUNT_ID")
	if chatAccountID == "" {
		chatAccountID = "default"
	}
	chatService := services.NewChatService(store, sessions, notifier, chatAccountID)

	// Start the appointment reminder job
	reminderJob := jobs.NewReminderJob(store, notifier, chatAccountID)
	reminderJob.Start()

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "AgendaZap Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, X-User-ID",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	// Root endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "AgendaZap Backend API",
			"version": "1.0.0",
			"status":  "healthy",
			"storage": storageType(),
			"endpoints": fiber.Map{
				"health":        "/health",
				"api":           "/api",
				"webhook":       "/webhook/whatsapp",
				"test_whatsapp": "/test/whatsapp",
			},
		})
	})

	// Health check endpoint for monitoring
	app.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		statusCode := fiber.StatusOK

		if os.Getenv("USE_MEMORY_STORE") != "true" && database.DB != nil {
			sqlDB, err := database.DB.DB()
			if err != nil || sqlDB.Ping() != nil {
				status = "unhealthy"
				statusCode = fiber.StatusServiceUnavailable
			}
		}

		return c.Status(statusCode).JSON(fiber.Map{
			"status": status,
			"services": fiber.Map{
				"database": status == "healthy",
				"twilio":   twilioService != nil,
			},
		})
	})

	// Setup routes
	routes.SetupRoutes(app, store, chatService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		log.Println("⏹️  Stopping reminder job...")
		reminderJob.Stop()
		log.Println("⏹️  Shutting down server...")
		_ = app.Shutdown()
	}()

	log.Println("========================================")
	log.Printf("🚀 AgendaZap Backend starting on port %s", port)
	log.Printf("📊 Storage: %s", storageType())
	log.Printf("📱 Chat account: %s", chatAccountID)
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

func storageType() string {
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}

// seedDemoAccount gives the memory store a usable business so the API can
// be exercised without a database
func seedDemoAccount(store *storage.MemoryStore) {
	weekdays := []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

	_ = store.SaveBusinessConfig(&models.BusinessConfig{
		AccountID:    "default",
		BusinessName: "Demo Salon",
		StartTime:    "08:00",
		EndTime:      "18:00",
		BusinessDays: weekdays,
	})
	_ = store.SaveEmployee(&models.Employee{
		ID:        "E1",
		AccountID: "default",
		Name:      "Ana",
		Role:      "stylist",
		WorkDays:  weekdays,
	})
	_ = store.SaveEmployee(&models.Employee{
		ID:        "E2",
		AccountID: "default",
		Name:      "Bruno",
		Role:      "barber",
		WorkDays:  weekdays,
	})

	log.Println("✅ Seeded demo account \"default\"")
}
