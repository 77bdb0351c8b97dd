package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/agendazap/agendazap-backend/internal/handlers"
	"github.com/agendazap/agendazap-backend/internal/middleware"
	"github.com/agendazap/agendazap-backend/internal/services"
	"github.com/agendazap/agendazap-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, chat *services.ChatService) {
	availabilityHandler := handlers.NewAvailabilityHandler(store)
	appointmentHandler := handlers.NewAppointmentHandler(store)
	whatsappHandler := handlers.NewWhatsAppHandler(chat)

	// API routes, all scoped to the caller's account
	api := app.Group("/api", middleware.RequireAccount())

	api.Get("/availability", availabilityHandler.GetAvailability)

	api.Post("/appointments", appointmentHandler.CreateAppointment)
	api.Get("/appointments", appointmentHandler.ListAppointments)
	api.Delete("/appointments/:id", appointmentHandler.CancelAppointment)

	// ========== WEBHOOK ROUTES ==========
	webhooks := app.Group("/webhook")

	// WhatsApp webhook - signature validation is env-aware so local
	// tunnels (ngrok) keep working in development
	if os.Getenv("ENVIRONMENT") == "development" || os.Getenv("DISABLE_WEBHOOK_VALIDATION") == "true" {
		webhooks.Post("/whatsapp", whatsappHandler.HandleWebhook)
		if os.Getenv("ENVIRONMENT") == "development" {
			println("⚠️  WhatsApp webhook validation DISABLED for development")
		}
	} else {
		webhooks.Post("/whatsapp", middleware.ValidateTwilioSignature(), whatsappHandler.HandleWebhook)
	}

	// ========== TEST ROUTES (Development Only) ==========
	app.Post("/test/whatsapp", whatsappHandler.HandleTestWebhook)
}
