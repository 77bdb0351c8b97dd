package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/agendazap/agendazap-backend/internal/middleware"
	"github.com/agendazap/agendazap-backend/internal/models"
	"github.com/agendazap/agendazap-backend/internal/schedule"
	"github.com/agendazap/agendazap-backend/internal/storage"
)

// AppointmentHandler handles appointment creation and listing
type AppointmentHandler struct {
	store storage.Store
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(store storage.Store) *AppointmentHandler {
	return &AppointmentHandler{store: store}
}

// CreateAppointment handles POST /api/appointments
func (h *AppointmentHandler) CreateAppointment(c *fiber.Ctx) error {
	accountID := middleware.AccountID(c)

	var req models.AppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.Date == "" || req.Time == "" || req.EmployeeID == "" ||
		req.ClientName == "" || req.ClientPhone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Missing appointment fields",
		})
	}

	year := time.Now().Year()
	if _, _, err := schedule.ParseDateToken(req.Date, year); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid date format. Use DD/MM",
		})
	}

	// The requested slot must be open and the employee free on it
	data, err := fetchAccountData(h.store, accountID, req.Date)
	if err != nil {
		log.Printf("❌ Availability check failed for %s: %v", accountID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create appointment",
		})
	}
	if data.cfg == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Business hours not configured",
		})
	}

	availability, err := schedule.ComputeAvailability(req.Date, year, data.cfg, data.employees, data.appointments)
	if err != nil {
		log.Printf("❌ Availability computation failed for %s: %v", accountID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create appointment",
		})
	}

	if !slotOpenFor(availability, req.Time, req.EmployeeID) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Time or employee not available",
		})
	}

	appt := &models.Appointment{
		ID:          fmt.Sprintf("agend_%d", time.Now().UnixMilli()),
		AccountID:   accountID,
		Date:        req.Date,
		Time:        req.Time,
		EmployeeID:  req.EmployeeID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Service:     req.Service,
		Status:      models.AppointmentStatusConfirmed,
	}

	created, err := h.store.CreateAppointment(appt)
	if err != nil {
		if errors.Is(err, storage.ErrSlotTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Time slot already booked",
			})
		}
		log.Printf("❌ Failed to create appointment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create appointment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":       true,
		"appointmentId": created.ID,
		"message":       "Appointment created successfully",
		"data":          created,
	})
}

// slotOpenFor checks the requested time is open and the employee is among
// the free ones for it
func slotOpenFor(availability *schedule.Availability, timeSlot, employeeID string) bool {
	free, ok := availability.ByTime[timeSlot]
	if !ok {
		return false
	}
	for _, emp := range free {
		if emp.ID == employeeID {
			return true
		}
	}
	return false
}

// ListAppointments handles GET /api/appointments with an optional date
// filter
func (h *AppointmentHandler) ListAppointments(c *fiber.Ctx) error {
	accountID := middleware.AccountID(c)
	date := c.Query("date")

	var appts []*models.Appointment
	var err error
	if date != "" {
		if _, _, perr := schedule.ParseDateToken(date, time.Now().Year()); perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid date format. Use DD/MM",
			})
		}
		appts, err = h.store.GetAppointmentsByDate(accountID, date)
	} else {
		appts, err = h.store.GetAppointments(accountID)
	}
	if err != nil {
		log.Printf("❌ Failed to list appointments: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to list appointments",
		})
	}

	if appts == nil {
		appts = []*models.Appointment{}
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"count":        len(appts),
		"appointments": appts,
	})
}

// CancelAppointment handles DELETE /api/appointments/:id by marking the
// appointment cancelled; records are never deleted
func (h *AppointmentHandler) CancelAppointment(c *fiber.Ctx) error {
	accountID := middleware.AccountID(c)

	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Appointment ID is required",
		})
	}

	cancelled, err := h.store.CancelAppointment(accountID, id)
	if err != nil {
		if errors.Is(err, storage.ErrAppointmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "Appointment not found",
			})
		}
		log.Printf("❌ Failed to cancel appointment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to cancel appointment",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Appointment cancelled",
		"data":    cancelled,
	})
}
