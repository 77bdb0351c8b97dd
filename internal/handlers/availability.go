package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/agendazap/agendazap-backend/internal/middleware"
	"github.com/agendazap/agendazap-backend/internal/models"
	"github.com/agendazap/agendazap-backend/internal/schedule"
	"github.com/agendazap/agendazap-backend/internal/storage"
)

// AvailabilityHandler serves the open-slot computation
type AvailabilityHandler struct {
	store storage.Store
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(store storage.Store) *AvailabilityHandler {
	return &AvailabilityHandler{store: store}
}

// accountData is the joined result of the three independent reads the
// availability computation needs
type accountData struct {
	cfg          *models.BusinessConfig
	employees    map[string]*models.Employee
	appointments []*models.Appointment
}

// fetchAccountData issues the config, roster and appointment reads
// concurrently and joins them. A missing config is reported through the
// nil cfg field, not as an error, so new accounts get empty availability.
func fetchAccountData(store storage.Store, accountID, date string) (*accountData, error) {
	data := &accountData{}
	var g errgroup.Group

	g.Go(func() error {
		cfg, err := store.GetBusinessConfig(accountID)
		if err != nil {
			if errors.Is(err, storage.ErrConfigNotFound) {
				return nil
			}
			return err
		}
		data.cfg = cfg
		return nil
	})

	g.Go(func() error {
		emps, err := store.GetEmployees(accountID)
		if err != nil {
			return err
		}
		data.employees = emps
		return nil
	})

	g.Go(func() error {
		appts, err := store.GetAppointmentsByDate(accountID, date)
		if err != nil {
			return err
		}
		data.appointments = appts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func employeeSummaries(employees map[string]*models.Employee) []models.EmployeeSummary {
	all := []models.EmployeeSummary{}
	for _, emp := range employees {
		all = append(all, emp.Summary())
	}
	return all
}

// GetAvailability handles GET /api/availability?date=DD/MM
func (h *AvailabilityHandler) GetAvailability(c *fiber.Ctx) error {
	accountID := middleware.AccountID(c)

	date := c.Query("date")
	if _, _, err := schedule.ParseDateToken(date, time.Now().Year()); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid date format. Use DD/MM",
		})
	}

	data, err := fetchAccountData(h.store, accountID, date)
	if err != nil {
		log.Printf("❌ Availability lookup failed for %s: %v", accountID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch availability",
		})
	}

	// Accounts without business hours get an empty (but successful)
	// availability response so the API stays usable before setup
	if data.cfg == nil {
		return c.JSON(fiber.Map{
			"success":            true,
			"date":               date,
			"availableTimes":     []string{},
			"availabilityByTime": fiber.Map{},
			"allEmployees":       employeeSummaries(data.employees),
		})
	}

	result, err := schedule.ComputeAvailability(date, time.Now().Year(), data.cfg, data.employees, data.appointments)
	if err != nil {
		log.Printf("❌ Availability computation failed for %s: %v", accountID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to compute availability",
		})
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"date":               result.Date,
		"availableTimes":     result.AvailableTimes,
		"availabilityByTime": result.ByTime,
		"allEmployees":       employeeSummaries(data.employees),
	})
}
