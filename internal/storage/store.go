package storage

import (
	"errors"

	"github.com/agendazap/agendazap-backend/internal/models"
)

// Sentinel errors shared by all store implementations
var (
	ErrConfigNotFound      = errors.New("business config not found")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSessionNotFound     = errors.New("session not found")

	// ErrSlotTaken means a non-cancelled appointment already holds the
	// (account, date, time, employee) key
	ErrSlotTaken = errors.New("time slot already booked")
)

// Store defines the interface for storage operations
type Store interface {
	// Business configuration (written by external tooling, read here)
	GetBusinessConfig(accountID string) (*models.BusinessConfig, error)
	SaveBusinessConfig(cfg *models.BusinessConfig) error

	// Employee roster
	GetEmployees(accountID string) (map[string]*models.Employee, error)
	SaveEmployee(emp *models.Employee) error

	// Appointments
	GetAppointments(accountID string) ([]*models.Appointment, error)
	GetAppointmentsByDate(accountID, date string) ([]*models.Appointment, error)

	// CreateAppointment is the booking guard: it writes the appointment
	// only if no non-cancelled appointment holds the same
	// (account, date, time, employee) key, and returns ErrSlotTaken
	// otherwise. No write happens on any failure path.
	CreateAppointment(appt *models.Appointment) (*models.Appointment, error)

	// CancelAppointment marks an appointment cancelled, freeing its slot
	CancelAppointment(accountID, appointmentID string) (*models.Appointment, error)
}
