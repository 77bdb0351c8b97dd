package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/agendazap/agendazap-backend/internal/models"
)

// MemoryStore holds all data in memory, for tests and local development
type MemoryStore struct {
	configs      map[string]*models.BusinessConfig
	employees    map[string]map[string]*models.Employee // accountID -> employeeID
	appointments map[string]*models.Appointment

	configMu sync.RWMutex
	empMu    sync.RWMutex
	apptMu   sync.RWMutex

	apptCounter int
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		configs:      make(map[string]*models.BusinessConfig),
		employees:    make(map[string]map[string]*models.Employee),
		appointments: make(map[string]*models.Appointment),
	}
}

// Business config operations

func (m *MemoryStore) GetBusinessConfig(accountID string) (*models.BusinessConfig, error) {
	m.configMu.RLock()
	defer m.configMu.RUnlock()

	cfg, exists := m.configs[accountID]
	if !exists {
		return nil, ErrConfigNotFound
	}
	return cfg, nil
}

func (m *MemoryStore) SaveBusinessConfig(cfg *models.BusinessConfig) error {
	m.configMu.Lock()
	defer m.configMu.Unlock()

	m.configs[cfg.AccountID] = cfg
	return nil
}

// Employee operations

func (m *MemoryStore) GetEmployees(accountID string) (map[string]*models.Employee, error) {
	m.empMu.RLock()
	defer m.empMu.RUnlock()

	roster := make(map[string]*models.Employee)
	for id, emp := range m.employees[accountID] {
		roster[id] = emp
	}
	return roster, nil
}

func (m *MemoryStore) SaveEmployee(emp *models.Employee) error {
	m.empMu.Lock()
	defer m.empMu.Unlock()

	if emp.ID == "" {
		return ErrEmployeeNotFound
	}
	if m.employees[emp.AccountID] == nil {
		m.employees[emp.AccountID] = make(map[string]*models.Employee)
	}
	m.employees[emp.AccountID][emp.ID] = emp
	return nil
}

// Appointment operations

func (m *MemoryStore) GetAppointments(accountID string) ([]*models.Appointment, error) {
	m.apptMu.RLock()
	defer m.apptMu.RUnlock()

	var appts []*models.Appointment
	for _, appt := range m.appointments {
		if appt.AccountID == accountID {
			appts = append(appts, appt)
		}
	}
	return appts, nil
}

func (m *MemoryStore) GetAppointmentsByDate(accountID, date string) ([]*models.Appointment, error) {
	m.apptMu.RLock()
	defer m.apptMu.RUnlock()

	var appts []*models.Appointment
	for _, appt := range m.appointments {
		if appt.AccountID == accountID && appt.Date == date {
			appts = append(appts, appt)
		}
	}
	return appts, nil
}

// CreateAppointment checks and writes under a single write lock, so two
// concurrent calls for the same slot cannot both pass the existence check.
func (m *MemoryStore) CreateAppointment(appt *models.Appointment) (*models.Appointment, error) {
	m.apptMu.Lock()
	defer m.apptMu.Unlock()

	for _, existing := range m.appointments {
		if existing.Status == models.AppointmentStatusCancelled {
			continue
		}
		if existing.AccountID == appt.AccountID &&
			existing.Date == appt.Date &&
			existing.Time == appt.Time &&
			existing.EmployeeID == appt.EmployeeID {
			return nil, ErrSlotTaken
		}
	}

	m.apptCounter++
	now := time.Now()

	if appt.ID == "" {
		appt.ID = fmt.Sprintf("APT%05d", m.apptCounter)
	}
	if appt.Status == "" {
		appt.Status = models.AppointmentStatusConfirmed
	}
	appt.CreatedAt = now
	appt.UpdatedAt = now

	m.appointments[appt.ID] = appt
	return appt, nil
}

func (m *MemoryStore) CancelAppointment(accountID, appointmentID string) (*models.Appointment, error) {
	m.apptMu.Lock()
	defer m.apptMu.Unlock()

	appt, exists := m.appointments[appointmentID]
	if !exists || appt.AccountID != accountID {
		return nil, ErrAppointmentNotFound
	}

	appt.Status = models.AppointmentStatusCancelled
	appt.UpdatedAt = time.Now()
	return appt, nil
}
