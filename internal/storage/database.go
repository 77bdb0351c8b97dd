package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/agendazap/agendazap-backend/internal/models"
)

// DatabaseStore implements Store on top of GORM/PostgreSQL
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Business config operations

func (s *DatabaseStore) GetBusinessConfig(accountID string) (*models.BusinessConfig, error) {
	var cfg models.BusinessConfig
	err := s.db.Where("account_id = ?", accountID).First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("get business config: %w", err)
	}
	return &cfg, nil
}

func (s *DatabaseStore) SaveBusinessConfig(cfg *models.BusinessConfig) error {
	if err := s.db.Save(cfg).Error; err != nil {
		return fmt.Errorf("save business config: %w", err)
	}
	return nil
}

// Employee operations

func (s *DatabaseStore) GetEmployees(accountID string) (map[string]*models.Employee, error) {
	var emps []models.Employee
	if err := s.db.Where("account_id = ?", accountID).Find(&emps).Error; err != nil {
		return nil, fmt.Errorf("get employees: %w", err)
	}

	roster := make(map[string]*models.Employee, len(emps))
	for i := range emps {
		roster[emps[i].ID] = &emps[i]
	}
	return roster, nil
}

func (s *DatabaseStore) SaveEmployee(emp *models.Employee) error {
	if emp.ID == "" {
		return ErrEmployeeNotFound
	}
	if err := s.db.Save(emp).Error; err != nil {
		return fmt.Errorf("save employee: %w", err)
	}
	return nil
}

// Appointment operations

func (s *DatabaseStore) GetAppointments(accountID string) ([]*models.Appointment, error) {
	var appts []*models.Appointment
	err := s.db.Where("account_id = ?", accountID).
		Order("date, time").
		Find(&appts).Error
	if err != nil {
		return nil, fmt.Errorf("get appointments: %w", err)
	}
	return appts, nil
}

func (s *DatabaseStore) GetAppointmentsByDate(accountID, date string) ([]*models.Appointment, error) {
	var appts []*models.Appointment
	err := s.db.Where("account_id = ? AND date = ?", accountID, date).
		Order("time").
		Find(&appts).Error
	if err != nil {
		return nil, fmt.Errorf("get appointments by date: %w", err)
	}
	return appts, nil
}

// CreateAppointment re-checks the slot inside a transaction. The composite
// unique index on (account_id, date, time, employee_id) is the real guard:
// if two transactions pass the check, the second insert fails with a
// duplicate-key error, which TranslateError surfaces as ErrDuplicatedKey.
func (s *DatabaseStore) CreateAppointment(appt *models.Appointment) (*models.Appointment, error) {
	now := time.Now()
	if appt.Status == "" {
		appt.Status = models.AppointmentStatusConfirmed
	}
	appt.CreatedAt = now
	appt.UpdatedAt = now

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Appointment{}).
			Where("account_id = ? AND date = ? AND time = ? AND employee_id = ? AND status <> ?",
				appt.AccountID, appt.Date, appt.Time, appt.EmployeeID,
				models.AppointmentStatusCancelled).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSlotTaken
		}

		return tx.Create(appt).Error
	})

	if err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	return appt, nil
}

func (s *DatabaseStore) CancelAppointment(accountID, appointmentID string) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.db.Where("account_id = ? AND id = ?", accountID, appointmentID).First(&appt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}

	appt.Status = models.AppointmentStatusCancelled
	appt.UpdatedAt = time.Now()
	if err := s.db.Save(&appt).Error; err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}
	return &appt, nil
}
