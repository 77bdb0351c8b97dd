package schedule

import (
	"errors"
	"sort"
	"strings"

	"github.com/agendazap/agendazap-backend/internal/models"
)

var ErrConfigMissing = errors.New("business hours not configured")

// Availability is the result of computing open slots for one date
type Availability struct {
	Date           string                              `json:"date"`
	AvailableTimes []string                            `json:"availableTimes"`
	ByTime         map[string][]models.EmployeeSummary `json:"availabilityByTime"`
}

// ComputeAvailability produces the open time slots for a date and, per
// slot, the employees free to take it. Pure: identical inputs yield
// identical output, and the caller supplies all reads.
//
// A slot is open when at least one employee works that weekday and has no
// non-cancelled appointment at that time. A date outside the configured
// business days yields an empty result, not an error.
func ComputeAvailability(
	date string,
	year int,
	cfg *models.BusinessConfig,
	employees map[string]*models.Employee,
	appointments []*models.Appointment,
) (*Availability, error) {
	if cfg == nil || cfg.StartTime == "" || cfg.EndTime == "" {
		return nil, ErrConfigMissing
	}

	weekday, err := WeekdayOf(date, year)
	if err != nil {
		return nil, err
	}

	result := &Availability{
		Date:           date,
		AvailableTimes: []string{},
		ByTime:         map[string][]models.EmployeeSummary{},
	}

	working, err := IsWorkingDay(date, cfg.BusinessDays, year)
	if err != nil {
		return nil, err
	}
	if !working {
		return result, nil
	}

	interval := cfg.SlotInterval
	if interval == 0 {
		interval = DefaultSlotInterval
	}

	slots, err := GenerateTimeSlots(cfg.StartTime, cfg.EndTime, interval)
	if err != nil {
		return nil, err
	}

	// Stable employee order inside each slot
	ids := make([]string, 0, len(employees))
	for id := range employees {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, slot := range slots {
		free := []models.EmployeeSummary{}
		for _, id := range ids {
			emp := employees[id]
			if !worksOn(emp, weekday) {
				continue
			}
			if isEmployeeBooked(id, slot, appointments) {
				continue
			}
			free = append(free, emp.Summary())
		}

		if len(free) > 0 {
			result.AvailableTimes = append(result.AvailableTimes, slot)
			result.ByTime[slot] = free
		}
	}

	return result, nil
}

func worksOn(emp *models.Employee, weekday string) bool {
	for _, day := range emp.WorkDays {
		if strings.EqualFold(day, weekday) {
			return true
		}
	}
	return false
}

func isEmployeeBooked(employeeID, slot string, appointments []*models.Appointment) bool {
	for _, appt := range appointments {
		if appt.Status == models.AppointmentStatusCancelled {
			continue
		}
		if appt.Time == slot && appt.EmployeeID == employeeID {
			return true
		}
	}
	return false
}
