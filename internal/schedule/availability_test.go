package schedule

import (
	"errors"
	"reflect"
	"testing"

	"github.com/agendazap/agendazap-backend/internal/models"
)

func testConfig() *models.BusinessConfig {
	return &models.BusinessConfig{
		AccountID:    "acct1",
		StartTime:    "08:00",
		EndTime:      "09:00",
		BusinessDays: []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
	}
}

func testEmployees() map[string]*models.Employee {
	return map[string]*models.Employee{
		"E1": {
			ID:       "E1",
			Name:     "Ana",
			Role:     "stylist",
			WorkDays: []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		},
	}
}

func TestComputeAvailability_OpenDay(t *testing.T) {
	// 06/01/2025 is a Monday
	result, err := ComputeAvailability("06/01", 2025, testConfig(), testEmployees(), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{"08:00", "08:30"}
	if !reflect.DeepEqual(result.AvailableTimes, want) {
		t.Fatalf("expected %v, got %v", want, result.AvailableTimes)
	}

	for _, slot := range want {
		emps := result.ByTime[slot]
		if len(emps) != 1 || emps[0].ID != "E1" {
			t.Fatalf("expected E1 free at %s, got %v", slot, emps)
		}
		if emps[0].Name != "Ana" || emps[0].Role != "stylist" {
			t.Fatalf("expected reduced employee summary, got %+v", emps[0])
		}
	}
}

func TestComputeAvailability_NonWorkingDay(t *testing.T) {
	// 05/01/2025 is a Sunday
	result, err := ComputeAvailability("05/01", 2025, testConfig(), testEmployees(), nil)
	if err != nil {
		t.Fatalf("non-working day must not error, got %v", err)
	}

	if len(result.AvailableTimes) != 0 {
		t.Fatalf("expected no available times, got %v", result.AvailableTimes)
	}
	if len(result.ByTime) != 0 {
		t.Fatalf("expected empty availability map, got %v", result.ByTime)
	}
}

func TestComputeAvailability_BookedSlotExcluded(t *testing.T) {
	appts := []*models.Appointment{
		{Date: "06/01", Time: "08:00", EmployeeID: "E1", Status: models.AppointmentStatusConfirmed},
	}

	result, err := ComputeAvailability("06/01", 2025, testConfig(), testEmployees(), appts)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{"08:30"}
	if !reflect.DeepEqual(result.AvailableTimes, want) {
		t.Fatalf("expected %v, got %v", want, result.AvailableTimes)
	}
	if _, ok := result.ByTime["08:00"]; ok {
		t.Fatalf("fully booked slot must not appear in the map")
	}
}

func TestComputeAvailability_CancelledAppointmentFreesSlot(t *testing.T) {
	appts := []*models.Appointment{
		{Date: "06/01", Time: "08:00", EmployeeID: "E1", Status: models.AppointmentStatusCancelled},
	}

	result, err := ComputeAvailability("06/01", 2025, testConfig(), testEmployees(), appts)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{"08:00", "08:30"}
	if !reflect.DeepEqual(result.AvailableTimes, want) {
		t.Fatalf("cancelled appointment must not block, got %v", result.AvailableTimes)
	}
}

func TestComputeAvailability_EmployeeOffThatWeekday(t *testing.T) {
	employees := map[string]*models.Employee{
		"E1": {ID: "E1", Name: "Ana", WorkDays: []string{"tuesday"}},
	}

	result, err := ComputeAvailability("06/01", 2025, testConfig(), employees, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(result.AvailableTimes) != 0 {
		t.Fatalf("no employee works mondays, expected empty, got %v", result.AvailableTimes)
	}
}

func TestComputeAvailability_MapKeysMatchTimes(t *testing.T) {
	employees := map[string]*models.Employee{
		"E1": {ID: "E1", Name: "Ana", WorkDays: []string{"monday"}},
		"E2": {ID: "E2", Name: "Bia", WorkDays: []string{"monday"}},
	}
	appts := []*models.Appointment{
		{Date: "06/01", Time: "08:30", EmployeeID: "E1", Status: models.AppointmentStatusConfirmed},
		{Date: "06/01", Time: "08:30", EmployeeID: "E2", Status: models.AppointmentStatusConfirmed},
	}

	result, err := ComputeAvailability("06/01", 2025, testConfig(), employees, appts)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(result.ByTime) != len(result.AvailableTimes) {
		t.Fatalf("map keys must be exactly the available times: %v vs %v",
			result.AvailableTimes, result.ByTime)
	}
	for _, slot := range result.AvailableTimes {
		if len(result.ByTime[slot]) == 0 {
			t.Fatalf("slot %s listed available but has no employees", slot)
		}
	}
}

func TestComputeAvailability_Idempotent(t *testing.T) {
	appts := []*models.Appointment{
		{Date: "06/01", Time: "08:00", EmployeeID: "E1", Status: models.AppointmentStatusConfirmed},
	}

	first, err := ComputeAvailability("06/01", 2025, testConfig(), testEmployees(), appts)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := ComputeAvailability("06/01", 2025, testConfig(), testEmployees(), appts)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs must yield identical output")
	}
}

func TestComputeAvailability_Errors(t *testing.T) {
	if _, err := ComputeAvailability("bad", 2025, testConfig(), testEmployees(), nil); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := ComputeAvailability("06/01", 2025, nil, testEmployees(), nil); !errors.Is(err, ErrConfigMissing) {
		t.Fatalf("expected ErrConfigMissing for nil config, got %v", err)
	}
	if _, err := ComputeAvailability("06/01", 2025, &models.BusinessConfig{}, testEmployees(), nil); !errors.Is(err, ErrConfigMissing) {
		t.Fatalf("expected ErrConfigMissing for empty hours, got %v", err)
	}
}
