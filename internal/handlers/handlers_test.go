package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/agendazap/agendazap-backend/internal/middleware"
	"github.com/agendazap/agendazap-backend/internal/models"
	"github.com/agendazap/agendazap-backend/internal/storage"
)

func newTestApp(store storage.Store) *fiber.App {
	app := fiber.New()

	api := app.Group("/api", middleware.RequireAccount())

	availability := NewAvailabilityHandler(store)
	appointments := NewAppointmentHandler(store)

	api.Get("/availability", availability.GetAvailability)
	api.Post("/appointments", appointments.CreateAppointment)
	api.Get("/appointments", appointments.ListAppointments)
	api.Delete("/appointments/:id", appointments.CancelAppointment)

	return app
}

func seedBusiness(t *testing.T, store storage.Store) {
	t.Helper()

	allDays := []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

	if err := store.SaveBusinessConfig(&models.BusinessConfig{
		AccountID:    "acct1",
		BusinessName: "Test Salon",
		StartTime:    "08:00",
		EndTime:      "09:00",
		BusinessDays: allDays,
	}); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	if err := store.SaveEmployee(&models.Employee{
		ID:        "E1",
		AccountID: "acct1",
		Name:      "Ana",
		Role:      "stylist",
		WorkDays:  allDays,
	}); err != nil {
		t.Fatalf("seed employee: %v", err)
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, account string) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if account != "" {
		req.Header.Set("X-User-ID", account)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, payload
}

func TestAvailability_RequiresAccount(t *testing.T) {
	app := newTestApp(storage.NewMemoryStore())

	resp, payload := doJSON(t, app, http.MethodGet, "/api/availability?date=06/01", nil, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if payload["success"] != false {
		t.Fatalf("expected success=false, got %v", payload)
	}
}

func TestAvailability_InvalidDate(t *testing.T) {
	app := newTestApp(storage.NewMemoryStore())

	resp, _ := doJSON(t, app, http.MethodGet, "/api/availability?date=2025-01-06", nil, "acct1")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAvailability_UnconfiguredAccountGetsEmptyResult(t *testing.T) {
	app := newTestApp(storage.NewMemoryStore())

	resp, payload := doJSON(t, app, http.MethodGet, "/api/availability?date=06/01", nil, "newcomer")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for unconfigured account, got %d", resp.StatusCode)
	}
	if payload["success"] != true {
		t.Fatalf("expected success=true, got %v", payload)
	}
	times, ok := payload["availableTimes"].([]any)
	if !ok || len(times) != 0 {
		t.Fatalf("expected empty availableTimes, got %v", payload["availableTimes"])
	}
}

func TestAvailability_ReturnsSlots(t *testing.T) {
	store := storage.NewMemoryStore()
	seedBusiness(t, store)
	app := newTestApp(store)

	resp, payload := doJSON(t, app, http.MethodGet, "/api/availability?date=06/01", nil, "acct1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	times, _ := payload["availableTimes"].([]any)
	if len(times) != 2 || times[0] != "08:00" || times[1] != "08:30" {
		t.Fatalf("expected [08:00 08:30], got %v", payload["availableTimes"])
	}

	byTime, _ := payload["availabilityByTime"].(map[string]any)
	if len(byTime) != 2 {
		t.Fatalf("expected byTime keys for both slots, got %v", byTime)
	}

	all, _ := payload["allEmployees"].([]any)
	if len(all) != 1 {
		t.Fatalf("expected one employee, got %v", payload["allEmployees"])
	}
}

func TestCreateAppointment_FullCycle(t *testing.T) {
	store := storage.NewMemoryStore()
	seedBusiness(t, store)
	app := newTestApp(store)

	body := models.AppointmentRequest{
		Date:        "06/01",
		Time:        "08:00",
		EmployeeID:  "E1",
		ClientName:  "Carla",
		ClientPhone: "5511999990000",
		Service:     "haircut",
	}

	resp, payload := doJSON(t, app, http.MethodPost, "/api/appointments", body, "acct1")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%v)", resp.StatusCode, payload)
	}
	if payload["success"] != true || payload["appointmentId"] == "" {
		t.Fatalf("expected appointment id, got %v", payload)
	}

	// Booking the same slot again is a conflict
	resp, payload = doJSON(t, app, http.MethodPost, "/api/appointments", body, "acct1")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 on double booking, got %d (%v)", resp.StatusCode, payload)
	}

	// The slot disappears from availability
	_, avail := doJSON(t, app, http.MethodGet, "/api/availability?date=06/01", nil, "acct1")
	times, _ := avail["availableTimes"].([]any)
	if len(times) != 1 || times[0] != "08:30" {
		t.Fatalf("expected only 08:30 left, got %v", avail["availableTimes"])
	}

	// And the listing shows one appointment
	_, listing := doJSON(t, app, http.MethodGet, "/api/appointments?date=06/01", nil, "acct1")
	if listing["count"] != float64(1) {
		t.Fatalf("expected count 1, got %v", listing["count"])
	}
}

func TestCreateAppointment_RejectsUnavailableSlot(t *testing.T) {
	store := storage.NewMemoryStore()
	seedBusiness(t, store)
	app := newTestApp(store)

	cases := []models.AppointmentRequest{
		// Outside business hours
		{Date: "06/01", Time: "12:00", EmployeeID: "E1", ClientName: "C", ClientPhone: "p"},
		// Unknown employee
		{Date: "06/01", Time: "08:00", EmployeeID: "E9", ClientName: "C", ClientPhone: "p"},
	}

	for i, body := range cases {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/appointments", body, "acct1")
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("case %d: expected 400, got %d", i, resp.StatusCode)
		}
	}
}

func TestCreateAppointment_MissingFields(t *testing.T) {
	store := storage.NewMemoryStore()
	seedBusiness(t, store)
	app := newTestApp(store)

	body := models.AppointmentRequest{Date: "06/01", Time: "08:00"}
	resp, _ := doJSON(t, app, http.MethodPost, "/api/appointments", body, "acct1")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCancelAppointment(t *testing.T) {
	store := storage.NewMemoryStore()
	seedBusiness(t, store)
	app := newTestApp(store)

	body := models.AppointmentRequest{
		Date: "06/01", Time: "08:00", EmployeeID: "E1",
		ClientName: "Carla", ClientPhone: "5511999990000",
	}
	_, created := doJSON(t, app, http.MethodPost, "/api/appointments", body, "acct1")
	id, _ := created["appointmentId"].(string)
	if id == "" {
		t.Fatalf("expected appointment id, got %v", created)
	}

	resp, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/appointments/%s", id), nil, "acct1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	// Cancelled slot is bookable again
	resp, _ = doJSON(t, app, http.MethodPost, "/api/appointments", body, "acct1")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected cancelled slot to be rebookable, got %d", resp.StatusCode)
	}

	// Unknown id is a 404
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/appointments/nope", nil, "acct1")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
