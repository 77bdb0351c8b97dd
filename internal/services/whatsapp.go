package services

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/agendazap/agendazap-backend/internal/models"
	"github.com/agendazap/agendazap-backend/internal/storage"
)

// DefaultChatTimes is the candidate slot set offered by the chat flow.
// The chat books the business as a single resource, without the employee
// dimension the REST API has.
var DefaultChatTimes = []string{"08:00", "10:00", "14:00", "16:00"}

var (
	chatDatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	chatTimePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// ChatService drives the WhatsApp booking conversation. Each phone number
// walks a linear flow: start → getting_name → main_menu → getting_date →
// getting_time → confirmation.
type ChatService struct {
	store     storage.Store
	sessions  SessionStore
	notifier  Notifier
	accountID string
}

// NewChatService creates the conversation service for one business account
func NewChatService(store storage.Store, sessions SessionStore, notifier Notifier, accountID string) *ChatService {
	return &ChatService{
		store:     store,
		sessions:  sessions,
		notifier:  notifier,
		accountID: accountID,
	}
}

// HandleMessage processes one inbound message and sends the replies for
// the current conversation step
func (c *ChatService) HandleMessage(from, body string) error {
	phone := normalizePhone(from)
	msg := strings.ToLower(strings.TrimSpace(body))

	log.Printf("📱 WhatsApp message from %s: %q", phone, msg)

	session, err := c.sessions.Get(phone)
	if err != nil {
		if !errors.Is(err, storage.ErrSessionNotFound) {
			return err
		}
		session = models.NewChatSession(phone)
	}

	switch session.CurrentStep {
	case models.StepStart:
		return c.handleStart(session, msg)
	case models.StepGettingName:
		return c.handleGettingName(session, strings.TrimSpace(body))
	case models.StepMainMenu:
		return c.handleMainMenu(session, msg)
	case models.StepGettingDate:
		return c.handleGettingDate(session, msg)
	case models.StepGettingTime:
		return c.handleGettingTime(session, msg)
	case models.StepConfirmation:
		return c.handleConfirmation(session, msg)
	case models.StepCancelSelect:
		return c.handleCancelSelect(session, msg)
	default:
		return c.resetToStart(session.Phone)
	}
}

// normalizePhone strips transport decorations from the sender id
func normalizePhone(from string) string {
	phone := strings.TrimPrefix(from, "whatsapp:")
	phone = strings.TrimSuffix(phone, "@c.us")
	return phone
}

func (c *ChatService) handleStart(session *models.ChatSession, msg string) error {
	switch msg {
	case "", "hi", "hello", "start", "oi", "ola", "olá", "iniciar":
		if err := c.notifier.SendText(session.Phone,
			"Hello! Welcome to the scheduling service. What is your name?"); err != nil {
			return err
		}
		session.CurrentStep = models.StepGettingName
		return c.sessions.Save(session)
	default:
		return c.notifier.SendText(session.Phone,
			"Sorry, I didn't understand. Please type \"start\" to begin.")
	}
}

func (c *ChatService) handleGettingName(session *models.ChatSession, name string) error {
	if name == "" {
		return c.notifier.SendText(session.Phone, "Please tell me your name to continue.")
	}

	session.Data.Name = name
	session.CurrentStep = models.StepMainMenu
	if err := c.sessions.Save(session); err != nil {
		return err
	}

	return c.notifier.SendButtons(session.Phone,
		fmt.Sprintf("Great, %s! What would you like to do?", name), []Button{
			{ID: "schedule", Label: "Book an appointment"},
			{ID: "cancel", Label: "Cancel an appointment"},
			{ID: "info", Label: "Information"},
		})
}

func (c *ChatService) handleMainMenu(session *models.ChatSession, msg string) error {
	switch msg {
	case "schedule", "1":
		if err := c.notifier.SendText(session.Phone,
			"Please type the date you would like to book (DD/MM/YYYY):"); err != nil {
			return err
		}
		session.CurrentStep = models.StepGettingDate
		return c.sessions.Save(session)

	case "cancel", "2":
		return c.startCancellation(session)

	case "info", "3":
		return c.notifier.SendButtons(session.Phone,
			"I can book and cancel appointments for you over WhatsApp. Pick an option to continue.", []Button{
				{ID: "schedule", Label: "Book an appointment"},
				{ID: "cancel", Label: "Cancel an appointment"},
			})

	default:
		return c.resetToStart(session.Phone)
	}
}

// startCancellation lists the phone's upcoming appointments as a menu
func (c *ChatService) startCancellation(session *models.ChatSession) error {
	appts, err := c.upcomingAppointments(session.Phone)
	if err != nil {
		return err
	}

	if len(appts) == 0 {
		return c.notifier.SendButtons(session.Phone,
			"You have no booked appointments. Would you like to book one?", []Button{
				{ID: "schedule", Label: "Book an appointment"},
			})
	}

	buttons := make([]Button, 0, len(appts))
	for _, appt := range appts {
		buttons = append(buttons, Button{
			ID:    appt.ID,
			Label: fmt.Sprintf("%s at %s", appt.Date, appt.Time),
		})
	}

	session.CurrentStep = models.StepCancelSelect
	if err := c.sessions.Save(session); err != nil {
		return err
	}

	return c.notifier.SendButtons(session.Phone,
		"Which appointment would you like to cancel?", buttons)
}

func (c *ChatService) handleCancelSelect(session *models.ChatSession, msg string) error {
	appts, err := c.upcomingAppointments(session.Phone)
	if err != nil {
		return err
	}

	for _, appt := range appts {
		if strings.EqualFold(appt.ID, msg) {
			if _, err := c.store.CancelAppointment(c.accountID, appt.ID); err != nil {
				return err
			}
			if err := c.notifier.SendText(session.Phone,
				fmt.Sprintf("Done! Your appointment on %s at %s has been cancelled.",
					appt.Date, appt.Time)); err != nil {
				return err
			}
			return c.sessions.Clear(session.Phone)
		}
	}

	return c.notifier.SendText(session.Phone,
		"I couldn't find that appointment. Please pick one of the listed options.")
}

func (c *ChatService) handleGettingDate(session *models.ChatSession, msg string) error {
	if !chatDatePattern.MatchString(msg) {
		return c.notifier.SendText(session.Phone,
			"Invalid date. Please type it as DD/MM/YYYY:")
	}

	booked, err := c.bookedTimes(msg)
	if err != nil {
		return err
	}

	session.Data.Date = msg
	session.Data.BookedTimes = booked
	session.CurrentStep = models.StepGettingTime
	if err := c.sessions.Save(session); err != nil {
		return err
	}

	return c.showAvailableTimes(session, booked)
}

func (c *ChatService) handleGettingTime(session *models.ChatSession, msg string) error {
	if !chatTimePattern.MatchString(msg) {
		if err := c.notifier.SendText(session.Phone,
			"Invalid time. Please pick one of the available times."); err != nil {
			return err
		}
		return c.showAvailableTimes(session, session.Data.BookedTimes)
	}

	// Re-check against live data: another booking may have landed since
	// the list was shown
	booked, err := c.bookedTimes(session.Data.Date)
	if err != nil {
		return err
	}

	if contains(booked, msg) {
		if err := c.notifier.SendText(session.Phone,
			"That time has just been taken. Please choose another:"); err != nil {
			return err
		}
		session.Data.BookedTimes = booked
		if err := c.sessions.Save(session); err != nil {
			return err
		}
		return c.showAvailableTimes(session, booked)
	}

	session.Data.Time = msg
	session.CurrentStep = models.StepConfirmation
	if err := c.sessions.Save(session); err != nil {
		return err
	}

	return c.notifier.SendButtons(session.Phone,
		fmt.Sprintf("Confirm the appointment for %s at %s?", session.Data.Date, msg), []Button{
			{ID: "confirm", Label: "Confirm"},
			{ID: "change", Label: "Change"},
		})
}

func (c *ChatService) handleConfirmation(session *models.ChatSession, msg string) error {
	if msg != "confirm" {
		return c.resetToStart(session.Phone)
	}

	appt := &models.Appointment{
		ID:          uuid.NewString(),
		AccountID:   c.accountID,
		Date:        dateToken(session.Data.Date),
		Time:        session.Data.Time,
		ClientName:  session.Data.Name,
		ClientPhone: session.Phone,
		Service:     "whatsapp booking",
		Status:      models.AppointmentStatusConfirmed,
	}

	if _, err := c.store.CreateAppointment(appt); err != nil {
		if errors.Is(err, storage.ErrSlotTaken) {
			// Lost the race between confirmation prompt and answer
			booked, berr := c.bookedTimes(session.Data.Date)
			if berr != nil {
				return berr
			}
			if serr := c.notifier.SendText(session.Phone,
				"Sorry, that time was booked while you were confirming. Please choose another:"); serr != nil {
				return serr
			}
			session.Data.BookedTimes = booked
			session.CurrentStep = models.StepGettingTime
			if serr := c.sessions.Save(session); serr != nil {
				return serr
			}
			return c.showAvailableTimes(session, booked)
		}
		return err
	}

	if err := c.notifier.SendText(session.Phone,
		fmt.Sprintf("Appointment confirmed, %s! You are booked for %s at %s.",
			session.Data.Name, session.Data.Date, session.Data.Time)); err != nil {
		return err
	}

	return c.sessions.Clear(session.Phone)
}

// showAvailableTimes presents the fixed candidate set minus booked times.
// When everything is taken the flow goes back to asking for a date.
func (c *ChatService) showAvailableTimes(session *models.ChatSession, booked []string) error {
	available := availableChatTimes(booked)

	if len(available) == 0 {
		if err := c.notifier.SendText(session.Phone,
			"Unfortunately there are no times available on that date. Please choose another date (DD/MM/YYYY):"); err != nil {
			return err
		}
		session.CurrentStep = models.StepGettingDate
		return c.sessions.Save(session)
	}

	buttons := make([]Button, 0, len(available))
	for _, t := range available {
		buttons = append(buttons, Button{ID: t, Label: t})
	}
	return c.notifier.SendButtons(session.Phone, "Available times:", buttons)
}

// resetToStart drops the session and greets again
func (c *ChatService) resetToStart(phone string) error {
	if err := c.notifier.SendText(phone, "Let's start over."); err != nil {
		return err
	}
	if err := c.sessions.Clear(phone); err != nil {
		return err
	}
	return c.handleStart(models.NewChatSession(phone), "")
}

// bookedTimes returns the times of all non-cancelled appointments on a
// date, regardless of employee — the chat treats the business as one
// resource
func (c *ChatService) bookedTimes(date string) ([]string, error) {
	appts, err := c.store.GetAppointmentsByDate(c.accountID, dateToken(date))
	if err != nil {
		return nil, err
	}

	times := []string{}
	for _, appt := range appts {
		if appt.Status == models.AppointmentStatusCancelled {
			continue
		}
		times = append(times, appt.Time)
	}
	return times, nil
}

func (c *ChatService) upcomingAppointments(phone string) ([]*models.Appointment, error) {
	appts, err := c.store.GetAppointments(c.accountID)
	if err != nil {
		return nil, err
	}

	var mine []*models.Appointment
	for _, appt := range appts {
		if appt.ClientPhone == phone && appt.Status != models.AppointmentStatusCancelled {
			mine = append(mine, appt)
		}
	}
	return mine, nil
}

// availableChatTimes subtracts booked times from the candidate set
func availableChatTimes(booked []string) []string {
	available := []string{}
	for _, t := range DefaultChatTimes {
		if !contains(booked, t) {
			available = append(available, t)
		}
	}
	return available
}

// dateToken reduces DD/MM/YYYY to the DD/MM token used as the store key.
// Appointments live in a year-less date space, so the same day next year
// maps to the same key.
func dateToken(date string) string {
	if len(date) >= 5 {
		return date[:5]
	}
	return date
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
