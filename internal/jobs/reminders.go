package jobs

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/agendazap/agendazap-backend/internal/models"
	"github.com/agendazap/agendazap-backend/internal/services"
	"github.com/agendazap/agendazap-backend/internal/storage"
)

// ReminderJob sends WhatsApp reminders for next-day appointments
type ReminderJob struct {
	store     storage.Store
	notifier  services.Notifier
	accountID string
	interval  time.Duration

	stop chan struct{}
	once sync.Once

	// Appointment ids already reminded during this process lifetime
	sent map[string]bool
	mu   sync.Mutex
}

// NewReminderJob creates a new reminder job scheduler
func NewReminderJob(store storage.Store, notifier services.Notifier, accountID string) *ReminderJob {
	return &ReminderJob{
		store:     store,
		notifier:  notifier,
		accountID: accountID,
		interval:  time.Hour,
		stop:      make(chan struct{}),
		sent:      make(map[string]bool),
	}
}

// Start begins the reminder loop
func (r *ReminderJob) Start() {
	log.Println("Starting appointment reminder job...")
	go r.run()
}

// Stop halts the reminder loop
func (r *ReminderJob) Stop() {
	r.once.Do(func() {
		close(r.stop)
	})
	log.Println("Stopping appointment reminder job...")
}

func (r *ReminderJob) run() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.sendReminders()
		}
	}
}

// sendReminders notifies every client with a confirmed appointment
// tomorrow, once per appointment
func (r *ReminderJob) sendReminders() {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("02/01")

	appts, err := r.store.GetAppointmentsByDate(r.accountID, tomorrow)
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appt := range appts {
		if appt.Status != models.AppointmentStatusConfirmed || appt.ClientPhone == "" {
			continue
		}

		r.mu.Lock()
		already := r.sent[appt.ID]
		if !already {
			r.sent[appt.ID] = true
		}
		r.mu.Unlock()
		if already {
			continue
		}

		message := fmt.Sprintf("Hi %s! Just a reminder of your appointment tomorrow (%s) at %s. See you there!",
			appt.ClientName, appt.Date, appt.Time)
		if err := r.notifier.SendText(appt.ClientPhone, message); err != nil {
			log.Printf("Failed to send reminder for %s: %v", appt.ID, err)
			// Retry on the next tick
			r.mu.Lock()
			delete(r.sent, appt.ID)
			r.mu.Unlock()
		}
	}
}
