package models

import "time"

// ChatStep constants for the WhatsApp booking conversation
const (
	StepStart        = "start"
	StepGettingName  = "getting_name"
	StepMainMenu     = "main_menu"
	StepGettingDate  = "getting_date"
	StepGettingTime  = "getting_time"
	StepConfirmation = "confirmation"
	StepCancelSelect = "cancel_select"
)

// ChatData holds the values collected across the conversation steps
type ChatData struct {
	Name string `json:"name,omitempty"`
	Date string `json:"date,omitempty"`
	Time string `json:"time,omitempty"`

	// Snapshot of booked times taken at the getting_date step. Only a
	// presentation hint; the getting_time step re-checks live data.
	BookedTimes []string `json:"bookedTimes,omitempty"`
}

// ChatSession is the per-phone conversation state, one per phone number
type ChatSession struct {
	Phone       string    `json:"phone"`
	CurrentStep string    `json:"currentStep"`
	Data        ChatData  `json:"data"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewChatSession creates a session at the start step
func NewChatSession(phone string) *ChatSession {
	return &ChatSession{
		Phone:       phone,
		CurrentStep: StepStart,
		UpdatedAt:   time.Now(),
	}
}
