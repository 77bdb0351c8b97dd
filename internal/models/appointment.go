package models

import "time"

// Appointment represents a booked time slot for a business account
type Appointment struct {
	ID string `json:"id" gorm:"primaryKey"`

	// The partial unique index is the storage-level booking guard:
	// cancelled rows drop out of it so their slot can be rebooked.
	AccountID string `json:"account_id" gorm:"index;uniqueIndex:idx_slot,where:status <> 'cancelled'"`

	// Slot key: date is DD/MM, time is HH:MM on the configured grid
	Date       string `json:"date" gorm:"uniqueIndex:idx_slot"`
	Time       string `json:"time" gorm:"uniqueIndex:idx_slot"`
	EmployeeID string `json:"employeeId" gorm:"uniqueIndex:idx_slot"`

	// Client details
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`
	Service     string `json:"service"`

	Status string `json:"status"` // "confirmed", "cancelled"

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentRequest is the POST /api/appointments body
type AppointmentRequest struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	EmployeeID  string `json:"employeeId"`
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`
	Service     string `json:"service"`
}

// AppointmentStatus constants
const (
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
)
