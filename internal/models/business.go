package models

import "gorm.io/datatypes"

// BusinessConfig holds the working hours and working days of an account.
// It is written by external configuration tooling and only read here.
type BusinessConfig struct {
	AccountID    string `json:"account_id" gorm:"primaryKey"`
	BusinessName string `json:"businessName"`

	// Business hours, HH:MM. Slots cover [StartTime, EndTime).
	StartTime string `json:"start"`
	EndTime   string `json:"end"`

	// Minutes between slots; 0 means the default grid (30)
	SlotInterval int `json:"slotInterval"`

	BusinessDays datatypes.JSONSlice[string] `json:"businessDays"`
}
