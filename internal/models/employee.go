package models

import "gorm.io/datatypes"

// Employee belongs to a business account and works on a fixed set of weekdays
type Employee struct {
	ID        string `json:"id" gorm:"primaryKey"`
	AccountID string `json:"account_id" gorm:"index"`

	Name string `json:"name"`
	Role string `json:"role"`

	// Weekday names ("monday".."sunday"), compared case-insensitively
	WorkDays datatypes.JSONSlice[string] `json:"workDays"`
}

// EmployeeSummary is the public shape returned by the availability API
type EmployeeSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Summary reduces an employee to its API-visible fields
func (e *Employee) Summary() EmployeeSummary {
	return EmployeeSummary{
		ID:   e.ID,
		Name: e.Name,
		Role: e.Role,
	}
}
