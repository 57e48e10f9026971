package models

import "time"

// Schedule is one weekly working-hours row. EmployeeID nil means the
// business-wide default for that weekday; an employee row overrides it.
// Absence of a row for a weekday means closed.
type Schedule struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	BusinessID uint  `gorm:"index" json:"business_id"`
	EmployeeID *uint `gorm:"index" json:"employee_id"`

	DayOfWeek int `json:"day_of_week"` // 0=Sunday .. 6=Saturday

	StartTime   string `gorm:"size:5" json:"start_time"` // "HH:MM"
	EndTime     string `gorm:"size:5" json:"end_time"`
	IsAvailable bool   `json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
