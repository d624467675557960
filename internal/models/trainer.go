package models

import "time"

// Absence is a declared unavailability window for a trainer. Dates use YYYY-MM-DD.
type Absence struct {
	Start  string `json:"start" validate:"required,datetime=2006-01-02"`
	End    string `json:"end" validate:"required,datetime=2006-01-02"`
	Reason string `json:"reason,omitempty" validate:"max=255"`
}

// Trainer is an instructor whose weekly load the planner balances.
// CurrentHoursPerWeek is a cache derived from planned and active schedules.
type Trainer struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Specialties         []string  `json:"specialties"`
	MaxHoursPerWeek     int       `json:"maxHoursPerWeek"`
	CurrentHoursPerWeek float64   `json:"currentHoursPerWeek"`
	IsActive            bool      `json:"isActive"`
	Absences            []Absence `json:"absences"`
	CreatedAt           time.Time `json:"createdAt"`
}

// CreateTrainerRequest is the payload for registering a trainer.
type CreateTrainerRequest struct {
	Name            string    `json:"name" validate:"required,max=255"`
	Email           string    `json:"email" validate:"omitempty,email"`
	Specialties     []string  `json:"specialties" validate:"omitempty,dive,max=100"`
	MaxHoursPerWeek int       `json:"maxHoursPerWeek" validate:"min=0,max=168"`
	IsActive        *bool     `json:"isActive"`
	Absences        []Absence `json:"absences" validate:"omitempty,dive"`
}

// UpdateTrainerRequest carries a partial trainer update.
type UpdateTrainerRequest struct {
	Name            *string    `json:"name" validate:"omitempty,max=255"`
	Email           *string    `json:"email" validate:"omitempty,email"`
	Specialties     *[]string  `json:"specialties" validate:"omitempty,dive,max=100"`
	MaxHoursPerWeek *int       `json:"maxHoursPerWeek" validate:"omitempty,min=0,max=168"`
	IsActive        *bool      `json:"isActive"`
	Absences        *[]Absence `json:"absences" validate:"omitempty,dive"`
}
