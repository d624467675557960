package models

import (
	"math"
	"time"
)

// ModuleType distinguishes classroom theory from hands-on practice.
type ModuleType string

const (
	ModuleTheoretical ModuleType = "theoretical"
	ModulePractical   ModuleType = "practical"
)

// MaxDurationWeeks caps how long a single module can run.
const MaxDurationWeeks = 520

// Module is a course unit taught to a training group.
type Module struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	TotalHours      int        `json:"totalHours"`
	SessionsPerWeek int        `json:"sessionsPerWeek"`
	HoursPerSession float64    `json:"hoursPerSession"`
	Type            ModuleType `json:"type"`
	IsActive        bool       `json:"isActive"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// WeeklyLoad is the number of hours per week the module occupies a trainer and a room.
func (m Module) WeeklyLoad() float64 {
	return float64(m.SessionsPerWeek) * m.HoursPerSession
}

// DurationWeeks returns ceil(totalHours / weeklyLoad), or 0 when the module has
// no weekly load. The result never exceeds MaxDurationWeeks.
func (m Module) DurationWeeks() int {
	load := m.WeeklyLoad()
	if load <= 0 || m.TotalHours <= 0 {
		return 0
	}
	weeks := math.Ceil(float64(m.TotalHours) / load)
	if weeks > MaxDurationWeeks {
		return MaxDurationWeeks
	}
	return int(weeks)
}

// CreateModuleRequest is the payload for adding a module to the catalogue.
type CreateModuleRequest struct {
	Name            string     `json:"name" validate:"required,max=255"`
	Description     string     `json:"description" validate:"max=2000"`
	TotalHours      int        `json:"totalHours" validate:"min=0,max=10000"`
	SessionsPerWeek int        `json:"sessionsPerWeek" validate:"min=0,max=50"`
	HoursPerSession float64    `json:"hoursPerSession" validate:"eq=0|gte=0.25,max=24"`
	Type            ModuleType `json:"type" validate:"required,oneof=theoretical practical"`
	IsActive        *bool      `json:"isActive"`
}

// UpdateModuleRequest carries a partial module update.
type UpdateModuleRequest struct {
	Name            *string     `json:"name" validate:"omitempty,max=255"`
	Description     *string     `json:"description" validate:"omitempty,max=2000"`
	TotalHours      *int        `json:"totalHours" validate:"omitempty,min=0,max=10000"`
	SessionsPerWeek *int        `json:"sessionsPerWeek" validate:"omitempty,min=0,max=50"`
	HoursPerSession *float64    `json:"hoursPerSession" validate:"omitempty,eq=0|gte=0.25,max=24"`
	Type            *ModuleType `json:"type" validate:"omitempty,oneof=theoretical practical"`
	IsActive        *bool       `json:"isActive"`
}
