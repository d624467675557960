package models

import "time"

// ScheduleStatus tracks delivery of a scheduled module.
type ScheduleStatus string

const (
	SchedulePlanned   ScheduleStatus = "planned"
	ScheduleActive    ScheduleStatus = "active"
	ScheduleCompleted ScheduleStatus = "completed"
)

// GroupModuleSchedule places one module, taught by one trainer, at a position in a group's curriculum.
type GroupModuleSchedule struct {
	ID             string         `json:"id"`
	GroupID        string         `json:"groupId"`
	ModuleID       string         `json:"moduleId"`
	TrainerID      string         `json:"trainerId"`
	ScheduledOrder int            `json:"scheduledOrder"`
	StartDate      *time.Time     `json:"startDate,omitempty"`
	EndDate        *time.Time     `json:"endDate,omitempty"`
	Progress       int            `json:"progress"`
	HoursCompleted float64        `json:"hoursCompleted"`
	Status         ScheduleStatus `json:"status"`
}

// Loading reports whether the schedule counts toward trainer and room load.
func (s GroupModuleSchedule) Loading() bool {
	return s.Status == SchedulePlanned || s.Status == ScheduleActive
}

// Dated reports whether both dates are set.
func (s GroupModuleSchedule) Dated() bool {
	return s.StartDate != nil && s.EndDate != nil
}

// CreateScheduleRequest adds a schedule row by hand.
type CreateScheduleRequest struct {
	GroupID        string          `json:"groupId" validate:"required"`
	ModuleID       string          `json:"moduleId" validate:"required"`
	TrainerID      string          `json:"trainerId" validate:"required"`
	ScheduledOrder int             `json:"scheduledOrder" validate:"min=1"`
	StartDate      *string         `json:"startDate"`
	EndDate        *string         `json:"endDate"`
	Status         *ScheduleStatus `json:"status" validate:"omitempty,oneof=planned active completed"`
}

// UpdateScheduleRequest records progress or reassigns a schedule.
type UpdateScheduleRequest struct {
	TrainerID      *string         `json:"trainerId"`
	StartDate      *string         `json:"startDate"`
	EndDate        *string         `json:"endDate"`
	Progress       *int            `json:"progress" validate:"omitempty,min=0,max=100"`
	HoursCompleted *float64        `json:"hoursCompleted" validate:"omitempty,min=0"`
	Status         *ScheduleStatus `json:"status" validate:"omitempty,oneof=planned active completed"`
}

// ScheduleFilter narrows schedule listings.
type ScheduleFilter struct {
	GroupID   string
	TrainerID string
	ModuleID  string
	Status    ScheduleStatus
}
