package models

import "time"

// ModuleTrainerAssignment is one cell of the competency matrix. (ModuleID, TrainerID) is unique.
type ModuleTrainerAssignment struct {
	ID        string `json:"id"`
	ModuleID  string `json:"moduleId"`
	TrainerID string `json:"trainerId"`
	CanTeach  bool   `json:"canTeach"`
}

// SetAssignmentRequest toggles a competency matrix cell.
type SetAssignmentRequest struct {
	ModuleID  string `json:"moduleId" validate:"required"`
	TrainerID string `json:"trainerId" validate:"required"`
	CanTeach  *bool  `json:"canTeach" validate:"required"`
}

// AssignmentFilter narrows competency matrix listings.
type AssignmentFilter struct {
	ModuleID  string
	TrainerID string
}

// Reasons a module is left out of a group's curriculum.
const (
	SkipNoQualifiedTrainer = "no_qualified_trainer"
	SkipZeroWeeklyLoad     = "zero_weekly_load"
)

// UnassignedModule names a module the engine could not schedule.
type UnassignedModule struct {
	ModuleID   string `json:"moduleId"`
	ModuleName string `json:"moduleName"`
	Reason     string `json:"reason"`
}

// AssignmentResult reports everything an assignment pass wrote or skipped.
type AssignmentResult struct {
	GroupID               string                    `json:"groupId"`
	Schedules             []GroupModuleSchedule     `json:"schedules"`
	UnassignedModules     []UnassignedModule        `json:"unassignedModules"`
	DiscoveredAssignments []ModuleTrainerAssignment `json:"discoveredAssignments"`
	EstimatedEndDate      *time.Time                `json:"estimatedEndDate,omitempty"`
}

// AutoAssignSummary is returned by the bulk competency matching.
type AutoAssignSummary struct {
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
	Message string `json:"message"`
}

// RecalculationSummary is returned by a full capacity recalculation.
type RecalculationSummary struct {
	Recalculated int      `json:"recalculated"`
	Skipped      int      `json:"skipped"`
	GroupIDs     []string `json:"groupIds"`
	Message      string   `json:"message"`
}
