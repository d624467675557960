package models

import "time"

// GroupStatus tracks where a training group is in its lifecycle.
type GroupStatus string

const (
	GroupPlanned   GroupStatus = "planned"
	GroupActive    GroupStatus = "active"
	GroupCompleted GroupStatus = "completed"
	GroupDelayed   GroupStatus = "delayed"
)

// TrainingGroup is a cohort of participants following the module curriculum.
type TrainingGroup struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	ParticipantCount int         `json:"participantCount"`
	StartDate        time.Time   `json:"startDate"`
	EndDate          *time.Time  `json:"endDate,omitempty"`
	EstimatedEndDate *time.Time  `json:"estimatedEndDate,omitempty"`
	Status           GroupStatus `json:"status"`
	DelayDays        int         `json:"delayDays"`
	RoomID           *string     `json:"roomId,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// HasRoom reports whether a room is assigned.
func (g TrainingGroup) HasRoom() bool {
	return g.RoomID != nil && *g.RoomID != ""
}

// Occupying reports whether the group still consumes room capacity.
func (g TrainingGroup) Occupying() bool {
	return g.Status == GroupPlanned || g.Status == GroupActive
}

// CreateTrainingGroupRequest is the payload for opening a group. Dates use YYYY-MM-DD or RFC3339.
type CreateTrainingGroupRequest struct {
	Name             string       `json:"name" validate:"required,max=255"`
	ParticipantCount int          `json:"participantCount" validate:"min=0"`
	StartDate        string       `json:"startDate" validate:"required"`
	EndDate          *string      `json:"endDate"`
	Status           *GroupStatus `json:"status" validate:"omitempty,oneof=planned active completed delayed"`
	DelayDays        int          `json:"delayDays" validate:"min=0"`
	RoomID           *string      `json:"roomId"`
}

// UpdateTrainingGroupRequest carries a partial group update.
type UpdateTrainingGroupRequest struct {
	Name             *string      `json:"name" validate:"omitempty,max=255"`
	ParticipantCount *int         `json:"participantCount" validate:"omitempty,min=0"`
	StartDate        *string      `json:"startDate"`
	EndDate          *string      `json:"endDate"`
	Status           *GroupStatus `json:"status" validate:"omitempty,oneof=planned active completed delayed"`
	DelayDays        *int         `json:"delayDays" validate:"omitempty,min=0"`
	RoomID           *string      `json:"roomId"`
}

// GroupCreationResult returns the stored group together with the assignment pass outcome.
type GroupCreationResult struct {
	Group      TrainingGroup    `json:"group"`
	Assignment AssignmentResult `json:"assignment"`
}
