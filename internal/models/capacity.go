package models

import "time"

// TrainerWorkload is a trainer's weekly load against their cap.
type TrainerWorkload struct {
	TrainerID      string  `json:"trainerId"`
	Name           string  `json:"name"`
	CurrentHours   float64 `json:"currentHours"`
	MaxHours       int     `json:"maxHours"`
	OccupationRate int     `json:"occupationRate"`
}

// RoomOccupancy is a room's weekly load against the fixed 40h availability.
type RoomOccupancy struct {
	RoomID         string  `json:"roomId"`
	Name           string  `json:"name"`
	OccupiedHours  float64 `json:"occupiedHours"`
	AvailableHours int     `json:"availableHours"`
	OccupationRate int     `json:"occupationRate"`
}

// TrainerConstraint flags an overloaded trainer.
type TrainerConstraint struct {
	TrainerID      string  `json:"trainerId"`
	Name           string  `json:"name"`
	IsOverloaded   bool    `json:"isOverloaded"`
	AvailableHours float64 `json:"availableHours"`
}

// RoomConstraint flags an overbooked room.
type RoomConstraint struct {
	RoomID            string   `json:"roomId"`
	Name              string   `json:"name"`
	Type              RoomType `json:"type"`
	IsOverbooked      bool     `json:"isOverbooked"`
	AvailableCapacity float64  `json:"availableCapacity"`
}

// GroupAssignmentSummary counts what a group has been given.
type GroupAssignmentSummary struct {
	GroupID          string `json:"groupId"`
	GroupName        string `json:"groupName"`
	AssignedModules  int    `json:"assignedModules"`
	AssignedTrainers int    `json:"assignedTrainers"`
	HasRoom          bool   `json:"hasRoom"`
}

// WeekModuleEntry is one module running for a group during a week.
type WeekModuleEntry struct {
	ScheduleID  string     `json:"scheduleId"`
	ModuleID    string     `json:"moduleId"`
	ModuleName  string     `json:"moduleName"`
	TrainerID   string     `json:"trainerId"`
	TrainerName string     `json:"trainerName"`
	WeeklyHours float64    `json:"weeklyHours"`
	TotalHours  int        `json:"totalHours"`
	Type        ModuleType `json:"type"`
	Progress    int        `json:"progress"`
	Order       int        `json:"order"`
}

// WeekGroupPlan lists a group's modules in a week bucket.
type WeekGroupPlan struct {
	GroupID   string            `json:"groupId"`
	GroupName string            `json:"groupName"`
	Modules   []WeekModuleEntry `json:"modules"`
}

// ResourceLoad sums a trainer's or room's hours in a week against its capacity.
type ResourceLoad struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Hours        float64 `json:"hours"`
	Capacity     float64 `json:"capacity"`
	IsOverloaded bool    `json:"isOverloaded"`
}

// WeekPlan is one weekly planning bucket. WeekStart and WeekEnd are set for calendar bucketing only.
type WeekPlan struct {
	Week         int             `json:"week"`
	WeekStart    *time.Time      `json:"weekStart,omitempty"`
	WeekEnd      *time.Time      `json:"weekEnd,omitempty"`
	Groups       []WeekGroupPlan `json:"groups"`
	TrainerHours []ResourceLoad  `json:"trainerHours"`
	RoomHours    []ResourceLoad  `json:"roomHours"`
}

// Conflict kinds reported by the monthly planner.
const (
	ConflictTrainer = "trainer"
	ConflictRoom    = "room"
)

// PlanningConflict is a capacity breach detected in a month bucket.
type PlanningConflict struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// MonthPlan aggregates a calendar month of scheduled load.
type MonthPlan struct {
	Month             string             `json:"month"`
	Year              int                `json:"year"`
	MonthNumber       int                `json:"monthNumber"`
	TotalGroups       int                `json:"totalGroups"`
	TotalTrainerHours float64            `json:"totalTrainerHours"`
	TotalRoomHours    float64            `json:"totalRoomHours"`
	TrainerCapacity   float64            `json:"trainerCapacity"`
	RoomCapacity      float64            `json:"roomCapacity"`
	Conflicts         []PlanningConflict `json:"conflicts"`
}

// CapacityAnalysis is the full capacity report.
type CapacityAnalysis struct {
	TrainerConstraints []TrainerConstraint      `json:"trainerConstraints"`
	RoomConstraints    []RoomConstraint         `json:"roomConstraints"`
	GroupAssignments   []GroupAssignmentSummary `json:"groupAssignments"`
	WeeklyPlanning     []WeekPlan               `json:"weeklyPlanning"`
	MonthlyPlanning    []MonthPlan              `json:"monthlyPlanning"`
	Recommendations    []string                 `json:"recommendations"`
	GeneratedAt        time.Time                `json:"generatedAt"`
}

// DashboardSummary is the landing-page overview.
type DashboardSummary struct {
	TrainerOccupationRate int               `json:"trainerOccupationRate"`
	RoomOccupationRate    int               `json:"roomOccupationRate"`
	ActiveGroups          int               `json:"activeGroups"`
	TotalGroups           int               `json:"totalGroups"`
	CompletedGroups       int               `json:"completedGroups"`
	DelayedGroups         int               `json:"delayedGroups"`
	CapacityRemaining     int               `json:"capacityRemaining"`
	TotalTrainers         int               `json:"totalTrainers"`
	TotalRooms            int               `json:"totalRooms"`
	TrainerWorkload       []TrainerWorkload `json:"trainerWorkload"`
	RoomOccupancy         []RoomOccupancy   `json:"roomOccupancy"`
}
