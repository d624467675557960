package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/training-capacity-api/internal/models"
	"github.com/noah-isme/training-capacity-api/pkg/config"
)

func seedPlanning(t *testing.T) *fixture {
	f := newFixture(t)
	f.trainer("t1", 6)
	f.room("r1")
	f.module("m8", 8, 2, 2, models.ModuleTheoretical)
	f.module("m4", 4, 2, 2, models.ModulePractical)
	f.group("g1", "2024-01-03", "r1")
	f.group("g2", "2024-01-15", "")

	f.schedule(models.GroupModuleSchedule{ID: "s1", GroupID: "g1", ModuleID: "m8", TrainerID: "t1", ScheduledOrder: 1,
		StartDate: datePtr(t, "2024-01-03"), EndDate: datePtr(t, "2024-01-16"), Status: models.SchedulePlanned})
	f.schedule(models.GroupModuleSchedule{ID: "s2", GroupID: "g2", ModuleID: "m4", TrainerID: "t1", ScheduledOrder: 1,
		StartDate: datePtr(t, "2024-01-15"), EndDate: datePtr(t, "2024-01-21"), Status: models.SchedulePlanned})
	f.schedule(models.GroupModuleSchedule{ID: "undated", GroupID: "g2", ModuleID: "m4", TrainerID: "t1", ScheduledOrder: 2, Status: models.SchedulePlanned})
	return f
}

func TestWeeklyPlanningCalendarBuckets(t *testing.T) {
	f := seedPlanning(t)
	svc := NewPlanningService(f.st, nil, PlanningServiceConfig{WeekBucketing: config.WeekBucketCalendar})

	weeks, err := svc.WeeklyPlanning(context.Background())
	require.NoError(t, err)

	require.Len(t, weeks, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{weeks[0].Week, weeks[1].Week, weeks[2].Week})
	assert.Equal(t, "2024-01-01", day(weeks[0].WeekStart))
	assert.Equal(t, "2024-01-07", day(weeks[0].WeekEnd))
	assert.Equal(t, "2024-01-08", day(weeks[1].WeekStart))
	assert.Equal(t, "2024-01-15", day(weeks[2].WeekStart))

	require.Len(t, weeks[0].Groups, 1)
	assert.Equal(t, "g1", weeks[0].Groups[0].GroupID)
	require.Len(t, weeks[0].RoomHours, 1)
	assert.Equal(t, 4.0, weeks[0].RoomHours[0].Hours)

	require.Len(t, weeks[2].Groups, 1)
	assert.Equal(t, "g2", weeks[2].Groups[0].GroupID)
	assert.Empty(t, weeks[2].RoomHours, "groups without a room add no room hours")
}

func TestWeeklyPlanningGroupRelativeBuckets(t *testing.T) {
	f := seedPlanning(t)
	svc := NewPlanningService(f.st, nil, PlanningServiceConfig{WeekBucketing: config.WeekBucketGroupRelative})

	weeks, err := svc.WeeklyPlanning(context.Background())
	require.NoError(t, err)

	require.Len(t, weeks, 2)
	assert.Nil(t, weeks[0].WeekStart)
	require.Len(t, weeks[0].Groups, 2)
	assert.Equal(t, "g1", weeks[0].Groups[0].GroupID)
	assert.Equal(t, "g2", weeks[0].Groups[1].GroupID)

	require.Len(t, weeks[0].TrainerHours, 1)
	load := weeks[0].TrainerHours[0]
	assert.Equal(t, 8.0, load.Hours)
	assert.Equal(t, 6.0, load.Capacity)
	assert.True(t, load.IsOverloaded)

	assert.False(t, weeks[1].TrainerHours[0].IsOverloaded)
}

func TestWeeklyPlanningEmpty(t *testing.T) {
	f := newFixture(t)
	weeks, err := NewPlanningService(f.st, nil, PlanningServiceConfig{}).WeeklyPlanning(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, weeks)
	assert.Empty(t, weeks)
}

func TestMonthlyPlanningConflicts(t *testing.T) {
	f := newFixture(t)
	f.trainer("t1", 10)
	f.module("intensive", 120, 5, 4, models.ModulePractical)
	f.group("g1", "2024-01-01", "")
	f.schedule(models.GroupModuleSchedule{ID: "s1", GroupID: "g1", ModuleID: "intensive", TrainerID: "t1", ScheduledOrder: 1,
		StartDate: datePtr(t, "2024-01-01"), EndDate: datePtr(t, "2024-02-11"), Status: models.SchedulePlanned})

	svc := NewPlanningService(f.st, nil, PlanningServiceConfig{Months: 3})
	svc.now = func() time.Time { return time.Date(2024, time.January, 20, 9, 0, 0, 0, time.UTC) }

	months, err := svc.MonthlyPlanning(context.Background())
	require.NoError(t, err)

	require.Len(t, months, 3)
	assert.Equal(t, "2024-01", months[0].Month)
	assert.Equal(t, 2024, months[0].Year)
	assert.Equal(t, 1, months[0].MonthNumber)
	assert.Equal(t, "2024-03", months[2].Month)

	assert.Equal(t, 40.0, months[0].TrainerCapacity)
	assert.Zero(t, months[0].RoomCapacity)
	assert.Equal(t, 1, months[0].TotalGroups)
	assert.Equal(t, 80.0, months[0].TotalTrainerHours)
	assert.Equal(t, 80.0, months[1].TotalRoomHours)
	require.Len(t, months[0].Conflicts, 2)
	assert.Equal(t, models.ConflictTrainer, months[0].Conflicts[0].Type)
	assert.Equal(t, "Surcharge formateurs : 80h planifiées pour 40h disponibles", months[0].Conflicts[0].Description)
	assert.Equal(t, models.ConflictRoom, months[0].Conflicts[1].Type)

	assert.Zero(t, months[2].TotalGroups)
	assert.Empty(t, months[2].Conflicts)
}

func TestMonthlyPlanningIgnoresPastMonths(t *testing.T) {
	f := newFixture(t)
	f.trainer("t1", 10)
	f.module("m", 8, 2, 2, models.ModuleTheoretical)
	f.group("g1", "2023-06-01", "")
	f.schedule(models.GroupModuleSchedule{ID: "s1", GroupID: "g1", ModuleID: "m", TrainerID: "t1", ScheduledOrder: 1,
		StartDate: datePtr(t, "2023-06-01"), EndDate: datePtr(t, "2023-06-14"), Status: models.SchedulePlanned})

	svc := NewPlanningService(f.st, nil, PlanningServiceConfig{})
	svc.now = func() time.Time { return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC) }

	months, err := svc.MonthlyPlanning(context.Background())
	require.NoError(t, err)
	require.Len(t, months, 12)
	for _, m := range months {
		assert.Zero(t, m.TotalGroups)
	}
}
