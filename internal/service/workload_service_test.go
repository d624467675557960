package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/training-capacity-api/internal/models"
	"github.com/noah-isme/training-capacity-api/internal/store"
)

func TestTrainerWorkloadCountsLiveLoadingSchedules(t *testing.T) {
	f := newFixture(t)
	f.trainer("t1", 20, "x")
	off := f.trainer("t2", 20)
	off.IsActive = false
	f.update(func(tx *store.Tx) { tx.PutTrainer(off) })
	f.module("m1", 40, 2, 2, models.ModuleTheoretical)
	f.module("m2", 40, 3, 2, models.ModuleTheoretical)
	f.group("g1", "2024-01-01", "")

	f.schedule(models.GroupModuleSchedule{ID: "s1", GroupID: "g1", ModuleID: "m1", TrainerID: "t1", ScheduledOrder: 1, Status: models.SchedulePlanned})
	f.schedule(models.GroupModuleSchedule{ID: "s2", GroupID: "g1", ModuleID: "m2", TrainerID: "t1", ScheduledOrder: 2, Status: models.ScheduleCompleted})
	f.schedule(models.GroupModuleSchedule{ID: "s3", GroupID: "deleted", ModuleID: "m2", TrainerID: "t1", ScheduledOrder: 1, Status: models.ScheduleActive})

	svc := NewWorkloadService(f.st, nil, nil)
	workload, err := svc.TrainerWorkload(context.Background())
	require.NoError(t, err)

	require.Len(t, workload, 1)
	assert.Equal(t, "t1", workload[0].TrainerID)
	assert.Equal(t, 4.0, workload[0].CurrentHours)
	assert.Equal(t, 20, workload[0].MaxHours)
	assert.Equal(t, 20, workload[0].OccupationRate)
	assert.Equal(t, 4.0, f.getTrainer("t1").CurrentHoursPerWeek)
}

func TestTrainerWorkloadZeroCapacity(t *testing.T) {
	f := newFixture(t)
	f.trainer("t1", 0)

	workload, err := NewWorkloadService(f.st, nil, nil).TrainerWorkload(context.Background())
	require.NoError(t, err)
	require.Len(t, workload, 1)
	assert.Zero(t, workload[0].OccupationRate)
}

func TestRoomOccupancy(t *testing.T) {
	f := newFixture(t)
	f.trainer("t1", 35)
	f.room("r1")
	f.room("r2")
	f.module("m1", 40, 3, 2, models.ModuleTheoretical)
	f.group("g1", "2024-01-01", "r1")
	done := f.group("g2", "2024-01-01", "r2")
	done.Status = models.GroupCompleted
	f.update(func(tx *store.Tx) { tx.PutGroup(done) })

	f.schedule(models.GroupModuleSchedule{ID: "s1", GroupID: "g1", ModuleID: "m1", TrainerID: "t1", ScheduledOrder: 1, Status: models.SchedulePlanned})
	f.schedule(models.GroupModuleSchedule{ID: "s2", GroupID: "g2", ModuleID: "m1", TrainerID: "t1", ScheduledOrder: 1, Status: models.SchedulePlanned})

	occupancy, err := NewWorkloadService(f.st, nil, nil).RoomOccupancy(context.Background())
	require.NoError(t, err)

	require.Len(t, occupancy, 2)
	assert.Equal(t, "r1", occupancy[0].RoomID)
	assert.Equal(t, 6.0, occupancy[0].OccupiedHours)
	assert.Equal(t, models.RoomHoursPerWeek, occupancy[0].AvailableHours)
	assert.Equal(t, 15, occupancy[0].OccupationRate)
	assert.Zero(t, occupancy[1].OccupiedHours, "completed groups free their room")
}

func TestRefreshTrainerLoadResetsDrift(t *testing.T) {
	f := newFixture(t)
	stale := f.trainer("t1", 35)
	stale.CurrentHoursPerWeek = 12
	f.update(func(tx *store.Tx) { tx.PutTrainer(stale) })

	require.NoError(t, NewWorkloadService(f.st, nil, nil).RefreshTrainerLoad(context.Background()))
	assert.Zero(t, f.getTrainer("t1").CurrentHoursPerWeek)
}
