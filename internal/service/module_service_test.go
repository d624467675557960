package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/training-capacity-api/internal/models"
	appErrors "github.com/noah-isme/training-capacity-api/pkg/errors"
)

func TestModuleServiceCRUD(t *testing.T) {
	f := newFixture(t)
	svc := NewModuleService(f.st, nil, nil)

	module, err := svc.Create(context.Background(), models.CreateModuleRequest{
		Name: " Python Basics ", TotalHours: 40, SessionsPerWeek: 2, HoursPerSession: 2, Type: models.ModuleTheoretical,
	})
	require.NoError(t, err)
	assert.Equal(t, "Python Basics", module.Name)
	assert.True(t, module.IsActive)
	assert.Equal(t, 4.0, module.WeeklyLoad())

	updated, err := svc.Update(context.Background(), module.ID, models.UpdateModuleRequest{SessionsPerWeek: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.SessionsPerWeek)
	assert.Equal(t, 40, updated.TotalHours)

	require.NoError(t, svc.Delete(context.Background(), module.ID))
	active, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestModuleServiceValidation(t *testing.T) {
	svc := NewModuleService(newFixture(t).st, nil, nil)

	_, err := svc.Create(context.Background(), models.CreateModuleRequest{Name: "x", Type: "lecture"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Get(context.Background(), "missing")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestModuleServiceRejectsUnboundedDurations(t *testing.T) {
	f := newFixture(t)
	svc := NewModuleService(f.st, nil, nil)

	cases := map[string]models.CreateModuleRequest{
		"too many hours":   {Name: "x", TotalHours: 1000000, SessionsPerWeek: 1, HoursPerSession: 2, Type: models.ModuleTheoretical},
		"tiny session":     {Name: "x", TotalHours: 100, SessionsPerWeek: 1, HoursPerSession: 0.0001, Type: models.ModuleTheoretical},
		"negative hours":   {Name: "x", TotalHours: -1, SessionsPerWeek: 1, HoursPerSession: 2, Type: models.ModuleTheoretical},
		"session too long": {Name: "x", TotalHours: 100, SessionsPerWeek: 1, HoursPerSession: 25, Type: models.ModuleTheoretical},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}

	module, err := svc.Create(context.Background(), models.CreateModuleRequest{Name: "ok", TotalHours: 40, SessionsPerWeek: 2, HoursPerSession: 2, Type: models.ModulePractical})
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), module.ID, models.UpdateModuleRequest{HoursPerSession: floatPtr(0.0001)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestModuleServiceZeroLoadIsAccepted(t *testing.T) {
	svc := NewModuleService(newFixture(t).st, nil, nil)
	module, err := svc.Create(context.Background(), models.CreateModuleRequest{Name: "Stage", TotalHours: 10, Type: models.ModulePractical})
	require.NoError(t, err)
	assert.Zero(t, module.DurationWeeks())
}

func TestDeactivatedModuleKeepsSchedulesQueryable(t *testing.T) {
	f := newFixture(t)
	f.trainer("t1", 35, "java")
	f.module("java", 20, 2, 2, models.ModuleTheoretical)
	f.group("g1", "2024-01-01", "")
	_, err := f.engine().AssignGroup(context.Background(), "g1")
	require.NoError(t, err)

	require.NoError(t, NewModuleService(f.st, nil, nil).Delete(context.Background(), "java"))

	schedules, err := NewScheduleService(f.st, nil, nil).List(context.Background(), models.ScheduleFilter{ModuleID: "java"})
	require.NoError(t, err)
	assert.Len(t, schedules, 1)

	workload, err := NewWorkloadService(f.st, nil, nil).TrainerWorkload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4.0, workload[0].CurrentHours, "existing schedules keep loading the trainer")
}
