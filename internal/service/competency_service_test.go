package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/training-capacity-api/internal/models"
	appErrors "github.com/noah-isme/training-capacity-api/pkg/errors"
)

func TestCompetencySetUpserts(t *testing.T) {
	f := newFixture(t)
	f.trainer("t1", 35)
	f.module("m1", 20, 2, 2, models.ModuleTheoretical)
	svc := NewCompetencyService(f.st, nil, nil)

	cell, created, err := svc.Set(context.Background(), models.SetAssignmentRequest{ModuleID: "m1", TrainerID: "t1", CanTeach: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, cell.CanTeach)

	again, created, err := svc.Set(context.Background(), models.SetAssignmentRequest{ModuleID: "m1", TrainerID: "t1", CanTeach: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, created)
	assert.False(t, again.CanTeach)
	assert.Equal(t, cell.ID, again.ID, "the cell keeps its identity")

	cells, err := svc.List(context.Background(), models.AssignmentFilter{TrainerID: "t1"})
	require.NoError(t, err)
	assert.Len(t, cells, 1)
}

func TestCompetencySetErrors(t *testing.T) {
	f := newFixture(t)
	f.trainer("t1", 35)
	f.module("m1", 20, 2, 2, models.ModuleTheoretical)
	svc := NewCompetencyService(f.st, nil, nil)

	_, _, err := svc.Set(context.Background(), models.SetAssignmentRequest{ModuleID: "m1", TrainerID: "t1"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, _, err = svc.Set(context.Background(), models.SetAssignmentRequest{ModuleID: "x", TrainerID: "t1", CanTeach: boolPtr(true)})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, _, err = svc.Set(context.Background(), models.SetAssignmentRequest{ModuleID: "m1", TrainerID: "x", CanTeach: boolPtr(true)})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCompetencyDelete(t *testing.T) {
	f := newFixture(t)
	f.cell("m1", "t1", true)
	svc := NewCompetencyService(f.st, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "m1", "t1"))
	err := svc.Delete(context.Background(), "m1", "t1")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	err = svc.Delete(context.Background(), "", "t1")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAutoAssignAll(t *testing.T) {
	f := newFixture(t)
	f.trainer("t1", 35, "python", "Formation pratique")
	f.trainer("t2", 35, "cuisine")
	f.module("python", 20, 2, 2, models.ModuleTheoretical)
	f.module("atelier", 20, 2, 2, models.ModulePractical)
	f.cell("python", "t1", false)
	svc := NewCompetencyService(f.st, nil, nil)

	summary, err := svc.AutoAssignAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, "1 affectations créées automatiquement", summary.Message)

	cells, err := svc.List(context.Background(), models.AssignmentFilter{})
	require.NoError(t, err)
	require.Len(t, cells, 2)
	assert.False(t, cells[0].CanTeach, "an explicit refusal is never overwritten")
	assert.Equal(t, "atelier", cells[1].ModuleID)

	summary, err = svc.AutoAssignAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Created)
	assert.Equal(t, 2, summary.Skipped)
}
