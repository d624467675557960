package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/training-capacity-api/internal/models"
	appErrors "github.com/noah-isme/training-capacity-api/pkg/errors"
	"github.com/noah-isme/training-capacity-api/pkg/export"
)

type fakePlanner struct {
	months []models.MonthPlan
}

func (f *fakePlanner) MonthlyPlanning(context.Context) ([]models.MonthPlan, error) {
	return f.months, nil
}

type recordingCSV struct {
	dataset export.Dataset
	err     error
}

func (r *recordingCSV) Render(data export.Dataset) ([]byte, error) {
	r.dataset = data
	return []byte("csv"), r.err
}

type recordingPDF struct {
	dataset export.Dataset
	title   string
}

func (r *recordingPDF) Render(data export.Dataset, title string) ([]byte, error) {
	r.dataset, r.title = data, title
	return []byte("%PDF"), nil
}

func newExportFixture() (*ExportService, *recordingCSV, *recordingPDF) {
	workload := &fakeWorkload{
		trainers: []models.TrainerWorkload{{TrainerID: "t1", Name: "Alice", CurrentHours: 4, MaxHours: 35, OccupationRate: 11}},
		rooms:    []models.RoomOccupancy{{RoomID: "r1", Name: "Salle A", OccupiedHours: 6.5, AvailableHours: 40, OccupationRate: 16}},
	}
	planner := &fakePlanner{months: []models.MonthPlan{{
		Month: "2024-01", TotalGroups: 2, TotalTrainerHours: 80, TrainerCapacity: 40,
		Conflicts: []models.PlanningConflict{
			{Type: models.ConflictTrainer, Description: "a"},
			{Type: models.ConflictRoom, Description: "b"},
		},
	}}}
	csv, pdf := &recordingCSV{}, &recordingPDF{}
	svc := NewExportService(workload, planner, nil, csv, pdf)
	svc.now = func() time.Time { return time.Date(2024, time.March, 4, 10, 30, 0, 0, time.UTC) }
	return svc, csv, pdf
}

func TestExportTrainersCSV(t *testing.T) {
	svc, csv, _ := newExportFixture()

	report, err := svc.Generate(context.Background(), " Trainers ", "")
	require.NoError(t, err)

	assert.Equal(t, "capacity_trainers_20240304_103000.csv", report.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", report.ContentType)
	assert.Equal(t, []byte("csv"), report.Body)
	require.Len(t, csv.dataset.Rows, 1)
	assert.Equal(t, "Alice", csv.dataset.Rows[0]["Formateur"])
	assert.Equal(t, "4", csv.dataset.Rows[0]["Heures / semaine"])
	assert.Equal(t, "11", csv.dataset.Rows[0]["Occupation (%)"])
}

func TestExportRoomsPDF(t *testing.T) {
	svc, _, pdf := newExportFixture()

	report, err := svc.Generate(context.Background(), ReportViewRooms, ReportFormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", report.ContentType)
	assert.Equal(t, "capacity_rooms_20240304_103000.pdf", report.Filename)
	assert.Equal(t, "Occupation des salles", pdf.title)
	assert.Equal(t, "6.5", pdf.dataset.Rows[0]["Heures occupées"])
}

func TestExportMonthlyJoinsConflicts(t *testing.T) {
	svc, csv, _ := newExportFixture()

	_, err := svc.Generate(context.Background(), ReportViewMonthly, ReportFormatCSV)
	require.NoError(t, err)

	require.Len(t, csv.dataset.Rows, 1)
	row := csv.dataset.Rows[0]
	assert.Equal(t, "2024-01", row["Mois"])
	assert.Equal(t, "80", row["Heures formateurs"])
	assert.Equal(t, "a | b", row["Conflits"])
	assert.False(t, csv.dataset.Numeric["Conflits"])
}

func TestExportRejectsUnknownViewAndFormat(t *testing.T) {
	svc, _, _ := newExportFixture()

	_, err := svc.Generate(context.Background(), "groups", ReportFormatCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Generate(context.Background(), ReportViewTrainers, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportWrapsRenderFailure(t *testing.T) {
	svc, csv, _ := newExportFixture()
	csv.err = errors.New("disk full")

	_, err := svc.Generate(context.Background(), ReportViewTrainers, ReportFormatCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestExportDefaultRenderers(t *testing.T) {
	workload := &fakeWorkload{trainers: []models.TrainerWorkload{{Name: "Élodie", CurrentHours: 2, MaxHours: 10, OccupationRate: 20}}}
	svc := NewExportService(workload, &fakePlanner{}, nil, nil, nil)

	report, err := svc.Generate(context.Background(), ReportViewTrainers, ReportFormatCSV)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(report.Body, []byte("\ufeff")))
	assert.Contains(t, string(report.Body), "Élodie;2;10;20")

	report, err = svc.Generate(context.Background(), ReportViewTrainers, ReportFormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(report.Body, []byte("%PDF")))
}
