package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/training-capacity-api/internal/models"
	"github.com/noah-isme/training-capacity-api/internal/store"
)

func newSnapshotRepoMock(t *testing.T) (*SnapshotRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	repo := NewSnapshotRepository(sqlx.NewDb(db, "sqlmock"))
	repo.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }
	return repo, mock, func() { db.Close() }
}

func expectClearTables(mock sqlmock.Sqlmock) {
	for _, table := range snapshotTables {
		mock.ExpectExec("DELETE FROM " + table).WillReturnResult(sqlmock.NewResult(0, 0))
	}
}

func TestSnapshotRepositorySave(t *testing.T) {
	repo, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	roomID := "r1"
	snap := store.Snapshot{
		Version:  7,
		Trainers: []models.Trainer{{ID: "t1", Name: "Alice", Specialties: []string{"Java"}, MaxHoursPerWeek: 35, IsActive: true}},
		Groups:   []models.TrainingGroup{{ID: "g1", Name: "G1", StartDate: start, Status: models.GroupPlanned, RoomID: &roomID}},
		Schedules: []models.GroupModuleSchedule{
			{ID: "s1", GroupID: "g1", ModuleID: "m1", TrainerID: "t1", ScheduledOrder: 1, StartDate: &start, Status: models.SchedulePlanned},
		},
	}

	mock.ExpectBegin()
	expectClearTables(mock)
	mock.ExpectExec("INSERT INTO trainers").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO training_groups").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO group_module_schedules").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO snapshot_meta").
		WithArgs(int64(7), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), snap))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepositorySaveRollsBackOnFailure(t *testing.T) {
	repo, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()

	mock.ExpectBegin()
	expectClearTables(mock)
	mock.ExpectExec("INSERT INTO modules").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), store.Snapshot{Modules: []models.Module{{ID: "m1", Name: "Java", Type: models.ModuleTheoretical}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert module m1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepositoryLoad(t *testing.T) {
	repo, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()

	created := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT version FROM snapshot_meta WHERE id = 1")).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(3)))
	mock.ExpectQuery("FROM trainers ORDER BY position").
		WillReturnRows(sqlmock.NewRows([]string{"id", "position", "name", "email", "specialties", "max_hours_per_week", "current_hours_per_week", "is_active", "absences", "created_at"}).
			AddRow("t1", 0, "Alice", "alice@example.com", "{Java,Spring}", 35, 4.0, true, []byte(`[{"start":"2024-02-01","end":"2024-02-05"}]`), created))
	mock.ExpectQuery("FROM modules ORDER BY position").
		WillReturnRows(sqlmock.NewRows([]string{"id", "position", "name", "description", "total_hours", "sessions_per_week", "hours_per_session", "type", "is_active", "created_at"}).
			AddRow("m1", 0, "Java", "", 40, 2, 2.0, "theoretical", true, created))
	mock.ExpectQuery("FROM rooms ORDER BY position").
		WillReturnRows(sqlmock.NewRows([]string{"id", "position", "name", "type", "capacity", "equipment", "is_active", "created_at"}))
	mock.ExpectQuery("FROM training_groups ORDER BY position").
		WillReturnRows(sqlmock.NewRows([]string{"id", "position", "name", "participant_count", "start_date", "end_date", "estimated_end_date", "status", "delay_days", "room_id", "created_at"}).
			AddRow("g1", 0, "G1", 12, start, nil, start.AddDate(0, 0, 70), "planned", 0, nil, created))
	mock.ExpectQuery("FROM module_trainer_assignments ORDER BY position").
		WillReturnRows(sqlmock.NewRows([]string{"id", "position", "module_id", "trainer_id", "can_teach"}).
			AddRow("a1", 0, "m1", "t1", true))
	mock.ExpectQuery("FROM group_module_schedules ORDER BY position").
		WillReturnRows(sqlmock.NewRows([]string{"id", "position", "group_id", "module_id", "trainer_id", "scheduled_order", "start_date", "end_date", "progress", "hours_completed", "status"}).
			AddRow("s1", 0, "g1", "m1", "t1", 1, start, start.AddDate(0, 0, 69), 0, 0.0, "planned"))

	snap, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, uint64(3), snap.Version)
	require.Len(t, snap.Trainers, 1)
	assert.Equal(t, []string{"Java", "Spring"}, snap.Trainers[0].Specialties)
	require.Len(t, snap.Trainers[0].Absences, 1)
	assert.Equal(t, "2024-02-01", snap.Trainers[0].Absences[0].Start)
	assert.Empty(t, snap.Rooms)
	require.Len(t, snap.Groups, 1)
	assert.Nil(t, snap.Groups[0].EndDate)
	assert.Nil(t, snap.Groups[0].RoomID)
	require.NotNil(t, snap.Groups[0].EstimatedEndDate)
	assert.Equal(t, "2024-03-11", snap.Groups[0].EstimatedEndDate.Format("2006-01-02"))
	require.Len(t, snap.Schedules, 1)
	assert.Equal(t, "2024-03-10", snap.Schedules[0].EndDate.Format("2006-01-02"))
}

func TestSnapshotRepositoryVersionWithoutSnapshot(t *testing.T) {
	repo, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT version FROM snapshot_meta").
		WillReturnRows(sqlmock.NewRows([]string{"version"}))

	version, err := repo.Version(context.Background())
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepositoryEnsureSchema(t *testing.T) {
	repo, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS snapshot_meta").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
