package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/training-capacity-api/internal/models"
	"github.com/noah-isme/training-capacity-api/internal/store"
)

//go:embed schema.sql
var schemaSQL string

// SnapshotRepository persists full copies of the in-memory store in Postgres.
type SnapshotRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSnapshotRepository constructs a SnapshotRepository.
func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db, now: time.Now}
}

type trainerRow struct {
	ID                  string         `db:"id"`
	Position            int            `db:"position"`
	Name                string         `db:"name"`
	Email               string         `db:"email"`
	Specialties         pq.StringArray `db:"specialties"`
	MaxHoursPerWeek     int            `db:"max_hours_per_week"`
	CurrentHoursPerWeek float64        `db:"current_hours_per_week"`
	IsActive            bool           `db:"is_active"`
	Absences            []byte         `db:"absences"`
	CreatedAt           time.Time      `db:"created_at"`
}

type moduleRow struct {
	ID              string    `db:"id"`
	Position        int       `db:"position"`
	Name            string    `db:"name"`
	Description     string    `db:"description"`
	TotalHours      int       `db:"total_hours"`
	SessionsPerWeek int       `db:"sessions_per_week"`
	HoursPerSession float64   `db:"hours_per_session"`
	Type            string    `db:"type"`
	IsActive        bool      `db:"is_active"`
	CreatedAt       time.Time `db:"created_at"`
}

type roomRow struct {
	ID        string         `db:"id"`
	Position  int            `db:"position"`
	Name      string         `db:"name"`
	Type      string         `db:"type"`
	Capacity  int            `db:"capacity"`
	Equipment pq.StringArray `db:"equipment"`
	IsActive  bool           `db:"is_active"`
	CreatedAt time.Time      `db:"created_at"`
}

type groupRow struct {
	ID               string         `db:"id"`
	Position         int            `db:"position"`
	Name             string         `db:"name"`
	ParticipantCount int            `db:"participant_count"`
	StartDate        time.Time      `db:"start_date"`
	EndDate          sql.NullTime   `db:"end_date"`
	EstimatedEndDate sql.NullTime   `db:"estimated_end_date"`
	Status           string         `db:"status"`
	DelayDays        int            `db:"delay_days"`
	RoomID           sql.NullString `db:"room_id"`
	CreatedAt        time.Time      `db:"created_at"`
}

type assignmentRow struct {
	ID        string `db:"id"`
	Position  int    `db:"position"`
	ModuleID  string `db:"module_id"`
	TrainerID string `db:"trainer_id"`
	CanTeach  bool   `db:"can_teach"`
}

type scheduleRow struct {
	ID             string       `db:"id"`
	Position       int          `db:"position"`
	GroupID        string       `db:"group_id"`
	ModuleID       string       `db:"module_id"`
	TrainerID      string       `db:"trainer_id"`
	ScheduledOrder int          `db:"scheduled_order"`
	StartDate      sql.NullTime `db:"start_date"`
	EndDate        sql.NullTime `db:"end_date"`
	Progress       int          `db:"progress"`
	HoursCompleted float64      `db:"hours_completed"`
	Status         string       `db:"status"`
}

const (
	insertTrainer = `INSERT INTO trainers (id, position, name, email, specialties, max_hours_per_week, current_hours_per_week, is_active, absences, created_at)
VALUES (:id, :position, :name, :email, :specialties, :max_hours_per_week, :current_hours_per_week, :is_active, :absences, :created_at)`
	insertModule = `INSERT INTO modules (id, position, name, description, total_hours, sessions_per_week, hours_per_session, type, is_active, created_at)
VALUES (:id, :position, :name, :description, :total_hours, :sessions_per_week, :hours_per_session, :type, :is_active, :created_at)`
	insertRoom = `INSERT INTO rooms (id, position, name, type, capacity, equipment, is_active, created_at)
VALUES (:id, :position, :name, :type, :capacity, :equipment, :is_active, :created_at)`
	insertGroup = `INSERT INTO training_groups (id, position, name, participant_count, start_date, end_date, estimated_end_date, status, delay_days, room_id, created_at)
VALUES (:id, :position, :name, :participant_count, :start_date, :end_date, :estimated_end_date, :status, :delay_days, :room_id, :created_at)`
	insertAssignment = `INSERT INTO module_trainer_assignments (id, position, module_id, trainer_id, can_teach)
VALUES (:id, :position, :module_id, :trainer_id, :can_teach)`
	insertSchedule = `INSERT INTO group_module_schedules (id, position, group_id, module_id, trainer_id, scheduled_order, start_date, end_date, progress, hours_completed, status)
VALUES (:id, :position, :group_id, :module_id, :trainer_id, :scheduled_order, :start_date, :end_date, :progress, :hours_completed, :status)`
	upsertMeta = `INSERT INTO snapshot_meta (id, version, saved_at) VALUES (1, $1, $2)
ON CONFLICT (id) DO UPDATE SET version = EXCLUDED.version, saved_at = EXCLUDED.saved_at`
)

// snapshotTables lists tables in dependency-free delete order.
var snapshotTables = []string{
	"group_module_schedules",
	"module_trainer_assignments",
	"training_groups",
	"rooms",
	"modules",
	"trainers",
}

// EnsureSchema creates the snapshot tables when missing.
func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure snapshot schema: %w", err)
	}
	return nil
}

// Version returns the version of the last saved snapshot, or 0 when none exists.
func (r *SnapshotRepository) Version(ctx context.Context) (uint64, error) {
	var version int64
	err := r.db.GetContext(ctx, &version, "SELECT version FROM snapshot_meta WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get snapshot version: %w", err)
	}
	return uint64(version), nil
}

// Save replaces the persisted snapshot with snap in one transaction.
func (r *SnapshotRepository) Save(ctx context.Context, snap store.Snapshot) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range snapshotTables {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, t := range snap.Trainers {
		row, convErr := toTrainerRow(i, t)
		if convErr != nil {
			err = convErr
			return err
		}
		if _, err = tx.NamedExecContext(ctx, insertTrainer, row); err != nil {
			return fmt.Errorf("insert trainer %s: %w", t.ID, err)
		}
	}
	for i, m := range snap.Modules {
		if _, err = tx.NamedExecContext(ctx, insertModule, toModuleRow(i, m)); err != nil {
			return fmt.Errorf("insert module %s: %w", m.ID, err)
		}
	}
	for i, rm := range snap.Rooms {
		if _, err = tx.NamedExecContext(ctx, insertRoom, toRoomRow(i, rm)); err != nil {
			return fmt.Errorf("insert room %s: %w", rm.ID, err)
		}
	}
	for i, g := range snap.Groups {
		if _, err = tx.NamedExecContext(ctx, insertGroup, toGroupRow(i, g)); err != nil {
			return fmt.Errorf("insert training group %s: %w", g.ID, err)
		}
	}
	for i, a := range snap.Assignments {
		row := assignmentRow{ID: a.ID, Position: i, ModuleID: a.ModuleID, TrainerID: a.TrainerID, CanTeach: a.CanTeach}
		if _, err = tx.NamedExecContext(ctx, insertAssignment, row); err != nil {
			return fmt.Errorf("insert assignment %s: %w", a.ID, err)
		}
	}
	for i, sc := range snap.Schedules {
		if _, err = tx.NamedExecContext(ctx, insertSchedule, toScheduleRow(i, sc)); err != nil {
			return fmt.Errorf("insert schedule %s: %w", sc.ID, err)
		}
	}

	if _, err = tx.ExecContext(ctx, upsertMeta, int64(snap.Version), r.now().UTC()); err != nil {
		return fmt.Errorf("record snapshot version: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Load reads the persisted snapshot. An empty database yields an empty snapshot.
func (r *SnapshotRepository) Load(ctx context.Context) (store.Snapshot, error) {
	var snap store.Snapshot

	version, err := r.Version(ctx)
	if err != nil {
		return snap, err
	}
	snap.Version = version

	var trainers []trainerRow
	if err := r.db.SelectContext(ctx, &trainers, "SELECT id, position, name, email, specialties, max_hours_per_week, current_hours_per_week, is_active, absences, created_at FROM trainers ORDER BY position"); err != nil {
		return snap, fmt.Errorf("load trainers: %w", err)
	}
	for _, row := range trainers {
		t, err := row.toModel()
		if err != nil {
			return snap, err
		}
		snap.Trainers = append(snap.Trainers, t)
	}

	var modules []moduleRow
	if err := r.db.SelectContext(ctx, &modules, "SELECT id, position, name, description, total_hours, sessions_per_week, hours_per_session, type, is_active, created_at FROM modules ORDER BY position"); err != nil {
		return snap, fmt.Errorf("load modules: %w", err)
	}
	for _, row := range modules {
		snap.Modules = append(snap.Modules, row.toModel())
	}

	var rooms []roomRow
	if err := r.db.SelectContext(ctx, &rooms, "SELECT id, position, name, type, capacity, equipment, is_active, created_at FROM rooms ORDER BY position"); err != nil {
		return snap, fmt.Errorf("load rooms: %w", err)
	}
	for _, row := range rooms {
		snap.Rooms = append(snap.Rooms, row.toModel())
	}

	var groups []groupRow
	if err := r.db.SelectContext(ctx, &groups, "SELECT id, position, name, participant_count, start_date, end_date, estimated_end_date, status, delay_days, room_id, created_at FROM training_groups ORDER BY position"); err != nil {
		return snap, fmt.Errorf("load training groups: %w", err)
	}
	for _, row := range groups {
		snap.Groups = append(snap.Groups, row.toModel())
	}

	var assignments []assignmentRow
	if err := r.db.SelectContext(ctx, &assignments, "SELECT id, position, module_id, trainer_id, can_teach FROM module_trainer_assignments ORDER BY position"); err != nil {
		return snap, fmt.Errorf("load assignments: %w", err)
	}
	for _, row := range assignments {
		snap.Assignments = append(snap.Assignments, models.ModuleTrainerAssignment{
			ID: row.ID, ModuleID: row.ModuleID, TrainerID: row.TrainerID, CanTeach: row.CanTeach,
		})
	}

	var schedules []scheduleRow
	if err := r.db.SelectContext(ctx, &schedules, "SELECT id, position, group_id, module_id, trainer_id, scheduled_order, start_date, end_date, progress, hours_completed, status FROM group_module_schedules ORDER BY position"); err != nil {
		return snap, fmt.Errorf("load schedules: %w", err)
	}
	for _, row := range schedules {
		snap.Schedules = append(snap.Schedules, row.toModel())
	}

	return snap, nil
}

// Ping checks database connectivity.
func (r *SnapshotRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func toTrainerRow(position int, t models.Trainer) (trainerRow, error) {
	absences := t.Absences
	if absences == nil {
		absences = []models.Absence{}
	}
	raw, err := json.Marshal(absences)
	if err != nil {
		return trainerRow{}, fmt.Errorf("marshal absences for trainer %s: %w", t.ID, err)
	}
	specialties := t.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	return trainerRow{
		ID:                  t.ID,
		Position:            position,
		Name:                t.Name,
		Email:               t.Email,
		Specialties:         pq.StringArray(specialties),
		MaxHoursPerWeek:     t.MaxHoursPerWeek,
		CurrentHoursPerWeek: t.CurrentHoursPerWeek,
		IsActive:            t.IsActive,
		Absences:            raw,
		CreatedAt:           t.CreatedAt,
	}, nil
}

func (row trainerRow) toModel() (models.Trainer, error) {
	absences := []models.Absence{}
	if len(row.Absences) > 0 {
		if err := json.Unmarshal(row.Absences, &absences); err != nil {
			return models.Trainer{}, fmt.Errorf("unmarshal absences for trainer %s: %w", row.ID, err)
		}
	}
	specialties := []string(row.Specialties)
	if specialties == nil {
		specialties = []string{}
	}
	return models.Trainer{
		ID:                  row.ID,
		Name:                row.Name,
		Email:               row.Email,
		Specialties:         specialties,
		MaxHoursPerWeek:     row.MaxHoursPerWeek,
		CurrentHoursPerWeek: row.CurrentHoursPerWeek,
		IsActive:            row.IsActive,
		Absences:            absences,
		CreatedAt:           row.CreatedAt.UTC(),
	}, nil
}

func toModuleRow(position int, m models.Module) moduleRow {
	return moduleRow{
		ID:              m.ID,
		Position:        position,
		Name:            m.Name,
		Description:     m.Description,
		TotalHours:      m.TotalHours,
		SessionsPerWeek: m.SessionsPerWeek,
		HoursPerSession: m.HoursPerSession,
		Type:            string(m.Type),
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
	}
}

func (row moduleRow) toModel() models.Module {
	return models.Module{
		ID:              row.ID,
		Name:            row.Name,
		Description:     row.Description,
		TotalHours:      row.TotalHours,
		SessionsPerWeek: row.SessionsPerWeek,
		HoursPerSession: row.HoursPerSession,
		Type:            models.ModuleType(row.Type),
		IsActive:        row.IsActive,
		CreatedAt:       row.CreatedAt.UTC(),
	}
}

func toRoomRow(position int, rm models.Room) roomRow {
	equipment := rm.Equipment
	if equipment == nil {
		equipment = []string{}
	}
	return roomRow{
		ID:        rm.ID,
		Position:  position,
		Name:      rm.Name,
		Type:      string(rm.Type),
		Capacity:  rm.Capacity,
		Equipment: pq.StringArray(equipment),
		IsActive:  rm.IsActive,
		CreatedAt: rm.CreatedAt,
	}
}

func (row roomRow) toModel() models.Room {
	equipment := []string(row.Equipment)
	if equipment == nil {
		equipment = []string{}
	}
	return models.Room{
		ID:        row.ID,
		Name:      row.Name,
		Type:      models.RoomType(row.Type),
		Capacity:  row.Capacity,
		Equipment: equipment,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt.UTC(),
	}
}

func toGroupRow(position int, g models.TrainingGroup) groupRow {
	row := groupRow{
		ID:               g.ID,
		Position:         position,
		Name:             g.Name,
		ParticipantCount: g.ParticipantCount,
		StartDate:        g.StartDate,
		EndDate:          nullTime(g.EndDate),
		EstimatedEndDate: nullTime(g.EstimatedEndDate),
		Status:           string(g.Status),
		DelayDays:        g.DelayDays,
		CreatedAt:        g.CreatedAt,
	}
	if g.RoomID != nil {
		row.RoomID = sql.NullString{String: *g.RoomID, Valid: true}
	}
	return row
}

func (row groupRow) toModel() models.TrainingGroup {
	g := models.TrainingGroup{
		ID:               row.ID,
		Name:             row.Name,
		ParticipantCount: row.ParticipantCount,
		StartDate:        dateUTC(row.StartDate),
		EndDate:          timePtr(row.EndDate),
		EstimatedEndDate: timePtr(row.EstimatedEndDate),
		Status:           models.GroupStatus(row.Status),
		DelayDays:        row.DelayDays,
		CreatedAt:        row.CreatedAt.UTC(),
	}
	if row.RoomID.Valid {
		roomID := row.RoomID.String
		g.RoomID = &roomID
	}
	return g
}

func toScheduleRow(position int, sc models.GroupModuleSchedule) scheduleRow {
	return scheduleRow{
		ID:             sc.ID,
		Position:       position,
		GroupID:        sc.GroupID,
		ModuleID:       sc.ModuleID,
		TrainerID:      sc.TrainerID,
		ScheduledOrder: sc.ScheduledOrder,
		StartDate:      nullTime(sc.StartDate),
		EndDate:        nullTime(sc.EndDate),
		Progress:       sc.Progress,
		HoursCompleted: sc.HoursCompleted,
		Status:         string(sc.Status),
	}
}

func (row scheduleRow) toModel() models.GroupModuleSchedule {
	return models.GroupModuleSchedule{
		ID:             row.ID,
		GroupID:        row.GroupID,
		ModuleID:       row.ModuleID,
		TrainerID:      row.TrainerID,
		ScheduledOrder: row.ScheduledOrder,
		StartDate:      timePtr(row.StartDate),
		EndDate:        timePtr(row.EndDate),
		Progress:       row.Progress,
		HoursCompleted: row.HoursCompleted,
		Status:         models.ScheduleStatus(row.Status),
	}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := dateUTC(t.Time)
	return &v
}

// dateUTC keeps the calendar day of a DATE column regardless of the driver's location.
func dateUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
