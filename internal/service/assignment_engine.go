package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/noah-isme/training-capacity-api/internal/models"
	"github.com/noah-isme/training-capacity-api/internal/store"
	"github.com/noah-isme/training-capacity-api/pkg/config"
	appErrors "github.com/noah-isme/training-capacity-api/pkg/errors"
	"github.com/noah-isme/training-capacity-api/pkg/jobs"
	"github.com/noah-isme/training-capacity-api/pkg/tracing"
)

// AssignmentEngineConfig tunes the greedy pass.
type AssignmentEngineConfig struct {
	ModuleOrder string
}

// AssignmentEngine assigns every active module of a group to the least-loaded
// qualifying trainer, one module after the other. It never backtracks: a module
// nobody can teach is reported in the result and skipped.
type AssignmentEngine struct {
	store   *store.Store
	metrics *MetricsService
	logger  *zap.Logger
	cfg     AssignmentEngineConfig
	newID   func() string
}

// NewAssignmentEngine constructs an AssignmentEngine.
func NewAssignmentEngine(st *store.Store, metrics *MetricsService, logger *zap.Logger, cfg AssignmentEngineConfig) *AssignmentEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ModuleOrder != config.ModuleOrderInsertion {
		cfg.ModuleOrder = config.ModuleOrderLongestFirst
	}
	return &AssignmentEngine{store: st, metrics: metrics, logger: logger, cfg: cfg, newID: newID}
}

// AssignGroup runs an assignment pass for an existing group in its own transaction.
func (e *AssignmentEngine) AssignGroup(ctx context.Context, groupID string) (*models.AssignmentResult, error) {
	var result models.AssignmentResult
	err := e.store.Update(ctx, func(tx *store.Tx) error {
		group, ok := tx.Group(groupID)
		if !ok {
			return appErrors.NotFound("training group")
		}
		result = e.AssignWithin(ctx, tx, group)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AssignWithin runs the pass inside the caller's write transaction and updates
// the group's estimated end date. Chosen trainers without a matrix cell get one
// with canTeach=true; those cells are returned as discovered assignments.
func (e *AssignmentEngine) AssignWithin(ctx context.Context, tx *store.Tx, group models.TrainingGroup) models.AssignmentResult {
	_, span := tracing.Start(ctx, "assignment.assign_group", attribute.String("group.id", group.ID))
	defer span.End()
	started := time.Now()

	refreshTrainerLoad(tx)

	modules := orderModules(tx.ActiveModules(), e.cfg.ModuleOrder)
	trainers := tx.ActiveTrainers()
	loads := make(map[string]float64, len(trainers))
	for _, t := range trainers {
		loads[t.ID] = t.CurrentHoursPerWeek
	}

	result := models.AssignmentResult{
		GroupID:               group.ID,
		Schedules:             []models.GroupModuleSchedule{},
		UnassignedModules:     []models.UnassignedModule{},
		DiscoveredAssignments: []models.ModuleTrainerAssignment{},
	}

	cumulativeWeeks := 0
	for i, module := range modules {
		weeks := module.DurationWeeks()
		if weeks == 0 {
			result.UnassignedModules = append(result.UnassignedModules, unassigned(module, models.SkipZeroWeeklyLoad))
			continue
		}

		trainer, explicit, ok := pickTrainer(&tx.ReadTx, module, trainers, loads)
		if !ok {
			result.UnassignedModules = append(result.UnassignedModules, unassigned(module, models.SkipNoQualifiedTrainer))
			continue
		}

		start := addWeeks(group.StartDate, cumulativeWeeks)
		end := addWeeks(start, weeks).AddDate(0, 0, -1)
		schedule := models.GroupModuleSchedule{
			ID:             e.newID(),
			GroupID:        group.ID,
			ModuleID:       module.ID,
			TrainerID:      trainer.ID,
			ScheduledOrder: i + 1,
			StartDate:      &start,
			EndDate:        &end,
			Progress:       0,
			Status:         models.SchedulePlanned,
		}
		tx.PutSchedule(schedule)
		result.Schedules = append(result.Schedules, schedule)

		loads[trainer.ID] += module.WeeklyLoad()
		if stored, ok := tx.Trainer(trainer.ID); ok {
			stored.CurrentHoursPerWeek = loads[trainer.ID]
			tx.PutTrainer(stored)
		}

		if !explicit {
			cell, created := tx.UpsertAssignment(models.ModuleTrainerAssignment{
				ID:        e.newID(),
				ModuleID:  module.ID,
				TrainerID: trainer.ID,
				CanTeach:  true,
			})
			if created {
				result.DiscoveredAssignments = append(result.DiscoveredAssignments, cell)
			}
		}

		cumulativeWeeks += weeks
	}

	estimated := addWeeks(group.StartDate, cumulativeWeeks)
	group.EstimatedEndDate = &estimated
	tx.PutGroup(group)
	result.EstimatedEndDate = &estimated

	span.SetAttributes(
		attribute.Int("assignment.scheduled", len(result.Schedules)),
		attribute.Int("assignment.unassigned", len(result.UnassignedModules)),
	)
	e.metrics.ObserveAssignment(len(result.Schedules), len(result.UnassignedModules), len(result.DiscoveredAssignments), time.Since(started))
	if len(result.UnassignedModules) > 0 {
		e.logger.Info("modules left unassigned",
			zap.String("group_id", group.ID),
			zap.Int("unassigned", len(result.UnassignedModules)),
		)
	}
	return result
}

// pickTrainer returns the least-loaded qualifying trainer; ties go to the first
// in insertion order. explicit reports whether a canTeach=true cell qualified them.
func pickTrainer(tx *store.ReadTx, module models.Module, trainers []models.Trainer, loads map[string]float64) (models.Trainer, bool, bool) {
	var (
		best         models.Trainer
		bestExplicit bool
		found        bool
	)
	for _, trainer := range trainers {
		qualifies, explicit := canTeach(tx, module, trainer)
		if !qualifies {
			continue
		}
		if !found || loads[trainer.ID] < loads[best.ID] {
			best, bestExplicit, found = trainer, explicit, true
		}
	}
	return best, bestExplicit, found
}

// canTeach applies the competency matrix first; specialties only count when no cell exists.
func canTeach(tx *store.ReadTx, module models.Module, trainer models.Trainer) (qualifies bool, explicit bool) {
	if cell, ok := tx.Assignment(module.ID, trainer.ID); ok {
		return cell.CanTeach, cell.CanTeach
	}
	return specialtiesMatch(trainer.Specialties, module), false
}

func specialtiesMatch(specialties []string, module models.Module) bool {
	for _, specialty := range specialties {
		if matchesSpecialty(specialty, module) {
			return true
		}
	}
	return false
}

// matchesSpecialty is a case-insensitive containment either way with the module
// name, or a "pratique"/"théorique" tag matching the module type. Blank tags never match.
func matchesSpecialty(specialty string, module models.Module) bool {
	spec := strings.ToLower(strings.TrimSpace(specialty))
	if spec == "" {
		return false
	}
	name := strings.ToLower(strings.TrimSpace(module.Name))
	if name != "" && (strings.Contains(name, spec) || strings.Contains(spec, name)) {
		return true
	}
	switch module.Type {
	case models.ModulePractical:
		return strings.Contains(spec, "pratique")
	case models.ModuleTheoretical:
		return strings.Contains(spec, "théorique")
	}
	return false
}

func orderModules(modules []models.Module, policy string) []models.Module {
	if policy == config.ModuleOrderLongestFirst {
		sort.SliceStable(modules, func(i, j int) bool {
			return modules[i].TotalHours > modules[j].TotalHours
		})
	}
	return modules
}

func unassigned(module models.Module, reason string) models.UnassignedModule {
	return models.UnassignedModule{ModuleID: module.ID, ModuleName: module.Name, Reason: reason}
}

// RecalculateGroup drops a group's schedules and reruns the pass. Groups with
// any schedule past planned are left untouched.
func (e *AssignmentEngine) RecalculateGroup(ctx context.Context, groupID string) (*models.AssignmentResult, error) {
	var result models.AssignmentResult
	err := e.store.Update(ctx, func(tx *store.Tx) error {
		group, ok := tx.Group(groupID)
		if !ok {
			return appErrors.NotFound("training group")
		}
		if group.Status == models.GroupCompleted {
			return appErrors.Clone(appErrors.ErrPreconditionFailed, "completed groups cannot be recalculated")
		}
		if !recalculable(&tx.ReadTx, groupID) {
			return appErrors.Clone(appErrors.ErrPreconditionFailed, "group has started modules and cannot be recalculated")
		}
		result = e.rerun(ctx, tx, group)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RecalculateAll reruns the pass for every planned group whose schedules are all still planned.
func (e *AssignmentEngine) RecalculateAll(ctx context.Context) (*models.RecalculationSummary, error) {
	summary := models.RecalculationSummary{GroupIDs: []string{}}
	err := e.store.Update(ctx, func(tx *store.Tx) error {
		for _, group := range tx.Groups() {
			if group.Status != models.GroupPlanned || !recalculable(&tx.ReadTx, group.ID) {
				summary.Skipped++
				continue
			}
			e.rerun(ctx, tx, group)
			summary.Recalculated++
			summary.GroupIDs = append(summary.GroupIDs, group.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	summary.Message = recalculatedMessage(summary.Recalculated)
	e.logger.Info("capacity recalculated", zap.Int("recalculated", summary.Recalculated), zap.Int("skipped", summary.Skipped))
	return &summary, nil
}

func (e *AssignmentEngine) rerun(ctx context.Context, tx *store.Tx, group models.TrainingGroup) models.AssignmentResult {
	for _, sc := range tx.GroupSchedules(group.ID) {
		tx.DeleteSchedule(sc.ID)
	}
	return e.AssignWithin(ctx, tx, group)
}

func recalculable(tx *store.ReadTx, groupID string) bool {
	for _, sc := range tx.GroupSchedules(groupID) {
		if sc.Status != models.SchedulePlanned || sc.Progress > 0 || sc.HoursCompleted > 0 {
			return false
		}
	}
	return true
}

// HandleRecalculateJob is the jobs.Handler for JobCapacityRecalculate.
func (e *AssignmentEngine) HandleRecalculateJob(ctx context.Context, job jobs.Job) error {
	summary, err := e.RecalculateAll(ctx)
	if err != nil {
		return err
	}
	e.logger.Info("background recalculation finished", zap.String("job_id", job.ID), zap.Int("recalculated", summary.Recalculated))
	return nil
}
