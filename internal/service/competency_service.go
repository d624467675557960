package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/training-capacity-api/internal/models"
	"github.com/noah-isme/training-capacity-api/internal/store"
	appErrors "github.com/noah-isme/training-capacity-api/pkg/errors"
)

// CompetencyService maintains the module/trainer competency matrix.
type CompetencyService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCompetencyService constructs a CompetencyService.
func NewCompetencyService(st *store.Store, validate *validator.Validate, logger *zap.Logger) *CompetencyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompetencyService{store: st, validator: validate, logger: logger}
}

// List returns matrix cells matching the filter.
func (s *CompetencyService) List(ctx context.Context, filter models.AssignmentFilter) ([]models.ModuleTrainerAssignment, error) {
	var out []models.ModuleTrainerAssignment
	err := s.store.View(ctx, func(tx *store.ReadTx) error {
		out = make([]models.ModuleTrainerAssignment, 0)
		for _, cell := range tx.Assignments() {
			if filter.ModuleID != "" && cell.ModuleID != filter.ModuleID {
				continue
			}
			if filter.TrainerID != "" && cell.TrainerID != filter.TrainerID {
				continue
			}
			out = append(out, cell)
		}
		return nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	return out, nil
}

// Set upserts the (module, trainer) cell. The second result is true when the cell was new.
func (s *CompetencyService) Set(ctx context.Context, req models.SetAssignmentRequest) (*models.ModuleTrainerAssignment, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, invalidPayload(err, "assignment")
	}
	var (
		cell    models.ModuleTrainerAssignment
		created bool
	)
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		if _, ok := tx.Module(req.ModuleID); !ok {
			return appErrors.NotFound("module")
		}
		if _, ok := tx.Trainer(req.TrainerID); !ok {
			return appErrors.NotFound("trainer")
		}
		cell, created = tx.UpsertAssignment(models.ModuleTrainerAssignment{
			ID:        newID(),
			ModuleID:  req.ModuleID,
			TrainerID: req.TrainerID,
			CanTeach:  *req.CanTeach,
		})
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &cell, created, nil
}

// Delete removes a cell, letting specialty matching decide again.
func (s *CompetencyService) Delete(ctx context.Context, moduleID, trainerID string) error {
	if moduleID == "" || trainerID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "moduleId and trainerId are required")
	}
	return s.store.Update(ctx, func(tx *store.Tx) error {
		if !tx.DeleteAssignment(moduleID, trainerID) {
			return appErrors.NotFound("assignment")
		}
		return nil
	})
}

// AutoAssignAll creates a canTeach=true cell for every active trainer whose
// specialties match an active module. Pairs that already have a cell keep it.
func (s *CompetencyService) AutoAssignAll(ctx context.Context) (*models.AutoAssignSummary, error) {
	var summary models.AutoAssignSummary
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		modules := tx.ActiveModules()
		for _, trainer := range tx.ActiveTrainers() {
			for _, module := range modules {
				if !specialtiesMatch(trainer.Specialties, module) {
					continue
				}
				if _, exists := tx.Assignment(module.ID, trainer.ID); exists {
					summary.Skipped++
					continue
				}
				tx.UpsertAssignment(models.ModuleTrainerAssignment{
					ID:        newID(),
					ModuleID:  module.ID,
					TrainerID: trainer.ID,
					CanTeach:  true,
				})
				summary.Created++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	summary.Message = autoAssignMessage(summary.Created)
	s.logger.Info("competency matrix auto-assigned", zap.Int("created", summary.Created), zap.Int("skipped", summary.Skipped))
	return &summary, nil
}
