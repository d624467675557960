package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/training-capacity-api/internal/models"
	"github.com/noah-isme/training-capacity-api/internal/store"
	appErrors "github.com/noah-isme/training-capacity-api/pkg/errors"
)

// TrainerService orchestrates trainer operations.
type TrainerService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTrainerService constructs a TrainerService.
func NewTrainerService(st *store.Store, validate *validator.Validate, logger *zap.Logger) *TrainerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrainerService{store: st, validator: validate, logger: logger, now: time.Now}
}

// List returns trainers with a freshly recomputed load. Inactive trainers are
// included only on request.
func (s *TrainerService) List(ctx context.Context, includeInactive bool) ([]models.Trainer, error) {
	var trainers []models.Trainer
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		refreshTrainerLoad(tx)
		if includeInactive {
			trainers = tx.Trainers()
		} else {
			trainers = tx.ActiveTrainers()
		}
		return nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list trainers")
	}
	return trainers, nil
}

// Get returns a trainer by id, active or not.
func (s *TrainerService) Get(ctx context.Context, id string) (*models.Trainer, error) {
	var (
		trainer models.Trainer
		found   bool
	)
	if err := s.store.View(ctx, func(tx *store.ReadTx) error {
		trainer, found = tx.Trainer(id)
		return nil
	}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load trainer")
	}
	if !found {
		return nil, appErrors.NotFound("trainer")
	}
	return &trainer, nil
}

// Create registers a trainer.
func (s *TrainerService) Create(ctx context.Context, req models.CreateTrainerRequest) (*models.Trainer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "trainer")
	}
	if err := validateAbsences(req.Absences); err != nil {
		return nil, err
	}

	trainer := models.Trainer{
		ID:              newID(),
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Specialties:     normalizeTags(req.Specialties),
		MaxHoursPerWeek: req.MaxHoursPerWeek,
		IsActive:        true,
		Absences:        append([]models.Absence{}, req.Absences...),
		CreatedAt:       s.now().UTC(),
	}
	if req.IsActive != nil {
		trainer.IsActive = *req.IsActive
	}

	err := s.store.Update(ctx, func(tx *store.Tx) error {
		if err := ensureUniqueEmail(&tx.ReadTx, trainer.Email, ""); err != nil {
			return err
		}
		tx.PutTrainer(trainer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("trainer created", zap.String("trainer_id", trainer.ID))
	return &trainer, nil
}

// Update applies a partial update to a trainer.
func (s *TrainerService) Update(ctx context.Context, id string, req models.UpdateTrainerRequest) (*models.Trainer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "trainer")
	}
	if req.Absences != nil {
		if err := validateAbsences(*req.Absences); err != nil {
			return nil, err
		}
	}

	var trainer models.Trainer
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		var ok bool
		trainer, ok = tx.Trainer(id)
		if !ok {
			return appErrors.NotFound("trainer")
		}
		if req.Name != nil {
			trainer.Name = strings.TrimSpace(*req.Name)
		}
		if req.Email != nil {
			trainer.Email = strings.TrimSpace(*req.Email)
			if err := ensureUniqueEmail(&tx.ReadTx, trainer.Email, id); err != nil {
				return err
			}
		}
		if req.Specialties != nil {
			trainer.Specialties = normalizeTags(*req.Specialties)
		}
		if req.MaxHoursPerWeek != nil {
			trainer.MaxHoursPerWeek = *req.MaxHoursPerWeek
		}
		if req.IsActive != nil {
			trainer.IsActive = *req.IsActive
		}
		if req.Absences != nil {
			trainer.Absences = append([]models.Absence{}, (*req.Absences)...)
		}
		tx.PutTrainer(trainer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &trainer, nil
}

// Delete deactivates a trainer. The record and its schedules are kept.
func (s *TrainerService) Delete(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(tx *store.Tx) error {
		trainer, ok := tx.Trainer(id)
		if !ok {
			return appErrors.NotFound("trainer")
		}
		if !trainer.IsActive {
			return nil
		}
		trainer.IsActive = false
		tx.PutTrainer(trainer)
		return nil
	})
}

func ensureUniqueEmail(tx *store.ReadTx, email, excludeID string) error {
	if email == "" {
		return nil
	}
	for _, t := range tx.Trainers() {
		if t.ID != excludeID && strings.EqualFold(t.Email, email) {
			return appErrors.Clone(appErrors.ErrConflict, "email already in use")
		}
	}
	return nil
}

func validateAbsences(absences []models.Absence) error {
	for _, a := range absences {
		start, errStart := time.Parse(dateLayout, a.Start)
		end, errEnd := time.Parse(dateLayout, a.End)
		if errStart != nil || errEnd != nil {
			return appErrors.Clone(appErrors.ErrValidation, "absence dates must use YYYY-MM-DD")
		}
		if end.Before(start) {
			return appErrors.Clone(appErrors.ErrValidation, "absence end must not precede its start")
		}
	}
	return nil
}
