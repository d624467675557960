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

// ModuleService manages the module catalogue.
type ModuleService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewModuleService constructs a ModuleService.
func NewModuleService(st *store.Store, validate *validator.Validate, logger *zap.Logger) *ModuleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModuleService{store: st, validator: validate, logger: logger, now: time.Now}
}

// List returns modules; soft-deleted ones only on request.
func (s *ModuleService) List(ctx context.Context, includeInactive bool) ([]models.Module, error) {
	var modules []models.Module
	err := s.store.View(ctx, func(tx *store.ReadTx) error {
		if includeInactive {
			modules = tx.Modules()
		} else {
			modules = tx.ActiveModules()
		}
		return nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list modules")
	}
	return modules, nil
}

// Get returns a module by id.
func (s *ModuleService) Get(ctx context.Context, id string) (*models.Module, error) {
	var (
		module models.Module
		found  bool
	)
	if err := s.store.View(ctx, func(tx *store.ReadTx) error {
		module, found = tx.Module(id)
		return nil
	}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load module")
	}
	if !found {
		return nil, appErrors.NotFound("module")
	}
	return &module, nil
}

// Create adds a module to the catalogue. Existing groups are not rescheduled.
func (s *ModuleService) Create(ctx context.Context, req models.CreateModuleRequest) (*models.Module, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "module")
	}
	module := models.Module{
		ID:              newID(),
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		TotalHours:      req.TotalHours,
		SessionsPerWeek: req.SessionsPerWeek,
		HoursPerSession: req.HoursPerSession,
		Type:            req.Type,
		IsActive:        true,
		CreatedAt:       s.now().UTC(),
	}
	if req.IsActive != nil {
		module.IsActive = *req.IsActive
	}
	if module.WeeklyLoad() <= 0 {
		s.logger.Warn("module has no weekly load and will never be scheduled", zap.String("module", module.Name))
	}

	if err := s.store.Update(ctx, func(tx *store.Tx) error {
		tx.PutModule(module)
		return nil
	}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create module")
	}
	return &module, nil
}

// Update applies a partial update to a module.
func (s *ModuleService) Update(ctx context.Context, id string, req models.UpdateModuleRequest) (*models.Module, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "module")
	}
	var module models.Module
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		var ok bool
		module, ok = tx.Module(id)
		if !ok {
			return appErrors.NotFound("module")
		}
		if req.Name != nil {
			module.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			module.Description = strings.TrimSpace(*req.Description)
		}
		if req.TotalHours != nil {
			module.TotalHours = *req.TotalHours
		}
		if req.SessionsPerWeek != nil {
			module.SessionsPerWeek = *req.SessionsPerWeek
		}
		if req.HoursPerSession != nil {
			module.HoursPerSession = *req.HoursPerSession
		}
		if req.Type != nil {
			module.Type = *req.Type
		}
		if req.IsActive != nil {
			module.IsActive = *req.IsActive
		}
		tx.PutModule(module)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// Delete deactivates a module. Schedules referencing it stay queryable.
func (s *ModuleService) Delete(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(tx *store.Tx) error {
		module, ok := tx.Module(id)
		if !ok {
			return appErrors.NotFound("module")
		}
		if !module.IsActive {
			return nil
		}
		module.IsActive = false
		tx.PutModule(module)
		return nil
	})
}
