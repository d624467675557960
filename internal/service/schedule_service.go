package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/training-capacity-api/internal/models"
	"github.com/noah-isme/training-capacity-api/internal/store"
	appErrors "github.com/noah-isme/training-capacity-api/pkg/errors"
)

// ScheduleService exposes schedule rows for progress tracking and manual planning.
type ScheduleService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(st *store.Store, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{store: st, validator: validate, logger: logger}
}

// List returns schedules of existing groups matching the filter.
func (s *ScheduleService) List(ctx context.Context, filter models.ScheduleFilter) ([]models.GroupModuleSchedule, error) {
	var out []models.GroupModuleSchedule
	err := s.store.View(ctx, func(tx *store.ReadTx) error {
		out = make([]models.GroupModuleSchedule, 0)
		for _, sc := range tx.LiveSchedules() {
			if matchesScheduleFilter(sc, filter) {
				out = append(out, sc)
			}
		}
		return nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	return out, nil
}

// Create adds a schedule row by hand. Without an end date the module duration is used.
func (s *ScheduleService) Create(ctx context.Context, req models.CreateScheduleRequest) (*models.GroupModuleSchedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "schedule")
	}
	start, err := parseOptionalDate(req.StartDate, "startDate")
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate(req.EndDate, "endDate")
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must not precede startDate")
	}

	schedule := models.GroupModuleSchedule{
		ID:             newID(),
		GroupID:        req.GroupID,
		ModuleID:       req.ModuleID,
		TrainerID:      req.TrainerID,
		ScheduledOrder: req.ScheduledOrder,
		StartDate:      start,
		EndDate:        end,
		Status:         models.SchedulePlanned,
	}
	if req.Status != nil {
		schedule.Status = *req.Status
	}

	err = s.store.Update(ctx, func(tx *store.Tx) error {
		if _, ok := tx.Group(req.GroupID); !ok {
			return appErrors.NotFound("training group")
		}
		module, ok := tx.Module(req.ModuleID)
		if !ok {
			return appErrors.NotFound("module")
		}
		if _, ok := tx.Trainer(req.TrainerID); !ok {
			return appErrors.NotFound("trainer")
		}
		if schedule.StartDate != nil && schedule.EndDate == nil {
			if weeks := module.DurationWeeks(); weeks > 0 {
				computed := addWeeks(*schedule.StartDate, weeks).AddDate(0, 0, -1)
				schedule.EndDate = &computed
			}
		}
		tx.PutSchedule(schedule)
		refreshTrainerLoad(tx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Update records progress or reassigns a schedule. Reaching 100% progress
// without an explicit status completes the schedule.
func (s *ScheduleService) Update(ctx context.Context, id string, req models.UpdateScheduleRequest) (*models.GroupModuleSchedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "schedule")
	}
	start, err := parseOptionalDate(req.StartDate, "startDate")
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate(req.EndDate, "endDate")
	if err != nil {
		return nil, err
	}

	var schedule models.GroupModuleSchedule
	err = s.store.Update(ctx, func(tx *store.Tx) error {
		var ok bool
		schedule, ok = tx.Schedule(id)
		if !ok {
			return appErrors.NotFound("schedule")
		}
		if req.TrainerID != nil {
			if _, ok := tx.Trainer(*req.TrainerID); !ok {
				return appErrors.NotFound("trainer")
			}
			schedule.TrainerID = *req.TrainerID
		}
		if req.StartDate != nil {
			schedule.StartDate = start
		}
		if req.EndDate != nil {
			schedule.EndDate = end
		}
		if schedule.Dated() && schedule.EndDate.Before(*schedule.StartDate) {
			return appErrors.Clone(appErrors.ErrValidation, "endDate must not precede startDate")
		}
		if req.Progress != nil {
			schedule.Progress = *req.Progress
		}
		if req.HoursCompleted != nil {
			schedule.HoursCompleted = *req.HoursCompleted
		}
		switch {
		case req.Status != nil:
			schedule.Status = *req.Status
		case schedule.Progress >= 100:
			schedule.Status = models.ScheduleCompleted
		case schedule.Progress > 0 && schedule.Status == models.SchedulePlanned:
			schedule.Status = models.ScheduleActive
		}
		tx.PutSchedule(schedule)
		refreshTrainerLoad(tx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Delete removes a schedule row.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(tx *store.Tx) error {
		if !tx.DeleteSchedule(id) {
			return appErrors.NotFound("schedule")
		}
		refreshTrainerLoad(tx)
		return nil
	})
}

func matchesScheduleFilter(sc models.GroupModuleSchedule, filter models.ScheduleFilter) bool {
	if filter.GroupID != "" && sc.GroupID != filter.GroupID {
		return false
	}
	if filter.TrainerID != "" && sc.TrainerID != filter.TrainerID {
		return false
	}
	if filter.ModuleID != "" && sc.ModuleID != filter.ModuleID {
		return false
	}
	if filter.Status != "" && sc.Status != filter.Status {
		return false
	}
	return true
}
