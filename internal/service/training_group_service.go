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

// TrainingGroupService manages training groups and triggers the assignment pass.
type TrainingGroupService struct {
	store     *store.Store
	engine    *AssignmentEngine
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// TrainingGroupServiceParams groups the service dependencies.
type TrainingGroupServiceParams struct {
	Store     *store.Store
	Engine    *AssignmentEngine
	Validator *validator.Validate
	Logger    *zap.Logger
}

// NewTrainingGroupService constructs a TrainingGroupService.
func NewTrainingGroupService(params TrainingGroupServiceParams) *TrainingGroupService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrainingGroupService{
		store:     params.Store,
		engine:    params.Engine,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns every group in creation order.
func (s *TrainingGroupService) List(ctx context.Context) ([]models.TrainingGroup, error) {
	var groups []models.TrainingGroup
	if err := s.store.View(ctx, func(tx *store.ReadTx) error {
		groups = tx.Groups()
		return nil
	}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list training groups")
	}
	return groups, nil
}

// Get returns a group by id.
func (s *TrainingGroupService) Get(ctx context.Context, id string) (*models.TrainingGroup, error) {
	var (
		group models.TrainingGroup
		found bool
	)
	if err := s.store.View(ctx, func(tx *store.ReadTx) error {
		group, found = tx.Group(id)
		return nil
	}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load training group")
	}
	if !found {
		return nil, appErrors.NotFound("training group")
	}
	return &group, nil
}

// Create stores a group and assigns its curriculum in the same transaction.
// Modules nobody can teach are reported, never rejected.
func (s *TrainingGroupService) Create(ctx context.Context, req models.CreateTrainingGroupRequest) (*models.GroupCreationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "training group")
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "startDate must be a date (YYYY-MM-DD)")
	}
	end, err := parseOptionalDate(req.EndDate, "endDate")
	if err != nil {
		return nil, err
	}

	group := models.TrainingGroup{
		ID:               newID(),
		Name:             strings.TrimSpace(req.Name),
		ParticipantCount: req.ParticipantCount,
		StartDate:        start,
		EndDate:          end,
		Status:           models.GroupPlanned,
		DelayDays:        req.DelayDays,
		RoomID:           normalizeRef(req.RoomID),
		CreatedAt:        s.now().UTC(),
	}
	if req.Status != nil {
		group.Status = *req.Status
	}

	var result models.GroupCreationResult
	err = s.store.Update(ctx, func(tx *store.Tx) error {
		if err := ensureRoomExists(&tx.ReadTx, group.RoomID); err != nil {
			return err
		}
		tx.PutGroup(group)
		assignment := s.engine.AssignWithin(ctx, tx, group)
		stored, _ := tx.Group(group.ID)
		result = models.GroupCreationResult{Group: stored, Assignment: assignment}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("training group created",
		zap.String("group_id", group.ID),
		zap.Int("scheduled", len(result.Assignment.Schedules)),
		zap.Int("unassigned", len(result.Assignment.UnassignedModules)),
	)
	return &result, nil
}

// Update applies a partial update. Moving the start date of a group whose
// schedules are all still planned reruns the assignment pass.
func (s *TrainingGroupService) Update(ctx context.Context, id string, req models.UpdateTrainingGroupRequest) (*models.TrainingGroup, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "training group")
	}

	var (
		start *time.Time
		end   *time.Time
		err   error
	)
	if req.StartDate != nil {
		if start, err = parseOptionalDate(req.StartDate, "startDate"); err != nil {
			return nil, err
		}
		if start == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "startDate cannot be empty")
		}
	}
	if req.EndDate != nil {
		if end, err = parseOptionalDate(req.EndDate, "endDate"); err != nil {
			return nil, err
		}
	}

	var group models.TrainingGroup
	err = s.store.Update(ctx, func(tx *store.Tx) error {
		var ok bool
		group, ok = tx.Group(id)
		if !ok {
			return appErrors.NotFound("training group")
		}
		if req.Name != nil {
			group.Name = strings.TrimSpace(*req.Name)
		}
		if req.ParticipantCount != nil {
			group.ParticipantCount = *req.ParticipantCount
		}
		if req.EndDate != nil {
			group.EndDate = end
		}
		if req.Status != nil {
			group.Status = *req.Status
		}
		if req.DelayDays != nil {
			group.DelayDays = *req.DelayDays
		}
		if req.RoomID != nil {
			group.RoomID = normalizeRef(req.RoomID)
			if err := ensureRoomExists(&tx.ReadTx, group.RoomID); err != nil {
				return err
			}
		}

		moved := start != nil && !start.Equal(group.StartDate)
		if start != nil {
			group.StartDate = *start
		}
		tx.PutGroup(group)

		if moved && group.Status == models.GroupPlanned && recalculable(&tx.ReadTx, id) {
			s.engine.rerun(ctx, tx, group)
			group, _ = tx.Group(id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// Delete removes the group. Its schedules are kept but no longer count anywhere.
func (s *TrainingGroupService) Delete(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(tx *store.Tx) error {
		if !tx.DeleteGroup(id) {
			return appErrors.NotFound("training group")
		}
		return nil
	})
}

// Schedules lists the group's schedules sorted by scheduled order.
func (s *TrainingGroupService) Schedules(ctx context.Context, id string) ([]models.GroupModuleSchedule, error) {
	var schedules []models.GroupModuleSchedule
	err := s.store.View(ctx, func(tx *store.ReadTx) error {
		if _, ok := tx.Group(id); !ok {
			return appErrors.NotFound("training group")
		}
		schedules = tx.GroupSchedules(id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// Recalculate reruns the assignment pass for one group.
func (s *TrainingGroupService) Recalculate(ctx context.Context, id string) (*models.AssignmentResult, error) {
	return s.engine.RecalculateGroup(ctx, id)
}

func ensureRoomExists(tx *store.ReadTx, roomID *string) error {
	if roomID == nil {
		return nil
	}
	if _, ok := tx.Room(*roomID); !ok {
		return appErrors.Clone(appErrors.ErrValidation, "roomId does not reference a known room")
	}
	return nil
}
