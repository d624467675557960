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

// RoomService manages rooms.
type RoomService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewRoomService constructs a RoomService.
func NewRoomService(st *store.Store, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{store: st, validator: validate, logger: logger, now: time.Now}
}

// List returns rooms; deactivated ones only on request.
func (s *RoomService) List(ctx context.Context, includeInactive bool) ([]models.Room, error) {
	var rooms []models.Room
	err := s.store.View(ctx, func(tx *store.ReadTx) error {
		if includeInactive {
			rooms = tx.Rooms()
		} else {
			rooms = tx.ActiveRooms()
		}
		return nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	return rooms, nil
}

// Get returns a room by id.
func (s *RoomService) Get(ctx context.Context, id string) (*models.Room, error) {
	var (
		room  models.Room
		found bool
	)
	if err := s.store.View(ctx, func(tx *store.ReadTx) error {
		room, found = tx.Room(id)
		return nil
	}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	if !found {
		return nil, appErrors.NotFound("room")
	}
	return &room, nil
}

// Create registers a room.
func (s *RoomService) Create(ctx context.Context, req models.CreateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "room")
	}
	room := models.Room{
		ID:        newID(),
		Name:      strings.TrimSpace(req.Name),
		Type:      req.Type,
		Capacity:  req.Capacity,
		Equipment: normalizeTags(req.Equipment),
		IsActive:  true,
		CreatedAt: s.now().UTC(),
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}
	if err := s.store.Update(ctx, func(tx *store.Tx) error {
		tx.PutRoom(room)
		return nil
	}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create room")
	}
	return &room, nil
}

// Update applies a partial update to a room.
func (s *RoomService) Update(ctx context.Context, id string, req models.UpdateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "room")
	}
	var room models.Room
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		var ok bool
		room, ok = tx.Room(id)
		if !ok {
			return appErrors.NotFound("room")
		}
		if req.Name != nil {
			room.Name = strings.TrimSpace(*req.Name)
		}
		if req.Type != nil {
			room.Type = *req.Type
		}
		if req.Capacity != nil {
			room.Capacity = *req.Capacity
		}
		if req.Equipment != nil {
			room.Equipment = normalizeTags(*req.Equipment)
		}
		if req.IsActive != nil {
			room.IsActive = *req.IsActive
		}
		tx.PutRoom(room)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Delete deactivates a room. Groups keep their reference.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(tx *store.Tx) error {
		room, ok := tx.Room(id)
		if !ok {
			return appErrors.NotFound("room")
		}
		if !room.IsActive {
			return nil
		}
		room.IsActive = false
		tx.PutRoom(room)
		return nil
	})
}
