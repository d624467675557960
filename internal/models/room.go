package models

import "time"

// RoomHoursPerWeek is the fixed weekly availability of every room.
const RoomHoursPerWeek = 40

// RoomType classifies a room.
type RoomType string

const (
	RoomClassroom RoomType = "classroom"
	RoomWorkshop  RoomType = "workshop"
)

// Room is a physical space a training group is hosted in.
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      RoomType  `json:"type"`
	Capacity  int       `json:"capacity"`
	Equipment []string  `json:"equipment"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateRoomRequest is the payload for registering a room.
type CreateRoomRequest struct {
	Name      string   `json:"name" validate:"required,max=255"`
	Type      RoomType `json:"type" validate:"required,oneof=classroom workshop"`
	Capacity  int      `json:"capacity" validate:"min=0"`
	Equipment []string `json:"equipment" validate:"omitempty,dive,max=100"`
	IsActive  *bool    `json:"isActive"`
}

// UpdateRoomRequest carries a partial room update.
type UpdateRoomRequest struct {
	Name      *string   `json:"name" validate:"omitempty,max=255"`
	Type      *RoomType `json:"type" validate:"omitempty,oneof=classroom workshop"`
	Capacity  *int      `json:"capacity" validate:"omitempty,min=0"`
	Equipment *[]string `json:"equipment" validate:"omitempty,dive,max=100"`
	IsActive  *bool     `json:"isActive"`
}
