package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/training-capacity-api/internal/models"
	"github.com/noah-isme/training-capacity-api/pkg/response"
)

type trainerService interface {
	List(ctx context.Context, includeInactive bool) ([]models.Trainer, error)
	Get(ctx context.Context, id string) (*models.Trainer, error)
	Create(ctx context.Context, req models.CreateTrainerRequest) (*models.Trainer, error)
	Update(ctx context.Context, id string, req models.UpdateTrainerRequest) (*models.Trainer, error)
	Delete(ctx context.Context, id string) error
}

// TrainerHandler handles trainer endpoints.
type TrainerHandler struct {
	service trainerService
}

// NewTrainerHandler constructs a trainer handler.
func NewTrainerHandler(svc trainerService) *TrainerHandler {
	return &TrainerHandler{service: svc}
}

// List godoc
// @Summary List trainers
// @Tags Trainers
// @Produce json
// @Security BearerAuth
// @Param includeInactive query bool false "Include deactivated trainers"
// @Success 200 {object} response.Envelope
// @Router /trainers [get]
func (h *TrainerHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), includeInactive(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// Get godoc
// @Summary Get a trainer by id
// @Tags Trainers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trainer ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /trainers/{id} [get]
func (h *TrainerHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// Create godoc
// @Summary Create a trainer
// @Tags Trainers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateTrainerRequest true "Trainer payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /trainers [post]
func (h *TrainerHandler) Create(c *gin.Context) {
	var req models.CreateTrainerRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update a trainer
// @Tags Trainers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trainer ID"
// @Param payload body models.UpdateTrainerRequest true "Trainer payload"
// @Success 200 {object} response.Envelope
// @Router /trainers/{id} [put]
func (h *TrainerHandler) Update(c *gin.Context) {
	var req models.UpdateTrainerRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// Delete godoc
// @Summary Deactivate a trainer
// @Tags Trainers
// @Security BearerAuth
// @Param id path string true "Trainer ID"
// @Success 204
// @Router /trainers/{id} [delete]
func (h *TrainerHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
