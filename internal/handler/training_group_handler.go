package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/training-capacity-api/internal/models"
	"github.com/noah-isme/training-capacity-api/pkg/response"
)

type trainingGroupService interface {
	List(ctx context.Context) ([]models.TrainingGroup, error)
	Get(ctx context.Context, id string) (*models.TrainingGroup, error)
	Create(ctx context.Context, req models.CreateTrainingGroupRequest) (*models.GroupCreationResult, error)
	Update(ctx context.Context, id string, req models.UpdateTrainingGroupRequest) (*models.TrainingGroup, error)
	Delete(ctx context.Context, id string) error
	Schedules(ctx context.Context, id string) ([]models.GroupModuleSchedule, error)
	Recalculate(ctx context.Context, id string) (*models.AssignmentResult, error)
}

// TrainingGroupHandler handles training group endpoints.
type TrainingGroupHandler struct {
	service trainingGroupService
}

// NewTrainingGroupHandler constructs a training group handler.
func NewTrainingGroupHandler(svc trainingGroupService) *TrainingGroupHandler {
	return &TrainingGroupHandler{service: svc}
}

// List godoc
// @Summary List training groups
// @Tags TrainingGroups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /training-groups [get]
func (h *TrainingGroupHandler) List(c *gin.Context) {
	groups, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, groups)
}

// Get godoc
// @Summary Get a training group
// @Tags TrainingGroups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /training-groups/{id} [get]
func (h *TrainingGroupHandler) Get(c *gin.Context) {
	group, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, group)
}

// Create godoc
// @Summary Open a training group and assign its modules
// @Description Modules nobody can teach are listed under assignment.unassignedModules.
// @Tags TrainingGroups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateTrainingGroupRequest true "Group payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /training-groups [post]
func (h *TrainingGroupHandler) Create(c *gin.Context) {
	var req models.CreateTrainingGroupRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update godoc
// @Summary Update a training group
// @Tags TrainingGroups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param payload body models.UpdateTrainingGroupRequest true "Group payload"
// @Success 200 {object} response.Envelope
// @Router /training-groups/{id} [put]
func (h *TrainingGroupHandler) Update(c *gin.Context) {
	var req models.UpdateTrainingGroupRequest
	if !bindJSON(c, &req) {
		return
	}
	group, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, group)
}

// Delete godoc
// @Summary Delete a training group
// @Description Schedules are not cascaded; they stop counting toward load.
// @Tags TrainingGroups
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 204
// @Router /training-groups/{id} [delete]
func (h *TrainingGroupHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Schedules godoc
// @Summary List a group's schedules in curriculum order
// @Tags TrainingGroups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} response.Envelope
// @Router /training-groups/{id}/schedules [get]
func (h *TrainingGroupHandler) Schedules(c *gin.Context) {
	schedules, err := h.service.Schedules(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, schedules)
}

// Recalculate godoc
// @Summary Rerun the assignment pass for a group
// @Tags TrainingGroups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /training-groups/{id}/recalculate [post]
func (h *TrainingGroupHandler) Recalculate(c *gin.Context) {
	result, err := h.service.Recalculate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
