package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/training-capacity-api/internal/models"
	"github.com/noah-isme/training-capacity-api/pkg/response"
)

type competencyService interface {
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.ModuleTrainerAssignment, error)
	Set(ctx context.Context, req models.SetAssignmentRequest) (*models.ModuleTrainerAssignment, bool, error)
	Delete(ctx context.Context, moduleID, trainerID string) error
	AutoAssignAll(ctx context.Context) (*models.AutoAssignSummary, error)
}

// CompetencyHandler exposes the module/trainer competency matrix.
type CompetencyHandler struct {
	service competencyService
}

// NewCompetencyHandler constructs a competency handler.
func NewCompetencyHandler(svc competencyService) *CompetencyHandler {
	return &CompetencyHandler{service: svc}
}

// List godoc
// @Summary List competency matrix cells
// @Tags Competencies
// @Produce json
// @Security BearerAuth
// @Param moduleId query string false "Module ID"
// @Param trainerId query string false "Trainer ID"
// @Success 200 {object} response.Envelope
// @Router /module-trainer-assignments [get]
func (h *CompetencyHandler) List(c *gin.Context) {
	cells, err := h.service.List(c.Request.Context(), models.AssignmentFilter{
		ModuleID:  strings.TrimSpace(c.Query("moduleId")),
		TrainerID: strings.TrimSpace(c.Query("trainerId")),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cells)
}

// Set godoc
// @Summary Set whether a trainer can teach a module
// @Tags Competencies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.SetAssignmentRequest true "Cell payload"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Router /module-trainer-assignments [put]
func (h *CompetencyHandler) Set(c *gin.Context) {
	var req models.SetAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}
	cell, created, err := h.service.Set(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(c, status, cell)
}

// Delete godoc
// @Summary Remove a competency cell
// @Tags Competencies
// @Security BearerAuth
// @Param moduleId query string true "Module ID"
// @Param trainerId query string true "Trainer ID"
// @Success 204
// @Router /module-trainer-assignments [delete]
func (h *CompetencyHandler) Delete(c *gin.Context) {
	moduleID := strings.TrimSpace(c.Query("moduleId"))
	trainerID := strings.TrimSpace(c.Query("trainerId"))
	if err := h.service.Delete(c.Request.Context(), moduleID, trainerID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AutoAssign godoc
// @Summary Match every active trainer to the modules their specialties cover
// @Tags Competencies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /auto-assign/trainers-modules [post]
func (h *CompetencyHandler) AutoAssign(c *gin.Context) {
	summary, err := h.service.AutoAssignAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}
