package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/training-capacity-api/internal/models"
	"github.com/noah-isme/training-capacity-api/internal/service"
	appErrors "github.com/noah-isme/training-capacity-api/pkg/errors"
	"github.com/noah-isme/training-capacity-api/pkg/jobs"
	"github.com/noah-isme/training-capacity-api/pkg/response"
)

type workloadService interface {
	TrainerWorkload(ctx context.Context) ([]models.TrainerWorkload, error)
	RoomOccupancy(ctx context.Context) ([]models.RoomOccupancy, error)
}

type planningService interface {
	WeeklyPlanning(ctx context.Context) ([]models.WeekPlan, error)
	MonthlyPlanning(ctx context.Context) ([]models.MonthPlan, error)
}

type capacityService interface {
	Analysis(ctx context.Context) (*models.CapacityAnalysis, bool, error)
}

type recalculator interface {
	RecalculateAll(ctx context.Context) (*models.RecalculationSummary, error)
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) (bool, error)
}

type reportService interface {
	Generate(ctx context.Context, view, format string) (*service.Report, error)
}

// CapacityHandlerParams groups the capacity endpoints' collaborators.
type CapacityHandlerParams struct {
	Workload     workloadService
	Planning     planningService
	Capacity     capacityService
	Recalculator recalculator
	Jobs         jobEnqueuer
	Reports      reportService
}

// CapacityHandler serves workload, planning, analysis and export endpoints.
type CapacityHandler struct {
	workload     workloadService
	planning     planningService
	capacity     capacityService
	recalculator recalculator
	jobs         jobEnqueuer
	reports      reportService
}

// NewCapacityHandler constructs a capacity handler.
func NewCapacityHandler(params CapacityHandlerParams) *CapacityHandler {
	return &CapacityHandler{
		workload:     params.Workload,
		planning:     params.Planning,
		capacity:     params.Capacity,
		recalculator: params.Recalculator,
		jobs:         params.Jobs,
		reports:      params.Reports,
	}
}

// TrainerWorkload godoc
// @Summary Weekly load of every active trainer
// @Tags Capacity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /capacity/trainer-workload [get]
func (h *CapacityHandler) TrainerWorkload(c *gin.Context) {
	items, err := h.workload.TrainerWorkload(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// RoomOccupancy godoc
// @Summary Weekly occupation of every active room
// @Tags Capacity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /capacity/room-occupancy [get]
func (h *CapacityHandler) RoomOccupancy(c *gin.Context) {
	items, err := h.workload.RoomOccupancy(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// Analysis godoc
// @Summary Full capacity analysis with recommendations
// @Tags Capacity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /capacity/analysis [get]
func (h *CapacityHandler) Analysis(c *gin.Context) {
	start := time.Now()
	analysis, cacheHit, err := h.capacity.Analysis(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, analysis, cacheHit, start)
}

// WeeklyPlanning godoc
// @Summary Week-by-week projection of scheduled modules
// @Tags Capacity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /capacity/weekly-planning [get]
func (h *CapacityHandler) WeeklyPlanning(c *gin.Context) {
	weeks, err := h.planning.WeeklyPlanning(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, weeks)
}

// MonthlyPlanning godoc
// @Summary Month-by-month load against capacity
// @Tags Capacity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /capacity/monthly-planning [get]
func (h *CapacityHandler) MonthlyPlanning(c *gin.Context) {
	months, err := h.planning.MonthlyPlanning(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, months)
}

// Recalculate godoc
// @Summary Rerun the assignment pass for every untouched planned group
// @Description Queued by default; sync=true runs it inline and returns the summary.
// @Tags Capacity
// @Produce json
// @Security BearerAuth
// @Param sync query bool false "Run inline"
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /capacity/recalculate [post]
func (h *CapacityHandler) Recalculate(c *gin.Context) {
	sync, _ := strconv.ParseBool(c.DefaultQuery("sync", "false"))
	if sync || h.jobs == nil {
		summary, err := h.recalculator.RecalculateAll(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, summary)
		return
	}

	job := jobs.Job{Type: service.JobCapacityRecalculate, Key: service.JobCapacityRecalculate}
	queued, err := h.jobs.Enqueue(job)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "recalculation queue unavailable"))
		return
	}
	response.Accepted(c, gin.H{"jobType": job.Type, "queued": queued})
}

// Export godoc
// @Summary Download a capacity report
// @Tags Capacity
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param view query string true "trainers, rooms or monthly"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /capacity/export [get]
func (h *CapacityHandler) Export(c *gin.Context) {
	report, err := h.reports.Generate(c.Request.Context(), c.Query("view"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, report.Filename, report.ContentType, report.Body)
}
