package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/training-capacity-api/internal/middleware"
	"github.com/noah-isme/training-capacity-api/internal/models"
)

// Handlers bundles every HTTP handler mounted by RegisterRoutes.
type Handlers struct {
	Auth          *AuthHandler
	Trainers      *TrainerHandler
	Modules       *ModuleHandler
	Rooms         *RoomHandler
	TrainingGroup *TrainingGroupHandler
	Schedules     *ScheduleHandler
	Competency    *CompetencyHandler
	Capacity      *CapacityHandler
	Dashboard     *DashboardHandler
	Metrics       *MetricsHandler
}

// RegisterRoutes mounts ops endpoints at the root and the API under prefix.
// Everything but login requires an admin token.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, tokens middleware.TokenValidator) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(prefix)
	api.POST("/auth/login", h.Auth.Login)

	secured := api.Group("")
	secured.Use(middleware.JWT(tokens), middleware.RequireRoles(models.RoleAdmin))

	secured.GET("/auth/me", h.Auth.Me)

	trainers := secured.Group("/trainers")
	trainers.GET("", h.Trainers.List)
	trainers.POST("", h.Trainers.Create)
	trainers.GET("/:id", h.Trainers.Get)
	trainers.PUT("/:id", h.Trainers.Update)
	trainers.DELETE("/:id", h.Trainers.Delete)

	modules := secured.Group("/modules")
	modules.GET("", h.Modules.List)
	modules.POST("", h.Modules.Create)
	modules.GET("/:id", h.Modules.Get)
	modules.PUT("/:id", h.Modules.Update)
	modules.DELETE("/:id", h.Modules.Delete)

	rooms := secured.Group("/rooms")
	rooms.GET("", h.Rooms.List)
	rooms.POST("", h.Rooms.Create)
	rooms.GET("/:id", h.Rooms.Get)
	rooms.PUT("/:id", h.Rooms.Update)
	rooms.DELETE("/:id", h.Rooms.Delete)

	groups := secured.Group("/training-groups")
	groups.GET("", h.TrainingGroup.List)
	groups.POST("", h.TrainingGroup.Create)
	groups.GET("/:id", h.TrainingGroup.Get)
	groups.PUT("/:id", h.TrainingGroup.Update)
	groups.DELETE("/:id", h.TrainingGroup.Delete)
	groups.GET("/:id/schedules", h.TrainingGroup.Schedules)
	groups.POST("/:id/recalculate", h.TrainingGroup.Recalculate)

	schedules := secured.Group("/schedules")
	schedules.GET("", h.Schedules.List)
	schedules.POST("", h.Schedules.Create)
	schedules.PUT("/:id", h.Schedules.Update)
	schedules.DELETE("/:id", h.Schedules.Delete)

	secured.GET("/module-trainer-assignments", h.Competency.List)
	secured.PUT("/module-trainer-assignments", h.Competency.Set)
	secured.DELETE("/module-trainer-assignments", h.Competency.Delete)
	secured.POST("/auto-assign/trainers-modules", h.Competency.AutoAssign)

	capacity := secured.Group("/capacity")
	capacity.GET("/trainer-workload", h.Capacity.TrainerWorkload)
	capacity.GET("/room-occupancy", h.Capacity.RoomOccupancy)
	capacity.GET("/analysis", h.Capacity.Analysis)
	capacity.GET("/weekly-planning", h.Capacity.WeeklyPlanning)
	capacity.GET("/monthly-planning", h.Capacity.MonthlyPlanning)
	capacity.POST("/recalculate", h.Capacity.Recalculate)
	capacity.GET("/export", h.Capacity.Export)

	secured.GET("/dashboard/summary", h.Dashboard.Summary)
}
