package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/noah-isme/training-capacity-api/api/swagger"
	"github.com/noah-isme/training-capacity-api/internal/handler"
	"github.com/noah-isme/training-capacity-api/internal/middleware"
	"github.com/noah-isme/training-capacity-api/internal/repository"
	"github.com/noah-isme/training-capacity-api/internal/service"
	"github.com/noah-isme/training-capacity-api/internal/store"
	"github.com/noah-isme/training-capacity-api/pkg/cache"
	"github.com/noah-isme/training-capacity-api/pkg/config"
	"github.com/noah-isme/training-capacity-api/pkg/database"
	"github.com/noah-isme/training-capacity-api/pkg/jobs"
	"github.com/noah-isme/training-capacity-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/training-capacity-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/training-capacity-api/pkg/middleware/requestid"
	"github.com/noah-isme/training-capacity-api/pkg/tracing"
)

// @title Training Capacity API
// @version 1.0.0
// @description Capacity planning and trainer auto-assignment for vocational training groups
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	shutdownTracing, err := tracing.Init(ctx, cfg, logr)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	st := store.New()
	validate := validator.New()
	metrics := service.NewMetricsService()

	var (
		db       *sqlx.DB
		snapshot *service.SnapshotService
		snapRepo *repository.SnapshotRepository
	)
	if cfg.Persistence.Enabled {
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer db.Close()

		snapRepo = repository.NewSnapshotRepository(db)
		if err := snapRepo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure snapshot schema: %w", err)
		}
		snapshot = service.NewSnapshotService(st, snapRepo, metrics, logr)
		if err := snapshot.Restore(ctx); err != nil {
			return fmt.Errorf("restore snapshot: %w", err)
		}
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
	}
	var (
		cacheRepo   service.CacheRepository
		redisPinger handler.Pinger
	)
	if redisClient != nil {
		defer redisClient.Close()
		repo := repository.NewCacheRepository(redis.UniversalClient(redisClient), "capacity-api", logr)
		cacheRepo = repo
		redisPinger = repo
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Capacity.CacheTTL, logr, cacheRepo != nil)

	authSvc, err := service.NewAuthService(validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.Tracing.ServiceName,
		AdminUsername:     cfg.Auth.AdminUsername,
		AdminPassword:     cfg.Auth.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}

	engine := service.NewAssignmentEngine(st, metrics, logr, service.AssignmentEngineConfig{ModuleOrder: cfg.Capacity.ModuleOrder})
	workloadSvc := service.NewWorkloadService(st, metrics, logr)
	planningSvc := service.NewPlanningService(st, logr, service.PlanningServiceConfig{
		WeekBucketing: cfg.Capacity.WeekBucketing,
		Months:        cfg.Capacity.PlanningMonths,
	})
	capacitySvc := service.NewCapacityService(service.CapacityServiceParams{
		Store:    st,
		Planner:  planningSvc,
		Cache:    cacheSvc,
		Metrics:  metrics,
		Logger:   logr,
		CacheTTL: cfg.Capacity.CacheTTL,
	})
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Store:    st,
		Workload: workloadSvc,
		Cache:    cacheSvc,
		Logger:   logr,
		CacheTTL: cfg.Capacity.CacheTTL,
	})
	exportSvc := service.NewExportService(workloadSvc, planningSvc, logr, nil, nil)

	mux := jobs.NewMux()
	mux.Handle(service.JobCapacityRecalculate, engine.HandleRecalculateJob)
	if snapshot != nil {
		mux.Handle(service.JobSnapshotFlush, snapshot.HandleJob)
	}
	queue := jobs.NewQueue("capacity", mux.Dispatch, jobs.QueueConfig{
		Workers:    cfg.Jobs.Workers,
		BufferSize: cfg.Jobs.BufferSize,
		MaxRetries: cfg.Jobs.MaxRetries,
		RetryDelay: cfg.Jobs.RetryDelay,
		Logger:     logr,
		OnResult: func(job jobs.Job, err error) {
			metrics.RecordJob(job.Type, err)
		},
	})
	queue.Start(ctx)
	defer queue.Stop()

	st.OnCommit(func(ctx context.Context, version uint64) {
		capacitySvc.Invalidate(ctx)
		if snapshot == nil {
			return
		}
		if _, err := queue.Enqueue(jobs.Job{Type: service.JobSnapshotFlush, Key: service.JobSnapshotFlush}); err != nil {
			logr.Warn("snapshot flush not queued", zap.Uint64("version", version), zap.Error(err))
		}
	})

	if snapshot != nil {
		go flushPeriodically(ctx, snapshot, cfg.Persistence.FlushInterval, logr)
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := snapshot.Flush(flushCtx); err != nil {
				logr.Error("final snapshot flush failed", zap.Error(err))
			}
		}()
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics, "/metrics", "/health", "/ready"))
	r.Use(middleware.WithResponseMeta())

	checks := map[string]handler.Pinger{"redis": redisPinger}
	if snapRepo != nil {
		checks["postgres"] = snapRepo
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Auth:     handler.NewAuthHandler(authSvc),
		Trainers: handler.NewTrainerHandler(service.NewTrainerService(st, validate, logr)),
		Modules:  handler.NewModuleHandler(service.NewModuleService(st, validate, logr)),
		Rooms:    handler.NewRoomHandler(service.NewRoomService(st, validate, logr)),
		TrainingGroup: handler.NewTrainingGroupHandler(service.NewTrainingGroupService(service.TrainingGroupServiceParams{
			Store:     st,
			Engine:    engine,
			Validator: validate,
			Logger:    logr,
		})),
		Schedules:  handler.NewScheduleHandler(service.NewScheduleService(st, validate, logr)),
		Competency: handler.NewCompetencyHandler(service.NewCompetencyService(st, validate, logr)),
		Capacity: handler.NewCapacityHandler(handler.CapacityHandlerParams{
			Workload:     workloadSvc,
			Planning:     planningSvc,
			Capacity:     capacitySvc,
			Recalculator: engine,
			Jobs:         queue,
			Reports:      exportSvc,
		}),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Metrics:   handler.NewMetricsHandler(metrics, checks),
	}, authSvc)

	if cfg.Env != config.EnvProduction {
		swagger.SwaggerInfo.BasePath = cfg.APIPrefix
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func flushPeriodically(ctx context.Context, snapshot *service.SnapshotService, interval time.Duration, logr *zap.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := snapshot.Flush(ctx); err != nil {
				logr.Warn("periodic snapshot flush failed", zap.Error(err))
			}
		}
	}
}
