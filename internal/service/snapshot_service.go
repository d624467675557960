package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/training-capacity-api/internal/store"
	"github.com/noah-isme/training-capacity-api/pkg/jobs"
)

// Background job types.
const (
	JobSnapshotFlush       = "snapshot.flush"
	JobCapacityRecalculate = "capacity.recalculate"
)

type snapshotRepository interface {
	Save(ctx context.Context, snap store.Snapshot) error
	Load(ctx context.Context) (store.Snapshot, error)
}

// SnapshotService mirrors the in-memory store to durable storage.
type SnapshotService struct {
	store   *store.Store
	repo    snapshotRepository
	metrics *MetricsService
	logger  *zap.Logger

	mu    sync.Mutex
	saved uint64
}

// NewSnapshotService constructs a SnapshotService.
func NewSnapshotService(st *store.Store, repo snapshotRepository, metrics *MetricsService, logger *zap.Logger) *SnapshotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotService{store: st, repo: repo, metrics: metrics, logger: logger}
}

// Restore loads the persisted snapshot into the store. An empty snapshot leaves the store untouched.
func (s *SnapshotService) Restore(ctx context.Context) error {
	snap, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if snap.Empty() {
		s.logger.Info("no snapshot to restore")
		return nil
	}
	if err := s.store.Restore(ctx, snap); err != nil {
		return err
	}
	s.mu.Lock()
	s.saved = snap.Version
	s.mu.Unlock()
	s.logger.Info("snapshot restored",
		zap.Uint64("version", snap.Version),
		zap.Int("trainers", len(snap.Trainers)),
		zap.Int("groups", len(snap.Groups)),
		zap.Int("schedules", len(snap.Schedules)),
	)
	return nil
}

// Flush saves the store when it changed since the last save.
func (s *SnapshotService) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.Version() == s.saved {
		return nil
	}
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return err
	}
	err = s.repo.Save(ctx, snap)
	s.metrics.RecordSnapshotFlush(err)
	if err != nil {
		s.logger.Warn("snapshot flush failed", zap.Uint64("version", snap.Version), zap.Error(err))
		return err
	}
	s.saved = snap.Version
	s.logger.Debug("snapshot flushed", zap.Uint64("version", snap.Version))
	return nil
}

// HandleJob is the jobs.Handler for JobSnapshotFlush.
func (s *SnapshotService) HandleJob(ctx context.Context, _ jobs.Job) error {
	return s.Flush(ctx)
}
