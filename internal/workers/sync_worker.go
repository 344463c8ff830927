package workers

import (
	"context"
	"time"

	"github.com/Docteur-Parfait/os228/internal/services"
	"github.com/Docteur-Parfait/os228/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SyncWorker periodically refreshes all persisted projects from GitHub
type SyncWorker struct {
	*BaseWorker
	projectService *services.ProjectService
	interval       time.Duration
}

// NewSyncWorker creates a new sync worker running at the given interval
func NewSyncWorker(workerID string, projectService *services.ProjectService, interval time.Duration) *SyncWorker {
	return &SyncWorker{
		BaseWorker:     NewBaseWorker(workerID),
		projectService: projectService,
		interval:       interval,
	}
}

// Start begins the periodic sync loop
func (w *SyncWorker) Start(ctx context.Context) error {
	w.markRunning()
	logger.Infof("Sync worker %s started with interval %s", w.WorkerID, w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Infof("Sync worker %s stopping due to context cancellation", w.WorkerID)
			return ctx.Err()
		case <-w.StopChan:
			logger.Infof("Sync worker %s stopping", w.WorkerID)
			return nil
		case <-ticker.C:
			w.runSync(ctx)
		}
	}
}

func (w *SyncWorker) runSync(ctx context.Context) {
	runID := uuid.New().String()
	entry := logger.WithFields(logrus.Fields{
		"worker": w.WorkerID,
		"run_id": runID,
	})

	entry.Info("Starting scheduled GitHub sync")

	summary, err := w.projectService.SyncAll(ctx)
	if err != nil {
		entry.WithError(err).Error("Scheduled sync failed")
		return
	}

	entry.WithFields(logrus.Fields{
		"total":    summary.Total,
		"updated":  summary.Updated,
		"failures": len(summary.Errors),
	}).Info("Scheduled sync finished")
}
