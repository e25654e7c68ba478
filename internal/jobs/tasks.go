package jobs

import (
	"context"
	"time"

	"github.com/kbukum/vibeapi/internal/logger"
)

// MaintenanceStore is the persistence surface the built-in tasks need.
// Implemented by store/postgres.
type MaintenanceStore interface {
	// DeleteStaleBefore removes users inactive since the cutoff and
	// returns how many were deleted.
	DeleteStaleBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// CountActiveSince counts users who logged in after the cutoff.
	CountActiveSince(ctx context.Context, cutoff time.Time) (int64, error)
}

// RegisterMaintenanceTasks adds the stale-user cleanup and active-user count
// tasks to the scheduler.
func RegisterMaintenanceTasks(s *Scheduler, cfg Config, store MaintenanceStore, log *logger.Logger) {
	taskLog := log.WithComponent("jobs")

	s.Register(Task{
		Name:     "cleanup_stale_users",
		Interval: cfg.CleanupInterval,
		Run: func(ctx context.Context) error {
			cutoff := time.Now().Add(-cfg.StaleAfter)
			deleted, err := store.DeleteStaleBefore(ctx, cutoff)
			if err != nil {
				return err
			}
			if deleted > 0 {
				taskLog.Info("Removed stale user records", map[string]interface{}{
					"deleted": deleted,
				})
			}
			return nil
		},
	})

	s.Register(Task{
		Name:     "count_active_users",
		Interval: cfg.MetricsInterval,
		Run: func(ctx context.Context) error {
			cutoff := time.Now().Add(-cfg.ActiveWindow)
			active, err := store.CountActiveSince(ctx, cutoff)
			if err != nil {
				return err
			}
			taskLog.Info("Active user count", map[string]interface{}{
				"active": active,
				"window": cfg.ActiveWindow.String(),
			})
			return nil
		},
	})
}
