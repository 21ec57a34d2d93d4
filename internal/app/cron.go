package app

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blognoitro/core/internal/modules/post"
	pkgcron "github.com/blognoitro/core/internal/pkg/cron"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, db *gorm.DB, logger *zap.Logger) {
	cronLogger := logger.Named("cron")
	postSvc := post.NewService(db)

	// Counters are recomputed inside every write transaction; this job only
	// exists to repair drift after manual database edits or crashed writes.
	sched.Register(pkgcron.Job{
		Name:        "reconcile_counters",
		Description: "Đồng bộ lại bộ đếm like và bình luận của bài viết",
		Interval:    time.Hour,
		Fn: func(ctx context.Context) error {
			if err := postSvc.ReconcileCounters(); err != nil {
				cronLogger.Warn("counter reconciliation failed", zap.Error(err))
				return err
			}
			cronLogger.Info("counters reconciled")
			return nil
		},
	})
}
