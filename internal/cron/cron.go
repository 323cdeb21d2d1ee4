package cron

import (
	"context"
	"log/slog"
	"time"
)

const DefaultInterval = 24 * time.Hour

// AuditPurger is satisfied by application.AuditService.
type AuditPurger interface {
	PurgeExpired(retentionDays int) (int64, error)
}

// StartCleanupTask purges audit logs older than retentionDays once on start
// and then every interval until ctx is done. The returned channel is closed
// when the task has stopped.
func StartCleanupTask(ctx context.Context, auditService AuditPurger, retentionDays int, interval time.Duration, log *slog.Logger) <-chan struct{} {
	if log == nil {
		log = slog.Default()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	done := make(chan struct{})

	go func() {
		defer close(done)
		if retentionDays <= 0 {
			log.Info("audit log cleanup disabled")
			return
		}
		log.Info("starting background cleanup task", "retention_days", retentionDays, "interval", interval)

		run := func() {
			n, err := auditService.PurgeExpired(retentionDays)
			if err != nil {
				log.Error("failed to cleanup old audit logs", "err", err)
				return
			}
			log.Info("audit log cleanup completed", "deleted", n)
		}

		// Run immediately on startup
		run()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run()
			}
		}
	}()
	return done
}
