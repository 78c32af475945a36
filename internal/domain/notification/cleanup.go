package notification

import (
	"context"
	"log"
	"time"
)

// CleanupConfig controls pruning of read notifications.
type CleanupConfig struct {
	RetentionDays int           // read notifications older than this are removed
	Interval      time.Duration // how often the pruning runs
	Enabled       bool
}

func DefaultCleanupConfig() CleanupConfig {
	return CleanupConfig{
		RetentionDays: 90,
		Interval:      24 * time.Hour,
		Enabled:       true,
	}
}

type CleanupService struct {
	repo Repository
	now  func() time.Time
}

func NewCleanupService(repo Repository) *CleanupService {
	return &CleanupService{repo: repo, now: time.Now}
}

// CleanupRead removes read notifications older than daysToKeep days.
func (c *CleanupService) CleanupRead(ctx context.Context, daysToKeep int) (int64, error) {
	start := time.Now()
	cutoff := c.now().AddDate(0, 0, -daysToKeep)

	deleted, err := c.repo.DeleteReadOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("notification_cleanup_failed err=%v", err)
		return 0, err
	}
	log.Printf("notification_cleanup deleted=%d took=%v", deleted, time.Since(start))
	return deleted, nil
}

// Schedule runs CleanupRead every cfg.Interval until ctx is done or the
// returned channel is closed.
func (c *CleanupService) Schedule(ctx context.Context, cfg CleanupConfig) chan struct{} {
	if !cfg.Enabled {
		log.Println("notification cleanup disabled")
		return nil
	}

	stopCh := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				_, _ = c.CleanupRead(ctx, cfg.RetentionDays)
			case <-stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Printf("notification cleanup scheduled interval=%v retention_days=%d", cfg.Interval, cfg.RetentionDays)
	return stopCh
}
