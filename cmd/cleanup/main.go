package main

import (
	"context"
	"flag"
	"log"

	"mavinci/internal/config"
	"mavinci/internal/database"
	"mavinci/internal/domain/notification"
)

// Deletes read notifications older than the retention window once and
// exits. Meant for cron when the API runs with NOTIFICATION_CLEANUP=false.
func main() {
	days := flag.Int("days", notification.DefaultCleanupConfig().RetentionDays, "keep read notifications for this many days")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	n, err := notification.NewCleanupService(notification.NewRepository(db)).CleanupRead(context.Background(), *days)
	if err != nil {
		log.Fatalf("cleanup failed: %v", err)
	}
	log.Printf("notification cleanup completed: deleted=%d days=%d", n, *days)
}
