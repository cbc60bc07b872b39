package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/ternovka/medbell/internal/api"
	"github.com/ternovka/medbell/internal/db"
	"github.com/ternovka/medbell/internal/services"
)

func main() {
	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey := getEnv("SECRET_KEY", "change_me_in_production")
	dbPath := getEnv("DB_PATH", filepath.Join("data", "medbell.db"))
	port := getEnv("PORT", "8080")
	pollInterval := parseDuration(getEnv("ALERT_POLL_INTERVAL", "30s"))

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	handler := api.NewHandler(database, secretKey, location, services.SystemClock{})

	app := fiber.New(fiber.Config{
		AppName:               "Medbell",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	go runDispatcherTicks(lifecycleCtx, handler.Dispatcher(), pollInterval, location)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Medbell listening on http://0.0.0.0:%s (db: %s, tz: %s, poll: %s)", port, dbPath, location.String(), pollInterval)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// runDispatcherTicks owns the alert cadence so the dispatcher itself stays
// timer-free. It stops cleanly with the lifecycle context; no tick fires
// after cancellation.
func runDispatcherTicks(ctx context.Context, dispatcher *services.Dispatcher, interval time.Duration, location *time.Location) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case tickTime := <-ticker.C:
			dispatcher.Tick(tickTime.In(location))
		}
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func parseDuration(raw string) time.Duration {
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		log.Printf("invalid poll interval %q, falling back to 30s", raw)
		return 30 * time.Second
	}
	return parsed
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
