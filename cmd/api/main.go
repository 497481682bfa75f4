package main

import (
	"context"
	"log"
	"time"

	"matson-tracker/internal/core/cache"
	"matson-tracker/internal/core/config"
	"matson-tracker/internal/core/logger"
	"matson-tracker/internal/core/proxy"
	"matson-tracker/internal/core/server"
	statusadapters "matson-tracker/internal/features/status/adapters"
	statushandler "matson-tracker/internal/features/status/handler"
	statusservice "matson-tracker/internal/features/status/service"

	"go.uber.org/zap"
)

// timeZone is the fixed reference zone for the daily-digest rule, regardless
// of host locale.
const timeZone = "Pacific/Honolulu"

// @title Matson Tracker API
// @version 1.0
// @description This API serves the last known shipment status for a tracked Matson booking.
// @contact.name API Support
// @contact.email support@matsontracker.com
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.String("booking_number", cfg.Tracking.BookingNumber),
	)

	location, err := time.LoadLocation(timeZone)
	if err != nil {
		l.Fatal("Failed to load time zone", zap.String("zone", timeZone), zap.Error(err))
	}

	// Initialize cache and verify connectivity
	redisCache, err := cache.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		l.Fatal("Failed to create Redis adapter", zap.Error(err))
	}
	defer redisCache.Close()

	ctx := context.Background()
	if err := redisCache.Ping(ctx); err != nil {
		l.Fatal("Redis health check failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Initialize adapters
	proxySettings := proxy.Settings{
		Enabled:  cfg.Proxy.Enabled,
		Hostname: cfg.Proxy.Hostname,
		Port:     cfg.Proxy.Port,
		Username: cfg.Proxy.Username,
		Password: cfg.Proxy.Password,
	}
	fetcher := statusadapters.NewMatsonAdapter(cfg.Tracking, proxySettings)
	notifier := statusadapters.NewSMTPNotifier(cfg.Email, cfg.Tracking)
	repo := statusadapters.NewRedisStatusRepository(redisCache)

	// Initialize service, poller and handler
	statusSvc := statusservice.NewStatusService(fetcher, notifier, repo, location)
	statusHdl := statushandler.NewStatusHandler(statusSvc)

	interval := time.Duration(cfg.Tracking.CheckIntervalSeconds) * time.Second
	poller := statusservice.NewPoller(statusSvc, interval, location)
	if err := poller.Start(ctx); err != nil {
		l.Fatal("Failed to start poller", zap.Error(err))
	}
	defer poller.Stop()

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/", statusHdl.HealthCheck)
	srv.App.Get("/status", statusHdl.GetStatus)
	srv.App.Post("/poll", statusHdl.TriggerPoll)
	srv.App.Post("/notify/status", statusHdl.TriggerCurrentStatus)
	srv.App.Post("/notify/test", statusHdl.TriggerTest)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
