package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lunaxcode_site_backend/internal/catalog"
	"lunaxcode_site_backend/platform/events"
	apphttp "lunaxcode_site_backend/internal/http"
	"lunaxcode_site_backend/internal/http/router"
	"lunaxcode_site_backend/internal/leadapi"
	"lunaxcode_site_backend/internal/leads"
	"lunaxcode_site_backend/internal/notification"
	"lunaxcode_site_backend/platform/config"
	"lunaxcode_site_backend/platform/kvstore"
	"lunaxcode_site_backend/platform/logger"
	"lunaxcode_site_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Durable store for fallback lead persistence. A failure to open the
	// database must not prevent the site from serving; leads fall back to
	// an in-memory store for the life of the process.
	var store kvstore.Store
	sqlStore, err := kvstore.OpenSQLite(cfg.StorePath)
	if err != nil {
		log.Error("failed to open fallback store, using in-memory store", "error", err, "path", cfg.StorePath)
		store = kvstore.NewMemoryStore()
	} else {
		defer func() { _ = sqlStore.Close() }()
		store = sqlStore
		log.Info("fallback store opened", "path", cfg.StorePath)
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	apiClient := leadapi.New(cfg, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.NewModule(cfg, log)
	notificationModule.Subscribe(eventBus)

	catalogModule := catalog.NewModule(apiClient, cfg, log)
	leadsModule := leads.NewModule(apiClient, catalogModule.Service, store, eventBus, val, log)

	// Warm the catalog caches so the first page render is served instantly
	// even when the remote API is slow.
	go func() {
		warmCtx, cancel := context.WithTimeout(ctx, cfg.LeadAPITimeout)
		defer cancel()
		catalogModule.Service.Prefetch(warmCtx)
	}()

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Modules: []apphttp.Module{
			catalogModule,
			leadsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		done := make(chan struct{})
		go func() {
			// Let in-flight notification handlers finish.
			eventBus.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(10 * time.Second):
			log.Warn("shutdown timed out waiting for event handlers")
		}
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
