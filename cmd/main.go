package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/hh-sync/internal/clients/hh"
	"github.com/maxaizer/hh-sync/internal/config"
	"github.com/maxaizer/hh-sync/internal/events"
	"github.com/maxaizer/hh-sync/internal/logger"
	"github.com/maxaizer/hh-sync/internal/menu"
	"github.com/maxaizer/hh-sync/internal/metrics"
	"github.com/maxaizer/hh-sync/internal/repositories"
	"github.com/maxaizer/hh-sync/internal/services"
	log "github.com/sirupsen/logrus"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	modeInteractive = "interactive"
	modeSync        = "sync"
	modeMenu        = "menu"
	modeServe       = "serve"
)

func newPipeline(cfg *config.Config, dbContext *repositories.DbContext, bus EventBus.Bus,
	cacheTTL time.Duration) (*services.Pipeline, error) {

	hhClient := hh.NewClient()
	hhClient.SetHTTPClient(&http.Client{Timeout: cfg.HH.Timeout})
	hhClient.SetBaseURL(cfg.HH.BaseURL)
	hhClient.SetUserAgent(cfg.HH.UserAgent)
	hhClient.SetToken(cfg.HH.Token)
	hhClient.SetRateLimit(cfg.HH.MaxRequestsPerSecond)

	var collector *services.Collector
	source := services.NewHHSource(hhClient, cfg.HH.PerPage)
	if cacheTTL > 0 {
		collector = services.NewCollector(services.NewCachedSource(source, cacheTTL))
	} else {
		collector = services.NewCollector(source)
	}

	synchronizer, err := services.NewSynchronizer(repositories.NewSyncStore(dbContext.DB), services.NewNormalizer(), bus)
	if err != nil {
		return nil, fmt.Errorf("can't create synchronizer: %w", err)
	}

	pipeline, err := services.NewPipeline(collector, synchronizer, cfg.Sync.EmployerIDs)
	if err != nil {
		return nil, fmt.Errorf("can't create pipeline: %w", err)
	}
	return pipeline, nil
}

func runMenu(ctx context.Context, dbContext *repositories.DbContext) {
	queries := services.NewQueryService(repositories.NewReportsRepository(dbContext.DB))
	menu.New(queries, os.Stdin, os.Stdout).Run(ctx)
}

func runScheduler(ctx context.Context, cfg *config.Config, dbContext *repositories.DbContext, bus EventBus.Bus) error {
	scheduled, err := newPipeline(cfg, dbContext, bus, cfg.Sync.CacheTTL)
	if err != nil {
		return err
	}

	scheduler, err := services.NewSyncScheduler(ctx, scheduled, cfg.Sync.Schedule)
	if err != nil {
		return fmt.Errorf("can't create sync scheduler: %w", err)
	}
	scheduler.Start()

	<-ctx.Done()

	log.Info("Shutting down services...")
	scheduler.Stop()
	log.Info("Services stopped.")
	return nil
}

func run(ctx context.Context, mode string, cfg *config.Config) error {

	switch mode {
	case modeInteractive, modeSync, modeMenu, modeServe:
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}

	metrics.Register()
	if cfg.Metrics.Enabled || mode == modeServe {
		server := metrics.StartServer(cfg.Metrics.Address)
		defer func() { _ = server.Close() }()
	}

	bus := EventBus.New()
	if err := bus.Subscribe(events.GroupSyncedTopic, metrics.OnGroupSynced); err != nil {
		return fmt.Errorf("can't subscribe to sync events: %w", err)
	}

	reset := cfg.Sync.ResetSchema && mode != modeMenu
	dbContext, err := repositories.OpenSchema(ctx, cfg.DB, reset)
	if err != nil {
		return fmt.Errorf("can't initialize database: %w", err)
	}
	defer dbContext.Close()

	if mode != modeMenu {
		pipeline, err := newPipeline(cfg, dbContext, bus, 0)
		if err != nil {
			return err
		}
		pipeline.Run(ctx)
	}

	switch mode {
	case modeInteractive, modeMenu:
		runMenu(ctx, dbContext)
	case modeServe:
		return runScheduler(ctx, cfg, dbContext, bus)
	}
	return nil
}

func main() {

	mode := flag.String("mode", modeInteractive, "run mode: interactive, sync, menu or serve")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)

	err := run(ctx, *mode, cfg)
	if err != nil {
		log.Error(err)
	}

	logger.Cleanup()
	stop()

	if err != nil {
		os.Exit(1)
	}
}
