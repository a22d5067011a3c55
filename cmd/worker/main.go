package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/wishwell/wishwell/internal/application/reminder"
	"github.com/wishwell/wishwell/internal/config"
	"github.com/wishwell/wishwell/internal/infrastructure/database/mongo"
	"github.com/wishwell/wishwell/internal/infrastructure/messaging/fcm"
	"github.com/wishwell/wishwell/internal/infrastructure/monitoring/logging"
	"github.com/wishwell/wishwell/internal/infrastructure/monitoring/prometheus"
	httpiface "github.com/wishwell/wishwell/internal/interfaces/http"
	"github.com/wishwell/wishwell/internal/interfaces/http/handlers"
)

func main() {
	configFile := flag.String("config", "", "path to config file")
	once := flag.Bool("once", false, "run a single dispatch pass and exit")
	flag.Parse()

	if err := run(*configFile, *once); err != nil {
		fmt.Fprintln(os.Stderr, "worker:", err)
		os.Exit(1)
	}
}

func run(configFile string, once bool) error {
	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.NewLogger(logging.LogConfig(cfg.Log))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	db, err := mongo.NewClient(connectCtx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(context.Background()) }()
	stores := mongo.NewStores(db)

	sender, err := fcm.NewSender(connectCtx, cfg.FCM)
	if err != nil {
		return fmt.Errorf("init push delivery: %w", err)
	}

	metrics := prometheus.NewMetrics()
	dispatcher := reminder.NewDispatcher(stores, stores, stores, sender, metrics.Dispatch(), logger, reminder.Config{
		AccountPageSize: cfg.Dispatch.AccountPageSize,
		PersonPageSize:  cfg.Dispatch.PersonPageSize,
	})

	if once {
		_, err := dispatcher.Run(ctx)
		return err
	}

	// Probe and metrics endpoint; the worker serves no API.
	router := httpiface.NewRouter(httpiface.RouterConfig{
		HealthHandler:  handlers.NewHealthHandler(map[string]handlers.Pinger{"mongo": db}),
		MetricsHandler: metrics.Handler(),
	})
	server := httpiface.NewServer(cfg.Server, router, logger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("probe server failed", logging.Err(err))
		}
	}()

	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Dispatch.Schedule, func() {
		if _, err := dispatcher.Run(ctx); err != nil {
			logger.Error("scheduled dispatch failed", logging.Err(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", cfg.Dispatch.Schedule, err)
	}
	scheduler.Start()
	logger.Info("worker started", logging.String("schedule", cfg.Dispatch.Schedule))

	<-ctx.Done()
	<-scheduler.Stop().Done()
	return server.Stop(context.Background())
}
