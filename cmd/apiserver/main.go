package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	giftapp "github.com/wishwell/wishwell/internal/application/gift"
	"github.com/wishwell/wishwell/internal/config"
	"github.com/wishwell/wishwell/internal/infrastructure/database/mongo"
	"github.com/wishwell/wishwell/internal/infrastructure/database/redis"
	"github.com/wishwell/wishwell/internal/infrastructure/monitoring/logging"
	"github.com/wishwell/wishwell/internal/infrastructure/monitoring/prometheus"
	"github.com/wishwell/wishwell/internal/infrastructure/textgen"
	httpiface "github.com/wishwell/wishwell/internal/interfaces/http"
	"github.com/wishwell/wishwell/internal/interfaces/http/handlers"
	"github.com/wishwell/wishwell/internal/interfaces/http/middleware"
)

func main() {
	configFile := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configFile); err != nil {
		fmt.Fprintln(os.Stderr, "apiserver:", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
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

	cache, err := redis.NewClient(connectCtx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	metrics := prometheus.NewMetrics()

	// Admission control shares Redis across replicas; the document store
	// remains the fallback used by the CLI tooling.
	limitStore := redis.NewRateLimitStore(cache, cfg.Gift.RateLimitWindow)
	limiter := giftapp.NewLimiter(limitStore, cfg.Gift.RateLimitMax, cfg.Gift.RateLimitWindow)
	giftService := giftapp.NewService(limiter, textgen.NewClient(cfg.TextGen), metrics.Gift(), logger, cfg.Gift.DefaultCountry)

	router := httpiface.NewRouter(httpiface.RouterConfig{
		GiftHandler: handlers.NewGiftHandler(giftService),
		HealthHandler: handlers.NewHealthHandler(map[string]handlers.Pinger{
			"mongo": db,
			"redis": cache,
		}),
		AuthMiddleware:    middleware.NewAuthMiddleware(cfg.Auth.Tokens, logger),
		CORSMiddleware:    middleware.NewCORSMiddleware(nil),
		LoggingMiddleware: middleware.NewLoggingMiddleware(logger),
		RateLimitMiddleware: middleware.NewRateLimitMiddleware(middleware.RateLimitConfig{
			RequestsPerSecond: 10,
			BurstSize:         20,
		}),
		MetricsHandler: metrics.Handler(),
	})

	server := httpiface.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	return server.Stop(context.Background())
}
