package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"statuspage/config"
	"statuspage/internals/app"
	"statuspage/internals/server"
	"statuspage/pkg/db"
	"statuspage/pkg/logger"
	"statuspage/pkg/metrics"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load envs
	cfg, err := config.LoadConfig(config.ResolvePath("env.yaml"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	// Done closes on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.Init(cfg)
	log.Info().Msg("logger initialized")

	if cfg.DB.RunMigrations {
		if err := db.RunMigrations(cfg.DB.URL); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		log.Info().Msg("migrations applied")
	}

	dbPool, err := db.ConnectToDB(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize db pool")
	}
	log.Info().Msg("database pool initialized")

	if err := metrics.RegisterPgxPoolMetrics(prometheus.DefaultRegisterer, dbPool); err != nil {
		log.Error().Err(err).Msg("failed to register pool metrics")
	}

	container, err := app.NewContainer(ctx, dbPool, cfg, log)
	if err != nil {
		dbPool.Close()
		log.Fatal().Err(err).Msg("failed to initialize dependencies")
	}
	log.Info().Msg("dependencies initialized")

	// background workers
	container.Dispatcher.Start()
	app.StartConsumer(ctx, container)
	if cfg.Reconciler.Enabled {
		go container.Reconciler.Run()
	}

	router := app.RegisterRoutes(container)
	log.Info().Msg("routes registered")

	servers := []*server.Server{server.New(fmt.Sprintf(":%d", cfg.Port), router, log)}
	if cfg.Metrics.Enabled {
		servers = append(servers, server.Wrap(metrics.NewServer(cfg.Metrics.Addr), log))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(srv.Run)
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutdown signal received")

		// stop accepting requests first
		var firstErr error
		for _, srv := range servers {
			if err := srv.Shutdown(context.Background()); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server error")
	}

	// buffer time to drain events and close infra
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := container.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("dependencies shutdown failed")
	}

	log.Info().Msg("graceful shutdown complete")
}
