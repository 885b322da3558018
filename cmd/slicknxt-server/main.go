// Package main provides the SlickNXT HTTP server: flow storage, engine
// control, live node state over WebSocket, and debug endpoints.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof" // register /debug/pprof
	"os/signal"
	"syscall"

	"github.com/fairlight1337/slicknxt/internal/adapters/repository/memory"
	"github.com/fairlight1337/slicknxt/internal/adapters/repository/postgres"
	"github.com/fairlight1337/slicknxt/internal/adapters/repository/sqlite"
	"github.com/fairlight1337/slicknxt/internal/app/usecases"
	"github.com/fairlight1337/slicknxt/internal/config"
	"github.com/fairlight1337/slicknxt/internal/hardware"
	"github.com/fairlight1337/slicknxt/pkg/serialization"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	configFile := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("storage error: %v", err)
	}
	defer cleanup()

	engine := usecases.NewExecutor(cfg.Engine.TickInterval)
	defer engine.Close()

	provider := hardware.NewSimProvider()
	monitor := hardware.NewMonitor(provider, cfg.Hardware.PollInterval)
	go monitor.Run(ctx)

	srv := NewServer(engine, store, monitor)

	httpSrv := &http.Server{Addr: cfg.Server.Addr, Handler: srv.Routes()}
	go func() {
		<-ctx.Done()
		_ = httpSrv.Shutdown(context.Background())
	}()

	log.Printf("Starting SlickNXT server on %s (storage: %s)", cfg.Server.Addr, cfg.Storage.Driver)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// openStore builds the configured flow store.
func openStore(ctx context.Context, cfg *config.Config) (usecases.FlowRepository, func(), error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		store, err := sqlite.Open(ctx, cfg.Storage.Path, serialization.DefaultSerializer())
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewFlowStore(pool, serialization.DefaultSerializer())
		if err := store.CreateTables(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	default:
		return memory.NewFlowStore(), func() {}, nil
	}
}
