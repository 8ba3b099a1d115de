package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"fleetbook/internal/statusrefresh"
	"fleetbook/pkg/config"
	"fleetbook/pkg/db"
	"fleetbook/pkg/logging"
)

func main() {
	interval := flag.Duration("interval", 0, "run continuously at this interval (0 = run once and exit)")
	flag.Parse()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	defer conn.Close()

	refresher := &statusrefresh.Refresher{DB: conn, Log: log}

	if *interval <= 0 {
		if err := refresher.Run(ctx); err != nil {
			log.Fatal("status refresh", zap.Error(err))
		}
		return
	}

	log.Info("status refresher running", zap.Duration("interval", *interval))
	refresher.RunEvery(ctx, *interval)
}
