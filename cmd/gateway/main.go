package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/liptlabs/lipt-gateway/pkg/app/api"
	apphttp "github.com/liptlabs/lipt-gateway/pkg/app/http"
	"github.com/liptlabs/lipt-gateway/pkg/config"
	"github.com/liptlabs/lipt-gateway/pkg/ethereum"
	"github.com/liptlabs/lipt-gateway/pkg/eventstore"
	"github.com/liptlabs/lipt-gateway/pkg/pgutil"
	"github.com/liptlabs/lipt-gateway/pkg/protocol"
	"github.com/liptlabs/lipt-gateway/pkg/watcher"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("Starting LIPT gateway",
		zap.String("config", *configPath),
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := ethereum.NewClient(ctx, cfg.Ethereum, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Ethereum node", zap.Error(err))
	}
	defer client.Close()
	logger.Info("Connected to Ethereum node",
		zap.String("rpc_url", cfg.Ethereum.RPCURL),
		zap.Int64("chain_id", cfg.Ethereum.ChainID))

	proto := protocol.New(ctx, client, cfg.Ethereum.Contracts, logger)

	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("Connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database))

	store := eventstore.NewStore(db)

	w, err := watcher.New(client, store, cfg.Ethereum.Contracts, logger, watcher.Options{
		PollingInterval: cfg.Ethereum.PollingInterval,
		StartBlock:      uint64(cfg.Ethereum.StartBlock),
	})
	if err != nil {
		logger.Fatal("Failed to create event watcher", zap.Error(err))
	}

	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Event watcher stopped", zap.Error(err))
		}
	}()

	handler := api.NewHandler(proto, store, logger)
	if err := apphttp.ServeAndWait(ctx, handler.Router(cfg.Monitoring.Enabled), logger, &cfg.Server); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Gateway stopped")
}
