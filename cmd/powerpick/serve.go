package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lottolab/powerpick/internal/api"
	"github.com/lottolab/powerpick/internal/events"
	"github.com/lottolab/powerpick/internal/feed"
	"github.com/lottolab/powerpick/internal/picker"
	"github.com/lottolab/powerpick/internal/refresher"
	"github.com/lottolab/powerpick/internal/service"
	"github.com/lottolab/powerpick/internal/store"
	"github.com/lottolab/powerpick/pkg/common/logger"
)

var refreshOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with background draw refresh",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&refreshOnStart, "refresh-on-start", true, "pull new draws before accepting traffic")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Info("Config loaded", "path", configPath)

	kv, err := store.NewFromConfig(cfg.Storage)
	if err != nil {
		return err
	}
	draws := store.NewDrawStore(kv)
	defer draws.Close()

	var emitter events.Emitter
	if cfg.NATS.URL != "" {
		emitter, err = events.NewNATSEmitter(cfg.NATS)
		if err != nil {
			return err
		}
	} else {
		emitter = events.NewNoop()
	}
	defer emitter.Close()

	svc, err := service.New(draws, picker.NewCryptoSource())
	if err != nil {
		return err
	}

	client := feed.NewClient(cfg.Feed)
	defer client.Close()

	ref := refresher.New(client, draws, emitter, cfg.Refresh)
	ref.OnUpdate(func(refresher.Result) {
		if err := svc.Reload(); err != nil {
			logger.Error("Failed to rebuild frequency tables", "error", err)
		}
	})

	if refreshOnStart {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		result, err := ref.RefreshOnce(ctx)
		cancel()
		if err != nil {
			logger.Warn("Initial refresh failed, serving cached draws", "error", err)
		} else {
			logger.Info("Initial refresh complete", "fetched", result.Fetched, "added", len(result.Added))
		}
	}

	if err := ref.Start(); err != nil {
		return err
	}

	server := api.NewServer(svc, cfg.Version)
	server.Start(cfg.Server.Port)

	logger.Info("powerpick is running. Press Ctrl+C to stop.")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	ref.Stop()
	logger.Info("powerpick stopped.")
	return nil
}
