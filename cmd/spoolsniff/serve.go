package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mzyy94/spoolsniff/internal/api"
	"github.com/mzyy94/spoolsniff/internal/config"
	"github.com/mzyy94/spoolsniff/internal/intake"
	"github.com/mzyy94/spoolsniff/internal/spool"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept print jobs on the raw port, hot folder and HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return runServe(ctx, loadConfig(v))
		},
	}

	f := cmd.Flags()
	f.Int("listen-port", 8080, "HTTP API port")
	f.Int("raw-port", intake.DefaultRawPort, "raw print port (0 disables)")
	f.String("data-dir", "", "settings and output directory")
	f.String("hot-folder", "", "directory watched for dropped jobs")
	f.String("nats-url", "", "NATS server for job events")
	f.String("device-name", "", "name announced via mDNS")
	for _, name := range []string{"listen-port", "raw-port", "data-dir", "hot-folder", "nats-url", "device-name"} {
		v.BindPFlag(strings.ReplaceAll(name, "-", "_"), f.Lookup(name))
	}
	return cmd
}

func runServe(ctx context.Context, cfg Config) error {
	slog.Info("starting spoolsniff", "data_dir", cfg.DataDir, "device", cfg.DeviceName)

	settings, err := config.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("settings store: %w", err)
	}

	opts := spool.Options{
		OutputDir:  filepath.Join(cfg.DataDir, "out"),
		MaxJobSize: cfg.MaxJobSize,
	}
	if cfg.NATSURL != "" {
		nc, err := spool.ConnectNATS(cfg.NATSURL)
		if err != nil {
			return err
		}
		defer nc.Drain()
		opts.Publisher = nc
		slog.Info("publishing job events", "nats", cfg.NATSURL, "subject", spool.SubjectPrefix+".>")
	}
	sp := spool.New(settings, opts)

	info := api.Info{DeviceName: cfg.DeviceName, NATS: opts.Publisher != nil}

	if cfg.RawPort > 0 {
		raw := intake.NewRawPortListener(fmt.Sprintf(":%d", cfg.RawPort), sp)
		if err := raw.Start(ctx); err != nil {
			return err
		}
		defer raw.Stop()
		info.RawPort = cfg.RawPort

		info.DeviceUUID = intake.DeviceUUID(intake.LocalIP())
		mdns, err := intake.Advertise(cfg.DeviceName, cfg.RawPort, info.DeviceUUID)
		if err != nil {
			slog.Warn("mDNS advertisement disabled", "err", err)
		} else {
			defer mdns.Shutdown()
		}
	}

	if cfg.HotFolder != "" {
		hf := intake.NewHotFolder(cfg.HotFolder, sp)
		if err := hf.Start(ctx); err != nil {
			return err
		}
		defer hf.Stop()
		info.HotFolder = cfg.HotFolder
	}

	addr := fmt.Sprintf(":%d", cfg.ListenPort)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           logMiddleware(api.NewHandler(sp, settings, info)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP API starting", "addr", addr, "url", fmt.Sprintf("http://%s/api/status", net.JoinHostPort(intake.LocalIP(), strconv.Itoa(cfg.ListenPort))))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("HTTP server: %w", err)
	}
	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP shutdown error", "err", err)
	}

	slog.Info("shutdown complete")
	return nil
}
