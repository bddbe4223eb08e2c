package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mzyy94/spoolsniff/internal/intake"
	"github.com/mzyy94/spoolsniff/internal/spool"
)

// Config is the process configuration resolved from flags, environment
// (SPOOLSNIFF_*) and the optional config file.
type Config struct {
	ListenPort int
	RawPort    int
	DataDir    string
	HotFolder  string
	NATSURL    string
	LogLevel   string
	DeviceName string
	MaxJobSize int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "spoolsniff:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "spoolsniff",
		Short:         "Classify and spool AFP, SCS and plain text print jobs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(v); err != nil {
				return err
			}
			setupLogging(v.GetString("log_level"))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (yaml, json or toml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.Int("max-job-size", spool.DefaultMaxJobSize, "largest accepted job in bytes")
	v.BindPFlag("config", pf.Lookup("config"))
	v.BindPFlag("log_level", pf.Lookup("log-level"))
	v.BindPFlag("max_job_size", pf.Lookup("max-job-size"))

	root.AddCommand(newServeCmd(v), newClassifyCmd(v), newCommandsCmd())
	return root
}

func initConfig(v *viper.Viper) error {
	v.SetEnvPrefix("SPOOLSNIFF")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", file, err)
		}
	}
	return nil
}

func loadConfig(v *viper.Viper) Config {
	cfg := Config{
		ListenPort: v.GetInt("listen_port"),
		RawPort:    v.GetInt("raw_port"),
		DataDir:    v.GetString("data_dir"),
		HotFolder:  v.GetString("hot_folder"),
		NATSURL:    v.GetString("nats_url"),
		LogLevel:   v.GetString("log_level"),
		DeviceName: v.GetString("device_name"),
		MaxJobSize: v.GetInt("max_job_size"),
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	if cfg.DeviceName == "" {
		cfg.DeviceName = intake.DefaultDeviceName()
	}
	return cfg
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "spoolsniff")
	}
	return "spoolsniff-data"
}

func setupLogging(level string) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(level)})))
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
