// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ffbrank CLI, which scrapes
// fantasy football expert lists and rankings from FantasyPros into CSV files.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ffbrank/internal/httputil"
	"github.com/pdiddy/ffbrank/internal/secrets"
	"github.com/pdiddy/ffbrank/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds credentials loaded from .secrets/ at startup.
	loadedSecrets map[string]string

	// cfg and logger are resolved in PersistentPreRunE from config, env,
	// and flags.
	cfg    types.ScraperConfig
	logger *slog.Logger
)

// secretDefault returns fallback when set, otherwise the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the ffbrank CLI.
var rootCmd = &cobra.Command{
	Use:   "ffbrank",
	Short: "Scrape fantasy football expert rankings from FantasyPros",
	Long: `ffbrank scrapes fantasy football rankings from FantasyPros experts and
writes them to CSV files organized by year and week.

Run "experts" first: it discovers the experts offering rankings and keeps a
master expert list under experts/. "rankings" then downloads every listed
expert's rankings into rankings/.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		color := isTerminal(os.Stderr) && os.Getenv("NO_COLOR") == ""
		logger = newLogger(os.Stderr, cfg.Verbose, color).With("run_id", uuid.NewString())

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", "keys", keys)
		}
		cfg.HTTP.APIKey = secretDefault(secrets.FantasyProsAPIKey, cfg.HTTP.APIKey)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./ffbrank.yaml or ~/.config/ffbrank/ffbrank.yaml)")
	flags.String("base-dir", ".", "base directory for experts/ and rankings/")
	flags.BoolP("verbose", "v", false, "log every file written")

	viper.BindPFlag("base_dir", flags.Lookup("base-dir"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))

	viper.SetDefault("base_dir", ".")
	viper.SetDefault("verbose", false)
	viper.SetDefault("http.timeout", httputil.DefaultTimeout)
	viper.SetDefault("http.user_agent", httputil.DefaultUserAgent)
	viper.SetDefault("http.request_delay", httputil.DefaultRequestDelay)
	viper.SetDefault("http.api_key", "")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ffbrank")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ffbrank"))
		}
	}

	viper.SetEnvPrefix("FFBRANK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger returns a tint logger on w; verbose enables debug output.
func newLogger(w io.Writer, verbose, color bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
		NoColor:    !color,
	}))
}

// isTerminal reports whether f is a character device.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// newClient builds the HTTP client from the resolved configuration.
func newClient() *httputil.Client {
	return httputil.NewClient(cfg.HTTP)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
