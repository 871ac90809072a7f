package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/tabletalk/tabletalk/internal/chat"
	cfgpkg "github.com/tabletalk/tabletalk/internal/config"
	"github.com/tabletalk/tabletalk/internal/gemini"
	"github.com/tabletalk/tabletalk/internal/prompt"
)

var (
	// Global flags (wired later to config/viper)
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global

	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tabletalk",
	Short: "TableTalk: ask questions about tabular data in plain language",
	Long:  `TableTalk loads a comma-separated data file and answers questions about it through an AI analysis service, returning a text answer and an optional SVG chart.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(initLogger, loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tabletalk/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func initLogger() {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

func loadConfig() {
	// A .env in the working directory is a convenience for local use;
	// absence is not an error.
	_ = godotenv.Load()

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// newSession wires a session from the effective configuration.
func newSession() (*chat.Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no configuration loaded")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key configured (set TABLETALK_API_KEY or run: tabletalk config set api_key <key>)")
	}
	client := gemini.NewClientWithBaseURL(cfg.APIKey, cfg.Model, time.Duration(cfg.HTTPTimeoutSec)*time.Second, cfg.Endpoint)
	builder := prompt.NewBuilder(cfg.SampleRows, cfg.Temperature, cfg.MaxOutputTokens)
	return chat.NewSession(client, builder, logger), nil
}
