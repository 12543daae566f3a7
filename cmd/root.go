package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wordmap/wordmap/internal/api"
	"github.com/wordmap/wordmap/internal/config"
	"github.com/wordmap/wordmap/internal/logging"
	"github.com/wordmap/wordmap/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "wordmap",
	Short: "Study vocabulary from a concept map",
	Long:  "wordmap: terminal flashcards and quizzes over a graph of related words.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/wordmap/config.yaml)")
	rootCmd.PersistentFlags().String("api", "", "Base URL of the word service (overrides WORDMAP_API_URL)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WORDMAP_DB env var)")
	rootCmd.PersistentFlags().Bool("debug", false, "Verbose development logging")
	rootCmd.Flags().String("graph", "", "Read the concept map from a local JSON file instead of the word service")
	rootCmd.Flags().String("handoff", "", "Open a deck saved by an older front end (JSON key/value file)")

	rootCmd.AddCommand(decksCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file, then the environment, then flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	if u, _ := cmd.Flags().GetString("api"); u != "" {
		cfg.APIURL = u
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// newLogger opens the log file named by cfg, or the default state path.
func newLogger(cmd *cobra.Command, cfg config.Config) (*zap.Logger, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	path := cfg.Log.Path
	if path == "" {
		p, err := logging.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return logging.New(logging.Options{Path: path, Level: cfg.Log.Level, Debug: debug})
}

func newClient(cfg config.Config, logger *zap.Logger) (*api.Client, error) {
	return api.New(cfg.APIURL, api.WithTimeout(cfg.Timeout), api.WithLogger(logger))
}

// resolveDBPath returns the configured database path, then the default
// XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
