package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wordmap/wordmap/internal/app"
	"github.com/wordmap/wordmap/internal/conceptgraph"
	"github.com/wordmap/wordmap/internal/handoff"
	"github.com/wordmap/wordmap/internal/screens/deps"
	"github.com/wordmap/wordmap/internal/store"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logger.Sync()

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	dp := &deps.Deps{
		API:    client,
		Caps:   cfg.Capabilities,
		Logger: logger,
	}
	if path, _ := cmd.Flags().GetString("graph"); path != "" {
		g, err := conceptgraph.LoadFile(path)
		if err != nil {
			return err
		}
		dp.Graph = g
		logger.Info("using local graph", zap.String("path", path), zap.Int("words", g.Len()))
	}

	// Quiz history is optional; the TUI runs without it.
	dbPath, err := resolveDBPath(cfg)
	if err == nil {
		var st *store.Store
		st, err = store.Open(dbPath)
		if err == nil {
			defer st.Close()
			dp.Results = st.QuizResults()
		}
	}
	if err != nil {
		logger.Warn("quiz history unavailable", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Quiz history unavailable:", err)
	}

	opts := app.Options{Deps: dp}
	if path, _ := cmd.Flags().GetString("handoff"); path != "" {
		ch, err := loadHandoff(path)
		if err != nil {
			return err
		}
		opts.Handoff = ch
	}

	logger.Info("starting", zap.String("api", client.BaseURL()), zap.String("version", resolvedVersion()))
	return app.Run(opts)
}

// loadHandoff reads a legacy key/value file. Unreadable blobs are ignored
// and the TUI opens on the home screen.
func loadHandoff(path string) (*handoff.Channel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read handoff: %w", err)
	}
	ch := &handoff.Channel{}
	if p, ok := handoff.DecodeStore(raw); ok {
		ch.Put(p)
	}
	return ch, nil
}
