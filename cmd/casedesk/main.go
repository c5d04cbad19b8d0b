// Command casedesk runs the terminal dashboard for a local litigation
// case export.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/dmaia/casedesk/internal/app"
	"github.com/dmaia/casedesk/internal/auth"
	"github.com/dmaia/casedesk/internal/loader"
	"github.com/dmaia/casedesk/internal/model"
	"github.com/dmaia/casedesk/internal/session"
	"github.com/dmaia/casedesk/internal/source"
	"github.com/dmaia/casedesk/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "casedesk:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := model.DefaultConfigPath()
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory %s: %w", cfg.Data.Dir, err)
	}

	// The TUI owns stdout, so logs go to a file in the data directory.
	log, err := newFileLogger(cfg.LogPath())
	if err != nil {
		return err
	}
	defer log.Sync()

	st, err := store.NewSQLiteStore(cfg.DatabasePath())
	if err != nil {
		return err
	}
	defer st.Close()

	src := source.NewCSVFile(cfg.Data.CSVPath)
	sess := session.New(loader.New(src, log), st, log)
	gate := auth.NewGate(cfg.Auth.User)

	program := tea.NewProgram(
		app.New(sess, gate, cfg.Data.Dir, log),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

// newFileLogger builds a production zap logger writing to the given file.
func newFileLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return log, nil
}
