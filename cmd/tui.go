package cmd

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/weightboard/internal/config"
	"github.com/twiced-technology-gmbh/weightboard/internal/dashboard"
	"github.com/twiced-technology-gmbh/weightboard/internal/tui"
	"github.com/twiced-technology-gmbh/weightboard/internal/watcher"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	// The alternate screen owns stdout; log to a file instead.
	f, err := tea.LogToFile(cfg.LogPath(), "weightboard ")
	if err != nil {
		return err
	}
	defer f.Close()
	logger := log.Default()

	model := tui.New(tui.Options{
		Config: cfg,
		Store:  client,
		Connect: func(c *config.Config) (dashboard.Store, error) {
			next, err := newClient(c)
			if err != nil {
				return nil, err
			}
			return next, nil
		},
		Logger: logger,
		Now:    time.Now,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go startConfigWatcher(ctx, cfg.ConfigPath(), p, logger)

	_, err = p.Run()
	return err
}

// startConfigWatcher sends a ReloadMsg whenever the config file changes.
func startConfigWatcher(ctx context.Context, path string, p *tea.Program, logger *log.Logger) {
	w, err := watcher.New(path, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		logger.Printf("config watch disabled: %v", err)
		return // non-fatal: TUI works without live reload
	}
	defer w.Close()
	w.Run(ctx, func(err error) { logger.Printf("config watch: %v", err) })
}
