// Package cmd implements the weightboard CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/weightboard/internal/api"
	"github.com/twiced-technology-gmbh/weightboard/internal/clierr"
	"github.com/twiced-technology-gmbh/weightboard/internal/config"
	"github.com/twiced-technology-gmbh/weightboard/internal/dashboard"
	"github.com/twiced-technology-gmbh/weightboard/internal/output"
	"github.com/twiced-technology-gmbh/weightboard/internal/render"
	"github.com/twiced-technology-gmbh/weightboard/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagURL     string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "weightboard",
	Short: "Weighted task progress dashboard",
	Long: `weightboard tracks tasks with weights against a remote task store and
shows how much of the total weight is done. Run weightboard to open the TUI.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to weightboard config directory")
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "task store base URL (overrides config and "+config.EnvBaseURL+")")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv(output.EnvOutput) == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// defaultHomeDir returns the path to ~/.config/weightboard.
func defaultHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", config.DefaultDir), nil
}

// resolveDir returns the config directory: --dir, then the nearest
// weightboard/ directory above the working directory, then
// ~/.config/weightboard.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	dir, err := config.FindDir(cwd)
	if err == nil {
		return dir, nil
	}

	return defaultHomeDir()
}

// loadConfig finds and loads the config. The home default is created on
// first use.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err == nil {
		return cfg, nil
	}

	if !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}
	homeDir, homeErr := defaultHomeDir()
	if homeErr != nil || dir != homeDir {
		return nil, clierr.New(clierr.ConfigNotFound, err.Error()).
			WithDetails(map[string]any{"dir": dir})
	}

	return config.Init(homeDir)
}

// baseURL picks the store address: --url, then the environment, then config.
func baseURL(cfg *config.Config) string {
	if flagURL != "" {
		return flagURL
	}
	if env := os.Getenv(config.EnvBaseURL); env != "" {
		return env
	}
	return cfg.API.BaseURL
}

// newClient connects to the store named by cfg and the overrides.
func newClient(cfg *config.Config) (*api.Client, error) {
	u := baseURL(cfg)
	c, err := api.New(u, cfg.APIPath())
	if err != nil {
		return nil, clierr.Newf(clierr.InvalidURL, "invalid task store URL %q: %v", u, err).
			WithDetails(map[string]any{"url": u})
	}
	return c, nil
}

// newLogger returns the CLI logger. Fetch failures surface as warnings on
// stderr.
func newLogger() *log.Logger {
	return log.New(os.Stderr, "Warning: ", 0)
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// newPrinter paints snapshots to stdout in the selected format.
func newPrinter(cfg *config.Config) *output.Printer {
	return &output.Printer{
		W:      os.Stdout,
		Format: outputFormat(),
		Pill:   func(c render.DateClass) string { return cfg.DateColor(string(c)) },
		Now:    time.Now,
	}
}

// conn bundles what every store-backed command needs.
type conn struct {
	cfg     *config.Config
	client  *api.Client
	loop    *dashboard.Loop
	ctx     context.Context
	cancel  context.CancelFunc
	printer *output.Printer
}

// connect loads config, connects and wires a loop that prints to stdout.
func connect(cmd *cobra.Command) (*conn, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}

	const requestTimeout = 30 * time.Second
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)

	return newConn(ctx, cancel, cfg, client, newPrinter(cfg), newLogger()), nil
}

func newConn(ctx context.Context, cancel context.CancelFunc, cfg *config.Config,
	client *api.Client, printer *output.Printer, logger *log.Logger,
) *conn {
	return &conn{
		cfg:     cfg,
		client:  client,
		loop:    dashboard.New(client, printer, logger),
		ctx:     ctx,
		cancel:  cancel,
		printer: printer,
	}
}

// done releases the connection. A failed refetch has already been logged
// and leaves stdout empty; it does not change the exit status.
func (c *conn) done() error {
	c.cancel()
	return nil
}

// snapshot fetches the current state without painting it.
func (c *conn) snapshot() (task.Snapshot, error) {
	s, err := c.client.Tasks(c.ctx)
	if err != nil {
		return task.Snapshot{}, clierr.Newf(clierr.StoreUnavailable, "fetching tasks: %v", err)
	}
	return s, nil
}
