package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/weightboard/internal/clierr"
	"github.com/twiced-technology-gmbh/weightboard/internal/config"
	"github.com/twiced-technology-gmbh/weightboard/internal/filelock"
	"github.com/twiced-technology-gmbh/weightboard/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify configuration",
	Long:  `View the full configuration, get a specific key, or set a writable value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get func(*config.Config) any
	set func(*config.Config, string) error // nil for read-only keys
}

func stringSetter(field func(*config.Config) *string) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		*field(c) = v
		return nil
	}
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"api.base_url": {
			get: func(c *config.Config) any { return c.API.BaseURL },
			set: func(c *config.Config, v string) error {
				if err := config.ValidateBaseURL(v); err != nil {
					return clierr.Newf(clierr.InvalidURL, "invalid api.base_url %q: %v", v, err)
				}
				c.API.BaseURL = v
				return nil
			},
		},
		"api.path": {
			get: func(c *config.Config) any { return c.APIPath() },
			set: stringSetter(func(c *config.Config) *string { return &c.API.Path }),
		},
		"log_file": {
			get: func(c *config.Config) any { return c.LogPath() },
			set: stringSetter(func(c *config.Config) *string { return &c.LogFile }),
		},
		"tui.refresh_interval": {
			get: func(c *config.Config) any { return c.RefreshInterval().String() },
			set: func(c *config.Config, v string) error {
				if _, err := time.ParseDuration(v); err != nil {
					return clierr.Newf(clierr.InvalidInput,
						"invalid tui.refresh_interval %q: %v", v, err)
				}
				c.TUI.RefreshInterval = v
				return nil // validation handles range check
			},
		},
		"tui.date_colors.today": {
			get: func(c *config.Config) any { return c.DateColor("today") },
			set: stringSetter(func(c *config.Config) *string { return &c.TUI.DateColors.Today }),
		},
		"tui.date_colors.tomorrow": {
			get: func(c *config.Config) any { return c.DateColor("tomorrow") },
			set: stringSetter(func(c *config.Config) *string { return &c.TUI.DateColors.Tomorrow }),
		},
		"tui.date_colors.week": {
			get: func(c *config.Config) any { return c.DateColor("week") },
			set: stringSetter(func(c *config.Config) *string { return &c.TUI.DateColors.Week }),
		},
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"api.base_url",
		"api.path",
		"log_file",
		"tui.refresh_interval",
		"tui.date_colors.today",
		"tui.date_colors.tomorrow",
		"tui.date_colors.week",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	for _, key := range allConfigKeys() {
		fmt.Fprintf(os.Stdout, "%-26s %v\n", key, accessors[key].get(cfg))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key := args[0]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}

	val := acc.get(cfg)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}

	fmt.Fprintln(os.Stdout, val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}
	if acc.set == nil {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Re-read under the lock so concurrent writers don't drop each other's keys.
	err = filelock.Do(cmd.Context(), cfg.ConfigPath(), func() error {
		fresh, err := config.Load(cfg.Dir())
		if err != nil {
			return err
		}
		if err := acc.set(fresh, value); err != nil {
			return err
		}
		if err := fresh.Validate(); err != nil {
			return err
		}
		if err := fresh.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		cfg = fresh
		return nil
	})
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}

	output.Messagef(os.Stdout, "Set %s = %v", key, acc.get(cfg))
	return nil
}
