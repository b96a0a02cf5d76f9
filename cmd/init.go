package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/weightboard/internal/clierr"
	"github.com/twiced-technology-gmbh/weightboard/internal/config"
	"github.com/twiced-technology-gmbh/weightboard/internal/filelock"
	"github.com/twiced-technology-gmbh/weightboard/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a weightboard config",
	Long: `Creates a weightboard directory with config.yml in the current directory,
or in --dir. Commands run below that directory pick it up.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	const dirMode = 0o750
	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	cfgPath := filepath.Join(absDir, config.ConfigFileName)
	var cfg *config.Config
	err = filelock.Do(cmd.Context(), cfgPath, func() error {
		if _, err := os.Stat(cfgPath); err == nil {
			return clierr.Newf(clierr.ConfigExists, "already initialized in %s", absDir).
				WithDetails(map[string]any{"dir": absDir})
		}

		cfg = config.NewDefault()
		cfg.SetDir(absDir)
		if flagURL != "" {
			cfg.API.BaseURL = flagURL
		}
		if err := cfg.Validate(); err != nil {
			return clierr.Newf(clierr.InvalidURL, "%v", err)
		}
		return cfg.Save()
	})
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status": "initialized",
			"dir":    absDir,
			"config": cfg.ConfigPath(),
			"url":    cfg.API.BaseURL,
		})
	}

	output.Messagef(os.Stdout, "Initialized weightboard in %s", absDir)
	output.Messagef(os.Stdout, "  Config: %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Store:  %s%s", cfg.API.BaseURL, cfg.APIPath())
	return nil
}
