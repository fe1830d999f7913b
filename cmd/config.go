package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/inovacc/odoocli/internal/config"
	"github.com/spf13/cobra"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Write the default settings to the config file: --config when given,
otherwise config.yaml in the application directory. An existing file is
only replaced with --force.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Long:  `Show the settings after defaults, the config file and ODOOCLI_* environment variables are merged.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing config file")
}

// writeDefaultConfig writes the default settings to path (or the default
// config file when empty) and returns the path written.
func writeDefaultConfig(path string, force bool) (string, error) {
	if path == "" {
		p, err := config.DefaultFile()
		if err != nil {
			return "", err
		}

		path = p
	}

	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("config file %s already exists (use --force to replace it)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("check config file: %w", err)
	}

	if err := config.Save(path, config.Default()); err != nil {
		return "", err
	}

	return path, nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	path, err := writeDefaultConfig(cfgFile, configForce)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Wrote %s\n", path)

	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(cfg)
	}

	timeout := "none"
	if cfg.HTTP.Timeout > 0 {
		timeout = cfg.HTTP.Timeout.String()
	}

	w := newTable("KEY", "VALUE")
	_, _ = fmt.Fprintf(w, "log.level\t%s\n", cfg.Log.Level)
	_, _ = fmt.Fprintf(w, "log.format\t%s\n", cfg.Log.Format)
	_, _ = fmt.Fprintf(w, "storage.backend\t%s\n", cfg.Storage.Backend)
	_, _ = fmt.Fprintf(w, "storage.path\t%s\n", orDash(cfg.Storage.Path))
	_, _ = fmt.Fprintf(w, "http.timeout\t%s\n", timeout)
	_, _ = fmt.Fprintf(w, "secrets.mode\t%s\n", cfg.Secrets.Mode)

	return flushTable(w)
}
