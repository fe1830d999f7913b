package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/inovacc/odoocli/internal/application"
	"github.com/inovacc/odoocli/internal/config"
	"github.com/inovacc/odoocli/internal/core"
	"github.com/inovacc/odoocli/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	outputFmt = outputTable
	logLevel  string

	appOnce sync.Once
	appInst *core.App
	errApp  error
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Command-line client for Odoo",
	Long: `odoocli talks to an Odoo server over the JSON-2 API.

It keeps one logged-in session, three connection profiles and offers a tab
for each area of the sales workflow: partners, inventory, sales, collections
and deliveries. Run it without a command to open the interactive menu.

Examples:
  odoocli login --url https://erp.example.com --database prod --username ana
  odoocli partners
  odoocli sales quote --partner 7 --line 5:2:12.5
  odoocli call res.partner search_read --fields name,email --limit 5`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: config.yaml in the application directory)")
	rootCmd.PersistentFlags().VarP(&outputFmt, "output", "o", "Output format: table or json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")
}

// Execute runs the root command. Errors are printed to stderr and exit with 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if appInst != nil {
		_ = appInst.Close()
	}

	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// getApp loads configuration and opens the application state once per process.
func getApp() (*core.App, error) {
	appOnce.Do(func() {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			errApp = err
			return
		}

		if logLevel != "" {
			cfg.Log.Level = logLevel
		}

		logger := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

		appInst, errApp = core.NewApp(core.Options{Config: cfg, Logger: logger})
	})

	return appInst, errApp
}
