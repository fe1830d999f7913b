package cmd

import (
	"fmt"
	"os"

	"github.com/inovacc/odoocli/internal/cli"
	"github.com/inovacc/odoocli/internal/core"
	"github.com/inovacc/odoocli/internal/security"
	"github.com/spf13/cobra"
)

var (
	doctorScan    bool
	doctorScanDir string
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check local state",
	Long: `Check the local state store, the stored session and how its API key is
sealed, then scan the data directory with the gitleaks rules for credentials
written in clear.

Examples:
  odoocli doctor
  odoocli doctor --scan=false
  odoocli doctor --scan-dir ~/backups/odoocli`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVar(&doctorScan, "scan", true, "Scan the data directory for secrets")
	doctorCmd.Flags().StringVar(&doctorScanDir, "scan-dir", "", "Directory to scan (default: the state store's directory)")
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	report, err := app.Doctor(cmd.Context(), core.DoctorOptions{Scan: doctorScan, ScanDir: doctorScanDir})
	if err != nil {
		return err
	}

	if jsonOutput() {
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		for _, c := range report.Checks {
			line := fmt.Sprintf("%-10s %s", c.Name, c.Detail)
			if c.OK {
				_, _ = fmt.Fprintln(os.Stdout, cli.OK(line))
			} else {
				_, _ = fmt.Fprintln(os.Stdout, cli.Fail(line))
			}
		}

		_, _ = fmt.Fprint(os.Stdout, security.FormatFindings(report.Findings))
	}

	if !report.Healthy() {
		return fmt.Errorf("doctor found problems")
	}

	return nil
}
