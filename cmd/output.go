package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// outputFormat is the --output flag value.
type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
)

var _ pflag.Value = (*outputFormat)(nil)

func (o *outputFormat) String() string { return string(*o) }

func (o *outputFormat) Type() string { return "format" }

func (o *outputFormat) Set(s string) error {
	switch f := outputFormat(s); f {
	case outputTable, outputJSON:
		*o = f
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", s, outputTable, outputJSON)
	}
}

func jsonOutput() bool {
	return outputFmt == outputJSON
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func newTable(header ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	for i, h := range header {
		if i > 0 {
			_, _ = fmt.Fprint(w, "\t")
		}

		_, _ = fmt.Fprint(w, h)
	}

	_, _ = fmt.Fprintln(w)

	return w
}

func flushTable(w *tabwriter.Writer) error {
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}

// printEmptyResult prints a "nothing found" line with an optional hint.
func printEmptyResult(what, hint string) {
	_, _ = fmt.Fprintf(os.Stdout, "No %s found.\n", what)

	if hint != "" {
		_, _ = fmt.Fprintln(os.Stdout, hint)
	}
}
