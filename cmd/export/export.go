// Package export handles writing a ledger to CSV or XLSX
package export

import (
	"fmt"
	"path/filepath"
	"time"

	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/exchange"
	"fjacquet/fintrack/internal/search"

	"github.com/spf13/cobra"
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export <csv|xlsx>",
	Short: "Export transactions to CSV or XLSX",
	Long: `Export the transactions of the logged-in user, sorted by date. Use "-" as
output to write CSV to standard output.

Example:
  fintrack export xlsx --output ledger.xlsx`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(exchange.FormatCSV), string(exchange.FormatXLSX)},
	Run:       root.Run(runExport),
}

var output string

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default fintrack_<user>_<timestamp>.<format>)")
}

// DefaultFileName names an export when --output is not given.
func DefaultFileName(user string, format exchange.Format, at time.Time) string {
	return fmt.Sprintf("fintrack_%s_%s.%s", user, at.Format("20060102_150405"), format)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := exchange.ParseFormat(args[0])
	if err != nil {
		return err
	}
	if format == exchange.FormatOFX {
		return fmt.Errorf("OFX is an import-only format")
	}

	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	txns := search.Sort(s.Ledger().Snapshot(), search.SortDate, false)
	codec := root.AppContainer.GetCodec()
	currency := root.AppContainer.Renderer(s).Currency

	if output == "-" {
		if format != exchange.FormatCSV {
			return fmt.Errorf("only CSV can be written to standard output")
		}
		return codec.Export(cmd.OutOrStdout(), format, txns, currency)
	}

	path := output
	if path == "" {
		path = DefaultFileName(s.User().Name, format, time.Now())
	}
	if err := codec.ExportFile(path, format, txns, currency); err != nil {
		return err
	}
	abs, _ := filepath.Abs(path)
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transaction(s) to %s\n", len(txns), abs)
	return nil
}
