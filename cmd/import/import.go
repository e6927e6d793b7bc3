// Package importcmd handles reading transactions from CSV and OFX files
package importcmd

import (
	"fmt"

	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/exchange"

	"github.com/spf13/cobra"
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import <csv|ofx> <file>",
	Short: "Import transactions from CSV or an OFX bank statement",
	Long: `Import transactions into the ledger of the logged-in user. Rows whose
reference (the OFX FITID) is already in the ledger are skipped, so a
statement can be imported twice safely. One invalid row rejects the whole
file.

Rows without a category get one from earlier transactions with the same
note, then from the keyword rules in data.categories_file.

Example:
  fintrack import ofx statement.ofx`,
	Args: cobra.ExactArgs(2),
	Run:  root.Run(runImport),
}

var (
	dryRun       bool
	noCategorize bool
)

func init() {
	Cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and report without saving")
	Cmd.Flags().BoolVar(&noCategorize, "no-categorize", false, "Leave rows without a category uncategorized")
}

func runImport(cmd *cobra.Command, args []string) error {
	format, err := exchange.ParseFormat(args[0])
	if err != nil {
		return err
	}
	if format == exchange.FormatXLSX {
		return fmt.Errorf("XLSX is an export-only format")
	}

	drafts, err := root.AppContainer.GetCodec().ImportFile(args[1], format)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if dryRun {
		categorized := 0
		if !noCategorize {
			categorized = root.AppContainer.Categorizer(nil).Apply(cmd.Context(), drafts)
		}
		fmt.Fprintf(out, "%d transaction(s) read from %s, %d categorized by rules; nothing saved\n", len(drafts), args[1], categorized)
		return nil
	}

	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	if !noCategorize {
		if n := root.AppContainer.Categorizer(s).Apply(cmd.Context(), drafts); n > 0 {
			fmt.Fprintf(out, "Categorized %d transaction(s)\n", n)
		}
	}
	result, err := s.ImportTransactions(cmd.Context(), drafts)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Imported %d transaction(s), skipped %d duplicate(s)\n", len(result.Added), result.Duplicates)
	return nil
}
