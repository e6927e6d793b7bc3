// Package backup handles copying the data files into the backups directory
package backup

import (
	"fmt"
	"time"

	"fjacquet/fintrack/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the backup command
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up all data files",
	Long: `Copy every data file into the backups directory of the data directory,
with a timestamp suffix. The SQLite backend writes a consistent snapshot of
the database instead.`,
	Args: cobra.NoArgs,
	Run:  root.Run(runBackup),
}

func runBackup(cmd *cobra.Command, args []string) error {
	paths, err := root.AppContainer.GetStore().Backup(cmd.Context(), time.Now())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(paths) == 0 {
		fmt.Fprintln(out, "Nothing to back up yet.")
		return nil
	}
	for _, p := range paths {
		fmt.Fprintf(out, "Backed up %s\n", p)
	}
	return nil
}
