// Package user handles account registration and listing
package user

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"fjacquet/fintrack/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the user command
var Cmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
	Long:  `Register users and list the registered accounts.`,
}

var currency string

var registerCmd = &cobra.Command{
	Use:   "register <name>",
	Short: "Register a new user",
	Long: `Register a new user. The password comes from --password or FINTRACK_PASSWORD
and must be at least 4 characters long. Names are unique regardless of case.`,
	Args: cobra.ExactArgs(1),
	Run:  root.Run(runRegister),
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered users",
	Args:  cobra.NoArgs,
	Run:   root.Run(runList),
}

func init() {
	registerCmd.Flags().StringVar(&currency, "currency", "", "Display currency for this user (e.g. CHF)")
	Cmd.AddCommand(registerCmd, listCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	u, err := root.AppContainer.GetAuth().Register(cmd.Context(), args[0], root.Password(), currency)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered user %s (%s)\n", u.Name, u.ID)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	users, err := root.AppContainer.GetAuth().List(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(users) == 0 {
		fmt.Fprintln(out, "No users registered.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCURRENCY\tREGISTERED")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", u.Name, strings.ToUpper(u.Currency), u.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}
