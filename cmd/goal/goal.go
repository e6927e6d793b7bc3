// Package goal handles savings goals
package goal

import (
	"fmt"
	"io"

	"fjacquet/fintrack/cmd/common"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/viz"

	"github.com/spf13/cobra"
)

// Cmd represents the goal command
var Cmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage savings goals",
	Long:  `Create savings goals, record deposits and follow their progress.`,
}

var (
	target       string
	targetDate   string
	amount       string
	outputFormat string
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a savings goal",
	Long: `Create a savings goal with a target amount and an optional target date.

Example:
  fintrack goal add "Summer trip" --target 3000 --by 2025-07-01`,
	Args: cobra.ExactArgs(1),
	Run:  root.Run(runAdd),
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals with progress bars",
	Args:  cobra.NoArgs,
	Run:   root.Run(runList),
}

var depositCmd = &cobra.Command{
	Use:   "deposit <name>",
	Short: "Add money to a goal",
	Args:  cobra.ExactArgs(1),
	Run:   root.Run(runDeposit),
}

func init() {
	addCmd.Flags().StringVar(&target, "target", "", "Target amount (greater than 0)")
	addCmd.Flags().StringVar(&targetDate, "by", "", "Target date (YYYY-MM-DD)")
	_ = addCmd.MarkFlagRequired("target")
	depositCmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount to deposit (greater than 0)")
	_ = depositCmd.MarkFlagRequired("amount")
	listCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, json, yaml)")
	Cmd.AddCommand(addCmd, listCmd, depositCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	t, err := common.ParseAmountFlag("target", target)
	if err != nil {
		return err
	}
	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	g, err := s.AddGoal(cmd.Context(), args[0], t, targetDate)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Goal %q created with target %s\n", g.Name, models.FormatMoney(g.Target, s.User().Currency))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	progress, err := s.Goals(cmd.Context())
	if err != nil {
		return err
	}
	return common.Emit(cmd.OutOrStdout(), root.AppContainer.GetGenerator(), outputFormat, progress, func(w io.Writer) error {
		return root.AppContainer.Renderer(s).Goals(w, progress)
	})
}

func runDeposit(cmd *cobra.Command, args []string) error {
	a, err := common.ParseAmountFlag("amount", amount)
	if err != nil {
		return err
	}
	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	p, err := s.Deposit(cmd.Context(), args[0], a)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s / %s %s\n", p.Goal.Name,
		models.FormatMoney(p.Goal.Saved, s.User().Currency),
		models.FormatMoney(p.Goal.Target, s.User().Currency),
		viz.ProgressBar(p.Ratio))
	if p.Complete() {
		fmt.Fprintln(cmd.OutOrStdout(), "Goal reached!")
	}
	return nil
}
