// Package budget handles monthly budgets and their status
package budget

import (
	"fmt"
	"io"

	"fjacquet/fintrack/cmd/common"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/session"
	"fjacquet/fintrack/internal/viz"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage monthly budgets",
	Long: `Set monthly spending limits, either overall or per category, and compare
them with the expenses recorded for that month.`,
}

var (
	month        string
	category     string
	limit        string
	outputFormat string
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set or replace a budget",
	Long: `Set or replace the budget of a month. Without --category the budget covers
every category.

Example:
  fintrack budget set --month 2025-03 --category Food --amount 400`,
	Args: cobra.NoArgs,
	Run:  root.Run(runSet),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show budget, spent and remaining amount",
	Args:  cobra.NoArgs,
	Run:   root.Run(runStatus),
}

func init() {
	Cmd.PersistentFlags().StringVar(&month, "month", "", "Month (YYYY-MM, default current month)")
	setCmd.Flags().StringVarP(&category, "category", "c", models.CategoryOverall, "Category, or 'overall'")
	setCmd.Flags().StringVarP(&limit, "amount", "a", "", "Monthly limit (0 or more)")
	_ = setCmd.MarkFlagRequired("amount")
	statusCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, json, yaml)")
	Cmd.AddCommand(setCmd, statusCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	amount, err := common.ParseAmountFlag("amount", limit)
	if err != nil {
		return err
	}
	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	b, err := s.SetBudget(cmd.Context(), common.MonthOrCurrent(month), category, amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Budget for %s in %s set to %s\n", b.Label(), b.Month, models.FormatMoney(b.Limit, s.User().Currency))
	return nil
}

// statusDoc is the machine readable form of a budget status. Ratio is
// omitted for a zero limit.
type statusDoc struct {
	Category  string           `json:"category" yaml:"category"`
	Limit     decimal.Decimal  `json:"limit" yaml:"limit"`
	Spent     decimal.Decimal  `json:"spent" yaml:"spent"`
	Remaining decimal.Decimal  `json:"remaining" yaml:"remaining"`
	Ratio     *decimal.Decimal `json:"ratio,omitempty" yaml:"ratio,omitempty"`
	Overspent bool             `json:"overspent" yaml:"overspent"`
}

func toDocs(statuses []session.BudgetStatus) []statusDoc {
	docs := make([]statusDoc, 0, len(statuses))
	for _, st := range statuses {
		u := st.Utilization
		doc := statusDoc{
			Category:  u.Budget.Label(),
			Limit:     u.Budget.Limit,
			Spent:     u.Spent,
			Remaining: u.Remaining(),
			Overspent: u.Overspent(),
		}
		if st.Err == nil {
			ratio := u.Ratio
			doc.Ratio = &ratio
		}
		docs = append(docs, doc)
	}
	return docs
}

func runStatus(cmd *cobra.Command, args []string) error {
	m := common.MonthOrCurrent(month)
	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	statuses, err := s.BudgetStatuses(cmd.Context(), m)
	if err != nil {
		return err
	}
	return common.Emit(cmd.OutOrStdout(), root.AppContainer.GetGenerator(), outputFormat, toDocs(statuses), func(w io.Writer) error {
		lines := make([]viz.BudgetLine, 0, len(statuses))
		for _, st := range statuses {
			lines = append(lines, viz.BudgetLine{Utilization: st.Utilization, Err: st.Err})
		}
		return root.AppContainer.Renderer(s).Budgets(w, m, lines)
	})
}
