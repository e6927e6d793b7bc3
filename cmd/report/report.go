// Package report handles the dashboard, monthly, category and trend reports
package report

import (
	"io"

	"fjacquet/fintrack/cmd/common"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/report"
	"fjacquet/fintrack/internal/session"

	"github.com/spf13/cobra"
)

// Dashboard sizes
const (
	TopCategories      = 5
	RecentTransactions = 5
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Show reports and charts",
	Long: `Show aggregate reports over the ledger of the logged-in user. Every report
can be printed as text with ASCII charts or encoded as JSON or YAML.`,
}

var (
	outputFormat  string
	monthlyMonths int
	trendMonths   int
	month         string
	view          string
)

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"dashboard"},
	Short:   "Totals, average, top categories and recent transactions",
	Args:    cobra.NoArgs,
	Run:     root.Run(runSummary),
}

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Income, expense and net per month",
	Args:  cobra.NoArgs,
	Run:   root.Run(runMonthly),
}

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Expenses per category, largest first",
	Args:  cobra.NoArgs,
	Run:   root.Run(runCategory),
}

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Monthly expense, income or net trend",
	Args:  cobra.NoArgs,
	Run:   root.Run(runTrend),
}

func init() {
	Cmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, json, yaml)")
	monthlyCmd.Flags().IntVar(&monthlyMonths, "months", 0, "Only the last N months (0 = all)")
	trendCmd.Flags().IntVar(&trendMonths, "months", 6, "Only the last N months (0 = all)")
	trendCmd.Flags().StringVar(&view, "view", "expense", "Trend view (expense, income, net)")
	categoryCmd.Flags().StringVar(&month, "month", "", "Only this month (YYYY-MM)")
	Cmd.AddCommand(summaryCmd, monthlyCmd, categoryCmd, trendCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	d := report.BuildDashboard(s.Ledger().List(nil), TopCategories, RecentTransactions)
	return common.Emit(cmd.OutOrStdout(), root.AppContainer.GetGenerator(), outputFormat, d, func(w io.Writer) error {
		return root.AppContainer.Renderer(s).Dashboard(w, d)
	})
}

func runMonthly(cmd *cobra.Command, args []string) error {
	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	rows := report.MonthRows(report.MonthlySummary(s.Ledger().List(nil)))
	rows = report.LastMonths(rows, monthlyMonths)
	return common.Emit(cmd.OutOrStdout(), root.AppContainer.GetGenerator(), outputFormat, rows, func(w io.Writer) error {
		return root.AppContainer.Renderer(s).Monthly(w, rows)
	})
}

func runCategory(cmd *cobra.Command, args []string) error {
	var filter func(models.Transaction) bool
	if month != "" {
		m, err := models.ParseMonth(month)
		if err != nil {
			return err
		}
		filter = func(tx models.Transaction) bool { return tx.Date.MonthKey() == m }
	}
	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	rows := report.CategoryBreakdown(s.Ledger().List(filter))
	return common.Emit(cmd.OutOrStdout(), root.AppContainer.GetGenerator(), outputFormat, rows, func(w io.Writer) error {
		return root.AppContainer.Renderer(s).Categories(w, rows)
	})
}

func runTrend(cmd *cobra.Command, args []string) error {
	v, err := report.ParseTrendView(view)
	if err != nil {
		return err
	}
	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	points := trendPoints(s, v, trendMonths)
	doc := struct {
		View   report.TrendView    `json:"view" yaml:"view"`
		Points []report.TrendPoint `json:"points" yaml:"points"`
	}{v, points}
	return common.Emit(cmd.OutOrStdout(), root.AppContainer.GetGenerator(), outputFormat, doc, func(w io.Writer) error {
		return root.AppContainer.Renderer(s).Trend(w, v, points)
	})
}

func trendPoints(s *session.Session, v report.TrendView, n int) []report.TrendPoint {
	return report.LastMonths(report.TrendPoints(report.MonthlyTrend(s.Ledger().List(nil), v)), n)
}
