package viz

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/report"

	"github.com/shopspring/decimal"
)

const ruleWidth = 50

// Renderer writes text reports with a fixed currency and bar width.
type Renderer struct {
	Currency string
	Width    int
}

// NewRenderer returns a renderer; width <= 0 selects DefaultWidth.
func NewRenderer(currency string, width int) Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	return Renderer{Currency: currency, Width: width}
}

func (r Renderer) money(d decimal.Decimal) string {
	return models.FormatMoney(models.RoundMoney(d), r.Currency)
}

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

// Dashboard writes the summary screen.
func (r Renderer) Dashboard(w io.Writer, d report.Dashboard) error {
	heading(w, "DASHBOARD SUMMARY")
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "Transactions:\t%d\n", d.Count)
	fmt.Fprintf(tw, "Total income:\t%s\n", r.money(d.Totals.Income))
	fmt.Fprintf(tw, "Total expense:\t%s\n", r.money(d.Totals.Expense))
	fmt.Fprintf(tw, "Balance:\t%s\n", r.money(d.Totals.Net))
	fmt.Fprintf(tw, "Average txn:\t%s\n", r.money(d.Average))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nTop categories:")
	if len(d.TopCategories) == 0 {
		fmt.Fprintln(w, " No categories to show.")
	}
	for _, c := range d.TopCategories {
		fmt.Fprintf(w, " - %-20s %s\n", c.Category, r.money(c.Amount))
	}

	fmt.Fprintln(w, "\nMost recent transactions:")
	if len(d.Recent) == 0 {
		fmt.Fprintln(w, " No transactions.")
		return nil
	}
	return r.Transactions(w, d.Recent)
}

// Transactions writes one line per transaction.
func (r Renderer) Transactions(w io.Writer, txns []models.Transaction) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tAMOUNT\tCATEGORY\tNOTE")
	for _, tx := range txns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Date, strings.ToUpper(string(tx.Kind)), r.money(tx.Amount), tx.Category, tx.Note)
	}
	return tw.Flush()
}

// Monthly writes the income/expense/net table followed by a net chart.
func (r Renderer) Monthly(w io.Writer, rows []report.MonthRow) error {
	heading(w, "MONTHLY REPORT")
	if len(rows) == 0 {
		fmt.Fprintln(w, "No monthly data available.")
		return nil
	}
	tw := table(w)
	fmt.Fprintln(tw, "Month\tIncome\tExpense\tNet\t")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", row.Month, r.money(row.Income), r.money(row.Expense), r.money(row.Net))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	chart := make([]Row, 0, len(rows))
	for _, row := range rows {
		chart = append(chart, Row{Label: row.Month, Value: row.Net})
	}
	fmt.Fprintln(w)
	_, err := io.WriteString(w, Chart(chart, r.Width))
	return err
}

// Categories writes the expense breakdown, largest first, with shares and bars.
func (r Renderer) Categories(w io.Writer, rows []report.CategoryAmount) error {
	heading(w, "CATEGORY BREAKDOWN")
	if len(rows) == 0 {
		fmt.Fprintln(w, "No category data available.")
		return nil
	}
	tw := table(w)
	fmt.Fprintln(tw, "Category\tAmount\t% of total\t")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%.2f%%\t\n", row.Category, r.money(row.Amount), models.Percent(row.Share))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	chart := make([]Row, 0, len(rows))
	for _, row := range rows {
		chart = append(chart, Row{Label: row.Category, Value: row.Amount})
	}
	fmt.Fprintln(w)
	_, err := io.WriteString(w, Chart(chart, r.Width))
	return err
}

// Trend writes one bar per month in chronological order.
func (r Renderer) Trend(w io.Writer, view report.TrendView, points []report.TrendPoint) error {
	heading(w, fmt.Sprintf("%s TREND", strings.ToUpper(string(view))))
	if len(points) == 0 {
		fmt.Fprintln(w, "No trend data available.")
		return nil
	}
	chart := make([]Row, 0, len(points))
	for _, p := range points {
		chart = append(chart, Row{Label: p.Month, Value: p.Amount})
	}
	_, err := io.WriteString(w, Chart(chart, r.Width))
	return err
}

// BudgetLine describes one budget for Budgets. Err carries the
// ErrDivisionUndefined of a zero limit.
type BudgetLine struct {
	Utilization report.Utilization
	Err         error
}

// Budgets writes the budget status table.
func (r Renderer) Budgets(w io.Writer, month string, lines []BudgetLine) error {
	heading(w, fmt.Sprintf("BUDGET STATUS %s", month))
	if len(lines) == 0 {
		fmt.Fprintln(w, "No budgets set for this month.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tBUDGET\tSPENT\tSTATUS\tUSED")
	for _, line := range lines {
		u := line.Utilization
		status := fmt.Sprintf("remaining %s", r.money(u.Remaining()))
		if u.Overspent() {
			status = fmt.Sprintf("overspent %s", r.money(u.Remaining().Neg()))
		}
		used := fmt.Sprintf("%.1f%%", models.Percent(u.Ratio))
		if line.Err != nil {
			used = "n/a"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.Budget.Label(), r.money(u.Budget.Limit), r.money(u.Spent), status, used)
	}
	return tw.Flush()
}

// Goals writes each goal with its progress bar.
func (r Renderer) Goals(w io.Writer, progress []report.Progress) error {
	heading(w, "SAVINGS GOALS")
	if len(progress) == 0 {
		fmt.Fprintln(w, "No savings goals yet.")
		return nil
	}
	for _, p := range progress {
		g := p.Goal
		fmt.Fprintf(w, "%s: %s / %s %s", g.Name, r.money(g.Saved), r.money(g.Target), ProgressBar(p.Ratio))
		if !g.TargetDate.IsZero() {
			fmt.Fprintf(w, " by %s", g.TargetDate)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// BillLine describes one bill for Bills, relative to today.
type BillLine struct {
	Bill      models.Bill
	DaysUntil int
}

// Bills writes bills with their due status.
func (r Renderer) Bills(w io.Writer, lines []BillLine) error {
	heading(w, "BILLS")
	if len(lines) == 0 {
		fmt.Fprintln(w, "No bills to show.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tAMOUNT\tDUE\tREPEAT\tSTATUS")
	for _, line := range lines {
		b := line.Bill
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", b.ID, b.Name, r.money(b.Amount), b.DueDate, b.Repeat, dueStatus(b, line.DaysUntil))
	}
	return tw.Flush()
}

func dueStatus(b models.Bill, days int) string {
	switch {
	case b.Paid:
		return "paid"
	case days < 0:
		return fmt.Sprintf("overdue by %d day(s)", -days)
	case days == 0:
		return "due today"
	default:
		return fmt.Sprintf("due in %d day(s)", days)
	}
}
