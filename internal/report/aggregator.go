// Package report derives read-only aggregates from a ledger and renders them
// as JSON or YAML documents.
//
// Every function consumes an iter.Seq so callers can aggregate the whole
// ledger or a filtered view of it. Sums are exact decimals; rounding happens
// only when values are formatted.
package report

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// Sums holds income and expense totals and their difference.
type Sums struct {
	Income  decimal.Decimal `json:"income" yaml:"income"`
	Expense decimal.Decimal `json:"expense" yaml:"expense"`
	Net     decimal.Decimal `json:"net" yaml:"net"`
}

func (s *Sums) add(tx models.Transaction) {
	switch tx.Kind {
	case models.KindIncome:
		s.Income = s.Income.Add(tx.Amount)
	case models.KindExpense:
		s.Expense = s.Expense.Add(tx.Amount)
	}
	s.Net = s.Income.Sub(s.Expense)
}

// Totals sums income and expense over seq. Net is the balance.
func Totals(seq iter.Seq[models.Transaction]) Sums {
	s := Sums{Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero}
	for tx := range seq {
		s.add(tx)
	}
	return s
}

// ByCategory groups sums per category. Categories without transactions have
// no entry.
func ByCategory(seq iter.Seq[models.Transaction]) map[string]Sums {
	out := make(map[string]Sums)
	for tx := range seq {
		s := out[tx.Category]
		s.add(tx)
		out[tx.Category] = s
	}
	return out
}

// MonthlySummary groups sums per YYYY-MM month key.
func MonthlySummary(seq iter.Seq[models.Transaction]) map[string]Sums {
	out := make(map[string]Sums)
	for tx := range seq {
		key := tx.Date.MonthKey()
		s := out[key]
		s.add(tx)
		out[key] = s
	}
	return out
}

// TrendView selects which amount MonthlyTrend reports per month.
type TrendView string

// Trend views
const (
	ViewExpense TrendView = "expense"
	ViewIncome  TrendView = "income"
	ViewNet     TrendView = "net"
)

// ParseTrendView validates a user supplied view name.
func ParseTrendView(s string) (TrendView, error) {
	switch v := TrendView(strings.ToLower(strings.TrimSpace(s))); v {
	case ViewExpense, ViewIncome, ViewNet:
		return v, nil
	case "":
		return ViewExpense, nil
	default:
		return "", &fterrors.ValidationError{Entity: "trend", Field: "view", Value: s, Reason: "expected expense, income or net"}
	}
}

// MonthlyTrend maps each month key to the view's sum. Only months with at
// least one contributing transaction appear: for the expense and income views
// that is a transaction of that kind, for net any transaction.
func MonthlyTrend(seq iter.Seq[models.Transaction], view TrendView) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for tx := range seq {
		var delta decimal.Decimal
		switch view {
		case ViewIncome:
			if !tx.IsIncome() {
				continue
			}
			delta = tx.Amount
		case ViewNet:
			delta = tx.Signed()
		default:
			if !tx.IsExpense() {
				continue
			}
			delta = tx.Amount
		}
		key := tx.Date.MonthKey()
		out[key] = out[key].Add(delta)
	}
	return out
}

// SortedMonths returns the month keys of m in chronological order. YYYY-MM
// keys sort lexically in time order.
func SortedMonths[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

// LastMonths keeps the n most recent entries of a chronologically sorted
// slice. n <= 0 keeps everything.
func LastMonths[T any](months []T, n int) []T {
	if n <= 0 || len(months) <= n {
		return months
	}
	return months[len(months)-n:]
}

// CategoryAmount is one row of a category breakdown. Share is the fraction of
// the breakdown total, 0 when the total is zero.
type CategoryAmount struct {
	Category string          `json:"category" yaml:"category"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Share    decimal.Decimal `json:"share" yaml:"share"`
}

// CategoryBreakdown lists expense totals per category, largest first. Ties
// are ordered by category name.
func CategoryBreakdown(seq iter.Seq[models.Transaction]) []CategoryAmount {
	total := decimal.Zero
	var rows []CategoryAmount
	for category, s := range ByCategory(seq) {
		if s.Expense.IsZero() {
			continue
		}
		rows = append(rows, CategoryAmount{Category: category, Amount: s.Expense})
		total = total.Add(s.Expense)
	}
	for i := range rows {
		if share, ok := models.Ratio(rows[i].Amount, total); ok {
			rows[i].Share = share
		}
	}
	slices.SortFunc(rows, func(a, b CategoryAmount) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return rows
}

// Utilization is the state of one budget against the ledger. Ratio is
// Spent/Limit; it is zero and meaningless when Limit is zero.
type Utilization struct {
	Budget models.Budget   `json:"budget" yaml:"budget"`
	Spent  decimal.Decimal `json:"spent" yaml:"spent"`
	Ratio  decimal.Decimal `json:"ratio" yaml:"ratio"`
}

// Remaining is Limit-Spent; negative when overspent.
func (u Utilization) Remaining() decimal.Decimal {
	return u.Budget.Limit.Sub(u.Spent)
}

// Overspent reports whether spending exceeds the limit.
func (u Utilization) Overspent() bool {
	return u.Spent.GreaterThan(u.Budget.Limit)
}

// BudgetUtilization sums the expenses the budget covers and divides by its
// limit. A zero limit yields fterrors.ErrDivisionUndefined; the returned
// Utilization still carries Spent.
func BudgetUtilization(seq iter.Seq[models.Transaction], budget models.Budget) (Utilization, error) {
	u := Utilization{Budget: budget, Spent: decimal.Zero, Ratio: decimal.Zero}
	for tx := range seq {
		if budget.Covers(tx) {
			u.Spent = u.Spent.Add(tx.Amount)
		}
	}
	ratio, ok := models.Ratio(u.Spent, budget.Limit)
	if !ok {
		return u, fmt.Errorf("budget %s %s: %w", budget.Month, budget.Label(), fterrors.ErrDivisionUndefined)
	}
	u.Ratio = ratio
	return u, nil
}

// Progress is the state of one savings goal. Ratio is Saved/Target, not
// clamped.
type Progress struct {
	Goal  models.SavingsGoal `json:"goal" yaml:"goal"`
	Ratio decimal.Decimal    `json:"ratio" yaml:"ratio"`
}

// Complete reports whether the goal has been reached.
func (p Progress) Complete() bool {
	return !p.Goal.Saved.LessThan(p.Goal.Target)
}

// GoalProgress computes saved/target. A zero target yields
// fterrors.ErrDivisionUndefined.
func GoalProgress(goal models.SavingsGoal) (Progress, error) {
	p := Progress{Goal: goal, Ratio: decimal.Zero}
	ratio, ok := models.Ratio(goal.Saved, goal.Target)
	if !ok {
		return p, fmt.Errorf("goal '%s': %w", goal.Name, fterrors.ErrDivisionUndefined)
	}
	p.Ratio = ratio
	return p, nil
}
