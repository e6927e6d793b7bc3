package session

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/report"

	"github.com/shopspring/decimal"
)

// SetBudget creates or replaces the budget for month and category. An empty
// category or "overall" sets the overall budget.
func (s *Session) SetBudget(ctx context.Context, month, category string, limit decimal.Decimal) (models.Budget, error) {
	b, err := models.NewBudget(s.user.ID, month, category, limit)
	if err != nil {
		return models.Budget{}, err
	}
	budgets, err := s.store.LoadBudgets(ctx, s.user.ID)
	if err != nil {
		return models.Budget{}, fmt.Errorf("failed to load budgets: %w", err)
	}
	if i := slices.IndexFunc(budgets, b.SameSlot); i >= 0 {
		budgets[i] = b
	} else {
		budgets = append(budgets, b)
	}
	if err := s.store.SaveBudgets(ctx, s.user.ID, budgets); err != nil {
		return models.Budget{}, fmt.Errorf("failed to save budgets: %w", err)
	}
	s.logger.WithFields(
		logging.F(logging.FieldMonth, b.Month),
		logging.F(logging.FieldCategory, b.Label()),
		logging.F(logging.FieldAmount, b.Limit.String()),
	).Info("Budget set")
	return b, nil
}

// Budgets lists the budgets of month; an empty month lists all of them.
func (s *Session) Budgets(ctx context.Context, month string) ([]models.Budget, error) {
	budgets, err := s.store.LoadBudgets(ctx, s.user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	if month == "" {
		return budgets, nil
	}
	return slices.DeleteFunc(budgets, func(b models.Budget) bool { return b.Month != month }), nil
}

// BudgetStatus pairs a budget's utilization with the ErrDivisionUndefined of
// a zero limit.
type BudgetStatus struct {
	Utilization report.Utilization
	Err         error
}

// BudgetStatuses computes the utilization of every budget of month, overall
// budget first. A zero limit is reported per budget, not as a failure.
func (s *Session) BudgetStatuses(ctx context.Context, month string) ([]BudgetStatus, error) {
	m, err := models.ParseMonth(month)
	if err != nil {
		return nil, &fterrors.ValidationError{Entity: "budget", Field: "month", Value: month, Reason: "expected YYYY-MM"}
	}
	budgets, err := s.Budgets(ctx, m)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(budgets, func(a, b models.Budget) int {
		switch {
		case a.IsOverall() == b.IsOverall():
			return 0
		case a.IsOverall():
			return -1
		default:
			return 1
		}
	})

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		u, err := report.BudgetUtilization(s.ledger.List(nil), b)
		if err != nil && !errors.Is(err, fterrors.ErrDivisionUndefined) {
			return nil, err
		}
		statuses = append(statuses, BudgetStatus{Utilization: u, Err: err})
	}
	return statuses, nil
}
