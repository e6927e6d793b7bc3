package session

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/report"

	"github.com/shopspring/decimal"
)

func goalIndex(goals []models.SavingsGoal, name string) int {
	name = strings.TrimSpace(name)
	return slices.IndexFunc(goals, func(g models.SavingsGoal) bool { return strings.EqualFold(g.Name, name) })
}

// AddGoal creates a savings goal. Names are unique per user regardless of case.
func (s *Session) AddGoal(ctx context.Context, name string, target decimal.Decimal, targetDate string) (models.SavingsGoal, error) {
	g, err := models.NewSavingsGoal(s.user.ID, name, target, targetDate)
	if err != nil {
		return models.SavingsGoal{}, err
	}
	goals, err := s.store.LoadGoals(ctx, s.user.ID)
	if err != nil {
		return models.SavingsGoal{}, fmt.Errorf("failed to load goals: %w", err)
	}
	if goalIndex(goals, g.Name) >= 0 {
		return models.SavingsGoal{}, &fterrors.ConflictError{Entity: "goal", Key: g.Name}
	}
	if err := s.store.SaveGoals(ctx, s.user.ID, append(goals, g)); err != nil {
		return models.SavingsGoal{}, fmt.Errorf("failed to save goals: %w", err)
	}
	s.logger.WithField(logging.FieldGoal, g.Name).Info("Savings goal added")
	return g, nil
}

// Goals returns every goal with its progress.
func (s *Session) Goals(ctx context.Context) ([]report.Progress, error) {
	goals, err := s.store.LoadGoals(ctx, s.user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	out := make([]report.Progress, 0, len(goals))
	for _, g := range goals {
		p, err := report.GoalProgress(g)
		if err != nil {
			s.logger.WithError(err).WithField(logging.FieldGoal, g.Name).Warn("Goal progress undefined")
		}
		out = append(out, p)
	}
	return out, nil
}

// Deposit adds amount to the saved total of the named goal. Saving past the
// target is allowed.
func (s *Session) Deposit(ctx context.Context, name string, amount decimal.Decimal) (report.Progress, error) {
	if !amount.IsPositive() {
		return report.Progress{}, &fterrors.ValidationError{Entity: "deposit", Field: "amount", Value: amount.String(), Reason: "must be greater than zero"}
	}
	goals, err := s.store.LoadGoals(ctx, s.user.ID)
	if err != nil {
		return report.Progress{}, fmt.Errorf("failed to load goals: %w", err)
	}
	i := goalIndex(goals, name)
	if i < 0 {
		return report.Progress{}, &fterrors.NotFoundError{Entity: "goal", ID: name}
	}
	goals[i].Saved = goals[i].Saved.Add(amount)
	if err := s.store.SaveGoals(ctx, s.user.ID, goals); err != nil {
		return report.Progress{}, fmt.Errorf("failed to save goals: %w", err)
	}
	s.logger.WithFields(
		logging.F(logging.FieldGoal, goals[i].Name),
		logging.F(logging.FieldAmount, amount.String()),
	).Info("Deposit recorded")
	return report.GoalProgress(goals[i])
}
