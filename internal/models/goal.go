package models

import (
	"strings"

	"fjacquet/fintrack/internal/fterrors"

	"github.com/shopspring/decimal"
)

// SavingsGoal tracks money put aside toward a target. Saved may exceed
// Target; progress above 100% is reported, not rejected.
type SavingsGoal struct {
	UserID     string          `json:"user_id" yaml:"user_id"`
	Name       string          `json:"name" yaml:"name"`
	Target     decimal.Decimal `json:"target" yaml:"target"`
	Saved      decimal.Decimal `json:"saved" yaml:"saved"`
	TargetDate Date            `json:"target_date,omitempty" yaml:"target_date,omitempty"`
}

// NewSavingsGoal validates and builds a goal with nothing saved yet.
func NewSavingsGoal(userID, name string, target decimal.Decimal, targetDate string) (SavingsGoal, error) {
	g := SavingsGoal{
		UserID: userID,
		Name:   strings.TrimSpace(name),
		Target: target,
		Saved:  decimal.Zero,
	}
	if strings.TrimSpace(targetDate) != "" {
		d, err := ParseDate(targetDate)
		if err != nil {
			return SavingsGoal{}, &fterrors.ValidationError{Entity: "goal", Field: "target_date", Value: targetDate, Reason: "expected YYYY-MM-DD"}
		}
		g.TargetDate = d
	}
	if err := g.Validate(); err != nil {
		return SavingsGoal{}, err
	}
	return g, nil
}

// Validate checks the goal invariants. Saved > Target is allowed.
func (g SavingsGoal) Validate() error {
	if strings.TrimSpace(g.UserID) == "" {
		return &fterrors.ValidationError{Entity: "goal", Field: "user_id", Reason: "cannot be empty"}
	}
	if g.Name == "" {
		return &fterrors.ValidationError{Entity: "goal", Field: "name", Reason: "cannot be empty"}
	}
	if !g.Target.IsPositive() {
		return &fterrors.ValidationError{Entity: "goal", Field: "target", Value: g.Target.String(), Reason: "must be greater than zero"}
	}
	if g.Saved.IsNegative() {
		return &fterrors.ValidationError{Entity: "goal", Field: "saved", Value: g.Saved.String(), Reason: "cannot be negative"}
	}
	return nil
}

// Remaining is how much is still missing; negative when over-saved.
func (g SavingsGoal) Remaining() decimal.Decimal {
	return g.Target.Sub(g.Saved)
}
