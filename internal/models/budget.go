package models

import (
	"strings"

	"fjacquet/fintrack/internal/fterrors"

	"github.com/shopspring/decimal"
)

// Budget caps expenses for one month, either for a single category or, when
// Category is empty, for all categories together.
type Budget struct {
	UserID   string          `json:"user_id" yaml:"user_id"`
	Month    string          `json:"month" yaml:"month"`
	Category string          `json:"category,omitempty" yaml:"category,omitempty"`
	Limit    decimal.Decimal `json:"limit" yaml:"limit"`
}

// NewBudget validates and builds a budget. "overall" (any case) is stored as
// the empty category.
func NewBudget(userID, month, category string, limit decimal.Decimal) (Budget, error) {
	m, err := ParseMonth(month)
	if err != nil {
		return Budget{}, &fterrors.ValidationError{Entity: "budget", Field: "month", Value: month, Reason: "expected YYYY-MM"}
	}
	category = strings.TrimSpace(category)
	if strings.EqualFold(category, CategoryOverall) {
		category = ""
	}
	b := Budget{UserID: userID, Month: m, Category: category, Limit: limit}
	if err := b.Validate(); err != nil {
		return Budget{}, err
	}
	return b, nil
}

// Validate checks the budget invariants.
func (b Budget) Validate() error {
	if strings.TrimSpace(b.UserID) == "" {
		return &fterrors.ValidationError{Entity: "budget", Field: "user_id", Reason: "cannot be empty"}
	}
	if _, err := ParseMonth(b.Month); err != nil {
		return &fterrors.ValidationError{Entity: "budget", Field: "month", Value: b.Month, Reason: "expected YYYY-MM"}
	}
	if b.Limit.IsNegative() {
		return &fterrors.ValidationError{Entity: "budget", Field: "limit", Value: b.Limit.String(), Reason: "cannot be negative"}
	}
	return nil
}

// IsOverall reports whether the budget spans every category.
func (b Budget) IsOverall() bool {
	return b.Category == ""
}

// Label is the category name used for display.
func (b Budget) Label() string {
	if b.IsOverall() {
		return CategoryOverall
	}
	return b.Category
}

// Covers reports whether tx counts against this budget.
func (b Budget) Covers(tx Transaction) bool {
	if !tx.IsExpense() || tx.Date.MonthKey() != b.Month {
		return false
	}
	return b.IsOverall() || tx.Category == b.Category
}

// SameSlot reports whether two budgets address the same user, month and category.
func (b Budget) SameSlot(other Budget) bool {
	return b.UserID == other.UserID && b.Month == other.Month && b.Category == other.Category
}
