// Package search filters and sorts ledger transactions.
package search

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"

	"fjacquet/fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// Criteria holds independently optional constraints. A nil field imposes no
// constraint; all set fields must match. Keyword matches a case-insensitive
// substring of the note and is ignored when empty.
type Criteria struct {
	DateFrom  *models.Date
	DateTo    *models.Date
	AmountMin *decimal.Decimal
	AmountMax *decimal.Decimal
	Category  *string
	Kind      *models.Kind
	Keyword   string
}

// IsEmpty reports whether the criteria accept every transaction.
func (c Criteria) IsEmpty() bool {
	return c.DateFrom == nil && c.DateTo == nil && c.AmountMin == nil && c.AmountMax == nil &&
		c.Category == nil && c.Kind == nil && c.Keyword == ""
}

// Matches reports whether tx satisfies every set criterion. Date bounds and
// amount bounds are inclusive; amounts compare on magnitude.
func Matches(tx models.Transaction, c Criteria) bool {
	if c.DateFrom != nil && tx.Date.Before(*c.DateFrom) {
		return false
	}
	if c.DateTo != nil && tx.Date.After(*c.DateTo) {
		return false
	}
	amount := tx.Amount.Abs()
	if c.AmountMin != nil && amount.LessThan(*c.AmountMin) {
		return false
	}
	if c.AmountMax != nil && amount.GreaterThan(*c.AmountMax) {
		return false
	}
	if c.Category != nil && tx.Category != *c.Category {
		return false
	}
	if c.Kind != nil && tx.Kind != *c.Kind {
		return false
	}
	if c.Keyword != "" && !strings.Contains(strings.ToLower(tx.Note), strings.ToLower(c.Keyword)) {
		return false
	}
	return true
}

// Predicate adapts c to the filter signature ledger.List accepts.
func (c Criteria) Predicate() func(models.Transaction) bool {
	if c.IsEmpty() {
		return nil
	}
	return func(tx models.Transaction) bool { return Matches(tx, c) }
}

// Filter yields the transactions of seq that match c, preserving order.
func Filter(seq iter.Seq[models.Transaction], c Criteria) iter.Seq[models.Transaction] {
	return func(yield func(models.Transaction) bool) {
		for tx := range seq {
			if !Matches(tx, c) {
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// SortKey selects the field Sort orders by.
type SortKey string

// Sort keys
const (
	SortNone     SortKey = ""
	SortDate     SortKey = "date"
	SortAmount   SortKey = "amount"
	SortCategory SortKey = "category"
	SortKind     SortKey = "type"
)

// ParseSortKey validates a user supplied sort key. "kind" is accepted as an
// alias of "type".
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNone, SortDate, SortAmount, SortCategory, SortKind:
		return k, nil
	case "kind":
		return SortKind, nil
	default:
		return SortNone, fmt.Errorf("unknown sort key '%s' (date, amount, category, type)", s)
	}
}

// Sort returns a sorted copy of txns. The sort is stable so equal keys keep
// ledger order. SortNone returns the input order unchanged.
func Sort(txns []models.Transaction, key SortKey, reverse bool) []models.Transaction {
	out := slices.Clone(txns)
	var compare func(a, b models.Transaction) int
	switch key {
	case SortDate:
		compare = func(a, b models.Transaction) int { return a.Date.Compare(b.Date) }
	case SortAmount:
		compare = func(a, b models.Transaction) int { return a.Amount.Cmp(b.Amount) }
	case SortCategory:
		compare = func(a, b models.Transaction) int {
			return cmp.Compare(strings.ToLower(a.Category), strings.ToLower(b.Category))
		}
	case SortKind:
		compare = func(a, b models.Transaction) int { return cmp.Compare(a.Kind, b.Kind) }
	default:
		return out
	}
	if reverse {
		forward := compare
		compare = func(a, b models.Transaction) int { return forward(b, a) }
	}
	slices.SortStableFunc(out, compare)
	return out
}
