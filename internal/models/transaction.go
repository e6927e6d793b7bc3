// Package models provides the records fintrack stores and aggregates.
package models

import (
	"strings"

	"fjacquet/fintrack/internal/fterrors"

	"github.com/shopspring/decimal"
)

// Transaction is a dated money movement owned by exactly one user. Amount is
// always a positive magnitude; the sign follows Kind.
type Transaction struct {
	ID            string          `json:"id" yaml:"id" csv:"ID"`
	UserID        string          `json:"user_id" yaml:"user_id" csv:"-"`
	Kind          Kind            `json:"kind" yaml:"kind" csv:"Kind"`
	Amount        decimal.Decimal `json:"amount" yaml:"amount" csv:"Amount"`
	Category      string          `json:"category" yaml:"category" csv:"Category"`
	Date          Date            `json:"date" yaml:"date" csv:"Date"`
	Note          string          `json:"note,omitempty" yaml:"note,omitempty" csv:"Note"`
	PaymentMethod string          `json:"payment_method,omitempty" yaml:"payment_method,omitempty" csv:"PaymentMethod"`
	Reference     string          `json:"reference,omitempty" yaml:"reference,omitempty" csv:"Reference"`
}

// TransactionDraft is the user input for a new transaction. Date is the raw
// YYYY-MM-DD text so malformed dates surface as validation errors.
type TransactionDraft struct {
	Kind          Kind
	Amount        decimal.Decimal
	Category      string
	Date          string
	Note          string
	PaymentMethod string
	Reference     string
}

// TransactionPatch lists the fields an edit changes; nil fields are kept.
type TransactionPatch struct {
	Kind          *Kind
	Amount        *decimal.Decimal
	Category      *string
	Date          *string
	Note          *string
	PaymentMethod *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TransactionPatch) IsEmpty() bool {
	return p.Kind == nil && p.Amount == nil && p.Category == nil &&
		p.Date == nil && p.Note == nil && p.PaymentMethod == nil
}

// ParseKind normalizes user input into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", &fterrors.ValidationError{Entity: "transaction", Field: "kind", Value: s, Reason: "must be 'income' or 'expense'"}
	}
	return k, nil
}

// Valid reports whether k is one of the enumerated kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// IsIncome reports whether the transaction brings money in.
func (t Transaction) IsIncome() bool {
	return t.Kind == KindIncome
}

// IsExpense reports whether the transaction takes money out.
func (t Transaction) IsExpense() bool {
	return t.Kind == KindExpense
}

// Signed returns the amount with the sign implied by the kind.
func (t Transaction) Signed() decimal.Decimal {
	if t.IsExpense() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Validate checks the transaction invariants.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return &fterrors.ValidationError{Entity: "transaction", Field: "id", Reason: "cannot be empty"}
	}
	if strings.TrimSpace(t.UserID) == "" {
		return &fterrors.ValidationError{Entity: "transaction", Field: "user_id", Reason: "cannot be empty"}
	}
	if !t.Kind.Valid() {
		return &fterrors.ValidationError{Entity: "transaction", Field: "kind", Value: string(t.Kind), Reason: "must be 'income' or 'expense'"}
	}
	if !t.Amount.IsPositive() {
		return &fterrors.ValidationError{Entity: "transaction", Field: "amount", Value: t.Amount.String(), Reason: "must be greater than zero"}
	}
	if !t.Date.Valid() {
		return &fterrors.ValidationError{Entity: "transaction", Field: "date", Value: t.Date.String(), Reason: "must be a valid calendar date"}
	}
	return nil
}

// NewTransaction builds and validates a transaction from a draft.
func NewTransaction(id, userID string, d TransactionDraft) (Transaction, error) {
	date, err := ParseDate(d.Date)
	if err != nil {
		return Transaction{}, &fterrors.ValidationError{Entity: "transaction", Field: "date", Value: d.Date, Reason: "expected YYYY-MM-DD"}
	}
	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = CategoryUncategorized
	}
	tx := Transaction{
		ID:            id,
		UserID:        userID,
		Kind:          d.Kind,
		Amount:        d.Amount,
		Category:      category,
		Date:          date,
		Note:          strings.TrimSpace(d.Note),
		PaymentMethod: strings.TrimSpace(d.PaymentMethod),
		Reference:     strings.TrimSpace(d.Reference),
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// Apply returns a copy of t with the patch applied and validated. t itself is
// never modified.
func (t Transaction) Apply(p TransactionPatch) (Transaction, error) {
	out := t
	if p.Kind != nil {
		out.Kind = *p.Kind
	}
	if p.Amount != nil {
		out.Amount = *p.Amount
	}
	if p.Category != nil {
		out.Category = strings.TrimSpace(*p.Category)
		if out.Category == "" {
			out.Category = CategoryUncategorized
		}
	}
	if p.Date != nil {
		date, err := ParseDate(*p.Date)
		if err != nil {
			return t, &fterrors.ValidationError{Entity: "transaction", Field: "date", Value: *p.Date, Reason: "expected YYYY-MM-DD"}
		}
		out.Date = date
	}
	if p.Note != nil {
		out.Note = strings.TrimSpace(*p.Note)
	}
	if p.PaymentMethod != nil {
		out.PaymentMethod = strings.TrimSpace(*p.PaymentMethod)
	}
	if err := out.Validate(); err != nil {
		return t, err
	}
	return out, nil
}
