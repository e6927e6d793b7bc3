package models

import (
	"strconv"
	"strings"

	"fjacquet/fintrack/internal/fterrors"

	"github.com/shopspring/decimal"
)

// Bill is a payment reminder.
type Bill struct {
	ID            string          `json:"bill_id" yaml:"bill_id"`
	UserID        string          `json:"user_id" yaml:"user_id"`
	Name          string          `json:"name" yaml:"name"`
	Amount        decimal.Decimal `json:"amount" yaml:"amount"`
	DueDate       Date            `json:"due_date" yaml:"due_date"`
	DueDay        int             `json:"due_day,omitempty" yaml:"due_day,omitempty"`
	Repeat        Repeat          `json:"repeat" yaml:"repeat"`
	PaymentMethod string          `json:"payment_method,omitempty" yaml:"payment_method,omitempty"`
	Notes         string          `json:"notes,omitempty" yaml:"notes,omitempty"`
	Paid          bool            `json:"paid" yaml:"paid"`
}

// BillDraft is the user input for a new bill.
type BillDraft struct {
	Name          string
	Amount        decimal.Decimal
	DueDate       string
	Repeat        string
	PaymentMethod string
	Notes         string
}

// ParseRepeat maps free text to a Repeat; anything unknown means none.
func ParseRepeat(s string) Repeat {
	switch Repeat(strings.ToLower(strings.TrimSpace(s))) {
	case RepeatMonthly:
		return RepeatMonthly
	case RepeatYearly:
		return RepeatYearly
	default:
		return RepeatNone
	}
}

// NewBill validates and builds a bill.
func NewBill(id, userID string, d BillDraft) (Bill, error) {
	due, err := ParseDate(d.DueDate)
	if err != nil {
		return Bill{}, &fterrors.ValidationError{Entity: "bill", Field: "due_date", Value: d.DueDate, Reason: "expected YYYY-MM-DD"}
	}
	name := strings.TrimSpace(d.Name)
	if name == "" {
		name = "Unnamed Bill"
	}
	b := Bill{
		ID:            id,
		UserID:        userID,
		Name:          name,
		Amount:        d.Amount,
		DueDate:       due,
		DueDay:        due.Day,
		Repeat:        ParseRepeat(d.Repeat),
		PaymentMethod: strings.TrimSpace(d.PaymentMethod),
		Notes:         strings.TrimSpace(d.Notes),
	}
	if err := b.Validate(); err != nil {
		return Bill{}, err
	}
	return b, nil
}

// Validate checks the bill invariants.
func (b Bill) Validate() error {
	if strings.TrimSpace(b.UserID) == "" {
		return &fterrors.ValidationError{Entity: "bill", Field: "user_id", Reason: "cannot be empty"}
	}
	if !b.Amount.IsPositive() {
		return &fterrors.ValidationError{Entity: "bill", Field: "amount", Value: b.Amount.String(), Reason: "must be greater than zero"}
	}
	if !b.DueDate.Valid() {
		return &fterrors.ValidationError{Entity: "bill", Field: "due_date", Value: b.DueDate.String(), Reason: "must be a valid calendar date"}
	}
	if b.DueDay < 0 || b.DueDay > 31 {
		return &fterrors.ValidationError{Entity: "bill", Field: "due_day", Value: strconv.Itoa(b.DueDay), Reason: "must be between 1 and 31"}
	}
	return nil
}

// NextDue returns the following due date for a repeating bill. The date lands
// on the bill's original day of month, clamped to the month end. ok is false
// for one-off bills.
func (b Bill) NextDue() (Date, bool) {
	day := b.DueDay
	if day == 0 {
		day = b.DueDate.Day
	}
	switch b.Repeat {
	case RepeatMonthly:
		return b.DueDate.AddMonthsOnDay(1, day), true
	case RepeatYearly:
		return b.DueDate.AddMonthsOnDay(12, day), true
	default:
		return Date{}, false
	}
}
