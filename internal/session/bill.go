package session

import (
	"context"
	"fmt"
	"slices"

	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
)

// AddBill creates a bill reminder with the next free BILLnnn id.
func (s *Session) AddBill(ctx context.Context, draft models.BillDraft) (models.Bill, error) {
	bills, err := s.store.LoadBills(ctx, s.user.ID)
	if err != nil {
		return models.Bill{}, fmt.Errorf("failed to load bills: %w", err)
	}
	ids := make([]string, 0, len(bills))
	for _, b := range bills {
		ids = append(ids, b.ID)
	}
	id := models.FormatSequenceID(models.BillIDPrefix, models.NextSequence(ids))
	b, err := models.NewBill(id, s.user.ID, draft)
	if err != nil {
		return models.Bill{}, err
	}
	if err := s.store.SaveBills(ctx, s.user.ID, append(bills, b)); err != nil {
		return models.Bill{}, fmt.Errorf("failed to save bills: %w", err)
	}
	s.logger.WithField(logging.FieldBillID, b.ID).Info("Bill added")
	return b, nil
}

// Bills lists bills ordered by due date. Paid bills are included only when
// includePaid is set.
func (s *Session) Bills(ctx context.Context, includePaid bool) ([]models.Bill, error) {
	bills, err := s.store.LoadBills(ctx, s.user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bills: %w", err)
	}
	if !includePaid {
		bills = slices.DeleteFunc(bills, func(b models.Bill) bool { return b.Paid })
	}
	slices.SortStableFunc(bills, func(a, b models.Bill) int { return a.DueDate.Compare(b.DueDate) })
	return bills, nil
}

// PayBill marks a bill paid. A repeating bill instead moves to its next due
// date and stays unpaid.
func (s *Session) PayBill(ctx context.Context, id string) (models.Bill, error) {
	bills, err := s.store.LoadBills(ctx, s.user.ID)
	if err != nil {
		return models.Bill{}, fmt.Errorf("failed to load bills: %w", err)
	}
	i := slices.IndexFunc(bills, func(b models.Bill) bool { return b.ID == id })
	if i < 0 {
		return models.Bill{}, &fterrors.NotFoundError{Entity: "bill", ID: id}
	}
	if bills[i].Paid {
		return models.Bill{}, &fterrors.ValidationError{Entity: "bill", Field: "paid", Value: id, Reason: "already paid"}
	}
	if next, ok := bills[i].NextDue(); ok {
		bills[i].DueDate = next
	} else {
		bills[i].Paid = true
	}
	if err := s.store.SaveBills(ctx, s.user.ID, bills); err != nil {
		return models.Bill{}, fmt.Errorf("failed to save bills: %w", err)
	}
	s.logger.WithFields(
		logging.F(logging.FieldBillID, id),
		logging.F("next_due", bills[i].DueDate.String()),
	).Info("Bill paid")
	return bills[i], nil
}

// DueBill is an unpaid bill with its distance from today in days; negative
// when overdue.
type DueBill struct {
	Bill      models.Bill
	DaysUntil int
}

// DueWithin lists unpaid bills due on or before today+days, overdue ones
// included, soonest first.
func (s *Session) DueWithin(ctx context.Context, today models.Date, days int) ([]DueBill, error) {
	bills, err := s.Bills(ctx, false)
	if err != nil {
		return nil, err
	}
	horizon := today.AddDays(days)
	var due []DueBill
	for _, b := range bills {
		if b.DueDate.After(horizon) {
			continue
		}
		due = append(due, DueBill{Bill: b, DaysUntil: today.DaysUntil(b.DueDate)})
	}
	return due, nil
}
