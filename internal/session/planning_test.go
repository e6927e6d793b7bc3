package session

import (
	"context"
	"errors"
	"testing"

	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgets(t *testing.T) {
	s, _, _ := openTest(t)
	ctx := context.Background()
	for _, draft := range []models.TransactionDraft{
		rent("1600", "2025-01-15"),
		{Kind: models.KindExpense, Amount: d("200"), Date: "2025-01-20", Category: "Food"},
		{Kind: models.KindIncome, Amount: d("5000"), Date: "2025-01-01", Category: "Salary"},
	} {
		_, err := s.AddTransaction(ctx, draft)
		require.NoError(t, err)
	}

	_, err := s.SetBudget(ctx, "2025-01", "Rent", d("1000"))
	require.NoError(t, err)
	_, err = s.SetBudget(ctx, "2025-01", "Rent", d("2000"))
	require.NoError(t, err, "setting the same slot replaces it")
	_, err = s.SetBudget(ctx, "2025-01", "Overall", d("3000"))
	require.NoError(t, err)
	_, err = s.SetBudget(ctx, "2025-01", "Food", decimal.Zero)
	require.NoError(t, err)
	_, err = s.SetBudget(ctx, "2025-02", "Rent", d("900"))
	require.NoError(t, err)

	all, err := s.Budgets(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	statuses, err := s.BudgetStatuses(ctx, "2025-01")
	require.NoError(t, err)
	require.Len(t, statuses, 3)

	overall := statuses[0]
	assert.True(t, overall.Utilization.Budget.IsOverall())
	assert.True(t, d("1800").Equal(overall.Utilization.Spent))
	assert.True(t, d("0.6").Equal(overall.Utilization.Ratio))
	assert.NoError(t, overall.Err)

	assert.Equal(t, "Rent", statuses[1].Utilization.Budget.Category)
	assert.True(t, d("2000").Equal(statuses[1].Utilization.Budget.Limit))
	assert.True(t, d("0.8").Equal(statuses[1].Utilization.Ratio))

	food := statuses[2]
	assert.True(t, errors.Is(food.Err, fterrors.ErrDivisionUndefined))
	assert.True(t, d("200").Equal(food.Utilization.Spent))

	_, err = s.SetBudget(ctx, "2025-13", "Rent", d("1"))
	assert.True(t, fterrors.IsValidation(err))
	_, err = s.SetBudget(ctx, "2025-01", "Rent", d("-1"))
	assert.True(t, fterrors.IsValidation(err))
	_, err = s.BudgetStatuses(ctx, "January")
	assert.True(t, fterrors.IsValidation(err))
}

func TestGoals(t *testing.T) {
	s, _, _ := openTest(t)
	ctx := context.Background()

	_, err := s.AddGoal(ctx, "Bike", d("400"), "2025-12-31")
	require.NoError(t, err)

	_, err = s.AddGoal(ctx, "bike", d("100"), "")
	var conflict *fterrors.ConflictError
	assert.ErrorAs(t, err, &conflict)

	_, err = s.AddGoal(ctx, "", d("100"), "")
	assert.True(t, fterrors.IsValidation(err))
	_, err = s.AddGoal(ctx, "Trip", decimal.Zero, "")
	assert.True(t, fterrors.IsValidation(err))

	p, err := s.Deposit(ctx, "BIKE", d("100"))
	require.NoError(t, err)
	assert.True(t, d("0.25").Equal(p.Ratio))

	p, err = s.Deposit(ctx, "Bike", d("500"))
	require.NoError(t, err)
	assert.True(t, d("1.5").Equal(p.Ratio), "over-saving is kept")
	assert.True(t, p.Complete())

	_, err = s.Deposit(ctx, "Bike", decimal.Zero)
	assert.True(t, fterrors.IsValidation(err))
	_, err = s.Deposit(ctx, "Car", d("1"))
	assert.True(t, fterrors.IsNotFound(err))

	goals, err := s.Goals(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.True(t, d("600").Equal(goals[0].Goal.Saved))
}

func TestBills(t *testing.T) {
	s, _, _ := openTest(t)
	ctx := context.Background()

	power, err := s.AddBill(ctx, models.BillDraft{Name: "Power", Amount: d("80"), DueDate: "2025-01-31", Repeat: "monthly"})
	require.NoError(t, err)
	assert.Equal(t, "BILL001", power.ID)
	phone, err := s.AddBill(ctx, models.BillDraft{Name: "Phone", Amount: d("30"), DueDate: "2025-01-05"})
	require.NoError(t, err)
	assert.Equal(t, "BILL002", phone.ID)
	_, err = s.AddBill(ctx, models.BillDraft{Name: "Tax", Amount: d("900"), DueDate: "2025-04-30", Repeat: "yearly"})
	require.NoError(t, err)

	_, err = s.AddBill(ctx, models.BillDraft{Name: "Bad", Amount: d("1"), DueDate: "2025-02-30"})
	assert.True(t, fterrors.IsValidation(err))

	today := models.Date{Year: 2025, Month: 1, Day: 10}
	due, err := s.DueWithin(ctx, today, 30)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "BILL002", due[0].Bill.ID)
	assert.Equal(t, -5, due[0].DaysUntil)
	assert.Equal(t, "BILL001", due[1].Bill.ID)
	assert.Equal(t, 21, due[1].DaysUntil)

	paid, err := s.PayBill(ctx, "BILL002")
	require.NoError(t, err)
	assert.True(t, paid.Paid)
	_, err = s.PayBill(ctx, "BILL002")
	assert.True(t, fterrors.IsValidation(err))

	rolled, err := s.PayBill(ctx, "BILL001")
	require.NoError(t, err)
	assert.False(t, rolled.Paid)
	assert.Equal(t, models.Date{Year: 2025, Month: 2, Day: 28}, rolled.DueDate)

	_, err = s.PayBill(ctx, "BILL999")
	assert.True(t, fterrors.IsNotFound(err))

	unpaid, err := s.Bills(ctx, false)
	require.NoError(t, err)
	assert.Len(t, unpaid, 2)
	all, err := s.Bills(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "BILL002", all[0].ID, "ordered by due date")
}
