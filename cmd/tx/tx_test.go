package tx

import (
	"context"
	"testing"

	"fjacquet/fintrack/cmd/internal/clitest"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addTx(t *testing.T, kind, amount, category, date string) {
	t.Helper()
	addFlags = txFlags{kind: kind, amount: amount, category: category, date: date}
	t.Cleanup(func() { addFlags = txFlags{} })
	cmd, _ := clitest.Command(t)
	require.NoError(t, runAdd(cmd, nil))
}

func TestTxCommand_Metadata(t *testing.T) {
	assert.Equal(t, "tx", Cmd.Use)
	names := []string{}
	for _, c := range Cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"add", "list", "edit", "delete"}, names)
	assert.NotNil(t, addCmd.Flags().Lookup("type"))
	assert.Equal(t, "a", addCmd.Flags().Lookup("amount").Shorthand)
}

func TestAdd_PersistsTransaction(t *testing.T) {
	c, _ := clitest.Setup(t)
	addFlags = txFlags{kind: "Expense", amount: "1'600.50", category: "Rent", date: "2025-01-15", note: "flat"}
	t.Cleanup(func() { addFlags = txFlags{} })

	cmd, out := clitest.Command(t)
	require.NoError(t, runAdd(cmd, nil))
	assert.Contains(t, out.String(), "Added TXN001 expense 1600.50 CHF Rent on 2025-01-15")

	s, err := c.OpenSession(context.Background(), clitest.UserName, clitest.Password)
	require.NoError(t, err)
	tx, err := s.Ledger().Get("TXN001")
	require.NoError(t, err)
	assert.Equal(t, models.KindExpense, tx.Kind)
	assert.Equal(t, "flat", tx.Note)
}

func TestAdd_RejectsInvalidInput(t *testing.T) {
	clitest.Setup(t)
	t.Cleanup(func() { addFlags = txFlags{} })

	tests := []struct {
		name  string
		flags txFlags
	}{
		{"bad kind", txFlags{kind: "transfer", amount: "10", date: "2025-01-01"}},
		{"bad amount", txFlags{kind: "income", amount: "ten", date: "2025-01-01"}},
		{"zero amount", txFlags{kind: "income", amount: "0", date: "2025-01-01"}},
		{"bad date", txFlags{kind: "income", amount: "10", date: "2025-02-30"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addFlags = tt.flags
			cmd, _ := clitest.Command(t)
			err := runAdd(cmd, nil)
			assert.True(t, fterrors.IsValidation(err), "got %v", err)
		})
	}
}

func TestList_PrintsLedger(t *testing.T) {
	clitest.Setup(t)
	addTx(t, "income", "5000", "Salary", "2025-01-01")
	addTx(t, "expense", "1600", "Rent", "2025-01-15")

	listLimit, listSort = 0, ""
	cmd, out := clitest.Command(t)
	require.NoError(t, runList(cmd, nil))
	assert.Contains(t, out.String(), "TXN001")
	assert.Contains(t, out.String(), "Salary")
	assert.Contains(t, out.String(), "1600.00 CHF")

	listLimit = 1
	t.Cleanup(func() { listLimit = 0 })
	cmd, out = clitest.Command(t)
	require.NoError(t, runList(cmd, nil))
	assert.NotContains(t, out.String(), "TXN001")
	assert.Contains(t, out.String(), "TXN002")
}

func TestEdit_ChangesOnlyGivenFields(t *testing.T) {
	c, _ := clitest.Setup(t)
	addTx(t, "expense", "40", "Food", "2025-02-01")

	editCmd.SetContext(context.Background())
	require.NoError(t, editCmd.Flags().Set("amount", "45.5"))
	t.Cleanup(func() {
		editCmd.Flags().Lookup("amount").Changed = false
		editFlags = txFlags{}
	})
	require.NoError(t, runEdit(editCmd, []string{"TXN001"}))

	s, err := c.OpenSession(context.Background(), clitest.UserName, clitest.Password)
	require.NoError(t, err)
	tx, err := s.Ledger().Get("TXN001")
	require.NoError(t, err)
	assert.Equal(t, "45.5", tx.Amount.String())
	assert.Equal(t, "Food", tx.Category)
}

func TestEdit_RequiresAChange(t *testing.T) {
	clitest.Setup(t)
	cmd, _ := clitest.Command(t)
	assert.ErrorContains(t, runEdit(cmd, []string{"TXN001"}), "nothing to change")
}

func TestDelete(t *testing.T) {
	clitest.Setup(t)
	addTx(t, "expense", "40", "Food", "2025-02-01")

	cmd, out := clitest.Command(t)
	require.NoError(t, runDelete(cmd, []string{"TXN001"}))
	assert.Contains(t, out.String(), "Deleted TXN001")

	err := runDelete(cmd, []string{"TXN001"})
	assert.True(t, fterrors.IsNotFound(err))
	assert.NotNil(t, root.AppContainer)
}
