package search

import (
	"encoding/json"
	"testing"

	"fjacquet/fintrack/cmd/internal/clitest"
	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		from, to, minAmount, maxAmount = "", "", "", ""
		category, kind, keyword, sortKey = "", "", "", ""
		descending = false
		outputFormat = "text"
	}
	reset()
	t.Cleanup(reset)
}

func seed(t *testing.T) {
	t.Helper()
	c, _ := clitest.Setup(t)
	clitest.Seed(t, c,
		clitest.Draft(models.KindIncome, "5000", "Salary", "2025-01-01", "January pay"),
		clitest.Draft(models.KindExpense, "1600", "Rent", "2025-01-15", "flat"),
		clitest.Draft(models.KindExpense, "85.40", "Food", "2025-01-20", "Market run"),
		clitest.Draft(models.KindExpense, "1600", "Rent", "2025-02-15", "flat"),
	)
}

func TestCriteriaFromFlags_Validation(t *testing.T) {
	tests := []struct {
		name string
		set  func()
	}{
		{"bad from", func() { from = "2025-13-01" }},
		{"bad to", func() { to = "yesterday" }},
		{"bad min", func() { minAmount = "abc" }},
		{"bad max", func() { maxAmount = "1.2.3" }},
		{"bad type", func() { kind = "refund" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			tt.set()
			_, err := criteriaFromFlags()
			assert.True(t, fterrors.IsValidation(err), "got %v", err)
		})
	}
}

func TestCriteriaFromFlags_EmptyFlagsMatchEverything(t *testing.T) {
	resetFlags(t)
	c, err := criteriaFromFlags()
	require.NoError(t, err)
	assert.Nil(t, c.DateFrom)
	assert.Nil(t, c.Category)
	assert.Nil(t, c.Kind)
	assert.Empty(t, c.Keyword)
}

func TestRunSearch_CombinesCriteria(t *testing.T) {
	seed(t)
	resetFlags(t)
	category = "Rent"
	from = "2025-02-01"

	cmd, out := clitest.Command(t)
	require.NoError(t, runSearch(cmd, nil))
	assert.Contains(t, out.String(), "TXN004")
	assert.NotContains(t, out.String(), "TXN002")
	assert.Contains(t, out.String(), "1 match(es): income 0.00 CHF, expense 1600.00 CHF, net -1600.00 CHF")
}

func TestRunSearch_NoMatches(t *testing.T) {
	seed(t)
	resetFlags(t)
	keyword = "holiday"

	cmd, out := clitest.Command(t)
	require.NoError(t, runSearch(cmd, nil))
	assert.Equal(t, "No matching transactions.\n", out.String())
}

func TestRunSearch_JSONSortedDescending(t *testing.T) {
	seed(t)
	resetFlags(t)
	kind = "expense"
	sortKey = "amount"
	descending = true
	outputFormat = "json"

	cmd, out := clitest.Command(t)
	require.NoError(t, runSearch(cmd, nil))

	var doc struct {
		Count        int `json:"count"`
		Transactions []struct {
			ID string `json:"id"`
		} `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, 3, doc.Count)
	require.Len(t, doc.Transactions, 3)
	assert.Equal(t, "TXN003", doc.Transactions[2].ID)
}

func TestRunSearch_KeywordIsCaseInsensitive(t *testing.T) {
	seed(t)
	resetFlags(t)
	keyword = "MARKET"

	cmd, out := clitest.Command(t)
	require.NoError(t, runSearch(cmd, nil))
	assert.Contains(t, out.String(), "TXN003")
	assert.Contains(t, out.String(), "1 match(es)")
}

func TestRunSearch_UnknownSortKey(t *testing.T) {
	seed(t)
	resetFlags(t)
	sortKey = "size"

	cmd, _ := clitest.Command(t)
	assert.Error(t, runSearch(cmd, nil))
}
