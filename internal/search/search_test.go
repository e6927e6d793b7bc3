package search

import (
	"slices"
	"testing"

	"fjacquet/fintrack/internal/ledger"
	"fjacquet/fintrack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func exampleLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	l, err := ledger.New("u-1", nil)
	require.NoError(t, err)
	for _, d := range []models.TransactionDraft{
		{Kind: models.KindIncome, Amount: decimal.NewFromInt(5000), Date: "2025-01-01", Category: "Salary", Note: "January pay"},
		{Kind: models.KindExpense, Amount: decimal.NewFromInt(1600), Date: "2025-01-15", Category: "Rent", Note: "flat"},
		{Kind: models.KindExpense, Amount: decimal.NewFromInt(1000), Date: "2025-02-01", Category: "Rent", Note: "Flat, reduced"},
		{Kind: models.KindExpense, Amount: decimal.NewFromInt(350), Date: "2025-03-05", Category: "Food"},
	} {
		_, err := l.Add(d)
		require.NoError(t, err)
	}
	return l
}

func ids(txns []models.Transaction) []string {
	out := make([]string, 0, len(txns))
	for _, tx := range txns {
		out = append(out, tx.ID)
	}
	return out
}

func TestFilter_CategoryAndMinimumAmount(t *testing.T) {
	l := exampleLedger(t)
	got := slices.Collect(Filter(l.List(nil), Criteria{
		Category:  ptr("Rent"),
		AmountMin: ptr(decimal.NewFromInt(1500)),
	}))
	require.Len(t, got, 1)
	assert.Equal(t, "Rent", got[0].Category)
	assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(1600)))
}

func TestMatches(t *testing.T) {
	l := exampleLedger(t)
	jan15 := models.Date{Year: 2025, Month: 1, Day: 15}
	feb1 := models.Date{Year: 2025, Month: 2, Day: 1}

	tests := []struct {
		name     string
		criteria Criteria
		expected []string
	}{
		{"empty criteria match all", Criteria{}, []string{"TXN001", "TXN002", "TXN003", "TXN004"}},
		{"inclusive date range", Criteria{DateFrom: &jan15, DateTo: &feb1}, []string{"TXN002", "TXN003"}},
		{"open ended from", Criteria{DateFrom: &feb1}, []string{"TXN003", "TXN004"}},
		{"inclusive amount range", Criteria{AmountMin: ptr(decimal.NewFromInt(350)), AmountMax: ptr(decimal.NewFromInt(1000))}, []string{"TXN003", "TXN004"}},
		{"kind", Criteria{Kind: ptr(models.KindIncome)}, []string{"TXN001"}},
		{"category is exact", Criteria{Category: ptr("rent")}, []string{}},
		{"keyword case insensitive", Criteria{Keyword: "FLAT"}, []string{"TXN002", "TXN003"}},
		{"and semantics", Criteria{Kind: ptr(models.KindExpense), DateTo: &jan15}, []string{"TXN002"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(Filter(l.List(nil), tt.criteria))
			assert.Equal(t, tt.expected, ids(got))

			viaPredicate := slices.Collect(l.List(tt.criteria.Predicate()))
			assert.Equal(t, tt.expected, ids(viaPredicate))
		})
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	l := exampleLedger(t)
	got := slices.Collect(Filter(l.List(nil), Criteria{Kind: ptr(models.KindExpense)}))
	assert.Equal(t, []string{"TXN002", "TXN003", "TXN004"}, ids(got))
}

func TestSort(t *testing.T) {
	l := exampleLedger(t)
	all := l.Snapshot()

	byAmount := Sort(all, SortAmount, false)
	assert.Equal(t, []string{"TXN004", "TXN003", "TXN002", "TXN001"}, ids(byAmount))

	byAmountDesc := Sort(all, SortAmount, true)
	assert.Equal(t, []string{"TXN001", "TXN002", "TXN003", "TXN004"}, ids(byAmountDesc))

	byCategory := Sort(all, SortCategory, false)
	assert.Equal(t, []string{"TXN004", "TXN002", "TXN003", "TXN001"}, ids(byCategory), "stable within Rent")

	byKind := Sort(all, SortKind, false)
	assert.Equal(t, "TXN002", byKind[0].ID)
	assert.Equal(t, "TXN001", byKind[3].ID)

	assert.Equal(t, ids(all), ids(Sort(all, SortNone, true)))
	assert.Equal(t, []string{"TXN001", "TXN002", "TXN003", "TXN004"}, ids(all), "input untouched")
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("Kind")
	require.NoError(t, err)
	assert.Equal(t, SortKind, k)

	k, err = ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortNone, k)

	_, err = ParseSortKey("payee")
	assert.Error(t, err)
}
