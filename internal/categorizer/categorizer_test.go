package categorizer

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rulesYAML = `categories:
  - name: Groceries
    keywords: [migros, coop]
  - name: Transport
    keywords: [sbb, " CFF "]
  - name: Empty
    keywords: []
  - name: ""
    keywords: [ignored]
`

func draft(note, category string) models.TransactionDraft {
	return models.TransactionDraft{
		Kind:     models.KindExpense,
		Amount:   decimal.NewFromInt(10),
		Category: category,
		Date:     "2025-01-01",
		Note:     note,
	}
}

func writeRules(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte(rulesYAML), 0o600))
	return path
}

func TestLoadRules(t *testing.T) {
	rules, err := LoadRules(writeRules(t))
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "Groceries", rules[0].Category)
	assert.Equal(t, []string{"sbb", " CFF "}, rules[1].Keywords)
}

func TestLoadRules_MissingFile(t *testing.T) {
	rules, err := LoadRules(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Nil(t, rules)
}

func TestLoadRules_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: [name"), 0o600))
	_, err := LoadRules(path)
	assert.ErrorContains(t, err, "failed to parse category rules")
}

func TestKeywordStrategy(t *testing.T) {
	rules, err := LoadRules(writeRules(t))
	require.NoError(t, err)
	s := NewKeywordStrategy(rules, nil)

	tests := []struct {
		name     string
		draft    models.TransactionDraft
		expected string
		found    bool
	}{
		{"note match", draft("MIGROS Lausanne", ""), "Groceries", true},
		{"trimmed keyword", draft("cff ticket", ""), "Transport", true},
		{"payment method match", models.TransactionDraft{PaymentMethod: "SBB app"}, "Transport", true},
		{"no match", draft("dentist", ""), "", false},
		{"empty text", draft("", ""), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, found := s.Categorize(context.Background(), tt.draft)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, category)
		})
	}
}

func TestHistoryStrategy(t *testing.T) {
	txns := []models.Transaction{
		{Note: "Netflix", Category: "Entertainment"},
		{Note: "netflix ", Category: "Subscriptions"},
		{Note: "Mystery", Category: models.CategoryUncategorized},
		{Note: "", Category: "Food"},
	}
	s := NewHistoryStrategy(slices.Values(txns), nil)

	category, ok := s.Categorize(context.Background(), draft("NETFLIX", ""))
	assert.True(t, ok)
	assert.Equal(t, "Subscriptions", category, "later transactions override")

	_, ok = s.Categorize(context.Background(), draft("mystery", ""))
	assert.False(t, ok)
	_, ok = s.Categorize(context.Background(), draft("", ""))
	assert.False(t, ok)
}

func TestCategorizer_Apply(t *testing.T) {
	rules, err := LoadRules(writeRules(t))
	require.NoError(t, err)
	history := NewHistoryStrategy(slices.Values([]models.Transaction{
		{Note: "coop pronto", Category: "Snacks"},
	}), nil)
	mock := logging.NewMockLogger()
	c := New(mock, history, nil, NewKeywordStrategy(rules, mock))

	drafts := []models.TransactionDraft{
		draft("Coop Pronto", ""),
		draft("Coop City", models.CategoryUncategorized),
		draft("Migros", "Household"),
		draft("Dentist", ""),
	}
	filled := c.Apply(context.Background(), drafts)

	assert.Equal(t, 2, filled)
	assert.Equal(t, "Snacks", drafts[0].Category, "history wins over keywords")
	assert.Equal(t, "Groceries", drafts[1].Category)
	assert.Equal(t, "Household", drafts[2].Category, "explicit category is kept")
	assert.Empty(t, drafts[3].Category)
	assert.True(t, mock.HasEntry("DEBUG", "Categorized imported transactions"))
}

func TestCategorizer_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := New(nil, NewKeywordStrategy([]Rule{{Category: "Groceries", Keywords: []string{"coop"}}}, nil))
	_, ok := c.Categorize(ctx, draft("coop", ""))
	assert.False(t, ok)
}
