package container

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/fintrack/internal/auth"
	"fjacquet/fintrack/internal/config"
	"fjacquet/fintrack/internal/exchange"
	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Data.Directory = t.TempDir()
	cfg.Data.Backend = backend
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      func(t *testing.T) *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      func(t *testing.T) *config.Config { return nil },
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "json backend",
			config: func(t *testing.T) *config.Config { return testConfig(t, "json") },
		},
		{
			name:   "sqlite backend",
			config: func(t *testing.T) *config.Config { return testConfig(t, "sqlite") },
		},
		{
			name: "unknown backend",
			config: func(t *testing.T) *config.Config {
				return testConfig(t, "postgres")
			},
			expectError: true,
			errorMsg:    "postgres",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config(t), WithLogger(logging.NewMockLogger()))
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { c.Close() })

			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetConfig())
			assert.NotNil(t, c.GetStore())
			assert.NotNil(t, c.GetAuth())
			assert.NotNil(t, c.GetGenerator())
			assert.NotNil(t, c.GetCodec())
		})
	}
}

func TestNewContainer_EmptyDelimiter(t *testing.T) {
	cfg := testConfig(t, "memory")
	cfg.Export.Delimiter = ""
	c, err := NewContainer(cfg, WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, c.GetCodec().Export(&out, exchange.FormatCSV, nil, "CHF"))
	assert.True(t, strings.HasPrefix(out.String(), "ID,Kind,"), out.String())
}

func TestContainer_OpenSession(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	c, err := NewContainer(testConfig(t, "memory"),
		WithStore(st),
		WithLogger(logging.NewMockLogger()),
		WithAuthOptions(auth.WithCost(bcrypt.MinCost)))
	require.NoError(t, err)

	_, err = c.GetAuth().Register(ctx, "ana", "secret", "eur")
	require.NoError(t, err)

	_, err = c.OpenSession(ctx, "ana", "wrong")
	var authErr *fterrors.AuthenticationError
	require.ErrorAs(t, err, &authErr)

	s, err := c.OpenSession(ctx, "ANA", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ana", s.User().Name)

	_, err = s.AddTransaction(ctx, models.TransactionDraft{
		Kind:     models.KindIncome,
		Amount:   decimal.RequireFromString("100"),
		Category: "Salary",
		Date:     "2025-01-01",
	})
	require.NoError(t, err)

	stored, err := st.LoadTransactions(ctx, s.User().ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	assert.Equal(t, "EUR", c.Renderer(s).Currency)
	assert.Equal(t, "CHF", c.Renderer(nil).Currency)
}

func TestContainer_Categorizer(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, "memory")
	rules := "categories:\n  - name: Groceries\n    keywords: [migros]\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Data.Directory, "categories.yaml"), []byte(rules), 0o600))

	mock := logging.NewMockLogger()
	c, err := NewContainer(cfg, WithLogger(mock), WithAuthOptions(auth.WithCost(bcrypt.MinCost)))
	require.NoError(t, err)
	_, err = c.GetAuth().Register(ctx, "ana", "secret", "")
	require.NoError(t, err)
	s, err := c.OpenSession(ctx, "ana", "secret")
	require.NoError(t, err)
	_, err = s.AddTransaction(ctx, models.TransactionDraft{
		Kind:     models.KindExpense,
		Amount:   decimal.RequireFromString("20"),
		Category: "Streaming",
		Date:     "2025-01-01",
		Note:     "Netflix",
	})
	require.NoError(t, err)

	drafts := []models.TransactionDraft{{Note: "MIGROS Lausanne"}, {Note: "netflix"}}
	assert.Equal(t, 2, c.Categorizer(s).Apply(ctx, drafts))
	assert.Equal(t, "Groceries", drafts[0].Category)
	assert.Equal(t, "Streaming", drafts[1].Category)

	drafts = []models.TransactionDraft{{Note: "netflix"}}
	assert.Zero(t, c.Categorizer(nil).Apply(ctx, drafts), "no history without a session")
}

func TestContainer_CategorizerSkipsBrokenRules(t *testing.T) {
	cfg := testConfig(t, "memory")
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Data.Directory, "categories.yaml"), []byte("categories: [x"), 0o600))
	mock := logging.NewMockLogger()
	c, err := NewContainer(cfg, WithLogger(mock))
	require.NoError(t, err)

	drafts := []models.TransactionDraft{{Note: "anything"}}
	assert.Zero(t, c.Categorizer(nil).Apply(context.Background(), drafts))
	assert.True(t, mock.HasEntry("WARN", "Failed to load category rules"))
}
