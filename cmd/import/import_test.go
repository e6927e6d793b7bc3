package importcmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/fintrack/cmd/internal/clitest"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statement = `ID,Kind,Amount,Category,Date,Note,PaymentMethod,Reference
,income,5000,Salary,2025-01-01,January,,REF-1
,expense,1600,Rent,2025-01-15,,transfer,REF-2
,,-42.50,Food,2025-01-16,market,,
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunImport_SkipsDuplicateReferences(t *testing.T) {
	c, _ := clitest.Setup(t)
	dryRun = false
	path := writeFile(t, statement)

	cmd, out := clitest.Command(t)
	require.NoError(t, runImport(cmd, []string{"csv", path}))
	assert.Equal(t, "Imported 3 transaction(s), skipped 0 duplicate(s)\n", out.String())

	out.Reset()
	require.NoError(t, runImport(cmd, []string{"csv", path}))
	assert.Equal(t, "Imported 1 transaction(s), skipped 2 duplicate(s)\n", out.String())

	s, err := c.OpenSession(context.Background(), clitest.UserName, clitest.Password)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Ledger().Len())
}

func TestRunImport_DryRun(t *testing.T) {
	c, _ := clitest.Setup(t)
	dryRun = true
	t.Cleanup(func() { dryRun = false })
	path := writeFile(t, statement)

	cmd, out := clitest.Command(t)
	require.NoError(t, runImport(cmd, []string{"csv", path}))
	assert.Contains(t, out.String(), "3 transaction(s) read from")
	assert.Contains(t, out.String(), "0 categorized by rules")

	s, err := c.OpenSession(context.Background(), clitest.UserName, clitest.Password)
	require.NoError(t, err)
	assert.Zero(t, s.Ledger().Len())
}

func TestRunImport_InvalidRowRejectsFile(t *testing.T) {
	c, _ := clitest.Setup(t)
	dryRun = false
	path := writeFile(t, `Kind,Amount,Category,Date
income,100,Gift,2025-01-01
expense,50,Food,2025-02-30
`)

	cmd, _ := clitest.Command(t)
	err := runImport(cmd, []string{"csv", path})
	assert.True(t, fterrors.IsValidation(err), "got %v", err)

	s, err := c.OpenSession(context.Background(), clitest.UserName, clitest.Password)
	require.NoError(t, err)
	assert.Zero(t, s.Ledger().Len())
}

func TestRunImport_Rejections(t *testing.T) {
	clitest.Setup(t)
	cmd, _ := clitest.Command(t)
	assert.ErrorContains(t, runImport(cmd, []string{"xlsx", "ledger.xlsx"}), "export-only")
	assert.Error(t, runImport(cmd, []string{"csv", filepath.Join(t.TempDir(), "missing.csv")}))
}

func TestRunImport_CategorizesRowsWithoutCategory(t *testing.T) {
	c, _ := clitest.Setup(t)
	dryRun, noCategorize = false, false
	rules := "categories:\n  - name: Groceries\n    keywords: [migros]\n"
	require.NoError(t, os.WriteFile(root.AppConfig.CategoriesPath(), []byte(rules), 0o600))
	path := writeFile(t, `Kind,Amount,Category,Date,Note
expense,42.50,,2025-01-16,MIGROS Lausanne
expense,12,,2025-01-17,kiosk
`)

	cmd, out := clitest.Command(t)
	require.NoError(t, runImport(cmd, []string{"csv", path}))
	assert.Equal(t, "Categorized 1 transaction(s)\nImported 2 transaction(s), skipped 0 duplicate(s)\n", out.String())

	s, err := c.OpenSession(context.Background(), clitest.UserName, clitest.Password)
	require.NoError(t, err)
	first, err := s.Ledger().Get("TXN001")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", first.Category)
	second, err := s.Ledger().Get("TXN002")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryUncategorized, second.Category)
}

func TestRunImport_NoCategorize(t *testing.T) {
	clitest.Setup(t)
	dryRun, noCategorize = true, true
	t.Cleanup(func() { dryRun, noCategorize = false, false })
	require.NoError(t, os.WriteFile(root.AppConfig.CategoriesPath(), []byte("categories:\n  - name: Groceries\n    keywords: [migros]\n"), 0o600))
	path := writeFile(t, "Kind,Amount,Date,Note\nexpense,5,2025-01-16,migros\n")

	cmd, out := clitest.Command(t)
	require.NoError(t, runImport(cmd, []string{"csv", path}))
	assert.Contains(t, out.String(), "1 transaction(s) read from")
	assert.Contains(t, out.String(), "0 categorized by rules")
}
