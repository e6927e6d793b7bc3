// Package clitest wires the command packages to an in-memory application for
// tests.
package clitest

import (
	"bytes"
	"context"
	"testing"

	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/auth"
	"fjacquet/fintrack/internal/config"
	"fjacquet/fintrack/internal/container"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/session"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// UserName and Password are the credentials of the user Setup registers.
const (
	UserName = "ana"
	Password = "secret"
)

// Setup installs a memory-backed container as root.AppContainer, registers
// UserName and logs the shared flags in as that user. Everything is reset
// when the test ends.
func Setup(t *testing.T) (*container.Container, *logging.MockLogger) {
	t.Helper()
	cfg := config.Default()
	cfg.Data.Backend = "memory"
	cfg.Data.Directory = t.TempDir()

	mock := logging.NewMockLogger()
	c, err := container.NewContainer(cfg,
		container.WithLogger(mock),
		container.WithAuthOptions(auth.WithCost(bcrypt.MinCost)))
	require.NoError(t, err)

	_, err = c.GetAuth().Register(context.Background(), UserName, Password, "CHF")
	require.NoError(t, err)

	root.AppContainer = c
	root.AppConfig = cfg
	root.Log = mock
	root.SharedFlags = root.CommonFlags{User: UserName, Password: Password}
	t.Cleanup(func() {
		root.AppContainer = nil
		root.AppConfig = nil
		root.SharedFlags = root.CommonFlags{}
	})
	return c, mock
}

// Command returns a bare command whose output is captured in the buffer.
func Command(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(&out)
	return cmd, &out
}

// Seed adds drafts to the ledger of UserName and returns the open session.
func Seed(t *testing.T, c *container.Container, drafts ...models.TransactionDraft) *session.Session {
	t.Helper()
	s, err := c.OpenSession(context.Background(), UserName, Password)
	require.NoError(t, err)
	for _, d := range drafts {
		_, err := s.AddTransaction(context.Background(), d)
		require.NoError(t, err)
	}
	return s
}

// Draft is a shorthand for building a transaction draft.
func Draft(kind models.Kind, amount, category, date, note string) models.TransactionDraft {
	return models.TransactionDraft{
		Kind:     kind,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     date,
		Note:     note,
	}
}
