// Package store persists users and their ledgers, budgets, savings goals and
// bills. Three backends implement Store: JSON files (the default), SQLite and
// memory.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/fintrack/internal/models"
)

// Store is the persistence boundary of fintrack. Loads of a user without
// data return empty slices; Saves replace everything stored for that user.
type Store interface {
	LoadUsers(ctx context.Context) ([]models.User, error)
	SaveUsers(ctx context.Context, users []models.User) error

	LoadTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	SaveTransactions(ctx context.Context, userID string, txns []models.Transaction) error

	LoadBudgets(ctx context.Context, userID string) ([]models.Budget, error)
	SaveBudgets(ctx context.Context, userID string, budgets []models.Budget) error

	LoadGoals(ctx context.Context, userID string) ([]models.SavingsGoal, error)
	SaveGoals(ctx context.Context, userID string, goals []models.SavingsGoal) error

	LoadBills(ctx context.Context, userID string) ([]models.Bill, error)
	SaveBills(ctx context.Context, userID string, bills []models.Bill) error

	// Backup copies the current data into the backups directory and returns
	// the paths written.
	Backup(ctx context.Context, at time.Time) ([]string, error)

	Close() error
}

// Backend names a Store implementation.
type Backend string

// Backends
const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// ParseBackend validates a configured backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendJSON, BackendSQLite, BackendMemory:
		return b, nil
	case "":
		return BackendJSON, nil
	default:
		return "", fmt.Errorf("unknown storage backend '%s' (json, sqlite, memory)", s)
	}
}

// Data file names inside the data directory.
const (
	UsersFile        = "users.json"
	TransactionsFile = "transactions.json"
	BudgetsFile      = "budgets.json"
	GoalsFile        = "savings_goals.json"
	BillsFile        = "bills.json"

	// BackupDir is the subdirectory Backup writes into.
	BackupDir = "backups"

	// BackupTimestamp is appended to backup file names.
	BackupTimestamp = "20060102_150405"
)

// owned lists the per-user record types.
type owned interface {
	models.Transaction | models.Budget | models.SavingsGoal | models.Bill
}

func ownerOf[T owned](v T) string {
	switch r := any(v).(type) {
	case models.Transaction:
		return r.UserID
	case models.Budget:
		return r.UserID
	case models.SavingsGoal:
		return r.UserID
	case models.Bill:
		return r.UserID
	}
	return ""
}

// forUser keeps the records owned by userID, preserving order.
func forUser[T owned](all []T, userID string) []T {
	out := make([]T, 0)
	for _, v := range all {
		if ownerOf(v) == userID {
			out = append(out, v)
		}
	}
	return out
}

// replaceUser drops userID's records from all and appends records. Records in
// records owned by another user are rejected.
func replaceUser[T owned](all []T, userID string, records []T) ([]T, error) {
	for _, v := range records {
		if owner := ownerOf(v); owner != userID {
			return nil, fmt.Errorf("record owned by '%s' cannot be saved for '%s'", owner, userID)
		}
	}
	out := make([]T, 0, len(all)+len(records))
	for _, v := range all {
		if ownerOf(v) != userID {
			out = append(out, v)
		}
	}
	return append(out, records...), nil
}
