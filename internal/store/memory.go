package store

import (
	"context"
	"slices"
	"time"

	"fjacquet/fintrack/internal/models"
)

// MemoryStore keeps everything in process memory. It backs tests and the
// "memory" backend, and can inject errors for testing error paths.
type MemoryStore struct {
	users        []models.User
	transactions map[string][]models.Transaction
	budgets      map[string][]models.Budget
	goals        map[string][]models.SavingsGoal
	bills        map[string][]models.Bill

	// Error injection
	LoadError error
	SaveError error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[string][]models.Transaction),
		budgets:      make(map[string][]models.Budget),
		goals:        make(map[string][]models.SavingsGoal),
		bills:        make(map[string][]models.Bill),
	}
}

func memLoad[T any](m map[string][]T, userID string, injected error) ([]T, error) {
	if injected != nil {
		return nil, injected
	}
	out := slices.Clone(m[userID])
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func memSave[T owned](m map[string][]T, userID string, records []T, injected error) error {
	if injected != nil {
		return injected
	}
	if err := checkOwner(userID, records); err != nil {
		return err
	}
	m[userID] = slices.Clone(records)
	return nil
}

// LoadUsers implements Store.
func (s *MemoryStore) LoadUsers(_ context.Context) ([]models.User, error) {
	if s.LoadError != nil {
		return nil, s.LoadError
	}
	out := slices.Clone(s.users)
	if out == nil {
		out = []models.User{}
	}
	return out, nil
}

// SaveUsers implements Store.
func (s *MemoryStore) SaveUsers(_ context.Context, users []models.User) error {
	if s.SaveError != nil {
		return s.SaveError
	}
	s.users = slices.Clone(users)
	return nil
}

// LoadTransactions implements Store.
func (s *MemoryStore) LoadTransactions(_ context.Context, userID string) ([]models.Transaction, error) {
	return memLoad(s.transactions, userID, s.LoadError)
}

// SaveTransactions implements Store.
func (s *MemoryStore) SaveTransactions(_ context.Context, userID string, txns []models.Transaction) error {
	return memSave(s.transactions, userID, txns, s.SaveError)
}

// LoadBudgets implements Store.
func (s *MemoryStore) LoadBudgets(_ context.Context, userID string) ([]models.Budget, error) {
	return memLoad(s.budgets, userID, s.LoadError)
}

// SaveBudgets implements Store.
func (s *MemoryStore) SaveBudgets(_ context.Context, userID string, budgets []models.Budget) error {
	return memSave(s.budgets, userID, budgets, s.SaveError)
}

// LoadGoals implements Store.
func (s *MemoryStore) LoadGoals(_ context.Context, userID string) ([]models.SavingsGoal, error) {
	return memLoad(s.goals, userID, s.LoadError)
}

// SaveGoals implements Store.
func (s *MemoryStore) SaveGoals(_ context.Context, userID string, goals []models.SavingsGoal) error {
	return memSave(s.goals, userID, goals, s.SaveError)
}

// LoadBills implements Store.
func (s *MemoryStore) LoadBills(_ context.Context, userID string) ([]models.Bill, error) {
	return memLoad(s.bills, userID, s.LoadError)
}

// SaveBills implements Store.
func (s *MemoryStore) SaveBills(_ context.Context, userID string, bills []models.Bill) error {
	return memSave(s.bills, userID, bills, s.SaveError)
}

// Backup is a no-op for memory; nothing is written.
func (s *MemoryStore) Backup(_ context.Context, _ time.Time) ([]string, error) {
	return nil, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
