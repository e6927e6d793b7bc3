package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"fjacquet/fintrack/internal/fileutils"
	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
)

// JSONStore keeps every record type in its own JSON array file under a data
// directory. Records of all users share one file per type.
type JSONStore struct {
	dir           string
	backupEnabled bool
	logger        logging.Logger
}

// NewJSONStore creates a store rooted at dir. When backupEnabled is set, each
// save first copies the previous file to <file>.bak.
func NewJSONStore(dir string, backupEnabled bool, logger logging.Logger) (*JSONStore, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if err := fileutils.EnsureDirectoryExists(dir); err != nil {
		return nil, &fterrors.StorageUnavailableError{Backend: string(BackendJSON), Path: dir, Err: err}
	}
	return &JSONStore{
		dir:           dir,
		backupEnabled: backupEnabled,
		logger:        logger.WithField(logging.FieldBackend, string(BackendJSON)),
	}, nil
}

// Dir returns the data directory.
func (s *JSONStore) Dir() string {
	return s.dir
}

func (s *JSONStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

// readAll decodes a JSON array file. A missing or empty file is an empty
// slice; undecodable content is a StorageUnavailableError.
func readAll[T any](s *JSONStore, name string) ([]T, error) {
	path := s.path(name)
	data, ok, err := fileutils.ReadFileIfExists(path)
	if err != nil {
		return nil, &fterrors.StorageUnavailableError{Backend: string(BackendJSON), Path: path, Err: err}
	}
	if !ok || len(data) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &fterrors.StorageUnavailableError{Backend: string(BackendJSON), Path: path, Err: fmt.Errorf("corrupt data file: %w", err)}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// writeAll encodes records as an indented JSON array, keeping a .bak copy of
// the previous file when enabled.
func writeAll[T any](s *JSONStore, name string, records []T) error {
	path := s.path(name)
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if s.backupEnabled && fileutils.FileExists(path) {
		if err := fileutils.CopyFile(path, path+".bak", models.PermissionDataFile); err != nil {
			return &fterrors.StorageUnavailableError{Backend: string(BackendJSON), Path: path, Err: err}
		}
	}
	if err := fileutils.WriteFile(path, append(data, '\n'), models.PermissionDataFile); err != nil {
		return &fterrors.StorageUnavailableError{Backend: string(BackendJSON), Path: path, Err: err}
	}
	s.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(records)},
	).Debug("Saved data file")
	return nil
}

func loadFor[T owned](s *JSONStore, name, userID string) ([]T, error) {
	all, err := readAll[T](s, name)
	if err != nil {
		return nil, err
	}
	return forUser(all, userID), nil
}

func saveFor[T owned](s *JSONStore, name, userID string, records []T) error {
	all, err := readAll[T](s, name)
	if err != nil {
		// Never overwrite a file that could not be read.
		return err
	}
	merged, err := replaceUser(all, userID, records)
	if err != nil {
		return err
	}
	return writeAll(s, name, merged)
}

// LoadUsers implements Store.
func (s *JSONStore) LoadUsers(_ context.Context) ([]models.User, error) {
	return readAll[models.User](s, UsersFile)
}

// SaveUsers implements Store.
func (s *JSONStore) SaveUsers(_ context.Context, users []models.User) error {
	return writeAll(s, UsersFile, users)
}

// LoadTransactions implements Store.
func (s *JSONStore) LoadTransactions(_ context.Context, userID string) ([]models.Transaction, error) {
	return loadFor[models.Transaction](s, TransactionsFile, userID)
}

// SaveTransactions implements Store.
func (s *JSONStore) SaveTransactions(_ context.Context, userID string, txns []models.Transaction) error {
	return saveFor(s, TransactionsFile, userID, txns)
}

// LoadBudgets implements Store.
func (s *JSONStore) LoadBudgets(_ context.Context, userID string) ([]models.Budget, error) {
	return loadFor[models.Budget](s, BudgetsFile, userID)
}

// SaveBudgets implements Store.
func (s *JSONStore) SaveBudgets(_ context.Context, userID string, budgets []models.Budget) error {
	return saveFor(s, BudgetsFile, userID, budgets)
}

// LoadGoals implements Store.
func (s *JSONStore) LoadGoals(_ context.Context, userID string) ([]models.SavingsGoal, error) {
	return loadFor[models.SavingsGoal](s, GoalsFile, userID)
}

// SaveGoals implements Store.
func (s *JSONStore) SaveGoals(_ context.Context, userID string, goals []models.SavingsGoal) error {
	return saveFor(s, GoalsFile, userID, goals)
}

// LoadBills implements Store.
func (s *JSONStore) LoadBills(_ context.Context, userID string) ([]models.Bill, error) {
	return loadFor[models.Bill](s, BillsFile, userID)
}

// SaveBills implements Store.
func (s *JSONStore) SaveBills(_ context.Context, userID string, bills []models.Bill) error {
	return saveFor(s, BillsFile, userID, bills)
}

// Backup copies every existing data file to backups/<name>_<timestamp>.bak.
func (s *JSONStore) Backup(_ context.Context, at time.Time) ([]string, error) {
	backupDir := s.path(BackupDir)
	stamp := at.Format(BackupTimestamp)
	var written []string
	for _, name := range []string{UsersFile, TransactionsFile, BudgetsFile, GoalsFile, BillsFile} {
		src := s.path(name)
		if !fileutils.FileExists(src) {
			continue
		}
		dst := filepath.Join(backupDir, fmt.Sprintf("%s_%s.bak", name, stamp))
		if err := fileutils.CopyFile(src, dst, models.PermissionDataFile); err != nil {
			return written, &fterrors.StorageUnavailableError{Backend: string(BackendJSON), Path: dst, Err: err}
		}
		s.logger.WithField(logging.FieldFile, dst).Info("Created backup")
		written = append(written, dst)
	}
	return written, nil
}

// Close implements Store. JSON files hold no open handles.
func (s *JSONStore) Close() error {
	return nil
}

var _ Store = (*JSONStore)(nil)
