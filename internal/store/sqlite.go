package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"fjacquet/fintrack/internal/fileutils"
	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps all records in one SQLite database file. Money is stored
// as decimal text so no precision is lost.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

// NewSQLiteStore opens (creating if needed) the database at path and applies
// pending migrations.
func NewSQLiteStore(path string, logger logging.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	unavailable := func(err error) error {
		return &fterrors.StorageUnavailableError{Backend: string(BackendSQLite), Path: path, Err: err}
	}

	if err := fileutils.EnsureDirectoryExists(filepath.Dir(path)); err != nil {
		return nil, unavailable(err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, unavailable(fmt.Errorf("open sqlite database: %w", err))
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, unavailable(fmt.Errorf("ping database: %w", err))
	}
	if err := runMigrations(path); err != nil {
		db.Close()
		return nil, unavailable(err)
	}

	s := &SQLiteStore{
		db:     db,
		path:   path,
		logger: logger.WithField(logging.FieldBackend, string(BackendSQLite)),
	}
	s.logger.WithField(logging.FieldFile, path).Debug("Opened SQLite store")
	return s, nil
}

// Path returns the database file.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) unavailable(op string, err error) error {
	return &fterrors.StorageUnavailableError{Backend: string(BackendSQLite), Path: s.path, Err: fmt.Errorf("%s: %w", op, err)}
}

// replace runs del and then one insert per row inside a single transaction.
func (s *SQLiteStore) replace(ctx context.Context, op, del string, delArgs []any, insert string, rows [][]any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.unavailable(op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, del, delArgs...); err != nil {
		return s.unavailable(op, err)
	}
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return s.unavailable(op, err)
	}
	defer stmt.Close()
	for _, args := range rows {
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return s.unavailable(op, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return s.unavailable(op, err)
	}
	s.logger.WithFields(logging.F(logging.FieldOperation, op), logging.F(logging.FieldCount, len(rows))).Debug("Saved rows")
	return nil
}

func checkOwner[T owned](userID string, records []T) error {
	for _, r := range records {
		if owner := ownerOf(r); owner != userID {
			return fmt.Errorf("record owned by '%s' cannot be saved for '%s'", owner, userID)
		}
	}
	return nil
}

func parseDate(s string) (models.Date, error) {
	if s == "" {
		return models.Date{}, nil
	}
	return models.ParseDate(s)
}

// LoadUsers implements Store.
func (s *SQLiteStore) LoadUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, password_hash, currency, created_at FROM users ORDER BY created_at, name`)
	if err != nil {
		return nil, s.unavailable("load users", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		var created string
		if err := rows.Scan(&u.ID, &u.Name, &u.PasswordHash, &u.Currency, &created); err != nil {
			return nil, s.unavailable("load users", err)
		}
		if u.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, s.unavailable("load users", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, s.unavailable("load users", err)
	}
	return users, nil
}

// SaveUsers implements Store.
func (s *SQLiteStore) SaveUsers(ctx context.Context, users []models.User) error {
	rows := make([][]any, 0, len(users))
	for _, u := range users {
		rows = append(rows, []any{u.ID, u.Name, u.PasswordHash, u.Currency, u.CreatedAt.UTC().Format(time.RFC3339Nano)})
	}
	return s.replace(ctx, "save users", `DELETE FROM users`, nil,
		`INSERT INTO users (id, name, password_hash, currency, created_at) VALUES (?, ?, ?, ?, ?)`, rows)
}

// LoadTransactions implements Store.
func (s *SQLiteStore) LoadTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, amount, category, date, note, payment_method, reference
		FROM transactions WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, s.unavailable("load transactions", err)
	}
	defer rows.Close()

	txns := []models.Transaction{}
	for rows.Next() {
		tx := models.Transaction{UserID: userID}
		var kind, date string
		if err := rows.Scan(&tx.ID, &kind, &tx.Amount, &tx.Category, &date, &tx.Note, &tx.PaymentMethod, &tx.Reference); err != nil {
			return nil, s.unavailable("load transactions", err)
		}
		tx.Kind = models.Kind(kind)
		if tx.Date, err = parseDate(date); err != nil {
			return nil, s.unavailable("load transactions", err)
		}
		txns = append(txns, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, s.unavailable("load transactions", err)
	}
	return txns, nil
}

// SaveTransactions implements Store.
func (s *SQLiteStore) SaveTransactions(ctx context.Context, userID string, txns []models.Transaction) error {
	if err := checkOwner(userID, txns); err != nil {
		return err
	}
	rows := make([][]any, 0, len(txns))
	for i, tx := range txns {
		rows = append(rows, []any{userID, tx.ID, i, string(tx.Kind), tx.Amount.String(), tx.Category, tx.Date.String(), tx.Note, tx.PaymentMethod, tx.Reference})
	}
	return s.replace(ctx, "save transactions", `DELETE FROM transactions WHERE user_id = ?`, []any{userID}, `
		INSERT INTO transactions (user_id, id, position, kind, amount, category, date, note, payment_method, reference)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, rows)
}

// LoadBudgets implements Store.
func (s *SQLiteStore) LoadBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT month, category, amount FROM budgets WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, s.unavailable("load budgets", err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		b := models.Budget{UserID: userID}
		if err := rows.Scan(&b.Month, &b.Category, &b.Limit); err != nil {
			return nil, s.unavailable("load budgets", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, s.unavailable("load budgets", err)
	}
	return budgets, nil
}

// SaveBudgets implements Store.
func (s *SQLiteStore) SaveBudgets(ctx context.Context, userID string, budgets []models.Budget) error {
	if err := checkOwner(userID, budgets); err != nil {
		return err
	}
	rows := make([][]any, 0, len(budgets))
	for i, b := range budgets {
		rows = append(rows, []any{userID, i, b.Month, b.Category, b.Limit.String()})
	}
	return s.replace(ctx, "save budgets", `DELETE FROM budgets WHERE user_id = ?`, []any{userID},
		`INSERT INTO budgets (user_id, position, month, category, amount) VALUES (?, ?, ?, ?, ?)`, rows)
}

// LoadGoals implements Store.
func (s *SQLiteStore) LoadGoals(ctx context.Context, userID string) ([]models.SavingsGoal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, target, saved, target_date FROM savings_goals WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, s.unavailable("load goals", err)
	}
	defer rows.Close()

	goals := []models.SavingsGoal{}
	for rows.Next() {
		g := models.SavingsGoal{UserID: userID}
		var targetDate string
		if err := rows.Scan(&g.Name, &g.Target, &g.Saved, &targetDate); err != nil {
			return nil, s.unavailable("load goals", err)
		}
		if g.TargetDate, err = parseDate(targetDate); err != nil {
			return nil, s.unavailable("load goals", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, s.unavailable("load goals", err)
	}
	return goals, nil
}

// SaveGoals implements Store.
func (s *SQLiteStore) SaveGoals(ctx context.Context, userID string, goals []models.SavingsGoal) error {
	if err := checkOwner(userID, goals); err != nil {
		return err
	}
	rows := make([][]any, 0, len(goals))
	for i, g := range goals {
		rows = append(rows, []any{userID, i, g.Name, g.Target.String(), g.Saved.String(), g.TargetDate.String()})
	}
	return s.replace(ctx, "save goals", `DELETE FROM savings_goals WHERE user_id = ?`, []any{userID},
		`INSERT INTO savings_goals (user_id, position, name, target, saved, target_date) VALUES (?, ?, ?, ?, ?, ?)`, rows)
}

// LoadBills implements Store.
func (s *SQLiteStore) LoadBills(ctx context.Context, userID string) ([]models.Bill, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, amount, due_date, due_day, repeat, payment_method, notes, paid
		FROM bills WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, s.unavailable("load bills", err)
	}
	defer rows.Close()

	bills := []models.Bill{}
	for rows.Next() {
		b := models.Bill{UserID: userID}
		var due, repeat string
		if err := rows.Scan(&b.ID, &b.Name, &b.Amount, &due, &b.DueDay, &repeat, &b.PaymentMethod, &b.Notes, &b.Paid); err != nil {
			return nil, s.unavailable("load bills", err)
		}
		b.Repeat = models.ParseRepeat(repeat)
		if b.DueDate, err = parseDate(due); err != nil {
			return nil, s.unavailable("load bills", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, s.unavailable("load bills", err)
	}
	return bills, nil
}

// SaveBills implements Store.
func (s *SQLiteStore) SaveBills(ctx context.Context, userID string, bills []models.Bill) error {
	if err := checkOwner(userID, bills); err != nil {
		return err
	}
	rows := make([][]any, 0, len(bills))
	for i, b := range bills {
		rows = append(rows, []any{userID, b.ID, i, b.Name, b.Amount.String(), b.DueDate.String(), b.DueDay, string(b.Repeat), b.PaymentMethod, b.Notes, b.Paid})
	}
	return s.replace(ctx, "save bills", `DELETE FROM bills WHERE user_id = ?`, []any{userID}, `
		INSERT INTO bills (user_id, id, position, name, amount, due_date, due_day, repeat, payment_method, notes, paid)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, rows)
}

// Backup writes a consistent copy of the database with VACUUM INTO.
func (s *SQLiteStore) Backup(ctx context.Context, at time.Time) ([]string, error) {
	backupDir := filepath.Join(filepath.Dir(s.path), BackupDir)
	if err := fileutils.EnsureDirectoryExists(backupDir); err != nil {
		return nil, s.unavailable("backup", err)
	}
	dst := filepath.Join(backupDir, fmt.Sprintf("%s_%s.bak", filepath.Base(s.path), at.Format(BackupTimestamp)))
	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, dst); err != nil {
		return nil, s.unavailable("backup", err)
	}
	s.logger.WithField(logging.FieldFile, dst).Info("Created backup")
	return []string{dst}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

var _ Store = (*SQLiteStore)(nil)
