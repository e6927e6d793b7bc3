// Package session binds an authenticated user to their hydrated ledger and
// planning data for one invocation. Every mutation persists immediately; a
// failed save leaves the in-memory state as it was before the call.
package session

import (
	"context"
	"fmt"

	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/ledger"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/store"
)

// Session is one user's scope. It is not safe for concurrent use.
type Session struct {
	user   models.User
	ledger *ledger.Ledger
	store  store.Store
	logger logging.Logger

	// degraded is set when stored transactions could not be loaded; saving
	// would then overwrite data the user never saw.
	degraded bool
}

// Open hydrates the ledger of user from st. Unreadable or invalid stored
// transactions yield an empty, read-only ledger and a warning.
func Open(ctx context.Context, st store.Store, user models.User, logger logging.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	log := logger.WithFields(logging.F(logging.FieldUserID, user.ID), logging.F(logging.FieldUserName, user.Name))
	s := &Session{user: user, store: st, logger: log}

	txns, err := st.LoadTransactions(ctx, user.ID)
	if err == nil {
		s.ledger, err = ledger.New(user.ID, txns)
	}
	if err != nil {
		if !fterrors.IsStorageUnavailable(err) && !fterrors.IsValidation(err) {
			return nil, err
		}
		log.WithError(err).Warn("Stored transactions could not be loaded; starting with an empty ledger")
		s.degraded = true
		if s.ledger, err = ledger.New(user.ID, nil); err != nil {
			return nil, err
		}
		return s, nil
	}
	log.WithField(logging.FieldCount, s.ledger.Len()).Debug("Ledger loaded")
	return s, nil
}

// User returns the authenticated user.
func (s *Session) User() models.User {
	return s.user
}

// Ledger exposes the hydrated ledger for read-only use.
func (s *Session) Ledger() *ledger.Ledger {
	return s.ledger
}

// Degraded reports whether the ledger failed to load and is read-only.
func (s *Session) Degraded() bool {
	return s.degraded
}

// mutate applies change to the ledger and persists it. On any failure the
// ledger is restored from its prior snapshot.
func (s *Session) mutate(ctx context.Context, op string, change func(l *ledger.Ledger) error) error {
	if s.degraded {
		return &fterrors.StorageUnavailableError{Backend: "ledger", Path: s.user.ID, Err: fmt.Errorf("ledger was not loaded; refusing to overwrite stored transactions")}
	}
	before := s.ledger.Snapshot()
	restore := func() {
		if restored, err := ledger.New(s.user.ID, before); err == nil {
			s.ledger = restored
		}
	}
	if err := change(s.ledger); err != nil {
		restore()
		return err
	}
	if err := s.store.SaveTransactions(ctx, s.user.ID, s.ledger.Snapshot()); err != nil {
		restore()
		s.logger.WithError(err).WithField(logging.FieldOperation, op).Error("Failed to persist ledger")
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	return nil
}

// AddTransaction validates draft, appends it and persists the ledger.
func (s *Session) AddTransaction(ctx context.Context, draft models.TransactionDraft) (models.Transaction, error) {
	var added models.Transaction
	err := s.mutate(ctx, "add", func(l *ledger.Ledger) error {
		var err error
		added, err = l.Add(draft)
		return err
	})
	if err != nil {
		return models.Transaction{}, err
	}
	s.logger.WithFields(
		logging.F(logging.FieldTransactionID, added.ID),
		logging.F(logging.FieldKind, added.Kind),
		logging.F(logging.FieldAmount, added.Amount.String()),
	).Info("Transaction added")
	return added, nil
}

// EditTransaction applies patch to the transaction with id and persists.
func (s *Session) EditTransaction(ctx context.Context, id string, patch models.TransactionPatch) (models.Transaction, error) {
	var edited models.Transaction
	err := s.mutate(ctx, "edit", func(l *ledger.Ledger) error {
		var err error
		edited, err = l.Edit(id, patch)
		return err
	})
	if err != nil {
		return models.Transaction{}, err
	}
	s.logger.WithField(logging.FieldTransactionID, id).Info("Transaction edited")
	return edited, nil
}

// DeleteTransaction removes the transaction with id and persists.
func (s *Session) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.mutate(ctx, "delete", func(l *ledger.Ledger) error { return l.Delete(id) }); err != nil {
		return err
	}
	s.logger.WithField(logging.FieldTransactionID, id).Info("Transaction deleted")
	return nil
}

// ImportResult counts the outcome of ImportTransactions.
type ImportResult struct {
	Added      []models.Transaction
	Duplicates int
}

// ImportTransactions adds every draft whose Reference is not already in the
// ledger. The import is all or nothing: one invalid draft rejects the batch.
func (s *Session) ImportTransactions(ctx context.Context, drafts []models.TransactionDraft) (ImportResult, error) {
	var result ImportResult
	err := s.mutate(ctx, "import", func(l *ledger.Ledger) error {
		seen := make(map[string]bool)
		for i, d := range drafts {
			if d.Reference != "" && (l.HasReference(d.Reference) || seen[d.Reference]) {
				result.Duplicates++
				continue
			}
			tx, err := l.Add(d)
			if err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			if d.Reference != "" {
				seen[d.Reference] = true
			}
			result.Added = append(result.Added, tx)
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	s.logger.WithFields(
		logging.F(logging.FieldCount, len(result.Added)),
		logging.F("duplicates", result.Duplicates),
	).Info("Transactions imported")
	return result, nil
}
