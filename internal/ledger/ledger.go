// Package ledger holds one user's transactions in memory. It is the single
// source of truth the search and report packages read from; persistence is
// the caller's concern.
package ledger

import (
	"iter"

	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/models"
)

// Ledger is an ordered, id-keyed collection of a single user's transactions.
// It is not safe for concurrent use; a session owns its ledger exclusively.
type Ledger struct {
	userID  string
	txns    []models.Transaction
	index   map[string]int
	nextSeq int
}

// New hydrates a ledger for userID. Every record must belong to userID, be
// valid and carry a unique id; otherwise nothing is loaded.
func New(userID string, txns []models.Transaction) (*Ledger, error) {
	if userID == "" {
		return nil, &fterrors.ValidationError{Entity: "ledger", Field: "user_id", Reason: "cannot be empty"}
	}
	l := &Ledger{
		userID: userID,
		txns:   make([]models.Transaction, 0, len(txns)),
		index:  make(map[string]int, len(txns)),
	}
	ids := make([]string, 0, len(txns))
	for _, tx := range txns {
		if tx.UserID != userID {
			return nil, &fterrors.ValidationError{Entity: "transaction", Field: "user_id", Value: tx.UserID, Reason: "belongs to another user"}
		}
		if err := tx.Validate(); err != nil {
			return nil, err
		}
		if _, dup := l.index[tx.ID]; dup {
			return nil, &fterrors.ValidationError{Entity: "transaction", Field: "id", Value: tx.ID, Reason: "duplicate identifier"}
		}
		l.index[tx.ID] = len(l.txns)
		l.txns = append(l.txns, tx)
		ids = append(ids, tx.ID)
	}
	l.nextSeq = models.NextSequence(ids)
	return l, nil
}

// UserID returns the owner of the ledger.
func (l *Ledger) UserID() string {
	return l.userID
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	return len(l.txns)
}

// Add validates the draft, assigns a fresh id and appends the transaction.
func (l *Ledger) Add(d models.TransactionDraft) (models.Transaction, error) {
	id := l.freshID()
	tx, err := models.NewTransaction(id, l.userID, d)
	if err != nil {
		return models.Transaction{}, err
	}
	l.index[tx.ID] = len(l.txns)
	l.txns = append(l.txns, tx)
	l.nextSeq++
	return tx, nil
}

// Get returns the transaction with the given id.
func (l *Ledger) Get(id string) (models.Transaction, error) {
	i, ok := l.index[id]
	if !ok {
		return models.Transaction{}, &fterrors.NotFoundError{Entity: "transaction", ID: id}
	}
	return l.txns[i], nil
}

// Edit applies the patch to the transaction with the given id. On any error
// the ledger is left exactly as it was.
func (l *Ledger) Edit(id string, p models.TransactionPatch) (models.Transaction, error) {
	i, ok := l.index[id]
	if !ok {
		return models.Transaction{}, &fterrors.NotFoundError{Entity: "transaction", ID: id}
	}
	updated, err := l.txns[i].Apply(p)
	if err != nil {
		return models.Transaction{}, err
	}
	l.txns[i] = updated
	return updated, nil
}

// Delete removes the transaction with the given id. Deleting an id that is
// not present fails, including a second delete of the same id.
func (l *Ledger) Delete(id string) error {
	i, ok := l.index[id]
	if !ok {
		return &fterrors.NotFoundError{Entity: "transaction", ID: id}
	}
	l.txns = append(l.txns[:i], l.txns[i+1:]...)
	delete(l.index, id)
	for j := i; j < len(l.txns); j++ {
		l.index[l.txns[j].ID] = j
	}
	return nil
}

// List yields the transactions accepted by filter in insertion order. A nil
// filter accepts everything. The sequence reads the ledger lazily, so it
// reflects the state at iteration time.
func (l *Ledger) List(filter func(models.Transaction) bool) iter.Seq[models.Transaction] {
	return func(yield func(models.Transaction) bool) {
		for _, tx := range l.txns {
			if filter != nil && !filter(tx) {
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// Snapshot returns a copy of every transaction in insertion order, suitable
// for persisting.
func (l *Ledger) Snapshot() []models.Transaction {
	out := make([]models.Transaction, len(l.txns))
	copy(out, l.txns)
	return out
}

// HasReference reports whether a transaction with the given external
// reference is already recorded. Empty references never match.
func (l *Ledger) HasReference(ref string) bool {
	if ref == "" {
		return false
	}
	for _, tx := range l.txns {
		if tx.Reference == ref {
			return true
		}
	}
	return false
}

func (l *Ledger) freshID() string {
	for {
		id := models.FormatSequenceID(models.TransactionIDPrefix, l.nextSeq)
		if _, taken := l.index[id]; !taken {
			return id
		}
		l.nextSeq++
	}
}
