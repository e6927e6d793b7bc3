package categorizer

import (
	"context"
	"iter"
	"strings"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
)

// HistoryStrategy reuses the category of an earlier transaction with the
// same note. Later transactions override earlier ones.
type HistoryStrategy struct {
	mappings map[string]string
	logger   logging.Logger
}

// NewHistoryStrategy learns note to category mappings from txns.
// Uncategorized transactions teach nothing.
func NewHistoryStrategy(txns iter.Seq[models.Transaction], logger logging.Logger) *HistoryStrategy {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	s := &HistoryStrategy{mappings: make(map[string]string), logger: logger}
	for tx := range txns {
		key := normalize(tx.Note)
		if key == "" || tx.Category == models.CategoryUncategorized {
			continue
		}
		s.mappings[key] = tx.Category
	}
	logger.WithField(logging.FieldCount, len(s.mappings)).Debug("Loaded category mappings from ledger")
	return s
}

// Name returns the name of this strategy for logging.
func (s *HistoryStrategy) Name() string {
	return "History"
}

// Categorize implements Strategy.
func (s *HistoryStrategy) Categorize(_ context.Context, d models.TransactionDraft) (string, bool) {
	category, ok := s.mappings[normalize(d.Note)]
	if ok {
		s.logger.WithFields(
			logging.F("strategy", s.Name()),
			logging.F(logging.FieldCategory, category),
		).Debug("Transaction categorized using ledger history")
	}
	return category, ok
}

func normalize(note string) string {
	return strings.ToLower(strings.Join(strings.Fields(note), " "))
}
