package categorizer

import (
	"context"

	"fjacquet/fintrack/internal/models"
)

// Strategy is one way of finding a category for an imported draft.
type Strategy interface {
	// Categorize returns the category for d and whether one was found.
	Categorize(ctx context.Context, d models.TransactionDraft) (string, bool)

	// Name returns the name of this strategy for logging.
	Name() string
}
