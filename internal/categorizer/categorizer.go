// Package categorizer fills in the category of imported transactions that
// arrive without one. Strategies are tried in order: the ledger's own
// history first, then keyword rules from a YAML file.
package categorizer

import (
	"context"
	"strings"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
)

// Categorizer runs strategies in order until one finds a category.
type Categorizer struct {
	strategies []Strategy
	logger     logging.Logger
}

// New creates a Categorizer. Nil strategies are skipped.
func New(logger logging.Logger, strategies ...Strategy) *Categorizer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	c := &Categorizer{logger: logger}
	for _, s := range strategies {
		if s != nil {
			c.strategies = append(c.strategies, s)
		}
	}
	return c
}

// Categorize returns the first category any strategy finds for d.
func (c *Categorizer) Categorize(ctx context.Context, d models.TransactionDraft) (string, bool) {
	for _, s := range c.strategies {
		if ctx.Err() != nil {
			return "", false
		}
		if category, ok := s.Categorize(ctx, d); ok {
			return category, true
		}
	}
	return "", false
}

// Apply sets the category of every draft that has none and returns how many
// it filled. Drafts with a category are left alone.
func (c *Categorizer) Apply(ctx context.Context, drafts []models.TransactionDraft) int {
	filled := 0
	for i := range drafts {
		current := strings.TrimSpace(drafts[i].Category)
		if current != "" && current != models.CategoryUncategorized {
			continue
		}
		if category, ok := c.Categorize(ctx, drafts[i]); ok {
			drafts[i].Category = category
			filled++
		}
	}
	c.logger.WithFields(
		logging.F(logging.FieldCount, len(drafts)),
		logging.F("categorized", filled),
	).Debug("Categorized imported transactions")
	return filled
}
