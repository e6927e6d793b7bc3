package report

import (
	"iter"
	"slices"

	"fjacquet/fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// Dashboard is the at-a-glance summary of a ledger.
type Dashboard struct {
	Count         int                  `json:"count" yaml:"count"`
	Totals        Sums                 `json:"totals" yaml:"totals"`
	Average       decimal.Decimal      `json:"average" yaml:"average"`
	TopCategories []CategoryAmount     `json:"top_categories" yaml:"top_categories"`
	Recent        []models.Transaction `json:"recent" yaml:"recent"`
}

// BuildDashboard collects totals, the average transaction size, the topN
// expense categories and the recentN latest transactions by date. Later
// insertions win date ties.
func BuildDashboard(seq iter.Seq[models.Transaction], topN, recentN int) Dashboard {
	txns := slices.Collect(seq)
	d := Dashboard{
		Count:   len(txns),
		Totals:  Totals(slices.Values(txns)),
		Average: decimal.Zero,
	}

	sum := decimal.Zero
	for _, tx := range txns {
		sum = sum.Add(tx.Amount)
	}
	if avg, ok := models.Ratio(sum, decimal.NewFromInt(int64(len(txns)))); ok {
		d.Average = avg
	}

	d.TopCategories = CategoryBreakdown(slices.Values(txns))
	if topN > 0 && len(d.TopCategories) > topN {
		d.TopCategories = d.TopCategories[:topN]
	}

	recent := slices.Clone(txns)
	slices.Reverse(recent)
	slices.SortStableFunc(recent, func(a, b models.Transaction) int { return b.Date.Compare(a.Date) })
	if recentN > 0 && len(recent) > recentN {
		recent = recent[:recentN]
	}
	d.Recent = recent
	return d
}
