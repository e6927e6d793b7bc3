// Package viz renders aggregates as plain text tables and ASCII bar charts.
package viz

import (
	"fmt"
	"strings"

	"fjacquet/fintrack/internal/models"

	"github.com/shopspring/decimal"
)

const (
	// DefaultWidth is the bar width used when none is configured.
	DefaultWidth = 40
	// ProgressWidth is the fixed width of goal progress bars, one cell per 5%.
	ProgressWidth = 20

	barRune      = "█"
	progressFill = "█"
	progressRest = "."
)

// barLength scales value against peak into [0, width]. Negative values and a
// non-positive peak draw nothing.
func barLength(value, peak decimal.Decimal, width int) int {
	if width <= 0 || !peak.IsPositive() || !value.IsPositive() {
		return 0
	}
	n := int(value.Mul(decimal.NewFromInt(int64(width))).Div(peak).IntPart())
	return min(n, width)
}

// Bar renders one chart line: the label padded to 12 columns, the bar and the
// value.
func Bar(label string, value, peak decimal.Decimal, width int) string {
	return fmt.Sprintf("%-12s | %s %s", label, strings.Repeat(barRune, barLength(value, peak, width)), value.StringFixed(models.MoneyPlaces))
}

// ProgressBar renders a ratio as a 20 cell bar followed by the percentage.
// The bar is clamped to [0, 100%]; the percentage is not.
func ProgressBar(ratio decimal.Decimal) string {
	filled := barLength(ratio, decimal.NewFromInt(1), ProgressWidth)
	return fmt.Sprintf("[%s%s] %.1f%%",
		strings.Repeat(progressFill, filled),
		strings.Repeat(progressRest, ProgressWidth-filled),
		models.Percent(ratio))
}

// Row is a labelled value for a bar chart.
type Row struct {
	Label string
	Value decimal.Decimal
}

// Chart renders rows as bars scaled against the largest value.
func Chart(rows []Row, width int) string {
	if len(rows) == 0 {
		return ""
	}
	peak := rows[0].Value
	for _, r := range rows[1:] {
		if r.Value.GreaterThan(peak) {
			peak = r.Value
		}
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(Bar(r.Label, r.Value, peak, width))
		b.WriteByte('\n')
	}
	return b.String()
}
