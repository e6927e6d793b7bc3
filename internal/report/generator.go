package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/fintrack/internal/logging"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Format is a machine readable report encoding.
type Format string

// Supported formats. FormatText is rendered by the viz package, not here.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "", "txt":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", s)
	}
}

// Generator encodes aggregate documents as JSON or YAML.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a generator that logs through logger.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Generator{
		logger: logger.WithField("component", "ReportGenerator"),
	}
}

// Generate encodes doc in the requested format. The document is any of the
// aggregate types of this package, or a named wrapper around them.
func (g *Generator) Generate(doc any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return g.generateJSON(doc)
	case FormatYAML:
		return g.generateYAML(doc)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateJSON(doc any) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

func (g *Generator) generateYAML(doc any) ([]byte, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return out, nil
}

// MonthRow is one month of a monthly report document.
type MonthRow struct {
	Month string `json:"month" yaml:"month"`
	Sums  `yaml:",inline"`
}

// MonthRows flattens a MonthlySummary into chronological rows.
func MonthRows(summary map[string]Sums) []MonthRow {
	months := SortedMonths(summary)
	rows := make([]MonthRow, 0, len(months))
	for _, m := range months {
		rows = append(rows, MonthRow{Month: m, Sums: summary[m]})
	}
	return rows
}

// TrendPoint is one month of a trend document.
type TrendPoint struct {
	Month  string          `json:"month" yaml:"month"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// TrendPoints flattens a MonthlyTrend into chronological points.
func TrendPoints(trend map[string]decimal.Decimal) []TrendPoint {
	months := SortedMonths(trend)
	points := make([]TrendPoint, 0, len(months))
	for _, m := range months {
		points = append(points, TrendPoint{Month: m, Amount: trend[m]})
	}
	return points
}
