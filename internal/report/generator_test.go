package report

import (
	"encoding/json"
	"testing"

	"fjacquet/fintrack/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGenerator_JSON(t *testing.T) {
	generator := NewGenerator(logging.NewMockLogger())
	rows := MonthRows(MonthlySummary(exampleLedger(t).List(nil)))

	out, err := generator.Generate(rows, FormatJSON)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "2025-01", decoded[0]["month"])
	assert.Equal(t, "5000", decoded[0]["income"])
	assert.Equal(t, "3400", decoded[0]["net"])
}

func TestGenerator_YAML(t *testing.T) {
	generator := NewGenerator(logging.NewMockLogger())
	points := TrendPoints(MonthlyTrend(exampleLedger(t).List(nil), ViewExpense))

	out, err := generator.Generate(points, FormatYAML)
	require.NoError(t, err)

	var decoded []map[string]string
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, []map[string]string{
		{"month": "2025-01", "amount": "1600"},
		{"month": "2025-02", "amount": "1000"},
		{"month": "2025-03", "amount": "350"},
	}, decoded)
}

func TestGenerator_YAMLInlinesMonthSums(t *testing.T) {
	generator := NewGenerator(nil)
	out, err := generator.Generate(MonthRows(MonthlySummary(exampleLedger(t).List(nil))), FormatYAML)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "sums:")

	var decoded []map[string]string
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "2025-01", decoded[0]["month"])
	assert.Equal(t, "5000", decoded[0]["income"])
	assert.Equal(t, "1600", decoded[0]["expense"])
}

func TestGenerator_UnsupportedFormat(t *testing.T) {
	generator := NewGenerator(logging.NewMockLogger())
	_, err := generator.Generate(Sums{}, FormatText)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
