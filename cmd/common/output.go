// Package common contains shared functionality for command handlers
package common

import (
	"io"

	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/report"

	"github.com/shopspring/decimal"
)

// Emit writes doc in the requested format. Text output is delegated to
// text; JSON and YAML go through the generator.
func Emit(w io.Writer, gen *report.Generator, format string, doc any, text func(io.Writer) error) error {
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	if f == report.FormatText {
		return text(w)
	}
	data, err := gen.Generate(doc, f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ParseAmountFlag parses a money flag value into a positive decimal.
func ParseAmountFlag(name, value string) (decimal.Decimal, error) {
	amount, err := models.ParseAmount(value)
	if err != nil {
		return decimal.Zero, &fterrors.ValidationError{Entity: "flag", Field: name, Value: value, Reason: err.Error()}
	}
	return amount, nil
}

// DateOrToday returns value, or today's date when value is empty.
func DateOrToday(value string) string {
	if value == "" {
		return models.Today().String()
	}
	return value
}

// MonthOrCurrent returns value, or the current month when value is empty.
func MonthOrCurrent(value string) string {
	if value == "" {
		return models.CurrentMonth()
	}
	return value
}
