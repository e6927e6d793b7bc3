package exchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"

	"github.com/gocarina/gocsv"
)

// csvRow is the lenient import shape: every column is text so a bad cell is
// reported with its row number instead of failing the whole decode.
type csvRow struct {
	ID            string `csv:"ID"`
	Kind          string `csv:"Kind"`
	Amount        string `csv:"Amount"`
	Category      string `csv:"Category"`
	Date          string `csv:"Date"`
	Note          string `csv:"Note"`
	PaymentMethod string `csv:"PaymentMethod"`
	Reference     string `csv:"Reference"`
}

// WriteCSV writes txns with a header row. Amounts are unsigned; the Kind
// column carries the direction.
func (c *Codec) WriteCSV(w io.Writer, txns []models.Transaction) error {
	if txns == nil {
		txns = []models.Transaction{}
	}
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = c.delimiter

	if err := gocsv.MarshalCSV(txns, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		c.logger.WithError(err).Error("Failed to marshal transactions to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	c.logger.Debug("Wrote CSV", logging.F(logging.FieldCount, len(txns)))
	return nil
}

// ReadCSV reads drafts from CSV with the same header WriteCSV produces. The
// ID column is ignored. An empty Kind is derived from the amount sign, which
// lets bank exports with signed amounts import directly. A row with a Kind
// must carry an unsigned amount.
func (c *Codec) ReadCSV(r io.Reader) ([]models.TransactionDraft, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = c.delimiter
	csvReader.TrimLeadingSpace = true

	var rows []csvRow
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []models.TransactionDraft{}, nil
		}
		c.logger.WithError(err).Error("Failed to parse CSV")
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}

	drafts := make([]models.TransactionDraft, 0, len(rows))
	for i, row := range rows {
		draft, err := row.draft()
		if err != nil {
			// header is line 1
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func (row csvRow) draft() (models.TransactionDraft, error) {
	amount, err := models.ParseAmount(row.Amount)
	if err != nil {
		return models.TransactionDraft{}, &fterrors.ValidationError{Entity: "transaction", Field: "amount", Value: row.Amount, Reason: err.Error()}
	}

	var kind models.Kind
	if strings.TrimSpace(row.Kind) == "" {
		kind = models.KindIncome
		if amount.IsNegative() {
			kind = models.KindExpense
		}
	} else {
		if kind, err = models.ParseKind(row.Kind); err != nil {
			return models.TransactionDraft{}, err
		}
		if amount.IsNegative() {
			return models.TransactionDraft{}, &fterrors.ValidationError{Entity: "transaction", Field: "amount", Value: row.Amount, Reason: "negative amount conflicts with kind " + string(kind)}
		}
	}

	return models.TransactionDraft{
		Kind:          kind,
		Amount:        amount.Abs(),
		Category:      row.Category,
		Date:          row.Date,
		Note:          row.Note,
		PaymentMethod: row.PaymentMethod,
		Reference:     row.Reference,
	}, nil
}
