// Package exchange moves transactions in and out of fintrack: CSV export and
// import, XLSX export and OFX bank statement import.
package exchange

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/fintrack/internal/fileutils"
	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
)

// Format is a file format the exchange package reads or writes.
type Format string

// Supported formats
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatOFX  Format = "ofx"
)

// DefaultDelimiter separates CSV fields unless WithDelimiter says otherwise.
const DefaultDelimiter = ','

// ParseFormat normalizes a format name. "qfx" is accepted as OFX.
func ParseFormat(s string) (Format, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	case "ofx", "qfx":
		return FormatOFX, nil
	default:
		return "", &fterrors.ValidationError{Entity: "exchange", Field: "format", Value: s, Reason: "expected csv, xlsx or ofx"}
	}
}

// DetectFormat guesses the format from a file extension.
func DetectFormat(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Codec converts between transactions and external files.
type Codec struct {
	logger     logging.Logger
	delimiter  rune
	dateLayout string
}

// Option configures a Codec.
type Option func(*Codec)

// WithDelimiter sets the CSV field separator.
func WithDelimiter(delim rune) Option {
	return func(c *Codec) {
		if delim != 0 {
			c.delimiter = delim
		}
	}
}

// WithDateLayout sets the Go time layout used for dates in spreadsheets.
func WithDateLayout(layout string) Option {
	return func(c *Codec) {
		if layout != "" {
			c.dateLayout = layout
		}
	}
}

// NewCodec creates a codec. A nil logger discards output.
func NewCodec(logger logging.Logger, opts ...Option) *Codec {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	c := &Codec{logger: logger, delimiter: DefaultDelimiter, dateLayout: models.DateLayout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Export writes txns to w in the given format.
func (c *Codec) Export(w io.Writer, format Format, txns []models.Transaction, currency string) error {
	switch format {
	case FormatCSV:
		return c.WriteCSV(w, txns)
	case FormatXLSX:
		return c.WriteXLSX(w, txns, currency)
	default:
		return &fterrors.ValidationError{Entity: "exchange", Field: "format", Value: string(format), Reason: "cannot export to this format"}
	}
}

// Import reads transaction drafts from r in the given format.
func (c *Codec) Import(r io.Reader, format Format) ([]models.TransactionDraft, error) {
	switch format {
	case FormatCSV:
		return c.ReadCSV(r)
	case FormatOFX:
		return c.ReadOFX(r)
	default:
		return nil, &fterrors.ValidationError{Entity: "exchange", Field: "format", Value: string(format), Reason: "cannot import from this format"}
	}
}

// ExportFile writes txns to path, creating parent directories as needed.
func (c *Codec) ExportFile(path string, format Format, txns []models.Transaction, currency string) error {
	file, err := fileutils.CreateFile(path, models.PermissionExport)
	if err != nil {
		return err
	}
	if err := c.Export(file, format, txns, currency); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	c.logger.Info("Exported transactions",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldFormat, string(format)),
		logging.F(logging.FieldCount, len(txns)))
	return nil
}

// ImportFile reads transaction drafts from path.
func (c *Codec) ImportFile(path string, format Format) ([]models.TransactionDraft, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			c.logger.WithError(cerr).Warn("Failed to close file", logging.F(logging.FieldFile, path))
		}
	}()
	drafts, err := c.Import(file, format)
	if err != nil {
		return nil, err
	}
	c.logger.Info("Read transactions",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldFormat, string(format)),
		logging.F(logging.FieldCount, len(drafts)))
	return drafts, nil
}
