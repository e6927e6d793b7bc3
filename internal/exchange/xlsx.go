package exchange

import (
	"fmt"
	"io"
	"slices"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/report"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding exported transactions.
const SheetName = "Transactions"

var xlsxHeaders = []string{"Date", "Kind", "Category", "Amount", "Note", "Payment method", "Reference", "ID"}

var xlsxWidths = []float64{12, 10, 18, 14, 36, 16, 18, 10}

var cellBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
}

// WriteXLSX writes txns as a styled workbook followed by income, expense
// and net summary rows. Expense amounts are negative in the sheet so the
// column sums to the net.
func (c *Codec) WriteXLSX(w io.Writer, txns []models.Transaction, currency string) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	for i, width := range xlsxWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, header := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	last, _ := excelize.ColumnNumberToName(len(xlsxHeaders))
	if err := f.SetCellStyle(SheetName, "A1", last+"1", styles.header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, tx := range txns {
		row := i + 2
		values := []any{
			tx.Date.Time().Format(c.dateLayout),
			string(tx.Kind),
			tx.Category,
			tx.Signed().InexactFloat64(),
			tx.Note,
			tx.PaymentMethod,
			tx.Reference,
			tx.ID,
		}
		if err := setRow(f, row, values); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", last, row), styles.data); err != nil {
			return fmt.Errorf("failed to style row %d: %w", row, err)
		}
		if err := f.SetCellStyle(SheetName, fmt.Sprintf("D%d", row), fmt.Sprintf("D%d", row), styles.amount); err != nil {
			return fmt.Errorf("failed to style row %d: %w", row, err)
		}
	}

	totals := report.Totals(slices.Values(txns))
	summaryRow := len(txns) + 3
	summary := []struct {
		label  string
		amount float64
	}{
		{"Total income", totals.Income.InexactFloat64()},
		{"Total expense", totals.Expense.Neg().InexactFloat64()},
		{"Net", totals.Net.InexactFloat64()},
	}
	for i, line := range summary {
		row := summaryRow + i
		label := line.label
		if currency != "" {
			label = fmt.Sprintf("%s (%s)", label, currency)
		}
		if err := setRow(f, row, []any{label, nil, nil, line.amount}); err != nil {
			return err
		}
		if err := f.MergeCell(SheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("C%d", row)); err != nil {
			return fmt.Errorf("failed to merge summary cells: %w", err)
		}
		if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), styles.summary); err != nil {
			return fmt.Errorf("failed to style summary: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		c.logger.WithError(err).Error("Failed to write workbook")
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	c.logger.Debug("Wrote XLSX", logging.F(logging.FieldCount, len(txns)))
	return nil
}

type sheetStyles struct {
	header, data, amount, summary int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorder,
	}); err != nil {
		return s, fmt.Errorf("failed to create header style: %w", err)
	}
	if s.data, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    cellBorder,
	}); err != nil {
		return s, fmt.Errorf("failed to create data style: %w", err)
	}
	// NumFmt 4 is the built-in "#,##0.00".
	if s.amount, err = f.NewStyle(&excelize.Style{
		NumFmt:    4,
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:    cellBorder,
	}); err != nil {
		return s, fmt.Errorf("failed to create amount style: %w", err)
	}
	if s.summary, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		NumFmt:    4,
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    cellBorder,
	}); err != nil {
		return s, fmt.Errorf("failed to create summary style: %w", err)
	}
	return s, nil
}

func setRow(f *excelize.File, row int, values []any) error {
	for col, value := range values {
		if value == nil {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		if err := f.SetCellValue(SheetName, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}
