package exchange

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

// ErrNoStatements is returned when an OFX file holds no bank or credit card
// statement.
var ErrNoStatements = errors.New("no bank or credit card statements")

// ReadOFX converts the statement lines of an OFX response into drafts. The
// FITID becomes the draft reference so repeated imports skip known lines.
// Zero-amount lines carry no money movement and are skipped.
func (c *Codec) ReadOFX(r io.Reader) ([]models.TransactionDraft, error) {
	resp, err := ofxgo.ParseResponse(r)
	if err != nil {
		c.logger.WithError(err).Error("Failed to parse OFX")
		return nil, fmt.Errorf("error parsing OFX data: %w", err)
	}
	if len(resp.Bank) == 0 && len(resp.CreditCard) == 0 {
		return nil, ErrNoStatements
	}

	drafts := []models.TransactionDraft{}
	for _, msg := range append(resp.Bank, resp.CreditCard...) {
		var lines []ofxgo.Transaction
		switch stmt := msg.(type) {
		case *ofxgo.StatementResponse:
			if stmt.BankTranList != nil {
				lines = stmt.BankTranList.Transactions
			}
		case *ofxgo.CCStatementResponse:
			if stmt.BankTranList != nil {
				lines = stmt.BankTranList.Transactions
			}
		default:
			c.logger.Warn("Skipping unsupported OFX message", logging.F("type", msg.Type()))
			continue
		}

		for _, line := range lines {
			amount, err := decimal.NewFromString(line.TrnAmt.String())
			if err != nil {
				return nil, fmt.Errorf("transaction %s: invalid amount: %w", line.FiTID, err)
			}
			if amount.IsZero() {
				c.logger.Debug("Skipping zero-amount OFX line", logging.F("fitid", string(line.FiTID)))
				continue
			}
			kind := models.KindIncome
			if amount.IsNegative() {
				kind = models.KindExpense
			}
			drafts = append(drafts, models.TransactionDraft{
				Kind:          kind,
				Amount:        amount.Abs(),
				Date:          models.DateOf(line.DtPosted.Time).String(),
				Note:          ofxNote(string(line.Name), string(line.Memo)),
				PaymentMethod: strings.ToLower(line.TrnType.String()),
				Reference:     string(line.FiTID),
			})
		}
	}
	return drafts, nil
}

// ofxNote joins payee name and memo; some banks put the useful text in only
// one of them.
func ofxNote(name, memo string) string {
	name, memo = strings.TrimSpace(name), strings.TrimSpace(memo)
	switch {
	case memo == "" || memo == name:
		return name
	case name == "":
		return memo
	default:
		return name + " - " + memo
	}
}
