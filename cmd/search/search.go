// Package search handles filtering and sorting a ledger
package search

import (
	"fmt"
	"io"
	"slices"

	"fjacquet/fintrack/cmd/common"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/fterrors"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/report"
	"fjacquet/fintrack/internal/search"

	"github.com/spf13/cobra"
)

// Cmd represents the search command
var Cmd = &cobra.Command{
	Use:   "search",
	Short: "Search transactions",
	Long: `Search transactions by date range, amount range, category, type and note
keyword. All given criteria must match; bounds are inclusive.

Example:
  fintrack search --category Rent --min 1500 --sort date --desc`,
	Args: cobra.NoArgs,
	Run:  root.Run(runSearch),
}

var (
	from, to     string
	minAmount    string
	maxAmount    string
	category     string
	kind         string
	keyword      string
	sortKey      string
	descending   bool
	outputFormat string
)

func init() {
	Cmd.Flags().StringVar(&from, "from", "", "Earliest date (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&to, "to", "", "Latest date (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&minAmount, "min", "", "Minimum amount")
	Cmd.Flags().StringVar(&maxAmount, "max", "", "Maximum amount")
	Cmd.Flags().StringVarP(&category, "category", "c", "", "Exact category")
	Cmd.Flags().StringVarP(&kind, "type", "t", "", "income or expense")
	Cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "Substring of the note (case-insensitive)")
	Cmd.Flags().StringVarP(&sortKey, "sort", "s", "", "Sort by date, amount, category or type")
	Cmd.Flags().BoolVar(&descending, "desc", false, "Sort descending")
	Cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, json, yaml)")
}

// criteriaFromFlags builds the search criteria from the flag values; empty
// flags impose no constraint.
func criteriaFromFlags() (search.Criteria, error) {
	var c search.Criteria

	for _, bound := range []struct {
		name  string
		value string
		dst   **models.Date
	}{
		{"from", from, &c.DateFrom},
		{"to", to, &c.DateTo},
	} {
		if bound.value == "" {
			continue
		}
		d, err := models.ParseDate(bound.value)
		if err != nil {
			return c, &fterrors.ValidationError{Entity: "flag", Field: bound.name, Value: bound.value, Reason: "expected YYYY-MM-DD"}
		}
		*bound.dst = &d
	}
	if minAmount != "" {
		v, err := common.ParseAmountFlag("min", minAmount)
		if err != nil {
			return c, err
		}
		c.AmountMin = &v
	}
	if maxAmount != "" {
		v, err := common.ParseAmountFlag("max", maxAmount)
		if err != nil {
			return c, err
		}
		c.AmountMax = &v
	}
	if category != "" {
		c.Category = &category
	}
	if kind != "" {
		k, err := models.ParseKind(kind)
		if err != nil {
			return c, err
		}
		c.Kind = &k
	}
	c.Keyword = keyword
	return c, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	criteria, err := criteriaFromFlags()
	if err != nil {
		return err
	}
	key, err := search.ParseSortKey(sortKey)
	if err != nil {
		return err
	}

	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	matches := slices.Collect(s.Ledger().List(criteria.Predicate()))
	matches = search.Sort(matches, key, descending)

	out := cmd.OutOrStdout()
	doc := struct {
		Count        int                  `json:"count" yaml:"count"`
		Totals       report.Sums          `json:"totals" yaml:"totals"`
		Transactions []models.Transaction `json:"transactions" yaml:"transactions"`
	}{len(matches), report.Totals(slices.Values(matches)), matches}

	return common.Emit(out, root.AppContainer.GetGenerator(), outputFormat, doc, func(w io.Writer) error {
		if len(matches) == 0 {
			fmt.Fprintln(w, "No matching transactions.")
			return nil
		}
		r := root.AppContainer.Renderer(s)
		if err := r.Transactions(w, matches); err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%d match(es): income %s, expense %s, net %s\n", doc.Count,
			models.FormatMoney(doc.Totals.Income, r.Currency),
			models.FormatMoney(doc.Totals.Expense, r.Currency),
			models.FormatMoney(doc.Totals.Net, r.Currency))
		return nil
	})
}
