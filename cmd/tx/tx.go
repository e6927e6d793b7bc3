// Package tx handles adding, listing, editing and deleting transactions
package tx

import (
	"fmt"

	"fjacquet/fintrack/cmd/common"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/search"

	"github.com/spf13/cobra"
)

// Cmd represents the tx command
var Cmd = &cobra.Command{
	Use:     "tx",
	Aliases: []string{"transaction"},
	Short:   "Manage transactions",
	Long:    `Add, list, edit and delete the income and expense transactions of the logged-in user.`,
}

// txFlags holds the values shared by add and edit.
type txFlags struct {
	kind          string
	amount        string
	category      string
	date          string
	note          string
	paymentMethod string
}

var (
	addFlags  txFlags
	editFlags txFlags
	listLimit int
	listSort  string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	Long: `Record an income or expense. The amount is always positive; --type decides
the direction. The date defaults to today.

Example:
  fintrack tx add --type expense --amount 42.50 --category Food --note market`,
	Args: cobra.NoArgs,
	Run:  root.Run(runAdd),
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	Args:  cobra.NoArgs,
	Run:   root.Run(runList),
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of a transaction",
	Long:  `Change fields of a transaction. Only the flags given are changed.`,
	Args:  cobra.ExactArgs(1),
	Run:   root.Run(runEdit),
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a transaction",
	Args:    cobra.ExactArgs(1),
	Run:     root.Run(runDelete),
}

func bindTxFlags(cmd *cobra.Command, f *txFlags) {
	cmd.Flags().StringVarP(&f.kind, "type", "t", "", "Transaction type (income or expense)")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "Amount (positive)")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Category")
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.note, "note", "n", "", "Free-form note")
	cmd.Flags().StringVarP(&f.paymentMethod, "method", "m", "", "Payment method")
}

func init() {
	bindTxFlags(addCmd, &addFlags)
	_ = addCmd.MarkFlagRequired("type")
	_ = addCmd.MarkFlagRequired("amount")
	bindTxFlags(editCmd, &editFlags)

	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 0, "Show only the last N transactions by date")
	listCmd.Flags().StringVarP(&listSort, "sort", "s", "", "Sort by date, amount, category or type")

	Cmd.AddCommand(addCmd, listCmd, editCmd, deleteCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	kind, err := models.ParseKind(addFlags.kind)
	if err != nil {
		return err
	}
	amount, err := common.ParseAmountFlag("amount", addFlags.amount)
	if err != nil {
		return err
	}

	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	tx, err := s.AddTransaction(cmd.Context(), models.TransactionDraft{
		Kind:          kind,
		Amount:        amount,
		Category:      addFlags.category,
		Date:          common.DateOrToday(addFlags.date),
		Note:          addFlags.note,
		PaymentMethod: addFlags.paymentMethod,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s %s %s on %s\n", tx.ID, tx.Kind, models.FormatMoney(tx.Amount, s.User().Currency), tx.Category, tx.Date)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	key, err := search.ParseSortKey(listSort)
	if err != nil {
		return err
	}
	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	txns := s.Ledger().Snapshot()
	if listLimit > 0 && len(txns) > listLimit {
		txns = search.Sort(txns, search.SortDate, false)
		txns = txns[len(txns)-listLimit:]
	}
	txns = search.Sort(txns, key, false)
	return root.AppContainer.Renderer(s).Transactions(cmd.OutOrStdout(), txns)
}

func runEdit(cmd *cobra.Command, args []string) error {
	var patch models.TransactionPatch
	changed := cmd.Flags().Changed

	if changed("type") {
		kind, err := models.ParseKind(editFlags.kind)
		if err != nil {
			return err
		}
		patch.Kind = &kind
	}
	if changed("amount") {
		amount, err := common.ParseAmountFlag("amount", editFlags.amount)
		if err != nil {
			return err
		}
		patch.Amount = &amount
	}
	if changed("category") {
		patch.Category = &editFlags.category
	}
	if changed("date") {
		patch.Date = &editFlags.date
	}
	if changed("note") {
		patch.Note = &editFlags.note
	}
	if changed("method") {
		patch.PaymentMethod = &editFlags.paymentMethod
	}
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to change: pass at least one of --type, --amount, --category, --date, --note, --method")
	}

	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	tx, err := s.EditTransaction(cmd.Context(), args[0], patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", tx.ID)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	if err := s.DeleteTransaction(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}
