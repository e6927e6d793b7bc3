// Package bill handles bill reminders
package bill

import (
	"fmt"
	"io"

	"fjacquet/fintrack/cmd/common"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/viz"

	"github.com/spf13/cobra"
)

// Cmd represents the bill command
var Cmd = &cobra.Command{
	Use:   "bill",
	Short: "Manage bill reminders",
	Long: `Track upcoming bills. Paying a monthly or yearly bill moves it to its next
due date; one-off bills stay paid.`,
}

var (
	amount        string
	dueDate       string
	repeat        string
	paymentMethod string
	notes         string
	includePaid   bool
	days          int
	outputFormat  string
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a bill reminder",
	Long: `Add a bill reminder.

Example:
  fintrack bill add Rent --amount 1600 --due 2025-04-01 --repeat monthly`,
	Args: cobra.ExactArgs(1),
	Run:  root.Run(runAdd),
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bills by due date",
	Args:  cobra.NoArgs,
	Run:   root.Run(runList),
}

var payCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Mark a bill as paid",
	Args:  cobra.ExactArgs(1),
	Run:   root.Run(runPay),
}

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Bills due soon, overdue ones included",
	Args:  cobra.NoArgs,
	Run:   root.Run(runDue),
}

func init() {
	addCmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount (greater than 0)")
	addCmd.Flags().StringVar(&dueDate, "due", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&repeat, "repeat", string(models.RepeatNone), "Repeat (none, monthly, yearly)")
	addCmd.Flags().StringVarP(&paymentMethod, "method", "m", "", "Payment method")
	addCmd.Flags().StringVarP(&notes, "notes", "n", "", "Notes")
	_ = addCmd.MarkFlagRequired("amount")
	_ = addCmd.MarkFlagRequired("due")

	listCmd.Flags().BoolVar(&includePaid, "all", false, "Include paid bills")
	listCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, json, yaml)")
	dueCmd.Flags().IntVar(&days, "days", -1, "Horizon in days (default bills.reminder_days)")

	Cmd.AddCommand(addCmd, listCmd, payCmd, dueCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := common.ParseAmountFlag("amount", amount)
	if err != nil {
		return err
	}
	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	b, err := s.AddBill(cmd.Context(), models.BillDraft{
		Name:          args[0],
		Amount:        a,
		DueDate:       dueDate,
		Repeat:        repeat,
		PaymentMethod: paymentMethod,
		Notes:         notes,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added bill %s %s (%s) due %s\n", b.ID, b.Name, models.FormatMoney(b.Amount, s.User().Currency), b.DueDate)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	bills, err := s.Bills(cmd.Context(), includePaid)
	if err != nil {
		return err
	}
	today := models.Today()
	return common.Emit(cmd.OutOrStdout(), root.AppContainer.GetGenerator(), outputFormat, bills, func(w io.Writer) error {
		lines := make([]viz.BillLine, 0, len(bills))
		for _, b := range bills {
			lines = append(lines, viz.BillLine{Bill: b, DaysUntil: today.DaysUntil(b.DueDate)})
		}
		return root.AppContainer.Renderer(s).Bills(w, lines)
	})
}

func runPay(cmd *cobra.Command, args []string) error {
	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	b, err := s.PayBill(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if b.Paid {
		fmt.Fprintf(cmd.OutOrStdout(), "Bill %s marked as paid\n", b.ID)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Bill %s paid; next due %s\n", b.ID, b.DueDate)
	}
	return nil
}

func runDue(cmd *cobra.Command, args []string) error {
	horizon := days
	if horizon < 0 {
		horizon = root.AppConfig.Bills.ReminderDays
	}
	s, err := root.OpenSession(cmd.Context())
	if err != nil {
		return err
	}
	due, err := s.DueWithin(cmd.Context(), models.Today(), horizon)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(due) == 0 {
		fmt.Fprintf(out, "No bills due in the next %d day(s).\n", horizon)
		return nil
	}
	lines := make([]viz.BillLine, 0, len(due))
	for _, d := range due {
		lines = append(lines, viz.BillLine{Bill: d.Bill, DaysUntil: d.DaysUntil})
	}
	return root.AppContainer.Renderer(s).Bills(out, lines)
}
