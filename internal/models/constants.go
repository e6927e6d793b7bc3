package models

// Kind is the direction of a transaction.
type Kind string

// Transaction kinds
const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Repeat is the recurrence of a bill.
type Repeat string

// Bill recurrences
const (
	RepeatNone    Repeat = "none"
	RepeatMonthly Repeat = "monthly"
	RepeatYearly  Repeat = "yearly"
)

// Categories
const (
	CategoryUncategorized = "Uncategorized"

	// CategoryOverall is the display label of a budget that covers every category.
	CategoryOverall = "overall"
)

// Identifier prefixes
const (
	TransactionIDPrefix = "TXN"
	BillIDPrefix        = "BILL"
)

// Layouts
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// File permissions
const (
	PermissionDataFile  = 0600
	PermissionDirectory = 0750
	PermissionExport    = 0644
)
