package logging

// Field names shared by every package so log output stays filterable.
const (
	FieldUserID        = "user_id"
	FieldUserName      = "user_name"
	FieldTransactionID = "transaction_id"
	FieldBillID        = "bill_id"
	FieldGoal          = "goal"
	FieldCategory      = "category"
	FieldMonth         = "month"
	FieldKind          = "kind"
	FieldAmount        = "amount"
	FieldOperation     = "operation"
	FieldBackend       = "backend"
	FieldFile          = "file_path"
	FieldFormat        = "format"
	FieldCount         = "count"
	FieldError         = "error"
)
