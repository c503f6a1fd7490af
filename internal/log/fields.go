package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldKey       = "key"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldBackend   = "backend"
	FieldMonth     = "month"
	FieldCategory  = "category_id"
	FieldAmount    = "amount"
	FieldVersion   = "data_version"
	FieldCount     = "count"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentStore     = "store"
	ComponentState     = "state"
	ComponentLedger    = "ledger"
	ComponentMigration = "migration"
	ComponentCodec     = "codec"
)

// Operations defines standard operation names
const (
	OpRead    = "read"
	OpWrite   = "write"
	OpAdd     = "add"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpReset   = "reset"
	OpMigrate = "migrate"
	OpImport  = "import"
	OpExport  = "export"
)
