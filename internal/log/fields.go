package log

// Имена полей структурированного лога
const (
	FieldComponent = "component"
	FieldUserID    = "user_id"
	FieldChatID    = "chat_id"
	FieldState     = "state"
	FieldCommand   = "command"
	FieldPair      = "pair"
	FieldRate      = "rate"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldBackend   = "backend"
	FieldYear      = "year"
	FieldMonth     = "month"
	FieldDuration  = "duration_ms"
)

// Компоненты
const (
	ComponentApp      = "app"
	ComponentBot      = "bot"
	ComponentDialogue = "dialogue"
	ComponentService  = "service"
	ComponentStorage  = "storage"
	ComponentRates    = "rates"
	ComponentHTTP     = "http"
	ComponentCharts   = "charts"
)

// Операции
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpList     = "list"
	OpMigrate  = "migrate"
	OpRender   = "render"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
