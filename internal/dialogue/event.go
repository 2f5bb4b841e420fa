package dialogue

// Command тип входящего события
type Command string

const (
	// CmdText произвольный текст, Arg - сам текст
	CmdText  Command = "text"
	CmdStart Command = "start"
	// CmdMenu кнопка главного меню, Arg - locale.Key пункта
	CmdMenu Command = "menu"

	CmdLanguage        Command = "language"
	CmdCurrency        Command = "currency"
	CmdMonth           Command = "month"
	CmdUtilityCategory Command = "util_category"

	CmdDebtAdd     Command = "debt_add"
	// CmdDebtList Arg - направление долгов или DebtListAll
	CmdDebtList    Command = "debt_list"
	CmdDebtPay     Command = "debt_pay"
	CmdDebtFull    Command = "debt_full"
	CmdDebtPartial Command = "debt_part"

	CmdUtilityAdd     Command = "util_add"
	CmdUtilityStats   Command = "util_stats"
	CmdUtilityMonthly Command = "util_monthly"

	CmdSettingsLanguage Command = "set_language"
	CmdSettingsCurrency Command = "set_currency"
)

// DebtListAll аргумент CmdDebtList для списка долгов в обе стороны
const DebtListAll = "all"

var topLevel = map[Command]bool{
	CmdMenu:             true,
	CmdDebtAdd:          true,
	CmdDebtList:         true,
	CmdDebtPay:          true,
	CmdDebtFull:         true,
	CmdDebtPartial:      true,
	CmdUtilityAdd:       true,
	CmdUtilityStats:     true,
	CmdUtilityMonthly:   true,
	CmdSettingsLanguage: true,
	CmdSettingsCurrency: true,
}

// TopLevel действие начинает новый сценарий и отменяет текущий
func (c Command) TopLevel() bool {
	return topLevel[c]
}

// Event входящее действие пользователя, уже отвязанное от транспорта
type Event struct {
	UserID int64
	// ClientLanguage код языка клиента Telegram, нужен до регистрации
	ClientLanguage string
	Command        Command
	Arg            string
}
