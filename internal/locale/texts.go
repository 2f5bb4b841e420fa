package locale

// Key ключ перевода
type Key string

// Пункты главного меню
const (
	MenuExpense   Key = "expense"
	MenuIncome    Key = "income"
	MenuStats     Key = "stats"
	MenuMonthly   Key = "monthly"
	MenuDaily     Key = "daily"
	MenuDebts     Key = "debts"
	MenuUtilities Key = "utilities"
	MenuConverter Key = "converter"
	MenuSettings  Key = "settings"
)

// MenuKeys порядок кнопок главного меню
var MenuKeys = []Key{
	MenuExpense, MenuIncome,
	MenuStats, MenuMonthly,
	MenuDaily, MenuDebts,
	MenuUtilities, MenuConverter,
	MenuSettings,
}

const (
	Welcome          Key = "welcome"
	ChooseLanguage   Key = "choose_language"
	ChooseCurrency   Key = "choose_currency"
	MainMenu         Key = "main_menu"
	EnterAmountDesc  Key = "enter_amount_desc"
	ChooseTxCurrency Key = "choose_currency_for_tx"
	Saved            Key = "saved"
	TotalIncome      Key = "total_income"
	TotalExpense     Key = "total_expense"
	NetProfit        Key = "net_profit"
	Total            Key = "total"
	ChooseMonth      Key = "choose_month"
	EnterDay         Key = "enter_day"
	NoData           Key = "no_data"
	TheyOwe          Key = "they_owe"
	IOwe             Key = "i_owe"
	DebtList         Key = "debt_list"
	EnterDebtInfo    Key = "enter_debt_info"
	PayDebt          Key = "pay_debt"
	FullPay          Key = "full_pay"
	PartialPay       Key = "partial_pay"
	EnterPayment     Key = "enter_payment"
	DebtPaid         Key = "debt_paid"
	DebtRemaining    Key = "debt_remaining"
	DebtNotFound     Key = "debt_not_found"
	AddUtility       Key = "add_utility"
	UtilityMonthly   Key = "utility_monthly"
	UtilityStats     Key = "utility_stats"
	ChooseUtility    Key = "choose_utility"
	ConverterPrompt  Key = "converter_prompt"
	Converted        Key = "converted"
	SettingsLanguage Key = "settings_language"
	SettingsCurrency Key = "settings_currency"
	LanguageChanged  Key = "language_changed"
	CurrencyChanged  Key = "currency_changed"
	WatchAd          Key = "watch_ad"
	PleaseWait       Key = "please_wait"
	Failed           Key = "failed"
)

// Подсказки при неверном вводе
const (
	HintAmountDesc  Key = "hint_amount_desc"
	HintDebt        Key = "hint_debt"
	HintDay         Key = "hint_day"
	HintPayment     Key = "hint_payment"
	HintConversion  Key = "hint_conversion"
	HintCurrency    Key = "hint_currency"
	HintUseKeyboard Key = "hint_use_keyboard"
)

var texts = map[string]map[Key]string{
	English: {
		MenuExpense:   "💸 Expense",
		MenuIncome:    "💰 Income",
		MenuStats:     "📊 Statistics",
		MenuMonthly:   "📅 Monthly report",
		MenuDaily:     "🔍 Daily report",
		MenuDebts:     "🤝 Debts",
		MenuUtilities: "🏠 Utilities",
		MenuConverter: "💱 Converter",
		MenuSettings:  "⚙️ Settings",

		Welcome:          "👋 Welcome to SmartBalance! Choose an action from the menu.",
		ChooseLanguage:   "🌐 Choose your language / Tilni tanlang / Выберите язык:",
		ChooseCurrency:   "💵 Choose your main currency:",
		MainMenu:         "📋 Main menu",
		EnterAmountDesc:  "✍️ Enter amount and description, e.g. 50000 breakfast",
		ChooseTxCurrency: "💵 Choose the currency of this transaction:",
		Saved:            "✅ Saved:",
		TotalIncome:      "💰 Total income",
		TotalExpense:     "💸 Total expense",
		NetProfit:        "📈 Net profit",
		Total:            "📊 Total",
		ChooseMonth:      "📅 Choose a month:",
		EnterDay:         "🔢 Enter the day of month (1-31):",
		NoData:           "🤷 No data",
		TheyOwe:          "🟢 They owe me",
		IOwe:             "🔴 I owe",
		DebtList:         "📜 Debt list",
		EnterDebtInfo:    "✍️ Enter name, amount and currency, e.g. Ali 100 USD",
		PayDebt:          "💳 Pay",
		FullPay:          "✅ Full payment",
		PartialPay:       "➗ Partial payment",
		EnterPayment:     "✍️ Enter the payment amount:",
		DebtPaid:         "✅ Debt paid off",
		DebtRemaining:    "✅ Payment saved. Remaining: %s",
		DebtNotFound:     "❌ Debt not found",
		AddUtility:       "➕ Add utility bill",
		UtilityMonthly:   "📅 Monthly utilities",
		UtilityStats:     "📊 Utility statistics",
		ChooseUtility:    "🏠 Choose a utility:",
		ConverterPrompt:  "💱 Enter amount and currency, e.g. 100 USD",
		Converted:        "💱 Converted:",
		SettingsLanguage: "🌐 Language",
		SettingsCurrency: "💵 Currency",
		LanguageChanged:  "✅ Language changed",
		CurrencyChanged:  "✅ Main currency changed to %s",
		WatchAd:          "⏳ Watch ad (%d sec)",
		PleaseWait:       "⏳ Please wait...",
		Failed:           "❌ Something went wrong, please try again",

		HintAmountDesc:  "❌ Wrong format. Example: 50000 breakfast",
		HintDebt:        "❌ Format: Ali 100 USD",
		HintDay:         "❌ Enter the day number (1-31)",
		HintPayment:     "❌ Enter a positive amount",
		HintConversion:  "❌ Format: 100 USD",
		HintCurrency:    "❌ Enter a 3-letter currency code, e.g. USD",
		HintUseKeyboard: "👇 Please use the buttons",
	},
	Russian: {
		MenuExpense:   "💸 Расход",
		MenuIncome:    "💰 Доход",
		MenuStats:     "📊 Статистика",
		MenuMonthly:   "📅 Отчёт за месяц",
		MenuDaily:     "🔍 Отчёт за день",
		MenuDebts:     "🤝 Долги",
		MenuUtilities: "🏠 Коммуналка",
		MenuConverter: "💱 Конвертер",
		MenuSettings:  "⚙️ Настройки",

		Welcome:          "👋 Добро пожаловать в SmartBalance! Выберите действие в меню.",
		ChooseLanguage:   "🌐 Choose your language / Tilni tanlang / Выберите язык:",
		ChooseCurrency:   "💵 Выберите основную валюту:",
		MainMenu:         "📋 Главное меню",
		EnterAmountDesc:  "✍️ Введите сумму и описание, например 50000 завтрак",
		ChooseTxCurrency: "💵 Выберите валюту операции:",
		Saved:            "✅ Сохранено:",
		TotalIncome:      "💰 Всего доходов",
		TotalExpense:     "💸 Всего расходов",
		NetProfit:        "📈 Чистая прибыль",
		Total:            "📊 Итого",
		ChooseMonth:      "📅 Выберите месяц:",
		EnterDay:         "🔢 Введите число месяца (1-31):",
		NoData:           "🤷 Нет данных",
		TheyOwe:          "🟢 Мне должны",
		IOwe:             "🔴 Я должен",
		DebtList:         "📜 Список долгов",
		EnterDebtInfo:    "✍️ Введите имя, сумму и валюту, например Али 100 USD",
		PayDebt:          "💳 Погасить",
		FullPay:          "✅ Полностью",
		PartialPay:       "➗ Частично",
		EnterPayment:     "✍️ Введите сумму платежа:",
		DebtPaid:         "✅ Долг погашен",
		DebtRemaining:    "✅ Платёж сохранён. Остаток: %s",
		DebtNotFound:     "❌ Долг не найден",
		AddUtility:       "➕ Добавить платёж",
		UtilityMonthly:   "📅 Платежи за месяц",
		UtilityStats:     "📊 Статистика платежей",
		ChooseUtility:    "🏠 Выберите услугу:",
		ConverterPrompt:  "💱 Введите сумму и валюту, например 100 USD",
		Converted:        "💱 Результат:",
		SettingsLanguage: "🌐 Язык",
		SettingsCurrency: "💵 Валюта",
		LanguageChanged:  "✅ Язык изменён",
		CurrencyChanged:  "✅ Основная валюта: %s",
		WatchAd:          "⏳ Реклама (%d сек)",
		PleaseWait:       "⏳ Подождите...",
		Failed:           "❌ Что-то пошло не так, попробуйте ещё раз",

		HintAmountDesc:  "❌ Неверный формат. Пример: 50000 завтрак",
		HintDebt:        "❌ Формат: Али 100 USD",
		HintDay:         "❌ Введите число (1-31)",
		HintPayment:     "❌ Введите положительную сумму",
		HintConversion:  "❌ Формат: 100 USD",
		HintCurrency:    "❌ Введите код валюты из 3 букв, например USD",
		HintUseKeyboard: "👇 Воспользуйтесь кнопками",
	},
	Uzbek: {
		MenuExpense:   "💸 Xarajat",
		MenuIncome:    "💰 Daromad",
		MenuStats:     "📊 Statistika",
		MenuMonthly:   "📅 Oylik hisobot",
		MenuDaily:     "🔍 Kunlik hisobot",
		MenuDebts:     "🤝 Oldi-berdi",
		MenuUtilities: "🏠 Kommunal",
		MenuConverter: "💱 Konvertor",
		MenuSettings:  "⚙️ Sozlamalar",

		Welcome:          "👋 SmartBalance'ga xush kelibsiz! Menyudan amalni tanlang.",
		ChooseLanguage:   "🌐 Choose your language / Tilni tanlang / Выберите язык:",
		ChooseCurrency:   "💵 Asosiy valyutani tanlang:",
		MainMenu:         "📋 Asosiy menyu",
		EnterAmountDesc:  "✍️ Summa va izohni kiriting, masalan: 50000 nonushta",
		ChooseTxCurrency: "💵 Valyutani tanlang:",
		Saved:            "✅ Saqlandi:",
		TotalIncome:      "💰 Jami daromad",
		TotalExpense:     "💸 Jami xarajat",
		NetProfit:        "📈 Sof foyda",
		Total:            "📊 Jami",
		ChooseMonth:      "📅 Oyni tanlang:",
		EnterDay:         "🔢 Kun raqamini kiriting (1-31):",
		NoData:           "🤷 Ma'lumot yo'q",
		TheyOwe:          "🟢 Menga qarzdor",
		IOwe:             "🔴 Men qarzdorman",
		DebtList:         "📜 Qarzlar ro'yxati",
		EnterDebtInfo:    "✍️ Ism, summa va valyutani kiriting, masalan: Ali 100 USD",
		PayDebt:          "💳 To'lash",
		FullPay:          "✅ To'liq to'lash",
		PartialPay:       "➗ Qisman to'lash",
		EnterPayment:     "✍️ To'lov summasini kiriting:",
		DebtPaid:         "✅ Qarz to'landi",
		DebtRemaining:    "✅ To'lov saqlandi. Qoldiq: %s",
		DebtNotFound:     "❌ Qarz topilmadi",
		AddUtility:       "➕ To'lov qo'shish",
		UtilityMonthly:   "📅 Oylik to'lovlar",
		UtilityStats:     "📊 To'lovlar statistikasi",
		ChooseUtility:    "🏠 Xizmatni tanlang:",
		ConverterPrompt:  "💱 Summa va valyutani kiriting, masalan: 100 USD",
		Converted:        "💱 Natija:",
		SettingsLanguage: "🌐 Til",
		SettingsCurrency: "💵 Valyuta",
		LanguageChanged:  "✅ Til o'zgartirildi",
		CurrencyChanged:  "✅ Asosiy valyuta: %s",
		WatchAd:          "⏳ Reklama (%d soniya)",
		PleaseWait:       "⏳ Kuting...",
		Failed:           "❌ Xatolik yuz berdi, qaytadan urinib ko'ring",

		HintAmountDesc:  "❌ Format noto'g'ri. Masalan: 50000 nonushta",
		HintDebt:        "❌ Format: Ali 100 USD",
		HintDay:         "❌ Kun raqamini kiriting (1-31)",
		HintPayment:     "❌ Summa kiriting",
		HintConversion:  "❌ Format: 100 USD",
		HintCurrency:    "❌ Valyuta kodini kiriting, masalan: USD",
		HintUseKeyboard: "👇 Tugmalardan foydalaning",
	},
}

var months = map[string][]string{
	English: {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	Russian: {"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
		"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь"},
	Uzbek: {"Yanvar", "Fevral", "Mart", "Aprel", "May", "Iyun",
		"Iyul", "Avgust", "Sentabr", "Oktabr", "Noyabr", "Dekabr"},
}
