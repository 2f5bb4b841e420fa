package locale

// Категории коммунальных платежей. В хранилище пишется ключ, на экран перевод.
var UtilityCategories = []string{
	"electricity",
	"gas",
	"water",
	"heating",
	"internet",
	"phone",
	"trash",
	"other",
}

var categoryNames = map[string]map[string]string{
	English: {
		"electricity": "⚡ Electricity",
		"gas":         "🔥 Gas",
		"water":       "💧 Water",
		"heating":     "🌡 Heating",
		"internet":    "🌐 Internet",
		"phone":       "📱 Phone",
		"trash":       "🗑 Trash removal",
		"other":       "📦 Other",
	},
	Russian: {
		"electricity": "⚡ Электричество",
		"gas":         "🔥 Газ",
		"water":       "💧 Вода",
		"heating":     "🌡 Отопление",
		"internet":    "🌐 Интернет",
		"phone":       "📱 Телефон",
		"trash":       "🗑 Вывоз мусора",
		"other":       "📦 Другое",
	},
	Uzbek: {
		"electricity": "⚡ Elektr",
		"gas":         "🔥 Gaz",
		"water":       "💧 Suv",
		"heating":     "🌡 Isitish",
		"internet":    "🌐 Internet",
		"phone":       "📱 Telefon",
		"trash":       "🗑 Chiqindi",
		"other":       "📦 Boshqa",
	},
}

// IsUtilityCategory проверяет ключ категории
func IsUtilityCategory(key string) bool {
	for _, c := range UtilityCategories {
		if c == key {
			return true
		}
	}
	return false
}

// CategoryName перевод категории; неизвестные ключи выводятся как есть
func CategoryName(lang, key string) string {
	if name, ok := categoryNames[lang][key]; ok {
		return name
	}
	if name, ok := categoryNames[English][key]; ok {
		return name
	}
	return key
}

// CategoryLabel название без эмодзи, используется как описание по умолчанию
func CategoryLabel(lang, key string) string {
	return stripIcon(CategoryName(lang, key))
}
