package locale

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Поддерживаемые языки
const (
	Uzbek   = "uz"
	Russian = "ru"
	English = "en"
)

// Default язык интерфейса до регистрации
const Default = Uzbek

// Languages коды в порядке показа на клавиатуре
var Languages = []string{Uzbek, Russian, English}

var languageNames = map[string]string{
	Uzbek:   "🇺🇿 O'zbekcha",
	Russian: "🇷🇺 Русский",
	English: "🇬🇧 English",
}

// LanguageName название языка на нем самом
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// Supported сообщает, есть ли переводы для языка
func Supported(code string) bool {
	_, ok := texts[code]
	return ok
}

var matcher = language.NewMatcher([]language.Tag{
	language.Uzbek,
	language.Russian,
	language.English,
})

// Match подбирает поддерживаемый язык по коду клиента Telegram
func Match(clientCode, fallback string) string {
	if clientCode == "" {
		return fallback
	}
	tag, err := language.Parse(clientCode)
	if err != nil {
		return fallback
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return fallback
	}
	return Languages[index]
}

// T возвращает перевод ключа; при отсутствии берет английский
func T(lang string, key Key, args ...any) string {
	text, ok := texts[lang][key]
	if !ok {
		text, ok = texts[English][key]
	}
	if !ok {
		return string(key)
	}
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

// Label перевод без эмодзи в начале, для графиков
func Label(lang string, key Key, args ...any) string {
	return stripIcon(T(lang, key, args...))
}

// stripIcon отрезает все до первого пробела, если строка начинается не с буквы
func stripIcon(s string) string {
	for i, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return s
		}
		if r == ' ' {
			return s[i+1:]
		}
	}
	return s
}

// MenuKey находит пункт главного меню по тексту кнопки на любом языке
func MenuKey(text string) (Key, bool) {
	text = strings.TrimSpace(text)
	for _, lang := range Languages {
		for _, key := range MenuKeys {
			if texts[lang][key] == text {
				return key, true
			}
		}
	}
	return "", false
}

// MonthName название месяца на языке пользователя
func MonthName(lang string, m time.Month) string {
	names, ok := months[lang]
	if !ok {
		names = months[English]
	}
	if m < time.January || m > time.December {
		return m.String()
	}
	return names[m-1]
}

var symbols = map[string]string{
	"USD": "$",
	"RUB": "₽",
	"CNY": "¥",
	"EUR": "€",
	"UZS": "so'm",
	"KZT": "₸",
	"KGS": "с",
	"TJS": "SM",
	"TRY": "₺",
	"INR": "₹",
	"SAR": "﷼",
}

var printer = message.NewPrinter(language.English)

// FormatMoney печатает сумму с разделителями тысяч, двумя знаками и символом валюты
func FormatMoney(amount decimal.Decimal, currency string) string {
	sym, ok := symbols[currency]
	if !ok {
		sym = currency
	}
	return printer.Sprintf("%.2f", amount.Round(2).InexactFloat64()) + " " + sym
}
