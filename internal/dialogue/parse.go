package dialogue

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ivanoskov/smartbalance_bot/internal/currency"
	"github.com/ivanoskov/smartbalance_bot/internal/locale"
)

// DefaultDescription подставляется, когда в тексте нет ничего кроме суммы
const DefaultDescription = "Other"

// ValidationError ввод не подходит для текущего шага. Шаг не меняется,
// пользователю показывается подсказка.
type ValidationError struct {
	Hint locale.Key
}

func (e *ValidationError) Error() string {
	return "invalid input: " + string(e.Hint)
}

func invalid(hint locale.Key) error {
	return &ValidationError{Hint: hint}
}

var numberPattern = regexp.MustCompile(`[-+]?\d+(?:[.,]\d+)?`)

// parsePositive разбирает число, допускает запятую как разделитель дробной части
func parsePositive(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

// ParseAmountDescription берет первое число в тексте как сумму, остальное как описание.
// Положение числа в строке не важно: "50000 завтрак" и "завтрак 50000" равнозначны.
func ParseAmountDescription(text, defaultDescription string) (decimal.Decimal, string, error) {
	loc := numberPattern.FindStringIndex(text)
	if loc == nil {
		return decimal.Zero, "", invalid(locale.HintAmountDesc)
	}
	amount, ok := parsePositive(text[loc[0]:loc[1]])
	if !ok {
		return decimal.Zero, "", invalid(locale.HintAmountDesc)
	}

	description := strings.Join(strings.Fields(text[:loc[0]]+" "+text[loc[1]:]), " ")
	if description == "" {
		description = defaultDescription
	}
	return amount, description, nil
}

// ParseDebt разбирает "имя сумма [валюта]". Имя может состоять из нескольких слов,
// без валюты берется base.
func ParseDebt(text, base string) (person string, amount decimal.Decimal, code string, err error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return "", decimal.Zero, "", invalid(locale.HintDebt)
	}

	last := len(fields) - 1
	if len(fields) >= 3 {
		if c, ok := currency.Normalize(fields[last]); ok {
			if a, ok := parsePositive(fields[last-1]); ok {
				return strings.Join(fields[:last-1], " "), a, c, nil
			}
		}
	}

	a, ok := parsePositive(fields[last])
	if !ok {
		return "", decimal.Zero, "", invalid(locale.HintDebt)
	}
	return strings.Join(fields[:last], " "), a, base, nil
}

// ParseDay число месяца. Диапазон не проверяется: несуществующая дата дает пустой отчет.
func ParseDay(text string) (int, error) {
	day, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, invalid(locale.HintDay)
	}
	return day, nil
}

// ParsePayment сумма частичного погашения долга
func ParsePayment(text string) (decimal.Decimal, error) {
	amount, ok := parsePositive(text)
	if !ok {
		return decimal.Zero, invalid(locale.HintPayment)
	}
	return amount, nil
}

// ParseConversion разбирает "100 USD" (порядок токенов не важен)
func ParseConversion(text string) (decimal.Decimal, string, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return decimal.Zero, "", invalid(locale.HintConversion)
	}
	if amount, ok := parsePositive(fields[0]); ok {
		if code, ok := currency.Normalize(fields[1]); ok {
			return amount, code, nil
		}
	}
	if amount, ok := parsePositive(fields[1]); ok {
		if code, ok := currency.Normalize(fields[0]); ok {
			return amount, code, nil
		}
	}
	return decimal.Zero, "", invalid(locale.HintConversion)
}

// ParseMonth разбирает аргумент кнопки выбора месяца "2024-12"
func ParseMonth(arg string) (int, int, bool) {
	y, m, ok := strings.Cut(arg, "-")
	if !ok {
		return 0, 0, false
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}
