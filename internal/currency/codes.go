package currency

import "strings"

// Main валюты для регистрации и настроек
var Main = []string{"USD", "RUB", "EUR", "CNY", "UZS", "KZT", "SAR", "INR", "TRY"}

var transactionBase = []string{"USD", "RUB", "CNY"}

// TransactionChoices валюты, предлагаемые при вводе операции:
// USD, RUB, CNY и базовая валюта пользователя без повторов
func TransactionChoices(base string) []string {
	out := make([]string, 0, len(transactionBase)+1)
	seen := make(map[string]bool, len(transactionBase)+1)
	for _, c := range append(append([]string{}, transactionBase...), base) {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Normalize приводит введенный код к верхнему регистру и проверяет,
// что это три латинские буквы
func Normalize(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", false
		}
	}
	return code, true
}
