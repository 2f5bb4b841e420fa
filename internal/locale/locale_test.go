package locale

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAllLanguagesHaveAllKeys(t *testing.T) {
	for _, lang := range Languages {
		for key := range texts[English] {
			if _, ok := texts[lang][key]; !ok {
				t.Errorf("%s: missing translation for %q", lang, key)
			}
		}
	}
}

func TestMenuLabelsAreUnique(t *testing.T) {
	seen := map[string]Key{}
	for _, lang := range Languages {
		for _, key := range MenuKeys {
			label := texts[lang][key]
			if prev, ok := seen[label]; ok && prev != key {
				t.Errorf("label %q used for %q and %q", label, prev, key)
			}
			seen[label] = key
		}
	}
}

func TestMenuKey(t *testing.T) {
	tests := []struct {
		text string
		want Key
		ok   bool
	}{
		{"💸 Expense", MenuExpense, true},
		{"📊 Статистика", MenuStats, true},
		{" ⚙️ Sozlamalar ", MenuSettings, true},
		{"50000 breakfast", "", false},
	}
	for _, tt := range tests {
		got, ok := MenuKey(tt.text)
		if got != tt.want || ok != tt.ok {
			t.Errorf("MenuKey(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestT(t *testing.T) {
	if got := T(Russian, NoData); got != "🤷 Нет данных" {
		t.Errorf("T(ru, no_data) = %q", got)
	}
	if got := T("de", NoData); got != texts[English][NoData] {
		t.Errorf("unknown language must fall back to English, got %q", got)
	}
	if got := T(English, WatchAd, 5); got != "⏳ Watch ad (5 sec)" {
		t.Errorf("T with args = %q", got)
	}
	if got := T(English, Key("nope")); got != "nope" {
		t.Errorf("missing key = %q, want key itself", got)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"ru", Russian},
		{"en-US", English},
		{"uz", Uzbek},
		{"", Default},
		{"not a tag!", Default},
	}
	for _, tt := range tests {
		if got := Match(tt.code, Default); got != tt.want {
			t.Errorf("Match(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"1234.5", "USD", "1,234.50 $"},
		{"50000", "UZS", "50,000.00 so'm"},
		{"0.129", "RUB", "0.13 ₽"},
		{"12", "GBP", "12.00 GBP"},
	}
	for _, tt := range tests {
		got := FormatMoney(decimal.RequireFromString(tt.amount), tt.currency)
		if got != tt.want {
			t.Errorf("FormatMoney(%s, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestMonthName(t *testing.T) {
	if got := MonthName(Uzbek, time.December); got != "Dekabr" {
		t.Errorf("MonthName(uz, December) = %q", got)
	}
	if got := MonthName("xx", time.March); got != "March" {
		t.Errorf("MonthName(xx, March) = %q", got)
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryLabel(English, "electricity"); got != "Electricity" {
		t.Errorf("CategoryLabel = %q, want Electricity", got)
	}
	if got := CategoryLabel(Russian, "custom"); got != "custom" {
		t.Errorf("CategoryLabel(unknown) = %q, want custom", got)
	}
}

func TestLabel(t *testing.T) {
	if got := Label(English, TotalIncome); got != "Total income" {
		t.Errorf("Label(total_income) = %q", got)
	}
	if got := Label(English, Key("plain text")); got != "plain text" {
		t.Errorf("Label(plain) = %q", got)
	}
}
