package dialogue

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ivanoskov/smartbalance_bot/internal/locale"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestParseAmountDescription(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		amount      string
		description string
		wantErr     bool
	}{
		{"amount first", "50000 breakfast", "50000", "breakfast", false},
		{"amount last", "breakfast 50000", "50000", "breakfast", false},
		{"amount in the middle", "taxi 12.5 to airport", "12.5", "taxi to airport", false},
		{"comma decimal", "coffee 3,75", "3.75", "coffee", false},
		{"only amount", "700", "700", DefaultDescription, false},
		{"glued to word", "lunch2000", "2000", "lunch", false},
		{"first number wins", "2 pizzas 30", "2", "pizzas 30", false},
		{"no number", "breakfast", "", "", true},
		{"negative", "-5 refund", "", "", true},
		{"zero", "0 nothing", "", "", true},
		{"empty", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, description, err := ParseAmountDescription(tt.text, DefaultDescription)
			if tt.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("ParseAmountDescription(%q) error = %v, want ValidationError", tt.text, err)
				}
				if verr.Hint != locale.HintAmountDesc {
					t.Errorf("Hint = %q, want %q", verr.Hint, locale.HintAmountDesc)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmountDescription(%q) error = %v", tt.text, err)
			}
			if !amount.Equal(dec(tt.amount)) {
				t.Errorf("amount = %s, want %s", amount, tt.amount)
			}
			if description != tt.description {
				t.Errorf("description = %q, want %q", description, tt.description)
			}
		})
	}
}

func TestParseDebt(t *testing.T) {
	tests := []struct {
		text     string
		person   string
		amount   string
		currency string
		wantErr  bool
	}{
		{"Ali 100 USD", "Ali", "100", "USD", false},
		{"Ali 100", "Ali", "100", "UZS", false},
		{"Ali 100 rub", "Ali", "100", "RUB", false},
		{"Ali Valiyev 250.5", "Ali Valiyev", "250.5", "UZS", false},
		{"Ali Valiyev 250 EUR", "Ali Valiyev", "250", "EUR", false},
		{"Ali", "", "", "", true},
		{"Ali many", "", "", "", true},
		{"Ali -10", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			person, amount, code, err := ParseDebt(tt.text, "UZS")
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDebt(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if person != tt.person || code != tt.currency || !amount.Equal(dec(tt.amount)) {
				t.Errorf("ParseDebt(%q) = %q %s %s, want %q %s %s",
					tt.text, person, amount, code, tt.person, tt.amount, tt.currency)
			}
		})
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		text    string
		want    int
		wantErr bool
	}{
		{"15", 15, false},
		{" 31 ", 31, false},
		{"45", 45, false},
		{"fifth", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDay(tt.text)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseDay(%q) = %d, %v; want %d, wantErr %v", tt.text, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestParsePayment(t *testing.T) {
	if got, err := ParsePayment("40,5"); err != nil || !got.Equal(dec("40.5")) {
		t.Errorf("ParsePayment(40,5) = %s, %v", got, err)
	}
	for _, text := range []string{"", "abc", "0", "-3"} {
		if _, err := ParsePayment(text); err == nil {
			t.Errorf("ParsePayment(%q) expected error", text)
		}
	}
}

func TestParseConversion(t *testing.T) {
	tests := []struct {
		text     string
		amount   string
		currency string
		wantErr  bool
	}{
		{"100 USD", "100", "USD", false},
		{"eur 15.5", "15.5", "EUR", false},
		{"100", "", "", true},
		{"100 dollars", "", "", true},
		{"100 USD now", "", "", true},
	}
	for _, tt := range tests {
		amount, code, err := ParseConversion(tt.text)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseConversion(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && (code != tt.currency || !amount.Equal(dec(tt.amount))) {
			t.Errorf("ParseConversion(%q) = %s %s, want %s %s", tt.text, amount, code, tt.amount, tt.currency)
		}
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		arg   string
		year  int
		month int
		ok    bool
	}{
		{"2024-12", 2024, 12, true},
		{"2025-1", 2025, 1, true},
		{"2024-13", 0, 0, false},
		{"2024", 0, 0, false},
		{"x-1", 0, 0, false},
	}
	for _, tt := range tests {
		year, month, ok := ParseMonth(tt.arg)
		if year != tt.year || month != tt.month || ok != tt.ok {
			t.Errorf("ParseMonth(%q) = %d, %d, %v; want %d, %d, %v", tt.arg, year, month, ok, tt.year, tt.month, tt.ok)
		}
	}
}
