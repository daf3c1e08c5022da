package unit

import (
	"errors"
	"testing"
)

func TestParseCode(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"USD", "EUR", "JPY", "CHF"} {
		if _, err := ParseCode(code); err != nil {
			t.Errorf("ParseCode(%q): %v", code, err)
		}
	}

	for _, code := range []string{"usd", "EURO", "E", ""} {
		if _, err := ParseCode(code); !errors.Is(err, ErrNotCurrency) {
			t.Errorf("ParseCode(%q) err = %v, want %v", code, err, ErrNotCurrency)
		}
	}
}

func TestRegistry_Convert(t *testing.T) {
	t.Parallel()

	reg := NewRegistry("USD", map[string]float64{"EUR": 1.1, "JPY": 0.01})

	usd, _ := reg.Lookup("$")
	eur, _ := reg.Lookup("EUR")
	jpy, _ := reg.Lookup("¥")

	got, err := Convert(100, Single(eur), Single(usd))
	if err != nil || !near(got, 110) {
		t.Errorf("100 EUR -> USD = %v, %v", got, err)
	}

	got, err = Convert(1000, Single(jpy), Single(eur))
	if err != nil || !near(got, 10/1.1) {
		t.Errorf("1000 JPY -> EUR = %v, %v", got, err)
	}

	gbp, err := reg.Currency("GBP")
	if err != nil {
		t.Fatalf("Currency(GBP): %v", err)
	}

	if _, err := Convert(1, Single(gbp), Single(usd)); !errors.Is(err, ErrUnknownRate) {
		t.Errorf("GBP -> USD err = %v, want %v", err, ErrUnknownRate)
	}

	if got, err := Convert(5, Single(gbp), Single(gbp)); err != nil || got != 5 {
		t.Errorf("GBP -> GBP = %v, %v", got, err)
	}
}

func TestSymbols(t *testing.T) {
	t.Parallel()

	if code, ok := CodeForSymbol("€"); !ok || code != "EUR" {
		t.Errorf("CodeForSymbol(€) = %q, %v", code, ok)
	}

	if sign, ok := SymbolForCode("GBP"); !ok || sign != "£" {
		t.Errorf("SymbolForCode(GBP) = %q, %v", sign, ok)
	}

	if _, ok := SymbolForCode("CHF"); ok {
		t.Error("CHF has no sign")
	}
}
