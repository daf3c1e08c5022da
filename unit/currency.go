package unit

import (
	"maps"
	"math"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/currency"
)

// symbols maps currency signs written before an amount to ISO 4217 codes.
//
//nolint:gochecknoglobals
var symbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"¥": "JPY",
	"₹": "INR",
	"₩": "KRW",
	"₽": "RUB",
	"₺": "TRY",
	"₪": "ILS",
	"₫": "VND",
	"฿": "THB",
	"₴": "UAH",
	"₦": "NGN",
	"₱": "PHP",
}

// signs is the inverse of symbols.
var signs = sync.OnceValue(func() map[string]string {
	m := make(map[string]string, len(symbols))
	for sign, code := range symbols {
		m[code] = sign
	}

	return m
})

// CodeForSymbol returns the ISO code of a currency sign such as "€".
func CodeForSymbol(sign string) (string, bool) {
	code, ok := symbols[sign]

	return code, ok
}

// SymbolForCode returns the sign displayed before amounts of code, if any.
func SymbolForCode(code string) (string, bool) {
	sign, ok := signs()[code]

	return sign, ok
}

// IsCurrencySymbol reports whether r begins a currency sign.
func IsCurrencySymbol(r rune) bool {
	_, ok := symbols[string(r)]

	return ok
}

// IsCurrencyCode reports whether s is an upper-case ISO 4217 code.
func IsCurrencyCode(s string) bool {
	_, err := ParseCode(s)

	return err == nil
}

// ParseCode validates an upper-case ISO 4217 code and returns its canonical
// form.
func ParseCode(s string) (string, error) {
	if len(s) != 3 || strings.ToUpper(s) != s {
		return "", ErrNotCurrency
	}

	cur, err := currency.ParseISO(s)
	if err != nil {
		return "", ErrNotCurrency
	}

	return cur.String(), nil
}

// Registry resolves unit names for one evaluation, binding currency codes to
// exchange rates. A rate is the value of one unit of a currency expressed in
// the base currency.
type Registry struct {
	base       string
	rates      map[string]float64
	currencies map[string]*Unit
}

// NewRegistry returns a Registry whose currency factors are taken from
// rates. The base currency always has rate 1.
func NewRegistry(base string, rates map[string]float64) *Registry {
	r := &Registry{
		base:       base,
		rates:      maps.Clone(rates),
		currencies: make(map[string]*Unit),
	}

	if r.rates == nil {
		r.rates = make(map[string]float64)
	}

	if base != "" {
		r.rates[base] = 1
	}

	return r
}

// Base returns the base currency code.
func (r *Registry) Base() string { return r.base }

// Codes returns the currency codes that have a known rate, sorted.
func (r *Registry) Codes() []string {
	return slices.Sorted(maps.Keys(r.rates))
}

// Currency returns the unit for an ISO code. A currency without a rate has
// a NaN factor, so any conversion through it fails with [ErrUnknownRate].
func (r *Registry) Currency(code string) (*Unit, error) {
	code, err := ParseCode(code)
	if err != nil {
		return nil, err
	}

	if u, ok := r.currencies[code]; ok {
		return u, nil
	}

	factor, ok := r.rates[code]
	if !ok || factor <= 0 {
		factor = math.NaN()
	}

	u := &Unit{
		Symbol: code,
		Name:   code,
		Dim:    Of(Currency),
		Factor: factor,
		Code:   code,
	}

	r.currencies[code] = u

	return u, nil
}

// Lookup resolves a physical unit name, a currency sign, or an ISO code.
func (r *Registry) Lookup(name string) (*Unit, bool) {
	if u, ok := Lookup(name); ok {
		return u, true
	}

	if code, ok := CodeForSymbol(name); ok {
		name = code
	}

	u, err := r.Currency(name)

	return u, err == nil
}
