package domain

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyTRY Currency = "TRY"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyTRY:
		return true
	}
	return false
}

// Money is an amount in minor units (cents) of a currency.
type Money struct {
	amount   int64
	currency Currency
}

func NewMoney(amount int64, currency Currency) (Money, error) {
	if amount < 0 {
		return Money{}, invariant("money amount cannot be negative")
	}
	if !currency.Valid() {
		return Money{}, invariant("invalid currency %q", currency)
	}
	return Money{amount: amount, currency: currency}, nil
}

func (m Money) Amount() int64      { return m.amount }
func (m Money) Currency() Currency { return m.currency }

func (m Money) EqualityComponents() []any {
	return []any{m.amount, m.currency}
}
