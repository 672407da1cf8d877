package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a value object representing monetary amounts in integer minor units
// (cents). Keeping cents internally makes equality exact: two prices either match
// or they do not, without floating-point tolerance comparisons.
// It is immutable - all operations return new Money instances.
type Money struct {
	cents int64
}

// NewMoneyFromCents creates Money from an amount already expressed in cents
func NewMoneyFromCents(cents int64) Money {
	return Money{cents: cents}
}

// NewMoneyFromDecimal creates Money from a decimal amount in major units,
// rounding half-up to the nearest cent
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{cents: amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()}
}

// NewMoneyFromFloat creates Money from a float64 amount in major units
func NewMoneyFromFloat(amount float64) Money {
	return NewMoneyFromDecimal(decimal.NewFromFloat(amount))
}

// NewMoneyFromString creates Money from a string representation in major units
func NewMoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoneyFromDecimal(d), nil
}

// ZeroMoney returns a zero-value Money
func ZeroMoney() Money {
	return Money{}
}

// Cents returns the amount in integer minor units
func (m Money) Cents() int64 {
	return m.cents
}

// Decimal returns the amount in major units as a decimal
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.cents, -2)
}

// Float64 returns the amount in major units as a float64 (display only)
func (m Money) Float64() float64 {
	f, _ := m.Decimal().Float64()
	return f
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsPositive returns true if the amount is positive
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// Add returns a new Money with the sum of both amounts
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Subtract returns a new Money with the difference
func (m Money) Subtract(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// MulInt returns a new Money multiplied by an integer factor (e.g. a quantity)
func (m Money) MulInt(factor int64) Money {
	return Money{cents: m.cents * factor}
}

// Equals returns true if both amounts represent the same number of cents
func (m Money) Equals(other Money) bool {
	return m.cents == other.cents
}

// LessThan returns true if this amount is less than the other
func (m Money) LessThan(other Money) bool {
	return m.cents < other.cents
}

// GreaterThan returns true if this amount is greater than the other
func (m Money) GreaterThan(other Money) bool {
	return m.cents > other.cents
}

// String returns the amount formatted in major units with two decimals
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON implements json.Marshaler, emitting the amount in major units
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Float64())
}

// UnmarshalJSON implements json.Unmarshaler, accepting major units
func (m *Money) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = NewMoneyFromFloat(f)
	return nil
}

// Value implements driver.Valuer, storing the amount as integer cents
func (m Money) Value() (driver.Value, error) {
	return m.cents, nil
}

// Scan implements sql.Scanner
func (m *Money) Scan(value interface{}) error {
	if value == nil {
		*m = Money{}
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = Money{cents: v}
		return nil
	case int:
		*m = Money{cents: int64(v)}
		return nil
	default:
		return errors.New("unsupported type for Money")
	}
}
