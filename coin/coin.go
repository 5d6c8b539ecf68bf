package coin

import (
	"fmt"
	"math"
	"regexp"

	"github.com/driphq/drip/errors"
)

// IsCC determines if a string is a valid currency code: three or four
// uppercase letters.
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// Coin is an amount of a single currency. The amount is expressed in the
// smallest indivisible unit of the currency, so there is no fractional
// part.
type Coin struct {
	// Ticker is the currency code
	Ticker string
	// Amount is a number of the smallest currency units
	Amount int64
}

// NewCoin creates a new coin object
func NewCoin(amount int64, ticker string) Coin {
	return Coin{
		Ticker: ticker,
		Amount: amount,
	}
}

// ID returns a coin ticker. This is particularly useful when a coin is kept
// in a collection.
func (c Coin) ID() string {
	return c.Ticker
}

// Add combines two coins of the same currency.
// It returns an error on overflow or a currency mismatch.
func (c Coin) Add(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Ticker, c.Ticker)
	}
	if (o.Amount > 0 && c.Amount > math.MaxInt64-o.Amount) ||
		(o.Amount < 0 && c.Amount < math.MinInt64-o.Amount) {
		return Coin{}, errors.Wrap(errors.ErrOverflow, "adding coins")
	}
	return Coin{
		Ticker: c.Ticker,
		Amount: c.Amount + o.Amount,
	}, nil
}

// Subtract removes the amount of the argument from this coin.
func (c Coin) Subtract(o Coin) (Coin, error) {
	return c.Add(o.Negative())
}

// Negative returns the same coin value with the opposite sign.
func (c Coin) Negative() Coin {
	return Coin{
		Ticker: c.Ticker,
		Amount: -c.Amount,
	}
}

// Multiply returns the result of multiplying this coin the given number of
// times. It returns an error on overflow.
func (c Coin) Multiply(times int64) (Coin, error) {
	if times == 0 || c.Amount == 0 {
		return Coin{Ticker: c.Ticker}, nil
	}
	amount := c.Amount * times
	if amount/times != c.Amount {
		return Coin{}, errors.Wrap(errors.ErrOverflow, "multiplying coins")
	}
	return Coin{
		Ticker: c.Ticker,
		Amount: amount,
	}, nil
}

// Divide returns the result of splitting this coin into given number of
// equal pieces, together with the leftover that cannot be split evenly.
// Both division results are floored.
func (c Coin) Divide(pieces int64) (Coin, Coin, error) {
	zero := Coin{Ticker: c.Ticker}
	if pieces <= 0 {
		return zero, zero, errors.Wrap(errors.ErrInput, "pieces must be greater than zero")
	}

	one := Coin{
		Ticker: c.Ticker,
		Amount: c.Amount / pieces,
	}
	rest := Coin{
		Ticker: c.Ticker,
		Amount: c.Amount % pieces,
	}
	return one, rest, nil
}

// Compare returns an integer comparing this and the other coin amount.
// Both coins must be of the same currency.
func (c Coin) Compare(o Coin) int {
	switch {
	case c.Amount < o.Amount:
		return -1
	case c.Amount > o.Amount:
		return 1
	default:
		return 0
	}
}

// Equals returns true if all fields are identical
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// IsZero returns true if the amount is zero
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsPositive returns true if the amount is greater than zero
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsNonNegative returns true if the amount is zero or greater
func (c Coin) IsNonNegative() bool {
	return c.Amount >= 0
}

// SameType returns true if both coins use the same currency
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Validate ensures the coin is in a well-formed state
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid currency: %s", c.Ticker)
	}
	return nil
}

// String provides a human readable representation of the coin
func (c Coin) String() string {
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}
