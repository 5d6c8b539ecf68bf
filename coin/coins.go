package coin

import (
	"sort"
	"strings"

	"github.com/driphq/drip/errors"
)

// Coins is a set of coins. It keeps at most one coin per currency, holds no
// zero values and is sorted by the ticker. Use the Add method to alter a
// set, so those invariants are maintained.
type Coins []Coin

// NewCoins combines any number of coins into a normalized set. Coins of the
// same currency are merged.
func NewCoins(coins ...Coin) (Coins, error) {
	var res Coins
	for _, c := range coins {
		var err error
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Add returns a new set with given coin merged in. The original set is not
// modified.
// An error is returned if the merge overflows or would result in a negative
// amount, as a coin set never represents a debt.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}

	idx := sort.Search(len(cs), func(i int) bool {
		return cs[i].Ticker >= c.Ticker
	})

	if idx < len(cs) && cs[idx].SameType(c) {
		sum, err := cs[idx].Add(c)
		if err != nil {
			return nil, err
		}
		if sum.Amount < 0 {
			return nil, errors.Wrapf(errors.ErrAmount, "insufficient funds: %s", cs[idx])
		}
		res := make(Coins, 0, len(cs))
		res = append(res, cs[:idx]...)
		if !sum.IsZero() {
			res = append(res, sum)
		}
		return append(res, cs[idx+1:]...), nil
	}

	if c.Amount < 0 {
		return nil, errors.Wrapf(errors.ErrAmount, "insufficient funds: no %s", c.Ticker)
	}

	res := make(Coins, 0, len(cs)+1)
	res = append(res, cs[:idx]...)
	res = append(res, c)
	return append(res, cs[idx:]...), nil
}

// Coin returns the coin of given currency held in this set. A zero value
// coin is returned if the set does not hold the currency.
func (cs Coins) Coin(ticker string) Coin {
	for _, c := range cs {
		if c.Ticker == ticker {
			return c
		}
	}
	return Coin{Ticker: ticker}
}

// Contains returns true if this set holds at least the given coin value.
func (cs Coins) Contains(c Coin) bool {
	return cs.Coin(c.Ticker).Compare(c) >= 0
}

// IsEmpty returns true if the set holds no value.
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// Clone returns a deep copy of this set.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	return append(Coins{}, cs...)
}

// Equals returns true if both sets hold exactly the same value.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(o[i]) {
			return false
		}
	}
	return true
}

// Validate ensures the set maintains all invariants: every coin is valid
// and positive, at most one coin per currency, sorted by ticker.
func (cs Coins) Validate() error {
	last := ""
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return err
		}
		if !c.IsPositive() {
			return errors.Wrapf(errors.ErrAmount, "non-positive amount: %s", c)
		}
		if c.Ticker <= last {
			return errors.Wrap(errors.ErrState, "coins not sorted by ticker")
		}
		last = c.Ticker
	}
	return nil
}

// String provides a human readable representation of the set
func (cs Coins) String() string {
	if len(cs) == 0 {
		return "(empty)"
	}
	reprs := make([]string, len(cs))
	for i, c := range cs {
		reprs[i] = c.String()
	}
	return strings.Join(reprs, ", ")
}
