package payout

import (
	"math"
	"testing"

	"github.com/driphq/drip/driptest"
	"github.com/driphq/drip/driptest/assert"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/x/contrib"
)

func team(allocations ...int64) []contrib.Entry {
	entries := make([]contrib.Entry, len(allocations))
	for i, a := range allocations {
		entries[i] = contrib.Entry{
			Wallet:      driptest.NewCondition().Address(),
			Contributor: &contrib.Contributor{Name: "member", MonthlyAllocation: a, Active: true},
		}
	}
	return entries
}

func TestWeightedSplitFloorsAmounts(t *testing.T) {
	payments, err := weightedSplit(900, team(4000, 3000), []int64{4000, 3000})
	assert.Nil(t, err)
	assert.Equal(t, 2, len(payments))
	assert.Equal(t, int64(514), payments[0].Amount)
	assert.Equal(t, int64(385), payments[1].Amount)
}

func TestWeightedSplitDropsZeroWeights(t *testing.T) {
	payments, err := weightedSplit(100, team(1, 0, 1), []int64{1, 0, 1})
	assert.Nil(t, err)
	assert.Equal(t, 2, len(payments))
	assert.Equal(t, int64(50), payments[0].Amount)
	assert.Equal(t, int64(50), payments[1].Amount)
}

func TestWeightedSplitAllZero(t *testing.T) {
	_, err := weightedSplit(100, team(0, 0), []int64{0, 0})
	assert.IsErr(t, errors.ErrState, err)
}

func TestWeightedSplitDropsDustOnlyShares(t *testing.T) {
	// The last entry's share rounds down to zero and is omitted.
	payments, err := weightedSplit(10, team(100, 100, 1), []int64{100, 100, 1})
	assert.Nil(t, err)
	assert.Equal(t, 2, len(payments))
}

func TestWeightedSplitOverflow(t *testing.T) {
	_, err := weightedSplit(math.MaxInt64, team(2, 3), []int64{2, 3})
	assert.IsErr(t, errors.ErrOverflow, err)
}

func TestProportionalUsesAllocations(t *testing.T) {
	entries := team(600, 400)
	payments, err := Proportional{}.Split(nil, nil, 1000, entries)
	assert.Nil(t, err)
	assert.Equal(t, int64(600), payments[0].Amount)
	assert.Equal(t, int64(400), payments[1].Amount)
	if !payments[0].Recipient.Equals(entries[0].Wallet) {
		t.Fatal("payment order must follow the entry order")
	}
}

func TestEqualIgnoresAllocations(t *testing.T) {
	payments, err := Equal{}.Split(nil, nil, 900, team(10000, 1))
	assert.Nil(t, err)
	assert.Equal(t, int64(450), payments[0].Amount)
	assert.Equal(t, int64(450), payments[1].Amount)
}
