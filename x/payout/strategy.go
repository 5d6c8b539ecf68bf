package payout

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/x/contrib"
	"github.com/driphq/drip/x/vault"
)

// Strategy computes the payment split of a payable amount among the
// active contributors of a vault. Implementations must be deterministic:
// same state, same split.
type Strategy interface {
	Split(db drip.ReadOnlyKVStore, vaultID []byte, payable int64, team []contrib.Entry) ([]vault.Payment, error)
}

// WeightSource reveals the payout weight a voting process assigned to a
// wallet. Implemented by the qvote controller.
type WeightSource interface {
	ApprovedWeight(db drip.ReadOnlyKVStore, vaultID []byte, wallet drip.Address) (int64, error)
}

// mul64 multiplies with an overflow check.
func mul64(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	r := a * b
	if r/b != a {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d * %d", a, b)
	}
	return r, nil
}

// weightedSplit divides payable by weight using floor division. Zero
// weighted entries receive nothing and are omitted. Dust below the
// divisor is not paid out.
func weightedSplit(payable int64, team []contrib.Entry, weights []int64) ([]vault.Payment, error) {
	var total int64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return nil, errors.Wrap(errors.ErrState, "no positive weights")
	}
	payments := make([]vault.Payment, 0, len(team))
	for i, e := range team {
		scaled, err := mul64(payable, weights[i])
		if err != nil {
			return nil, errors.Wrapf(err, "weight of %s", e.Wallet)
		}
		amount := scaled / total
		if amount == 0 {
			continue
		}
		payments = append(payments, vault.Payment{
			Recipient: e.Wallet,
			Amount:    amount,
		})
	}
	return payments, nil
}

// Proportional splits by the monthly allocation of each contributor.
type Proportional struct{}

var _ Strategy = Proportional{}

func (Proportional) Split(db drip.ReadOnlyKVStore, vaultID []byte, payable int64, team []contrib.Entry) ([]vault.Payment, error) {
	weights := make([]int64, len(team))
	for i, e := range team {
		weights[i] = e.Contributor.MonthlyAllocation
	}
	return weightedSplit(payable, team, weights)
}

// Equal splits evenly, regardless of allocations.
type Equal struct{}

var _ Strategy = Equal{}

func (Equal) Split(db drip.ReadOnlyKVStore, vaultID []byte, payable int64, team []contrib.Entry) ([]vault.Payment, error) {
	weights := make([]int64, len(team))
	for i := range weights {
		weights[i] = 1
	}
	return weightedSplit(payable, team, weights)
}

// VotingWeighted splits by the approved voting tallies of the
// contributors. Contributors without an approved voting are dropped from
// the split.
type VotingWeighted struct {
	Source WeightSource
}

var _ Strategy = VotingWeighted{}

func (s VotingWeighted) Split(db drip.ReadOnlyKVStore, vaultID []byte, payable int64, team []contrib.Entry) ([]vault.Payment, error) {
	weights := make([]int64, len(team))
	for i, e := range team {
		w, err := s.Source.ApprovedWeight(db, vaultID, e.Wallet)
		if err != nil {
			return nil, errors.Wrapf(err, "weight of %s", e.Wallet)
		}
		weights[i] = w
	}
	return weightedSplit(payable, team, weights)
}

// strategies binds every method name to its implementation.
func strategies(source WeightSource) map[string]Strategy {
	return map[string]Strategy{
		MethodProportional:   Proportional{},
		MethodEqual:          Equal{},
		MethodVotingWeighted: VotingWeighted{Source: source},
	}
}
