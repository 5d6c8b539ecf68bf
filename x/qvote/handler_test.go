package qvote

import (
	"context"
	"testing"
	"time"

	"github.com/driphq/drip"
	"github.com/driphq/drip/app"
	"github.com/driphq/drip/coin"
	"github.com/driphq/drip/driptest"
	"github.com/driphq/drip/driptest/assert"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/gconf"
	"github.com/driphq/drip/store"
	"github.com/driphq/drip/x/cash"
)

var vaultID = []byte{0, 0, 0, 0, 0, 0, 0, 1}

type fixture struct {
	db    drip.KVStore
	rt    *app.Router
	auth  *driptest.CtxAuth
	cash  cash.Controller
	ctrl  *BaseController
	owner drip.Condition
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := store.MemStore()
	owner := driptest.NewCondition()
	if err := gconf.Save(db, "qvote", &Configuration{
		Owner:  owner.Address(),
		Ticker: "DRIP",
	}); err != nil {
		t.Fatalf("cannot save configuration: %+v", err)
	}
	auth := &driptest.CtxAuth{Key: "auth"}
	cashCtrl := cash.NewController(cash.NewBucket())
	rt := app.NewRouter()
	RegisterRoutes(rt, auth, cashCtrl)
	return &fixture{
		db:    db,
		rt:    rt,
		auth:  auth,
		cash:  cashCtrl,
		ctrl:  NewController(),
		owner: owner,
		now:   time.Now(),
	}
}

func (f *fixture) ctx(at time.Time, signers ...drip.Condition) drip.Context {
	ctx := drip.WithBlockTime(context.Background(), at)
	return f.auth.SetConditions(ctx, signers...)
}

func (f *fixture) createVoting(t *testing.T, nominee drip.Address, duration time.Duration) []byte {
	t.Helper()
	res, err := f.rt.Deliver(f.ctx(f.now, f.owner), f.db, &driptest.Tx{Msg: &CreateVotingMsg{
		VaultID:     vaultID,
		Nominee:     nominee,
		NomineeName: "alice",
		Role:        "engineer",
		Duration:    drip.AsUnixDuration(duration),
	}})
	if err != nil {
		t.Fatalf("cannot create voting: %+v", err)
	}
	return res.Data
}

func (f *fixture) fund(t *testing.T, addr drip.Address, amount int64) {
	t.Helper()
	if err := f.cash.IssueCoins(f.db, addr, coin.NewCoin(amount, "DRIP")); err != nil {
		t.Fatalf("cannot fund %s: %+v", addr, err)
	}
}

func TestCreateVotingOwnerGated(t *testing.T) {
	f := newFixture(t)
	nominee := driptest.NewCondition().Address()

	_, err := f.rt.Deliver(f.ctx(f.now, driptest.NewCondition()), f.db, &driptest.Tx{Msg: &CreateVotingMsg{
		VaultID:     vaultID,
		Nominee:     nominee,
		NomineeName: "alice",
		Duration:    drip.AsUnixDuration(time.Hour),
	}})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	id := f.createVoting(t, nominee, time.Hour)
	voting, err := f.ctrl.GetVoting(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, true, voting.Active)
	assert.Equal(t, voting.StartTime.Add(time.Hour), voting.EndTime)
}

func TestVoteCostIsQuadratic(t *testing.T) {
	f := newFixture(t)
	id := f.createVoting(t, driptest.NewCondition().Address(), time.Hour)
	voter := driptest.NewCondition()
	f.fund(t, voter.Address(), 100)

	_, err := f.rt.Deliver(f.ctx(f.now, voter), f.db, &driptest.Tx{Msg: &VoteMsg{
		VotingID: id, Count: 3, InFavor: true,
	}})
	assert.Nil(t, err)

	balance, err := f.cash.Balance(f.db, voter.Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(91), balance.Coin("DRIP").Amount)

	pool, err := f.cash.Balance(f.db, VotingAccount(id))
	assert.Nil(t, err)
	assert.Equal(t, int64(9), pool.Coin("DRIP").Amount)

	voting, err := f.ctrl.GetVoting(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, int64(3), voting.VotesFor)
	assert.Equal(t, int64(0), voting.VotesAgainst)
}

func TestRevoteChargesOnlyTheDifference(t *testing.T) {
	f := newFixture(t)
	id := f.createVoting(t, driptest.NewCondition().Address(), time.Hour)
	voter := driptest.NewCondition()
	f.fund(t, voter.Address(), 100)
	ctx := f.ctx(f.now, voter)

	_, err := f.rt.Deliver(ctx, f.db, &driptest.Tx{Msg: &VoteMsg{VotingID: id, Count: 2, InFavor: true}})
	assert.Nil(t, err)
	_, err = f.rt.Deliver(ctx, f.db, &driptest.Tx{Msg: &VoteMsg{VotingID: id, Count: 5, InFavor: true}})
	assert.Nil(t, err)

	// 4 paid for the first vote, 21 more to reach the 25 total.
	balance, err := f.cash.Balance(f.db, voter.Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(75), balance.Coin("DRIP").Amount)

	voting, err := f.ctrl.GetVoting(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, int64(5), voting.VotesFor)

	vote, err := f.ctrl.GetVote(f.db, id, voter.Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(25), vote.Paid)
}

func TestSwitchingSidesVacatesOldTally(t *testing.T) {
	f := newFixture(t)
	id := f.createVoting(t, driptest.NewCondition().Address(), time.Hour)
	voter := driptest.NewCondition()
	f.fund(t, voter.Address(), 100)
	ctx := f.ctx(f.now, voter)

	_, err := f.rt.Deliver(ctx, f.db, &driptest.Tx{Msg: &VoteMsg{VotingID: id, Count: 2, InFavor: true}})
	assert.Nil(t, err)
	_, err = f.rt.Deliver(ctx, f.db, &driptest.Tx{Msg: &VoteMsg{VotingID: id, Count: 4, InFavor: false}})
	assert.Nil(t, err)

	// 4 paid, then 16-4=12 more.
	balance, err := f.cash.Balance(f.db, voter.Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(84), balance.Coin("DRIP").Amount)

	voting, err := f.ctrl.GetVoting(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), voting.VotesFor)
	assert.Equal(t, int64(4), voting.VotesAgainst)
}

func TestDowngradeIsFree(t *testing.T) {
	f := newFixture(t)
	id := f.createVoting(t, driptest.NewCondition().Address(), time.Hour)
	voter := driptest.NewCondition()
	f.fund(t, voter.Address(), 100)
	ctx := f.ctx(f.now, voter)

	_, err := f.rt.Deliver(ctx, f.db, &driptest.Tx{Msg: &VoteMsg{VotingID: id, Count: 5, InFavor: true}})
	assert.Nil(t, err)
	_, err = f.rt.Deliver(ctx, f.db, &driptest.Tx{Msg: &VoteMsg{VotingID: id, Count: 2, InFavor: true}})
	assert.Nil(t, err)

	// No refunds, no extra charge.
	balance, err := f.cash.Balance(f.db, voter.Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(75), balance.Coin("DRIP").Amount)

	voting, err := f.ctrl.GetVoting(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), voting.VotesFor)
}

func TestVoteLimits(t *testing.T) {
	f := newFixture(t)
	id := f.createVoting(t, driptest.NewCondition().Address(), time.Hour)
	voter := driptest.NewCondition()
	f.fund(t, voter.Address(), 1000)
	ctx := f.ctx(f.now, voter)

	_, err := f.rt.Deliver(ctx, f.db, &driptest.Tx{Msg: &VoteMsg{VotingID: id, Count: 0, InFavor: true}})
	if !errors.ErrAmount.Is(err) {
		t.Fatalf("expected amount error, got %+v", err)
	}
	_, err = f.rt.Deliver(ctx, f.db, &driptest.Tx{Msg: &VoteMsg{VotingID: id, Count: 11, InFavor: true}})
	if !errors.ErrOverflow.Is(err) {
		t.Fatalf("expected overflow error, got %+v", err)
	}
}

func TestVoteWithoutFunds(t *testing.T) {
	f := newFixture(t)
	id := f.createVoting(t, driptest.NewCondition().Address(), time.Hour)
	voter := driptest.NewCondition()
	f.fund(t, voter.Address(), 8)

	_, err := f.rt.Deliver(f.ctx(f.now, voter), f.db, &driptest.Tx{Msg: &VoteMsg{
		VotingID: id, Count: 3, InFavor: true,
	}})
	assert.IsErr(t, errors.ErrAmount, err)
}

func TestVoteAfterEndTime(t *testing.T) {
	f := newFixture(t)
	id := f.createVoting(t, driptest.NewCondition().Address(), time.Hour)
	voter := driptest.NewCondition()
	f.fund(t, voter.Address(), 100)

	late := f.now.Add(2 * time.Hour)
	_, err := f.rt.Deliver(f.ctx(late, voter), f.db, &driptest.Tx{Msg: &VoteMsg{
		VotingID: id, Count: 1, InFavor: true,
	}})
	assert.IsErr(t, errors.ErrExpired, err)
}

func TestEndVoting(t *testing.T) {
	f := newFixture(t)
	nominee := driptest.NewCondition().Address()
	id := f.createVoting(t, nominee, time.Hour)
	voter := driptest.NewCondition()
	f.fund(t, voter.Address(), 100)

	_, err := f.rt.Deliver(f.ctx(f.now, voter), f.db, &driptest.Tx{Msg: &VoteMsg{
		VotingID: id, Count: 3, InFavor: true,
	}})
	assert.Nil(t, err)

	// Too early to end.
	_, err = f.rt.Deliver(f.ctx(f.now, f.owner), f.db, &driptest.Tx{Msg: &EndVotingMsg{VotingID: id}})
	assert.IsErr(t, errors.ErrState, err)

	late := f.now.Add(2 * time.Hour)
	_, err = f.rt.Deliver(f.ctx(late, f.owner), f.db, &driptest.Tx{Msg: &EndVotingMsg{VotingID: id}})
	assert.Nil(t, err)

	voting, err := f.ctrl.GetVoting(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, false, voting.Active)
	assert.Equal(t, true, voting.Approved)

	// Ending twice is rejected.
	_, err = f.rt.Deliver(f.ctx(late, f.owner), f.db, &driptest.Tx{Msg: &EndVotingMsg{VotingID: id}})
	assert.IsErr(t, errors.ErrState, err)
}

func TestEndVotingRejected(t *testing.T) {
	f := newFixture(t)
	id := f.createVoting(t, driptest.NewCondition().Address(), time.Hour)
	voter := driptest.NewCondition()
	f.fund(t, voter.Address(), 100)

	_, err := f.rt.Deliver(f.ctx(f.now, voter), f.db, &driptest.Tx{Msg: &VoteMsg{
		VotingID: id, Count: 2, InFavor: false,
	}})
	assert.Nil(t, err)

	late := f.now.Add(2 * time.Hour)
	_, err = f.rt.Deliver(f.ctx(late, f.owner), f.db, &driptest.Tx{Msg: &EndVotingMsg{VotingID: id}})
	assert.Nil(t, err)

	voting, err := f.ctrl.GetVoting(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, false, voting.Approved)
}

func TestApprovedWeightUsesMostRecentDecision(t *testing.T) {
	f := newFixture(t)
	nominee := driptest.NewCondition().Address()
	voter := driptest.NewCondition()
	f.fund(t, voter.Address(), 1000)
	late := f.now.Add(2 * time.Hour)

	// First voting approves the nominee with 3 votes.
	first := f.createVoting(t, nominee, time.Hour)
	_, err := f.rt.Deliver(f.ctx(f.now, voter), f.db, &driptest.Tx{Msg: &VoteMsg{
		VotingID: first, Count: 3, InFavor: true,
	}})
	assert.Nil(t, err)
	_, err = f.rt.Deliver(f.ctx(late, f.owner), f.db, &driptest.Tx{Msg: &EndVotingMsg{VotingID: first}})
	assert.Nil(t, err)

	weight, err := f.ctrl.ApprovedWeight(f.db, vaultID, nominee)
	assert.Nil(t, err)
	assert.Equal(t, int64(3), weight)

	// A newer approved voting supersedes the first decision.
	second := f.createVoting(t, nominee, time.Hour)
	_, err = f.rt.Deliver(f.ctx(f.now, voter), f.db, &driptest.Tx{Msg: &VoteMsg{
		VotingID: second, Count: 7, InFavor: true,
	}})
	assert.Nil(t, err)
	_, err = f.rt.Deliver(f.ctx(late, f.owner), f.db, &driptest.Tx{Msg: &EndVotingMsg{VotingID: second}})
	assert.Nil(t, err)

	weight, err = f.ctrl.ApprovedWeight(f.db, vaultID, nominee)
	assert.Nil(t, err)
	assert.Equal(t, int64(7), weight)

	// An unknown wallet has no weight.
	weight, err = f.ctrl.ApprovedWeight(f.db, vaultID, driptest.NewCondition().Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(0), weight)
}
