package vault

import (
	"testing"

	"github.com/driphq/drip"
	"github.com/driphq/drip/coin"
	"github.com/driphq/drip/driptest"
	"github.com/driphq/drip/driptest/assert"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/store"
	"github.com/driphq/drip/x/cash"
)

func newTestController(t *testing.T) (drip.KVStore, cash.Controller, *BaseController, []byte) {
	t.Helper()
	db := store.MemStore()
	cashCtrl := cash.NewController(cash.NewBucket())
	ctrl := NewController(cashCtrl)
	id, err := ctrl.create(db, &Vault{
		Asset: "DRIP",
		Name:  "core team",
		Owner: driptest.NewCondition().Address(),
	})
	assert.Nil(t, err)
	return db, cashCtrl, ctrl, id
}

func TestDepositMintsShares(t *testing.T) {
	db, cashCtrl, ctrl, id := newTestController(t)
	alice := driptest.NewCondition().Address()

	assert.Nil(t, cashCtrl.IssueCoins(db, alice, coin.NewCoin(1000, "DRIP")))
	assert.Nil(t, ctrl.Deposit(db, id, alice, alice, 400))

	shares, err := ctrl.ShareBalance(db, id, alice)
	assert.Nil(t, err)
	assert.Equal(t, int64(400), shares)

	v, err := ctrl.Load(db, id)
	assert.Nil(t, err)
	assert.Equal(t, int64(400), v.TotalShares)

	total, err := ctrl.TotalAssets(db, id)
	assert.Nil(t, err)
	assert.Equal(t, int64(400), total)
}

func TestDepositToAnotherReceiver(t *testing.T) {
	db, cashCtrl, ctrl, id := newTestController(t)
	alice := driptest.NewCondition().Address()
	bob := driptest.NewCondition().Address()

	assert.Nil(t, cashCtrl.IssueCoins(db, alice, coin.NewCoin(100, "DRIP")))
	assert.Nil(t, ctrl.Deposit(db, id, alice, bob, 100))

	shares, err := ctrl.ShareBalance(db, id, bob)
	assert.Nil(t, err)
	assert.Equal(t, int64(100), shares)

	shares, err = ctrl.ShareBalance(db, id, alice)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), shares)
}

func TestDepositWithoutFunds(t *testing.T) {
	db, _, ctrl, id := newTestController(t)
	alice := driptest.NewCondition().Address()

	if err := ctrl.Deposit(db, id, alice, alice, 10); err == nil {
		t.Fatal("expected deposit without funds to fail")
	}
}

func TestRedeemBurnsShares(t *testing.T) {
	db, cashCtrl, ctrl, id := newTestController(t)
	alice := driptest.NewCondition().Address()

	assert.Nil(t, cashCtrl.IssueCoins(db, alice, coin.NewCoin(500, "DRIP")))
	assert.Nil(t, ctrl.Deposit(db, id, alice, alice, 500))
	assert.Nil(t, ctrl.Redeem(db, id, alice, alice, 200))

	shares, err := ctrl.ShareBalance(db, id, alice)
	assert.Nil(t, err)
	assert.Equal(t, int64(300), shares)

	v, err := ctrl.Load(db, id)
	assert.Nil(t, err)
	assert.Equal(t, int64(300), v.TotalShares)

	balance, err := cashCtrl.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, int64(200), balance.Coin("DRIP").Amount)
}

func TestRedeemMoreThanOwned(t *testing.T) {
	db, cashCtrl, ctrl, id := newTestController(t)
	alice := driptest.NewCondition().Address()

	assert.Nil(t, cashCtrl.IssueCoins(db, alice, coin.NewCoin(100, "DRIP")))
	assert.Nil(t, ctrl.Deposit(db, id, alice, alice, 100))
	assert.IsErr(t, errors.ErrAmount, ctrl.Redeem(db, id, alice, alice, 101))
}

func TestRedeemFullPositionRemovesShareRecord(t *testing.T) {
	db, cashCtrl, ctrl, id := newTestController(t)
	alice := driptest.NewCondition().Address()

	assert.Nil(t, cashCtrl.IssueCoins(db, alice, coin.NewCoin(50, "DRIP")))
	assert.Nil(t, ctrl.Deposit(db, id, alice, alice, 50))
	assert.Nil(t, ctrl.Redeem(db, id, alice, alice, 50))

	shares, err := ctrl.ShareBalance(db, id, alice)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), shares)
}

func TestDistributeKeepsShareLedger(t *testing.T) {
	db, cashCtrl, ctrl, id := newTestController(t)
	alice := driptest.NewCondition().Address()
	bob := driptest.NewCondition().Address()

	assert.Nil(t, cashCtrl.IssueCoins(db, alice, coin.NewCoin(1000, "DRIP")))
	assert.Nil(t, ctrl.Deposit(db, id, alice, alice, 1000))
	// Yield arrives from the outside, shares stay unchanged.
	assert.Nil(t, cashCtrl.IssueCoins(db, VaultAccount(id), coin.NewCoin(100, "DRIP")))

	assert.Nil(t, ctrl.Distribute(db, id, bob, 60))

	v, err := ctrl.Load(db, id)
	assert.Nil(t, err)
	assert.Equal(t, int64(1000), v.TotalShares)

	total, err := ctrl.TotalAssets(db, id)
	assert.Nil(t, err)
	assert.Equal(t, int64(1040), total)

	balance, err := cashCtrl.Balance(db, bob)
	assert.Nil(t, err)
	assert.Equal(t, int64(60), balance.Coin("DRIP").Amount)
}

func TestBatchDistribute(t *testing.T) {
	db, cashCtrl, ctrl, id := newTestController(t)
	alice := driptest.NewCondition().Address()
	bob := driptest.NewCondition().Address()
	carl := driptest.NewCondition().Address()

	assert.Nil(t, cashCtrl.IssueCoins(db, VaultAccount(id), coin.NewCoin(100, "DRIP")))
	assert.Nil(t, ctrl.BatchDistribute(db, id, []Payment{
		{Recipient: alice, Amount: 50},
		{Recipient: bob, Amount: 30},
		{Recipient: carl, Amount: 20},
	}))

	for i, tc := range []struct {
		addr drip.Address
		want int64
	}{
		{alice, 50},
		{bob, 30},
		{carl, 20},
	} {
		balance, err := cashCtrl.Balance(db, tc.addr)
		assert.Nil(t, err)
		if got := balance.Coin("DRIP").Amount; got != tc.want {
			t.Fatalf("recipient #%d: want %d, got %d", i, tc.want, got)
		}
	}
}

func TestBatchDistributeOverdraw(t *testing.T) {
	db, cashCtrl, ctrl, id := newTestController(t)
	alice := driptest.NewCondition().Address()
	bob := driptest.NewCondition().Address()

	assert.Nil(t, cashCtrl.IssueCoins(db, VaultAccount(id), coin.NewCoin(70, "DRIP")))
	err := ctrl.BatchDistribute(db, id, []Payment{
		{Recipient: alice, Amount: 50},
		{Recipient: bob, Amount: 30},
	})
	assert.IsErr(t, errors.ErrAmount, err)
}

func TestBatchDistributeEmpty(t *testing.T) {
	db, _, ctrl, id := newTestController(t)
	assert.IsErr(t, errors.ErrEmpty, ctrl.BatchDistribute(db, id, nil))
}

func TestUnknownVault(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(cash.NewController(cash.NewBucket()))
	_, err := ctrl.Load(db, []byte{0, 0, 0, 0, 0, 0, 0, 99})
	assert.IsErr(t, errors.ErrNotFound, err)
}
