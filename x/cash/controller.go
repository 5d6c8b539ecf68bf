package cash

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/coin"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/orm"
)

// Controller is the functionality offered to other extensions. It takes
// care of all balance mutations, maintaining the wallet invariants.
type Controller interface {
	// Balance returns the coins held under given account. A missing
	// wallet is reported as an empty balance.
	Balance(db drip.ReadOnlyKVStore, src drip.Address) (coin.Coins, error)
	// MoveCoins transfers the given amount between two accounts.
	MoveCoins(db drip.KVStore, src, dst drip.Address, amount coin.Coin) error
	// IssueCoins creates new currency units out of thin air and credits
	// them to the destination account. This is the entry point for value
	// earned outside of the ledger.
	IssueCoins(db drip.KVStore, dst drip.Address, amount coin.Coin) error
}

// BaseController implements Controller over a wallet bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount of funds stored under given account address.
func (c BaseController) Balance(db drip.ReadOnlyKVStore, src drip.Address) (coin.Coins, error) {
	obj, err := c.bucket.Get(db, src)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get account wallet")
	}
	return AsCoins(obj), nil
}

// MoveCoins transfers the given amount from src to dst address.
// If an error occurs, no changes are persisted.
func (c BaseController) MoveCoins(db drip.KVStore, src, dst drip.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer: %s", amount)
	}

	// A transfer within one account must not change its balance. Reading
	// the destination wallet before the debit is saved would credit a
	// stale copy and mint funds.
	if src.Equals(dst) {
		sender, err := c.bucket.Get(db, src)
		if err != nil {
			return errors.Wrap(err, "cannot get source wallet")
		}
		if sender == nil {
			return errors.Wrapf(errors.ErrEmpty, "source %s", src)
		}
		if err := AsWallet(sender).Copy().(*Wallet).Add(amount.Negative()); err != nil {
			return errors.Wrapf(err, "source %s", src)
		}
		return nil
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return errors.Wrap(err, "cannot get source wallet")
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "source %s", src)
	}
	if err := AsWallet(sender).Add(amount.Negative()); err != nil {
		return errors.Wrapf(err, "source %s", src)
	}

	recipient, err := c.bucket.GetOrCreate(db, dst)
	if err != nil {
		return errors.Wrap(err, "cannot get destination wallet")
	}
	if err := AsWallet(recipient).Add(amount); err != nil {
		return errors.Wrapf(err, "destination %s", dst)
	}

	// Only save when both operations were successful.
	if err := c.bucket.Save(db, sender); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// IssueCoins attempts to add the given amount of coins to the destination
// address.
func (c BaseController) IssueCoins(db drip.KVStore, dst drip.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive issuance: %s", amount)
	}
	recipient, err := c.bucket.GetOrCreate(db, dst)
	if err != nil {
		return errors.Wrap(err, "cannot get destination wallet")
	}
	if err := AsWallet(recipient).Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// CoinMover is a narrow interface for extensions that only transfer funds.
type CoinMover interface {
	MoveCoins(db drip.KVStore, src, dst drip.Address, amount coin.Coin) error
}

// Balancer is a narrow interface for extensions that only read balances.
type Balancer interface {
	Balance(db drip.ReadOnlyKVStore, src drip.Address) (coin.Coins, error)
}

var _ orm.Reader = Bucket{}
