package vault

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/coin"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/orm"
)

// Controller is the vault functionality offered to other extensions. All
// share ledger mutations go through it.
type Controller interface {
	// Load returns the vault with given identifier.
	Load(db drip.ReadOnlyKVStore, vaultID []byte) (*Vault, error)
	// TotalAssets returns the pool balance of the vault's asset.
	TotalAssets(db drip.ReadOnlyKVStore, vaultID []byte) (int64, error)
	// ShareBalance returns the number of shares the holder owns.
	ShareBalance(db drip.ReadOnlyKVStore, vaultID []byte, holder drip.Address) (int64, error)
	// Deposit moves funds from src into the pool and mints shares to
	// the receiver, one share per unit.
	Deposit(db drip.KVStore, vaultID []byte, src, receiver drip.Address, amount int64) error
	// Redeem burns shares owned by holder and pays the receiver one
	// unit per share from the pool.
	Redeem(db drip.KVStore, vaultID []byte, holder, receiver drip.Address, shares int64) error
	// Distribute pays funds from the pool without burning shares.
	Distribute(db drip.KVStore, vaultID []byte, recipient drip.Address, amount int64) error
	// BatchDistribute applies many pool payments at once, all or none.
	BatchDistribute(db drip.KVStore, vaultID []byte, payments []Payment) error
}

// CashController is the subset of the cash extension the vault needs.
type CashController interface {
	Balance(drip.ReadOnlyKVStore, drip.Address) (coin.Coins, error)
	MoveCoins(drip.KVStore, drip.Address, drip.Address, coin.Coin) error
}

// BaseController implements Controller over the vault and share buckets.
type BaseController struct {
	vaults *VaultBucket
	shares ShareBucket
	cash   CashController
}

var _ Controller = (*BaseController)(nil)

// NewController returns a controller bound to the given cash ledger.
func NewController(cash CashController) *BaseController {
	return &BaseController{
		vaults: NewVaultBucket(),
		shares: NewShareBucket(),
		cash:   cash,
	}
}

func (c *BaseController) Load(db drip.ReadOnlyKVStore, vaultID []byte) (*Vault, error) {
	return c.vaults.GetVault(db, vaultID)
}

func (c *BaseController) TotalAssets(db drip.ReadOnlyKVStore, vaultID []byte) (int64, error) {
	v, err := c.vaults.GetVault(db, vaultID)
	if err != nil {
		return 0, err
	}
	balance, err := c.cash.Balance(db, VaultAccount(vaultID))
	if err != nil {
		return 0, errors.Wrap(err, "cannot get pool balance")
	}
	return balance.Coin(v.Asset).Amount, nil
}

func (c *BaseController) ShareBalance(db drip.ReadOnlyKVStore, vaultID []byte, holder drip.Address) (int64, error) {
	return c.shares.Balance(db, vaultID, holder)
}

// create persists a new vault and returns its identifier.
func (c *BaseController) create(db drip.KVStore, v *Vault) ([]byte, error) {
	obj, err := c.vaults.Create(db, v)
	if err != nil {
		return nil, err
	}
	return obj.Key(), nil
}

func (c *BaseController) Deposit(db drip.KVStore, vaultID []byte, src, receiver drip.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non-positive deposit: %d", amount)
	}
	v, err := c.vaults.GetVault(db, vaultID)
	if err != nil {
		return err
	}
	if err := c.cash.MoveCoins(db, src, VaultAccount(vaultID), coin.NewCoin(amount, v.Asset)); err != nil {
		return errors.Wrap(err, "cannot fund pool")
	}
	held, err := c.shares.Balance(db, vaultID, receiver)
	if err != nil {
		return err
	}
	if err := c.shares.SetBalance(db, vaultID, receiver, held+amount); err != nil {
		return err
	}
	v.TotalShares += amount
	return c.vaults.Save(db, orm.NewSimpleObj(vaultID, v))
}

func (c *BaseController) Redeem(db drip.KVStore, vaultID []byte, holder, receiver drip.Address, shares int64) error {
	if shares <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non-positive redemption: %d", shares)
	}
	v, err := c.vaults.GetVault(db, vaultID)
	if err != nil {
		return err
	}
	held, err := c.shares.Balance(db, vaultID, holder)
	if err != nil {
		return err
	}
	if held < shares {
		return errors.Wrapf(errors.ErrAmount, "insufficient shares: %d < %d", held, shares)
	}
	if err := c.cash.MoveCoins(db, VaultAccount(vaultID), receiver, coin.NewCoin(shares, v.Asset)); err != nil {
		return errors.Wrap(err, "cannot pay out pool")
	}
	if err := c.shares.SetBalance(db, vaultID, holder, held-shares); err != nil {
		return err
	}
	v.TotalShares -= shares
	return c.vaults.Save(db, orm.NewSimpleObj(vaultID, v))
}

func (c *BaseController) Distribute(db drip.KVStore, vaultID []byte, recipient drip.Address, amount int64) error {
	return c.BatchDistribute(db, vaultID, []Payment{
		{Recipient: recipient, Amount: amount},
	})
}

func (c *BaseController) BatchDistribute(db drip.KVStore, vaultID []byte, payments []Payment) error {
	if len(payments) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no payments")
	}
	v, err := c.vaults.GetVault(db, vaultID)
	if err != nil {
		return err
	}
	var total int64
	for i, p := range payments {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "payment #%d", i)
		}
		total += p.Amount
	}
	balance, err := c.cash.Balance(db, VaultAccount(vaultID))
	if err != nil {
		return errors.Wrap(err, "cannot get pool balance")
	}
	if balance.Coin(v.Asset).Amount < total {
		return errors.Wrapf(errors.ErrAmount, "pool balance below %d", total)
	}
	for i, p := range payments {
		amount := coin.NewCoin(p.Amount, v.Asset)
		if err := c.cash.MoveCoins(db, VaultAccount(vaultID), p.Recipient, amount); err != nil {
			return errors.Wrapf(err, "payment #%d", i)
		}
	}
	return nil
}
