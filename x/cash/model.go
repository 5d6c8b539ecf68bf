package cash

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/coin"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the balance of an account. It is stored under the account
// address.
type Wallet struct {
	Coins coin.Coins
}

var _ orm.CloneableData = (*Wallet)(nil)

// Copy makes a new wallet with the same coins
func (w *Wallet) Copy() orm.CloneableData {
	return &Wallet{
		Coins: w.Coins.Clone(),
	}
}

// Validate requires that all coins are in valid state
func (w *Wallet) Validate() error {
	return w.Coins.Validate()
}

// Marshal encodes the wallet content
func (w *Wallet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(w)
}

// Unmarshal parses the wallet content
func (w *Wallet) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, w)
}

// Add modifies the wallet balance in place.
func (w *Wallet) Add(c coin.Coin) error {
	coins, err := w.Coins.Add(c)
	if err != nil {
		return err
	}
	w.Coins = coins
	return nil
}

//--- Wallet object and bucket

// NewWallet creates an empty wallet to be stored under given address
func NewWallet(key drip.Address) orm.Object {
	return orm.NewSimpleObj(key, new(Wallet))
}

// WalletWith creates a wallet with given coins
func WalletWith(key drip.Address, coins ...coin.Coin) (orm.Object, error) {
	obj := NewWallet(key)
	w := AsWallet(obj)
	for _, c := range coins {
		if err := w.Add(c); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// AsWallet extracts the wallet from the object, panics on a wrong type
func AsWallet(obj orm.Object) *Wallet {
	return obj.Value().(*Wallet)
}

// AsCoins extracts the coins of a wallet object, nil object means no coins
func AsCoins(obj orm.Object) coin.Coins {
	if obj == nil {
		return nil
	}
	return AsWallet(obj).Coins
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket creates the wallet storage
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Wallet{})),
	}
}

// GetOrCreate returns the wallet under given address, creating an empty
// one if none is stored yet
func (b Bucket) GetOrCreate(db drip.ReadOnlyKVStore, key drip.Address) (orm.Object, error) {
	obj, err := b.Get(db, key)
	if err == nil && obj == nil {
		obj = NewWallet(key)
	}
	return obj, err
}

// Save enforces that only wallet objects enter this bucket
func (b Bucket) Save(db drip.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Wallet); !ok {
		return errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// RegisterQuery exposes the wallets over the query router
func (b Bucket) RegisterQuery(qr drip.QueryRouter) {
	b.Register("wallets", qr)
}
