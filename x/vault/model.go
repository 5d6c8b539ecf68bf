package vault

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/coin"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/orm"
)

const (
	// BucketName stores the vaults
	BucketName = "vault"
	// ShareBucketName stores the per-holder share balances
	ShareBucketName = "share"
)

// VaultAccount returns the address of the pool account that holds all
// assets deposited into the vault with given identifier.
func VaultAccount(vaultID []byte) drip.Address {
	return drip.NewCondition("vault", "pool", vaultID).Address()
}

// Vault is the custody unit. Funds are kept in the pool account, this
// model tracks the metadata and the share supply.
type Vault struct {
	// Asset is the ticker of the only currency this vault accepts.
	Asset string
	// Name is a human readable vault title.
	Name string
	// Description is optional free text.
	Description string
	// Owner may move pool funds without burning shares.
	Owner drip.Address
	// TotalShares is the sum of all issued shares. It changes only
	// through deposits and redemptions.
	TotalShares int64
}

var _ orm.CloneableData = (*Vault)(nil)

func (v *Vault) Copy() orm.CloneableData {
	return &Vault{
		Asset:       v.Asset,
		Name:        v.Name,
		Description: v.Description,
		Owner:       v.Owner.Clone(),
		TotalShares: v.TotalShares,
	}
}

func (v *Vault) Validate() error {
	var errs error
	if !coin.IsCC(v.Asset) {
		errs = errors.AppendField(errs, "Asset", errors.ErrCurrency)
	}
	if v.Name == "" {
		errs = errors.AppendField(errs, "Name", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Owner", v.Owner.Validate())
	if v.TotalShares < 0 {
		errs = errors.AppendField(errs, "TotalShares", errors.ErrAmount)
	}
	return errs
}

func (v *Vault) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(v)
}

func (v *Vault) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, v)
}

// Share is a single holder position within a vault.
type Share struct {
	Amount int64
}

var _ orm.CloneableData = (*Share)(nil)

func (s *Share) Copy() orm.CloneableData {
	return &Share{Amount: s.Amount}
}

func (s *Share) Validate() error {
	if s.Amount <= 0 {
		return errors.Field("Amount", errors.ErrAmount, "must be positive")
	}
	return nil
}

func (s *Share) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *Share) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, s)
}

//--- buckets

// VaultBucket stores the vaults, identified by an 8 byte sequence value.
type VaultBucket struct {
	orm.Bucket
	idSeq orm.Sequence
}

// NewVaultBucket creates the vault storage
func NewVaultBucket() *VaultBucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Vault{}))
	return &VaultBucket{
		Bucket: b,
		idSeq:  b.Sequence(orm.SeqID),
	}
}

// Create persists given vault under a newly assigned identifier.
func (b *VaultBucket) Create(db drip.KVStore, v *Vault) (orm.Object, error) {
	id, err := b.idSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire id")
	}
	obj := orm.NewSimpleObj(id, v)
	if err := b.Bucket.Save(db, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// GetVault returns the vault with given identifier or ErrNotFound.
func (b *VaultBucket) GetVault(db drip.ReadOnlyKVStore, vaultID []byte) (*Vault, error) {
	obj, err := b.Get(db, vaultID)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "vault %x", vaultID)
	}
	return AsVault(obj), nil
}

// Save persists a vault object.
func (b *VaultBucket) Save(db drip.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Vault); !ok {
		return errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// RegisterQuery exposes the vaults over the query router
func (b *VaultBucket) RegisterQuery(qr drip.QueryRouter) {
	b.Register("vaults", qr)
}

// AsVault extracts the vault from the object, panics on a wrong type
func AsVault(obj orm.Object) *Vault {
	return obj.Value().(*Vault)
}

// ShareBucket stores the share balances under a composite key of the vault
// identifier and the holder address. Zero positions are removed.
type ShareBucket struct {
	orm.Bucket
}

// NewShareBucket creates the share storage
func NewShareBucket() ShareBucket {
	return ShareBucket{
		Bucket: orm.NewBucket(ShareBucketName, orm.NewSimpleObj(nil, &Share{})),
	}
}

func shareKey(vaultID []byte, holder drip.Address) []byte {
	key := make([]byte, 0, len(vaultID)+len(holder))
	key = append(key, vaultID...)
	return append(key, holder...)
}

// Balance returns the number of shares the holder owns in given vault.
// A missing position is a zero balance.
func (b ShareBucket) Balance(db drip.ReadOnlyKVStore, vaultID []byte, holder drip.Address) (int64, error) {
	obj, err := b.Get(db, shareKey(vaultID, holder))
	if err != nil {
		return 0, err
	}
	if obj == nil {
		return 0, nil
	}
	return obj.Value().(*Share).Amount, nil
}

// SetBalance persists the new number of shares for the holder. Setting a
// zero balance removes the position.
func (b ShareBucket) SetBalance(db drip.KVStore, vaultID []byte, holder drip.Address, amount int64) error {
	key := shareKey(vaultID, holder)
	if amount == 0 {
		return b.Delete(db, key)
	}
	return b.Bucket.Save(db, orm.NewSimpleObj(key, &Share{Amount: amount}))
}

// RegisterQuery exposes the share positions over the query router
func (b ShareBucket) RegisterQuery(qr drip.QueryRouter) {
	b.Register("shares", qr)
}
