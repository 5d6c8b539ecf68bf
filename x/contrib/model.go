package contrib

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/orm"
)

// BucketName stores the contributor records
const BucketName = "contrib"

// Contributor is a single registered payout recipient of a vault.
type Contributor struct {
	Name string
	Role string
	// MonthlyAllocation weights this contributor in proportional
	// payout splits.
	MonthlyAllocation int64
	// TotalEarned is the lifetime sum of all payouts. It only grows.
	TotalEarned int64
	// Active is false for soft deleted records.
	Active    bool
	CreatedAt drip.UnixTime
}

var _ orm.CloneableData = (*Contributor)(nil)

func (c *Contributor) Copy() orm.CloneableData {
	return &Contributor{
		Name:              c.Name,
		Role:              c.Role,
		MonthlyAllocation: c.MonthlyAllocation,
		TotalEarned:       c.TotalEarned,
		Active:            c.Active,
		CreatedAt:         c.CreatedAt,
	}
}

func (c *Contributor) Validate() error {
	var errs error
	if c.Name == "" {
		errs = errors.AppendField(errs, "Name", errors.ErrEmpty)
	}
	if c.MonthlyAllocation < 0 {
		errs = errors.AppendField(errs, "MonthlyAllocation", errors.ErrAmount)
	}
	if c.TotalEarned < 0 {
		errs = errors.AppendField(errs, "TotalEarned", errors.ErrAmount)
	}
	errs = errors.AppendField(errs, "CreatedAt", c.CreatedAt.Validate())
	return errs
}

func (c *Contributor) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Contributor) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, c)
}

// Bucket stores contributors under a composite key of the vault identifier
// and the wallet address. Scanning a vault prefix returns its contributors
// ordered by wallet.
type Bucket struct {
	orm.Bucket
}

// NewBucket creates the contributor storage
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Contributor{})),
	}
}

// Key builds the composite storage key of a contributor.
func Key(vaultID []byte, wallet drip.Address) []byte {
	key := make([]byte, 0, len(vaultID)+len(wallet))
	key = append(key, vaultID...)
	return append(key, wallet...)
}

// GetContributor returns the record for given vault and wallet or
// ErrNotFound.
func (b Bucket) GetContributor(db drip.ReadOnlyKVStore, vaultID []byte, wallet drip.Address) (*Contributor, error) {
	obj, err := b.Get(db, Key(vaultID, wallet))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "contributor %s in vault %x", wallet, vaultID)
	}
	return AsContributor(obj), nil
}

// Save persists a contributor object.
func (b Bucket) Save(db drip.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Contributor); !ok {
		return errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// RegisterQuery exposes the contributors over the query router
func (b Bucket) RegisterQuery(qr drip.QueryRouter) {
	b.Register("contributors", qr)
}

// AsContributor extracts the contributor from the object, panics on a
// wrong type
func AsContributor(obj orm.Object) *Contributor {
	return obj.Value().(*Contributor)
}
