package contrib

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/orm"
)

// Entry pairs a contributor record with its wallet address. Scans return
// entries ordered by wallet, so two scans of the same state pay out in the
// same order.
type Entry struct {
	Wallet      drip.Address
	Contributor *Contributor
}

// Controller is the registry functionality offered to other extensions.
type Controller interface {
	// Get returns the record for given vault and wallet.
	Get(db drip.ReadOnlyKVStore, vaultID []byte, wallet drip.Address) (*Contributor, error)
	// VaultContributors returns all records of a vault, active or not,
	// ordered by wallet.
	VaultContributors(db drip.ReadOnlyKVStore, vaultID []byte) ([]Entry, error)
	// ActiveContributors returns only the active records of a vault,
	// ordered by wallet.
	ActiveContributors(db drip.ReadOnlyKVStore, vaultID []byte) ([]Entry, error)
	// TotalMonthlyAllocation sums the allocations of active
	// contributors only.
	TotalMonthlyAllocation(db drip.ReadOnlyKVStore, vaultID []byte) (int64, error)
	// RecordEarnings adds the amount to the lifetime earnings.
	RecordEarnings(db drip.KVStore, vaultID []byte, wallet drip.Address, amount int64) error
}

// BaseController implements Controller over the contributor bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

func (c BaseController) Get(db drip.ReadOnlyKVStore, vaultID []byte, wallet drip.Address) (*Contributor, error) {
	return c.bucket.GetContributor(db, vaultID, wallet)
}

func (c BaseController) VaultContributors(db drip.ReadOnlyKVStore, vaultID []byte) ([]Entry, error) {
	objs, err := c.bucket.PrefixScan(db, vaultID)
	if err != nil {
		return nil, errors.Wrap(err, "scan contributors")
	}
	entries := make([]Entry, 0, len(objs))
	for _, obj := range objs {
		wallet := drip.Address(obj.Key()[len(vaultID):])
		entries = append(entries, Entry{
			Wallet:      wallet,
			Contributor: AsContributor(obj),
		})
	}
	return entries, nil
}

func (c BaseController) ActiveContributors(db drip.ReadOnlyKVStore, vaultID []byte) ([]Entry, error) {
	all, err := c.VaultContributors(db, vaultID)
	if err != nil {
		return nil, err
	}
	active := all[:0]
	for _, e := range all {
		if e.Contributor.Active {
			active = append(active, e)
		}
	}
	return active, nil
}

func (c BaseController) TotalMonthlyAllocation(db drip.ReadOnlyKVStore, vaultID []byte) (int64, error) {
	active, err := c.ActiveContributors(db, vaultID)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, e := range active {
		total += e.Contributor.MonthlyAllocation
	}
	return total, nil
}

func (c BaseController) RecordEarnings(db drip.KVStore, vaultID []byte, wallet drip.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non-positive earnings: %d", amount)
	}
	contributor, err := c.bucket.GetContributor(db, vaultID, wallet)
	if err != nil {
		return err
	}
	contributor.TotalEarned += amount
	return c.bucket.Save(db, orm.NewSimpleObj(Key(vaultID, wallet), contributor))
}
