package payout

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/gconf"
)

// maxBps is the whole in basis points.
const maxBps = 10000

// Configuration holds the scheduling capability and the reserve setting.
type Configuration struct {
	// Owner can schedule and execute distributions and patch this
	// configuration.
	Owner drip.Address `json:"owner"`
	// ReservedFundsBps is the share of every distribution, in basis
	// points, kept in the pool as a reserve.
	ReservedFundsBps int64 `json:"reserved_funds_bps"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) GetOwner() drip.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if c.ReservedFundsBps < 0 || c.ReservedFundsBps > maxBps {
		errs = errors.AppendField(errs, "ReservedFundsBps", errors.ErrInput)
	}
	return errs
}

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, c)
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, "payout", &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
