package qvote

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/coin"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/gconf"
)

// Configuration holds the voting capability and payment settings.
type Configuration struct {
	// Owner can create and end votings and patch this configuration.
	Owner drip.Address `json:"owner"`
	// Ticker is the currency charged for casting votes.
	Ticker string `json:"ticker"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) GetOwner() drip.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if !coin.IsCC(c.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.ErrCurrency)
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
	if err := gconf.Load(db, "qvote", &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
