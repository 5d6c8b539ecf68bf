package utils

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/errors"
)

// Recovery converts a panic anywhere below it in the chain into a regular
// error return. It belongs at the top of every chain.
type Recovery struct{}

var _ drip.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check passes the request through and captures a panic as the returned
// error.
func (r Recovery) Check(ctx drip.Context, store drip.KVStore, tx drip.Tx, next drip.Checker) (res *drip.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver passes the request through and captures a panic as the returned
// error.
func (r Recovery) Deliver(ctx drip.Context, store drip.KVStore, tx drip.Tx, next drip.Deliverer) (res *drip.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
