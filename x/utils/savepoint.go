package utils

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/errors"
)

// Savepoint runs the wrapped handler inside an isolated store layer and
// keeps or discards the writes depending on the outcome. A failed request
// leaves no trace in the store.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ drip.Decorator = Savepoint{}

// NewSavepoint creates an inactive Savepoint decorator. Call OnCheck or
// OnDeliver to select the phases it isolates.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that also isolates the Check phase.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that also isolates the Deliver phase.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check runs the rest of the chain on an overlay when OnCheck was
// requested.
func (s Savepoint) Check(ctx drip.Context, store drip.KVStore, tx drip.Tx, next drip.Checker) (*drip.CheckResult, error) {
	cache, isolated := s.overlay(store, s.onCheck)
	if !isolated {
		return next.Check(ctx, store, tx)
	}
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "savepoint write")
	}
	return res, nil
}

// Deliver runs the rest of the chain on an overlay when OnDeliver was
// requested.
func (s Savepoint) Deliver(ctx drip.Context, store drip.KVStore, tx drip.Tx, next drip.Deliverer) (*drip.DeliverResult, error) {
	cache, isolated := s.overlay(store, s.onDeliver)
	if !isolated {
		return next.Deliver(ctx, store, tx)
	}
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "savepoint write")
	}
	return res, nil
}

// overlay cache-wraps the store. A store that cannot be cache-wrapped is
// passed through without isolation.
func (s Savepoint) overlay(store drip.KVStore, active bool) (drip.KVCacheWrap, bool) {
	if !active {
		return nil, false
	}
	cstore, ok := store.(drip.CacheableKVStore)
	if !ok {
		return nil, false
	}
	return cstore.CacheWrap(), true
}
