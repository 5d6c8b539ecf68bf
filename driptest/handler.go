package driptest

import (
	"github.com/driphq/drip"
)

// Handler implements drip.Handler and records all calls.
type Handler struct {
	checkCall   int
	deliverCall int

	// CheckResult is returned by Check method. A zero value result is
	// returned if not set.
	CheckResult drip.CheckResult
	// CheckErr if set is returned by Check method.
	CheckErr error

	// DeliverResult is returned by Deliver method. A zero value result
	// is returned if not set.
	DeliverResult drip.DeliverResult
	// DeliverErr if set is returned by Deliver method.
	DeliverErr error
}

var _ drip.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// CheckCallCount returns the number of times Check was called.
func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

// DeliverCallCount returns the number of times Deliver was called.
func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

// CallCount returns the number of times either Check or Deliver was called.
func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// Decorator implements drip.Decorator and records all calls, passing every
// request through to the next element of the chain.
type Decorator struct {
	checkCall   int
	deliverCall int
}

var _ drip.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx, next drip.Checker) (*drip.CheckResult, error) {
	d.checkCall++
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx, next drip.Deliverer) (*drip.DeliverResult, error) {
	d.deliverCall++
	return next.Deliver(ctx, db, tx)
}

// CheckCallCount returns the number of times Check was called.
func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

// DeliverCallCount returns the number of times Deliver was called.
func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

// CallCount returns the number of times either Check or Deliver was called.
func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}
