package app

import (
	"context"
	"testing"

	"github.com/driphq/drip"
	"github.com/driphq/drip/driptest"
	"github.com/driphq/drip/driptest/assert"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/store"
)

// sabotageHandler writes a value and then fails.
type sabotageHandler struct{}

func (sabotageHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	return &drip.CheckResult{}, nil
}

func (sabotageHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	if err := db.Set([]byte("leak"), []byte("oops")); err != nil {
		return nil, err
	}
	return nil, errors.Wrap(errors.ErrHuman, "sabotage")
}

// panicHandler always panics.
type panicHandler struct{}

func (panicHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	panic("check panic")
}

func (panicHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	panic("deliver panic")
}

func TestDefaultChainDiscardsFailedDeliveries(t *testing.T) {
	stack := DefaultChain(sabotageHandler{})
	db := store.MemStore()
	tx := &driptest.Tx{Msg: &driptest.Msg{RoutePath: "any/thing"}}

	_, err := stack.Deliver(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrHuman, err)

	// The savepoint must have discarded the partial write.
	value, err := db.Get([]byte("leak"))
	assert.Nil(t, err)
	assert.Nil(t, value)
}

func TestDefaultChainRecoversPanics(t *testing.T) {
	stack := DefaultChain(panicHandler{})
	db := store.MemStore()
	tx := &driptest.Tx{Msg: &driptest.Msg{RoutePath: "any/thing"}}

	_, err := stack.Deliver(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrPanic, err)
}

func TestDefaultChainRunsExtraDecorators(t *testing.T) {
	extra := &driptest.Decorator{}
	h := &driptest.Handler{DeliverResult: drip.DeliverResult{}}
	stack := DefaultChain(h, extra)
	db := store.MemStore()
	tx := &driptest.Tx{Msg: &driptest.Msg{RoutePath: "any/thing"}}

	if _, err := stack.Deliver(context.Background(), db, tx); err != nil {
		t.Fatalf("deliver failed: %+v", err)
	}
	assert.Equal(t, 1, extra.DeliverCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}
