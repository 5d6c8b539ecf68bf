package utils

import (
	"context"
	"testing"

	"github.com/driphq/drip"
	"github.com/driphq/drip/driptest"
	"github.com/driphq/drip/driptest/assert"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/store"
)

type panicHandler struct{}

var _ drip.Handler = panicHandler{}

func (panicHandler) Check(drip.Context, drip.KVStore, drip.Tx) (*drip.CheckResult, error) {
	panic("check blew up")
}

func (panicHandler) Deliver(drip.Context, drip.KVStore, drip.Tx) (*drip.DeliverResult, error) {
	panic("deliver blew up")
}

func TestRecoveryTurnsPanicIntoError(t *testing.T) {
	deco := NewRecovery()
	db := store.MemStore()
	tx := &driptest.Tx{Msg: &driptest.Msg{RoutePath: "any/thing"}}

	_, err := deco.Check(context.Background(), db, tx, panicHandler{})
	assert.IsErr(t, errors.ErrPanic, err)

	_, err = deco.Deliver(context.Background(), db, tx, panicHandler{})
	assert.IsErr(t, errors.ErrPanic, err)
}

func TestRecoveryPassesThrough(t *testing.T) {
	deco := NewRecovery()
	db := store.MemStore()
	tx := &driptest.Tx{Msg: &driptest.Msg{RoutePath: "any/thing"}}
	h := &driptest.Handler{}

	if _, err := deco.Deliver(context.Background(), db, tx, h); err != nil {
		t.Fatalf("deliver failed: %+v", err)
	}
	assert.Equal(t, 1, h.DeliverCallCount())
}
