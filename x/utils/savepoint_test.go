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

// writingHandler writes a key-value pair before returning the configured
// error.
type writingHandler struct {
	key   []byte
	value []byte
	err   error
}

var _ drip.Handler = writingHandler{}

func (h writingHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &drip.CheckResult{}, h.err
}

func (h writingHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &drip.DeliverResult{}, h.err
}

func TestSavepointCommitsOnSuccess(t *testing.T) {
	h := writingHandler{key: []byte("k"), value: []byte("v")}
	deco := NewSavepoint().OnDeliver()

	db := store.MemStore()
	tx := &driptest.Tx{Msg: &driptest.Msg{RoutePath: "any/thing"}}
	if _, err := deco.Deliver(context.Background(), db, tx, h); err != nil {
		t.Fatalf("deliver failed: %+v", err)
	}

	if has, _ := db.Has([]byte("k")); !has {
		t.Fatal("successful write must be persisted")
	}
}

func TestSavepointDiscardsOnError(t *testing.T) {
	h := writingHandler{key: []byte("k"), value: []byte("v"), err: errors.Wrap(errors.ErrState, "boom")}
	deco := NewSavepoint().OnDeliver()

	db := store.MemStore()
	tx := &driptest.Tx{Msg: &driptest.Msg{RoutePath: "any/thing"}}
	_, err := deco.Deliver(context.Background(), db, tx, h)
	assert.IsErr(t, errors.ErrState, err)

	if has, _ := db.Has([]byte("k")); has {
		t.Fatal("failed delivery must not leave partial writes")
	}
}

func TestSavepointInactiveWithoutTrigger(t *testing.T) {
	h := writingHandler{key: []byte("k"), value: []byte("v"), err: errors.Wrap(errors.ErrState, "boom")}
	deco := NewSavepoint() // neither OnCheck nor OnDeliver

	db := store.MemStore()
	tx := &driptest.Tx{Msg: &driptest.Msg{RoutePath: "any/thing"}}
	_, err := deco.Deliver(context.Background(), db, tx, h)
	assert.IsErr(t, errors.ErrState, err)

	// Without the savepoint active, the partial write leaks through.
	if has, _ := db.Has([]byte("k")); !has {
		t.Fatal("inactive savepoint must not isolate writes")
	}
}

func TestSavepointOnCheck(t *testing.T) {
	h := writingHandler{key: []byte("k"), value: []byte("v"), err: errors.Wrap(errors.ErrState, "boom")}
	deco := NewSavepoint().OnCheck()

	db := store.MemStore()
	tx := &driptest.Tx{Msg: &driptest.Msg{RoutePath: "any/thing"}}
	_, err := deco.Check(context.Background(), db, tx, h)
	assert.IsErr(t, errors.ErrState, err)

	if has, _ := db.Has([]byte("k")); has {
		t.Fatal("failed check must not leave partial writes")
	}
}
