package store

import (
	"bytes"

	"github.com/driphq/drip/errors"
	"github.com/google/btree"
)

// MemStore returns an in-memory store backed by an empty bottom layer.
// There is no persistence, it serves tests and throwaway state.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// BTreeCacheWrap places a btree overlay over a KVStore. Reads fall through
// to the backing store, writes stay in the overlay until Write copies the
// batch down.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap initializes a btree overlay around this kv store. The
// ReadOnlyKVStore type ensures all writes go through the Batch.
//
// free may be nil, pass an existing list to reuse its nodes.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(2, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap layers another overlay on top of this one, sharing the free
// list. The batch is non-atomic, it only ever writes to the in-memory
// layer below.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a batch that eventually may write to this overlay.
func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes the recorded batch to the backing store and resets the
// overlay.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all overlay data, returning the btree nodes to the free
// list.
func (b BTreeCacheWrap) Discard() {
	for b.bt.DeleteMin() != nil {
	}
}

// Set writes to the overlay and records the write in the batch.
func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(newSetItem(key, value))
	return b.batch.Set(key, value)
}

// Delete marks the key deleted in the overlay and records it in the batch.
func (b BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(newDeletedItem(key))
	return b.batch.Delete(key)
}

// Get reads from the overlay if present, else the backing store.
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	switch t := b.bt.Get(bkey{key}).(type) {
	case setItem:
		return t.value, nil
	case deletedItem:
		return nil, nil
	case nil:
		return b.back.Get(key)
	default:
		return nil, errors.Wrapf(errors.ErrDatabase, "unknown btree item: %#v", t)
	}
}

// Has reads from the overlay if present, else the backing store.
func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	switch t := b.bt.Get(bkey{key}).(type) {
	case setItem:
		return true, nil
	case deletedItem:
		return false, nil
	case nil:
		return b.back.Has(key)
	default:
		return false, errors.Wrapf(errors.ErrDatabase, "unknown btree item: %#v", t)
	}
}

// Iterator over a domain of keys in ascending order, combining the
// overlay with the backing store.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return ascendOverlay(b.bt, start, end).wrap(parent, false)
}

// ReverseIterator over a domain of keys in descending order, combining
// the overlay with the backing store.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return descendOverlay(b.bt, start, end).wrap(parent, true)
}

// keyer is implemented by all overlay data so entries compare by key.
type keyer interface {
	Key() []byte
}

// bkey implements keyer and btree.Item and may be used for queries or
// embedded in data to store.
type bkey struct {
	key []byte
}

var _ keyer = bkey{}
var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

// Less returns true iff the second argument is greater than the first.
//
// Panics if the item to compare doesn't implement keyer.
func (k bkey) Less(item btree.Item) bool {
	return bytes.Compare(k.key, item.(keyer).Key()) < 0
}

// deletedItem marks a key removed in the overlay, shadowing any backing
// store value.
type deletedItem struct {
	bkey
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{bkey{key}}
}

// setItem holds a value written in the overlay.
type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{bkey{key}, value}
}

// bkeyLess sorts just below an exact bkey match, used to turn the
// inclusive descend bounds of the btree into the exclusive bounds of the
// Iterator contract.
type bkeyLess struct {
	key []byte
}

var _ keyer = bkeyLess{}
var _ btree.Item = bkeyLess{}

func (k bkeyLess) Key() []byte {
	return k.key
}

func (k bkeyLess) Less(item btree.Item) bool {
	return bytes.Compare(k.key, item.(keyer).Key()) <= 0
}
