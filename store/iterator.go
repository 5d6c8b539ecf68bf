package store

import (
	"bytes"

	"github.com/google/btree"
)

// overlayIter walks a snapshot of the overlay entries within the iterated
// range, collected when the iterator is created. Overlay writes performed
// while iterating are not observed.
type overlayIter struct {
	items []btree.Item
	pos   int
}

func ascendOverlay(bt *btree.BTree, start, end []byte) *overlayIter {
	it := &overlayIter{}
	collect := func(item btree.Item) bool {
		it.items = append(it.items, item)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return it
}

func descendOverlay(bt *btree.BTree, start, end []byte) *overlayIter {
	it := &overlayIter{}
	collect := func(item btree.Item) bool {
		it.items = append(it.items, item)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Descend(collect)
	case start == nil:
		bt.DescendLessOrEqual(bkeyLess{end}, collect)
	case end == nil:
		bt.DescendGreaterThan(bkeyLess{start}, collect)
	default:
		bt.DescendRange(bkeyLess{end}, bkeyLess{start}, collect)
	}
	return it
}

func (o *overlayIter) valid() bool {
	return o.pos < len(o.items)
}

// get requires a valid iterator.
func (o *overlayIter) get() keyer {
	return o.items[o.pos].(keyer)
}

func (o *overlayIter) next() {
	o.pos++
}

// wrap merges the overlay snapshot with the backing store iterator. The
// initial cursor position must not point at a deleted entry, so the
// leading deletes are skipped right away.
func (o *overlayIter) wrap(parent Iterator, reverse bool) (Iterator, error) {
	iter := &mergeIter{overlay: o, parent: parent, reverse: reverse}
	if err := iter.skipDeleted(); err != nil {
		iter.Close()
		return nil, err
	}
	return iter, nil
}

// mergeIter combines an overlay snapshot with the backing store iterator.
// Overlay entries shadow the backing store: a set wins over the stored
// value, a delete hides it.
type mergeIter struct {
	overlay *overlayIter
	parent  Iterator
	reverse bool
}

var _ Iterator = (*mergeIter)(nil)

// pick names the side the current entry comes from.
type pick int

const (
	fromOverlay pick = iota
	fromParent
	fromBoth
	exhausted
)

// pick selects the side holding the next key in iteration order. When both
// sides hold the same key the overlay shadows the parent.
func (i *mergeIter) pick() pick {
	parentValid := i.parent != nil && i.parent.Valid()
	switch {
	case !parentValid && !i.overlay.valid():
		return exhausted
	case !parentValid:
		return fromOverlay
	case !i.overlay.valid():
		return fromParent
	}

	cmp := bytes.Compare(i.parent.Key(), i.overlay.get().Key())
	if i.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return fromParent
	case cmp > 0:
		return fromOverlay
	default:
		return fromBoth
	}
}

// Valid implements Iterator and returns true iff it can be read.
func (i *mergeIter) Valid() bool {
	return i.pick() != exhausted
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (i *mergeIter) Next() error {
	if err := i.advance(); err != nil {
		return err
	}
	return i.skipDeleted()
}

// advance moves past the current entry on whichever sides hold it.
func (i *mergeIter) advance() error {
	switch i.pick() {
	case fromOverlay:
		i.overlay.next()
	case fromBoth:
		i.overlay.next()
		return i.parent.Next()
	case fromParent:
		return i.parent.Next()
	default:
		panic("iterator advanced past the end")
	}
	return nil
}

// skipDeleted moves past every entry the overlay marked as deleted,
// together with the shadowed backing entries.
func (i *mergeIter) skipDeleted() error {
	for {
		switch i.pick() {
		case fromOverlay, fromBoth:
			if _, deleted := i.overlay.get().(deletedItem); !deleted {
				return nil
			}
			if err := i.advance(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// Key returns the key of the cursor.
func (i *mergeIter) Key() []byte {
	switch i.pick() {
	case fromOverlay, fromBoth:
		return i.overlay.get().Key()
	case fromParent:
		return i.parent.Key()
	default:
		panic("iterator read past the end")
	}
}

// Value returns the value of the cursor.
func (i *mergeIter) Value() []byte {
	switch i.pick() {
	case fromOverlay, fromBoth:
		return i.overlay.get().(setItem).value
	case fromParent:
		return i.parent.Value()
	default:
		panic("iterator read past the end")
	}
}

// Close releases the Iterator.
func (i *mergeIter) Close() {
	if i.parent != nil {
		i.parent.Close()
	}
	i.overlay.pos = len(i.overlay.items)
}
