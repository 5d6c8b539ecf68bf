package store

import (
	"bytes"
	"testing"
)

func TestMemStoreSetGetDelete(t *testing.T) {
	db := MemStore()

	k, v := []byte("vault:1"), []byte("data")
	if err := db.Set(k, v); err != nil {
		t.Fatalf("cannot set: %+v", err)
	}
	got, err := db.Get(k)
	if err != nil {
		t.Fatalf("cannot get: %+v", err)
	}
	if !bytes.Equal(got, v) {
		t.Fatalf("unexpected value: %q", got)
	}
	if has, _ := db.Has(k); !has {
		t.Fatal("expected key to exist")
	}
	if err := db.Delete(k); err != nil {
		t.Fatalf("cannot delete: %+v", err)
	}
	if has, _ := db.Has(k); has {
		t.Fatal("expected key to be gone")
	}
}

func TestCacheWrapWriteAndDiscard(t *testing.T) {
	db := MemStore()
	if err := db.Set([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("cannot set: %+v", err)
	}

	// Discarded changes must never reach the parent.
	cache := db.CacheWrap()
	if err := cache.Set([]byte("b"), []byte("2")); err != nil {
		t.Fatalf("cannot set: %+v", err)
	}
	if err := cache.Delete([]byte("a")); err != nil {
		t.Fatalf("cannot delete: %+v", err)
	}
	cache.Discard()

	if has, _ := db.Has([]byte("b")); has {
		t.Fatal("discarded write leaked to the parent")
	}
	if has, _ := db.Has([]byte("a")); !has {
		t.Fatal("discarded delete leaked to the parent")
	}

	// Written changes must all reach the parent.
	cache = db.CacheWrap()
	if err := cache.Set([]byte("b"), []byte("2")); err != nil {
		t.Fatalf("cannot set: %+v", err)
	}
	if err := cache.Delete([]byte("a")); err != nil {
		t.Fatalf("cannot delete: %+v", err)
	}
	if err := cache.Write(); err != nil {
		t.Fatalf("cannot write: %+v", err)
	}

	if has, _ := db.Has([]byte("b")); !has {
		t.Fatal("write lost")
	}
	if has, _ := db.Has([]byte("a")); has {
		t.Fatal("delete lost")
	}
}

func TestCacheWrapReadsThrough(t *testing.T) {
	db := MemStore()
	if err := db.Set([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("cannot set: %+v", err)
	}

	cache := db.CacheWrap()
	got, err := cache.Get([]byte("a"))
	if err != nil {
		t.Fatalf("cannot get: %+v", err)
	}
	if !bytes.Equal(got, []byte("1")) {
		t.Fatalf("unexpected value: %q", got)
	}

	// A delete in the cache must shadow the parent value.
	if err := cache.Delete([]byte("a")); err != nil {
		t.Fatalf("cannot delete: %+v", err)
	}
	if got, _ := cache.Get([]byte("a")); got != nil {
		t.Fatalf("deleted value still visible: %q", got)
	}
}

func TestIteratorMergesCacheAndParent(t *testing.T) {
	db := MemStore()
	for _, k := range []string{"a", "c", "e"} {
		if err := db.Set([]byte(k), []byte("parent")); err != nil {
			t.Fatalf("cannot set: %+v", err)
		}
	}

	cache := db.CacheWrap()
	if err := cache.Set([]byte("b"), []byte("cache")); err != nil {
		t.Fatalf("cannot set: %+v", err)
	}
	if err := cache.Set([]byte("c"), []byte("cache")); err != nil {
		t.Fatalf("cannot set: %+v", err)
	}
	if err := cache.Delete([]byte("e")); err != nil {
		t.Fatalf("cannot delete: %+v", err)
	}

	iter, err := cache.Iterator(nil, nil)
	if err != nil {
		t.Fatalf("cannot iterate: %+v", err)
	}
	defer iter.Close()

	var keys, values []string
	for iter.Valid() {
		keys = append(keys, string(iter.Key()))
		values = append(values, string(iter.Value()))
		if err := iter.Next(); err != nil {
			t.Fatalf("cannot advance: %+v", err)
		}
	}

	wantKeys := []string{"a", "b", "c"}
	wantValues := []string{"parent", "cache", "cache"}
	if len(keys) != len(wantKeys) {
		t.Fatalf("unexpected keys: %v", keys)
	}
	for i := range wantKeys {
		if keys[i] != wantKeys[i] || values[i] != wantValues[i] {
			t.Fatalf("unexpected entry %d: %s=%s", i, keys[i], values[i])
		}
	}
}

func TestReverseIterator(t *testing.T) {
	db := MemStore()
	for _, k := range []string{"a", "b", "c"} {
		if err := db.Set([]byte(k), []byte{1}); err != nil {
			t.Fatalf("cannot set: %+v", err)
		}
	}

	iter, err := db.ReverseIterator(nil, nil)
	if err != nil {
		t.Fatalf("cannot iterate: %+v", err)
	}
	defer iter.Close()

	var keys []string
	for iter.Valid() {
		keys = append(keys, string(iter.Key()))
		if err := iter.Next(); err != nil {
			t.Fatalf("cannot advance: %+v", err)
		}
	}
	want := []string{"c", "b", "a"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("unexpected order: %v", keys)
		}
	}
}

func TestReverseIteratorMergesCacheAndParent(t *testing.T) {
	db := MemStore()
	for _, k := range []string{"a", "c"} {
		if err := db.Set([]byte(k), []byte("parent")); err != nil {
			t.Fatalf("cannot set: %+v", err)
		}
	}

	cache := db.CacheWrap()
	if err := cache.Set([]byte("b"), []byte("cache")); err != nil {
		t.Fatalf("cannot set: %+v", err)
	}
	if err := cache.Set([]byte("d"), []byte("cache")); err != nil {
		t.Fatalf("cannot set: %+v", err)
	}
	if err := cache.Delete([]byte("c")); err != nil {
		t.Fatalf("cannot delete: %+v", err)
	}

	iter, err := cache.ReverseIterator(nil, nil)
	if err != nil {
		t.Fatalf("cannot iterate: %+v", err)
	}
	defer iter.Close()

	var keys []string
	for iter.Valid() {
		keys = append(keys, string(iter.Key()))
		if err := iter.Next(); err != nil {
			t.Fatalf("cannot advance: %+v", err)
		}
	}
	want := []string{"d", "b", "a"}
	if len(keys) != len(want) {
		t.Fatalf("unexpected keys: %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("unexpected order: %v", keys)
		}
	}
}

func TestIteratorRange(t *testing.T) {
	db := MemStore()
	for _, k := range []string{"a", "b", "c", "d"} {
		if err := db.Set([]byte(k), []byte{1}); err != nil {
			t.Fatalf("cannot set: %+v", err)
		}
	}

	// End is exclusive.
	iter, err := db.Iterator([]byte("b"), []byte("d"))
	if err != nil {
		t.Fatalf("cannot iterate: %+v", err)
	}
	defer iter.Close()

	var keys []string
	for iter.Valid() {
		keys = append(keys, string(iter.Key()))
		if err := iter.Next(); err != nil {
			t.Fatalf("cannot advance: %+v", err)
		}
	}
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "c" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}
