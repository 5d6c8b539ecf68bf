package orm

import (
	"bytes"
	"testing"

	"github.com/driphq/drip/store"
)

func TestSequenceMonotonic(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("vault", SeqID)

	var prev []byte
	for i := int64(1); i < 10; i++ {
		val, err := s.NextInt(db)
		if err != nil {
			t.Fatalf("cannot increment: %+v", err)
		}
		if val != i {
			t.Fatalf("unexpected value: %d", val)
		}

		_, raw, err := s.Latest(db)
		if err != nil {
			t.Fatalf("cannot read latest: %+v", err)
		}
		if prev != nil && bytes.Compare(raw, prev) <= 0 {
			t.Fatal("encoded values must be strictly increasing")
		}
		prev = raw
	}
}

func TestSequencesAreIndependent(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("vault", SeqID)
	b := NewSequence("payout", SeqID)

	if _, err := a.NextVal(db); err != nil {
		t.Fatalf("cannot increment: %+v", err)
	}
	if _, err := a.NextVal(db); err != nil {
		t.Fatalf("cannot increment: %+v", err)
	}
	val, err := b.NextInt(db)
	if err != nil {
		t.Fatalf("cannot increment: %+v", err)
	}
	if val != 1 {
		t.Fatalf("sequences must not share state: %d", val)
	}
}

func TestSequenceRoundtrip(t *testing.T) {
	for _, val := range []int64{0, 1, 255, 256, 1 << 40} {
		if got := DecodeSequence(EncodeSequence(val)); got != val {
			t.Fatalf("roundtrip failed for %d: %d", val, got)
		}
	}
	if got := DecodeSequence(nil); got != 0 {
		t.Fatalf("nil must decode to zero: %d", got)
	}
}
