package driptest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/driphq/drip"
)

var conditionCounter int64

// NewCondition returns a mocked condition. Each call returns a different
// value, deterministic within a process.
func NewCondition() drip.Condition {
	n := atomic.AddInt64(&conditionCounter, 1)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(n))
	return drip.NewCondition("driptest", "cond", bz)
}

// NewKey returns a mocked unique key of 8 bytes.
func NewKey() []byte {
	n := atomic.AddInt64(&conditionCounter, 1)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(n))
	return bz
}

// SequenceID returns an 8 byte big endian encoded identifier, as produced
// by bucket sequences.
func SequenceID(n int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(n))
	return bz
}
