package orm

import (
	"encoding/binary"

	"github.com/driphq/drip/errors"
)

// Counter is a simple model keeping a single number. It is used as a
// minimal payload in storage tests.
type Counter struct {
	Count int64
}

var _ CloneableData = (*Counter)(nil)

// Copy produces another counter with the same count
func (c *Counter) Copy() CloneableData {
	return &Counter{Count: c.Count}
}

// Validate rejects negative counters
func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrState, "negative counter")
	}
	return nil
}

// Marshal encodes the count as 8 bytes
func (c *Counter) Marshal() ([]byte, error) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(c.Count))
	return bz, nil
}

// Unmarshal parses the count from 8 bytes
func (c *Counter) Unmarshal(bz []byte) error {
	if len(bz) != 8 {
		return errors.Wrapf(errors.ErrInput, "invalid counter data length: %d", len(bz))
	}
	c.Count = int64(binary.BigEndian.Uint64(bz))
	return nil
}

// NewCounterObj wraps a count into a storable object
func NewCounterObj(key []byte, count int64) Object {
	return NewSimpleObj(key, &Counter{Count: count})
}
