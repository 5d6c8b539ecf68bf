package drip

import (
	"fmt"

	common "github.com/tendermint/tendermint/libs/common"
)

// CheckResult captures any non-error response from the pre-execution
// validation of a transaction.
type CheckResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
	// GasAllocated is the maximum units of work we allow this tx to perform
	GasAllocated int64
}

// NewCheck sets the gas used and the response data but no more info
// these are the most common info needed to be set by the Handler
func NewCheck(gasAllocated int64, log string) *CheckResult {
	return &CheckResult{
		GasAllocated: gasAllocated,
		Log:          log,
	}
}

// DeliverResult captures any non-error response from the execution
// of a transaction.
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
	// Tags are key-value pairs emitted for indexing the performed
	// state transition
	Tags []common.KVPair
	// GasUsed is the units of work performed
	GasUsed int64
}

// WithTags appends the tags and returns the result for chaining.
func (d *DeliverResult) WithTags(tags ...common.KVPair) *DeliverResult {
	d.Tags = append(d.Tags, tags...)
	return d
}

// Tag is a helper to build a single indexing tag.
func Tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}

// Tagf is a helper to build a single indexing tag with a formatted value.
func Tagf(key, format string, args ...interface{}) common.KVPair {
	return Tag(key, fmt.Sprintf(format, args...))
}
