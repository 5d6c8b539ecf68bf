package relay

import (
	"context"
)

// Publisher delivers event envelopes to an external feed.
type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
	Close() error
}
