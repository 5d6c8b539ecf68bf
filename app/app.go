package app

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/x/utils"
)

// DefaultChain wraps the given handler with the standard decorator
// stack: panic recovery on the outside, delivery logging, then a
// savepoint that discards the writes of failed deliveries. Extra
// decorators (an event relay, for example) run between the logging and
// the savepoint, so they only observe deliveries that are kept.
func DefaultChain(h drip.Handler, extra ...drip.Decorator) drip.Handler {
	return ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
	).Chain(extra...).Chain(
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(h)
}
