package relay

import (
	"github.com/driphq/drip"
)

// Decorator publishes an event envelope after every successful delivery.
// Check passes through untouched. Publish failures only produce a log
// entry, the delivery result is never affected.
type Decorator struct {
	publisher Publisher
}

var _ drip.Decorator = Decorator{}

// NewDecorator hooks the given publisher into the decorator chain.
func NewDecorator(publisher Publisher) Decorator {
	return Decorator{publisher: publisher}
}

func (d Decorator) Check(ctx drip.Context, store drip.KVStore, tx drip.Tx, next drip.Checker) (*drip.CheckResult, error) {
	return next.Check(ctx, store, tx)
}

func (d Decorator) Deliver(ctx drip.Context, store drip.KVStore, tx drip.Tx, next drip.Deliverer) (*drip.DeliverResult, error) {
	res, err := next.Deliver(ctx, store, tx)
	if err != nil {
		return res, err
	}

	ev := NewEvent(ctx, tx, res)
	raw, merr := ev.Marshal()
	if merr == nil {
		merr = d.publisher.Publish(ctx, ev.Key(), raw)
	}
	if merr != nil {
		drip.GetLogger(ctx).With("path", ev.Path).Error("cannot publish event", "err", merr)
	}
	return res, nil
}
