package utils

import (
	"time"

	"github.com/driphq/drip"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging is a decorator that reports the outcome and timing of every
// request to the context logger.
type Logging struct{}

var _ drip.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check reports failures as info, successes as debug. Check runs are
// speculative, a rejection here is routine.
func (l Logging) Check(ctx drip.Context, store drip.KVStore, tx drip.Tx, next drip.Checker) (*drip.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	logger := requestLogger(ctx, tx, start)
	if err != nil {
		logger.With("err", err).Info("check failed")
	} else {
		// An empty result message still carries the path and timing.
		logger.Debug(res.Log)
	}
	return res, err
}

// Deliver reports failures as error, successes as info.
func (l Logging) Deliver(ctx drip.Context, store drip.KVStore, tx drip.Tx, next drip.Deliverer) (*drip.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	logger := requestLogger(ctx, tx, start)
	if err != nil {
		logger.With("err", err).Error("delivery failed")
	} else {
		logger.Info(res.Log)
	}
	return res, err
}

func requestLogger(ctx drip.Context, tx drip.Tx, start time.Time) log.Logger {
	return drip.GetLogger(ctx).With(
		"path", drip.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)
}
