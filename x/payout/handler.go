package payout

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/gconf"
	"github.com/driphq/drip/orm"
	"github.com/driphq/drip/x"
	"github.com/driphq/drip/x/contrib"
	"github.com/driphq/drip/x/vault"
)

// VaultController is the subset of the vault extension this package needs.
type VaultController interface {
	Load(db drip.ReadOnlyKVStore, vaultID []byte) (*vault.Vault, error)
	TotalAssets(db drip.ReadOnlyKVStore, vaultID []byte) (int64, error)
	BatchDistribute(db drip.KVStore, vaultID []byte, payments []vault.Payment) error
}

// Registry is the subset of the contributor extension this package needs.
type Registry interface {
	ActiveContributors(db drip.ReadOnlyKVStore, vaultID []byte) ([]contrib.Entry, error)
	RecordEarnings(db drip.KVStore, vaultID []byte, wallet drip.Address, amount int64) error
}

// RegisterQuery registers the schedule bucket for querying.
func RegisterQuery(qr drip.QueryRouter) {
	NewScheduleBucket().RegisterQuery(qr)
}

// RegisterRoutes registers handlers for payout message processing.
func RegisterRoutes(r drip.Registry, auth x.Authenticator, vaults VaultController, registry Registry, source WeightSource) {
	bucket := NewScheduleBucket()
	r.Handle(ScheduleDistributionMsg{}.Path(), &scheduleHandler{
		auth:   auth,
		bucket: bucket,
		vaults: vaults,
	})
	r.Handle(ExecuteDistributionMsg{}.Path(), &executeHandler{
		auth:       auth,
		bucket:     bucket,
		vaults:     vaults,
		registry:   registry,
		strategies: strategies(source),
	})
	r.Handle(SetReservedFundsMsg{}.Path(), &setReservedFundsHandler{auth: auth})
	r.Handle(UpdateConfigurationMsg{}.Path(),
		gconf.NewUpdateConfigurationHandler("payout", &Configuration{}, auth))
}

type setReservedFundsHandler struct {
	auth x.Authenticator
}

var _ drip.Handler = (*setReservedFundsHandler)(nil)

func (h *setReservedFundsHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &drip.CheckResult{}, nil
}

func (h *setReservedFundsHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf.ReservedFundsBps = msg.ReservedFundsBps
	if err := gconf.Save(db, "payout", conf); err != nil {
		return nil, errors.Wrap(err, "save configuration")
	}
	res := drip.DeliverResult{}
	return res.WithTags(
		drip.Tag("action", "reserved_funds_set"),
		drip.Tagf("amount", "%d", msg.ReservedFundsBps),
	), nil
}

func (h *setReservedFundsHandler) validate(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*SetReservedFundsMsg, *Configuration, error) {
	var msg SetReservedFundsMsg
	if err := drip.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "scheduler owner signature missing")
	}
	return &msg, conf, nil
}

type scheduleHandler struct {
	auth   x.Authenticator
	bucket *ScheduleBucket
	vaults VaultController
}

var _ drip.Handler = (*scheduleHandler)(nil)

func (h *scheduleHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &drip.CheckResult{}, nil
}

func (h *scheduleHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	obj, err := h.bucket.Create(db, &Schedule{
		VaultID:     msg.VaultID,
		ScheduledAt: msg.ScheduledAt,
		Method:      msg.Method,
	})
	if err != nil {
		return nil, err
	}
	res := drip.DeliverResult{Data: obj.Key()}
	return res.WithTags(
		drip.Tagf("vault", "%X", msg.VaultID),
		drip.Tag("action", "payout_scheduled"),
	), nil
}

func (h *scheduleHandler) validate(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*ScheduleDistributionMsg, error) {
	var msg ScheduleDistributionMsg
	if err := drip.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "scheduler owner signature missing")
	}
	if _, err := h.vaults.Load(db, msg.VaultID); err != nil {
		return nil, err
	}
	now, err := drip.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	if !msg.ScheduledAt.Time().After(now) {
		return nil, errors.Field("ScheduledAt", errors.ErrInput, "must be in the future")
	}
	return &msg, nil
}

type executeHandler struct {
	auth       x.Authenticator
	bucket     *ScheduleBucket
	vaults     VaultController
	registry   Registry
	strategies map[string]Strategy
}

var _ drip.Handler = (*executeHandler)(nil)

func (h *executeHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &drip.CheckResult{}, nil
}

func (h *executeHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	msg, schedule, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}

	v, err := h.vaults.Load(db, schedule.VaultID)
	if err != nil {
		return nil, err
	}
	assets, err := h.vaults.TotalAssets(db, schedule.VaultID)
	if err != nil {
		return nil, err
	}
	// Funds covering the issued shares belong to the depositors. Only
	// the surplus above them is distributable yield.
	distributable := assets - v.TotalShares
	if distributable <= 0 {
		return nil, errors.Wrap(errors.ErrAmount, "vault has no distributable assets")
	}
	scaled, err := mul64(distributable, maxBps-conf.ReservedFundsBps)
	if err != nil {
		return nil, errors.Wrap(err, "reserve")
	}
	payable := scaled / maxBps
	if payable <= 0 {
		return nil, errors.Wrap(errors.ErrAmount, "nothing left after reserve")
	}

	team, err := h.registry.ActiveContributors(db, schedule.VaultID)
	if err != nil {
		return nil, err
	}
	if len(team) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "no active contributors")
	}

	strategy, ok := h.strategies[schedule.Method]
	if !ok {
		return nil, errors.Wrapf(errors.ErrState, "unknown method %q", schedule.Method)
	}
	payments, err := strategy.Split(db, schedule.VaultID, payable, team)
	if err != nil {
		return nil, errors.Wrap(err, "split")
	}
	if len(payments) == 0 {
		return nil, errors.Wrap(errors.ErrAmount, "amounts round down to nothing")
	}

	// Without the owner capability this package must not move pool
	// funds.
	if !v.Owner.Equals(ComponentAccount()) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "vault ownership was not handed over")
	}
	if err := h.vaults.BatchDistribute(db, schedule.VaultID, payments); err != nil {
		return nil, errors.Wrap(err, "distribute")
	}

	var total int64
	for _, p := range payments {
		if err := h.registry.RecordEarnings(db, schedule.VaultID, p.Recipient, p.Amount); err != nil {
			return nil, errors.Wrapf(err, "earnings of %s", p.Recipient)
		}
		total += p.Amount
	}

	now, err := drip.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	schedule.Executed = true
	schedule.ExecutedAt = drip.AsUnixTime(now)
	schedule.Payments = payments
	schedule.TotalAmount = total
	if err := h.bucket.Save(db, orm.NewSimpleObj(msg.ScheduleID, schedule)); err != nil {
		return nil, err
	}

	res := drip.DeliverResult{}
	return res.WithTags(
		drip.Tagf("vault", "%X", schedule.VaultID),
		drip.Tag("action", "payout_executed"),
		drip.Tagf("amount", "%d", total),
	), nil
}

func (h *executeHandler) validate(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*ExecuteDistributionMsg, *Schedule, error) {
	var msg ExecuteDistributionMsg
	if err := drip.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "scheduler owner signature missing")
	}
	schedule, err := h.bucket.GetSchedule(db, msg.ScheduleID)
	if err != nil {
		return nil, nil, err
	}
	if schedule.Executed {
		return nil, nil, errors.Wrapf(errors.ErrState, "schedule %x already executed", msg.ScheduleID)
	}
	now, err := drip.BlockTime(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "block time")
	}
	if schedule.ScheduledAt.Time().After(now) {
		return nil, nil, errors.Wrapf(errors.ErrState, "schedule %x not due before %s", msg.ScheduleID, schedule.ScheduledAt)
	}
	return &msg, schedule, nil
}
