package contrib

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/gconf"
	"github.com/driphq/drip/orm"
	"github.com/driphq/drip/x"
)

// RegisterQuery registers the contributor bucket for querying.
func RegisterQuery(qr drip.QueryRouter) {
	NewBucket().RegisterQuery(qr)
}

// RegisterRoutes registers handlers for contributor message processing.
func RegisterRoutes(r drip.Registry, auth x.Authenticator) {
	bucket := NewBucket()
	r.Handle(AddContributorMsg{}.Path(), &addContributorHandler{auth: auth, bucket: bucket})
	r.Handle(UpdateAllocationMsg{}.Path(), &updateAllocationHandler{auth: auth, bucket: bucket})
	r.Handle(RemoveContributorMsg{}.Path(), &removeContributorHandler{auth: auth, bucket: bucket})
	r.Handle(UpdateEarningsMsg{}.Path(), &updateEarningsHandler{auth: auth, ctrl: NewController()})
	r.Handle(UpdateConfigurationMsg{}.Path(),
		gconf.NewUpdateConfigurationHandler("contrib", &Configuration{}, auth))
}

// authorized ensures the transaction was signed by the configuration
// owner. Every registry mutation requires this.
func authorized(ctx drip.Context, db gconf.ReadStore, auth x.Authenticator) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if !auth.HasAddress(ctx, conf.Owner) {
		return errors.Wrap(errors.ErrUnauthorized, "registry owner signature missing")
	}
	return nil
}

type addContributorHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ drip.Handler = (*addContributorHandler)(nil)

func (h *addContributorHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &drip.CheckResult{}, nil
}

func (h *addContributorHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := drip.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	contributor := &Contributor{
		Name:              msg.Name,
		Role:              msg.Role,
		MonthlyAllocation: msg.MonthlyAllocation,
		Active:            true,
		CreatedAt:         drip.AsUnixTime(now),
	}
	key := Key(msg.VaultID, msg.Wallet)
	if err := h.bucket.Save(db, orm.NewSimpleObj(key, contributor)); err != nil {
		return nil, err
	}
	res := drip.DeliverResult{Data: key}
	return res.WithTags(
		drip.Tagf("vault", "%X", msg.VaultID),
		drip.Tag("action", "contributor_added"),
	), nil
}

func (h *addContributorHandler) validate(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*AddContributorMsg, error) {
	var msg AddContributorMsg
	if err := drip.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := authorized(ctx, db, h.auth); err != nil {
		return nil, err
	}
	// A removed contributor still occupies the key. Reactivation must be
	// an explicit product decision, not an accidental overwrite.
	switch exists, err := h.bucket.Has(db, Key(msg.VaultID, msg.Wallet)); {
	case err != nil:
		return nil, err
	case exists:
		return nil, errors.Wrapf(errors.ErrDuplicate, "contributor %s in vault %x", msg.Wallet, msg.VaultID)
	}
	return &msg, nil
}

type updateAllocationHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ drip.Handler = (*updateAllocationHandler)(nil)

func (h *updateAllocationHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &drip.CheckResult{}, nil
}

func (h *updateAllocationHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	msg, contributor, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	contributor.MonthlyAllocation = msg.MonthlyAllocation
	if err := h.bucket.Save(db, orm.NewSimpleObj(Key(msg.VaultID, msg.Wallet), contributor)); err != nil {
		return nil, err
	}
	res := drip.DeliverResult{}
	return res.WithTags(
		drip.Tagf("vault", "%X", msg.VaultID),
		drip.Tag("action", "allocation_updated"),
	), nil
}

func (h *updateAllocationHandler) validate(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*UpdateAllocationMsg, *Contributor, error) {
	var msg UpdateAllocationMsg
	if err := drip.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := authorized(ctx, db, h.auth); err != nil {
		return nil, nil, err
	}
	contributor, err := h.bucket.GetContributor(db, msg.VaultID, msg.Wallet)
	if err != nil {
		return nil, nil, err
	}
	return &msg, contributor, nil
}

type removeContributorHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ drip.Handler = (*removeContributorHandler)(nil)

func (h *removeContributorHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &drip.CheckResult{}, nil
}

func (h *removeContributorHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	msg, contributor, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	contributor.Active = false
	if err := h.bucket.Save(db, orm.NewSimpleObj(Key(msg.VaultID, msg.Wallet), contributor)); err != nil {
		return nil, err
	}
	res := drip.DeliverResult{}
	return res.WithTags(
		drip.Tagf("vault", "%X", msg.VaultID),
		drip.Tag("action", "contributor_removed"),
	), nil
}

func (h *removeContributorHandler) validate(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*RemoveContributorMsg, *Contributor, error) {
	var msg RemoveContributorMsg
	if err := drip.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := authorized(ctx, db, h.auth); err != nil {
		return nil, nil, err
	}
	contributor, err := h.bucket.GetContributor(db, msg.VaultID, msg.Wallet)
	if err != nil {
		return nil, nil, err
	}
	if !contributor.Active {
		return nil, nil, errors.Wrapf(errors.ErrState, "contributor %s already removed", msg.Wallet)
	}
	return &msg, contributor, nil
}

type updateEarningsHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

var _ drip.Handler = (*updateEarningsHandler)(nil)

func (h *updateEarningsHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &drip.CheckResult{}, nil
}

func (h *updateEarningsHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.RecordEarnings(db, msg.VaultID, msg.Wallet, msg.Amount); err != nil {
		return nil, err
	}
	res := drip.DeliverResult{}
	return res.WithTags(
		drip.Tagf("vault", "%X", msg.VaultID),
		drip.Tag("action", "earnings_updated"),
		drip.Tagf("amount", "%d", msg.Amount),
	), nil
}

func (h *updateEarningsHandler) validate(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*UpdateEarningsMsg, error) {
	var msg UpdateEarningsMsg
	if err := drip.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := authorized(ctx, db, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}
