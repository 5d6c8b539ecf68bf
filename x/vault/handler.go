package vault

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/orm"
	"github.com/driphq/drip/x"
)

const (
	createVaultCost       = 0
	depositCost           = 0
	redeemCost            = 0
	distributePerEntry    = 0
	transferOwnershipCost = 0
)

// RegisterQuery registers the vault buckets for querying.
func RegisterQuery(qr drip.QueryRouter) {
	NewVaultBucket().RegisterQuery(qr)
	NewShareBucket().RegisterQuery(qr)
}

// RegisterRoutes registers handlers for vault message processing.
func RegisterRoutes(r drip.Registry, auth x.Authenticator, ctrl *BaseController) {
	r.Handle(CreateVaultMsg{}.Path(), &createVaultHandler{auth: auth, ctrl: ctrl})
	r.Handle(DepositMsg{}.Path(), &depositHandler{auth: auth, ctrl: ctrl})
	r.Handle(RedeemMsg{}.Path(), &redeemHandler{auth: auth, ctrl: ctrl})
	r.Handle(DistributeMsg{}.Path(), &distributeHandler{auth: auth, ctrl: ctrl})
	r.Handle(BatchDistributeMsg{}.Path(), &batchDistributeHandler{auth: auth, ctrl: ctrl})
	r.Handle(TransferVaultOwnershipMsg{}.Path(), &transferOwnershipHandler{auth: auth, ctrl: ctrl})
}

type createVaultHandler struct {
	auth x.Authenticator
	ctrl *BaseController
}

var _ drip.Handler = (*createVaultHandler)(nil)

func (h *createVaultHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &drip.CheckResult{GasAllocated: createVaultCost}, nil
}

func (h *createVaultHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.create(db, &Vault{
		Asset:       msg.Asset,
		Name:        msg.Name,
		Description: msg.Description,
		Owner:       msg.Owner,
	})
	if err != nil {
		return nil, err
	}
	res := drip.DeliverResult{Data: id}
	return res.WithTags(
		drip.Tagf("vault", "%X", id),
		drip.Tag("action", "create"),
	), nil
}

func (h *createVaultHandler) validate(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*CreateVaultMsg, error) {
	var msg CreateVaultMsg
	if err := drip.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// The owner must consent to holding the capability.
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, nil
}

type depositHandler struct {
	auth x.Authenticator
	ctrl *BaseController
}

var _ drip.Handler = (*depositHandler)(nil)

func (h *depositHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &drip.CheckResult{GasAllocated: depositCost}, nil
}

func (h *depositHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	sender := x.MainSigner(ctx, h.auth).Address()
	receiver := msg.Receiver
	if receiver == nil {
		receiver = sender
	}
	if err := h.ctrl.Deposit(db, msg.VaultID, sender, receiver, msg.Amount); err != nil {
		return nil, err
	}
	res := drip.DeliverResult{}
	return res.WithTags(
		drip.Tagf("vault", "%X", msg.VaultID),
		drip.Tag("action", "deposit"),
		drip.Tagf("amount", "%d", msg.Amount),
	), nil
}

func (h *depositHandler) validate(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*DepositMsg, error) {
	var msg DepositMsg
	if err := drip.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, nil
}

type redeemHandler struct {
	auth x.Authenticator
	ctrl *BaseController
}

var _ drip.Handler = (*redeemHandler)(nil)

func (h *redeemHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &drip.CheckResult{GasAllocated: redeemCost}, nil
}

func (h *redeemHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	holder := x.MainSigner(ctx, h.auth).Address()
	receiver := msg.Receiver
	if receiver == nil {
		receiver = holder
	}
	if err := h.ctrl.Redeem(db, msg.VaultID, holder, receiver, msg.Shares); err != nil {
		return nil, err
	}
	res := drip.DeliverResult{}
	return res.WithTags(
		drip.Tagf("vault", "%X", msg.VaultID),
		drip.Tag("action", "redeem"),
		drip.Tagf("amount", "%d", msg.Shares),
	), nil
}

func (h *redeemHandler) validate(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*RedeemMsg, error) {
	var msg RedeemMsg
	if err := drip.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, nil
}

type distributeHandler struct {
	auth x.Authenticator
	ctrl *BaseController
}

var _ drip.Handler = (*distributeHandler)(nil)

func (h *distributeHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &drip.CheckResult{GasAllocated: distributePerEntry}, nil
}

func (h *distributeHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Distribute(db, msg.VaultID, msg.Recipient, msg.Amount); err != nil {
		return nil, err
	}
	res := drip.DeliverResult{}
	return res.WithTags(
		drip.Tagf("vault", "%X", msg.VaultID),
		drip.Tag("action", "distribute"),
		drip.Tagf("amount", "%d", msg.Amount),
	), nil
}

func (h *distributeHandler) validate(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*DistributeMsg, error) {
	var msg DistributeMsg
	if err := drip.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	v, err := h.ctrl.Load(db, msg.VaultID)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, v.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the vault owner can distribute")
	}
	return &msg, nil
}

type batchDistributeHandler struct {
	auth x.Authenticator
	ctrl *BaseController
}

var _ drip.Handler = (*batchDistributeHandler)(nil)

func (h *batchDistributeHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &drip.CheckResult{
		GasAllocated: distributePerEntry * int64(len(msg.Recipients)),
	}, nil
}

func (h *batchDistributeHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.BatchDistribute(db, msg.VaultID, msg.Recipients); err != nil {
		return nil, err
	}
	var total int64
	for _, p := range msg.Recipients {
		total += p.Amount
	}
	res := drip.DeliverResult{}
	return res.WithTags(
		drip.Tagf("vault", "%X", msg.VaultID),
		drip.Tag("action", "batch_distribute"),
		drip.Tagf("amount", "%d", total),
	), nil
}

func (h *batchDistributeHandler) validate(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*BatchDistributeMsg, error) {
	var msg BatchDistributeMsg
	if err := drip.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	v, err := h.ctrl.Load(db, msg.VaultID)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, v.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the vault owner can distribute")
	}
	return &msg, nil
}

type transferOwnershipHandler struct {
	auth x.Authenticator
	ctrl *BaseController
}

var _ drip.Handler = (*transferOwnershipHandler)(nil)

func (h *transferOwnershipHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &drip.CheckResult{GasAllocated: transferOwnershipCost}, nil
}

func (h *transferOwnershipHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	msg, v, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	v.Owner = msg.NewOwner
	if err := h.ctrl.vaults.Save(db, orm.NewSimpleObj(msg.VaultID, v)); err != nil {
		return nil, err
	}
	res := drip.DeliverResult{}
	return res.WithTags(
		drip.Tagf("vault", "%X", msg.VaultID),
		drip.Tag("action", "transfer_ownership"),
	), nil
}

func (h *transferOwnershipHandler) validate(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*TransferVaultOwnershipMsg, *Vault, error) {
	var msg TransferVaultOwnershipMsg
	if err := drip.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	v, err := h.ctrl.Load(db, msg.VaultID)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, v.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the current owner can transfer ownership")
	}
	return &msg, v, nil
}
