package qvote

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/coin"
	"github.com/driphq/drip/errors"
	"github.com/driphq/drip/gconf"
	"github.com/driphq/drip/orm"
	"github.com/driphq/drip/x"
)

// CashController is the subset of the cash extension this package needs
// to collect vote payments.
type CashController interface {
	MoveCoins(drip.KVStore, drip.Address, drip.Address, coin.Coin) error
}

// RegisterQuery registers the voting buckets for querying.
func RegisterQuery(qr drip.QueryRouter) {
	NewVotingBucket().RegisterQuery(qr)
	NewVoteBucket().RegisterQuery(qr)
}

// RegisterRoutes registers handlers for voting message processing.
func RegisterRoutes(r drip.Registry, auth x.Authenticator, cash CashController) {
	ctrl := NewController()
	r.Handle(CreateVotingMsg{}.Path(), &createVotingHandler{auth: auth, ctrl: ctrl})
	r.Handle(VoteMsg{}.Path(), &voteHandler{auth: auth, ctrl: ctrl, cash: cash})
	r.Handle(EndVotingMsg{}.Path(), &endVotingHandler{auth: auth, ctrl: ctrl})
	r.Handle(UpdateConfigurationMsg{}.Path(),
		gconf.NewUpdateConfigurationHandler("qvote", &Configuration{}, auth))
}

type createVotingHandler struct {
	auth x.Authenticator
	ctrl *BaseController
}

var _ drip.Handler = (*createVotingHandler)(nil)

func (h *createVotingHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &drip.CheckResult{}, nil
}

func (h *createVotingHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := drip.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	start := drip.AsUnixTime(now)
	obj, err := h.ctrl.votings.Create(db, &Voting{
		VaultID:     msg.VaultID,
		Nominee:     msg.Nominee,
		NomineeName: msg.NomineeName,
		Role:        msg.Role,
		Description: msg.Description,
		StartTime:   start,
		EndTime:     start.Add(msg.Duration.Duration()),
		Active:      true,
	})
	if err != nil {
		return nil, err
	}
	res := drip.DeliverResult{Data: obj.Key()}
	return res.WithTags(
		drip.Tagf("voting", "%X", obj.Key()),
		drip.Tag("action", "voting_created"),
	), nil
}

func (h *createVotingHandler) validate(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*CreateVotingMsg, error) {
	var msg CreateVotingMsg
	if err := drip.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "voting owner signature missing")
	}
	return &msg, nil
}

type voteHandler struct {
	auth x.Authenticator
	ctrl *BaseController
	cash CashController
}

var _ drip.Handler = (*voteHandler)(nil)

func (h *voteHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &drip.CheckResult{}, nil
}

func (h *voteHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	msg, voting, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	voter := x.MainSigner(ctx, h.auth).Address()

	prev, err := h.ctrl.votes.GetVote(db, msg.VotingID, voter)
	if err != nil {
		return nil, err
	}

	cost := VoteCost(msg.Count)
	var paid int64
	if prev != nil {
		paid = prev.Paid
	}
	if due := cost - paid; due > 0 {
		payment := coin.NewCoin(due, conf.Ticker)
		if err := h.cash.MoveCoins(db, voter, VotingAccount(msg.VotingID), payment); err != nil {
			return nil, errors.Wrap(err, "vote payment")
		}
	}

	// Vacate the previous position before counting the new one.
	if prev != nil {
		if prev.InFavor {
			voting.VotesFor -= prev.Count
		} else {
			voting.VotesAgainst -= prev.Count
		}
	}
	if msg.InFavor {
		voting.VotesFor += msg.Count
	} else {
		voting.VotesAgainst += msg.Count
	}

	vote := &Vote{Count: msg.Count, InFavor: msg.InFavor, Paid: cost}
	if err := h.ctrl.votes.SetVote(db, msg.VotingID, voter, vote); err != nil {
		return nil, err
	}
	if err := h.ctrl.votings.Save(db, orm.NewSimpleObj(msg.VotingID, voting)); err != nil {
		return nil, err
	}
	res := drip.DeliverResult{}
	return res.WithTags(
		drip.Tagf("voting", "%X", msg.VotingID),
		drip.Tag("action", "vote_cast"),
		drip.Tagf("amount", "%d", msg.Count),
	), nil
}

func (h *voteHandler) validate(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*VoteMsg, *Voting, error) {
	var msg VoteMsg
	if err := drip.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	voting, err := h.ctrl.votings.GetVoting(db, msg.VotingID)
	if err != nil {
		return nil, nil, err
	}
	if !voting.Active {
		return nil, nil, errors.Wrapf(errors.ErrState, "voting %x ended", msg.VotingID)
	}
	now, err := drip.BlockTime(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "block time")
	}
	if !voting.EndTime.Time().After(now) {
		return nil, nil, errors.Wrapf(errors.ErrExpired, "voting %x closed at %s", msg.VotingID, voting.EndTime)
	}
	return &msg, voting, nil
}

type endVotingHandler struct {
	auth x.Authenticator
	ctrl *BaseController
}

var _ drip.Handler = (*endVotingHandler)(nil)

func (h *endVotingHandler) Check(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &drip.CheckResult{}, nil
}

func (h *endVotingHandler) Deliver(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	msg, voting, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	voting.Active = false
	voting.Approved = voting.VotesFor > voting.VotesAgainst
	if err := h.ctrl.votings.Save(db, orm.NewSimpleObj(msg.VotingID, voting)); err != nil {
		return nil, err
	}
	res := drip.DeliverResult{}
	return res.WithTags(
		drip.Tagf("voting", "%X", msg.VotingID),
		drip.Tag("action", "voting_ended"),
		drip.Tagf("approved", "%v", voting.Approved),
	), nil
}

func (h *endVotingHandler) validate(ctx drip.Context, db drip.KVStore, tx drip.Tx) (*EndVotingMsg, *Voting, error) {
	var msg EndVotingMsg
	if err := drip.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "voting owner signature missing")
	}
	voting, err := h.ctrl.votings.GetVoting(db, msg.VotingID)
	if err != nil {
		return nil, nil, err
	}
	if !voting.Active {
		return nil, nil, errors.Wrapf(errors.ErrState, "voting %x already ended", msg.VotingID)
	}
	now, err := drip.BlockTime(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "block time")
	}
	if voting.EndTime.Time().After(now) {
		return nil, nil, errors.Wrapf(errors.ErrState, "voting %x still running", msg.VotingID)
	}
	return &msg, voting, nil
}
