package driptest

import (
	"context"

	"github.com/driphq/drip"
)

// Auth is a mock implementing x.Authenticator interface.
// This structure authenticates any of the conditions attached to it.
type Auth struct {
	// Signer is a condition that authenticated the request. This is a
	// convenience attribute when a single signer is used.
	Signer drip.Condition
	// Signers are all conditions that authenticated the request.
	Signers []drip.Condition
}

func (a *Auth) GetConditions(drip.Context) []drip.Condition {
	conds := a.Signers
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return conds
}

func (a *Auth) HasAddress(ctx drip.Context, addr drip.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is an x.Authenticator implementation that reads conditions from
// the context. It is the "act as" seam for tests: attach any conditions to
// the context to impersonate their owner for that call.
type CtxAuth struct {
	// Key under which the conditions are stored in the context.
	Key string
}

// SetConditions returns a context with given conditions attached.
func (a *CtxAuth) SetConditions(ctx drip.Context, conds ...drip.Condition) drip.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx drip.Context) []drip.Condition {
	conds, ok := ctx.Value(ctxAuthKey(a.Key)).([]drip.Condition)
	if !ok {
		return nil
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx drip.Context, addr drip.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

type ctxAuthKey string
