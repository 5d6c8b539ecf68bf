package app

import (
	"fmt"
	"regexp"

	"github.com/driphq/drip"
	"github.com/driphq/drip/errors"
)

// isPath checks for a valid message path: extension and action separated
// with a single slash.
var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Router allows us to register many handlers with different paths and
// then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	handlers map[string]drip.Handler
}

var _ drip.Registry = (*Router)(nil)
var _ drip.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]drip.Handler, 10),
	}
}

// Handle implements drip.Registry interface. Path must be a valid
// "extension/action" string, and each path can be registered only once.
func (r *Router) Handle(path string, h drip.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.handlers[path]; ok {
		panic(fmt.Sprintf("double registration of path: %q", path))
	}
	r.handlers[path] = h
}

// Handler returns the registered Handler for this path. If no path is found,
// returns a noSuchPathHandler that errors on all operations.
func (r *Router) Handler(path string) drip.Handler {
	h, ok := r.handlers[path]
	if !ok {
		return noSuchPathHandler{path: path}
	}
	return h
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx drip.Context, store drip.KVStore, tx drip.Tx) (*drip.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	h := r.Handler(msg.Path())
	return h.Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx drip.Context, store drip.KVStore, tx drip.Tx) (*drip.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	h := r.Handler(msg.Path())
	return h.Deliver(ctx, store, tx)
}

// noSuchPathHandler always returns ErrNotFound for the path it was
// created for
type noSuchPathHandler struct {
	path string
}

var _ drip.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(drip.Context, drip.KVStore, drip.Tx) (*drip.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}

func (h noSuchPathHandler) Deliver(drip.Context, drip.KVStore, drip.Tx) (*drip.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}
