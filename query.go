package drip

import (
	"github.com/driphq/drip/errors"
)

// Model groups together key and value to return
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}

// QueryHandler is anything that can process read-only queries
// against the application state
type QueryHandler interface {
	// Query interprets data according to mod (eg. exact match or prefix
	// scan) and returns all matching key-value pairs.
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRouter allows us to register many query handlers
// to different paths and then direct each query
// to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter initializes a QueryRouter with no routes
func NewQueryRouter() QueryRouter {
	return QueryRouter{
		routes: make(map[string]QueryHandler, 10),
	}
}

// RegisterAll registers a number of QueryRegisterers at once
func (r QueryRouter) RegisterAll(qr ...QueryRegisterer) {
	for _, q := range qr {
		q.RegisterQuery(r)
	}
}

// QueryRegisterer is anything that sets up routes on registration
type QueryRegisterer interface {
	RegisterQuery(QueryRouter)
}

// Register adds a new handler for the given path. Panics on duplicate
// registration, as this is a configuration error.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic("duplicate query handler for path: " + path)
	}
	r.routes[path] = h
}

// Handler returns the registered Handler or nil
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}

// Query dispatches a query to the handler registered for the given path.
func (r QueryRouter) Query(db ReadOnlyKVStore, path, mod string, data []byte) ([]Model, error) {
	h := r.Handler(path)
	if h == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no query handler for path %q", path)
	}
	return h.Query(db, mod, data)
}
