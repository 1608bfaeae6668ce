package app

import (
	"fmt"
	"regexp"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
)

// isPath defines what message paths can be registered. Paths follow the
// "<extension>/<action>" convention, for example "cash/send".
var isPath = regexp.MustCompile(`^[a-z0-9_/]+$`).MatchString

// Router maps message paths to their handlers. It implements both the
// Registry interface that extensions register against and the Handler
// interface that the decorator stack terminates in.
type Router struct {
	routes map[string]wagachain.Handler
}

var _ wagachain.Registry = (*Router)(nil)
var _ wagachain.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]wagachain.Handler),
	}
}

// Handle assigns the handler to the path of the given message. Each message
// type can be registered only once; registration happens on startup, so a
// conflict or a malformed path is a programmer error and panics.
func (r *Router) Handle(m wagachain.Msg, h wagachain.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid message path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering message route: %q", path))
	}
	r.routes[path] = h
}

// handler returns the registered handler for this message, or a handler
// that fails every call with a not found error.
func (r *Router) handler(m wagachain.Msg) wagachain.Handler {
	if h, ok := r.routes[m.Path()]; ok {
		return h
	}
	return notFoundHandler(m.Path())
}

// Check dispatches the transaction to the handler registered for its
// message path.
func (r *Router) Check(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire message")
	}
	return r.handler(msg).Check(ctx, store, tx)
}

// Deliver dispatches the transaction to the handler registered for its
// message path.
func (r *Router) Deliver(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire message")
	}
	return r.handler(msg).Deliver(ctx, store, tx)
}

type notFoundHandler string

func (path notFoundHandler) Check(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path notFoundHandler) Deliver(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
