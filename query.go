package wagachain

import "fmt"

const (
	// KeyQueryMod asks for the single value stored under the key.
	KeyQueryMod = ""
	// PrefixQueryMod asks for all values stored under keys with the
	// given prefix.
	PrefixQueryMod = "prefix"
)

// Model is one key-value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair.
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}

// QueryHandler processes one ABCI query path.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds handlers to the router. Every queryable extension
// exports one.
type QueryRegister func(QueryRouter)

// QueryRouter directs each query path to its registered handler. Minimal
// interface modeled after net/http.ServeMux.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{
		routes: make(map[string]QueryHandler, 10),
	}
}

// RegisterAll runs a number of QueryRegister functions against this router.
func (r QueryRouter) RegisterAll(qr ...QueryRegister) {
	for _, q := range qr {
		q(r)
	}
}

// Register adds a handler for the given path, panicking when the path is
// taken. Registration happens on startup, there is nothing to recover.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering query route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the handler for this path, nil when not registered.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
