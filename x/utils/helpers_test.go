package utils

import (
	"github.com/wagatoken/wagachain"
)

// writeHandler writes the given key/value pair to the KVStore
// and returns the configured error (nil for success).
type writeHandler struct {
	key   []byte
	value []byte
	err   error
}

var _ wagachain.Handler = writeHandler{}

func (h writeHandler) Check(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &wagachain.CheckResult{}, h.err
}

func (h writeHandler) Deliver(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &wagachain.DeliverResult{}, h.err
}

// deleteHandler deletes the given key from the KVStore.
type deleteHandler struct {
	key []byte
}

var _ wagachain.Handler = deleteHandler{}

func (h deleteHandler) Check(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	return &wagachain.CheckResult{}, db.Delete(h.key)
}

func (h deleteHandler) Deliver(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	return &wagachain.DeliverResult{}, db.Delete(h.key)
}

// panicHandler always panics with the given value.
type panicHandler struct {
	panicWith interface{}
}

var _ wagachain.Handler = panicHandler{}

func (h panicHandler) Check(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	panic(h.panicWith)
}

func (h panicHandler) Deliver(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	panic(h.panicWith)
}

// writeDecorator writes the given key/value pair to the KVStore, either
// before or after calling down the stack. Returns (res, err) from the
// child handler untouched.
type writeDecorator struct {
	key   []byte
	value []byte
	after bool
}

var _ wagachain.Decorator = writeDecorator{}

func (d writeDecorator) Check(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx, next wagachain.Checker) (*wagachain.CheckResult, error) {
	if !d.after {
		if err := db.Set(d.key, d.value); err != nil {
			return nil, err
		}
	}
	res, err := next.Check(ctx, db, tx)
	if d.after {
		if err := db.Set(d.key, d.value); err != nil {
			return nil, err
		}
	}
	return res, err
}

func (d writeDecorator) Deliver(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx, next wagachain.Deliverer) (*wagachain.DeliverResult, error) {
	if !d.after {
		if err := db.Set(d.key, d.value); err != nil {
			return nil, err
		}
	}
	res, err := next.Deliver(ctx, db, tx)
	if d.after {
		if err := db.Set(d.key, d.value); err != nil {
			return nil, err
		}
	}
	return res, err
}
