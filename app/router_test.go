package app

import (
	"context"
	"testing"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/store"
	"github.com/wagatoken/wagachain/wagatest"
	"github.com/wagatoken/wagachain/wagatest/assert"
)

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()
	h := &wagatest.Handler{}
	r.Handle(&wagatest.Msg{RoutePath: "test/good"}, h)

	ctx := context.Background()
	db := store.MemStore()

	tx := &wagatest.Tx{Msg: &wagatest.Msg{RoutePath: "test/good"}}
	_, err := r.Check(ctx, db, tx)
	assert.Nil(t, err)
	_, err = r.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 2, h.CallCount())

	missing := &wagatest.Tx{Msg: &wagatest.Msg{RoutePath: "test/missing"}}
	_, err = r.Check(ctx, db, missing)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Deliver(ctx, db, missing)
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.Equal(t, 2, h.CallCount())
}

func TestRouterBrokenMessage(t *testing.T) {
	r := NewRouter()
	r.Handle(&wagatest.Msg{RoutePath: "test/good"}, &wagatest.Handler{})

	tx := &wagatest.Tx{Err: errors.ErrInput}
	_, err := r.Check(context.Background(), store.MemStore(), tx)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestRouterRegistrationPanics(t *testing.T) {
	r := NewRouter()
	r.Handle(&wagatest.Msg{RoutePath: "test/good"}, &wagatest.Handler{})

	assert.Panics(t, func() {
		r.Handle(&wagatest.Msg{RoutePath: "test/good"}, &wagatest.Handler{})
	})
	assert.Panics(t, func() {
		r.Handle(&wagatest.Msg{RoutePath: "Bad Path!"}, &wagatest.Handler{})
	})
}

func TestRouterImplementsHandler(t *testing.T) {
	var _ wagachain.Handler = NewRouter()
	var _ wagachain.Registry = NewRouter()
}
