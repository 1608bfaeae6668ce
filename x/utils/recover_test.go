package utils

import (
	"context"
	"testing"

	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/store"
	"github.com/wagatoken/wagachain/wagatest"
	"github.com/wagatoken/wagachain/wagatest/assert"
)

func TestRecovery(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()
	rec := NewRecovery()

	// panics are turned into errors on both paths
	ph := panicHandler{panicWith: "my panic"}
	if _, err := rec.Check(ctx, db, nil, ph); !errors.ErrPanic.Is(err) {
		t.Fatalf("want a panic error, got %+v", err)
	}
	if _, err := rec.Deliver(ctx, db, nil, ph); !errors.ErrPanic.Is(err) {
		t.Fatalf("want a panic error, got %+v", err)
	}

	// regular processing is passed through
	h := &wagatest.Handler{}
	_, err := rec.Check(ctx, db, nil, h)
	assert.Nil(t, err)
	_, err = rec.Deliver(ctx, db, nil, h)
	assert.Nil(t, err)
	assert.Equal(t, 2, h.CallCount())
}

func TestRecoveryKeepsErrors(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()
	rec := NewRecovery()

	h := &wagatest.Handler{
		CheckErr:   errors.ErrNotFound,
		DeliverErr: errors.ErrNotFound,
	}
	if _, err := rec.Check(ctx, db, nil, h); !errors.ErrNotFound.Is(err) {
		t.Fatalf("error must pass unchanged, got %+v", err)
	}
	if _, err := rec.Deliver(ctx, db, nil, h); !errors.ErrNotFound.Is(err) {
		t.Fatalf("error must pass unchanged, got %+v", err)
	}
}
