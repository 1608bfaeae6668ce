package utils

import (
	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ wagachain.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx, next wagachain.Checker) (_ *wagachain.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx, next wagachain.Deliverer) (_ *wagachain.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
