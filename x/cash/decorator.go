package cash

import (
	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/coin"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/x"
)

// FeeTx is implemented by transactions that declare the fee they are
// willing to pay.
type FeeTx interface {
	GetFees() *coin.Coin
}

// FeeDecorator ensures that the minimal fee configured for the chain is
// paid into the collector account before the transaction executes.
//
// The payer is the main signer of the transaction. Transactions may
// declare a higher fee through the FeeTx interface; declaring less than
// the configured minimum is rejected.
type FeeDecorator struct {
	auth    x.Authenticator
	control Controller
}

var _ wagachain.Decorator = FeeDecorator{}

// NewFeeDecorator returns a FeeDecorator with the given authenticator
// and controller.
func NewFeeDecorator(auth x.Authenticator, control Controller) FeeDecorator {
	return FeeDecorator{
		auth:    auth,
		control: control,
	}
}

// Check verifies and charges the fees before calling down the stack
func (d FeeDecorator) Check(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx, next wagachain.Checker) (*wagachain.CheckResult, error) {
	fee, err := d.charge(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res.RequiredFee = fee
	res.GasPayment += toPayment(fee)
	return res, nil
}

// Deliver verifies and charges the fees before calling down the stack
func (d FeeDecorator) Deliver(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx, next wagachain.Deliverer) (*wagachain.DeliverResult, error) {
	fee, err := d.charge(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res.RequiredFee = fee
	return res, nil
}

// charge resolves the fee owed by this transaction and moves it to the
// collector. It returns the charged fee.
func (d FeeDecorator) charge(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (coin.Coin, error) {
	conf := mustLoadConf(store)
	minFee := conf.MinimalFee

	fee := minFee
	if ftx, ok := tx.(FeeTx); ok && ftx.GetFees() != nil {
		fee = *ftx.GetFees()
	}

	// A chain without a minimal fee charges nothing unless the
	// transaction volunteers a payment.
	if fee.IsZero() {
		return fee, nil
	}
	if err := fee.Validate(); err != nil {
		return fee, errors.Wrap(err, "fee")
	}
	if !minFee.IsZero() {
		if !fee.SameType(minFee) {
			return fee, errors.Wrapf(errors.ErrCurrency, "fee must be paid in %q", minFee.Ticker)
		}
		if !fee.IsGTE(minFee) {
			return fee, errors.Wrapf(errors.ErrAmount, "fee less than minimum: %s", minFee)
		}
	}

	payer := x.MainSigner(ctx, d.auth)
	if payer == nil {
		return fee, errors.Wrap(errors.ErrUnauthorized, "no fee payer available")
	}
	if err := d.control.MoveCoins(store, payer.Address(), conf.CollectorAddress, fee); err != nil {
		return fee, errors.Wrap(err, "charge fee")
	}
	return fee, nil
}

// toPayment estimates gas payment from a fee value.
func toPayment(fee coin.Coin) int64 {
	if fee.IsZero() {
		return 0
	}
	return fee.Whole*10 + fee.Fractional/100000000
}
