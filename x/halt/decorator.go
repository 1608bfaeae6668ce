package halt

import (
	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/gconf"
)

// Decorator blocks every mutating message while the chain is paused. The
// halt configuration update passes through, so the admin can always
// resume. A chain without a halt configuration is never paused.
type Decorator struct{}

var _ wagachain.Decorator = Decorator{}

// NewDecorator creates the halt gate.
func NewDecorator() Decorator {
	return Decorator{}
}

func (d Decorator) Check(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx, next wagachain.Checker) (*wagachain.CheckResult, error) {
	if err := d.gate(store, tx); err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

func (d Decorator) Deliver(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx, next wagachain.Deliverer) (*wagachain.DeliverResult, error) {
	if err := d.gate(store, tx); err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) gate(store wagachain.KVStore, tx wagachain.Tx) error {
	var conf Configuration
	switch err := gconf.Load(store, "halt", &conf); {
	case err == nil:
		// configured
	case errors.ErrNotFound.Is(err):
		return nil
	default:
		return errors.Wrap(err, "load halt configuration")
	}
	if !conf.Paused {
		return nil
	}

	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot acquire message")
	}
	if msg.Path() == (UpdateConfigurationMsg{}).Path() {
		return nil
	}
	return errors.Wrap(errors.ErrState, "chain is halted")
}
