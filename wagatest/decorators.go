package wagatest

import "github.com/wagatoken/wagachain"

// Decorator is a mock implementation of the wagachain.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding method.
// If error attributes are not set then wrapped handler method is called and
// its result returned.
// Each method call is counted. Regardless of the method call result the
// counter is incremented.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ wagachain.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx, next wagachain.Checker) (*wagachain.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return &wagachain.CheckResult{}, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx, next wagachain.Deliverer) (*wagachain.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return &wagachain.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

func Decorate(h wagachain.Handler, d wagachain.Decorator) wagachain.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn wagachain.Handler
	dc wagachain.Decorator
}

var _ wagachain.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
