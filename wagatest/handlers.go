package wagatest

import "github.com/wagatoken/wagachain"

// Handler is a mock implementation of the wagachain.Handler interface.
// Each method call is counted and the configured result returned.
type Handler struct {
	checkCall   int
	CheckResult wagachain.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult wagachain.DeliverResult
	DeliverErr    error
}

var _ wagachain.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
