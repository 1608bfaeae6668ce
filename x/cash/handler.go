package cash

import (
	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/gconf"
	"github.com/wagatoken/wagachain/migration"
	"github.com/wagatoken/wagachain/x"
)

const (
	sendTxCost int64 = 100
)

// RegisterRoutes installs the handlers of this extension.
func RegisterRoutes(r wagachain.Registry, auth x.Authenticator, control Controller) {
	r = migration.SchemaMigratingRegistry("cash", r)
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler("cash", &Configuration{}, auth, nil))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ wagachain.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	if _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &wagachain.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the tokens from source to destination if
// all preconditions are met
func (h SendHandler) Deliver(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	msg, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}

	if err := h.control.MoveCoins(store, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &wagachain.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Only the source account can authorize the transfer.
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source signature required")
	}

	return &msg, nil
}
