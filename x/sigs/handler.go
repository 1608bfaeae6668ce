package sigs

import (
	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/migration"
	"github.com/wagatoken/wagachain/x"
)

// RegisterRoutes installs the handlers of this extension.
func RegisterRoutes(r wagachain.Registry, auth x.Authenticator) {
	r = migration.SchemaMigratingRegistry("sigs", r)
	r.Handle(&BumpSequenceMsg{}, &bumpSequenceHandler{
		b:    NewUserBucket(),
		auth: auth,
	})
}

type bumpSequenceHandler struct {
	auth x.Authenticator
	b    *UserBucket
}

func (h *bumpSequenceHandler) Check(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &wagachain.CheckResult{}, nil
}

func (h *bumpSequenceHandler) Deliver(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	user, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// Each transaction processing bumps the sequence by one. Increment
	// must represent the total increment value.
	incr := int64(msg.Increment) - 1
	if incr == 0 {
		// Zero increment requires no modification.
		return &wagachain.DeliverResult{}, nil
	}
	user.Sequence += incr
	if _, err := h.b.Put(db, user.Pubkey.Address(), user); err != nil {
		return nil, errors.Wrap(err, "save user")
	}

	return &wagachain.DeliverResult{}, nil
}

func (h *bumpSequenceHandler) validate(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*UserData, *BumpSequenceMsg, error) {
	var msg BumpSequenceMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	var user UserData
	if err := h.b.One(db, signer.Address(), &user); err != nil {
		return nil, nil, errors.Wrap(err, "no sequence")
	}

	if user.Sequence+int64(msg.Increment) < user.Sequence {
		return nil, nil, errors.Wrap(errors.ErrOverflow, "user sequence")
	}

	return &user, &msg, nil
}
