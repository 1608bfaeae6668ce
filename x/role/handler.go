package role

import (
	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/gconf"
	"github.com/wagatoken/wagachain/migration"
	"github.com/wagatoken/wagachain/x"
)

const (
	grantTxCost  int64 = 50
	revokeTxCost int64 = 50
)

// RegisterRoutes installs the handlers of this extension.
func RegisterRoutes(r wagachain.Registry, auth x.Authenticator) {
	r = migration.SchemaMigratingRegistry("role", r)
	bucket := NewRolesBucket()
	r.Handle(&GrantMsg{}, grantHandler{auth: auth, bucket: bucket})
	r.Handle(&RevokeMsg{}, revokeHandler{auth: auth, bucket: bucket})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler("role", &Configuration{}, auth, nil))
}

type grantHandler struct {
	auth   x.Authenticator
	bucket RolesBucket
}

var _ wagachain.Handler = grantHandler{}

func (h grantHandler) Check(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	if _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &wagachain.CheckResult{GasAllocated: grantTxCost}, nil
}

func (h grantHandler) Deliver(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	msg, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}

	var roles Roles
	switch err := h.bucket.One(store, msg.Address, &roles); {
	case err == nil:
		// extend the existing set
	case errors.ErrNotFound.Is(err):
		roles = Roles{
			Metadata: &wagachain.Metadata{Schema: 1},
			Address:  msg.Address,
		}
	default:
		return nil, errors.Wrap(err, "load roles")
	}

	for _, c := range msg.Capabilities {
		if !roles.Has(c) {
			roles.Capabilities = append(roles.Capabilities, c)
		}
	}

	key, err := h.bucket.Put(store, msg.Address, &roles)
	if err != nil {
		return nil, errors.Wrap(err, "save roles")
	}
	return &wagachain.DeliverResult{Data: key}, nil
}

func (h grantHandler) validate(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*GrantMsg, error) {
	var msg GrantMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := authorizeAdmin(ctx, store, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}

type revokeHandler struct {
	auth   x.Authenticator
	bucket RolesBucket
}

var _ wagachain.Handler = revokeHandler{}

func (h revokeHandler) Check(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	if _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &wagachain.CheckResult{GasAllocated: revokeTxCost}, nil
}

func (h revokeHandler) Deliver(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	msg, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}

	var roles Roles
	if err := h.bucket.One(store, msg.Address, &roles); err != nil {
		return nil, errors.Wrap(err, "load roles")
	}

	revoked := make(map[string]bool, len(msg.Capabilities))
	for _, c := range msg.Capabilities {
		revoked[c] = true
	}
	var keep []string
	for _, c := range roles.Capabilities {
		if !revoked[c] {
			keep = append(keep, c)
		}
	}

	// An empty capability set is not a valid record.
	if len(keep) == 0 {
		if err := h.bucket.Delete(store, msg.Address); err != nil {
			return nil, errors.Wrap(err, "delete roles")
		}
		return &wagachain.DeliverResult{}, nil
	}

	roles.Capabilities = keep
	key, err := h.bucket.Put(store, msg.Address, &roles)
	if err != nil {
		return nil, errors.Wrap(err, "save roles")
	}
	return &wagachain.DeliverResult{Data: key}, nil
}

func (h revokeHandler) validate(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*RevokeMsg, error) {
	var msg RevokeMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := authorizeAdmin(ctx, store, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}

func authorizeAdmin(ctx wagachain.Context, store wagachain.KVStore, auth x.Authenticator) error {
	conf, err := loadConf(store)
	if err != nil {
		return err
	}
	if !auth.HasAddress(ctx, conf.Admin) {
		return errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}
	return nil
}
