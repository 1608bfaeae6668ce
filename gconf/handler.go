package gconf

import (
	"reflect"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/x"
)

// OwnedConfig is a configuration that declares its owner. A configuration
// update message must be signed by the owner in order to be authorized to
// apply the change.
type OwnedConfig interface {
	Configuration
	GetOwner() wagachain.Address
}

// InitAdmin returns an address that is authorized to create the very
// first configuration of a package.
type InitAdmin func(db wagachain.ReadOnlyKVStore) (wagachain.Address, error)

// UpdateConfigurationHandler is a generic handler for configuration patch
// messages. A patch message must carry a `Patch` field holding the full
// new configuration.
type UpdateConfigurationHandler struct {
	pkg string
	// config is used as a template to load the current state into.
	config    OwnedConfig
	auth      x.Authenticator
	initAdmin InitAdmin
}

var _ wagachain.Handler = (*UpdateConfigurationHandler)(nil)

// NewUpdateConfigurationHandler returns a message handler that processes
// a configuration patch message for the given package.
//
// To pass the authentication step, each message must be signed by the
// current configuration owner. When no configuration exists yet, there is
// no owner either, so nobody could create the initial configuration
// through a transaction. The optional initAdmin callback resolves that
// chicken-egg problem: it is consulted only as long as no configuration
// exists.
func NewUpdateConfigurationHandler(pkg string, config OwnedConfig, auth x.Authenticator, initAdmin InitAdmin) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:       pkg,
		config:    config,
		auth:      auth,
		initAdmin: initAdmin,
	}
}

func (h UpdateConfigurationHandler) Check(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	if err := h.applyTx(ctx, db, tx); err != nil {
		return nil, err
	}
	return &wagachain.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	if err := h.applyTx(ctx, db, tx); err != nil {
		return nil, err
	}
	return &wagachain.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) applyTx(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	patch, err := patchFrom(msg, h.config)
	if err != nil {
		return err
	}

	var owner wagachain.Address
	switch err := Load(db, h.pkg, h.config); {
	case err == nil:
		owner = h.config.GetOwner()
	case errors.ErrNotFound.Is(err):
		if h.initAdmin == nil {
			return errors.Wrap(err, "no configuration")
		}
		if owner, err = h.initAdmin(db); err != nil {
			return errors.Wrap(err, "init admin")
		}
	default:
		return errors.Wrap(err, "load configuration")
	}

	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "configuration owner")
	}
	if !h.auth.HasAddress(ctx, owner) {
		return errors.Wrap(errors.ErrUnauthorized, "configuration owner signature required")
	}

	return Save(db, h.pkg, patch)
}

// patchFrom extracts the Patch field of the message, ensuring it carries
// the same configuration type the handler manages.
func patchFrom(msg wagachain.Msg, template OwnedConfig) (OwnedConfig, error) {
	val := reflect.ValueOf(msg)
	for val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	field := val.FieldByName("Patch")
	if !field.IsValid() {
		return nil, errors.Wrapf(errors.ErrMsg, "message %T has no patch field", msg)
	}
	if field.Kind() == reflect.Ptr && field.IsNil() {
		return nil, errors.Wrap(errors.ErrEmpty, "patch")
	}
	patch, ok := field.Interface().(OwnedConfig)
	if !ok || reflect.TypeOf(patch) != reflect.TypeOf(template) {
		return nil, errors.Wrapf(errors.ErrType, "patch of %T cannot configure %T", patch, template)
	}
	return patch, nil
}
