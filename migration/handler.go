package migration

import (
	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/x"
)

// RegisterRoutes installs the schema upgrade handler. The handler is
// authorized by the migration configuration admin.
func RegisterRoutes(r wagachain.Registry, auth x.Authenticator) {
	r.Handle(&UpgradeSchemaMsg{}, &upgradeSchemaHandler{
		bucket: NewSchemaBucket(),
		auth:   auth,
	})
}

type upgradeSchemaHandler struct {
	bucket *SchemaBucket
	auth   x.Authenticator
}

func (h *upgradeSchemaHandler) Check(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &wagachain.CheckResult{}, nil
}

func (h *upgradeSchemaHandler) Deliver(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	ver, err := h.bucket.CurrentSchema(db, msg.Pkg)
	if err != nil {
		return nil, errors.Wrapf(err, "current schema of %q", msg.Pkg)
	}
	schema := Schema{
		Metadata: &wagachain.Metadata{Schema: 1},
		Pkg:      msg.Pkg,
		Version:  ver + 1,
	}
	key, err := h.bucket.Create(db, &schema)
	if err != nil {
		return nil, errors.Wrap(err, "create schema version")
	}
	return &wagachain.DeliverResult{Data: key}, nil
}

func (h *upgradeSchemaHandler) validate(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*UpgradeSchemaMsg, error) {
	var msg UpgradeSchemaMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Admin) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}
	return &msg, nil
}

// SchemaMigratingRegistry decorates the given registry so that every
// registered handler migrates incoming messages of the given package to
// the currently active schema before processing them.
func SchemaMigratingRegistry(packageName string, r wagachain.Registry) wagachain.Registry {
	return &schemaMigratingRegistry{
		reg: r,
		pkg: packageName,
	}
}

type schemaMigratingRegistry struct {
	reg wagachain.Registry
	pkg string
}

func (r *schemaMigratingRegistry) Handle(m wagachain.Msg, h wagachain.Handler) {
	r.reg.Handle(m, SchemaMigratingHandler(r.pkg, h))
}

// SchemaMigratingHandler returns a handler that migrates the message of
// every processed transaction to the currently active schema of the
// given package.
func SchemaMigratingHandler(packageName string, h wagachain.Handler) wagachain.Handler {
	return &schemaMigratingHandler{
		handler:  h,
		pkg:      packageName,
		bucket:   NewSchemaBucket(),
		migrator: reg,
	}
}

type schemaMigratingHandler struct {
	handler  wagachain.Handler
	pkg      string
	bucket   *SchemaBucket
	migrator *register
}

func (h *schemaMigratingHandler) Check(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	if err := h.migrate(db, tx); err != nil {
		return nil, errors.Wrap(err, "migrate")
	}
	return h.handler.Check(ctx, db, tx)
}

func (h *schemaMigratingHandler) Deliver(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	if err := h.migrate(db, tx); err != nil {
		return nil, errors.Wrap(err, "migrate")
	}
	return h.handler.Deliver(ctx, db, tx)
}

func (h *schemaMigratingHandler) migrate(db wagachain.ReadOnlyKVStore, tx wagachain.Tx) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get msg")
	}
	m, ok := msg.(Migratable)
	if !ok {
		return errors.Wrap(errors.ErrMsg, "message cannot be migrated")
	}
	currSchemaVer, err := h.bucket.CurrentSchema(db, h.pkg)
	if err != nil {
		return errors.Wrapf(err, "current schema of %q", h.pkg)
	}
	// Migration is applied in place on the message.
	if err := h.migrator.Apply(db, m, currSchemaVer); err != nil {
		return errors.Wrap(err, "schema migration")
	}
	return nil
}
