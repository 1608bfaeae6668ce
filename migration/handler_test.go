package migration

import (
	"context"
	"testing"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/gconf"
	"github.com/wagatoken/wagachain/store"
	"github.com/wagatoken/wagachain/wagatest"
	"github.com/wagatoken/wagachain/wagatest/assert"
)

func TestUpgradeSchemaHandler(t *testing.T) {
	admin := wagatest.NewCondition()
	stranger := wagatest.NewCondition()

	db := store.MemStore()
	MustInitPkg(db, "migration", "mypkg")
	err := gconf.Save(db, "migration", &Configuration{
		Metadata: &wagachain.Metadata{Schema: 1},
		Admin:    admin.Address(),
	})
	assert.Nil(t, err)

	handler := upgradeSchemaHandler{
		bucket: NewSchemaBucket(),
		auth:   &wagatest.Auth{Signer: admin},
	}

	tx := &wagatest.Tx{Msg: &UpgradeSchemaMsg{
		Metadata: &wagachain.Metadata{Schema: 1},
		Pkg:      "mypkg",
	}}

	ctx := context.Background()
	res, err := handler.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, schemaID("mypkg", 2), res.Data)

	ver, err := handler.bucket.CurrentSchema(db, "mypkg")
	assert.Nil(t, err)
	assert.Equal(t, uint32(2), ver)

	// Without the admin signature the upgrade must be rejected.
	handler.auth = &wagatest.Auth{Signer: stranger}
	if _, err := handler.Deliver(ctx, db, tx); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized, got %+v", err)
	}
}

func TestSchemaMigratingHandler(t *testing.T) {
	db := store.MemStore()
	MustInitPkg(db, "mypkg")

	// Bump mypkg to schema version two.
	_, err := NewSchemaBucket().Create(db, &Schema{
		Metadata: &wagachain.Metadata{Schema: 1},
		Pkg:      "mypkg",
		Version:  2,
	})
	assert.Nil(t, err)

	migrations := newRegister()
	migrations.MustRegister(1, &counterPayload{}, NoModification)
	migrations.MustRegister(2, &counterPayload{}, func(db wagachain.ReadOnlyKVStore, m Migratable) error {
		m.(*counterPayload).Total += 1000
		return nil
	})

	next := &wagatest.Handler{}
	handler := schemaMigratingHandler{
		handler:  next,
		pkg:      "mypkg",
		bucket:   NewSchemaBucket(),
		migrator: migrations,
	}

	msg := counterPayload{
		Metadata: &wagachain.Metadata{Schema: 1},
		Total:    4,
	}
	tx := &wagatest.Tx{Msg: &msg}

	_, err = handler.Deliver(context.Background(), db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, next.DeliverCallCount())

	// The message was upgraded in place before processing.
	assert.Equal(t, uint32(2), msg.Metadata.Schema)
	assert.Equal(t, int64(1004), msg.Total)
}
