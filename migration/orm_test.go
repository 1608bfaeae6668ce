package migration

import (
	"testing"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/orm"
	"github.com/wagatoken/wagachain/store"
	"github.com/wagatoken/wagachain/wagatest/assert"
)

func TestSchemaMigratingModelBucket(t *testing.T) {
	db := store.MemStore()
	MustInitPkg(db, "mypkg")

	migrations := newRegister()
	migrations.MustRegister(1, &counterPayload{}, NoModification)
	migrations.MustRegister(2, &counterPayload{}, func(db wagachain.ReadOnlyKVStore, m Migratable) error {
		m.(*counterPayload).Total += 100
		return nil
	})

	b := &schemaMigratingModelBucket{
		b:       orm.NewModelBucket("counter", &counterPayload{}),
		pkg:     "mypkg",
		schema:  NewSchemaBucket(),
		migrate: migrations.Apply,
	}

	key := []byte("c1")
	_, err := b.Put(db, key, &counterPayload{
		Metadata: &wagachain.Metadata{Schema: 1},
		Total:    7,
	})
	assert.Nil(t, err)

	// With the package still at schema one the model is loaded as is.
	var got counterPayload
	assert.Nil(t, b.One(db, key, &got))
	assert.Equal(t, uint32(1), got.Metadata.Schema)
	assert.Equal(t, int64(7), got.Total)

	// After the schema bump every load migrates the model up.
	_, err = NewSchemaBucket().Create(db, &Schema{
		Metadata: &wagachain.Metadata{Schema: 1},
		Pkg:      "mypkg",
		Version:  2,
	})
	assert.Nil(t, err)

	got = counterPayload{}
	assert.Nil(t, b.One(db, key, &got))
	assert.Equal(t, uint32(2), got.Metadata.Schema)
	assert.Equal(t, int64(107), got.Total)

	// Stored models are migrated before writing.
	key2 := []byte("c2")
	_, err = b.Put(db, key2, &counterPayload{
		Metadata: &wagachain.Metadata{Schema: 1},
		Total:    1,
	})
	assert.Nil(t, err)
	got = counterPayload{}
	assert.Nil(t, b.One(db, key2, &got))
	assert.Equal(t, uint32(2), got.Metadata.Schema)
	assert.Equal(t, int64(101), got.Total)
}
