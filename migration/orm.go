package migration

import (
	"reflect"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/orm"
)

// NewModelBucket returns a ModelBucket instance that ensures that every
// model read from or written to the given bucket is migrated to the
// currently active schema version of the given package.
func NewModelBucket(packageName string, b orm.ModelBucket) orm.ModelBucket {
	return &schemaMigratingModelBucket{
		b:       b,
		pkg:     packageName,
		schema:  NewSchemaBucket(),
		migrate: reg.Apply,
	}
}

type schemaMigratingModelBucket struct {
	b       orm.ModelBucket
	pkg     string
	schema  *SchemaBucket
	migrate func(wagachain.ReadOnlyKVStore, Migratable, uint32) error
}

func (m *schemaMigratingModelBucket) One(db wagachain.ReadOnlyKVStore, key []byte, dest orm.Model) error {
	if err := m.b.One(db, key, dest); err != nil {
		return err
	}
	return m.migrateOne(db, dest)
}

func (m *schemaMigratingModelBucket) ByIndex(db wagachain.ReadOnlyKVStore, indexName string, key []byte, dest orm.ModelSlicePtr) (keys [][]byte, err error) {
	keys, err = m.b.ByIndex(db, indexName, key, dest)
	if err != nil {
		return nil, err
	}
	if err := m.migrateSlice(db, dest); err != nil {
		return nil, err
	}
	return keys, nil
}

func (m *schemaMigratingModelBucket) Put(db wagachain.KVStore, key []byte, model orm.Model) ([]byte, error) {
	if err := m.migrateOne(db, model); err != nil {
		return nil, err
	}
	return m.b.Put(db, key, model)
}

func (m *schemaMigratingModelBucket) Delete(db wagachain.KVStore, key []byte) error {
	return m.b.Delete(db, key)
}

func (m *schemaMigratingModelBucket) Has(db wagachain.ReadOnlyKVStore, key []byte) error {
	return m.b.Has(db, key)
}

func (m *schemaMigratingModelBucket) Register(name string, r wagachain.QueryRouter) {
	m.b.Register(name, r)
}

func (m *schemaMigratingModelBucket) migrateOne(db wagachain.ReadOnlyKVStore, model orm.Model) error {
	migratable, ok := model.(Migratable)
	if !ok {
		return errors.Wrapf(errors.ErrModel, "%T cannot be migrated", model)
	}
	currSchemaVer, err := m.schema.CurrentSchema(db, m.pkg)
	if err != nil {
		return errors.Wrapf(err, "current schema of %q", m.pkg)
	}
	if err := m.migrate(db, migratable, currSchemaVer); err != nil {
		return errors.Wrap(err, "schema migration")
	}
	return nil
}

func (m *schemaMigratingModelBucket) migrateSlice(db wagachain.ReadOnlyKVStore, dest orm.ModelSlicePtr) error {
	currSchemaVer, err := m.schema.CurrentSchema(db, m.pkg)
	if err != nil {
		return errors.Wrapf(err, "current schema of %q", m.pkg)
	}
	return eachModel(dest, func(model orm.Model) error {
		migratable, ok := model.(Migratable)
		if !ok {
			return errors.Wrapf(errors.ErrModel, "%T cannot be migrated", model)
		}
		if err := m.migrate(db, migratable, currSchemaVer); err != nil {
			return errors.Wrap(err, "schema migration")
		}
		return nil
	})
}

// eachModel calls fn for every model in the slice that dest points to.
// Both []Model and []*Model slices are accepted.
func eachModel(dest orm.ModelSlicePtr, fn func(orm.Model) error) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Slice {
		return errors.Wrapf(errors.ErrType, "%T is not a pointer to a slice", dest)
	}
	slice := v.Elem()
	for i := 0; i < slice.Len(); i++ {
		item := slice.Index(i)
		if item.Kind() != reflect.Ptr {
			item = item.Addr()
		}
		model, ok := item.Interface().(orm.Model)
		if !ok {
			return errors.Wrapf(errors.ErrType, "%T is not a model", item.Interface())
		}
		if err := fn(model); err != nil {
			return err
		}
	}
	return nil
}
