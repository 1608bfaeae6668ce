package orm

import (
	"reflect"

	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
)

// ModelBucket is implemented by buckets that operate on Models.
type ModelBucket interface {
	// One queries the database for a single model instance. Lookup is
	// done by the primary key. The result is loaded into the given
	// destination model. This method returns ErrNotFound if the entity
	// does not exist in the database.
	One(db wagachain.ReadOnlyKVStore, key []byte, dest Model) error

	// ByIndex returns all objects that secondary index with given name
	// and given key points to. Main index keys of every matching entity
	// are returned as well, in the same order as the destination
	// entities.
	ByIndex(db wagachain.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) ([][]byte, error)

	// Put saves the given model in the database. A nil key means the
	// bucket's ID sequence assigns the next free one. The key used is
	// returned.
	Put(db wagachain.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes the entity with the given primary key together
	// with all its index entries. It returns ErrNotFound if the entity
	// does not exist.
	Delete(db wagachain.KVStore, key []byte) error

	// Has returns nil if an entity with the given primary key exists,
	// ErrNotFound otherwise.
	Has(db wagachain.ReadOnlyKVStore, key []byte) error

	// Register this buckets content under the given query path.
	Register(name string, r wagachain.QueryRouter)
}

// ModelBucketOption customizes a bucket on creation.
type ModelBucketOption func(mb *modelBucket)

// WithIDSequence configures the bucket to generate primary keys from the
// given sequence when a model is stored under a nil key.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.idSeq = &s
	}
}

// WithIndex adds a secondary index to the bucket.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return WithMultiKeyIndex(name, asMultiKeyIndexer(indexer), unique)
}

// WithMultiKeyIndex adds a secondary index with any number of values per
// model to the bucket.
func WithMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.indexes = append(mb.indexes, newIndex(mb.name, name, indexer, unique))
	}
}

// NewModelBucket returns a ModelBucket instance storing entities of the
// given model type under the `<name>:<key>` keyspace.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	mb := &modelBucket{
		name:   name,
		prefix: []byte(name + ":"),
		model:  reflect.TypeOf(m),
	}
	for _, opt := range opts {
		opt(mb)
	}
	return mb
}

func isBucketName(name string) bool {
	if len(name) < 3 || len(name) > 10 {
		return false
	}
	for _, c := range name {
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

type modelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	idSeq   *Sequence
	indexes []index
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte{}, mb.prefix...), key...)
}

// clone returns a zero value instance of the bucket's model type.
func (mb *modelBucket) clone() Model {
	return reflect.New(mb.model.Elem()).Interface().(Model)
}

func (mb *modelBucket) One(db wagachain.ReadOnlyKVStore, key []byte, dest Model) error {
	if !mb.model.AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "%s cannot be represented as %T", mb.model, dest)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrap(err, "cannot deserialize model")
	}
	return nil
}

func (mb *modelBucket) ByIndex(db wagachain.ReadOnlyKVStore, indexName string, key []byte, destination ModelSlicePtr) ([][]byte, error) {
	idx, err := mb.index(indexName)
	if err != nil {
		return nil, err
	}
	pks, err := idx.keys(db, key)
	if err != nil {
		return nil, err
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr {
		return nil, errors.Wrap(errors.ErrType, "destination must be a pointer to a slice of models")
	}
	slice := dest.Elem()
	if slice.Kind() != reflect.Slice {
		return nil, errors.Wrap(errors.ErrType, "destination must be a pointer to a slice of models")
	}

	// Both []Model and []*Model slices are supported.
	sliceOfPointers := slice.Type().Elem().Kind() == reflect.Ptr

	keys := make([][]byte, 0, len(pks))
	for _, pk := range pks {
		raw, err := db.Get(mb.dbKey(pk))
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "index %q points to a missing entity", indexName)
		}
		m := mb.clone()
		if err := proto.Unmarshal(raw, m); err != nil {
			return nil, errors.Wrap(err, "cannot deserialize model")
		}
		val := reflect.ValueOf(m)
		if !sliceOfPointers {
			val = val.Elem()
		}
		slice.Set(reflect.Append(slice, val))
		keys = append(keys, pk)
	}
	return keys, nil
}

func (mb *modelBucket) Put(db wagachain.KVStore, key []byte, m Model) ([]byte, error) {
	mTp := reflect.TypeOf(m)
	if !mTp.AssignableTo(mb.model) {
		return nil, errors.Wrapf(errors.ErrType, "cannot store %T in bucket of %s", m, mb.model)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	if key == nil {
		if mb.idSeq == nil {
			return nil, errors.Wrap(errors.ErrInput, "bucket does not generate keys")
		}
		k, err := mb.idSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "ID sequence")
		}
		key = k
	}

	var prev Model
	if len(mb.indexes) != 0 {
		raw, err := db.Get(mb.dbKey(key))
		if err != nil {
			return nil, err
		}
		if raw != nil {
			prev = mb.clone()
			if err := proto.Unmarshal(raw, prev); err != nil {
				return nil, errors.Wrap(err, "cannot deserialize previous model")
			}
		}
	}

	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "cannot serialize model")
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return nil, err
	}

	for _, idx := range mb.indexes {
		if err := idx.update(db, prev, m, key); err != nil {
			return nil, err
		}
	}
	return key, nil
}

func (mb *modelBucket) Delete(db wagachain.KVStore, key []byte) error {
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "no entity under key %X", key)
	}
	if len(mb.indexes) != 0 {
		prev := mb.clone()
		if err := proto.Unmarshal(raw, prev); err != nil {
			return errors.Wrap(err, "cannot deserialize previous model")
		}
		for _, idx := range mb.indexes {
			if err := idx.update(db, prev, nil, key); err != nil {
				return err
			}
		}
	}
	return db.Delete(mb.dbKey(key))
}

func (mb *modelBucket) Has(db wagachain.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "no entity under key %X", key)
	}
	return nil
}

func (mb *modelBucket) index(name string) (index, error) {
	for _, idx := range mb.indexes {
		if idx.name == name {
			return idx, nil
		}
	}
	return index{}, errors.Wrapf(errors.ErrInput, "no index with name %q", name)
}

// Register implements the QueryHandler wiring: the bucket content becomes
// available under `/<name>` and every index under `/<name>/<index>`.
func (mb *modelBucket) Register(name string, r wagachain.QueryRouter) {
	root := "/" + name
	r.Register(root, bucketQuery{mb: mb})
	for _, idx := range mb.indexes {
		r.Register(root+"/"+idx.name, indexQuery{mb: mb, idx: idx})
	}
}

type bucketQuery struct {
	mb *modelBucket
}

func (q bucketQuery) Query(db wagachain.ReadOnlyKVStore, mod string, data []byte) ([]wagachain.Model, error) {
	switch mod {
	case wagachain.KeyQueryMod:
		key := q.mb.dbKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []wagachain.Model{{Key: key, Value: value}}, nil
	case wagachain.PrefixQueryMod:
		prefix := q.mb.dbKey(data)
		start, end := prefixRange(prefix)
		it, err := db.Iterator(start, end)
		if err != nil {
			return nil, err
		}
		defer it.Release()
		var res []wagachain.Model
		for {
			k, v, err := it.Next()
			if err != nil {
				if errors.ErrIteratorDone.Is(err) {
					return res, nil
				}
				return nil, err
			}
			res = append(res, wagachain.Model{Key: k, Value: v})
		}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query modifier %q", mod)
	}
}

type indexQuery struct {
	mb  *modelBucket
	idx index
}

func (q indexQuery) Query(db wagachain.ReadOnlyKVStore, mod string, data []byte) ([]wagachain.Model, error) {
	if mod != wagachain.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown query modifier %q", mod)
	}
	pks, err := q.idx.keys(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]wagachain.Model, 0, len(pks))
	for _, pk := range pks {
		key := q.mb.dbKey(pk)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			continue
		}
		res = append(res, wagachain.Model{Key: key, Value: value})
	}
	return res, nil
}
