package orm

import (
	"bytes"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
)

// Indexer calculates the index value of a model. A nil result with no
// error means the model is not indexed.
type Indexer func(Model) ([]byte, error)

// MultiKeyIndexer calculates any number of index values for a model.
type MultiKeyIndexer func(Model) ([][]byte, error)

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(m Model) ([][]byte, error) {
		key, err := indexer(m)
		if err != nil {
			return nil, err
		}
		if key == nil {
			return nil, nil
		}
		return [][]byte{key}, nil
	}
}

// index maintains a secondary lookup from an indexed value to the primary
// keys of all models carrying that value. Each entry is stored as a
// separate database key
//
//	_i.<bucket>_<name>:<value><pk><len(pk)>
//
// so that all primary keys of one value are a single range scan away.
type index struct {
	name    string
	prefix  []byte
	indexer MultiKeyIndexer
	unique  bool
}

func newIndex(bucket, name string, indexer MultiKeyIndexer, unique bool) index {
	return index{
		name:    name,
		prefix:  []byte("_i." + bucket + "_" + name + ":"),
		indexer: indexer,
		unique:  unique,
	}
}

func (i index) entryKey(value, pk []byte) ([]byte, error) {
	if len(pk) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "primary key")
	}
	if len(pk) > 255 {
		return nil, errors.Wrap(errors.ErrInput, "primary key too long to index")
	}
	key := make([]byte, 0, len(i.prefix)+len(value)+len(pk)+1)
	key = append(key, i.prefix...)
	key = append(key, value...)
	key = append(key, pk...)
	key = append(key, byte(len(pk)))
	return key, nil
}

// update synchronizes the index entries after a model change. Either prev
// or next can be nil, meaning creation or deletion of the model.
func (i index) update(db wagachain.KVStore, prev, next Model, pk []byte) error {
	var prevKeys, nextKeys [][]byte
	var err error
	if prev != nil {
		if prevKeys, err = i.indexer(prev); err != nil {
			return errors.Wrapf(err, "index %q on previous value", i.name)
		}
	}
	if next != nil {
		if nextKeys, err = i.indexer(next); err != nil {
			return errors.Wrapf(err, "index %q on next value", i.name)
		}
	}

	for _, value := range subtract(prevKeys, nextKeys) {
		key, err := i.entryKey(value, pk)
		if err != nil {
			return err
		}
		if err := db.Delete(key); err != nil {
			return err
		}
	}

	for _, value := range subtract(nextKeys, prevKeys) {
		if i.unique {
			taken, err := i.keys(db, value)
			if err != nil {
				return err
			}
			if len(taken) > 0 && !bytes.Equal(taken[0], pk) {
				return errors.Wrapf(errors.ErrDuplicate, "index %q", i.name)
			}
		}
		key, err := i.entryKey(value, pk)
		if err != nil {
			return err
		}
		if err := db.Set(key, nil); err != nil {
			return err
		}
	}
	return nil
}

// keys returns the primary keys of all models indexed under the given
// value, in ascending primary key order.
func (i index) keys(db wagachain.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	scope := append(append([]byte{}, i.prefix...), value...)
	start, end := prefixRange(scope)
	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var pks [][]byte
	for {
		key, _, err := it.Next()
		if err != nil {
			if errors.ErrIteratorDone.Is(err) {
				break
			}
			return nil, err
		}
		entry := key[len(i.prefix):]
		pkLen := int(entry[len(entry)-1])
		if pkLen == 0 || pkLen > len(entry)-1 {
			return nil, errors.Wrapf(errors.ErrDatabase, "malformed index entry in %q", i.name)
		}
		// a longer indexed value can share the scope prefix, only
		// exact matches belong to this result
		if !bytes.Equal(entry[:len(entry)-1-pkLen], value) {
			continue
		}
		pk := make([]byte, pkLen)
		copy(pk, entry[len(entry)-1-pkLen:len(entry)-1])
		pks = append(pks, pk)
	}
	return pks, nil
}

// subtract returns all byte slices of a that are not present in b.
func subtract(a, b [][]byte) [][]byte {
	var res [][]byte
next:
	for _, x := range a {
		for _, y := range b {
			if bytes.Equal(x, y) {
				continue next
			}
		}
		res = append(res, x)
	}
	return res
}

// prefixRange turns a prefix into the (start, end) range covering exactly
// all keys with that prefix.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return prefix, end[:i+1]
		}
	}
	// the prefix is all 0xff, the range is open ended
	return prefix, nil
}
