package app

import (
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
)

// ABCIStore exposes the abci.Query interface as a ReadOnlyKVStore, so the
// usual bucket and parse logic can be reused against a remote application.
type ABCIStore struct {
	app abci.Application
}

var _ wagachain.ReadOnlyKVStore = (*ABCIStore)(nil)

func NewABCIStore(app abci.Application) *ABCIStore {
	return &ABCIStore{app: app}
}

// Get will query for exactly one value over the abci store.
func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	query := a.app.Query(abci.RequestQuery{
		Path: "/",
		Data: key,
	})
	if query.Code != 0 {
		return nil, errors.Wrap(errors.ErrDatabase, query.Log)
	}
	var value ResultSet
	if err := value.Unmarshal(query.Value); err != nil {
		return nil, errors.Wrap(err, "unmarshal result set")
	}
	if len(value.Results) == 0 {
		return nil, nil
	}
	return value.Results[0], nil
}

// Has returns true if the given key is in the abci app store.
func (a *ABCIStore) Has(key []byte) (bool, error) {
	value, err := a.Get(key)
	if err != nil {
		return false, err
	}
	return len(value) > 0, nil
}

// Iterator attempts to do a range iteration over the store. Only the full
// range is supported for now, the abci query interface cannot express
// anything richer.
func (a *ABCIStore) Iterator(start, end []byte) (wagachain.Iterator, error) {
	// TODO: support prefix searches, reversing the prefix-to-range
	// transformation the orm applies.
	if start != nil || end != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "iterator only implemented for the entire range")
	}

	query := a.app.Query(abci.RequestQuery{
		Path: "/?" + wagachain.PrefixQueryMod,
		Data: nil,
	})
	if query.Code != 0 {
		return nil, errors.Wrap(errors.ErrDatabase, query.Log)
	}
	models, err := toModels(query.Key, query.Value)
	if err != nil {
		return nil, errors.Wrap(err, "cannot convert to models")
	}
	return newSliceIterator(models), nil
}

func (a *ABCIStore) ReverseIterator(start, end []byte) (wagachain.Iterator, error) {
	return nil, errors.Wrap(errors.ErrDatabase, "reverse iteration not supported over abci queries")
}

func toModels(keys, values []byte) ([]wagachain.Model, error) {
	var k, v ResultSet
	if err := k.Unmarshal(keys); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal keys")
	}
	if err := v.Unmarshal(values); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal values")
	}
	return JoinResults(&k, &v)
}

// sliceIterator releases a fixed set of models.
type sliceIterator struct {
	data []wagachain.Model
	idx  int
}

func newSliceIterator(data []wagachain.Model) *sliceIterator {
	return &sliceIterator{data: data}
}

func (s *sliceIterator) Next() (key, value []byte, err error) {
	if s.idx >= len(s.data) {
		return nil, nil, errors.ErrIteratorDone
	}
	m := s.data[s.idx]
	s.idx++
	return m.Key, m.Value, nil
}

func (s *sliceIterator) Release() {
	s.data = nil
	s.idx = 0
}
