package app

import (
	"testing"

	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/store"
	"github.com/wagatoken/wagachain/store/iavl"
	"github.com/wagatoken/wagachain/wagatest/assert"
)

func TestChainID(t *testing.T) {
	db := store.MemStore()

	assert.Equal(t, "", mustLoadChainID(db))

	err := saveChainID(db, "bad;;;id")
	assert.IsErr(t, errors.ErrInput, err)

	assert.Nil(t, saveChainID(db, "waga-chain-1"))
	assert.Equal(t, "waga-chain-1", mustLoadChainID(db))

	// cannot be changed once set
	err = saveChainID(db, "waga-chain-2")
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestCommitStore(t *testing.T) {
	cs := NewCommitStore(iavl.MockCommitStore())

	k, v := []byte("key"), []byte("value")
	assert.Nil(t, cs.DeliverStore().Set(k, v))

	// check sees nothing before the commit
	has, err := cs.CheckStore().Has(k)
	assert.Nil(t, err)
	assert.Equal(t, false, has)

	id, err := cs.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)

	// both fresh caches read the committed value
	for _, kv := range []wagachain.CacheableKVStore{cs.CheckStore(), cs.DeliverStore()} {
		got, err := kv.Get(k)
		assert.Nil(t, err)
		assert.Equal(t, v, got)
	}
}

type echoQuery struct{}

func (echoQuery) Query(db wagachain.ReadOnlyKVStore, mod string, data []byte) ([]wagachain.Model, error) {
	value, err := db.Get(data)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	return []wagachain.Model{{Key: data, Value: value}}, nil
}

func TestStoreAppQuery(t *testing.T) {
	qr := wagachain.NewQueryRouter()
	qr.Register("/echo", echoQuery{})

	s := NewStoreApp("test-app", iavl.MockCommitStore(), qr)

	k, v := []byte("foo"), []byte("bar")
	assert.Nil(t, s.DeliverStore().Set(k, v))
	s.Commit()

	res := s.Query(abci.RequestQuery{Path: "/echo", Data: k})
	assert.Equal(t, uint32(0), res.Code)
	assert.Equal(t, int64(1), res.Height)

	var values ResultSet
	assert.Nil(t, values.Unmarshal(res.Value))
	assert.Equal(t, 1, len(values.Results))
	assert.Equal(t, v, values.Results[0])

	// unknown paths are rejected with the not found code
	res = s.Query(abci.RequestQuery{Path: "/nothing", Data: k})
	code, _ := errors.ABCIInfo(errors.ErrNotFound, false)
	assert.Equal(t, code, res.Code)
}

func TestStoreAppValChange(t *testing.T) {
	s := NewStoreApp("test-app", iavl.MockCommitStore(), wagachain.NewQueryRouter())

	key1 := abci.PubKey{Type: "ed25519", Data: []byte("key-1")}
	key2 := abci.PubKey{Type: "ed25519", Data: []byte("key-2")}

	s.AddValChange([]abci.ValidatorUpdate{
		{PubKey: key1, Power: 10},
		{PubKey: key2, Power: 20},
	})
	// a second update for the same key replaces the first one
	s.AddValChange([]abci.ValidatorUpdate{
		{PubKey: key1, Power: 30},
	})

	res := s.EndBlock(abci.RequestEndBlock{})
	assert.Equal(t, 2, len(res.ValidatorUpdates))
	assert.Equal(t, int64(30), res.ValidatorUpdates[0].Power)

	// pending changes are flushed by EndBlock
	res = s.EndBlock(abci.RequestEndBlock{})
	assert.Equal(t, 0, len(res.ValidatorUpdates))
}
