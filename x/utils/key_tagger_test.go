package utils

import (
	"context"
	"testing"

	"github.com/tendermint/tendermint/libs/common"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/store"
	"github.com/wagatoken/wagachain/wagatest/assert"
)

func TestKeyTagger(t *testing.T) {
	nk, nv := []byte("name"), []byte("value")

	cases := map[string]struct {
		handler wagachain.Handler
		isError bool
		tags    []common.KVPair
		k       []byte
		v       []byte
	}{
		"write is recorded": {
			handler: writeHandler{key: nk, value: nv},
			tags: []common.KVPair{
				{Key: nk, Value: recordSet},
			},
			k: nk,
			v: nv,
		},
		"delete is recorded": {
			handler: deleteHandler{key: nk},
			tags: []common.KVPair{
				{Key: nk, Value: recordDelete},
			},
			k: nk,
		},
		"errors leave no tags and no writes": {
			handler: writeHandler{key: nk, value: nv, err: errors.ErrState},
			isError: true,
			k:       nk,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			db := store.MemStore()
			tagger := NewKeyTagger()

			res, err := tagger.Deliver(ctx, db, nil, tc.handler)
			if tc.isError {
				if err == nil {
					t.Fatal("expected an error")
				}
			} else {
				assert.Nil(t, err)
				assert.Equal(t, tc.tags, res.Tags)
			}

			got, err := db.Get(tc.k)
			assert.Nil(t, err)
			assert.Equal(t, tc.v, got)
		})
	}
}

func TestKeyTaggerSortsAndDeduplicates(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()
	tagger := NewKeyTagger()

	h := multiWriteHandler{}
	res, err := tagger.Deliver(ctx, db, nil, h)
	assert.Nil(t, err)

	want := []common.KVPair{
		{Key: []byte("aaa"), Value: recordDelete},
		{Key: []byte("bbb"), Value: recordSet},
	}
	assert.Equal(t, want, res.Tags)
}

// multiWriteHandler touches the same key twice, delete winning, and
// writes a second key out of order.
type multiWriteHandler struct{}

func (multiWriteHandler) Check(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	return &wagachain.CheckResult{}, nil
}

func (multiWriteHandler) Deliver(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	if err := db.Set([]byte("bbb"), []byte("1")); err != nil {
		return nil, err
	}
	if err := db.Set([]byte("aaa"), []byte("2")); err != nil {
		return nil, err
	}
	if err := db.Delete([]byte("aaa")); err != nil {
		return nil, err
	}
	return &wagachain.DeliverResult{}, nil
}
