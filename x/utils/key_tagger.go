package utils

import (
	"github.com/tendermint/tendermint/libs/common"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/store"
)

// KeyTagger is a decorator that records all Set/Delete operations
// performed by its children and adds all those keys as DeliverTx tags.
type KeyTagger struct{}

var _ wagachain.Decorator = KeyTagger{}

// NewKeyTagger creates a KeyTagger decorator
func NewKeyTagger() KeyTagger {
	return KeyTagger{}
}

// Check does nothing
func (KeyTagger) Check(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx, next wagachain.Checker) (*wagachain.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver passes a recording cache into the child and uses the
// recorded write set to calculate tags to add to DeliverResult.
func (KeyTagger) Deliver(ctx wagachain.Context, db wagachain.KVStore, tx wagachain.Tx, next wagachain.Deliverer) (*wagachain.DeliverResult, error) {
	batch := store.NewNonAtomicBatch(db)
	cache := store.NewBTreeCacheWrap(db, batch, nil)

	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}

	// Read the write set before Write flushes and resets the batch.
	res.Tags = append(res.Tags, opsToTags(batch.ShowOps())...)
	if err := cache.Write(); err != nil {
		return nil, err
	}
	return res, nil
}

var (
	recordSet    = []byte("s")
	recordDelete = []byte("d")
)

// opsToTags emits one tag per written key, deduplicated so that only the
// last operation on a key is reported, sorted by key.
func opsToTags(ops []store.Op) common.KVPairs {
	if len(ops) == 0 {
		return nil
	}
	changes := make(map[string][]byte, len(ops))
	for _, op := range ops {
		mark := recordSet
		if !op.IsSetOp() {
			mark = recordDelete
		}
		changes[string(op.Key())] = mark
	}
	res := make(common.KVPairs, 0, len(changes))
	for k, v := range changes {
		res = append(res, common.KVPair{
			Key:   []byte(k),
			Value: v,
		})
	}
	res.Sort()
	return res
}
