package store

import "github.com/wagatoken/wagachain"

// Aliases for the storage contracts of the root package, so that all
// storage code can use the short names.

type ReadOnlyKVStore = wagachain.ReadOnlyKVStore
type SetDeleter = wagachain.SetDeleter
type KVStore = wagachain.KVStore
type Batch = wagachain.Batch
type Iterator = wagachain.Iterator
type CacheableKVStore = wagachain.CacheableKVStore
type KVCacheWrap = wagachain.KVCacheWrap
type CommitKVStore = wagachain.CommitKVStore
type CommitID = wagachain.CommitID
type Model = wagachain.Model

// Pair constructs a model from a key-value pair.
func Pair(key, value []byte) Model {
	return wagachain.Pair(key, value)
}
