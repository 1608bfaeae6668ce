package iavl

import (
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/wagatoken/wagachain/store"
)

// number of tree nodes kept in memory
const cacheSize = 10000

// CommitStore manages an iavl committed state. All writes accumulate in
// the working tree and are persisted as one new version on Commit.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}
var _ store.CacheableKVStore = CommitStore{}

// NewCommitStore creates a new store backed by a leveldb database in the
// given directory.
func NewCommitStore(dir, name string) CommitStore {
	db := dbm.NewDB(name, dbm.LevelDBBackend, dir)
	tree := iavl.NewMutableTree(db, cacheSize)
	return CommitStore{tree: tree}
}

// NewCommitStoreFromTree wraps an already loaded tree. Used by tooling
// that opens the database on its own, for example to replay a block.
func NewCommitStoreFromTree(tree *iavl.MutableTree) CommitStore {
	return CommitStore{tree: tree}
}

// MockCommitStore creates a store backed by an in-memory database, for
// tests only.
func MockCommitStore() CommitStore {
	db := dbm.NewMemDB()
	tree := iavl.NewMutableTree(db, cacheSize)
	return CommitStore{tree: tree}
}

// Get returns the value in the working tree, nil when the key does not
// exist.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, value := s.tree.Get(key)
	return value, nil
}

// Has checks the key presence in the working tree.
func (s CommitStore) Has(key []byte) (bool, error) {
	return s.tree.Has(key), nil
}

// Set writes to the working tree. The change is not persisted before the
// next Commit. The iavl tree cannot represent a nil value, so it is
// stored as an empty byte slice.
func (s CommitStore) Set(key, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	s.tree.Set(key, value)
	return nil
}

// Delete removes the key from the working tree.
func (s CommitStore) Delete(key []byte) error {
	s.tree.Remove(key)
	return nil
}

// Iterator releases the working tree range [start, end) in ascending
// order.
func (s CommitStore) Iterator(start, end []byte) (store.Iterator, error) {
	iter := newLazyIterator()
	go func() {
		s.tree.IterateRange(start, end, true, iter.add)
		iter.finish()
	}()
	return iter, nil
}

// ReverseIterator releases the same range in descending order.
func (s CommitStore) ReverseIterator(start, end []byte) (store.Iterator, error) {
	iter := newLazyIterator()
	go func() {
		s.tree.IterateRange(start, end, false, iter.add)
		iter.finish()
	}()
	return iter, nil
}

// NewBatch returns a batch that applies its operations to the working
// tree on Write. Durability comes from Commit, not from the batch.
func (s CommitStore) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(s)
}

// CacheWrap branches off an isolated view over the working tree.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Commit persists the working tree as the next version.
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, err
	}
	return store.CommitID{Version: version, Hash: hash}, nil
}

// LoadLatestVersion initializes the working tree from the newest
// persisted version. If there was a crash during the last commit, it is
// guaranteed to return a stable state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	_, err := s.tree.Load()
	return err
}

// LatestVersion returns the identifier of the newest persisted version.
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}
