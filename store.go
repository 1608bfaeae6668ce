package wagachain

// ReadOnlyKVStore is the read side of the key-value store.
type ReadOnlyKVStore interface {
	// Get returns nil when the key does not exist.
	Get(key []byte) ([]byte, error)

	Has(key []byte) (bool, error)

	// Iterator releases items with keys in [start, end), in ascending
	// order. A nil start iterates from the first key, a nil end through
	// the last one.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator releases the same range in descending order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write side of the key-value store.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the store handlers work against. Writes are visible to
// subsequent reads within the same store view.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter

	// NewBatch returns a collector that applies all recorded writes
	// atomically on Write.
	NewBatch() Batch
}

// Batch collects writes to apply them in one atomic step.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator walks a key range. Once exhausted or no longer needed it must be
// released.
type Iterator interface {
	// Next returns the subsequent key-value pair, or ErrIteratorDone
	// when the range is exhausted.
	Next() (key, value []byte, err error)

	Release()
}

// CacheableKVStore can branch off an isolated view of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is an isolated view of a store. All writes stay invisible to
// the parent until Write is called; Discard throws them away. This is what
// makes every transaction an all-or-nothing state transition. Cache wraps
// nest, so a savepoint can branch off another savepoint.
type KVCacheWrap interface {
	CacheableKVStore

	// Write flushes the accumulated writes into the parent store.
	Write() error

	// Discard drops the accumulated writes.
	Discard()
}

// CommitKVStore manages persisted versions of the application state.
type CommitKVStore interface {
	// Get returns the value from the latest committed version.
	Get(key []byte) ([]byte, error)

	// CacheWrap branches off a view to accumulate one block of changes.
	CacheWrap() KVCacheWrap

	// Commit persists the pending changes and returns the new version.
	Commit() (CommitID, error)

	// LoadLatestVersion initializes the store from its newest persisted
	// version.
	LoadLatestVersion() error

	// LatestVersion returns the identifier of the newest persisted
	// version.
	LatestVersion() (CommitID, error)
}

// CommitID identifies one persisted version of the state together with its
// merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
