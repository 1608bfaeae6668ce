package iavl

import (
	"testing"

	"github.com/wagatoken/wagachain/store"
)

func commitSuite() *store.TestSuite {
	return store.NewTestSuite(func() (store.CacheableKVStore, func()) {
		return MockCommitStore(), func() {}
	})
}

func TestCommitStoreGetSet(t *testing.T) {
	commitSuite().GetSet(t)
}

func TestCommitStoreCacheConflicts(t *testing.T) {
	commitSuite().CacheConflicts(t)
}

func TestCommitStoreFuzzIterator(t *testing.T) {
	commitSuite().FuzzIterator(t)
}

func TestCommitStoreIteratorWithConflicts(t *testing.T) {
	commitSuite().IteratorWithConflicts(t)
}

func TestCommitPersistsState(t *testing.T) {
	db := MockCommitStore()

	if err := db.Set([]byte("grant"), []byte("1")); err != nil {
		t.Fatalf("cannot write: %s", err)
	}
	id, err := db.Commit()
	if err != nil {
		t.Fatalf("cannot commit: %s", err)
	}
	if id.Version != 1 {
		t.Fatalf("want version 1, got %d", id.Version)
	}
	if len(id.Hash) == 0 {
		t.Fatal("commit must produce a state hash")
	}

	latest, err := db.LatestVersion()
	if err != nil {
		t.Fatalf("cannot read latest version: %s", err)
	}
	if latest.Version != id.Version {
		t.Fatalf("want version %d, got %d", id.Version, latest.Version)
	}
}
