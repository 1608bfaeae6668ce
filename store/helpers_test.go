package store

import (
	"testing"

	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/wagatest/assert"
)

// TestSliceIterator makes sure the basic slice iterator works.
func TestSliceIterator(t *testing.T) {
	const size = 10

	ks := randKeys(size, 8)
	vs := randKeys(size, 40)

	models := make([]Model, size)
	for i := 0; i < size; i++ {
		models[i].Key = ks[i]
		models[i].Value = vs[i]
	}

	// make sure proper iteration works
	iter := NewSliceIterator(models)
	for i := 0; i < size; i++ {
		key, value, err := iter.Next()
		assert.Nil(t, err)
		assert.Equal(t, ks[i], key)
		assert.Equal(t, vs[i], value)
	}
	if _, _, err := iter.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("expected the iterator to be exhausted, got %+v", err)
	}

	// a released iterator reports an exhausted range
	trash := NewSliceIterator(models)
	if _, _, err := trash.Next(); err != nil {
		t.Fatalf("fresh iterator must be valid, got %+v", err)
	}
	trash.Release()
	if _, _, err := trash.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("released iterator must be done, got %+v", err)
	}
}

func TestNonAtomicBatchCollectsOps(t *testing.T) {
	out := MemStore()
	batch := NewNonAtomicBatch(out)

	assert.Nil(t, batch.Set([]byte("a"), []byte("1")))
	assert.Nil(t, batch.Delete([]byte("b")))

	ops := batch.ShowOps()
	assert.Equal(t, 2, len(ops))
	assert.Equal(t, true, ops[0].IsSetOp())
	assert.Equal(t, false, ops[1].IsSetOp())

	assert.Nil(t, batch.Write())
	val, err := out.Get([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("1"), val)

	// the batch is reset after a write
	assert.Equal(t, 0, len(batch.ShowOps()))
}
