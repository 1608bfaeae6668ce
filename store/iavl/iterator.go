package iavl

import (
	"sync"

	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/store"
)

// lazyIterator receives the tree walk over a channel, so that the
// recursive IterateRange callback can be consumed one item at a time.
type lazyIterator struct {
	read chan store.Model
	stop chan struct{}
	once sync.Once
}

var _ store.Iterator = (*lazyIterator)(nil)

func newLazyIterator() *lazyIterator {
	return &lazyIterator{
		read: make(chan store.Model),
		stop: make(chan struct{}),
	}
}

// add feeds one pair into the iterator. It returns true once the
// consumer released the iterator, which stops the tree walk.
func (i *lazyIterator) add(key, value []byte) bool {
	select {
	case i.read <- store.Model{Key: key, Value: value}:
		return false
	case <-i.stop:
		return true
	}
}

// finish marks the end of the tree walk. Called by the producing
// goroutine only.
func (i *lazyIterator) finish() {
	close(i.read)
}

func (i *lazyIterator) Next() ([]byte, []byte, error) {
	select {
	case data, hasMore := <-i.read:
		if !hasMore {
			return nil, nil, errors.ErrIteratorDone
		}
		return data.Key, data.Value, nil
	case <-i.stop:
		return nil, nil, errors.ErrIteratorDone
	}
}

func (i *lazyIterator) Release() {
	i.once.Do(func() {
		close(i.stop)
	})
}
