package store

import (
	"bytes"
	"sync"

	"github.com/google/btree"

	"github.com/wagatoken/wagachain/errors"
)

// btreeIter walks the btree in its own goroutine and feeds items over a
// channel, so that the recursive tree walk can be consumed step by step.
type btreeIter struct {
	data    btree.Item
	hasMore bool
	read    <-chan btree.Item
	stop    chan<- struct{}
	once    sync.Once
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

func ascendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	read := make(chan btree.Item)
	// ensure we never block when we call close()
	stop := make(chan struct{}, 1)
	iter := &btreeIter{
		read: read,
		stop: stop,
	}

	insert := func(item btree.Item) bool {
		select {
		case read <- item:
			return true
		case <-stop:
			close(read)
			return false
		}
	}

	go func() {
		if start == nil && end == nil {
			bt.Ascend(insert)
		} else if start == nil { // end != nil
			bt.AscendLessThan(bkey{end}, insert)
		} else if end == nil { // start != nil
			bt.AscendGreaterOrEqual(bkey{start}, insert)
		} else { // both != nil
			bt.AscendRange(bkey{start}, bkey{end}, insert)
		}
		close(read)
	}()

	iter.next()
	return iter
}

func descendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	read := make(chan btree.Item)
	// ensure we never block when we call close()
	stop := make(chan struct{}, 1)
	iter := &btreeIter{
		read: read,
		stop: stop,
	}

	insert := func(item btree.Item) bool {
		select {
		case read <- item:
			return true
		case <-stop:
			close(read)
			return false
		}
	}

	go func() {
		if start == nil && end == nil {
			bt.Descend(insert)
		} else if start == nil { // end != nil
			bt.DescendLessOrEqual(bkeyLess{end}, insert)
		} else if end == nil { // start != nil
			bt.DescendGreaterThan(bkeyLess{start}, insert)
		} else { // both != nil
			bt.DescendRange(bkeyLess{end}, bkeyLess{start}, insert)
		}
		close(read)
	}()

	iter.next()
	return iter
}

// wrap combines the btree iterator with the parent store iterator,
// resolving overwrites and deletes in favor of the cache. With reverse
// set both sources are expected to release keys in descending order.
func (b *btreeIter) wrap(parentIter Iterator, reverse bool) (*itemIter, error) {
	iter := &itemIter{
		wrap:    b,
		parent:  parentIter,
		reverse: reverse,
	}
	if err := iter.pullParent(); err != nil {
		iter.Release()
		return nil, err
	}
	return iter, nil
}

func (b *btreeIter) next() {
	b.data, b.hasMore = <-b.read
}

func (b *btreeIter) close() {
	b.once.Do(func() {
		b.stop <- struct{}{}
	})
}

// get requires this is valid, gets what we are pointing at
func (b *btreeIter) get() keyer {
	return b.data.(keyer)
}

func (b *btreeIter) valid() bool {
	return b.hasMore
}

// itemIter merges the cache btree entries with the parent store range.
// The parent iterator releases items on demand, so we keep a one item
// lookahead of it.
type itemIter struct {
	wrap    *btreeIter
	parent  Iterator
	reverse bool

	parentKey   []byte
	parentValue []byte
	parentDone  bool
}

var _ Iterator = (*itemIter)(nil)

// Next returns the subsequent key-value pair of the merged range, or
// ErrIteratorDone once both sources are exhausted.
func (i *itemIter) Next() ([]byte, []byte, error) {
	if err := i.skipAllDeleted(); err != nil {
		return nil, nil, err
	}

	switch i.firstKey() {
	case us:
		item := i.wrap.get().(setItem)
		i.wrap.next()
		return item.key, item.value, nil
	case both:
		// our cache overwrites the parent value for the same key
		item := i.wrap.get().(setItem)
		i.wrap.next()
		if err := i.pullParent(); err != nil {
			return nil, nil, err
		}
		return item.key, item.value, nil
	case parent:
		key, value := i.parentKey, i.parentValue
		if err := i.pullParent(); err != nil {
			return nil, nil, err
		}
		return key, value, nil
	default: // none
		return nil, nil, errors.ErrIteratorDone
	}
}

// Release frees both underlying iterators. It is a synchronous
// operation, the btree walking goroutine stops before returning.
func (i *itemIter) Release() {
	if i.parent != nil {
		i.parent.Release()
	}
	i.wrap.close()
}

// pullParent advances the one item lookahead of the parent iterator.
func (i *itemIter) pullParent() error {
	if i.parentDone || i.parent == nil {
		i.parentDone = true
		return nil
	}
	key, value, err := i.parent.Next()
	switch {
	case err == nil:
		i.parentKey, i.parentValue = key, value
	case errors.ErrIteratorDone.Is(err):
		i.parentDone = true
		i.parentKey, i.parentValue = nil, nil
	default:
		return err
	}
	return nil
}

// skipAllDeleted loops and skips any number of deleted items
func (i *itemIter) skipAllDeleted() error {
	var err error
	more := true
	for more {
		more, err = i.skipDeleted()
		if err != nil {
			return err
		}
	}
	return nil
}

// skipDeleted jumps over all elements we can safely fast forward:
// returns true if skipped, so we can skip again.
func (i *itemIter) skipDeleted() (bool, error) {
	src := i.firstKey()
	if src == us || src == both {
		// if our next is deleted, advance...
		if _, ok := i.wrap.get().(deletedItem); ok {
			i.wrap.next()
			// if parent had the same key, advance parent as well
			if src == both {
				if err := i.pullParent(); err != nil {
					return false, err
				}
			}
			return true, nil
		}
	}
	return false, nil
}

// firstKey selects the iterator with the lowest key, if any
func (i *itemIter) firstKey() source {
	// if only one or none is valid, it is clear which to use
	if i.parentDone {
		if !i.wrap.valid() {
			return none
		}
		return us
	} else if !i.wrap.valid() {
		return parent
	}

	// both are valid... compare keys....
	usKey := i.wrap.get().Key()

	cmp := bytes.Compare(i.parentKey, usKey)
	if i.reverse {
		cmp = -cmp
	}
	if cmp < 0 {
		return parent
	} else if cmp > 0 {
		return us
	}
	return both
}
