package wagatest

import (
	"encoding/binary"
)

// SequenceID returns the sequence value in its raw, big endian format, as
// used for the primary keys of all sequence driven buckets.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
