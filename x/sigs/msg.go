package sigs

import (
	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/migration"
)

func init() {
	migration.MustRegister(1, &BumpSequenceMsg{}, migration.NoModification)
}

const (
	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

// BumpSequenceMsg increments the sequence (nonce) of the main signer by
// the given amount, invalidating any transaction pre-signed with a lower
// sequence value.
type BumpSequenceMsg struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	// Increment is the total increment value, including the one that any
	// transaction processing causes.
	Increment uint32 `protobuf:"varint,2,opt,name=increment,proto3" json:"increment,omitempty"`
}

var _ wagachain.Msg = (*BumpSequenceMsg)(nil)

func (msg *BumpSequenceMsg) Reset()         { *msg = BumpSequenceMsg{} }
func (msg *BumpSequenceMsg) String() string { return proto.CompactTextString(msg) }
func (*BumpSequenceMsg) ProtoMessage()      {}

func (msg *BumpSequenceMsg) GetMetadata() *wagachain.Metadata { return msg.Metadata }

func (msg *BumpSequenceMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	if msg.Increment < minSequenceIncrement {
		errs = errors.Append(errs, errors.Field("Increment", errors.ErrMsg, "increment must be at least %d", minSequenceIncrement))
	}
	if msg.Increment > maxSequenceIncrement {
		errs = errors.Append(errs, errors.Field("Increment", errors.ErrMsg, "increment must not be greater than %d", maxSequenceIncrement))
	}
	return errs
}

func (BumpSequenceMsg) Path() string {
	return "sigs/bump_sequence"
}
