package wagachain

import (
	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain/errors"
)

// Metadata is carried by every persistent entity and every message. The
// schema version allows data migrations to upgrade old payloads in place.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

var _ proto.Message = (*Metadata)(nil)

func (m *Metadata) Reset()         { *m = Metadata{} }
func (m *Metadata) String() string { return proto.CompactTextString(m) }
func (*Metadata) ProtoMessage()    {}

func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema must be greater than zero")
	}
	return nil
}

func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	return &Metadata{Schema: m.Schema}
}
