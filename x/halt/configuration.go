package halt

import (
	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/gconf"
	"github.com/wagatoken/wagachain/migration"
)

func init() {
	migration.MustRegister(1, &Configuration{}, migration.NoModification)
}

// Configuration is the halt extension configuration singleton.
type Configuration struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	// Admin is allowed to pause and resume the chain.
	Admin wagachain.Address `protobuf:"bytes,2,opt,name=admin,proto3,casttype=github.com/wagatoken/wagachain.Address" json:"admin,omitempty"`
	// Paused suspends all mutating entry points while set.
	Paused bool `protobuf:"varint,3,opt,name=paused,proto3" json:"paused,omitempty"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Reset()         { *c = Configuration{} }
func (c *Configuration) String() string { return proto.CompactTextString(c) }
func (*Configuration) ProtoMessage()    {}

func (c *Configuration) GetMetadata() *wagachain.Metadata { return c.Metadata }

func (c *Configuration) GetOwner() wagachain.Address { return c.Admin }

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Admin", c.Admin.Validate())
	return errs
}
