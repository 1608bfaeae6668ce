package migration

import (
	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/gconf"
)

// Configuration holds the address that is allowed to upgrade package
// schema versions.
type Configuration struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Admin    wagachain.Address   `protobuf:"bytes,2,opt,name=admin,proto3,casttype=github.com/wagatoken/wagachain.Address" json:"admin,omitempty"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Reset()         { *c = Configuration{} }
func (c *Configuration) String() string { return proto.CompactTextString(c) }
func (*Configuration) ProtoMessage()    {}

func (c *Configuration) GetMetadata() *wagachain.Metadata { return c.Metadata }

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Admin", c.Admin.Validate())
	return errs
}

func loadConf(db wagachain.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, "migration", &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// CurrentAdmin returns the migration admin address as currently
// configured.
func CurrentAdmin(db wagachain.ReadOnlyKVStore) (wagachain.Address, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return conf.Admin, nil
}
