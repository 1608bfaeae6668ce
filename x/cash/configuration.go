package cash

import (
	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/coin"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/gconf"
	"github.com/wagatoken/wagachain/migration"
)

func init() {
	migration.MustRegister(1, &Configuration{}, migration.NoModification)
}

// Configuration is the cash extension configuration singleton.
type Configuration struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	// Owner is allowed to update the configuration.
	Owner wagachain.Address `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/wagatoken/wagachain.Address" json:"owner,omitempty"`
	// CollectorAddress is the address that receives all fees.
	CollectorAddress wagachain.Address `protobuf:"bytes,3,opt,name=collector_address,json=collectorAddress,proto3,casttype=github.com/wagatoken/wagachain.Address" json:"collector_address,omitempty"`
	// MinimalFee is the minimal fee every transaction must pay. A zero
	// value disables the fee charging.
	MinimalFee coin.Coin `protobuf:"bytes,4,opt,name=minimal_fee,json=minimalFee" json:"minimal_fee"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Reset()         { *c = Configuration{} }
func (c *Configuration) String() string { return proto.CompactTextString(c) }
func (*Configuration) ProtoMessage()    {}

func (c *Configuration) GetMetadata() *wagachain.Metadata { return c.Metadata }

func (c *Configuration) GetOwner() wagachain.Address { return c.Owner }

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	errs = errors.AppendField(errs, "CollectorAddress", c.CollectorAddress.Validate())
	if !c.MinimalFee.IsZero() {
		errs = errors.AppendField(errs, "MinimalFee", c.MinimalFee.Validate())
		if !c.MinimalFee.IsNonNegative() {
			errs = errors.Append(errs, errors.Field("MinimalFee", errors.ErrState, "cannot be negative"))
		}
	}
	return errs
}

func mustLoadConf(db gconf.ReadStore) Configuration {
	var conf Configuration
	if err := gconf.Load(db, "cash", &conf); err != nil {
		err = errors.Wrap(err, "load configuration")
		panic(err)
	}
	return conf
}
