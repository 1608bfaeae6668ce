package grant

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

// Configuration is the gconf managed grant extension setup.
type Configuration struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	// Owner is the only address that may update this configuration and
	// run the privileged grant operations.
	Owner wagachain.Address `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/wagatoken/wagachain.Address" json:"owner,omitempty"`
	// Treasury is the source of all grant funding and the destination of
	// the revenue share payments.
	Treasury wagachain.Address `protobuf:"bytes,3,opt,name=treasury,proto3,casttype=github.com/wagatoken/wagachain.Address" json:"treasury,omitempty"`
	// MinAmount is the smallest grant that can be created.
	MinAmount coin.Coin `protobuf:"bytes,4,opt,name=min_amount,json=minAmount" json:"min_amount"`
	// MaxRevenueShareBps caps the revenue share of new grants.
	MaxRevenueShareBps uint32 `protobuf:"varint,5,opt,name=max_revenue_share_bps,json=maxRevenueShareBps,proto3" json:"max_revenue_share_bps,omitempty"`
	// MaxDurationYears caps the grant lifetime.
	MaxDurationYears uint32 `protobuf:"varint,6,opt,name=max_duration_years,json=maxDurationYears,proto3" json:"max_duration_years,omitempty"`
	// SelfValidation lets the beneficiary's own evidence submission
	// approve a milestone without a separate validator decision.
	SelfValidation bool `protobuf:"varint,7,opt,name=self_validation,json=selfValidation,proto3" json:"self_validation,omitempty"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Reset()         { *c = Configuration{} }
func (c *Configuration) String() string { return proto.CompactTextString(c) }
func (*Configuration) ProtoMessage()    {}

// GetOwner implements gconf.OwnedConfig.
func (c *Configuration) GetOwner() wagachain.Address { return c.Owner }

func (c *Configuration) GetMetadata() *wagachain.Metadata { return c.Metadata }

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	errs = errors.AppendField(errs, "Treasury", c.Treasury.Validate())
	errs = errors.AppendField(errs, "MinAmount", c.MinAmount.Validate())
	if c.MaxRevenueShareBps > fullShareBps {
		errs = errors.Append(errs, errors.Field("MaxRevenueShareBps", errors.ErrInput, "cannot exceed %d", fullShareBps))
	}
	if c.MaxDurationYears == 0 {
		errs = errors.Append(errs, errors.Field("MaxDurationYears", errors.ErrInput, "must be positive"))
	}
	return errs
}

func loadConf(db gconf.Store) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, "grant", &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
