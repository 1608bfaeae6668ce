package cash

import (
	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/coin"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/migration"
)

func init() {
	migration.MustRegister(1, &SendMsg{}, migration.NoModification)
	migration.MustRegister(1, &UpdateConfigurationMsg{}, migration.NoModification)
}

const (
	maxMemoSize int = 128
	maxRefSize  int = 64
)

// SendMsg transfers the given amount between two wallets.
type SendMsg struct {
	Metadata    *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Source      wagachain.Address   `protobuf:"bytes,2,opt,name=source,proto3,casttype=github.com/wagatoken/wagachain.Address" json:"source,omitempty"`
	Destination wagachain.Address   `protobuf:"bytes,3,opt,name=destination,proto3,casttype=github.com/wagatoken/wagachain.Address" json:"destination,omitempty"`
	Amount      *coin.Coin          `protobuf:"bytes,4,opt,name=amount" json:"amount,omitempty"`
	// Memo is a human readable note attached to the transfer.
	Memo string `protobuf:"bytes,5,opt,name=memo,proto3" json:"memo,omitempty"`
	// Ref is an opaque binary reference, for payment matching.
	Ref []byte `protobuf:"bytes,6,opt,name=ref,proto3" json:"ref,omitempty"`
}

var _ wagachain.Msg = (*SendMsg)(nil)

func (msg *SendMsg) Reset()         { *msg = SendMsg{} }
func (msg *SendMsg) String() string { return proto.CompactTextString(msg) }
func (*SendMsg) ProtoMessage()      {}

func (msg *SendMsg) GetMetadata() *wagachain.Metadata { return msg.Metadata }

func (SendMsg) Path() string {
	return "cash/send"
}

func (msg *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Source", msg.Source.Validate())
	errs = errors.AppendField(errs, "Destination", msg.Destination.Validate())
	if msg.Amount == nil {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrEmpty, "amount is required"))
	} else {
		if err := msg.Amount.Validate(); err != nil {
			errs = errors.AppendField(errs, "Amount", err)
		} else if !msg.Amount.IsPositive() {
			errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "must be positive"))
		}
	}
	if len(msg.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "too long"))
	}
	if len(msg.Ref) > maxRefSize {
		errs = errors.Append(errs, errors.Field("Ref", errors.ErrInput, "too long"))
	}
	return errs
}

// UpdateConfigurationMsg replaces the cash configuration. Must be signed
// by the current configuration owner.
type UpdateConfigurationMsg struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Patch    *Configuration      `protobuf:"bytes,2,opt,name=patch" json:"patch,omitempty"`
}

var _ wagachain.Msg = (*UpdateConfigurationMsg)(nil)

func (msg *UpdateConfigurationMsg) Reset()         { *msg = UpdateConfigurationMsg{} }
func (msg *UpdateConfigurationMsg) String() string { return proto.CompactTextString(msg) }
func (*UpdateConfigurationMsg) ProtoMessage()      {}

func (msg *UpdateConfigurationMsg) GetMetadata() *wagachain.Metadata { return msg.Metadata }

func (UpdateConfigurationMsg) Path() string {
	return "cash/update_configuration"
}

func (msg *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	if msg.Patch == nil {
		errs = errors.Append(errs, errors.Field("Patch", errors.ErrEmpty, "patch is required"))
	} else {
		errs = errors.AppendField(errs, "Patch", msg.Patch.Validate())
	}
	return errs
}
