package role

import (
	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/migration"
)

func init() {
	migration.MustRegister(1, &GrantMsg{}, migration.NoModification)
	migration.MustRegister(1, &RevokeMsg{}, migration.NoModification)
	migration.MustRegister(1, &UpdateConfigurationMsg{}, migration.NoModification)
}

// GrantMsg adds capabilities to an address. Must be signed by the role
// admin.
type GrantMsg struct {
	Metadata     *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Address      wagachain.Address   `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/wagatoken/wagachain.Address" json:"address,omitempty"`
	Capabilities []string            `protobuf:"bytes,3,rep,name=capabilities" json:"capabilities,omitempty"`
}

var _ wagachain.Msg = (*GrantMsg)(nil)

func (msg *GrantMsg) Reset()         { *msg = GrantMsg{} }
func (msg *GrantMsg) String() string { return proto.CompactTextString(msg) }
func (*GrantMsg) ProtoMessage()      {}

func (msg *GrantMsg) GetMetadata() *wagachain.Metadata { return msg.Metadata }

func (GrantMsg) Path() string {
	return "role/grant"
}

func (msg *GrantMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Address", msg.Address.Validate())
	errs = errors.Append(errs, validateCapabilities(msg.Capabilities))
	return errs
}

// RevokeMsg removes capabilities from an address. Must be signed by the
// role admin. Revoking the last capability removes the role record.
type RevokeMsg struct {
	Metadata     *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Address      wagachain.Address   `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/wagatoken/wagachain.Address" json:"address,omitempty"`
	Capabilities []string            `protobuf:"bytes,3,rep,name=capabilities" json:"capabilities,omitempty"`
}

var _ wagachain.Msg = (*RevokeMsg)(nil)

func (msg *RevokeMsg) Reset()         { *msg = RevokeMsg{} }
func (msg *RevokeMsg) String() string { return proto.CompactTextString(msg) }
func (*RevokeMsg) ProtoMessage()      {}

func (msg *RevokeMsg) GetMetadata() *wagachain.Metadata { return msg.Metadata }

func (RevokeMsg) Path() string {
	return "role/revoke"
}

func (msg *RevokeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Address", msg.Address.Validate())
	errs = errors.Append(errs, validateCapabilities(msg.Capabilities))
	return errs
}

func validateCapabilities(caps []string) error {
	if len(caps) == 0 {
		return errors.Field("Capabilities", errors.ErrEmpty, "at least one capability is required")
	}
	var errs error
	for _, c := range caps {
		if !isCapability(c) {
			errs = errors.Append(errs, errors.Field("Capabilities", errors.ErrInput, "invalid capability name %q", c))
		}
	}
	return errs
}

// UpdateConfigurationMsg replaces the role configuration. Must be signed
// by the current admin.
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
	return "role/update_configuration"
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
