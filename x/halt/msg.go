package halt

import (
	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/migration"
)

func init() {
	migration.MustRegister(1, &UpdateConfigurationMsg{}, migration.NoModification)
}

// UpdateConfigurationMsg replaces the halt configuration. Must be signed
// by the current admin. This is the only message processed while the
// chain is paused.
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
	return "halt/update_configuration"
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
