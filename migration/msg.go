package migration

import (
	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
)

func init() {
	MustRegister(1, &UpgradeSchemaMsg{}, NoModification)
}

// UpgradeSchemaMsg bumps the schema version of the given package by one.
type UpgradeSchemaMsg struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Pkg      string              `protobuf:"bytes,2,opt,name=pkg,proto3" json:"pkg,omitempty"`
}

var _ wagachain.Msg = (*UpgradeSchemaMsg)(nil)

func (msg *UpgradeSchemaMsg) Reset()         { *msg = UpgradeSchemaMsg{} }
func (msg *UpgradeSchemaMsg) String() string { return proto.CompactTextString(msg) }
func (*UpgradeSchemaMsg) ProtoMessage()      {}

func (msg *UpgradeSchemaMsg) GetMetadata() *wagachain.Metadata { return msg.Metadata }

func (msg *UpgradeSchemaMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	if msg.Pkg == "" {
		errs = errors.AppendField(errs, "Pkg", errors.Wrap(errors.ErrEmpty, "pkg is required"))
	}
	return errs
}

func (UpgradeSchemaMsg) Path() string {
	return "migration/upgrade_schema"
}
