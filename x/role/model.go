package role

import (
	"regexp"

	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/migration"
	"github.com/wagatoken/wagachain/orm"
)

func init() {
	migration.MustRegister(1, &Roles{}, migration.NoModification)
}

// BucketName is where the role assignments are stored.
const BucketName = "roles"

// isCapability restricts capability names to short lowercase identifiers.
var isCapability = regexp.MustCompile(`^[a-z_]{2,32}$`).MatchString

// Roles is the set of capabilities granted to a single address.
type Roles struct {
	Metadata     *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Address      wagachain.Address   `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/wagatoken/wagachain.Address" json:"address,omitempty"`
	Capabilities []string            `protobuf:"bytes,3,rep,name=capabilities" json:"capabilities,omitempty"`
}

var _ orm.Model = (*Roles)(nil)

func (r *Roles) Reset()         { *r = Roles{} }
func (r *Roles) String() string { return proto.CompactTextString(r) }
func (*Roles) ProtoMessage()    {}

func (r *Roles) GetMetadata() *wagachain.Metadata { return r.Metadata }

func (r *Roles) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", r.Metadata.Validate())
	errs = errors.AppendField(errs, "Address", r.Address.Validate())
	if len(r.Capabilities) == 0 {
		errs = errors.Append(errs, errors.Field("Capabilities", errors.ErrEmpty, "at least one capability is required"))
	}
	for _, c := range r.Capabilities {
		if !isCapability(c) {
			errs = errors.Append(errs, errors.Field("Capabilities", errors.ErrInput, "invalid capability name %q", c))
		}
	}
	return errs
}

// Has returns true if this set contains the given capability.
func (r *Roles) Has(capability string) bool {
	for _, c := range r.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// RolesBucket stores capability sets keyed by address.
type RolesBucket struct {
	orm.ModelBucket
}

// NewRolesBucket creates the proper bucket for this extension.
func NewRolesBucket() RolesBucket {
	return RolesBucket{
		ModelBucket: migration.NewModelBucket("role",
			orm.NewModelBucket(BucketName, &Roles{})),
	}
}

// HasCapability returns true if the address holds the given capability.
// An address without any role record holds nothing.
func HasCapability(db wagachain.ReadOnlyKVStore, addr wagachain.Address, capability string) (bool, error) {
	var roles Roles
	switch err := NewRolesBucket().One(db, addr, &roles); {
	case err == nil:
		return roles.Has(capability), nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, errors.Wrap(err, "load roles")
	}
}

// RegisterQuery registers the roles bucket under /roles.
func RegisterQuery(qr wagachain.QueryRouter) {
	NewRolesBucket().Register("roles", qr)
}
