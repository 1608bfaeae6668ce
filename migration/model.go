package migration

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/orm"
)

func init() {
	MustRegister(1, &Schema{}, NoModification)
}

// Schema declares the maintained schema version of a single package.
type Schema struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Pkg      string              `protobuf:"bytes,2,opt,name=pkg,proto3" json:"pkg,omitempty"`
	Version  uint32              `protobuf:"varint,3,opt,name=version,proto3" json:"version,omitempty"`
}

var _ orm.Model = (*Schema)(nil)
var _ Migratable = (*Schema)(nil)

func (s *Schema) Reset()         { *s = Schema{} }
func (s *Schema) String() string { return proto.CompactTextString(s) }
func (*Schema) ProtoMessage()    {}

func (s *Schema) GetMetadata() *wagachain.Metadata { return s.Metadata }

func (s *Schema) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if s.Version < 1 {
		return errors.Wrap(errors.ErrModel, "version must be greater than zero")
	}
	if s.Pkg == "" {
		return errors.Wrap(errors.ErrModel, "pkg is required")
	}
	return nil
}

// schemaID returns a deterministic ID of this schema instance. Created
// IDs can be sorted using lexicographical order from the lowest to the
// highest version.
func schemaID(pkg string, version uint32) []byte {
	raw := make([]byte, len(pkg)+4)
	copy(raw, pkg)
	binary.BigEndian.PutUint32(raw[len(pkg):], version)
	return raw
}

// SchemaBucket maintains the current schema version of every package. It
// cannot itself rely on the schema migrating bucket implementation
// because that would be a circular dependency.
type SchemaBucket struct {
	b orm.ModelBucket
}

func NewSchemaBucket() *SchemaBucket {
	return &SchemaBucket{
		b: orm.NewModelBucket("schema", &Schema{}),
	}
}

// CurrentSchema returns the current schema version of a given package. It
// returns ErrNotFound if no schema version was registered for this
// package. The minimum schema version is 1.
func (b *SchemaBucket) CurrentSchema(db wagachain.ReadOnlyKVStore, packageName string) (uint32, error) {
	for ver := uint32(1); ver < 10000; ver++ {
		err := b.b.Has(db, schemaID(packageName, ver))
		switch {
		case err == nil:
			continue
		case errors.ErrNotFound.Is(err):
			if ver == 1 {
				return 0, errors.Wrap(errors.ErrNotFound, "not initialized")
			}
			return ver - 1, nil
		default:
			return 0, errors.Wrap(err, "bucket has")
		}
	}
	return 0, errors.Wrap(errors.ErrState, "version too high")
}

// Create adds the given schema instance to the store. Schema versioning
// is sequential, only the next version can be created.
func (b *SchemaBucket) Create(db wagachain.KVStore, s *Schema) ([]byte, error) {
	if err := b.validateNextSchema(db, s); err != nil {
		return nil, err
	}
	return b.b.Put(db, schemaID(s.Pkg, s.Version), s)
}

// validateNextSchema returns an error if the given Schema instance does
// not represent the next valid schema version.
func (b *SchemaBucket) validateNextSchema(db wagachain.ReadOnlyKVStore, next *Schema) error {
	ver, err := b.CurrentSchema(db, next.Pkg)
	if err != nil {
		if !errors.ErrNotFound.Is(err) {
			return errors.Wrap(err, "current schema")
		}
		if next.Version != 1 {
			return errors.Wrap(errors.ErrInput, "schema not initialized with version 1")
		}
		return nil
	}
	if ver+1 != next.Version {
		return errors.Wrapf(errors.ErrDuplicate, "previous schema is %d", ver)
	}
	return nil
}

// MustInitPkg initializes schema versioning for the given package names
// by registering a version one schema. This function panics if not
// successful. It is safe to call many times as duplicate registrations
// are ignored.
func MustInitPkg(db wagachain.KVStore, packageNames ...string) {
	b := NewSchemaBucket()
	for _, name := range packageNames {
		_, err := b.Create(db, &Schema{
			Metadata: &wagachain.Metadata{Schema: 1},
			Pkg:      name,
			Version:  1,
		})
		// Duplicated initializations are ignored.
		if err != nil && !errors.ErrDuplicate.Is(err) {
			panic(errors.Wrap(err, name))
		}
	}
}

// RegisterQuery registers the schema bucket for querying.
func RegisterQuery(qr wagachain.QueryRouter) {
	NewSchemaBucket().b.Register("schemas", qr)
}
