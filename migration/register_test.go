package migration

import (
	"testing"

	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/store"
	"github.com/wagatoken/wagachain/wagatest/assert"
)

// counterPayload is a minimal migratable payload used throughout the
// tests of this package.
type counterPayload struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Total    int64               `protobuf:"varint,2,opt,name=total,proto3" json:"total,omitempty"`
}

func (p *counterPayload) Reset()         { *p = counterPayload{} }
func (p *counterPayload) String() string { return proto.CompactTextString(p) }
func (*counterPayload) ProtoMessage()    {}

func (p *counterPayload) GetMetadata() *wagachain.Metadata { return p.Metadata }

// Path lets a counterPayload double as a message in handler tests.
func (*counterPayload) Path() string { return "migration/counter" }

func (p *counterPayload) Validate() error {
	if err := p.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if p.Total < 0 {
		return errors.Wrap(errors.ErrModel, "negative total")
	}
	return nil
}

func TestApplyWalksAllVersions(t *testing.T) {
	reg := newRegister()
	reg.MustRegister(1, &counterPayload{}, NoModification)
	reg.MustRegister(2, &counterPayload{}, func(db wagachain.ReadOnlyKVStore, m Migratable) error {
		m.(*counterPayload).Total += 10
		return nil
	})
	reg.MustRegister(3, &counterPayload{}, func(db wagachain.ReadOnlyKVStore, m Migratable) error {
		m.(*counterPayload).Total *= 2
		return nil
	})

	db := store.MemStore()
	p := counterPayload{
		Metadata: &wagachain.Metadata{Schema: 1},
		Total:    1,
	}
	assert.Nil(t, reg.Apply(db, &p, 3))
	// (1 + 10) * 2
	assert.Equal(t, int64(22), p.Total)
	assert.Equal(t, uint32(3), p.Metadata.Schema)
}

func TestApplyIsNoopWhenUpToDate(t *testing.T) {
	reg := newRegister()
	reg.MustRegister(1, &counterPayload{}, NoModification)
	reg.MustRegister(2, &counterPayload{}, func(db wagachain.ReadOnlyKVStore, m Migratable) error {
		m.(*counterPayload).Total += 10
		return nil
	})

	db := store.MemStore()
	p := counterPayload{
		Metadata: &wagachain.Metadata{Schema: 2},
		Total:    5,
	}
	assert.Nil(t, reg.Apply(db, &p, 2))
	assert.Equal(t, int64(5), p.Total)
	assert.Equal(t, uint32(2), p.Metadata.Schema)
}

func TestApplyMissingMigration(t *testing.T) {
	reg := newRegister()
	reg.MustRegister(1, &counterPayload{}, NoModification)

	db := store.MemStore()
	p := counterPayload{
		Metadata: &wagachain.Metadata{Schema: 1},
	}
	err := reg.Apply(db, &p, 2)
	assert.IsErr(t, errors.ErrState, err)
}

func TestApplyRequiresMetadata(t *testing.T) {
	reg := newRegister()
	reg.MustRegister(1, &counterPayload{}, NoModification)

	db := store.MemStore()
	err := reg.Apply(db, &counterPayload{}, 1)
	assert.IsErr(t, errors.ErrMetadata, err)

	err = reg.Apply(db, &counterPayload{Metadata: &wagachain.Metadata{Schema: 0}}, 1)
	assert.IsErr(t, errors.ErrMetadata, err)
}

func TestApplyValidatesFinalPayload(t *testing.T) {
	reg := newRegister()
	reg.MustRegister(1, &counterPayload{}, NoModification)
	reg.MustRegister(2, &counterPayload{}, func(db wagachain.ReadOnlyKVStore, m Migratable) error {
		m.(*counterPayload).Total = -1
		return nil
	})

	db := store.MemStore()
	p := counterPayload{
		Metadata: &wagachain.Metadata{Schema: 1},
	}
	if err := reg.Apply(db, &p, 2); err == nil {
		t.Fatal("migration to an invalid state must fail")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	reg := newRegister()
	reg.MustRegister(1, &counterPayload{}, NoModification)
	err := reg.Register(1, &counterPayload{}, NoModification)
	assert.IsErr(t, errors.ErrDuplicate, err)
}
