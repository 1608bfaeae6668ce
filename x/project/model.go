package project

import (
	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/migration"
	"github.com/wagatoken/wagachain/orm"
)

func init() {
	migration.MustRegister(1, &Project{}, migration.NoModification)
}

// BucketName is where the project records are stored.
const BucketName = "proj"

// maxRefSize bounds the opaque off-chain references.
const maxRefSize = 128

// Project is one development project backing a grant.
type Project struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	// GrantID links back to the grant this project was registered for.
	GrantID []byte `protobuf:"bytes,2,opt,name=grant_id,json=grantId,proto3" json:"grant_id,omitempty"`
	// MetadataRef is an opaque content identifier of the off-chain
	// project description.
	MetadataRef string `protobuf:"bytes,3,opt,name=metadata_ref,json=metadataRef,proto3" json:"metadata_ref,omitempty"`
	// ProjectedYield is the projected production yield declared at
	// registration, in domain units.
	ProjectedYield int64 `protobuf:"varint,4,opt,name=projected_yield,json=projectedYield,proto3" json:"projected_yield,omitempty"`
	// Stage counts the validated milestones of the linked grant.
	Stage uint32 `protobuf:"varint,5,opt,name=stage,proto3" json:"stage,omitempty"`
	// Delivered is set when the final milestone was validated.
	Delivered bool `protobuf:"varint,6,opt,name=delivered,proto3" json:"delivered,omitempty"`
	// EvidenceRef is the evidence reference of the latest stage advance.
	EvidenceRef string `protobuf:"bytes,7,opt,name=evidence_ref,json=evidenceRef,proto3" json:"evidence_ref,omitempty"`
}

var _ orm.Model = (*Project)(nil)

func (p *Project) Reset()         { *p = Project{} }
func (p *Project) String() string { return proto.CompactTextString(p) }
func (*Project) ProtoMessage()    {}

func (p *Project) GetMetadata() *wagachain.Metadata { return p.Metadata }

func (p *Project) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", p.Metadata.Validate())
	if len(p.GrantID) == 0 {
		errs = errors.Append(errs, errors.Field("GrantID", errors.ErrEmpty, "grant reference is required"))
	}
	if p.MetadataRef == "" {
		errs = errors.Append(errs, errors.Field("MetadataRef", errors.ErrEmpty, "metadata reference is required"))
	}
	if len(p.MetadataRef) > maxRefSize {
		errs = errors.Append(errs, errors.Field("MetadataRef", errors.ErrInput, "too long"))
	}
	if len(p.EvidenceRef) > maxRefSize {
		errs = errors.Append(errs, errors.Field("EvidenceRef", errors.ErrInput, "too long"))
	}
	if p.ProjectedYield < 0 {
		errs = errors.Append(errs, errors.Field("ProjectedYield", errors.ErrAmount, "cannot be negative"))
	}
	return errs
}

// ProjectBucket stores the projects with sequence generated ids.
type ProjectBucket struct {
	orm.ModelBucket
}

// NewProjectBucket creates the proper bucket for this extension.
func NewProjectBucket() ProjectBucket {
	b := orm.NewModelBucket(BucketName, &Project{},
		orm.WithIDSequence(orm.NewSequence(BucketName, "id")),
	)
	return ProjectBucket{
		ModelBucket: migration.NewModelBucket("project", b),
	}
}

// RegisterQuery registers the project bucket under /projects.
func RegisterQuery(qr wagachain.QueryRouter) {
	NewProjectBucket().Register("projects", qr)
}
