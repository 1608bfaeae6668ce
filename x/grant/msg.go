package grant

import (
	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/coin"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/migration"
)

func init() {
	migration.MustRegister(1, &CreateMsg{}, migration.NoModification)
	migration.MustRegister(1, &CreateDevelopmentMsg{}, migration.NoModification)
	migration.MustRegister(1, &CreateScheduleMsg{}, migration.NoModification)
	migration.MustRegister(1, &FundMsg{}, migration.NoModification)
	migration.MustRegister(1, &SubmitEvidenceMsg{}, migration.NoModification)
	migration.MustRegister(1, &ValidateMsg{}, migration.NoModification)
	migration.MustRegister(1, &ValidateProofMsg{}, migration.NoModification)
	migration.MustRegister(1, &RecordRevenueMsg{}, migration.NoModification)
	migration.MustRegister(1, &CompleteMsg{}, migration.NoModification)
	migration.MustRegister(1, &UpdateConfigurationMsg{}, migration.NoModification)
}

var _ wagachain.Msg = (*CreateMsg)(nil)

// CreateMsg creates a plain grant. The beneficiary must hold the
// verified role capability.
type CreateMsg struct {
	Metadata    *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Beneficiary wagachain.Address   `protobuf:"bytes,2,opt,name=beneficiary,proto3,casttype=github.com/wagatoken/wagachain.Address" json:"beneficiary,omitempty"`
	Amount      *coin.Coin          `protobuf:"bytes,3,opt,name=amount" json:"amount,omitempty"`
	// RevenueShareBps is the funder's revenue share in basis points.
	RevenueShareBps uint32 `protobuf:"varint,4,opt,name=revenue_share_bps,json=revenueShareBps,proto3" json:"revenue_share_bps,omitempty"`
	// DurationYears is the grant lifetime until maturity.
	DurationYears uint32 `protobuf:"varint,5,opt,name=duration_years,json=durationYears,proto3" json:"duration_years,omitempty"`
	// RevenueTarget optionally completes the grant early once the shared
	// revenue reaches it.
	RevenueTarget *coin.Coin `protobuf:"bytes,6,opt,name=revenue_target,json=revenueTarget" json:"revenue_target,omitempty"`
	Purpose       string     `protobuf:"bytes,7,opt,name=purpose,proto3" json:"purpose,omitempty"`
	// BatchID optionally links a coffee batch. At most one grant per
	// batch.
	BatchID []byte `protobuf:"bytes,8,opt,name=batch_id,json=batchId,proto3" json:"batch_id,omitempty"`
}

func (m *CreateMsg) Reset()         { *m = CreateMsg{} }
func (m *CreateMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMsg) ProtoMessage()    {}

func (CreateMsg) Path() string { return "grant/create" }

func (m *CreateMsg) GetMetadata() *wagachain.Metadata { return m.Metadata }

func (m *CreateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Beneficiary", m.Beneficiary.Validate())
	if m.Amount == nil {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrEmpty, "amount is required"))
	} else {
		if err := m.Amount.Validate(); err != nil {
			errs = errors.AppendField(errs, "Amount", err)
		} else if !m.Amount.IsPositive() {
			errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "must be positive"))
		}
	}
	if m.RevenueShareBps > fullShareBps {
		errs = errors.Append(errs, errors.Field("RevenueShareBps", errors.ErrInput, "cannot exceed %d", fullShareBps))
	}
	if m.DurationYears == 0 {
		errs = errors.Append(errs, errors.Field("DurationYears", errors.ErrInput, "must be positive"))
	}
	if m.RevenueTarget != nil {
		if err := m.RevenueTarget.Validate(); err != nil {
			errs = errors.AppendField(errs, "RevenueTarget", err)
		} else if !m.RevenueTarget.IsPositive() {
			errs = errors.Append(errs, errors.Field("RevenueTarget", errors.ErrAmount, "must be positive"))
		}
	}
	if len(m.Purpose) > maxPurposeSize {
		errs = errors.Append(errs, errors.Field("Purpose", errors.ErrInput, "too long"))
	}
	return errs
}

var _ wagachain.Msg = (*CreateDevelopmentMsg)(nil)

// CreateDevelopmentMsg creates a development track grant together with
// its project record. Funds disburse through a milestone schedule.
type CreateDevelopmentMsg struct {
	Metadata        *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Beneficiary     wagachain.Address   `protobuf:"bytes,2,opt,name=beneficiary,proto3,casttype=github.com/wagatoken/wagachain.Address" json:"beneficiary,omitempty"`
	Amount          *coin.Coin          `protobuf:"bytes,3,opt,name=amount" json:"amount,omitempty"`
	RevenueShareBps uint32              `protobuf:"varint,4,opt,name=revenue_share_bps,json=revenueShareBps,proto3" json:"revenue_share_bps,omitempty"`
	DurationYears   uint32              `protobuf:"varint,5,opt,name=duration_years,json=durationYears,proto3" json:"duration_years,omitempty"`
	RevenueTarget   *coin.Coin          `protobuf:"bytes,6,opt,name=revenue_target,json=revenueTarget" json:"revenue_target,omitempty"`
	Purpose         string              `protobuf:"bytes,7,opt,name=purpose,proto3" json:"purpose,omitempty"`
	BatchID         []byte              `protobuf:"bytes,8,opt,name=batch_id,json=batchId,proto3" json:"batch_id,omitempty"`
	// ProjectMetadataRef points to the off-chain project description.
	ProjectMetadataRef string `protobuf:"bytes,9,opt,name=project_metadata_ref,json=projectMetadataRef,proto3" json:"project_metadata_ref,omitempty"`
	// ProjectedYield is the expected project output, unit free.
	ProjectedYield int64 `protobuf:"varint,10,opt,name=projected_yield,json=projectedYield,proto3" json:"projected_yield,omitempty"`
}

func (m *CreateDevelopmentMsg) Reset()         { *m = CreateDevelopmentMsg{} }
func (m *CreateDevelopmentMsg) String() string { return proto.CompactTextString(m) }
func (*CreateDevelopmentMsg) ProtoMessage()    {}

func (CreateDevelopmentMsg) Path() string { return "grant/create_development" }

func (m *CreateDevelopmentMsg) GetMetadata() *wagachain.Metadata { return m.Metadata }

func (m *CreateDevelopmentMsg) Validate() error {
	base := &CreateMsg{
		Metadata:        m.Metadata,
		Beneficiary:     m.Beneficiary,
		Amount:          m.Amount,
		RevenueShareBps: m.RevenueShareBps,
		DurationYears:   m.DurationYears,
		RevenueTarget:   m.RevenueTarget,
		Purpose:         m.Purpose,
		BatchID:         m.BatchID,
	}
	errs := base.Validate()
	if len(m.ProjectMetadataRef) > maxRefSize {
		errs = errors.Append(errs, errors.Field("ProjectMetadataRef", errors.ErrInput, "too long"))
	}
	if m.ProjectedYield < 0 {
		errs = errors.Append(errs, errors.Field("ProjectedYield", errors.ErrInput, "cannot be negative"))
	}
	return errs
}

var _ wagachain.Msg = (*CreateScheduleMsg)(nil)

// CreateScheduleMsg attaches a milestone schedule to a development
// grant. Shares are basis points and must sum to exactly 100%.
type CreateScheduleMsg struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	GrantID  []byte              `protobuf:"bytes,2,opt,name=grant_id,json=grantId,proto3" json:"grant_id,omitempty"`
	// Descriptions and Shares are parallel arrays, one entry per
	// milestone.
	Descriptions []string `protobuf:"bytes,3,rep,name=descriptions,proto3" json:"descriptions,omitempty"`
	Shares       []uint32 `protobuf:"varint,4,rep,packed,name=shares,proto3" json:"shares,omitempty"`
}

func (m *CreateScheduleMsg) Reset()         { *m = CreateScheduleMsg{} }
func (m *CreateScheduleMsg) String() string { return proto.CompactTextString(m) }
func (*CreateScheduleMsg) ProtoMessage()    {}

func (CreateScheduleMsg) Path() string { return "grant/create_schedule" }

func (m *CreateScheduleMsg) GetMetadata() *wagachain.Metadata { return m.Metadata }

func (m *CreateScheduleMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.GrantID) == 0 {
		errs = errors.Append(errs, errors.Field("GrantID", errors.ErrEmpty, "grant reference is required"))
	}
	if len(m.Descriptions) != len(m.Shares) {
		errs = errors.Append(errs, errors.Field("Shares", errors.ErrInput, "must have one share per description"))
		return errs
	}
	if len(m.Shares) == 0 || len(m.Shares) > maxMilestones {
		errs = errors.Append(errs, errors.Field("Shares", errors.ErrInput, "must have 1..%d entries", maxMilestones))
	}
	var sum uint32
	for i, s := range m.Shares {
		if s == 0 {
			errs = errors.Append(errs, errors.Field("Shares", errors.ErrInput, "share #%d must be positive", i))
		}
		if m.Descriptions[i] == "" {
			errs = errors.Append(errs, errors.Field("Descriptions", errors.ErrEmpty, "description #%d is empty", i))
		}
		sum += s
	}
	if len(m.Shares) > 0 && sum != fullShareBps {
		errs = errors.Append(errs, errors.Field("Shares", errors.ErrInput, "shares sum to %d, must be %d", sum, fullShareBps))
	}
	return errs
}

var _ wagachain.Msg = (*FundMsg)(nil)

// FundMsg moves the grant amount out of the treasury. A plain grant
// pays the beneficiary directly, a scheduled one fills the escrow.
type FundMsg struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	GrantID  []byte              `protobuf:"bytes,2,opt,name=grant_id,json=grantId,proto3" json:"grant_id,omitempty"`
}

func (m *FundMsg) Reset()         { *m = FundMsg{} }
func (m *FundMsg) String() string { return proto.CompactTextString(m) }
func (*FundMsg) ProtoMessage()    {}

func (FundMsg) Path() string { return "grant/fund" }

func (m *FundMsg) GetMetadata() *wagachain.Metadata { return m.Metadata }

func (m *FundMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.GrantID) == 0 {
		errs = errors.Append(errs, errors.Field("GrantID", errors.ErrEmpty, "grant reference is required"))
	}
	return errs
}

var _ wagachain.Msg = (*SubmitEvidenceMsg)(nil)

// SubmitEvidenceMsg records milestone completion evidence. Only the
// grant beneficiary may submit. With self validation configured the
// submission immediately approves the milestone.
type SubmitEvidenceMsg struct {
	Metadata  *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	GrantID   []byte              `protobuf:"bytes,2,opt,name=grant_id,json=grantId,proto3" json:"grant_id,omitempty"`
	Milestone uint32              `protobuf:"varint,3,opt,name=milestone,proto3" json:"milestone,omitempty"`
	// EvidenceRef is an opaque off-chain reference, for example an IPFS
	// content id.
	EvidenceRef string `protobuf:"bytes,4,opt,name=evidence_ref,json=evidenceRef,proto3" json:"evidence_ref,omitempty"`
}

func (m *SubmitEvidenceMsg) Reset()         { *m = SubmitEvidenceMsg{} }
func (m *SubmitEvidenceMsg) String() string { return proto.CompactTextString(m) }
func (*SubmitEvidenceMsg) ProtoMessage()    {}

func (SubmitEvidenceMsg) Path() string { return "grant/submit_evidence" }

func (m *SubmitEvidenceMsg) GetMetadata() *wagachain.Metadata { return m.Metadata }

func (m *SubmitEvidenceMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.GrantID) == 0 {
		errs = errors.Append(errs, errors.Field("GrantID", errors.ErrEmpty, "grant reference is required"))
	}
	if m.EvidenceRef == "" {
		errs = errors.Append(errs, errors.Field("EvidenceRef", errors.ErrEmpty, "evidence reference is required"))
	}
	if len(m.EvidenceRef) > maxRefSize {
		errs = errors.Append(errs, errors.Field("EvidenceRef", errors.ErrInput, "too long"))
	}
	return errs
}

var _ wagachain.Msg = (*ValidateMsg)(nil)

// ValidateMsg is a manual milestone decision by a validator or the
// owner. Approval releases the milestone share, rejection changes
// nothing.
type ValidateMsg struct {
	Metadata  *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	GrantID   []byte              `protobuf:"bytes,2,opt,name=grant_id,json=grantId,proto3" json:"grant_id,omitempty"`
	Milestone uint32              `protobuf:"varint,3,opt,name=milestone,proto3" json:"milestone,omitempty"`
	Approved  bool                `protobuf:"varint,4,opt,name=approved,proto3" json:"approved,omitempty"`
}

func (m *ValidateMsg) Reset()         { *m = ValidateMsg{} }
func (m *ValidateMsg) String() string { return proto.CompactTextString(m) }
func (*ValidateMsg) ProtoMessage()    {}

func (ValidateMsg) Path() string { return "grant/validate" }

func (m *ValidateMsg) GetMetadata() *wagachain.Metadata { return m.Metadata }

func (m *ValidateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.GrantID) == 0 {
		errs = errors.Append(errs, errors.Field("GrantID", errors.ErrEmpty, "grant reference is required"))
	}
	return errs
}

var _ wagachain.Msg = (*ValidateProofMsg)(nil)

// ValidateProofMsg is a milestone decision backed by an externally
// verifiable proof. The configured verifier judges the proof and the
// outcome maps to an approval or rejection.
type ValidateProofMsg struct {
	Metadata  *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	GrantID   []byte              `protobuf:"bytes,2,opt,name=grant_id,json=grantId,proto3" json:"grant_id,omitempty"`
	Milestone uint32              `protobuf:"varint,3,opt,name=milestone,proto3" json:"milestone,omitempty"`
	// Proof is the opaque proof blob handed to the verifier.
	Proof []byte `protobuf:"bytes,4,opt,name=proof,proto3" json:"proof,omitempty"`
	// CircuitID names the verification circuit the proof targets.
	CircuitID string `protobuf:"bytes,5,opt,name=circuit_id,json=circuitId,proto3" json:"circuit_id,omitempty"`
	// PublicInput binds the proof to this grant and milestone.
	PublicInput []byte `protobuf:"bytes,6,opt,name=public_input,json=publicInput,proto3" json:"public_input,omitempty"`
}

func (m *ValidateProofMsg) Reset()         { *m = ValidateProofMsg{} }
func (m *ValidateProofMsg) String() string { return proto.CompactTextString(m) }
func (*ValidateProofMsg) ProtoMessage()    {}

func (ValidateProofMsg) Path() string { return "grant/validate_proof" }

func (m *ValidateProofMsg) GetMetadata() *wagachain.Metadata { return m.Metadata }

func (m *ValidateProofMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.GrantID) == 0 {
		errs = errors.Append(errs, errors.Field("GrantID", errors.ErrEmpty, "grant reference is required"))
	}
	if len(m.Proof) == 0 {
		errs = errors.Append(errs, errors.Field("Proof", errors.ErrEmpty, "proof is required"))
	}
	if m.CircuitID == "" {
		errs = errors.Append(errs, errors.Field("CircuitID", errors.ErrEmpty, "circuit reference is required"))
	}
	return errs
}

var _ wagachain.Msg = (*RecordRevenueMsg)(nil)

// RecordRevenueMsg books beneficiary revenue against an active grant.
// The configured revenue share of the amount accumulates on the grant
// and transfers to the treasury.
type RecordRevenueMsg struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	GrantID  []byte              `protobuf:"bytes,2,opt,name=grant_id,json=grantId,proto3" json:"grant_id,omitempty"`
	// Amount is the gross revenue reported for the period.
	Amount *coin.Coin `protobuf:"bytes,3,opt,name=amount" json:"amount,omitempty"`
}

func (m *RecordRevenueMsg) Reset()         { *m = RecordRevenueMsg{} }
func (m *RecordRevenueMsg) String() string { return proto.CompactTextString(m) }
func (*RecordRevenueMsg) ProtoMessage()    {}

func (RecordRevenueMsg) Path() string { return "grant/record_revenue" }

func (m *RecordRevenueMsg) GetMetadata() *wagachain.Metadata { return m.Metadata }

func (m *RecordRevenueMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.GrantID) == 0 {
		errs = errors.Append(errs, errors.Field("GrantID", errors.ErrEmpty, "grant reference is required"))
	}
	if m.Amount == nil {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrEmpty, "amount is required"))
	} else {
		if err := m.Amount.Validate(); err != nil {
			errs = errors.AppendField(errs, "Amount", err)
		} else if !m.Amount.IsPositive() {
			errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "must be positive"))
		}
	}
	return errs
}

var _ wagachain.Msg = (*CompleteMsg)(nil)

// CompleteMsg moves a fully disbursed grant to its terminal status,
// completed before maturity or matured at or past it.
type CompleteMsg struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	GrantID  []byte              `protobuf:"bytes,2,opt,name=grant_id,json=grantId,proto3" json:"grant_id,omitempty"`
}

func (m *CompleteMsg) Reset()         { *m = CompleteMsg{} }
func (m *CompleteMsg) String() string { return proto.CompactTextString(m) }
func (*CompleteMsg) ProtoMessage()    {}

func (CompleteMsg) Path() string { return "grant/complete" }

func (m *CompleteMsg) GetMetadata() *wagachain.Metadata { return m.Metadata }

func (m *CompleteMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.GrantID) == 0 {
		errs = errors.Append(errs, errors.Field("GrantID", errors.ErrEmpty, "grant reference is required"))
	}
	return errs
}

var _ wagachain.Msg = (*UpdateConfigurationMsg)(nil)

// UpdateConfigurationMsg replaces the grant extension configuration.
type UpdateConfigurationMsg struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Patch    *Configuration      `protobuf:"bytes,2,opt,name=patch" json:"patch,omitempty"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}

func (UpdateConfigurationMsg) Path() string { return "grant/update_configuration" }

func (m *UpdateConfigurationMsg) GetMetadata() *wagachain.Metadata { return m.Metadata }

func (m *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Patch == nil {
		errs = errors.Append(errs, errors.Field("Patch", errors.ErrEmpty, "configuration is required"))
	} else {
		errs = errors.AppendField(errs, "Patch", m.Patch.Validate())
	}
	return errs
}
