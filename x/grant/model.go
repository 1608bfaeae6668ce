package grant

import (
	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/coin"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/migration"
	"github.com/wagatoken/wagachain/orm"
)

func init() {
	migration.MustRegister(1, &Grant{}, migration.NoModification)
	migration.MustRegister(1, &Schedule{}, migration.NoModification)
	migration.MustRegister(1, &Escrow{}, migration.NoModification)
	migration.MustRegister(1, &EscrowTotals{}, migration.NoModification)
}

const (
	// maxPurposeSize bounds the human readable purpose text.
	maxPurposeSize = 256
	// maxRefSize bounds the opaque off-chain references.
	maxRefSize = 128
	// maxMilestones is the highest number of milestones per schedule.
	maxMilestones = 10
	// fullShareBps is 100% in basis points. Milestone shares of one
	// schedule must sum to exactly this value.
	fullShareBps uint32 = 10000
)

// GrantStatus is the lifecycle position of a grant.
type GrantStatus int32

const (
	GrantStatusInvalid GrantStatus = 0
	// GrantStatusPending is a created but not yet disbursing grant.
	GrantStatusPending GrantStatus = 1
	// GrantStatusActive is a grant with at least one disbursement.
	GrantStatusActive GrantStatus = 2
	// GrantStatusCompleted is terminal, reached before maturity.
	GrantStatusCompleted GrantStatus = 3
	// GrantStatusMatured is terminal, reached at or past maturity.
	GrantStatusMatured GrantStatus = 4
)

func (s GrantStatus) String() string {
	switch s {
	case GrantStatusPending:
		return "pending"
	case GrantStatusActive:
		return "active"
	case GrantStatusCompleted:
		return "completed"
	case GrantStatusMatured:
		return "matured"
	default:
		return "invalid"
	}
}

// Terminal returns true for the two final statuses.
func (s GrantStatus) Terminal() bool {
	return s == GrantStatusCompleted || s == GrantStatusMatured
}

// Grant is a funding commitment from the treasury to a beneficiary.
type Grant struct {
	Metadata    *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Beneficiary wagachain.Address   `protobuf:"bytes,2,opt,name=beneficiary,proto3,casttype=github.com/wagatoken/wagachain.Address" json:"beneficiary,omitempty"`
	// Amount is the total funding commitment.
	Amount *coin.Coin `protobuf:"bytes,3,opt,name=amount" json:"amount,omitempty"`
	// Disbursed is the portion already released to the beneficiary.
	// Invariant: Disbursed is never greater than Amount.
	Disbursed *coin.Coin `protobuf:"bytes,4,opt,name=disbursed" json:"disbursed,omitempty"`
	// RevenueShareBps is the funder's share of post-funding beneficiary
	// revenue, in basis points.
	RevenueShareBps uint32             `protobuf:"varint,5,opt,name=revenue_share_bps,json=revenueShareBps,proto3" json:"revenue_share_bps,omitempty"`
	CreatedAt       wagachain.UnixTime `protobuf:"varint,6,opt,name=created_at,json=createdAt,proto3,casttype=github.com/wagatoken/wagachain.UnixTime" json:"created_at,omitempty"`
	MaturesAt       wagachain.UnixTime `protobuf:"varint,7,opt,name=matures_at,json=maturesAt,proto3,casttype=github.com/wagatoken/wagachain.UnixTime" json:"matures_at,omitempty"`
	// RevenueTarget completes the grant early once RevenueShared
	// reaches it. A nil target leaves maturity as the only deadline.
	RevenueTarget *coin.Coin `protobuf:"bytes,8,opt,name=revenue_target,json=revenueTarget" json:"revenue_target,omitempty"`
	// RevenueShared accumulates the funder's revenue share.
	RevenueShared *coin.Coin  `protobuf:"bytes,9,opt,name=revenue_shared,json=revenueShared" json:"revenue_shared,omitempty"`
	Status        GrantStatus `protobuf:"varint,10,opt,name=status,proto3" json:"status,omitempty"`
	Purpose       string      `protobuf:"bytes,11,opt,name=purpose,proto3" json:"purpose,omitempty"`
	// DevelopmentTrack marks grants that may carry a milestone schedule
	// and a linked project.
	DevelopmentTrack bool `protobuf:"varint,12,opt,name=development_track,json=developmentTrack,proto3" json:"development_track,omitempty"`
	// ProjectID links the development project registered together with
	// this grant.
	ProjectID []byte `protobuf:"bytes,13,opt,name=project_id,json=projectId,proto3" json:"project_id,omitempty"`
	// BatchID optionally links a coffee batch to this grant. At most
	// one grant per batch.
	BatchID []byte `protobuf:"bytes,14,opt,name=batch_id,json=batchId,proto3" json:"batch_id,omitempty"`
	// Funded is set once the treasury transfer happened.
	Funded bool `protobuf:"varint,15,opt,name=funded,proto3" json:"funded,omitempty"`
}

var _ orm.Model = (*Grant)(nil)

func (g *Grant) Reset()         { *g = Grant{} }
func (g *Grant) String() string { return proto.CompactTextString(g) }
func (*Grant) ProtoMessage()    {}

func (g *Grant) GetMetadata() *wagachain.Metadata { return g.Metadata }

func (g *Grant) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", g.Metadata.Validate())
	errs = errors.AppendField(errs, "Beneficiary", g.Beneficiary.Validate())
	if g.Amount == nil {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrEmpty, "amount is required"))
	} else {
		if err := g.Amount.Validate(); err != nil {
			errs = errors.AppendField(errs, "Amount", err)
		} else if !g.Amount.IsPositive() {
			errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "must be positive"))
		}
	}
	if g.Disbursed != nil {
		errs = errors.AppendField(errs, "Disbursed", g.Disbursed.Validate())
		if g.Amount != nil && !g.Amount.IsGTE(*g.Disbursed) {
			errs = errors.Append(errs, errors.Field("Disbursed", errors.ErrState, "cannot exceed the grant amount"))
		}
	}
	if g.RevenueShareBps > fullShareBps {
		errs = errors.Append(errs, errors.Field("RevenueShareBps", errors.ErrInput, "cannot exceed %d", fullShareBps))
	}
	errs = errors.AppendField(errs, "CreatedAt", g.CreatedAt.Validate())
	errs = errors.AppendField(errs, "MaturesAt", g.MaturesAt.Validate())
	if g.MaturesAt <= g.CreatedAt {
		errs = errors.Append(errs, errors.Field("MaturesAt", errors.ErrInput, "must be after creation"))
	}
	if g.Status < GrantStatusPending || g.Status > GrantStatusMatured {
		errs = errors.Append(errs, errors.Field("Status", errors.ErrState, "invalid status %d", g.Status))
	}
	if len(g.Purpose) > maxPurposeSize {
		errs = errors.Append(errs, errors.Field("Purpose", errors.ErrInput, "too long"))
	}
	return errs
}

// Milestone is one weighted completion gate of a schedule.
type Milestone struct {
	Description string `protobuf:"bytes,1,opt,name=description,proto3" json:"description,omitempty"`
	// ShareBps is the fraction of the grant amount this milestone
	// releases, in basis points.
	ShareBps  uint32 `protobuf:"varint,2,opt,name=share_bps,json=shareBps,proto3" json:"share_bps,omitempty"`
	Completed bool   `protobuf:"varint,3,opt,name=completed,proto3" json:"completed,omitempty"`
	// EvidenceRef is the opaque reference of the submitted completion
	// evidence.
	EvidenceRef string             `protobuf:"bytes,4,opt,name=evidence_ref,json=evidenceRef,proto3" json:"evidence_ref,omitempty"`
	CompletedAt wagachain.UnixTime `protobuf:"varint,5,opt,name=completed_at,json=completedAt,proto3,casttype=github.com/wagatoken/wagachain.UnixTime" json:"completed_at,omitempty"`
	Approver    wagachain.Address  `protobuf:"bytes,6,opt,name=approver,proto3,casttype=github.com/wagatoken/wagachain.Address" json:"approver,omitempty"`
	// Released is the amount paid out for this milestone.
	Released *coin.Coin `protobuf:"bytes,7,opt,name=released" json:"released,omitempty"`
}

func (m *Milestone) Reset()         { *m = Milestone{} }
func (m *Milestone) String() string { return proto.CompactTextString(m) }
func (*Milestone) ProtoMessage()    {}

func (m *Milestone) Validate() error {
	var errs error
	if m.Description == "" {
		errs = errors.Append(errs, errors.Field("Description", errors.ErrEmpty, "description is required"))
	}
	if m.ShareBps == 0 || m.ShareBps > fullShareBps {
		errs = errors.Append(errs, errors.Field("ShareBps", errors.ErrInput, "must be in 1..%d", fullShareBps))
	}
	if len(m.EvidenceRef) > maxRefSize {
		errs = errors.Append(errs, errors.Field("EvidenceRef", errors.ErrInput, "too long"))
	}
	return errs
}

// Schedule is the ordered milestone list of one development grant.
type Schedule struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	// GrantID is also the primary key of this schedule: at most one
	// schedule per grant.
	GrantID    []byte       `protobuf:"bytes,2,opt,name=grant_id,json=grantId,proto3" json:"grant_id,omitempty"`
	Milestones []*Milestone `protobuf:"bytes,3,rep,name=milestones" json:"milestones,omitempty"`
	// Completed counts the validated milestones.
	Completed uint32 `protobuf:"varint,4,opt,name=completed,proto3" json:"completed,omitempty"`
	// Active is cleared once every milestone completed.
	Active bool `protobuf:"varint,5,opt,name=active,proto3" json:"active,omitempty"`
}

var _ orm.Model = (*Schedule)(nil)

func (s *Schedule) Reset()         { *s = Schedule{} }
func (s *Schedule) String() string { return proto.CompactTextString(s) }
func (*Schedule) ProtoMessage()    {}

func (s *Schedule) GetMetadata() *wagachain.Metadata { return s.Metadata }

func (s *Schedule) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	if len(s.GrantID) == 0 {
		errs = errors.Append(errs, errors.Field("GrantID", errors.ErrEmpty, "grant reference is required"))
	}
	if len(s.Milestones) == 0 || len(s.Milestones) > maxMilestones {
		errs = errors.Append(errs, errors.Field("Milestones", errors.ErrInput, "must have 1..%d entries", maxMilestones))
	}
	var sum uint32
	for i, m := range s.Milestones {
		if m == nil {
			errs = errors.Append(errs, errors.Field("Milestones", errors.ErrEmpty, "milestone #%d is empty", i))
			continue
		}
		errs = errors.AppendField(errs, "Milestones", m.Validate())
		sum += m.ShareBps
	}
	// Shares must sum to exactly 100%, fixed forever at creation.
	if len(s.Milestones) > 0 && sum != fullShareBps {
		errs = errors.Append(errs, errors.Field("Milestones", errors.ErrInput, "shares sum to %d, must be %d", sum, fullShareBps))
	}
	if int(s.Completed) > len(s.Milestones) {
		errs = errors.Append(errs, errors.Field("Completed", errors.ErrState, "more completions than milestones"))
	}
	return errs
}

// Escrow is the reserved balance accounting of one scheduled grant. The
// actual funds live on the escrow condition address.
type Escrow struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	// GrantID is also the primary key of this record.
	GrantID []byte `protobuf:"bytes,2,opt,name=grant_id,json=grantId,proto3" json:"grant_id,omitempty"`
	// Escrowed is the total reserved for this grant.
	Escrowed *coin.Coin `protobuf:"bytes,3,opt,name=escrowed" json:"escrowed,omitempty"`
	// Released is the portion already paid out. Invariant: Released is
	// never greater than Escrowed and only grows.
	Released *coin.Coin `protobuf:"bytes,4,opt,name=released" json:"released,omitempty"`
}

var _ orm.Model = (*Escrow)(nil)

func (e *Escrow) Reset()         { *e = Escrow{} }
func (e *Escrow) String() string { return proto.CompactTextString(e) }
func (*Escrow) ProtoMessage()    {}

func (e *Escrow) GetMetadata() *wagachain.Metadata { return e.Metadata }

func (e *Escrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", e.Metadata.Validate())
	if len(e.GrantID) == 0 {
		errs = errors.Append(errs, errors.Field("GrantID", errors.ErrEmpty, "grant reference is required"))
	}
	if e.Escrowed == nil {
		errs = errors.Append(errs, errors.Field("Escrowed", errors.ErrEmpty, "escrowed amount is required"))
	} else {
		errs = errors.AppendField(errs, "Escrowed", e.Escrowed.Validate())
		if e.Released != nil && !e.Escrowed.IsGTE(*e.Released) {
			errs = errors.Append(errs, errors.Field("Released", errors.ErrState, "cannot exceed the escrowed amount"))
		}
	}
	if e.Released != nil {
		errs = errors.AppendField(errs, "Released", e.Released.Validate())
	}
	return errs
}

// Remaining returns the not yet released portion of the escrow.
func (e *Escrow) Remaining() (coin.Coin, error) {
	if e.Escrowed == nil {
		return coin.Coin{}, errors.Wrap(errors.ErrState, "no escrowed amount")
	}
	if e.Released == nil {
		return *e.Escrowed, nil
	}
	return e.Escrowed.Subtract(*e.Released)
}

// EscrowTotals is the global aggregate over all escrow records, mutated
// in the same transaction as every per-grant escrow change.
type EscrowTotals struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Escrowed *coin.Coin          `protobuf:"bytes,2,opt,name=escrowed" json:"escrowed,omitempty"`
	Released *coin.Coin          `protobuf:"bytes,3,opt,name=released" json:"released,omitempty"`
}

var _ orm.Model = (*EscrowTotals)(nil)

func (t *EscrowTotals) Reset()         { *t = EscrowTotals{} }
func (t *EscrowTotals) String() string { return proto.CompactTextString(t) }
func (*EscrowTotals) ProtoMessage()    {}

func (t *EscrowTotals) GetMetadata() *wagachain.Metadata { return t.Metadata }

func (t *EscrowTotals) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", t.Metadata.Validate())
	if t.Escrowed != nil {
		errs = errors.AppendField(errs, "Escrowed", t.Escrowed.Validate())
	}
	if t.Released != nil {
		errs = errors.AppendField(errs, "Released", t.Released.Validate())
	}
	return errs
}
