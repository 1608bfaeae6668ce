package grant

import (
	"context"
	"testing"
	"time"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/coin"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/gconf"
	"github.com/wagatoken/wagachain/migration"
	"github.com/wagatoken/wagachain/store"
	"github.com/wagatoken/wagachain/wagatest"
	"github.com/wagatoken/wagachain/wagatest/assert"
	"github.com/wagatoken/wagachain/x/cash"
	"github.com/wagatoken/wagachain/x/project"
	"github.com/wagatoken/wagachain/x/role"
)

type fixture struct {
	db          store.CacheableKVStore
	ctx         wagachain.Context
	owner       wagachain.Condition
	validator   wagachain.Condition
	beneficiary wagachain.Condition
	treasury    wagachain.Address
	control     cash.CashController
	gw          gateway
}

// newFixture prepares a store with a configured grant extension, a
// verified beneficiary, a capable validator and a funded treasury.
func newFixture(t *testing.T, selfValidation bool) *fixture {
	t.Helper()

	f := &fixture{
		db:          store.MemStore(),
		owner:       wagatest.NewCondition(),
		validator:   wagatest.NewCondition(),
		beneficiary: wagatest.NewCondition(),
		treasury:    wagatest.RandomAddr(),
	}
	migration.MustInitPkg(f.db, "grant", "role", "project", "cash")

	assert.Nil(t, gconf.Save(f.db, "grant", &Configuration{
		Metadata:           &wagachain.Metadata{Schema: 1},
		Owner:              f.owner.Address(),
		Treasury:           f.treasury,
		MinAmount:          coin.NewCoin(100, 0, "WAGA"),
		MaxRevenueShareBps: 5000,
		MaxDurationYears:   10,
		SelfValidation:     selfValidation,
	}))

	roles := role.NewRolesBucket()
	_, err := roles.Put(f.db, f.beneficiary.Address(), &role.Roles{
		Metadata:     &wagachain.Metadata{Schema: 1},
		Address:      f.beneficiary.Address(),
		Capabilities: []string{CapVerified},
	})
	assert.Nil(t, err)
	_, err = roles.Put(f.db, f.validator.Address(), &role.Roles{
		Metadata:     &wagachain.Metadata{Schema: 1},
		Address:      f.validator.Address(),
		Capabilities: []string{CapValidator},
	})
	assert.Nil(t, err)

	f.control = cash.NewController(cash.NewWalletBucket())
	assert.Nil(t, f.control.CoinMint(f.db, f.treasury, coin.NewCoin(1000000, 0, "WAGA")))

	f.gw = newGateway(f.control, project.NewController(project.NewProjectBucket()))
	f.ctx = wagachain.WithBlockTime(context.Background(), time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	return f
}

func (f *fixture) deliver(t *testing.T, h wagachain.Handler, msg wagachain.Msg) *wagachain.DeliverResult {
	t.Helper()
	res, err := h.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: msg})
	assert.Nil(t, err)
	return res
}

func (f *fixture) auth(signers ...wagachain.Condition) *wagatest.Auth {
	return &wagatest.Auth{Signers: signers}
}

func (f *fixture) createDevelopment(t *testing.T, amount int64, shares []uint32) []byte {
	t.Helper()

	create := createDevelopmentHandler{auth: f.auth(f.owner), gw: f.gw}
	res := f.deliver(t, create, &CreateDevelopmentMsg{
		Metadata:           &wagachain.Metadata{Schema: 1},
		Beneficiary:        f.beneficiary.Address(),
		Amount:             coin.NewCoinp(amount, 0, "WAGA"),
		RevenueShareBps:    2000,
		DurationYears:      3,
		Purpose:            "processing facility",
		ProjectMetadataRef: "ipfs://QmProject",
		ProjectedYield:     500,
	})
	grantID := res.Data

	if shares != nil {
		descriptions := make([]string, len(shares))
		for i := range shares {
			descriptions[i] = "milestone"
		}
		sched := scheduleHandler{auth: f.auth(f.owner), gw: f.gw}
		f.deliver(t, sched, &CreateScheduleMsg{
			Metadata:     &wagachain.Metadata{Schema: 1},
			GrantID:      grantID,
			Descriptions: descriptions,
			Shares:       shares,
		})
	}
	return grantID
}

func (f *fixture) fund(t *testing.T, grantID []byte) {
	t.Helper()
	h := fundHandler{auth: f.auth(f.owner), gw: f.gw}
	f.deliver(t, h, &FundMsg{
		Metadata: &wagachain.Metadata{Schema: 1},
		GrantID:  grantID,
	})
}

func (f *fixture) balance(t *testing.T, addr wagachain.Address) coin.Coin {
	t.Helper()
	coins, err := f.control.Balance(f.db, addr)
	assert.Nil(t, err)
	if len(coins) == 0 {
		return coin.NewCoin(0, 0, "WAGA")
	}
	if len(coins) != 1 {
		t.Fatalf("want a single ticker wallet, got %v", coins)
	}
	return *coins[0]
}

func TestScheduledGrantLifecycle(t *testing.T) {
	f := newFixture(t, false)

	grantID := f.createDevelopment(t, 100000, []uint32{3000, 3000, 2500, 1500})

	var g Grant
	assert.Nil(t, f.gw.grants.One(f.db, grantID, &g))
	assert.Equal(t, GrantStatusPending, g.Status)
	assert.Equal(t, true, g.DevelopmentTrack)
	if len(g.ProjectID) == 0 {
		t.Fatal("no project registered")
	}

	// creating the schedule reserves the escrow before any money moves
	totals, err := f.gw.totals.Totals(f.db)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoinp(100000, 0, "WAGA"), totals.Escrowed)

	f.fund(t, grantID)

	// a funded scheduled grant stays pending until the first release
	escrowAddr := EscrowCondition(grantID).Address()
	assert.Equal(t, coin.NewCoin(100000, 0, "WAGA"), f.balance(t, escrowAddr))
	assert.Nil(t, f.gw.grants.One(f.db, grantID, &g))
	assert.Equal(t, GrantStatusPending, g.Status)
	assert.Equal(t, true, g.Funded)

	evidence := evidenceHandler{auth: f.auth(f.beneficiary), gw: f.gw}
	f.deliver(t, evidence, &SubmitEvidenceMsg{
		Metadata:    &wagachain.Metadata{Schema: 1},
		GrantID:     grantID,
		Milestone:   0,
		EvidenceRef: "ipfs://QmEvidence0",
	})
	// evidence alone moves no funds
	assert.Equal(t, coin.NewCoin(0, 0, "WAGA"), f.balance(t, f.beneficiary.Address()))

	validate := validateHandler{auth: f.auth(f.validator), gw: f.gw}
	f.deliver(t, validate, &ValidateMsg{
		Metadata:  &wagachain.Metadata{Schema: 1},
		GrantID:   grantID,
		Milestone: 0,
		Approved:  true,
	})

	// 3000 bps of 100000
	assert.Equal(t, coin.NewCoin(30000, 0, "WAGA"), f.balance(t, f.beneficiary.Address()))
	assert.Equal(t, coin.NewCoin(70000, 0, "WAGA"), f.balance(t, escrowAddr))

	// the first disbursement activates the grant
	assert.Nil(t, f.gw.grants.One(f.db, grantID, &g))
	assert.Equal(t, GrantStatusActive, g.Status)

	var sched Schedule
	assert.Nil(t, f.gw.schedules.One(f.db, grantID, &sched))
	assert.Equal(t, uint32(1), sched.Completed)
	assert.Equal(t, "ipfs://QmEvidence0", sched.Milestones[0].EvidenceRef)
	assert.Equal(t, f.validator.Address(), sched.Milestones[0].Approver)

	// a completed milestone cannot be decided again
	_, err = validate.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: &ValidateMsg{
		Metadata:  &wagachain.Metadata{Schema: 1},
		GrantID:   grantID,
		Milestone: 0,
		Approved:  true,
	}})
	assert.IsErr(t, ErrMilestoneDone, err)

	for _, index := range []uint32{1, 2, 3} {
		f.deliver(t, validate, &ValidateMsg{
			Metadata:  &wagachain.Metadata{Schema: 1},
			GrantID:   grantID,
			Milestone: index,
			Approved:  true,
		})
	}

	// the full amount reached the beneficiary, no dust in the escrow
	assert.Equal(t, coin.NewCoin(100000, 0, "WAGA"), f.balance(t, f.beneficiary.Address()))
	assert.Equal(t, coin.NewCoin(0, 0, "WAGA"), f.balance(t, escrowAddr))

	assert.Nil(t, f.gw.grants.One(f.db, grantID, &g))
	assert.Equal(t, coin.NewCoinp(100000, 0, "WAGA"), g.Disbursed)

	assert.Nil(t, f.gw.schedules.One(f.db, grantID, &sched))
	assert.Equal(t, uint32(4), sched.Completed)
	assert.Equal(t, false, sched.Active)

	var esc Escrow
	assert.Nil(t, f.gw.escrows.One(f.db, grantID, &esc))
	assert.Equal(t, esc.Escrowed, esc.Released)

	totals, err = f.gw.totals.Totals(f.db)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoinp(100000, 0, "WAGA"), totals.Released)

	var proj project.Project
	assert.Nil(t, project.NewProjectBucket().One(f.db, g.ProjectID, &proj))
	assert.Equal(t, true, proj.Delivered)

	// the exhausted schedule accepts no further decisions
	_, err = validate.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: &ValidateMsg{
		Metadata:  &wagachain.Metadata{Schema: 1},
		GrantID:   grantID,
		Milestone: 1,
		Approved:  true,
	}})
	assert.IsErr(t, ErrScheduleInactive, err)
}

func TestScheduleSharesMustSumToFull(t *testing.T) {
	f := newFixture(t, false)
	grantID := f.createDevelopment(t, 100000, nil)

	h := scheduleHandler{auth: f.auth(f.owner), gw: f.gw}
	_, err := h.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: &CreateScheduleMsg{
		Metadata:     &wagachain.Metadata{Schema: 1},
		GrantID:      grantID,
		Descriptions: []string{"a", "b", "c", "d"},
		Shares:       []uint32{3000, 3000, 2500, 1400},
	}})
	assert.IsErr(t, errors.ErrInput, err)
}

func TestMilestoneIndexOutOfRange(t *testing.T) {
	f := newFixture(t, false)
	grantID := f.createDevelopment(t, 100000, []uint32{3000, 3000, 2500, 1500})
	f.fund(t, grantID)

	h := validateHandler{auth: f.auth(f.validator), gw: f.gw}
	_, err := h.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: &ValidateMsg{
		Metadata:  &wagachain.Metadata{Schema: 1},
		GrantID:   grantID,
		Milestone: 5,
		Approved:  true,
	}})
	assert.IsErr(t, errors.ErrInput, err)
}

func TestRejectionLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t, false)
	grantID := f.createDevelopment(t, 100000, []uint32{5000, 5000})
	f.fund(t, grantID)

	h := validateHandler{auth: f.auth(f.validator), gw: f.gw}
	res := f.deliver(t, h, &ValidateMsg{
		Metadata:  &wagachain.Metadata{Schema: 1},
		GrantID:   grantID,
		Milestone: 0,
		Approved:  false,
	})
	assert.Equal(t, 1, len(res.Tags))
	assert.Equal(t, "reject", string(res.Tags[0].Value))

	assert.Equal(t, coin.NewCoin(0, 0, "WAGA"), f.balance(t, f.beneficiary.Address()))
	var sched Schedule
	assert.Nil(t, f.gw.schedules.One(f.db, grantID, &sched))
	assert.Equal(t, uint32(0), sched.Completed)
	assert.Equal(t, false, sched.Milestones[0].Completed)

	// the milestone stays open for another decision
	f.deliver(t, h, &ValidateMsg{
		Metadata:  &wagachain.Metadata{Schema: 1},
		GrantID:   grantID,
		Milestone: 0,
		Approved:  true,
	})
	assert.Equal(t, coin.NewCoin(50000, 0, "WAGA"), f.balance(t, f.beneficiary.Address()))
}

func TestValidationRequiresCapability(t *testing.T) {
	f := newFixture(t, false)
	grantID := f.createDevelopment(t, 100000, []uint32{5000, 5000})
	f.fund(t, grantID)

	h := validateHandler{auth: f.auth(wagatest.NewCondition()), gw: f.gw}
	_, err := h.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: &ValidateMsg{
		Metadata:  &wagachain.Metadata{Schema: 1},
		GrantID:   grantID,
		Milestone: 0,
		Approved:  true,
	}})
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestNoDecisionBeforeFunding(t *testing.T) {
	f := newFixture(t, false)
	grantID := f.createDevelopment(t, 100000, []uint32{5000, 5000})

	evidence := evidenceHandler{auth: f.auth(f.beneficiary), gw: f.gw}
	_, err := evidence.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: &SubmitEvidenceMsg{
		Metadata:    &wagachain.Metadata{Schema: 1},
		GrantID:     grantID,
		Milestone:   0,
		EvidenceRef: "ipfs://QmEvidence0",
	}})
	assert.IsErr(t, ErrNotActive, err)

	validate := validateHandler{auth: f.auth(f.validator), gw: f.gw}
	_, err = validate.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: &ValidateMsg{
		Metadata:  &wagachain.Metadata{Schema: 1},
		GrantID:   grantID,
		Milestone: 0,
		Approved:  true,
	}})
	assert.IsErr(t, ErrNotActive, err)
}

func TestInsufficientEscrow(t *testing.T) {
	f := newFixture(t, false)
	grantID := f.createDevelopment(t, 100000, []uint32{3000, 3000, 2500, 1500})
	f.fund(t, grantID)

	// simulate a partially drained escrow record
	var esc Escrow
	assert.Nil(t, f.gw.escrows.One(f.db, grantID, &esc))
	esc.Released = coin.NewCoinp(90000, 0, "WAGA")
	_, err := f.gw.escrows.Put(f.db, grantID, &esc)
	assert.Nil(t, err)

	h := validateHandler{auth: f.auth(f.validator), gw: f.gw}
	_, err = h.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: &ValidateMsg{
		Metadata:  &wagachain.Metadata{Schema: 1},
		GrantID:   grantID,
		Milestone: 0,
		Approved:  true,
	}})
	assert.IsErr(t, ErrInsufficientEscrow, err)
}

func TestSelfValidationReleasesOnEvidence(t *testing.T) {
	f := newFixture(t, true)
	grantID := f.createDevelopment(t, 100000, []uint32{6000, 4000})
	f.fund(t, grantID)

	h := evidenceHandler{auth: f.auth(f.beneficiary), gw: f.gw}
	res := f.deliver(t, h, &SubmitEvidenceMsg{
		Metadata:    &wagachain.Metadata{Schema: 1},
		GrantID:     grantID,
		Milestone:   0,
		EvidenceRef: "ipfs://QmEvidence0",
	})
	assert.Equal(t, 1, len(res.Tags))
	assert.Equal(t, "approve", string(res.Tags[0].Value))
	assert.Equal(t, coin.NewCoin(60000, 0, "WAGA"), f.balance(t, f.beneficiary.Address()))
}

func TestProofValidation(t *testing.T) {
	outcomes := map[string]ProofOutcome{
		"circuit-ok":      ProofVerified,
		"circuit-bad":     ProofRejected,
		"circuit-expired": ProofExpired,
	}
	verifier := VerifierFunc(func(circuitID string, proof, publicInput []byte) (ProofOutcome, error) {
		return outcomes[circuitID], nil
	})

	f := newFixture(t, false)
	grantID := f.createDevelopment(t, 100000, []uint32{5000, 5000})
	f.fund(t, grantID)

	h := proofHandler{auth: f.auth(f.validator), gw: f.gw, verifier: verifier}

	msg := func(circuit string) *ValidateProofMsg {
		return &ValidateProofMsg{
			Metadata:    &wagachain.Metadata{Schema: 1},
			GrantID:     grantID,
			Milestone:   0,
			Proof:       []byte("proof"),
			CircuitID:   circuit,
			PublicInput: []byte("input"),
		}
	}

	// an expired proof fails the transaction without a decision
	_, err := h.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: msg("circuit-expired")})
	assert.IsErr(t, errors.ErrExpired, err)

	// a failed proof records a rejection
	res, err := h.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: msg("circuit-bad")})
	assert.Nil(t, err)
	assert.Equal(t, "reject", string(res.Tags[0].Value))
	assert.Equal(t, coin.NewCoin(0, 0, "WAGA"), f.balance(t, f.beneficiary.Address()))

	// a verified proof releases the milestone share
	res, err = h.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: msg("circuit-ok")})
	assert.Nil(t, err)
	assert.Equal(t, "approve", string(res.Tags[0].Value))
	assert.Equal(t, coin.NewCoin(50000, 0, "WAGA"), f.balance(t, f.beneficiary.Address()))
}

func TestCreateRequiresVerifiedBeneficiary(t *testing.T) {
	f := newFixture(t, false)

	h := createHandler{auth: f.auth(f.owner), gw: f.gw}
	_, err := h.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: &CreateMsg{
		Metadata:      &wagachain.Metadata{Schema: 1},
		Beneficiary:   wagatest.RandomAddr(),
		Amount:        coin.NewCoinp(50000, 0, "WAGA"),
		DurationYears: 3,
	}})
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestCreateRequiresOwner(t *testing.T) {
	f := newFixture(t, false)

	h := createHandler{auth: f.auth(f.beneficiary), gw: f.gw}
	_, err := h.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: &CreateMsg{
		Metadata:      &wagachain.Metadata{Schema: 1},
		Beneficiary:   f.beneficiary.Address(),
		Amount:        coin.NewCoinp(50000, 0, "WAGA"),
		DurationYears: 3,
	}})
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestCreateEnforcesConfigurationLimits(t *testing.T) {
	cases := map[string]struct {
		msg     *CreateMsg
		wantErr *errors.Error
	}{
		"amount below the minimum": {
			msg: &CreateMsg{
				Metadata:      &wagachain.Metadata{Schema: 1},
				Amount:        coin.NewCoinp(50, 0, "WAGA"),
				DurationYears: 3,
			},
			wantErr: errors.ErrAmount,
		},
		"revenue share above the maximum": {
			msg: &CreateMsg{
				Metadata:        &wagachain.Metadata{Schema: 1},
				Amount:          coin.NewCoinp(50000, 0, "WAGA"),
				RevenueShareBps: 6000,
				DurationYears:   3,
			},
			wantErr: errors.ErrInput,
		},
		"duration above the maximum": {
			msg: &CreateMsg{
				Metadata:      &wagachain.Metadata{Schema: 1},
				Amount:        coin.NewCoinp(50000, 0, "WAGA"),
				DurationYears: 30,
			},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t, false)
			tc.msg.Beneficiary = f.beneficiary.Address()
			h := createHandler{auth: f.auth(f.owner), gw: f.gw}
			_, err := h.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: tc.msg})
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestPlainGrantRevenueLifecycle(t *testing.T) {
	f := newFixture(t, false)

	create := createHandler{auth: f.auth(f.owner), gw: f.gw}
	res := f.deliver(t, create, &CreateMsg{
		Metadata:        &wagachain.Metadata{Schema: 1},
		Beneficiary:     f.beneficiary.Address(),
		Amount:          coin.NewCoinp(50000, 0, "WAGA"),
		RevenueShareBps: 2000,
		DurationYears:   3,
		RevenueTarget:   coin.NewCoinp(15000, 0, "WAGA"),
		Purpose:         "washing station upgrade",
	})
	grantID := res.Data

	// without a schedule funding pays the beneficiary directly
	f.fund(t, grantID)
	assert.Equal(t, coin.NewCoin(50000, 0, "WAGA"), f.balance(t, f.beneficiary.Address()))

	var g Grant
	assert.Nil(t, f.gw.grants.One(f.db, grantID, &g))
	assert.Equal(t, GrantStatusActive, g.Status)
	assert.Equal(t, coin.NewCoinp(50000, 0, "WAGA"), g.Disbursed)

	// funding twice is rejected
	fund := fundHandler{auth: f.auth(f.owner), gw: f.gw}
	_, err := fund.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: &FundMsg{
		Metadata: &wagachain.Metadata{Schema: 1},
		GrantID:  grantID,
	}})
	assert.IsErr(t, errors.ErrState, err)

	treasuryBefore := f.balance(t, f.treasury)

	revenue := revenueHandler{auth: f.auth(f.beneficiary), gw: f.gw}
	f.deliver(t, revenue, &RecordRevenueMsg{
		Metadata: &wagachain.Metadata{Schema: 1},
		GrantID:  grantID,
		Amount:   coin.NewCoinp(50000, 0, "WAGA"),
	})

	// 2000 bps of 50000
	assert.Nil(t, f.gw.grants.One(f.db, grantID, &g))
	assert.Equal(t, coin.NewCoinp(10000, 0, "WAGA"), g.RevenueShared)
	assert.Equal(t, GrantStatusActive, g.Status)
	treasuryAfter := f.balance(t, f.treasury)
	diff, err := treasuryAfter.Subtract(treasuryBefore)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(10000, 0, "WAGA"), diff)

	// crossing the revenue target completes the grant
	f.deliver(t, revenue, &RecordRevenueMsg{
		Metadata: &wagachain.Metadata{Schema: 1},
		GrantID:  grantID,
		Amount:   coin.NewCoinp(30000, 0, "WAGA"),
	})
	assert.Nil(t, f.gw.grants.One(f.db, grantID, &g))
	assert.Equal(t, coin.NewCoinp(16000, 0, "WAGA"), g.RevenueShared)
	assert.Equal(t, GrantStatusCompleted, g.Status)

	// a completed grant collects no further revenue
	_, err = revenue.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: &RecordRevenueMsg{
		Metadata: &wagachain.Metadata{Schema: 1},
		GrantID:  grantID,
		Amount:   coin.NewCoinp(1000, 0, "WAGA"),
	}})
	assert.IsErr(t, ErrAlreadyCompleted, err)
}

func TestRevenueAfterMaturity(t *testing.T) {
	f := newFixture(t, false)

	create := createHandler{auth: f.auth(f.owner), gw: f.gw}
	res := f.deliver(t, create, &CreateMsg{
		Metadata:        &wagachain.Metadata{Schema: 1},
		Beneficiary:     f.beneficiary.Address(),
		Amount:          coin.NewCoinp(50000, 0, "WAGA"),
		RevenueShareBps: 2000,
		DurationYears:   1,
	})
	grantID := res.Data
	f.fund(t, grantID)

	now, err := wagachain.BlockTime(f.ctx)
	assert.Nil(t, err)
	f.ctx = wagachain.WithBlockTime(context.Background(), now.Add(2*365*24*time.Hour))

	treasuryBefore := f.balance(t, f.treasury)

	// the report past maturity still collects the share, then matures
	// the grant in the same delivery
	revenue := revenueHandler{auth: f.auth(f.beneficiary), gw: f.gw}
	f.deliver(t, revenue, &RecordRevenueMsg{
		Metadata: &wagachain.Metadata{Schema: 1},
		GrantID:  grantID,
		Amount:   coin.NewCoinp(1000, 0, "WAGA"),
	})

	var g Grant
	assert.Nil(t, f.gw.grants.One(f.db, grantID, &g))
	assert.Equal(t, GrantStatusMatured, g.Status)
	assert.Equal(t, coin.NewCoinp(200, 0, "WAGA"), g.RevenueShared)
	treasuryAfter := f.balance(t, f.treasury)
	diff, err := treasuryAfter.Subtract(treasuryBefore)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(200, 0, "WAGA"), diff)

	// a matured grant collects no further revenue
	_, err = revenue.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: &RecordRevenueMsg{
		Metadata: &wagachain.Metadata{Schema: 1},
		GrantID:  grantID,
		Amount:   coin.NewCoinp(1000, 0, "WAGA"),
	}})
	assert.IsErr(t, ErrAlreadyCompleted, err)
}

func TestCompleteHandler(t *testing.T) {
	f := newFixture(t, false)

	create := createHandler{auth: f.auth(f.owner), gw: f.gw}
	newGrant := func() []byte {
		res := f.deliver(t, create, &CreateMsg{
			Metadata:        &wagachain.Metadata{Schema: 1},
			Beneficiary:     f.beneficiary.Address(),
			Amount:          coin.NewCoinp(50000, 0, "WAGA"),
			RevenueShareBps: 2000,
			DurationYears:   1,
		})
		f.fund(t, res.Data)
		return res.Data
	}
	early := newGrant()
	matured := newGrant()

	h := completeHandler{auth: f.auth(f.owner), gw: f.gw}

	// completing before maturity ends the grant as completed
	f.deliver(t, h, &CompleteMsg{
		Metadata: &wagachain.Metadata{Schema: 1},
		GrantID:  early,
	})
	var g Grant
	assert.Nil(t, f.gw.grants.One(f.db, early, &g))
	assert.Equal(t, GrantStatusCompleted, g.Status)

	// terminal statuses are final
	_, err := h.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: &CompleteMsg{
		Metadata: &wagachain.Metadata{Schema: 1},
		GrantID:  early,
	}})
	assert.IsErr(t, ErrAlreadyCompleted, err)

	now, err := wagachain.BlockTime(f.ctx)
	assert.Nil(t, err)
	f.ctx = wagachain.WithBlockTime(context.Background(), now.Add(2*365*24*time.Hour))

	// past maturity the same operation ends the grant as matured
	f.deliver(t, h, &CompleteMsg{
		Metadata: &wagachain.Metadata{Schema: 1},
		GrantID:  matured,
	})
	assert.Nil(t, f.gw.grants.One(f.db, matured, &g))
	assert.Equal(t, GrantStatusMatured, g.Status)
}

func TestBatchLinkIsUnique(t *testing.T) {
	f := newFixture(t, false)
	batch := []byte("batch-7")

	create := createHandler{auth: f.auth(f.owner), gw: f.gw}
	f.deliver(t, create, &CreateMsg{
		Metadata:      &wagachain.Metadata{Schema: 1},
		Beneficiary:   f.beneficiary.Address(),
		Amount:        coin.NewCoinp(50000, 0, "WAGA"),
		DurationYears: 3,
		BatchID:       batch,
	})

	_, err := create.Deliver(f.ctx, f.db, &wagatest.Tx{Msg: &CreateMsg{
		Metadata:      &wagachain.Metadata{Schema: 1},
		Beneficiary:   f.beneficiary.Address(),
		Amount:        coin.NewCoinp(50000, 0, "WAGA"),
		DurationYears: 3,
		BatchID:       batch,
	}})
	assert.IsErr(t, errors.ErrDuplicate, err)
}

func TestMilestoneShareRoundingLeavesNoDust(t *testing.T) {
	// a grant amount that does not divide evenly by the shares
	f := newFixture(t, false)
	grantID := f.createDevelopment(t, 99999, []uint32{3333, 3333, 3334})
	f.fund(t, grantID)

	validate := validateHandler{auth: f.auth(f.validator), gw: f.gw}
	for _, index := range []uint32{0, 1, 2} {
		f.deliver(t, validate, &ValidateMsg{
			Metadata:  &wagachain.Metadata{Schema: 1},
			GrantID:   grantID,
			Milestone: index,
			Approved:  true,
		})
	}

	// the last release takes the remainder so the sum is exact
	assert.Equal(t, coin.NewCoin(99999, 0, "WAGA"), f.balance(t, f.beneficiary.Address()))
	assert.Equal(t, coin.NewCoin(0, 0, "WAGA"), f.balance(t, EscrowCondition(grantID).Address()))

	var g Grant
	assert.Nil(t, f.gw.grants.One(f.db, grantID, &g))
	assert.Equal(t, coin.NewCoinp(99999, 0, "WAGA"), g.Disbursed)
}
