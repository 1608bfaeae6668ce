package grant

import (
	"time"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/coin"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/gconf"
	"github.com/wagatoken/wagachain/migration"
	"github.com/wagatoken/wagachain/x"
	"github.com/wagatoken/wagachain/x/cash"
	"github.com/wagatoken/wagachain/x/project"
	"github.com/wagatoken/wagachain/x/role"
)

const (
	createTxCost   int64 = 100
	scheduleTxCost int64 = 100
	fundTxCost     int64 = 200
	evidenceTxCost int64 = 50
	decideTxCost   int64 = 200
	revenueTxCost  int64 = 100
	completeTxCost int64 = 50
)

// Role capabilities consulted by this extension.
const (
	// CapVerified marks a beneficiary that passed identity checks.
	CapVerified = "verified"
	// CapValidator allows manual milestone decisions.
	CapValidator = "validator"
)

// RegisterRoutes installs the handlers of this extension. Fund custody
// goes through the cash controller, milestone approvals drive the
// linked projects and proof decisions go through the verifier.
func RegisterRoutes(r wagachain.Registry, auth x.Authenticator, control cash.Controller, projects project.Controller, verifier ProofVerifier) {
	r = migration.SchemaMigratingRegistry("grant", r)
	gw := newGateway(control, projects)
	r.Handle(&CreateMsg{}, createHandler{auth: auth, gw: gw})
	r.Handle(&CreateDevelopmentMsg{}, createDevelopmentHandler{auth: auth, gw: gw})
	r.Handle(&CreateScheduleMsg{}, scheduleHandler{auth: auth, gw: gw})
	r.Handle(&FundMsg{}, fundHandler{auth: auth, gw: gw})
	r.Handle(&SubmitEvidenceMsg{}, evidenceHandler{auth: auth, gw: gw})
	r.Handle(&ValidateMsg{}, validateHandler{auth: auth, gw: gw})
	r.Handle(&ValidateProofMsg{}, proofHandler{auth: auth, gw: gw, verifier: verifier})
	r.Handle(&RecordRevenueMsg{}, revenueHandler{auth: auth, gw: gw})
	r.Handle(&CompleteMsg{}, completeHandler{auth: auth, gw: gw})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler("grant", &Configuration{}, auth, nil))
}

// authorizeOwner requires the configuration owner among the signers.
func authorizeOwner(ctx wagachain.Context, db wagachain.KVStore, auth x.Authenticator) (*Configuration, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !auth.HasAddress(ctx, conf.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	return conf, nil
}

// authorizeDecider requires the configuration owner or a signer holding
// the validator capability.
func authorizeDecider(ctx wagachain.Context, db wagachain.KVStore, auth x.Authenticator, conf *Configuration) (wagachain.Address, error) {
	if auth.HasAddress(ctx, conf.Owner) {
		return conf.Owner, nil
	}
	for _, addr := range x.GetAddresses(ctx, auth) {
		ok, err := role.HasCapability(db, addr, CapValidator)
		if err != nil {
			return nil, errors.Wrap(err, "check capability")
		}
		if ok {
			return addr, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrUnauthorized, "%q capability required", CapValidator)
}

type createHandler struct {
	auth x.Authenticator
	gw   gateway
}

var _ wagachain.Handler = createHandler{}

func (h createHandler) Check(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	var msg CreateMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := authorizeOwner(ctx, store, h.auth); err != nil {
		return nil, err
	}
	return &wagachain.CheckResult{GasAllocated: createTxCost}, nil
}

func (h createHandler) Deliver(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	var msg CreateMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	_, key, err := createGrant(ctx, store, h.auth, h.gw, &msg, false)
	if err != nil {
		return nil, err
	}
	return &wagachain.DeliverResult{Data: key}, nil
}

type createDevelopmentHandler struct {
	auth x.Authenticator
	gw   gateway
}

var _ wagachain.Handler = createDevelopmentHandler{}

func (h createDevelopmentHandler) Check(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	var msg CreateDevelopmentMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := authorizeOwner(ctx, store, h.auth); err != nil {
		return nil, err
	}
	return &wagachain.CheckResult{GasAllocated: createTxCost}, nil
}

func (h createDevelopmentHandler) Deliver(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	var msg CreateDevelopmentMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	base := CreateMsg{
		Metadata:        msg.Metadata,
		Beneficiary:     msg.Beneficiary,
		Amount:          msg.Amount,
		RevenueShareBps: msg.RevenueShareBps,
		DurationYears:   msg.DurationYears,
		RevenueTarget:   msg.RevenueTarget,
		Purpose:         msg.Purpose,
		BatchID:         msg.BatchID,
	}
	grant, key, err := createGrant(ctx, store, h.auth, h.gw, &base, true)
	if err != nil {
		return nil, err
	}

	projectID, err := h.gw.projects.CreateProject(store, key, msg.ProjectMetadataRef, msg.ProjectedYield)
	if err != nil {
		return nil, errors.Wrap(err, "create project")
	}
	grant.ProjectID = projectID
	if _, err := h.gw.grants.Put(store, key, grant); err != nil {
		return nil, errors.Wrap(err, "store grant")
	}
	return &wagachain.DeliverResult{Data: key}, nil
}

// createGrant is the creation core shared by both tracks. The caller
// must have validated the message.
func createGrant(ctx wagachain.Context, db wagachain.KVStore, auth x.Authenticator, gw gateway, msg *CreateMsg, development bool) (*Grant, []byte, error) {
	conf, err := authorizeOwner(ctx, db, auth)
	if err != nil {
		return nil, nil, err
	}

	verified, err := role.HasCapability(db, msg.Beneficiary, CapVerified)
	if err != nil {
		return nil, nil, errors.Wrap(err, "check capability")
	}
	if !verified {
		return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "beneficiary lacks the %q capability", CapVerified)
	}

	if conf.MinAmount.IsPositive() && !msg.Amount.IsGTE(conf.MinAmount) {
		return nil, nil, errors.Wrapf(errors.ErrAmount, "below the minimum of %s", conf.MinAmount)
	}
	if msg.RevenueShareBps > conf.MaxRevenueShareBps {
		return nil, nil, errors.Wrapf(errors.ErrInput, "revenue share above the maximum of %d", conf.MaxRevenueShareBps)
	}
	if msg.DurationYears > conf.MaxDurationYears {
		return nil, nil, errors.Wrapf(errors.ErrInput, "duration above the maximum of %d years", conf.MaxDurationYears)
	}

	now, err := wagachain.BlockTime(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "block time")
	}
	createdAt := wagachain.AsUnixTime(now)

	grant := Grant{
		Metadata:         &wagachain.Metadata{Schema: 1},
		Beneficiary:      msg.Beneficiary,
		Amount:           msg.Amount,
		RevenueShareBps:  msg.RevenueShareBps,
		CreatedAt:        createdAt,
		MaturesAt:        createdAt.Add(time.Duration(msg.DurationYears) * 365 * 24 * time.Hour),
		RevenueTarget:    msg.RevenueTarget,
		Status:           GrantStatusPending,
		Purpose:          msg.Purpose,
		DevelopmentTrack: development,
		BatchID:          msg.BatchID,
	}
	key, err := gw.grants.Put(db, nil, &grant)
	if err != nil {
		return nil, nil, errors.Wrap(err, "store grant")
	}
	return &grant, key, nil
}

type scheduleHandler struct {
	auth x.Authenticator
	gw   gateway
}

var _ wagachain.Handler = scheduleHandler{}

func (h scheduleHandler) Check(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	if _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &wagachain.CheckResult{GasAllocated: scheduleTxCost}, nil
}

func (h scheduleHandler) Deliver(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	msg, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}

	var grant Grant
	if err := h.gw.grants.One(store, msg.GrantID, &grant); err != nil {
		return nil, errors.Wrap(err, "load grant")
	}
	if !grant.DevelopmentTrack {
		return nil, errors.Wrap(errors.ErrState, "not a development grant")
	}
	// Funding decides between direct payout and escrow, so the schedule
	// must exist before the money moves.
	if grant.Funded {
		return nil, errors.Wrap(errors.ErrState, "grant already funded")
	}
	switch err := h.gw.schedules.Has(store, msg.GrantID); {
	case err == nil:
		return nil, errors.Wrap(errors.ErrDuplicate, "schedule exists")
	case errors.ErrNotFound.Is(err):
		// first schedule for this grant
	default:
		return nil, errors.Wrap(err, "check schedule")
	}

	milestones := make([]*Milestone, len(msg.Shares))
	for i := range msg.Shares {
		milestones[i] = &Milestone{
			Description: msg.Descriptions[i],
			ShareBps:    msg.Shares[i],
		}
	}
	sched := Schedule{
		Metadata:   &wagachain.Metadata{Schema: 1},
		GrantID:    msg.GrantID,
		Milestones: milestones,
		Active:     true,
	}
	key, err := h.gw.schedules.Put(store, msg.GrantID, &sched)
	if err != nil {
		return nil, errors.Wrap(err, "store schedule")
	}

	// The escrow record is reserved together with the schedule. Funding
	// later only moves the coins in.
	amount := *grant.Amount
	escrow := Escrow{
		Metadata: &wagachain.Metadata{Schema: 1},
		GrantID:  msg.GrantID,
		Escrowed: &amount,
	}
	if _, err := h.gw.escrows.Put(store, msg.GrantID, &escrow); err != nil {
		return nil, errors.Wrap(err, "store escrow")
	}
	totals, err := h.gw.totals.Totals(store)
	if err != nil {
		return nil, err
	}
	escrowed, err := addCoin(totals.Escrowed, amount)
	if err != nil {
		return nil, errors.Wrap(err, "total escrowed")
	}
	totals.Escrowed = escrowed
	if err := h.gw.totals.Save(store, totals); err != nil {
		return nil, errors.Wrap(err, "store totals")
	}
	return &wagachain.DeliverResult{Data: key}, nil
}

func (h scheduleHandler) validate(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*CreateScheduleMsg, error) {
	var msg CreateScheduleMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := authorizeOwner(ctx, store, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}

type fundHandler struct {
	auth x.Authenticator
	gw   gateway
}

var _ wagachain.Handler = fundHandler{}

func (h fundHandler) Check(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	if _, _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &wagachain.CheckResult{GasAllocated: fundTxCost}, nil
}

func (h fundHandler) Deliver(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}

	var grant Grant
	if err := h.gw.grants.One(store, msg.GrantID, &grant); err != nil {
		return nil, errors.Wrap(err, "load grant")
	}
	if grant.Funded {
		return nil, errors.Wrap(errors.ErrState, "grant already funded")
	}
	if grant.Status != GrantStatusPending {
		return nil, errors.Wrapf(ErrNotActive, "grant is %s", grant.Status)
	}

	scheduled := false
	switch err := h.gw.schedules.Has(store, msg.GrantID); {
	case err == nil:
		scheduled = true
	case errors.ErrNotFound.Is(err):
		// direct payout
	default:
		return nil, errors.Wrap(err, "check schedule")
	}

	amount := *grant.Amount
	grant.Funded = true

	if scheduled {
		// The money sits in the escrow and the grant stays pending
		// until the first milestone release.
		if err := h.gw.escrows.Has(store, msg.GrantID); err != nil {
			return nil, errors.Wrap(err, "check escrow")
		}
		if _, err := h.gw.grants.Put(store, msg.GrantID, &grant); err != nil {
			return nil, errors.Wrap(err, "store grant")
		}
		dest := EscrowCondition(msg.GrantID).Address()
		if err := h.gw.control.MoveCoins(store, conf.Treasury, dest, amount); err != nil {
			return nil, errors.Wrap(err, "fund escrow")
		}
	} else {
		// A grant without a schedule pays out in full right away.
		grant.Status = GrantStatusActive
		grant.Disbursed = &amount
		if _, err := h.gw.grants.Put(store, msg.GrantID, &grant); err != nil {
			return nil, errors.Wrap(err, "store grant")
		}
		if err := h.gw.control.MoveCoins(store, conf.Treasury, grant.Beneficiary, amount); err != nil {
			return nil, errors.Wrap(err, "pay beneficiary")
		}
	}
	return &wagachain.DeliverResult{Data: msg.GrantID}, nil
}

func (h fundHandler) validate(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*FundMsg, *Configuration, error) {
	var msg FundMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := authorizeOwner(ctx, store, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, conf, nil
}

type evidenceHandler struct {
	auth x.Authenticator
	gw   gateway
}

var _ wagachain.Handler = evidenceHandler{}

func (h evidenceHandler) Check(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	var msg SubmitEvidenceMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &wagachain.CheckResult{GasAllocated: evidenceTxCost}, nil
}

func (h evidenceHandler) Deliver(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	var msg SubmitEvidenceMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	var grant Grant
	if err := h.gw.grants.One(store, msg.GrantID, &grant); err != nil {
		return nil, errors.Wrap(err, "load grant")
	}
	if !h.auth.HasAddress(ctx, grant.Beneficiary) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "beneficiary signature required")
	}
	switch {
	case grant.Status.Terminal():
		return nil, errors.Wrapf(ErrAlreadyCompleted, "grant is %s", grant.Status)
	case !grant.Funded:
		// Evidence for the first milestone arrives while the grant is
		// still pending, but never before the escrow holds the money.
		return nil, errors.Wrap(ErrNotActive, "grant not funded")
	}

	var sched Schedule
	if err := h.gw.schedules.One(store, msg.GrantID, &sched); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(ErrScheduleInactive, "no schedule")
		}
		return nil, errors.Wrap(err, "load schedule")
	}
	if !sched.Active {
		return nil, ErrScheduleInactive
	}
	if int(msg.Milestone) >= len(sched.Milestones) {
		return nil, errors.Wrapf(errors.ErrInput, "milestone %d of %d", msg.Milestone, len(sched.Milestones))
	}
	milestone := sched.Milestones[msg.Milestone]
	if milestone.Completed {
		return nil, errors.Wrapf(ErrMilestoneDone, "milestone %d", msg.Milestone)
	}

	milestone.EvidenceRef = msg.EvidenceRef
	if _, err := h.gw.schedules.Put(store, msg.GrantID, &sched); err != nil {
		return nil, errors.Wrap(err, "store schedule")
	}

	conf, err := loadConf(store)
	if err != nil {
		return nil, err
	}
	res := wagachain.DeliverResult{Data: msg.GrantID}
	if conf.SelfValidation {
		tags, err := h.gw.decide(ctx, store, msg.GrantID, msg.Milestone, grant.Beneficiary, true)
		if err != nil {
			return nil, err
		}
		res.Tags = tags
	}
	return &res, nil
}

type validateHandler struct {
	auth x.Authenticator
	gw   gateway
}

var _ wagachain.Handler = validateHandler{}

func (h validateHandler) Check(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	var msg ValidateMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &wagachain.CheckResult{GasAllocated: decideTxCost}, nil
}

func (h validateHandler) Deliver(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	var msg ValidateMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(store)
	if err != nil {
		return nil, err
	}
	approver, err := authorizeDecider(ctx, store, h.auth, conf)
	if err != nil {
		return nil, err
	}
	tags, err := h.gw.decide(ctx, store, msg.GrantID, msg.Milestone, approver, msg.Approved)
	if err != nil {
		return nil, err
	}
	return &wagachain.DeliverResult{Data: msg.GrantID, Tags: tags}, nil
}

type proofHandler struct {
	auth     x.Authenticator
	gw       gateway
	verifier ProofVerifier
}

var _ wagachain.Handler = proofHandler{}

func (h proofHandler) Check(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	var msg ValidateProofMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &wagachain.CheckResult{GasAllocated: decideTxCost}, nil
}

func (h proofHandler) Deliver(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	var msg ValidateProofMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if h.verifier == nil {
		return nil, errors.Wrap(errors.ErrHuman, "no proof verifier configured")
	}

	// The proof carries the authority, the signer only pays for the
	// transaction. Record who brought it as the approver.
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}

	outcome, err := h.verifier.Verify(msg.CircuitID, msg.Proof, msg.PublicInput)
	if err != nil {
		return nil, errors.Wrap(err, "verify proof")
	}
	var approved bool
	switch outcome {
	case ProofVerified:
		approved = true
	case ProofRejected:
		approved = false
	case ProofExpired:
		return nil, errors.Wrap(errors.ErrExpired, "proof expired")
	default:
		return nil, errors.Wrapf(errors.ErrState, "unknown proof outcome %d", outcome)
	}

	tags, err := h.gw.decide(ctx, store, msg.GrantID, msg.Milestone, signer.Address(), approved)
	if err != nil {
		return nil, err
	}
	return &wagachain.DeliverResult{Data: msg.GrantID, Tags: tags}, nil
}

type revenueHandler struct {
	auth x.Authenticator
	gw   gateway
}

var _ wagachain.Handler = revenueHandler{}

func (h revenueHandler) Check(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	var msg RecordRevenueMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &wagachain.CheckResult{GasAllocated: revenueTxCost}, nil
}

func (h revenueHandler) Deliver(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	var msg RecordRevenueMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(store)
	if err != nil {
		return nil, err
	}

	var grant Grant
	if err := h.gw.grants.One(store, msg.GrantID, &grant); err != nil {
		return nil, errors.Wrap(err, "load grant")
	}
	// The share is paid from the beneficiary's wallet.
	if !h.auth.HasAddress(ctx, grant.Beneficiary) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "beneficiary signature required")
	}
	switch {
	case grant.Status.Terminal():
		return nil, errors.Wrapf(ErrAlreadyCompleted, "grant is %s", grant.Status)
	case grant.Status != GrantStatusActive:
		return nil, errors.Wrapf(ErrNotActive, "grant is %s", grant.Status)
	}

	share, err := revenueShare(*msg.Amount, grant.RevenueShareBps)
	if err != nil {
		return nil, err
	}
	if share.IsPositive() {
		shared, err := addCoin(grant.RevenueShared, share)
		if err != nil {
			return nil, errors.Wrap(err, "revenue shared")
		}
		grant.RevenueShared = shared
	}

	// The report itself can conclude the grant. A matured grant still
	// collects this last share, later reports are rejected as terminal.
	switch {
	case wagachain.IsExpired(ctx, grant.MaturesAt):
		grant.Status = GrantStatusMatured
	case grant.RevenueTarget != nil && grant.RevenueShared != nil && grant.RevenueShared.IsGTE(*grant.RevenueTarget):
		grant.Status = GrantStatusCompleted
	}
	if _, err := h.gw.grants.Put(store, msg.GrantID, &grant); err != nil {
		return nil, errors.Wrap(err, "store grant")
	}

	if share.IsPositive() {
		if err := h.gw.control.MoveCoins(store, grant.Beneficiary, conf.Treasury, share); err != nil {
			return nil, errors.Wrap(err, "pay revenue share")
		}
	}
	return &wagachain.DeliverResult{Data: msg.GrantID}, nil
}

// revenueShare is bps basis points of amount, rounded down.
func revenueShare(amount coin.Coin, bps uint32) (coin.Coin, error) {
	one, _, err := amount.Divide(int64(fullShareBps))
	if err != nil {
		return coin.Coin{}, errors.Wrap(err, "divide amount")
	}
	return one.Multiply(int64(bps))
}

type completeHandler struct {
	auth x.Authenticator
	gw   gateway
}

var _ wagachain.Handler = completeHandler{}

func (h completeHandler) Check(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.CheckResult, error) {
	if _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &wagachain.CheckResult{GasAllocated: completeTxCost}, nil
}

func (h completeHandler) Deliver(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*wagachain.DeliverResult, error) {
	msg, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}

	var grant Grant
	if err := h.gw.grants.One(store, msg.GrantID, &grant); err != nil {
		return nil, errors.Wrap(err, "load grant")
	}
	switch {
	case grant.Status.Terminal():
		return nil, errors.Wrapf(ErrAlreadyCompleted, "grant is %s", grant.Status)
	case grant.Status != GrantStatusActive:
		return nil, errors.Wrapf(ErrNotActive, "grant is %s", grant.Status)
	}

	// Past maturity the grant ends as matured, before it as completed.
	if wagachain.IsExpired(ctx, grant.MaturesAt) {
		grant.Status = GrantStatusMatured
	} else {
		grant.Status = GrantStatusCompleted
	}
	if _, err := h.gw.grants.Put(store, msg.GrantID, &grant); err != nil {
		return nil, errors.Wrap(err, "store grant")
	}
	return &wagachain.DeliverResult{Data: msg.GrantID}, nil
}

func (h completeHandler) validate(ctx wagachain.Context, store wagachain.KVStore, tx wagachain.Tx) (*CompleteMsg, error) {
	var msg CompleteMsg
	if err := wagachain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := authorizeOwner(ctx, store, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}
