package grant

import (
	"github.com/tendermint/tendermint/libs/common"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/coin"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/x/cash"
	"github.com/wagatoken/wagachain/x/project"
)

// decisionTagKey indexes milestone decisions for event subscriptions.
var decisionTagKey = []byte("grant-decision")

// gateway is the single decision point for milestone releases. Both the
// manual and the proof based validation pathway converge here so the
// escrow bookkeeping and the fund movement cannot diverge.
type gateway struct {
	grants    GrantBucket
	schedules ScheduleBucket
	escrows   EscrowBucket
	totals    TotalsBucket
	control   cash.Controller
	projects  project.Controller
}

func newGateway(control cash.Controller, projects project.Controller) gateway {
	return gateway{
		grants:    NewGrantBucket(),
		schedules: NewScheduleBucket(),
		escrows:   NewEscrowBucket(),
		totals:    NewTotalsBucket(),
		control:   control,
		projects:  projects,
	}
}

// decide records a milestone decision and, on approval, releases the
// milestone share from the escrow to the beneficiary. All bucket writes
// happen before any funds move.
func (g gateway) decide(ctx wagachain.Context, db wagachain.KVStore, grantID []byte, index uint32, approver wagachain.Address, approved bool) ([]common.KVPair, error) {
	var grant Grant
	if err := g.grants.One(db, grantID, &grant); err != nil {
		return nil, errors.Wrap(err, "load grant")
	}
	switch {
	case grant.Status.Terminal():
		return nil, errors.Wrapf(ErrAlreadyCompleted, "grant is %s", grant.Status)
	case !grant.Funded:
		return nil, errors.Wrap(ErrNotActive, "grant not funded")
	}

	var sched Schedule
	if err := g.schedules.One(db, grantID, &sched); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(ErrScheduleInactive, "no schedule")
		}
		return nil, errors.Wrap(err, "load schedule")
	}
	if !sched.Active {
		return nil, ErrScheduleInactive
	}
	if int(index) >= len(sched.Milestones) {
		return nil, errors.Wrapf(errors.ErrInput, "milestone %d of %d", index, len(sched.Milestones))
	}
	milestone := sched.Milestones[index]
	if milestone.Completed {
		return nil, errors.Wrapf(ErrMilestoneDone, "milestone %d", index)
	}

	if !approved {
		// A rejection leaves every record untouched. The milestone can
		// be decided again after new evidence.
		return []common.KVPair{
			{Key: decisionTagKey, Value: []byte("reject")},
		}, nil
	}

	var escrow Escrow
	if err := g.escrows.One(db, grantID, &escrow); err != nil {
		return nil, errors.Wrap(err, "load escrow")
	}
	remaining, err := escrow.Remaining()
	if err != nil {
		return nil, err
	}

	amount, err := milestoneAmount(&grant, &sched, index, remaining)
	if err != nil {
		return nil, err
	}
	if !remaining.IsGTE(amount) {
		return nil, errors.Wrapf(ErrInsufficientEscrow, "release %s, remaining %s", amount, remaining)
	}

	now, err := wagachain.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	milestone.Completed = true
	milestone.CompletedAt = wagachain.AsUnixTime(now)
	milestone.Approver = approver
	milestone.Released = &amount
	sched.Completed++
	if int(sched.Completed) == len(sched.Milestones) {
		sched.Active = false
	}
	if _, err := g.schedules.Put(db, grantID, &sched); err != nil {
		return nil, errors.Wrap(err, "store schedule")
	}

	released, err := addCoin(escrow.Released, amount)
	if err != nil {
		return nil, errors.Wrap(err, "escrow released")
	}
	escrow.Released = released
	if _, err := g.escrows.Put(db, grantID, &escrow); err != nil {
		return nil, errors.Wrap(err, "store escrow")
	}

	totals, err := g.totals.Totals(db)
	if err != nil {
		return nil, err
	}
	totalReleased, err := addCoin(totals.Released, amount)
	if err != nil {
		return nil, errors.Wrap(err, "total released")
	}
	totals.Released = totalReleased
	if err := g.totals.Save(db, totals); err != nil {
		return nil, errors.Wrap(err, "store totals")
	}

	disbursed, err := addCoin(grant.Disbursed, amount)
	if err != nil {
		return nil, errors.Wrap(err, "disbursed")
	}
	grant.Disbursed = disbursed
	// The first disbursement activates the grant.
	if grant.Status == GrantStatusPending {
		grant.Status = GrantStatusActive
	}
	if _, err := g.grants.Put(db, grantID, &grant); err != nil {
		return nil, errors.Wrap(err, "store grant")
	}

	if len(grant.ProjectID) != 0 {
		delivered := !sched.Active
		if err := g.projects.AdvanceStage(db, grant.ProjectID, milestone.EvidenceRef, delivered); err != nil {
			return nil, errors.Wrap(err, "advance project")
		}
	}

	// The bookkeeping above is final before any funds move.
	src := EscrowCondition(grantID).Address()
	if err := g.control.MoveCoins(db, src, grant.Beneficiary, amount); err != nil {
		return nil, errors.Wrap(err, "release funds")
	}

	return []common.KVPair{
		{Key: decisionTagKey, Value: []byte("approve")},
	}, nil
}

// milestoneAmount computes the release for one milestone. The share is
// basis points of the grant amount, rounded down. The last open
// milestone instead takes the full escrow remainder so rounding dust
// never strands in the escrow.
func milestoneAmount(grant *Grant, sched *Schedule, index uint32, remaining coin.Coin) (coin.Coin, error) {
	open := 0
	for _, m := range sched.Milestones {
		if !m.Completed {
			open++
		}
	}
	if open == 1 {
		return remaining, nil
	}
	one, _, err := grant.Amount.Divide(int64(fullShareBps))
	if err != nil {
		return coin.Coin{}, errors.Wrap(err, "divide amount")
	}
	return one.Multiply(int64(sched.Milestones[index].ShareBps))
}

// addCoin is nil tolerant coin addition for the running totals.
func addCoin(total *coin.Coin, amount coin.Coin) (*coin.Coin, error) {
	if total == nil {
		return &amount, nil
	}
	sum, err := total.Add(amount)
	if err != nil {
		return nil, err
	}
	return &sum, nil
}
