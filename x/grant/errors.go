package grant

import "github.com/wagatoken/wagachain/errors"

var (
	// ErrNotActive is raised when an operation requires an active grant.
	ErrNotActive = errors.Register(1100, "grant not active")

	// ErrAlreadyCompleted is raised when a grant already reached a
	// terminal status. Distinguished from ErrNotActive so callers can
	// tell a finished grant from one that was never activated.
	ErrAlreadyCompleted = errors.Register(1101, "grant already completed")

	// ErrMilestoneDone is raised when deciding on a milestone that was
	// already completed. Milestones are never reopened.
	ErrMilestoneDone = errors.Register(1102, "milestone already completed")

	// ErrScheduleInactive is raised when deciding against a missing or
	// deactivated disbursement schedule.
	ErrScheduleInactive = errors.Register(1103, "schedule not active")

	// ErrInsufficientEscrow is raised when a release would exceed the
	// remaining escrowed funds. This signals a genuine shortfall, not a
	// caller mistake.
	ErrInsufficientEscrow = errors.Register(1104, "insufficient escrow")
)
