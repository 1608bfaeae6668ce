package wagachain

import (
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"

	"github.com/wagatoken/wagachain/coin"
)

// CheckResult captures the expected cost of a transaction as estimated
// during the mempool admission check. No state is written on this path.
type CheckResult struct {
	// Data is a machine parseable return value, usually the key of the
	// entity the transaction would create.
	Data []byte
	Log  string
	// GasAllocated is the maximum work the handler may spend during
	// delivery.
	GasAllocated int64
	// GasPayment is the work already performed during the check itself,
	// signature verification being the main source.
	GasPayment int64
	// RequiredFee is set by the fee decorator. A zero value means no fee
	// is charged for this transaction.
	RequiredFee coin.Coin
}

// ToABCI converts the result into the tendermint response type.
func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverResult captures the outcome of executing a transaction against the
// application state.
type DeliverResult struct {
	// Data is a machine parseable return value, usually the key of the
	// entity the transaction created or modified.
	Data []byte
	Log  string
	// Diff carries validator set changes to apply at the end of the
	// block.
	Diff []abci.ValidatorUpdate
	// Tags index this transaction for event subscriptions.
	Tags    []common.KVPair
	GasUsed int64
	// RequiredFee is the fee that was charged for this transaction.
	RequiredFee coin.Coin
}

// ToABCI converts the result into the tendermint response type.
func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		GasUsed: d.GasUsed,
		Tags:    d.Tags,
	}
}

// Checker runs the admission check of a transaction.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction against the state.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Handler processes one message type end to end. An error from either
// method aborts the transaction without touching the state, the savepoint
// decorator guarantees that.
type Handler interface {
	Checker
	Deliverer
}

// Decorator wraps a Handler to provide cross cutting functionality: it runs
// before the wrapped handler and decides whether, and with which context,
// the call continues down the stack.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message types to their handlers. It is implemented by the
// application router and passed to every extension's RegisterRoutes.
type Registry interface {
	// Handle assigns the handler to the message path. Each message type
	// can be registered only once.
	Handle(Msg, Handler)
}
