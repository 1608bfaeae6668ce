package wagachain

import (
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// Ticker is called at the beginning of every block to run background tasks.
type Ticker interface {
	// Tick executes any work scheduled for this block. The beginning of
	// a block allows no error response, so implementations must resolve
	// all failures themselves. An instance specific failure (ie database
	// issues) means this node diverged from the network and must
	// terminate rather than continue with invalid state.
	Tick(ctx Context, store CacheableKVStore) TickResult
}

// TickResult is the outcome of a single tick run.
type TickResult struct {
	// Tags produced during this tick, included in the enclosing block.
	Tags []common.KVPair

	// Diff holds validator update operations produced during this tick.
	Diff []abci.ValidatorUpdate
}
