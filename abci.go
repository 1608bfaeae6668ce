package wagachain

import (
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/wagatoken/wagachain/errors"
)

// CheckOrError converts a check outcome into the ABCI response, using the
// error when present and the result otherwise.
func CheckOrError(result *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return result.ToABCI()
}

// DeliverOrError converts a delivery outcome into the ABCI response, using
// the error when present and the result otherwise.
func DeliverOrError(result *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return result.ToABCI()
}

// CheckTxError converts an error into the ABCI check response carrying the
// registered error code. Outside of debug mode internal details are
// redacted.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseCheckTx{
		Code: code,
		Log:  log,
	}
}

// DeliverTxError converts an error into the ABCI deliver response carrying
// the registered error code. Outside of debug mode internal details are
// redacted.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseDeliverTx{
		Code: code,
		Log:  log,
	}
}
