package sigs

import (
	"github.com/wagatoken/wagachain/errors"
)

// ErrInvalidSequence is returned when the sequence number of a signature
// does not match the expected nonce of the account.
var ErrInvalidSequence = errors.Register(1010, "invalid sequence")
