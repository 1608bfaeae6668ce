package wagatest

import (
	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/crypto"
)

func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

func NewCondition() wagachain.Condition {
	return NewKey().PublicKey().Condition()
}
