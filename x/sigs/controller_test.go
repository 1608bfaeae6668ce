package sigs

import (
	"testing"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/crypto"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/migration"
	"github.com/wagatoken/wagachain/store"
	"github.com/wagatoken/wagachain/wagatest"
	"github.com/wagatoken/wagachain/wagatest/assert"
)

// sigTx is a test transaction carrying raw sign bytes and signatures.
type sigTx struct {
	payload []byte
	sigs    []*StdSignature
}

var _ wagachain.Tx = (*sigTx)(nil)
var _ SignedTx = (*sigTx)(nil)

func (tx *sigTx) GetMsg() (wagachain.Msg, error) {
	return &wagatest.Msg{RoutePath: "test/payload"}, nil
}

func (tx *sigTx) GetSignBytes() ([]byte, error) {
	return tx.payload, nil
}

func (tx *sigTx) GetSignatures() []*StdSignature {
	return tx.sigs
}

func TestSignAndVerify(t *testing.T) {
	const chainID = "wagachain-1"

	db := store.MemStore()
	migration.MustInitPkg(db, "sigs")

	priv := crypto.GenPrivKeyEd25519()
	tx := &sigTx{payload: []byte("some content")}

	sig, err := SignTx(priv, tx, chainID, 0)
	assert.Nil(t, err)
	tx.sigs = []*StdSignature{sig}

	signers, err := VerifyTxSignatures(db, tx, chainID)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(signers))
	assert.Equal(t, priv.PublicKey().Condition(), signers[0])

	// The nonce was consumed, a replay of the same signature must fail.
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.IsErr(t, ErrInvalidSequence, err)

	// Signing with the next sequence value succeeds.
	sig, err = SignTx(priv, tx, chainID, 1)
	assert.Nil(t, err)
	tx.sigs = []*StdSignature{sig}
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.Nil(t, err)

	nonce, err := NextNonce(db, priv.PublicKey().Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(2), nonce)
}

func TestVerifyRejectsWrongChain(t *testing.T) {
	db := store.MemStore()
	migration.MustInitPkg(db, "sigs")

	priv := crypto.GenPrivKeyEd25519()
	tx := &sigTx{payload: []byte("some content")}

	sig, err := SignTx(priv, tx, "wagachain-1", 0)
	assert.Nil(t, err)
	tx.sigs = []*StdSignature{sig}

	if _, err := VerifyTxSignatures(db, tx, "other-chain-9"); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("signature for a different chain must not verify, got %+v", err)
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	const chainID = "wagachain-1"

	db := store.MemStore()
	migration.MustInitPkg(db, "sigs")

	priv := crypto.GenPrivKeyEd25519()
	tx := &sigTx{payload: []byte("original")}

	sig, err := SignTx(priv, tx, chainID, 0)
	assert.Nil(t, err)

	tampered := &sigTx{
		payload: []byte("tampered"),
		sigs:    []*StdSignature{sig},
	}
	if _, err := VerifyTxSignatures(db, tampered, chainID); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("tampered payload must not verify, got %+v", err)
	}
}

func TestBuildSignBytesRejectsBadInput(t *testing.T) {
	if _, err := BuildSignBytes([]byte("payload"), "wagachain-1", -1); !ErrInvalidSequence.Is(err) {
		t.Fatalf("negative sequence must be rejected, got %+v", err)
	}
	if _, err := BuildSignBytes([]byte("payload"), "x", 0); !errors.ErrInput.Is(err) {
		t.Fatalf("invalid chain id must be rejected, got %+v", err)
	}
}
