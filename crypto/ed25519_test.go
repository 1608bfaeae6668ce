package crypto

import (
	"bytes"
	"testing"

	"github.com/wagatoken/wagachain/wagatest/assert"
)

func TestEd25519Signing(t *testing.T) {
	private := GenPrivKeyEd25519()
	public := private.PublicKey()

	msg := []byte("foobar")
	msg2 := []byte("dingbooms")

	sig, err := private.Sign(msg)
	assert.Nil(t, err)
	sig2, err := private.Sign(msg2)
	assert.Nil(t, err)

	if bytes.Equal(sig.Ed25519, sig2.Ed25519) {
		t.Fatal("signing different messages produced the same signature")
	}

	if !public.Verify(msg, sig) {
		t.Fatal("cannot verify a valid signature")
	}
	if !public.Verify(msg2, sig2) {
		t.Fatal("cannot verify a valid signature")
	}
	if public.Verify(msg, sig2) {
		t.Fatal("signature of a different message must not verify")
	}
	if public.Verify(msg2, sig) {
		t.Fatal("signature of a different message must not verify")
	}
	if public.Verify(msg, nil) {
		t.Fatal("a nil signature must not verify")
	}
}

func TestDeterministicKeyFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, a.PublicKey(), b.PublicKey())

	// the condition binds the extension name and the key material
	cond := a.PublicKey().Condition()
	assert.Nil(t, cond.Validate())
	ext, typ, data, err := cond.Parse()
	assert.Nil(t, err)
	assert.Equal(t, "sigs", ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, []byte(a.PublicKey().Ed25519), data)
}

func TestConditionAddressesDiffer(t *testing.T) {
	a := GenPrivKeyEd25519().PublicKey().Address()
	b := GenPrivKeyEd25519().PublicKey().Address()
	if a.Equals(b) {
		t.Fatal("two random keys must not share an address")
	}
	assert.Nil(t, a.Validate())
}
