package wagatest

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/wagatoken/wagachain"
)

// RandomAddr returns a valid random ledger address generated on the fly.
func RandomAddr() wagachain.Address {
	raw := make([]byte, wagachain.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		panic(err)
	}
	a := wagachain.Address(raw)
	if err := a.Validate(); err != nil {
		panic(err)
	}
	return a
}

// DecodeAddr takes a hex encoded address string and returns it's raw
// representation as a ledger address. This function ensures that returned value
// is a valid address.
func DecodeAddr(t testing.TB, encoded string) wagachain.Address {
	t.Helper()
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		t.Fatalf("cannot decode hex string: %s", err)
	}
	a := wagachain.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("decoded string is not a valid address: %s", err)
	}
	return a
}
