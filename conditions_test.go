package wagachain

import (
	"encoding/json"
	"testing"

	"github.com/wagatoken/wagachain/errors"
)

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		cond     Condition
		wantErr  *errors.Error
		wantExt  string
		wantTyp  string
		wantData []byte
	}{
		"valid condition": {
			cond:     NewCondition("grant", "escrow", []byte{1, 2, 3}),
			wantExt:  "grant",
			wantTyp:  "escrow",
			wantData: []byte{1, 2, 3},
		},
		"data may contain a newline byte": {
			cond:     NewCondition("sigs", "ed25519", []byte{0x20, 0x0a, 0x20}),
			wantExt:  "sigs",
			wantTyp:  "ed25519",
			wantData: []byte{0x20, 0x0a, 0x20},
		},
		"missing data section": {
			cond:    Condition("grant/escrow/"),
			wantErr: errors.ErrInput,
		},
		"extension too short": {
			cond:    NewCondition("ab", "escrow", []byte{1}),
			wantErr: errors.ErrInput,
		},
		"garbage": {
			cond:    Condition("foobar"),
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, data, err := tc.cond.Parse()
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("unexpected error: %+v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse failed: %+v", err)
			}
			if ext != tc.wantExt || typ != tc.wantTyp || string(data) != string(tc.wantData) {
				t.Fatalf("unexpected sections: %q %q %X", ext, typ, data)
			}
		})
	}
}

func TestConditionAddress(t *testing.T) {
	cond := NewCondition("grant", "escrow", []byte("grant-1"))
	addr := cond.Address()
	if err := addr.Validate(); err != nil {
		t.Fatalf("derived address invalid: %+v", err)
	}
	if !addr.Equals(NewAddress(cond)) {
		t.Fatal("address derivation must be deterministic")
	}
	if other := NewCondition("grant", "escrow", []byte("grant-2")).Address(); addr.Equals(other) {
		t.Fatal("different conditions must not collide")
	}
}

func TestAddressValidate(t *testing.T) {
	if err := Address(make([]byte, AddressLength)).Validate(); err != nil {
		t.Fatalf("correct length rejected: %+v", err)
	}
	if err := Address(make([]byte, AddressLength-1)).Validate(); !errors.ErrInput.Is(err) {
		t.Fatalf("wrong length accepted: %+v", err)
	}
}

func TestAddressUnmarshalJSONFormats(t *testing.T) {
	addr := NewCondition("sigs", "ed25519", []byte("somepubkey")).Address()

	cases := map[string]string{
		"implicit hex": `"` + addr.String() + `"`,
		"explicit hex": `"hex:` + addr.String() + `"`,
		"condition":    `"cond:sigs/ed25519/` + "736F6D6570756B3F" + `"`,
	}
	// The condition form derives a different address, so check it apart.
	t.Run("hex forms", func(t *testing.T) {
		for name, enc := range cases {
			if name == "condition" {
				continue
			}
			var got Address
			if err := json.Unmarshal([]byte(enc), &got); err != nil {
				t.Fatalf("%s: %+v", name, err)
			}
			if !got.Equals(addr) {
				t.Fatalf("%s: unexpected address %s", name, got)
			}
		}
	})

	t.Run("condition form", func(t *testing.T) {
		var got Address
		if err := json.Unmarshal([]byte(cases["condition"]), &got); err != nil {
			t.Fatalf("cannot unmarshal: %+v", err)
		}
		if err := got.Validate(); err != nil {
			t.Fatalf("invalid address: %+v", err)
		}
	})

	t.Run("empty value resets", func(t *testing.T) {
		got := addr
		if err := json.Unmarshal([]byte(`""`), &got); err != nil {
			t.Fatalf("cannot unmarshal: %+v", err)
		}
		if got != nil {
			t.Fatalf("expected nil address, got %s", got)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		var got Address
		err := json.Unmarshal([]byte(`"base58:abc"`), &got)
		if !errors.ErrType.Is(err) {
			t.Fatalf("unexpected error: %+v", err)
		}
	})
}
