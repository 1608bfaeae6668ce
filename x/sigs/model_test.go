package sigs

import (
	"testing"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/crypto"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/wagatest/assert"
)

func TestUserDataValidate(t *testing.T) {
	pub := crypto.GenPrivKeyEd25519().PublicKey()

	cases := map[string]struct {
		user    UserData
		wantErr *errors.Error
	}{
		"valid with pubkey": {
			user: UserData{
				Metadata: &wagachain.Metadata{Schema: 1},
				Pubkey:   pub,
				Sequence: 5,
			},
		},
		"valid without pubkey at zero sequence": {
			user: UserData{
				Metadata: &wagachain.Metadata{Schema: 1},
			},
		},
		"missing metadata": {
			user:    UserData{Pubkey: pub},
			wantErr: errors.ErrMetadata,
		},
		"negative sequence": {
			user: UserData{
				Metadata: &wagachain.Metadata{Schema: 1},
				Pubkey:   pub,
				Sequence: -1,
			},
			wantErr: ErrInvalidSequence,
		},
		"sequence without pubkey": {
			user: UserData{
				Metadata: &wagachain.Metadata{Schema: 1},
				Sequence: 1,
			},
			wantErr: ErrInvalidSequence,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.user.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else if !tc.wantErr.Is(err) {
				t.Fatalf("want %q, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestCheckAndIncrementSequence(t *testing.T) {
	user := UserData{
		Metadata: &wagachain.Metadata{Schema: 1},
		Pubkey:   crypto.GenPrivKeyEd25519().PublicKey(),
		Sequence: 10,
	}

	assert.IsErr(t, ErrInvalidSequence, user.CheckAndIncrementSequence(9))
	assert.Equal(t, int64(10), user.Sequence)

	assert.Nil(t, user.CheckAndIncrementSequence(10))
	assert.Equal(t, int64(11), user.Sequence)

	user.Sequence = (1 << 53) - 1
	assert.IsErr(t, errors.ErrOverflow, user.CheckAndIncrementSequence(user.Sequence))
}
