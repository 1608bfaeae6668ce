package grant

import (
	"testing"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/coin"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/migration"
	"github.com/wagatoken/wagachain/wagatest"
	"github.com/wagatoken/wagachain/wagatest/assert"
)

// Every message and the configuration are registered for schema
// migrations and so must expose their metadata.
var (
	_ migration.Migratable = (*CreateMsg)(nil)
	_ migration.Migratable = (*CreateDevelopmentMsg)(nil)
	_ migration.Migratable = (*CreateScheduleMsg)(nil)
	_ migration.Migratable = (*FundMsg)(nil)
	_ migration.Migratable = (*SubmitEvidenceMsg)(nil)
	_ migration.Migratable = (*ValidateMsg)(nil)
	_ migration.Migratable = (*ValidateProofMsg)(nil)
	_ migration.Migratable = (*RecordRevenueMsg)(nil)
	_ migration.Migratable = (*CompleteMsg)(nil)
	_ migration.Migratable = (*UpdateConfigurationMsg)(nil)
	_ migration.Migratable = (*Configuration)(nil)
)

func TestCreateMsgValidate(t *testing.T) {
	valid := CreateMsg{
		Metadata:        &wagachain.Metadata{Schema: 1},
		Beneficiary:     wagatest.RandomAddr(),
		Amount:          coin.NewCoinp(1000, 0, "WAGA"),
		RevenueShareBps: 2000,
		DurationYears:   3,
	}

	cases := map[string]struct {
		mod     func(*CreateMsg)
		wantErr *errors.Error
	}{
		"valid": {
			mod: func(*CreateMsg) {},
		},
		"missing amount": {
			mod:     func(m *CreateMsg) { m.Amount = nil },
			wantErr: errors.ErrEmpty,
		},
		"negative amount": {
			mod:     func(m *CreateMsg) { m.Amount = coin.NewCoinp(-5, 0, "WAGA") },
			wantErr: errors.ErrAmount,
		},
		"revenue share above full": {
			mod:     func(m *CreateMsg) { m.RevenueShareBps = fullShareBps + 1 },
			wantErr: errors.ErrInput,
		},
		"zero duration": {
			mod:     func(m *CreateMsg) { m.DurationYears = 0 },
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			msg := valid
			tc.mod(&msg)
			err := msg.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}
