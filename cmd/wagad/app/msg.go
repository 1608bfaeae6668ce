package app

import (
	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/migration"
	"github.com/wagatoken/wagachain/x/cash"
	"github.com/wagatoken/wagachain/x/grant"
	"github.com/wagatoken/wagachain/x/halt"
	"github.com/wagatoken/wagachain/x/role"
	"github.com/wagatoken/wagachain/x/sigs"
)

// txMessage is every message type that can travel in a transaction.
type txMessage interface {
	wagachain.Msg
	proto.Message
}

// txMessages maps every routable message path to its type. The decoder
// uses it to give the payload bytes a concrete shape.
var txMessages = map[string]func() txMessage{
	"cash/send":                 func() txMessage { return &cash.SendMsg{} },
	"cash/update_configuration": func() txMessage { return &cash.UpdateConfigurationMsg{} },
	"sigs/bump_sequence":        func() txMessage { return &sigs.BumpSequenceMsg{} },
	"migration/upgrade_schema":  func() txMessage { return &migration.UpgradeSchemaMsg{} },

	"role/grant":                func() txMessage { return &role.GrantMsg{} },
	"role/revoke":               func() txMessage { return &role.RevokeMsg{} },
	"role/update_configuration": func() txMessage { return &role.UpdateConfigurationMsg{} },

	"halt/update_configuration": func() txMessage { return &halt.UpdateConfigurationMsg{} },

	"grant/create":               func() txMessage { return &grant.CreateMsg{} },
	"grant/create_development":   func() txMessage { return &grant.CreateDevelopmentMsg{} },
	"grant/create_schedule":      func() txMessage { return &grant.CreateScheduleMsg{} },
	"grant/fund":                 func() txMessage { return &grant.FundMsg{} },
	"grant/submit_evidence":      func() txMessage { return &grant.SubmitEvidenceMsg{} },
	"grant/validate":             func() txMessage { return &grant.ValidateMsg{} },
	"grant/validate_proof":       func() txMessage { return &grant.ValidateProofMsg{} },
	"grant/record_revenue":       func() txMessage { return &grant.RecordRevenueMsg{} },
	"grant/complete":             func() txMessage { return &grant.CompleteMsg{} },
	"grant/update_configuration": func() txMessage { return &grant.UpdateConfigurationMsg{} },
}

func msgByPath(path string) (txMessage, error) {
	newMsg, ok := txMessages[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no message under path %q", path)
	}
	return newMsg(), nil
}
