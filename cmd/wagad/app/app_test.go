package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/app"
	"github.com/wagatoken/wagachain/coin"
	"github.com/wagatoken/wagachain/crypto"
	"github.com/wagatoken/wagachain/x/cash"
	"github.com/wagatoken/wagachain/x/grant"
	"github.com/wagatoken/wagachain/x/sigs"
)

const testChainID = "test-waga-1"

type account struct {
	priv *crypto.PrivateKey
	seq  int64
}

func (a *account) address() wagachain.Address {
	return a.priv.PublicKey().Address()
}

// nextSeq returns the sequence to sign with and advances the counter.
func (a *account) nextSeq() int64 {
	s := a.seq
	a.seq++
	return s
}

func newTestApp(t *testing.T) (app.BaseApp, *account, *account) {
	t.Helper()

	owner := &account{priv: makePrivKey("CAFE0001")}
	ben := &account{priv: makePrivKey("CAFE0002")}

	myApp, err := Application("wagad-test", Stack(), TxDecoder, "", true)
	require.NoError(t, err)

	appState := fmt.Sprintf(`{
		"cash": [
			{"address": "%s", "coins": [{"whole": 1000000, "ticker": "WAGA"}]}
		],
		"conf": {
			"migration": {
				"metadata": {"schema": 1},
				"admin": "%s"
			},
			"cash": {
				"metadata": {"schema": 1},
				"owner": "%s",
				"collector_address": "%s",
				"minimal_fee": {}
			},
			"role": {
				"metadata": {"schema": 1},
				"admin": "%s"
			},
			"halt": {
				"metadata": {"schema": 1},
				"admin": "%s"
			},
			"grant": {
				"metadata": {"schema": 1},
				"owner": "%s",
				"treasury": "%s",
				"min_amount": {"whole": 100, "ticker": "WAGA"},
				"max_revenue_share_bps": 5000,
				"max_duration_years": 10
			}
		},
		"role": [
			{"address": "%s", "capabilities": ["verified"]}
		],
		"initialize_schema": ["cash", "sigs", "role", "halt", "project", "grant"]
	}`,
		owner.address(),
		owner.address(),
		owner.address(), owner.address(),
		owner.address(),
		owner.address(),
		owner.address(), owner.address(),
		ben.address(),
	)

	myApp.InitChain(abci.RequestInitChain{
		AppStateBytes: []byte(appState),
		ChainId:       testChainID,
	})
	// Commit the genesis state so that the check cache sees it, the same
	// way tendermint commits the init chain state before the first block.
	myApp.Commit()
	require.Equal(t, testChainID, myApp.GetChainID())
	return myApp, owner, ben
}

// inBlock runs a single signed message through CheckTx and DeliverTx in
// its own block and commits.
func inBlock(t *testing.T, myApp app.BaseApp, height int64, signer *account, msg wagachain.Msg) abci.ResponseDeliverTx {
	t.Helper()

	tx, err := NewTx(msg, nil)
	require.NoError(t, err)
	sig, err := sigs.SignTx(signer.priv, tx, testChainID, signer.nextSeq())
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}

	txBytes, err := proto.Marshal(tx)
	require.NoError(t, err)

	header := abci.Header{
		Height:  height,
		ChainID: testChainID,
		Time:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(height) * 5 * time.Second),
	}
	myApp.BeginBlock(abci.RequestBeginBlock{Header: header})
	chres := myApp.CheckTx(txBytes)
	require.Equal(t, uint32(0), chres.Code, chres.Log)
	dres := myApp.DeliverTx(txBytes)
	myApp.EndBlock(abci.RequestEndBlock{})
	cres := myApp.Commit()
	assert.NotEmpty(t, cres.Data)
	return dres
}

func queryBalance(t *testing.T, myApp app.BaseApp, addr wagachain.Address) coin.Coins {
	t.Helper()

	qres := myApp.Query(abci.RequestQuery{Path: "/wallets", Data: addr})
	require.Equal(t, uint32(0), qres.Code, qres.Log)
	if len(qres.Value) == 0 {
		return nil
	}
	var set cash.Set
	require.NoError(t, app.UnmarshalOneResult(qres.Value, &set))
	return set.Coins
}

func TestSendTx(t *testing.T) {
	myApp, owner, ben := newTestApp(t)

	amount := coin.NewCoin(2000, 0, "WAGA")
	dres := inBlock(t, myApp, 1, owner, &cash.SendMsg{
		Metadata:    &wagachain.Metadata{Schema: 1},
		Source:      owner.address(),
		Destination: ben.address(),
		Amount:      &amount,
		Memo:        "Have a great harvest!",
	})
	require.Equal(t, uint32(0), dres.Code, dres.Log)

	coins := queryBalance(t, myApp, ben.address())
	require.Len(t, coins, 1)
	assert.Equal(t, int64(2000), coins[0].Whole)
	assert.Equal(t, "WAGA", coins[0].Ticker)
}

func TestGrantMilestoneFlow(t *testing.T) {
	myApp, owner, ben := newTestApp(t)

	amount := coin.NewCoin(100000, 0, "WAGA")
	dres := inBlock(t, myApp, 1, owner, &grant.CreateDevelopmentMsg{
		Metadata:           &wagachain.Metadata{Schema: 1},
		Beneficiary:        ben.address(),
		Amount:             &amount,
		RevenueShareBps:    2000,
		DurationYears:      5,
		Purpose:            "Washing station refurbishment",
		ProjectMetadataRef: "ipfs://QmProject",
	})
	require.Equal(t, uint32(0), dres.Code, dres.Log)

	// the first grant gets the first sequence value
	grantID := []byte{0, 0, 0, 0, 0, 0, 0, 1}

	dres = inBlock(t, myApp, 2, owner, &grant.CreateScheduleMsg{
		Metadata:     &wagachain.Metadata{Schema: 1},
		GrantID:      grantID,
		Descriptions: []string{"Foundation", "Commissioning"},
		Shares:       []uint32{5000, 5000},
	})
	require.Equal(t, uint32(0), dres.Code, dres.Log)

	dres = inBlock(t, myApp, 3, owner, &grant.FundMsg{
		Metadata: &wagachain.Metadata{Schema: 1},
		GrantID:  grantID,
	})
	require.Equal(t, uint32(0), dres.Code, dres.Log)

	// funding a scheduled grant locks the money in escrow
	escrowAddr := grant.EscrowCondition(grantID).Address()
	coins := queryBalance(t, myApp, escrowAddr)
	require.Len(t, coins, 1)
	assert.Equal(t, int64(100000), coins[0].Whole)

	dres = inBlock(t, myApp, 4, ben, &grant.SubmitEvidenceMsg{
		Metadata:    &wagachain.Metadata{Schema: 1},
		GrantID:     grantID,
		Milestone:   0,
		EvidenceRef: "ipfs://QmEvidence",
	})
	require.Equal(t, uint32(0), dres.Code, dres.Log)

	dres = inBlock(t, myApp, 5, owner, &grant.ValidateMsg{
		Metadata:  &wagachain.Metadata{Schema: 1},
		GrantID:   grantID,
		Milestone: 0,
		Approved:  true,
	})
	require.Equal(t, uint32(0), dres.Code, dres.Log)

	// half the grant is released to the beneficiary
	coins = queryBalance(t, myApp, ben.address())
	require.Len(t, coins, 1)
	assert.Equal(t, int64(50000), coins[0].Whole)

	coins = queryBalance(t, myApp, escrowAddr)
	require.Len(t, coins, 1)
	assert.Equal(t, int64(50000), coins[0].Whole)
}
