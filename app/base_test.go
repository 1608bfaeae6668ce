package app

import (
	"testing"

	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/store/iavl"
	"github.com/wagatoken/wagachain/wagatest"
	"github.com/wagatoken/wagachain/wagatest/assert"
)

// pathDecoder interprets the raw bytes as the message path. Good enough to
// drive the abci surface without a full transaction codec.
func pathDecoder(raw []byte) (wagachain.Tx, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty transaction")
	}
	return &wagatest.Tx{Msg: &wagatest.Msg{RoutePath: string(raw)}}, nil
}

func testBaseApp(t *testing.T, h wagachain.Handler) BaseApp {
	t.Helper()

	r := NewRouter()
	r.Handle(&wagatest.Msg{RoutePath: "test/good"}, h)

	s := NewStoreApp("test-app", iavl.MockCommitStore(), wagachain.NewQueryRouter()).
		WithInit(ChainInitializers())
	app := NewBaseApp(s, pathDecoder, r, nil, true)
	app.InitChain(abci.RequestInitChain{
		AppStateBytes: []byte(`{}`),
		ChainId:       "test-chain-22",
	})
	app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{Height: 1},
	})
	return app
}

func TestBaseAppDispatch(t *testing.T) {
	h := &wagatest.Handler{
		CheckResult:   wagachain.CheckResult{Log: "checked"},
		DeliverResult: wagachain.DeliverResult{Log: "delivered"},
	}
	app := testBaseApp(t, h)

	cres := app.CheckTx([]byte("test/good"))
	assert.Equal(t, uint32(0), cres.Code)
	assert.Equal(t, "checked", cres.Log)

	dres := app.DeliverTx([]byte("test/good"))
	assert.Equal(t, uint32(0), dres.Code)
	assert.Equal(t, "delivered", dres.Log)

	assert.Equal(t, 1, h.CheckCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestBaseAppBadInput(t *testing.T) {
	h := &wagatest.Handler{}
	app := testBaseApp(t, h)

	wantCode, _ := errors.ABCIInfo(errors.ErrInput, false)
	assert.Equal(t, wantCode, app.CheckTx(nil).Code)
	assert.Equal(t, wantCode, app.DeliverTx(nil).Code)

	notFound, _ := errors.ABCIInfo(errors.ErrNotFound, false)
	assert.Equal(t, notFound, app.DeliverTx([]byte("test/missing")).Code)
	assert.Equal(t, 0, h.CallCount())
}
