package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/app"
	"github.com/wagatoken/wagachain/coin"
	"github.com/wagatoken/wagachain/crypto"
)

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode.
//
// The first argument selects the ticker, the second the hex address of
// the account that owns the tokens and administers the chain. Without
// an address a fresh key is generated.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := "WAGA"
	if len(args) > 0 {
		ticker = args[0]
		if !coin.IsCC(ticker) {
			return nil, fmt.Errorf("invalid ticker %s", ticker)
		}
	}

	var addr string
	if len(args) > 1 {
		addr = strings.ToUpper(args[1])
	} else {
		// if no address provided, auto-generate one
		priv := crypto.GenPrivKeyEd25519()
		addr = strings.ToUpper(hex.EncodeToString(priv.PublicKey().Address()))
		fmt.Printf("generated dev address: %s\n", addr)
	}

	opts := fmt.Sprintf(`{
		"cash": [
			{
				"address": %q,
				"coins": [
					{"whole": 123456789, "ticker": %q}
				]
			}
		],
		"conf": {
			"migration": {
				"metadata": {"schema": 1},
				"admin": %q
			},
			"cash": {
				"metadata": {"schema": 1},
				"owner": %q,
				"collector_address": %q,
				"minimal_fee": {}
			},
			"role": {
				"metadata": {"schema": 1},
				"admin": %q
			},
			"halt": {
				"metadata": {"schema": 1},
				"admin": %q
			},
			"grant": {
				"metadata": {"schema": 1},
				"owner": %q,
				"treasury": %q,
				"min_amount": {"whole": 1, "ticker": %q},
				"max_revenue_share_bps": 5000,
				"max_duration_years": 10
			}
		},
		"role": [
			{
				"address": %q,
				"capabilities": ["validator"]
			}
		],
		"initialize_schema": ["cash", "sigs", "role", "halt", "project", "grant"]
	}`, addr, ticker,
		addr,
		addr, addr,
		addr,
		addr,
		addr, addr, ticker,
		addr,
	)
	return []byte(opts), nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "waga.db")
	}

	stack := Stack()
	application, err := Application("wagad", stack, TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger.With("module", "app"))

	return application, nil
}

// InlineApp builds the application over an already loaded store. The
// retry command opens the database itself and passes it in.
func InlineApp(kv wagachain.CommitKVStore, logger log.Logger, debug bool) abci.Application {
	store := app.NewStoreApp("wagad", kv, QueryRouter())
	store = store.WithInit(Initializer())
	base := app.NewBaseApp(store, TxDecoder, Stack(), nil, debug)
	base.WithLogger(logger.With("module", "app"))
	return base
}
