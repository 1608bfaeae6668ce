/*
Package app links together all the various components
to construct the wagad app.
*/
package app

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/app"
	"github.com/wagatoken/wagachain/gconf"
	"github.com/wagatoken/wagachain/migration"
	"github.com/wagatoken/wagachain/store/iavl"
	"github.com/wagatoken/wagachain/x"
	"github.com/wagatoken/wagachain/x/cash"
	"github.com/wagatoken/wagachain/x/grant"
	"github.com/wagatoken/wagachain/x/halt"
	"github.com/wagatoken/wagachain/x/project"
	"github.com/wagatoken/wagachain/x/role"
	"github.com/wagatoken/wagachain/x/sigs"
	"github.com/wagatoken/wagachain/x/utils"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// CashControl returns the cash controller every fund moving extension
// shares.
func CashControl() cash.Controller {
	return cash.NewController(cash.NewWalletBucket())
}

// ProjectControl returns the project controller the grant extension
// drives on milestone approvals.
func ProjectControl() project.Controller {
	return project.NewController(project.NewProjectBucket())
}

// ProofVerifier returns the proof verifier wired into the grant
// extension: a sha256 commitment opening. The proof is the opening and
// the public input is the commitment. Deterministic, so every node
// reaches the same decision.
func ProofVerifier() grant.ProofVerifier {
	return grant.VerifierFunc(func(circuitID string, proof, publicInput []byte) (grant.ProofOutcome, error) {
		if circuitID != "sha256" {
			return grant.ProofRejected, nil
		}
		digest := sha256.Sum256(proof)
		if !bytes.Equal(digest[:], publicInput) {
			return grant.ProofRejected, nil
		}
		return grant.ProofVerified, nil
	})
}

// Chain returns a chain of decorators, to handle authentication,
// the halt gate, fees, logging, and recovery
func Chain(authFn x.Authenticator) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewKeyTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// nothing but a configuration update passes a paused chain
		halt.NewDecorator(),
		cash.NewFeeDecorator(authFn, CashControl()),
		// on DeliverTx, bad tx will increment nonce and take fee
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
		utils.NewActionTagger(),
	)
}

// Router returns a default router, dispatching to all the extensions of
// this chain.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	control := CashControl()
	cash.RegisterRoutes(r, authFn, control)
	sigs.RegisterRoutes(r, authFn)
	migration.RegisterRoutes(r, authFn)
	role.RegisterRoutes(r, authFn)
	halt.RegisterRoutes(r, authFn)
	grant.RegisterRoutes(r, authFn, control, ProjectControl(), ProofVerifier())
	return r
}

// QueryRouter returns a default query router, allowing access to
// "/wallets", "/auth", "/roles", "/projects", "/grants", "/schedules",
// "/escrows" and the configuration singletons.
func QueryRouter() wagachain.QueryRouter {
	r := wagachain.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		migration.RegisterQuery,
		role.RegisterQuery,
		project.RegisterQuery,
		grant.RegisterQuery,
		gconf.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() wagachain.Handler {
	authFn := Authenticator()
	return Chain(authFn).WithHandler(Router(authFn))
}

// Initializer combines the genesis initializers of every extension, in
// dependency order: the schema registry first, then everything that
// stores versioned models.
func Initializer() wagachain.Initializer {
	return app.ChainInitializers(
		migration.Initializer{},
		cash.Initializer{},
		role.Initializer{},
		halt.Initializer{},
		grant.Initializer{},
	)
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h wagachain.Handler,
	tx wagachain.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter())
	store = store.WithInit(Initializer())
	return app.NewBaseApp(store, tx, h, nil, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (wagachain.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("invalid database name: %s", path)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
