package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	cfg "github.com/tendermint/tendermint/config"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tendermint/tendermint/privval"
	tmtypes "github.com/tendermint/tendermint/types"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/crypto"
)

// GenOptions turns command-line arguments into the application state
// section of the genesis file. This is application specific.
type GenOptions func(args []string) (json.RawMessage, error)

// GenerateCoinKey returns the address of a freshly generated key, along
// with a secret to recover the private key. You can give coins to this
// address and return the secret to the user to access them.
func GenerateCoinKey() (wagachain.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	addr := privKey.PublicKey().Address()
	secret, err := json.Marshal(privKey)
	if err != nil {
		return nil, "", err
	}
	return addr, string(secret), nil
}

// InitCmd will initialize all files for tendermint along with the
// application state from the given GenOptions.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	config := cfg.DefaultConfig()
	config.SetRoot(home)
	cfg.EnsureRoot(home)

	if err := initTendermintFiles(config, logger); err != nil {
		return err
	}

	// without a generator, leave the genesis as tendermint created it
	if gen == nil {
		return nil
	}

	options, err := gen(args)
	if err != nil {
		return err
	}
	return addGenesisOptions(config.GenesisFile(), options)
}

// initTendermintFiles creates the private validator and the genesis
// document when missing, the same way tendermint init does.
func initTendermintFiles(config *cfg.Config, logger log.Logger) error {
	keyFile := config.PrivValidatorKeyFile()
	stateFile := config.PrivValidatorStateFile()
	pv := privval.LoadOrGenFilePV(keyFile, stateFile)
	logger.Info("Using private validator", "path", keyFile)

	genFile := config.GenesisFile()
	if fileExists(genFile) {
		logger.Info("Found genesis file", "path", genFile)
		return nil
	}
	genDoc := tmtypes.GenesisDoc{
		ChainID: fmt.Sprintf("test-chain-%v", cmn.RandStr(6)),
		Validators: []tmtypes.GenesisValidator{{
			Address: pv.GetPubKey().Address(),
			PubKey:  pv.GetPubKey(),
			Power:   10,
		}},
	}
	if err := genDoc.SaveAs(genFile); err != nil {
		return err
	}
	logger.Info("Generated genesis file", "path", genFile)
	return nil
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}

// GenesisDoc involves some tendermint-specific structures we don't want
// to parse, so we just grab it into a raw object format, so we can set
// one key.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return err
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return err
	}

	doc["app_state"] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filename, out, 0600)
}
