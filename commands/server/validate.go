package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/store"
)

// ValidateGenesis runs the application initializer over each given
// genesis file, discarding the state. A broken genesis is reported
// before the chain ever starts.
func ValidateGenesis(ini wagachain.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini wagachain.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrap(err, "cannot read genesis file")
	}

	var genesis struct {
		State wagachain.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrap(err, "cannot JSON deserialize genesis")
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()

	if err := ini.FromGenesis(genesis.State, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}

	return nil
}
