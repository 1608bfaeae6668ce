package app

import (
	"github.com/wagatoken/wagachain"
)

// ChainInitializers lets you initialize many extensions with one function.
func ChainInitializers(inits ...wagachain.Initializer) wagachain.Initializer {
	return chainInitializer{inits: inits}
}

type chainInitializer struct {
	inits []wagachain.Initializer
}

// FromGenesis will pass opts to all initializers in the list, aborting at
// the first error.
func (c chainInitializer) FromGenesis(opts wagachain.Options, kv wagachain.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
