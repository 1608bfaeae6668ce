package grant

import (
	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ wagachain.Initializer = (*Initializer)(nil)

// FromGenesis loads the grant configuration from the genesis options.
func (Initializer) FromGenesis(opts wagachain.Options, kv wagachain.KVStore) error {
	if err := gconf.InitConfig(kv, opts, "grant", &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}
	return nil
}
