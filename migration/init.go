package migration

import (
	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/gconf"
)

func init() {
	MustRegister(1, &Configuration{}, NoModification)
}

// Initializer sets up the migration extension from the genesis file. It
// registers the schema of the migration package itself and stores the
// admin configuration.
type Initializer struct{}

var _ wagachain.Initializer = (*Initializer)(nil)

// FromGenesis initializes the schema versioning and the migration
// configuration from the genesis. Packages listed under
// "initialize_schema" get their schema set to version one.
func (Initializer) FromGenesis(opts wagachain.Options, kv wagachain.KVStore) error {
	var pkgs []string
	if err := opts.ReadOptions("initialize_schema", &pkgs); err != nil {
		return errors.Wrap(err, "read initialize_schema")
	}
	// The migration extension itself is always versioned.
	MustInitPkg(kv, "migration")
	MustInitPkg(kv, pkgs...)
	return gconf.InitConfig(kv, opts, "migration", &Configuration{})
}
