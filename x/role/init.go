package role

import (
	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ wagachain.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial role assignments from genesis and save
// them to the database
func (Initializer) FromGenesis(opts wagachain.Options, kv wagachain.KVStore) error {
	if err := gconf.InitConfig(kv, opts, "role", &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	assignments := []struct {
		Address      wagachain.Address `json:"address"`
		Capabilities []string          `json:"capabilities"`
	}{}
	if err := opts.ReadOptions("role", &assignments); err != nil {
		return errors.Wrap(err, "read genesis roles")
	}

	bucket := NewRolesBucket()
	for i, a := range assignments {
		roles := &Roles{
			Metadata:     &wagachain.Metadata{Schema: 1},
			Address:      a.Address,
			Capabilities: a.Capabilities,
		}
		if _, err := bucket.Put(kv, a.Address, roles); err != nil {
			return errors.Wrapf(err, "role #%d", i)
		}
	}
	return nil
}
