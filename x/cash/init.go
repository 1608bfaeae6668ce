package cash

import (
	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/coin"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ wagachain.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account info from genesis and save it
// to the database
func (Initializer) FromGenesis(opts wagachain.Options, kv wagachain.KVStore) error {
	if err := gconf.InitConfig(kv, opts, "cash", &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	accounts := []struct {
		Address wagachain.Address `json:"address"`
		Coins   coin.Coins        `json:"coins"`
	}{}
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return errors.Wrap(err, "read genesis accounts")
	}

	bucket := NewWalletBucket()
	for i, acc := range accounts {
		if err := acc.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d address", i)
		}
		coins, err := coin.NormalizeCoins(acc.Coins)
		if err != nil {
			return errors.Wrapf(err, "account #%d coins", i)
		}
		set := &Set{
			Metadata: &wagachain.Metadata{Schema: 1},
			Coins:    coins,
		}
		if err := bucket.Save(kv, acc.Address, set); err != nil {
			return errors.Wrapf(err, "account #%d save", i)
		}
	}
	return nil
}
