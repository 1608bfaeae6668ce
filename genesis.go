package wagachain

import (
	"encoding/json"

	"github.com/wagatoken/wagachain/errors"
)

// Options holds the application state part of the genesis file, keyed by
// extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the value stored under the given key into obj.
// A missing key leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis option %q: %s", key, err)
	}
	return nil
}

// Initializer loads one extension's initial state from the genesis options.
// Initializers run once, against an empty store, before the first block.
type Initializer interface {
	FromGenesis(opts Options, kv KVStore) error
}
