package gconf

import (
	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
)

// ReadStore is a subset of wagachain.ReadOnlyKVStore.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is a subset of wagachain.KVStore.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Configuration is implemented by any extension configuration singleton.
type Configuration interface {
	proto.Message
	Validate() error
}

func dbKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates the configuration and writes it to the package's
// configuration singleton.
func Save(db Store, pkg string, src Configuration) error {
	key := dbKey(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := proto.Marshal(src)
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", key)
	}
	return db.Set(key, raw)
}

// Load reads the package's configuration singleton into dst. It returns
// ErrNotFound when no configuration was initialized for the package.
func Load(db ReadStore, pkg string, dst Configuration) error {
	key := dbKey(pkg)
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	if err := proto.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", key)
	}
	return nil
}

// InitConfig takes opts["conf"][pkg], parses it into the given
// configuration object, validates it, and stores it under the proper key
// in the database.
func InitConfig(db Store, opts wagachain.Options, pkg string, conf Configuration) error {
	var confOptions wagachain.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if confOptions[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := confOptions.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", pkg)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", pkg)
	}
	return nil
}

// RegisterQuery makes every package configuration singleton available
// under the `/gconf` path, addressed by the package name.
func RegisterQuery(qr wagachain.QueryRouter) {
	qr.Register("/gconf", queryHandler{})
}

type queryHandler struct{}

func (queryHandler) Query(db wagachain.ReadOnlyKVStore, mod string, data []byte) ([]wagachain.Model, error) {
	if mod != wagachain.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown query modifier %q", mod)
	}
	key := dbKey(string(data))
	value, err := db.Get(key)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	return []wagachain.Model{{Key: key, Value: value}}, nil
}
