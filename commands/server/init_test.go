package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/wagatoken/wagachain"
)

func TestInitCmd(t *testing.T) {
	home, err := ioutil.TempDir("", "wagachain-server")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	gen := func(args []string) (json.RawMessage, error) {
		return []byte(`{"answer": 42}`), nil
	}

	logger := log.NewNopLogger()
	require.NoError(t, InitCmd(gen, logger, home, nil))

	genFile := filepath.Join(home, "config", "genesis.json")
	bz, err := ioutil.ReadFile(genFile)
	require.NoError(t, err)

	var doc GenesisDoc
	require.NoError(t, json.Unmarshal(bz, &doc))

	var chainID string
	require.NoError(t, json.Unmarshal(doc["chain_id"], &chainID))
	assert.True(t, strings.HasPrefix(chainID, "test-chain-"))
	assert.NotEmpty(t, doc["validators"])
	assert.EqualValues(t, []byte(`{"answer": 42}`), doc["app_state"])

	// a second run must keep the existing files
	require.NoError(t, InitCmd(gen, logger, home, nil))
	bz2, err := ioutil.ReadFile(genFile)
	require.NoError(t, err)
	var doc2 GenesisDoc
	require.NoError(t, json.Unmarshal(bz2, &doc2))
	assert.EqualValues(t, doc["chain_id"], doc2["chain_id"])
}

type initFn func(opts wagachain.Options, kv wagachain.KVStore) error

func (f initFn) FromGenesis(opts wagachain.Options, kv wagachain.KVStore) error {
	return f(opts, kv)
}

func TestValidateGenesis(t *testing.T) {
	home, err := ioutil.TempDir("", "wagachain-server")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	gen := func(args []string) (json.RawMessage, error) {
		return []byte(`{"greeting": "hello"}`), nil
	}
	require.NoError(t, InitCmd(gen, log.NewNopLogger(), home, nil))

	var got string
	ini := initFn(func(opts wagachain.Options, kv wagachain.KVStore) error {
		return opts.ReadOptions("greeting", &got)
	})

	genFile := filepath.Join(home, "config", "genesis.json")
	require.NoError(t, ValidateGenesis(ini, []string{genFile}))
	assert.Equal(t, "hello", got)
}
