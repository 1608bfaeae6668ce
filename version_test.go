package wagachain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wagatoken/wagachain"
)

func TestVersion(t *testing.T) {
	wagachain.GitCommit = ""
	assert.Equal(t, "v0.1.0-dev", wagachain.Version())

	wagachain.GitCommit = "12345678"
	assert.Equal(t, "v0.1.0-dev 12345678", wagachain.Version())
}
