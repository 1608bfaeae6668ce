package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStartFlags(t *testing.T) {
	addr, debug, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, "tcp://localhost:46658", addr)
	assert.False(t, debug)

	addr, debug, err = parseFlags([]string{"-bind", "tcp://0.0.0.0:12345", "-debug"})
	require.NoError(t, err)
	assert.Equal(t, "tcp://0.0.0.0:12345", addr)
	assert.True(t, debug)
}
