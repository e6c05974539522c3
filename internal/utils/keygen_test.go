package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeysHavePrefixes(t *testing.T) {
	live, err := GenerateLiveKey()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(live, "rp_live_"))

	sandbox, err := GenerateSandboxKey()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sandbox, "rp_sandbox_"))
}

func TestGenerateKeysAreUnique(t *testing.T) {
	a, err := GenerateLiveKey()
	require.NoError(t, err)
	b, err := GenerateLiveKey()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
