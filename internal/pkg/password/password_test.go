package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	hash, err := Hash("Secret123!")
	require.NoError(t, err)
	require.NotEqual(t, "Secret123!", hash)

	assert.True(t, Verify("Secret123!", hash))
	assert.False(t, Verify("secret123!", hash))
	assert.False(t, Verify("", hash))
}

func TestVerify_GarbageHash(t *testing.T) {
	assert.False(t, Verify("anything", "not-a-bcrypt-hash"))
}

func TestHash_SaltedPerCall(t *testing.T) {
	a, err := Hash("Secret123!")
	require.NoError(t, err)
	b, err := Hash("Secret123!")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
