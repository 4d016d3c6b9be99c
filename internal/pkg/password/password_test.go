package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, Verify("s3cret-pass", hash))
	assert.False(t, Verify("wrong-pass", hash))
}

func TestHashToken_Deterministic(t *testing.T) {
	a := HashToken("refresh-token-abc")
	b := HashToken("refresh-token-abc")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, HashToken("refresh-token-xyz"))
}

func TestValidate(t *testing.T) {
	assert.False(t, Validate("12345"))
	assert.True(t, Validate("123456"))
}
