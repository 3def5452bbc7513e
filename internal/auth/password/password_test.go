package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	encoded, err := Hash("correcthorse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

	assert.True(t, Verify("correcthorse", encoded))
	assert.False(t, Verify("wrongpassword", encoded))
	assert.False(t, Verify("", encoded))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("correcthorse")
	require.NoError(t, err)
	second, err := Hash("correcthorse")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	assert.True(t, Verify("correcthorse", first))
	assert.True(t, Verify("correcthorse", second))
}

func TestVerifyRejectsMalformedEncodings(t *testing.T) {
	assert.False(t, Verify("correcthorse", ""))
	assert.False(t, Verify("correcthorse", "plaintext"))
	assert.False(t, Verify("correcthorse", "$bcrypt$v=19$m=65536,t=1,p=4$salt$hash"))
}
