package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	encoded, err := Hash("correto-cavalo-bateria")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

	assert.True(t, Verify("correto-cavalo-bateria", encoded))
	assert.False(t, Verify("errado", encoded))
	assert.False(t, Verify("", encoded))
}

func TestVerifyRejectsMalformedEncodings(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$not-base64!$aGFzaA",
	} {
		assert.False(t, Verify("senha", encoded), "encoded=%q", encoded)
	}
}

func TestHashIsSalted(t *testing.T) {
	a, err := Hash("mesma-senha")
	require.NoError(t, err)
	b, err := Hash("mesma-senha")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
