package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	in := Session{UserID: "u-1", BusinessID: "b-1", IsAdmin: true, IsOwner: true}
	token, err := Generate("secret", "test", 5, in)
	require.NoError(t, err)

	out, err := Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := Generate("secret", "test", 5, Session{UserID: "u", BusinessID: "b"})
	require.NoError(t, err)

	_, err = Parse("other", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := Generate("secret", "test", -1, Session{UserID: "u", BusinessID: "b"})
	require.NoError(t, err)

	_, err = Parse("secret", token)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := Generate("", "test", 5, Session{})
	assert.Error(t, err)
}
