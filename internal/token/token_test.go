package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	secret := []byte("test_secret")

	signed, exp, err := Issue(secret, "buyer@example.com")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(TTL), exp, time.Minute)

	email, err := Parse(secret, signed)
	require.NoError(t, err)
	require.Equal(t, "buyer@example.com", email)
}

func TestParseWrongSecret(t *testing.T) {
	signed, _, err := Issue([]byte("secret_a"), "buyer@example.com")
	require.NoError(t, err)

	_, err = Parse([]byte("secret_b"), signed)
	require.Error(t, err)
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse([]byte("secret"), "not.a.token")
	require.Error(t, err)
}
