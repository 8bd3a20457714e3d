package jwtx_test

import (
	"testing"
	"time"

	"github.com/lumenpay/sandbox/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func testCodec(ttl time.Duration) *jwtx.Codec {
	return jwtx.NewCodec([]byte("test-secret"), "sandbox-api", ttl)
}

func TestMintAndParse(t *testing.T) {
	codec := testCodec(time.Hour)

	token, err := codec.Mint("user-1", "demo@lumenpay.dev", "user", time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "demo@lumenpay.dev", claims.Email)
	require.Equal(t, "user", claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := testCodec(time.Hour).Mint("user-1", "demo@lumenpay.dev", "user", time.Now())
	require.NoError(t, err)

	other := jwtx.NewCodec([]byte("other-secret"), "sandbox-api", time.Hour)
	_, err = other.Parse(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestParseRejectsExpired(t *testing.T) {
	codec := testCodec(time.Minute)

	token, err := codec.Mint("user-1", "demo@lumenpay.dev", "user", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = codec.Parse(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := testCodec(time.Hour).Parse("definitely.not.a-jwt")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}
