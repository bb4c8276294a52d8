package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret")

	token, err := issuer.CreateAccessToken("acc-1", "1020304050", "CLIENT", time.Minute)
	require.NoError(t, err)

	claims, err := issuer.ParseValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.Subject)
	assert.Equal(t, "1020304050", claims.IDNumber)
	assert.Equal(t, "CLIENT", claims.Role)
}

func TestIssuer_RejectsForeignSecret(t *testing.T) {
	token, err := NewIssuer("other").CreateAccessToken("acc-1", "1020304050", "ADMIN", time.Minute)
	require.NoError(t, err)

	_, err = NewIssuer("test-secret").ParseValidate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_RejectsExpired(t *testing.T) {
	issuer := NewIssuer("test-secret")
	token, err := issuer.CreateAccessToken("acc-1", "1020304050", "CLIENT", -time.Minute)
	require.NoError(t, err)

	_, err = issuer.ParseValidate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
