package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openmic/internal/ports/output"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer := NewJWTIssuer(secret, time.Hour)

	raw, err := issuer.Issue(output.TokenClaims{SessionID: "sess-1", UserID: 42})
	require.NoError(t, err)

	claims, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, output.TokenClaims{SessionID: "sess-1", UserID: 42}, claims)
}

func TestJWTIssuer_RejectsExpired(t *testing.T) {
	issuer := NewJWTIssuer(secret, time.Minute)
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }
	raw, err := issuer.Issue(output.TokenClaims{SessionID: "s", UserID: 1})
	require.NoError(t, err)

	issuer.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = issuer.Parse(raw)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_RejectsOtherSecret(t *testing.T) {
	raw, err := NewJWTIssuer([]byte("another-secret-another-secret-xx"), time.Hour).Issue(output.TokenClaims{SessionID: "s", UserID: 1})
	require.NoError(t, err)

	_, err = NewJWTIssuer(secret, time.Hour).Parse(raw)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_RejectsNoneAlgorithm(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, claims{
		SessionID: "s",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTIssuer(secret, time.Hour).Parse(raw)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_RequiresSession(t *testing.T) {
	issuer := NewJWTIssuer(secret, time.Hour)
	raw, err := issuer.Issue(output.TokenClaims{UserID: 1})
	require.NoError(t, err)

	_, err = issuer.Parse(raw)

	assert.ErrorIs(t, err, ErrInvalidToken)
}
