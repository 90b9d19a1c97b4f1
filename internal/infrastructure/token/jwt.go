package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"openmic/internal/ports/output"
)

var _ output.TokenIssuer = (*JWTIssuer)(nil)

var ErrInvalidToken = errors.New("invalid access token")

const issuer = "openmic"

type claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 access tokens. The token only proves who the caller
// claims to be; the session it names must still exist in the session store.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret []byte, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: secret, ttl: ttl, now: time.Now}
}

func (i *JWTIssuer) Issue(c output.TokenClaims) (string, error) {
	now := i.now().UTC()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SessionID: c.SessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatUint(uint64(c.UserID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (i *JWTIssuer) Parse(raw string) (output.TokenClaims, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return output.TokenClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	userID, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || c.SessionID == "" {
		return output.TokenClaims{}, ErrInvalidToken
	}
	return output.TokenClaims{SessionID: c.SessionID, UserID: uint(userID)}, nil
}
