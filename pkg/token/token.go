// Package token issues and verifies the bearer tokens that assert a
// principal's identity and kind. Tokens are stateless HS256 JWTs; logout does
// not invalidate them server-side, expiry is kept short instead.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"driveshare/pkg/apperr"
	"driveshare/pkg/models"
)

type Claims struct {
	jwt.RegisteredClaims
	Kind models.PrincipalKind `json:"kind"`
}

// Issuer signs and verifies principal tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a signed token embedding the principal id, kind and expiry.
func (i *Issuer) Issue(principalID int64, kind models.PrincipalKind) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(principalID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Kind: kind,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}
	return signed, nil
}

// Verify parses a token string and asserts it was issued for the expected
// principal kind. It returns the principal id on success.
func (i *Issuer) Verify(tokenString string, kind models.PrincipalKind) (int64, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, apperr.Wrap(apperr.KindAuth, "token has expired", err)
		}
		return 0, apperr.Wrap(apperr.KindAuth, "invalid token", err)
	}

	if claims.Kind != kind {
		return 0, apperr.Newf(apperr.KindForbidden, "endpoint requires %s authentication", kind)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, apperr.New(apperr.KindAuth, "invalid subject claim")
	}
	return id, nil
}
