// Package auth provides the credential primitives of the service:
// bcrypt password hashing and signed bearer-token issuance.
package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/blogauth/internal/common"
)

// Claims carries the registered JWT claims plus the user's email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenIssuer mints HS256-signed, time-bound access tokens. Construction
// fails when the secret key, issuer, or audience is unset so that a
// misconfigured deployment refuses to start instead of failing per request.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	validity time.Duration
}

// DefaultTokenValidity is used when no validity is configured.
const DefaultTokenValidity = 60 * time.Minute

func NewTokenIssuer(secretKey, issuer, audience string, validity time.Duration) (*TokenIssuer, error) {
	if secretKey == "" || issuer == "" || audience == "" {
		return nil, common.ErrMissingJWTConfig
	}
	if validity <= 0 {
		validity = DefaultTokenValidity
	}
	return &TokenIssuer{
		secret:   []byte(secretKey),
		issuer:   issuer,
		audience: audience,
		validity: validity,
	}, nil
}

// Issue returns a signed token encoding subject=userID, email, a unique jti,
// issuer, audience, and expiry at now+validity.
func (i *TokenIssuer) Issue(userID int64, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
		Email: email,
	})
	return token.SignedString(i.secret)
}

// Parse validates a token's signature, expiry, issuer, and audience and
// returns its claims. Invalid tokens yield common.ErrInvalidToken.
func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
	)
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// Validity reports the configured token lifetime.
func (i *TokenIssuer) Validity() time.Duration {
	return i.validity
}

// UserID extracts the numeric user id from the subject claim.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, common.ErrInvalidToken
	}
	return id, nil
}
