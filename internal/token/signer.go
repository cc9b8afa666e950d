// Package token issues and validates the signed access tokens used as
// bearer credentials. Tokens are HS256 JWTs carrying subject id,
// username, issuer, audience and a validity window. They are stateless:
// nothing here is persisted, validity is signature plus expiry.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-todo-api/internal/model"
)

var (
	ErrMalformed             = errors.New("token is malformed")
	ErrBadSignature          = errors.New("token signature is invalid")
	ErrExpired               = errors.New("token is expired")
	ErrWrongIssuerOrAudience = errors.New("token issuer or audience mismatch")
)

type Signer struct {
	secret    []byte
	issuer    string
	audience  string
	accessTTL time.Duration
}

type accessClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

func NewSigner(secret string, issuer string, audience string, accessTTL time.Duration) (*Signer, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("signing secret must be at least 32 bytes")
	}
	if accessTTL <= 0 {
		return nil, fmt.Errorf("access token TTL must be positive")
	}

	return &Signer{
		secret:    []byte(secret),
		issuer:    issuer,
		audience:  audience,
		accessTTL: accessTTL,
	}, nil
}

// AccessTTL reports the configured access token lifetime.
func (s *Signer) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *Signer) Issue(userID string, username string) (string, error) {
	now := time.Now().UTC()

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
		Username: username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return signed, nil
}

func (s *Signer) Validate(tokenString string) (*model.AuthClaims, error) {
	claims := &accessClaims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(_ *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, classifyParseError(err)
	}

	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrMalformed
	}

	out := &model.AuthClaims{
		UserID:   claims.Subject,
		Username: claims.Username,
		TokenID:  claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}

	return out, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrBadSignature
	case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrWrongIssuerOrAudience
	default:
		return ErrMalformed
	}
}
