package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/authkeeper/internal/model"
)

var _ model.TokenManager = (*JWT)(nil)

// DefaultTTL is the access token lifetime used when none is configured.
const DefaultTTL = 30 * time.Minute

// Claims represents JWT claims carrying the account email and role.
type Claims struct {
	jwt.RegisteredClaims
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// JWT implements TokenManager backed by a symmetric HMAC signature.
type JWT struct {
	secretKey []byte
	method    jwt.SigningMethod
	ttl       time.Duration
	now       func() time.Time
}

// NewJWT creates a JWT token manager. algorithm must name an HMAC signing
// method (HS256, HS384 or HS512).
func NewJWT(secretKey, algorithm string, ttl time.Duration) (*JWT, error) {
	if secretKey == "" {
		return nil, errors.New("jwt secret key is empty")
	}

	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &JWT{
		secretKey: []byte(secretKey),
		method:    method,
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

// TTL returns the lifetime of issued tokens.
func (j *JWT) TTL() time.Duration {
	return j.ttl
}

// Issue signs a token for the given email and role that expires after TTL.
func (j *JWT) Issue(claims model.Claims) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(j.method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		Email: claims.Email,
		Role:  claims.Role,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// Parse verifies the signature and expiry of tokenString and returns its claims.
func (j *JWT) Parse(tokenString string) (model.Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{j.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return model.Claims{}, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}
	if !token.Valid {
		return model.Claims{}, fmt.Errorf("%w: access token is invalid", model.ErrInvalidToken)
	}
	if claims.Email == "" {
		return model.Claims{}, fmt.Errorf("%w: email claim is missing", model.ErrInvalidToken)
	}
	if !claims.Role.Valid() {
		return model.Claims{}, fmt.Errorf("%w: unknown role %q", model.ErrInvalidToken, claims.Role)
	}

	return model.Claims{
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
