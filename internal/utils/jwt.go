package utils

import (
	"errors"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authenticated caller as described by the identity provider.
type Principal struct {
	UserID string   `json:"userId"`
	Email  string   `json:"email,omitempty"`
	Roles  []string `json:"roles"`
}

// HasRole reports whether the principal carries the role.
func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

type jwtCustomClaims struct {
	Email string   `json:"email,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for the principal.
func GenerateToken(secret, issuer string, principal Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &jwtCustomClaims{
		Email: principal.Email,
		Roles: principal.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the token and returns the principal it describes.
// The issuer is only checked when non-empty.
func ParseToken(secret, issuer, tokenString string) (Principal, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return Principal{}, err
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		return Principal{}, jwt.ErrTokenInvalidClaims
	}
	if claims.Subject == "" {
		return Principal{}, errors.New("token has no subject")
	}

	roles := claims.Roles
	if roles == nil {
		roles = []string{}
	}
	return Principal{UserID: claims.Subject, Email: claims.Email, Roles: roles}, nil
}
