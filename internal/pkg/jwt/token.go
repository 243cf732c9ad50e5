package jwt

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v4"
)

// ErrTokenMalformed indicates the bearer token could not be decoded at all.
// Callers treat this as "no session", never as a hard failure.
var ErrTokenMalformed = errors.New("malformed bearer token")

// IdentityClaims represents the identity the issuer embedded in a token
type IdentityClaims struct {
	Subject int64  // numeric user ID from the sub claim
	Name    string // optional display name
	Role    string // optional role tag
}

// DecodeToken parses the token's payload without verifying its signature.
// Verification is the issuer's and the transport's responsibility; the client
// only needs the claims to label the session.
func DecodeToken(tokenString string) (*IdentityClaims, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("%w: missing sub claim", ErrTokenMalformed)
	}

	subject, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: sub claim is not numeric: %v", ErrTokenMalformed, err)
	}

	identity := &IdentityClaims{Subject: subject}
	if name, ok := claims["name"].(string); ok {
		identity.Name = name
	}
	if role, ok := claims["role"].(string); ok {
		identity.Role = role
	}

	return identity, nil
}
