package jwt

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("issuer-secret-not-known-to-client"))
	require.NoError(t, err)
	return signed
}

func TestDecodeToken(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		expectError bool
		expected    *IdentityClaims
	}{
		{
			name:     "Full claim set",
			token:    signedToken(t, jwt.MapClaims{"sub": "42", "name": "Carla", "role": "ROLE_ADMIN"}),
			expected: &IdentityClaims{Subject: 42, Name: "Carla", Role: "ROLE_ADMIN"},
		},
		{
			name:     "No role claim",
			token:    signedToken(t, jwt.MapClaims{"sub": "7", "name": "Luis"}),
			expected: &IdentityClaims{Subject: 7, Name: "Luis"},
		},
		{
			name:     "No name claim",
			token:    signedToken(t, jwt.MapClaims{"sub": "9", "role": "ROLE_USER"}),
			expected: &IdentityClaims{Subject: 9, Role: "ROLE_USER"},
		},
		{
			name:        "Missing sub claim",
			token:       signedToken(t, jwt.MapClaims{"name": "nobody"}),
			expectError: true,
		},
		{
			name:        "Non-numeric sub claim",
			token:       signedToken(t, jwt.MapClaims{"sub": "abc"}),
			expectError: true,
		},
		{
			name:        "Structurally invalid token",
			token:       "not.a.token",
			expectError: true,
		},
		{
			name:        "Empty token",
			token:       "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := DecodeToken(tt.token)

			if tt.expectError {
				assert.Error(t, err)
				assert.ErrorIs(t, err, ErrTokenMalformed)
				assert.Nil(t, identity)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, identity)
			}
		})
	}
}

func TestDecodeToken_IgnoresSignature(t *testing.T) {
	// The client never holds the issuer's secret, so a token signed with any
	// key must still decode.
	tokenA := signedToken(t, jwt.MapClaims{"sub": "1", "role": "ROLE_USER"})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1", "role": "ROLE_USER"})
	tokenB, err := token.SignedString([]byte("a-completely-different-secret"))
	require.NoError(t, err)

	identityA, err := DecodeToken(tokenA)
	require.NoError(t, err)
	identityB, err := DecodeToken(tokenB)
	require.NoError(t, err)

	assert.Equal(t, identityA, identityB)
}
