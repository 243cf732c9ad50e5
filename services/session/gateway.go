package session

import (
	"context"

	"github.com/zonagamer/console/internal/pkg/models"
)

// AuthGW is the identity-issuer gateway. The issuer validates credentials
// and mints bearer tokens; the client never sees passwords again after
// these calls.
type AuthGW interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResponse, error)
}
