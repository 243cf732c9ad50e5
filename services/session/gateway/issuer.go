package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	httpclient "github.com/zonagamer/console/internal/pkg/http"
	"github.com/zonagamer/console/internal/pkg/logger"
	"github.com/zonagamer/console/internal/pkg/models"
)

// IssuerGW is the HTTP gateway to the identity issuer's auth endpoints
type IssuerGW struct {
	client *httpclient.Client
}

// NewIssuerGW creates a new identity-issuer gateway. The issuer base URL
// already includes the auth prefix, e.g. http://localhost:8082/v1/auth.
func NewIssuerGW(issuerURL string, timeout time.Duration, creds *httpclient.Credentials) *IssuerGW {
	return &IssuerGW{
		client: httpclient.NewClient(issuerURL, timeout, creds),
	}
}

// Login exchanges credentials for a bearer token
func (g *IssuerGW) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	var resp models.TokenResponse
	if err := g.client.PostJSON(ctx, "/login", req, &resp); err != nil {
		logger.Debug("login request failed", logger.Err(err))
		return nil, issuerError("login", err)
	}

	if resp.AccessToken == "" {
		return nil, fmt.Errorf("issuer returned no access token")
	}

	return &resp, nil
}

// Register creates an account and returns its first bearer token
func (g *IssuerGW) Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResponse, error) {
	var resp models.TokenResponse
	if err := g.client.PostJSON(ctx, "/register", req, &resp); err != nil {
		logger.Debug("register request failed", logger.Err(err))
		return nil, issuerError("register", err)
	}

	if resp.AccessToken == "" {
		return nil, fmt.Errorf("issuer returned no access token")
	}

	return &resp, nil
}

// issuerError keeps the issuer's own message visible to callers while still
// wrapping the underlying error
func issuerError(op string, err error) error {
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return fmt.Errorf("%s rejected: %s: %w", op, statusErr.Message, err)
	}
	return fmt.Errorf("%s request failed: %w", op, err)
}
