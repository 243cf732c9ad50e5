package games

import (
	"context"

	"github.com/zonagamer/console/internal/pkg/models"
)

// GamesGW is the HTTP gateway to the game service's CRUD endpoints. Every
// call rides the shared outbound pipeline, so it carries the session's
// bearer token automatically.
type GamesGW interface {
	// List returns all games visible to the current user
	List(ctx context.Context) ([]models.Game, error)
	// Get returns a single game by ID
	Get(ctx context.Context, id int64) (*models.Game, error)
	// Create registers a new game session
	Create(ctx context.Context, req models.GameCreateRequest) (*models.Game, error)
	// UpdateStatus changes a game's lifecycle status
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Game, error)
	// Delete removes a game
	Delete(ctx context.Context, id int64) error
}
