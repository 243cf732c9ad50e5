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

// GamesGW is the HTTP gateway to the game service. The base URL points at
// the service root; endpoints live under /v1/games.
type GamesGW struct {
	client *httpclient.Client
}

// NewGamesGW creates a game-service gateway over the shared credentials
func NewGamesGW(gamesURL string, timeout time.Duration, creds *httpclient.Credentials) *GamesGW {
	return &GamesGW{
		client: httpclient.NewClient(gamesURL, timeout, creds),
	}
}

func (g *GamesGW) List(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := g.client.GetJSON(ctx, "/v1/games/", &games); err != nil {
		return nil, gamesError("list games", err)
	}
	return games, nil
}

func (g *GamesGW) Get(ctx context.Context, id int64) (*models.Game, error) {
	var game models.Game
	if err := g.client.GetJSON(ctx, fmt.Sprintf("/v1/games/%d", id), &game); err != nil {
		return nil, gamesError("get game", err)
	}
	return &game, nil
}

func (g *GamesGW) Create(ctx context.Context, req models.GameCreateRequest) (*models.Game, error) {
	var game models.Game
	if err := g.client.PostJSON(ctx, "/v1/games/create", req, &game); err != nil {
		return nil, gamesError("create game", err)
	}

	logger.Info("game created",
		logger.Int64("game_id", game.ID),
		logger.String("name", game.Name))
	return &game, nil
}

func (g *GamesGW) UpdateStatus(ctx context.Context, id int64, status string) (*models.Game, error) {
	body := map[string]string{"status": status}

	var game models.Game
	if err := g.client.PutJSON(ctx, fmt.Sprintf("/v1/games/%d", id), body, &game); err != nil {
		return nil, gamesError("update game status", err)
	}

	logger.Info("game status updated",
		logger.Int64("game_id", id),
		logger.String("status", status))
	return &game, nil
}

func (g *GamesGW) Delete(ctx context.Context, id int64) error {
	if err := g.client.Delete(ctx, fmt.Sprintf("/v1/games/%d", id)); err != nil {
		return gamesError("delete game", err)
	}
	return nil
}

// gamesError surfaces the game service's own message when it sent one
func gamesError(op string, err error) error {
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return fmt.Errorf("%s: %s: %w", op, statusErr.Message, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
