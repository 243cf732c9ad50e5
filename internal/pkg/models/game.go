package models

import "time"

// Game statuses as the game service stores them
const (
	GameStatusActive    = "activo"
	GameStatusCompleted = "completado"
	GameStatusCancelled = "cancelado"
	GameStatusPaused    = "pausado"
)

// Game represents a game session hosted by the game service
type Game struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Players     int        `json:"players"`
	GameType    string     `json:"gameType,omitempty"`
	UserID      int64      `json:"userId,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

// GameCreateRequest carries the fields needed to create a game
type GameCreateRequest struct {
	Name     string `json:"name"`
	GameType string `json:"gameType,omitempty"`
	Players  int    `json:"players,omitempty"`
}
