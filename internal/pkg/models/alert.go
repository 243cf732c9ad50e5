package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// AlertKind identifies the recognized operational alert types delivered by
// the broker. Anything else is AlertKindUnrecognized and must be ignored.
type AlertKind string

const (
	AlertKindGameError    AlertKind = "GAME_ERROR"
	AlertKindAdminTest    AlertKind = "TEST_ADMIN"
	AlertKindUnrecognized AlertKind = ""
)

// ParseAlertKind maps a raw type tag to a recognized kind
func ParseAlertKind(raw string) AlertKind {
	switch raw {
	case string(AlertKindGameError):
		return AlertKindGameError
	case string(AlertKindAdminTest):
		return AlertKindAdminTest
	default:
		return AlertKindUnrecognized
	}
}

// GameID accepts either a JSON string or a JSON number; the broker's
// producers are not consistent about which they send.
type GameID string

// UnmarshalJSON implements json.Unmarshaler
func (g *GameID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty game id")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = GameID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*g = GameID(n.String())
	return nil
}

// Int64 returns the numeric form of the game ID, or an error when the
// producer sent a non-numeric string.
func (g GameID) Int64() (int64, error) {
	return strconv.ParseInt(string(g), 10, 64)
}

func (g GameID) String() string {
	return string(g)
}

// AlertMessage is the wire envelope delivered on the admin alert subject
type AlertMessage struct {
	Type    string `json:"type"`
	GameID  GameID `json:"gameId"`
	Message string `json:"message"`
}

// Kind returns the recognized alert kind for the raw type tag
func (m AlertMessage) Kind() AlertKind {
	return ParseAlertKind(m.Type)
}

// Alert is a pending operational alert held in memory until an administrator
// disposes of it. ID is a local monotonic identity assigned on receipt; it is
// what the disposition actions key on, never the alert content.
type Alert struct {
	ID      uint64    `json:"id"`
	Kind    AlertKind `json:"kind"`
	GameID  GameID    `json:"gameId"`
	Message string    `json:"message"`
}
