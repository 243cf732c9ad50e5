package notifier

import (
	"context"

	"github.com/zonagamer/console/internal/pkg/models"
)

// ConnState is the channel's connection lifecycle state. It is owned
// exclusively by the channel; callers only read it for the passive
// connectivity indicator.
type ConnState int

const (
	ConnInactive ConnState = iota
	ConnConnecting
	ConnConnected
)

func (s ConnState) String() string {
	switch s {
	case ConnInactive:
		return "inactive"
	case ConnConnecting:
		return "connecting"
	case ConnConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// NotifierUC is the admin alert channel contract. The channel only arms for
// administrators, buffers alerts in arrival order, and absorbs transport and
// parse failures internally.
type NotifierUC interface {
	// Start connects to the broker and subscribes to the alert subject
	Start(ctx context.Context) error
	// Stop tears the subscription and connection down; idempotent
	Stop()
	// ConnState reports the current connection state
	ConnState() ConnState

	// Pending returns the buffered alerts in arrival order
	Pending() []models.Alert
	// Pause pauses the alerted game and removes the alert on success.
	// On failure the alert stays pending so the admin can retry.
	Pause(ctx context.Context, alertID uint64) (int64, error)
	// View removes the alert and returns its game ID for navigation
	View(alertID uint64) (int64, error)
	// Dismiss removes the alert locally, no network call
	Dismiss(alertID uint64) error
}

// Cue is the notification sound. Both methods are best-effort: playback
// failure must never block or fail alert handling.
type Cue interface {
	// Prime performs one low-volume playback attempt so later alerts can
	// sound without further setup
	Prime()
	// Play sounds the alert cue
	Play()
}
