package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/zonagamer/console/internal/pkg/logger"
	"github.com/zonagamer/console/internal/pkg/models"
	"github.com/zonagamer/console/internal/pkg/roles"
	"github.com/zonagamer/console/services/games"
	"github.com/zonagamer/console/services/notifier"
	"github.com/zonagamer/console/services/session"
)

// NotificationChannel subscribes to the admin alert subject and buffers
// incoming alerts until an administrator disposes of them. Transport drops
// are recovered by the client's automatic reconnect with a fixed delay;
// malformed or unrecognized payloads are dropped without affecting the
// channel.
type NotificationChannel struct {
	cfg      models.BrokerConfig
	sessions session.SessionUC
	games    games.GamesGW
	cue      notifier.Cue

	mu         sync.Mutex
	conn       *nats.Conn
	sub        *nats.Subscription
	state      notifier.ConnState
	pending    []models.Alert
	nextID     uint64
	primeTimer *time.Timer
	stopped    bool
}

// NewNotificationChannel creates an inactive channel. Start arms it.
func NewNotificationChannel(cfg models.BrokerConfig, sessions session.SessionUC, gamesGW games.GamesGW, cue notifier.Cue) *NotificationChannel {
	return &NotificationChannel{
		cfg:      cfg,
		sessions: sessions,
		games:    gamesGW,
		cue:      cue,
		state:    notifier.ConnInactive,
	}
}

// Start connects to the broker and subscribes to the alert subject. Only
// administrators may arm the channel. The connection keeps retrying with a
// fixed delay for as long as the channel is armed, so a broker outage never
// surfaces as more than the connectivity indicator.
func (c *NotificationChannel) Start(ctx context.Context) error {
	if !c.sessions.HasRole(roles.RoleAdmin) {
		return notifier.ErrNotAdmin
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return fmt.Errorf("alert channel already stopped")
	}
	if c.conn != nil {
		return nil
	}

	opts := []nats.Option{
		nats.Name("console-" + uuid.New().String()),
		nats.Timeout(time.Duration(c.cfg.ConnectTimeoutSec) * time.Second),
		// Fixed reconnect delay, no backoff
		nats.ReconnectWait(time.Duration(c.cfg.ReconnectWaitSec) * time.Second),
		nats.PingInterval(time.Duration(c.cfg.HeartbeatSec) * time.Second),
		nats.MaxPingsOutstanding(c.cfg.MaxPingsOut),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ConnectHandler(func(_ *nats.Conn) {
			c.setState(notifier.ConnConnected)
			logger.Info("alert broker connected", logger.String("url", c.cfg.URL))
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			c.setState(notifier.ConnConnecting)
			logger.Warn("alert broker connection dropped", logger.Err(err))
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			c.setState(notifier.ConnConnected)
			logger.Info("alert broker reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			c.setState(notifier.ConnInactive)
		}),
	}

	conn, err := nats.Connect(c.cfg.URL, opts...)
	if err != nil {
		return fmt.Errorf("failed to connect to alert broker: %w", err)
	}

	sub, err := conn.Subscribe(c.cfg.Subject, c.handleMessage)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to subscribe to alert subject: %w", err)
	}

	c.conn = conn
	c.sub = sub
	if conn.IsConnected() {
		c.state = notifier.ConnConnected
	} else {
		c.state = notifier.ConnConnecting
	}

	// One low-volume attempt shortly after activation so the first real
	// alert can sound without further setup.
	c.primeTimer = time.AfterFunc(time.Second, c.cue.Prime)

	logger.Info("alert channel armed",
		logger.String("subject", c.cfg.Subject),
		logger.String("state", c.state.String()))
	return nil
}

// Stop unsubscribes and closes the connection. Idempotent; no reconnect
// timer survives it.
func (c *NotificationChannel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	c.stopped = true

	if c.primeTimer != nil {
		c.primeTimer.Stop()
	}
	if c.sub != nil {
		if err := c.sub.Unsubscribe(); err != nil {
			logger.Debug("unsubscribe failed", logger.Err(err))
		}
		c.sub = nil
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.state = notifier.ConnInactive
	logger.Info("alert channel stopped")
}

// ConnState reports the connection state for the passive indicator
func (c *NotificationChannel) ConnState() notifier.ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// handleMessage runs on the client's dispatcher goroutine, so alerts are
// processed strictly in broker delivery order.
func (c *NotificationChannel) handleMessage(msg *nats.Msg) {
	// Losing the admin role tears the channel down rather than processing
	// alerts for a session that no longer holds it.
	if !c.sessions.HasRole(roles.RoleAdmin) {
		logger.Warn("administrator role lost, deactivating alert channel")
		go c.Stop()
		return
	}

	var envelope models.AlertMessage
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		logger.Debug("dropping malformed alert payload", logger.Err(err))
		return
	}

	kind := envelope.Kind()
	if kind == models.AlertKindUnrecognized {
		logger.Debug("ignoring alert of unrecognized type",
			logger.String("type", envelope.Type))
		return
	}

	c.mu.Lock()
	if envelope.GameID != "" && c.hasPendingForGame(envelope.GameID) {
		// One open issue per game at a time: the first alert wins
		c.mu.Unlock()
		logger.Debug("duplicate alert for game discarded",
			logger.String("game_id", envelope.GameID.String()))
		return
	}
	c.nextID++
	alert := models.Alert{
		ID:      c.nextID,
		Kind:    kind,
		GameID:  envelope.GameID,
		Message: envelope.Message,
	}
	c.pending = append(c.pending, alert)
	c.mu.Unlock()

	logger.Warn("operational alert received",
		logger.String("type", string(kind)),
		logger.String("game_id", envelope.GameID.String()),
		logger.String("message", envelope.Message))

	c.cue.Play()
}

// hasPendingForGame must be called with the mutex held
func (c *NotificationChannel) hasPendingForGame(gameID models.GameID) bool {
	for _, a := range c.pending {
		if a.GameID == gameID {
			return true
		}
	}
	return false
}

// Pending returns the buffered alerts in arrival order
func (c *NotificationChannel) Pending() []models.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Alert, len(c.pending))
	copy(out, c.pending)
	return out
}

// Pause pauses the alerted game through the game service and removes the
// alert on success. On failure the alert stays pending for retry.
func (c *NotificationChannel) Pause(ctx context.Context, alertID uint64) (int64, error) {
	alert, ok := c.find(alertID)
	if !ok {
		return 0, notifier.ErrAlertNotFound
	}

	gameID, err := alert.GameID.Int64()
	if err != nil {
		return 0, &notifier.ActionError{GameID: 0, Err: fmt.Errorf("alert carries a non-numeric game id %q: %w", alert.GameID, err)}
	}

	if _, err := c.games.UpdateStatus(ctx, gameID, models.GameStatusPaused); err != nil {
		logger.Error("failed to pause game from alert",
			logger.Int64("game_id", gameID),
			logger.Err(err))
		return 0, &notifier.ActionError{GameID: gameID, Err: err}
	}

	c.remove(alertID)
	logger.Info("game paused from alert", logger.Int64("game_id", gameID))
	return gameID, nil
}

// View removes the alert and returns its game ID for navigation
func (c *NotificationChannel) View(alertID uint64) (int64, error) {
	alert, ok := c.find(alertID)
	if !ok {
		return 0, notifier.ErrAlertNotFound
	}

	gameID, err := alert.GameID.Int64()
	if err != nil {
		return 0, fmt.Errorf("alert carries a non-numeric game id %q: %w", alert.GameID, err)
	}

	c.remove(alertID)
	return gameID, nil
}

// Dismiss removes the alert locally. No network call is made.
func (c *NotificationChannel) Dismiss(alertID uint64) error {
	if !c.remove(alertID) {
		return notifier.ErrAlertNotFound
	}
	return nil
}

func (c *NotificationChannel) find(alertID uint64) (models.Alert, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range c.pending {
		if a.ID == alertID {
			return a, true
		}
	}
	return models.Alert{}, false
}

func (c *NotificationChannel) remove(alertID uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, a := range c.pending {
		if a.ID == alertID {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return true
		}
	}
	return false
}

func (c *NotificationChannel) setState(state notifier.ConnState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.state = state
}
