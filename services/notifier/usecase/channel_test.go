package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zonagamer/console/internal/pkg/models"
	"github.com/zonagamer/console/internal/pkg/roles"
	"github.com/zonagamer/console/services/notifier"
	"github.com/zonagamer/console/services/session"
)

// stubSession implements session.SessionUC with a fixed role
type stubSession struct {
	mu   sync.Mutex
	role string
}

func (s *stubSession) Restore(ctx context.Context) error { return nil }
func (s *stubSession) Login(ctx context.Context, email, password string) (*models.Session, error) {
	return nil, nil
}
func (s *stubSession) Register(ctx context.Context, name, email, password, role string) (*models.Session, error) {
	return nil, nil
}
func (s *stubSession) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = ""
}
func (s *stubSession) IsAuthenticated() bool { return s.currentRole() != "" }
func (s *stubSession) HasRole(role string) bool {
	return roles.Has(s.currentRole(), role)
}
func (s *stubSession) Current() *models.Session { return nil }
func (s *stubSession) State() session.State     { return session.StateAuthenticated }

func (s *stubSession) currentRole() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// fakeGames records UpdateStatus calls and can fail on demand
type fakeGames struct {
	updateErr    error
	updatedID    int64
	updatedState string
}

func (g *fakeGames) List(ctx context.Context) ([]models.Game, error) { return nil, nil }
func (g *fakeGames) Get(ctx context.Context, id int64) (*models.Game, error) {
	return nil, nil
}
func (g *fakeGames) Create(ctx context.Context, req models.GameCreateRequest) (*models.Game, error) {
	return nil, nil
}
func (g *fakeGames) UpdateStatus(ctx context.Context, id int64, status string) (*models.Game, error) {
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	g.updatedID = id
	g.updatedState = status
	return &models.Game{ID: id, Status: status}, nil
}
func (g *fakeGames) Delete(ctx context.Context, id int64) error { return nil }

// fakeCue counts playback attempts
type fakeCue struct {
	mu     sync.Mutex
	primed int
	played int
}

func (c *fakeCue) Prime() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.primed++
}

func (c *fakeCue) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.played++
}

func (c *fakeCue) playCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.played
}

func newTestChannel(role string) (*NotificationChannel, *stubSession, *fakeGames, *fakeCue) {
	sessions := &stubSession{role: role}
	gamesGW := &fakeGames{}
	cue := &fakeCue{}
	cfg := models.BrokerConfig{
		URL:              "nats://localhost:4222",
		Subject:          "admin.notifications.game",
		ReconnectWaitSec: 5,
		HeartbeatSec:     4,
		MaxPingsOut:      2,
	}
	return NewNotificationChannel(cfg, sessions, gamesGW, cue), sessions, gamesGW, cue
}

func deliver(c *NotificationChannel, payload string) {
	c.handleMessage(&nats.Msg{Subject: "admin.notifications.game", Data: []byte(payload)})
}

func TestNotificationChannel_StartRequiresAdmin(t *testing.T) {
	c, _, _, _ := newTestChannel(roles.RoleUser)

	err := c.Start(context.Background())

	assert.ErrorIs(t, err, notifier.ErrNotAdmin)
	assert.Equal(t, notifier.ConnInactive, c.ConnState())
}

func TestNotificationChannel_BuffersRecognizedAlerts(t *testing.T) {
	c, _, _, cue := newTestChannel(roles.RoleAdmin)

	deliver(c, `{"type":"GAME_ERROR","gameId":7,"message":"Jugador reporta fallo"}`)
	deliver(c, `{"type":"TEST_ADMIN","gameId":"8","message":"Prueba"}`)

	pending := c.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, models.AlertKindGameError, pending[0].Kind)
	assert.Equal(t, "7", pending[0].GameID.String())
	assert.Equal(t, models.AlertKindAdminTest, pending[1].Kind)
	// Arrival order is preserved and identity is monotonic
	assert.Less(t, pending[0].ID, pending[1].ID)
	assert.Equal(t, 2, cue.playCount())
}

func TestNotificationChannel_DropsMalformedPayload(t *testing.T) {
	c, _, _, cue := newTestChannel(roles.RoleAdmin)

	deliver(c, `{not json`)
	deliver(c, ``)

	assert.Empty(t, c.Pending())
	assert.Zero(t, cue.playCount())
}

func TestNotificationChannel_IgnoresUnrecognizedTypes(t *testing.T) {
	c, _, _, cue := newTestChannel(roles.RoleAdmin)

	deliver(c, `{"type":"CHAT_MESSAGE","gameId":7,"message":"hola"}`)

	assert.Empty(t, c.Pending())
	assert.Zero(t, cue.playCount())
}

func TestNotificationChannel_DeduplicatesByGameID(t *testing.T) {
	c, _, _, cue := newTestChannel(roles.RoleAdmin)

	deliver(c, `{"type":"GAME_ERROR","gameId":7,"message":"primer reporte"}`)
	// Same game, numeric vs string form: still a duplicate
	deliver(c, `{"type":"GAME_ERROR","gameId":"7","message":"segundo reporte"}`)
	deliver(c, `{"type":"GAME_ERROR","gameId":9,"message":"otro juego"}`)

	pending := c.Pending()
	require.Len(t, pending, 2)
	// The first alert for the game wins
	assert.Equal(t, "primer reporte", pending[0].Message)
	assert.Equal(t, "9", pending[1].GameID.String())
	assert.Equal(t, 2, cue.playCount())
}

func TestNotificationChannel_Pause(t *testing.T) {
	c, _, gamesGW, _ := newTestChannel(roles.RoleAdmin)
	deliver(c, `{"type":"GAME_ERROR","gameId":7,"message":"fallo"}`)
	alertID := c.Pending()[0].ID

	gameID, err := c.Pause(context.Background(), alertID)

	require.NoError(t, err)
	assert.Equal(t, int64(7), gameID)
	assert.Equal(t, int64(7), gamesGW.updatedID)
	assert.Equal(t, models.GameStatusPaused, gamesGW.updatedState)
	assert.Empty(t, c.Pending())
}

func TestNotificationChannel_PauseFailureRetainsAlert(t *testing.T) {
	c, _, gamesGW, _ := newTestChannel(roles.RoleAdmin)
	gamesGW.updateErr = errors.New("service unavailable")
	deliver(c, `{"type":"GAME_ERROR","gameId":7,"message":"fallo"}`)
	alertID := c.Pending()[0].ID

	_, err := c.Pause(context.Background(), alertID)

	var actionErr *notifier.ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, int64(7), actionErr.GameID)
	// The alert stays pending so the admin can retry
	require.Len(t, c.Pending(), 1)
	assert.Equal(t, alertID, c.Pending()[0].ID)
}

func TestNotificationChannel_View(t *testing.T) {
	c, _, _, _ := newTestChannel(roles.RoleAdmin)
	deliver(c, `{"type":"GAME_ERROR","gameId":7,"message":"fallo"}`)
	alertID := c.Pending()[0].ID

	gameID, err := c.View(alertID)

	require.NoError(t, err)
	assert.Equal(t, int64(7), gameID)
	assert.Empty(t, c.Pending())
}

func TestNotificationChannel_Dismiss(t *testing.T) {
	c, _, _, _ := newTestChannel(roles.RoleAdmin)
	deliver(c, `{"type":"GAME_ERROR","gameId":7,"message":"fallo"}`)
	alertID := c.Pending()[0].ID

	require.NoError(t, c.Dismiss(alertID))
	assert.Empty(t, c.Pending())

	assert.ErrorIs(t, c.Dismiss(alertID), notifier.ErrAlertNotFound)
}

func TestNotificationChannel_DispositionOnMissingAlert(t *testing.T) {
	c, _, _, _ := newTestChannel(roles.RoleAdmin)

	_, err := c.Pause(context.Background(), 42)
	assert.ErrorIs(t, err, notifier.ErrAlertNotFound)

	_, err = c.View(42)
	assert.ErrorIs(t, err, notifier.ErrAlertNotFound)
}

func TestNotificationChannel_RoleLossDeactivates(t *testing.T) {
	c, sessions, _, _ := newTestChannel(roles.RoleAdmin)
	deliver(c, `{"type":"GAME_ERROR","gameId":7,"message":"fallo"}`)
	require.Len(t, c.Pending(), 1)

	sessions.Logout()
	deliver(c, `{"type":"GAME_ERROR","gameId":9,"message":"nuevo"}`)

	// The new alert is not processed and the channel tears itself down
	assert.Len(t, c.Pending(), 1)
	assert.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.stopped
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, notifier.ConnInactive, c.ConnState())
}

func TestNotificationChannel_StopIsIdempotent(t *testing.T) {
	c, _, _, _ := newTestChannel(roles.RoleAdmin)

	c.Stop()
	c.Stop()

	assert.Equal(t, notifier.ConnInactive, c.ConnState())
	assert.ErrorContains(t, c.Start(context.Background()), "stopped")
}
