package server

import (
	"context"
	"errors"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusServer_Shutdown(t *testing.T) {
	s := NewStatusServer(echo.New(), 0)

	// Shutdown before Start must not hang or fail
	require.NoError(t, s.Shutdown())
}

func TestShutdownManager_RunsAllFunctions(t *testing.T) {
	sm := NewShutdownManager()

	var order []int
	sm.Register(func(ctx context.Context) error {
		order = append(order, 1)
		return nil
	})
	sm.Register(func(ctx context.Context) error {
		order = append(order, 2)
		return errors.New("cleanup failed")
	})
	sm.Register(func(ctx context.Context) error {
		order = append(order, 3)
		return nil
	})

	require.NoError(t, sm.Shutdown(context.Background()))

	// A failing component does not stop the rest
	assert.Equal(t, []int{1, 2, 3}, order)
}
