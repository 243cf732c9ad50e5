package notifier

import (
	"errors"
	"fmt"
)

// ErrNotAdmin is returned when the channel is started without the
// administrator role.
var ErrNotAdmin = errors.New("alert channel requires the administrator role")

// ErrAlertNotFound is returned by a disposition action when the alert is no
// longer pending.
var ErrAlertNotFound = errors.New("alert is no longer pending")

// ActionError reports a failed disposition action against the game service.
// The alert stays pending so the administrator can retry.
type ActionError struct {
	GameID int64
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action on game %d failed: %v", e.GameID, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
