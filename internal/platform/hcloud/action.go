package hcloud

import (
	"context"
	"errors"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/opsretry/internal/util/retry"
)

var (
	// ErrActionPending is returned when an action is still running after the
	// last poll.
	ErrActionPending = errors.New("action still running")

	// ErrActionNotFound is returned for unknown action IDs.
	ErrActionNotFound = errors.New("action not found")
)

// ActionError describes an action that finished with status error.
type ActionError struct {
	ID      int64
	Command string
	Code    string
	Message string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %d (%s) failed: %s: %s", e.ID, e.Command, e.Code, e.Message)
}

// WaitForAction polls action id until it leaves the running state.
//
// Every poll that still reports running counts as one attempt of the
// hcloud.action.wait profile. When the attempts run out the last action is
// returned together with ErrActionPending.
func (c *Client) WaitForAction(ctx context.Context, id int64) (*hcloud.Action, error) {
	p, h := c.profile(OpActionWait)

	poll := retry.Wrap(OpActionWait, c.getAction, retry.Policy[*hcloud.Action]{
		Retryable:   []retry.Kind{RateLimited()},
		Guards:      []retry.Guard[*hcloud.Action]{isRunning},
		MaxAttempts: p.MaxAttempts,
	}, h)

	action, err := poll(ctx, id)
	if err != nil {
		return nil, err
	}

	switch action.Status {
	case hcloud.ActionStatusRunning:
		return action, fmt.Errorf("%w: action %d (%s) at %d%% after %d polls",
			ErrActionPending, action.ID, action.Command, action.Progress, p.MaxAttempts)
	case hcloud.ActionStatusError:
		return action, &ActionError{
			ID:      action.ID,
			Command: action.Command,
			Code:    action.ErrorCode,
			Message: action.ErrorMessage,
		}
	}

	c.logger.Info("action finished", "id", action.ID, "command", action.Command, "status", string(action.Status))
	return action, nil
}

func (c *Client) getAction(ctx context.Context, id int64) (*hcloud.Action, error) {
	action, _, err := c.client.Action.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get action %d: %w", id, err)
	}
	if action == nil {
		return nil, fmt.Errorf("%w: %d", ErrActionNotFound, id)
	}
	return action, nil
}

func isRunning(action *hcloud.Action) bool {
	return action.Status == hcloud.ActionStatusRunning
}
