package roomstore

import (
	"context"
	"errors"

	"github.com/a-nahaitsev/vibe-server/internal/models"
)

// ErrNotFound is returned by Get when no room exists under the given id.
var ErrNotFound = errors.New("room not found")

// Store persists standings-draft rooms by id. The contract is plain
// get/set with last-writer-wins semantics: there is no compare-and-swap,
// so concurrent writers race and the later Set overwrites the earlier one.
// The state machine treats whichever backend is configured as the sole
// source of truth.
type Store interface {
	Get(ctx context.Context, roomID string) (*models.Room, error)
	Set(ctx context.Context, room *models.Room) error
}
