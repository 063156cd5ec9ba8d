package roomstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/a-nahaitsev/vibe-server/internal/models"
)

// MemoryStore keeps rooms in a process-local map. Suited to single-instance
// deployments and tests; rooms do not survive a restart. The mutex only
// guards the map itself, it does not serialize whole operations on a room.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string][]byte
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(ctx context.Context, roomID string) (*models.Room, error) {
	s.mu.RLock()
	raw, ok := s.rooms[roomID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var room models.Room
	if err := json.Unmarshal(raw, &room); err != nil {
		return nil, fmt.Errorf("failed to decode room %s: %w", roomID, err)
	}
	return &room, nil
}

func (s *MemoryStore) Set(ctx context.Context, room *models.Room) error {
	raw, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to encode room %s: %w", room.RoomID, err)
	}

	s.mu.Lock()
	s.rooms[room.RoomID] = raw
	s.mu.Unlock()
	return nil
}
