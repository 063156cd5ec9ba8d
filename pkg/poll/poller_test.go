package poll

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

// roomServer serves a mutable room view and lets tests skew the reported
// server clock relative to the poller's local clock.
type roomServer struct {
	mu   sync.Mutex
	room Room
}

func (s *roomServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s.room)
	}
}

func (s *roomServer) set(room Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.room = room
}

func TestPollOnceUpdatesLatestAndDrift(t *testing.T) {
	clock := clockwork.NewFakeClock()
	localNow := clock.Now().UnixMilli()

	ends := localNow + 35_000
	backend := &roomServer{}
	backend.set(Room{
		RoomID:     "sdraft-abc",
		Phase:      "playing",
		TurnEndsAt: &ends,
		// Server runs 5s ahead of the local clock.
		ServerNow: localNow + 5_000,
	})
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	poller := NewPoller(server.URL, "sdraft-abc", time.Second, clock)

	var updates []*Room
	poller.OnUpdate = func(room *Room) {
		updates = append(updates, room)
	}

	poller.pollOnce(context.Background())

	require.Len(t, updates, 1)
	require.NotNil(t, poller.Latest())
	require.Equal(t, "sdraft-abc", poller.Latest().RoomID)

	// 35s to the deadline on the server clock, regardless of local skew.
	remaining, ok := poller.RemainingSeconds()
	require.True(t, ok)
	require.Equal(t, 30, remaining)
}

func TestRemainingSecondsCountsDownOnLocalClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	localNow := clock.Now().UnixMilli()

	ends := localNow + 20_000
	backend := &roomServer{}
	backend.set(Room{RoomID: "sdraft-abc", Phase: "playing", TurnEndsAt: &ends, ServerNow: localNow})
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	poller := NewPoller(server.URL, "sdraft-abc", time.Second, clock)
	poller.pollOnce(context.Background())

	remaining, ok := poller.RemainingSeconds()
	require.True(t, ok)
	require.Equal(t, 20, remaining)

	// Between polls the countdown follows the local clock.
	clock.Advance(7 * time.Second)
	remaining, ok = poller.RemainingSeconds()
	require.True(t, ok)
	require.Equal(t, 13, remaining)

	clock.Advance(time.Minute)
	remaining, ok = poller.RemainingSeconds()
	require.True(t, ok)
	require.Zero(t, remaining)
}

func TestRemainingSecondsWithoutDeadline(t *testing.T) {
	clock := clockwork.NewFakeClock()
	backend := &roomServer{}
	backend.set(Room{RoomID: "sdraft-abc", Phase: "lobby", ServerNow: clock.Now().UnixMilli()})
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	poller := NewPoller(server.URL, "sdraft-abc", time.Second, clock)

	// Before the first poll there is nothing to count down.
	_, ok := poller.RemainingSeconds()
	require.False(t, ok)

	poller.pollOnce(context.Background())
	_, ok = poller.RemainingSeconds()
	require.False(t, ok)
}

func TestPollOnceKeepsPreviousViewOnFailure(t *testing.T) {
	clock := clockwork.NewFakeClock()
	backend := &roomServer{}
	backend.set(Room{RoomID: "sdraft-abc", Phase: "playing", ServerNow: clock.Now().UnixMilli()})

	var failing bool
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		fail := failing
		mu.Unlock()
		if fail {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		backend.handler()(w, r)
	}))
	defer server.Close()

	poller := NewPoller(server.URL, "sdraft-abc", time.Second, clock)
	poller.pollOnce(context.Background())
	require.NotNil(t, poller.Latest())

	mu.Lock()
	failing = true
	mu.Unlock()

	poller.pollOnce(context.Background())
	require.NotNil(t, poller.Latest())
	require.Equal(t, "sdraft-abc", poller.Latest().RoomID)
}
