// Package poll is a small client adapter for standings-draft rooms: it
// re-fetches the room view on a fixed interval and keeps a drift-corrected
// turn countdown, so consumers never trust their local clock against the
// server's turn deadline.
package poll

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Room is the wire shape of the room view, reduced to what a polling client
// consumes. Timestamps are unix milliseconds.
type Room struct {
	RoomID             string `json:"roomId"`
	Phase              string `json:"phase"`
	CurrentPlayerIndex int    `json:"currentPlayerIndex"`
	Players            []struct {
		PlayerID string `json:"playerId"`
		Name     string `json:"name"`
		Score    int    `json:"score"`
		Misses   int    `json:"misses"`
	} `json:"players"`
	RevealedRanks    []int  `json:"revealedRanks"`
	TurnEndsAt       *int64 `json:"turnEndsAt"`
	ServerNow        int64  `json:"serverNow"`
	RemainingSeconds *int   `json:"remainingSeconds"`
}

// Poller periodically fetches one room and exposes the latest view. The
// countdown is computed against the server clock: each response yields
// drift = serverNow - localNow, and remaining time is measured on the local
// clock shifted by that drift.
type Poller struct {
	baseURL  string
	roomID   string
	interval time.Duration
	client   *http.Client
	clock    clockwork.Clock

	// OnUpdate is invoked after every successful fetch, from the polling
	// goroutine. Set before calling Run.
	OnUpdate func(*Room)

	mu      sync.Mutex
	latest  *Room
	driftMs int64
}

func NewPoller(baseURL, roomID string, interval time.Duration, clock clockwork.Clock) *Poller {
	return &Poller{
		baseURL:  baseURL,
		roomID:   roomID,
		interval: interval,
		client:   &http.Client{Timeout: 10 * time.Second},
		clock:    clock,
	}
}

// Run polls until the context is cancelled. Fetch failures are skipped; the
// previous view stays current until the next successful poll.
func (p *Poller) Run(ctx context.Context) {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.pollOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.pollOnce(ctx)
		}
	}
}

func (p *Poller) pollOnce(ctx context.Context) {
	room, err := p.fetch(ctx)
	if err != nil {
		return
	}

	p.mu.Lock()
	p.latest = room
	p.driftMs = room.ServerNow - p.clock.Now().UnixMilli()
	p.mu.Unlock()

	if p.OnUpdate != nil {
		p.OnUpdate(room)
	}
}

func (p *Poller) fetch(ctx context.Context) (*Room, error) {
	url := fmt.Sprintf("%s/api/standings-draft/rooms/%s", p.baseURL, p.roomID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching room", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read room response: %w", err)
	}

	var room Room
	if err := json.Unmarshal(body, &room); err != nil {
		return nil, fmt.Errorf("failed to decode room response: %w", err)
	}
	return &room, nil
}

// Latest returns the most recent room view, or nil before the first
// successful poll.
func (p *Poller) Latest() *Room {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest
}

// RemainingSeconds is the drift-corrected turn countdown: zero for expired
// or untimed turns, false before the first successful poll or when no turn
// deadline is set.
func (p *Poller) RemainingSeconds() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.latest == nil || p.latest.TurnEndsAt == nil {
		return 0, false
	}

	serverEstimate := p.clock.Now().UnixMilli() + p.driftMs
	remainingMs := *p.latest.TurnEndsAt - serverEstimate
	if remainingMs <= 0 {
		return 0, true
	}
	return int((remainingMs + 999) / 1000), true
}
