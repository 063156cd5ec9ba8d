package room

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/a-nahaitsev/vibe-server/internal/models"
	"github.com/a-nahaitsev/vibe-server/internal/roomstore"
)

// StandingsProvider defines what the app needs from the external standings
// data source. Used on game start when the caller sends no cached table.
type StandingsProvider interface {
	Standings(ctx context.Context, league, season int) ([]models.StandingRow, string, error)
}

// EventPublisher defines what the app needs from the room-event fan-out.
// Publishing is best-effort; failures are logged, never surfaced to players.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, roomID string, payload interface{}) error
}

// App is the standings-draft state machine. Every operation is a short
// load-mutate-persist unit of work against the store; there is no per-room
// actor or lock, and concurrent writers follow the store's last-writer-wins
// contract. Turn timeouts are enforced lazily: each operation that loads a
// room first reconciles an expired turn against the wall clock, so staleness
// is bounded by the clients' poll interval rather than a background timer.
type App struct {
	store    roomstore.Store
	provider StandingsProvider
	events   EventPublisher
	clock    clockwork.Clock

	randMu sync.Mutex
	rand   *rand.Rand
}

// NewApp creates the state machine around a store. Provider and events may
// be nil-behaving implementations; clock is injectable for tests.
func NewApp(store roomstore.Store, provider StandingsProvider, events EventPublisher, clock clockwork.Clock) *App {
	return &App{
		store:    store,
		provider: provider,
		events:   events,
		clock:    clock,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand replaces the random source, used by tests for determinism.
func (a *App) WithRand(r *rand.Rand) *App {
	a.rand = r
	return a
}

func (a *App) intn(n int) int {
	a.randMu.Lock()
	defer a.randMu.Unlock()
	return a.rand.Intn(n)
}

func (a *App) nowMillis() int64 {
	return a.clock.Now().UnixMilli()
}

func newID(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// CreateRoom allocates a new room in the lobby phase with the requester as
// creator and sole player.
func (a *App) CreateRoom(ctx context.Context, creatorName string) (*models.Room, error) {
	name := strings.TrimSpace(creatorName)
	if name == "" {
		return nil, newError(KindInvalidInput, "player name is required")
	}

	now := a.nowMillis()
	room := &models.Room{
		RoomID:    newID("sdraft"),
		CreatorID: newID("player"),
		Phase:     models.PhaseLobby,
		League:    defaultLeagueID,
		Season:    defaultSeason,
		CreatedAt: now,
	}
	room.Players = []models.Player{{PlayerID: room.CreatorID, Name: name}}

	if err := a.store.Set(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to persist new room: %w", err)
	}

	a.publish(ctx, "RoomCreated", room.RoomID, map[string]interface{}{
		"creatorId": room.CreatorID,
	})
	log.Info().Str("room_id", room.RoomID).Str("creator", name).Msg("room created")
	return room, nil
}

// JoinRoom adds a player to a lobby-phase room and returns the new player id.
func (a *App) JoinRoom(ctx context.Context, roomID, playerName string) (string, error) {
	name := strings.TrimSpace(playerName)
	if name == "" {
		return "", newError(KindInvalidInput, "player name is required")
	}

	room, err := a.load(ctx, roomID)
	if err != nil {
		return "", err
	}
	if room.Phase != models.PhaseLobby {
		return "", newError(KindInvalidPhase, "game already started")
	}

	playerID := newID("player")
	room.Players = append(room.Players, models.Player{PlayerID: playerID, Name: name})

	if err := a.store.Set(ctx, room); err != nil {
		return "", fmt.Errorf("failed to persist room: %w", err)
	}

	log.Info().Str("room_id", roomID).Str("player_id", playerID).Msg("player joined")
	return playerID, nil
}

// GetRoom loads a room, reconciling an expired turn first. The view
// projection (stripping the badge hint, adding server time) is the
// gateway's concern.
func (a *App) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	room, err := a.load(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := a.reconcileAndSave(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// StartRequest carries the game-start settings. Standings may be supplied by
// the caller (clients cache tables locally); otherwise they are fetched from
// the standings provider.
type StartRequest struct {
	PlayerID     string
	League       int
	Season       int
	LeagueName   string
	Standings    []models.StandingRow
	TimerSeconds *int
	MissLimit    *int
}

// StartGame transitions lobby → playing: snapshots the standings table and
// per-turn settings, resets every player's per-game state and hands the
// first turn to a random player.
func (a *App) StartGame(ctx context.Context, roomID string, req StartRequest) (*models.Room, error) {
	room, err := a.load(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Phase != models.PhaseLobby {
		return nil, newError(KindInvalidPhase, "game already started")
	}
	if room.CreatorID != req.PlayerID {
		return nil, newError(KindForbidden, "only the host can start the game")
	}
	if len(room.Players) < 1 {
		return nil, newError(KindInvalidInput, "need at least one player")
	}

	standings := req.Standings
	leagueName := strings.TrimSpace(req.LeagueName)
	if len(standings) == 0 {
		if a.provider == nil {
			return nil, newError(KindInvalidInput, "no standings data")
		}
		standings, leagueName, err = a.provider.Standings(ctx, req.League, req.Season)
		if err != nil {
			return nil, newError(KindUpstream, fmt.Sprintf("failed to load standings: %v", err))
		}
	}
	if len(standings) == 0 {
		return nil, newError(KindInvalidInput, "no standings data")
	}

	room.Phase = models.PhasePlaying
	room.League = req.League
	room.Season = req.Season
	room.LeagueName = leagueName
	room.Standings = standings
	room.MissLimit = req.MissLimit
	room.TimerSeconds = req.TimerSeconds
	room.RevealedRanks = nil
	room.LastPick = nil
	room.PickHistory = nil
	for i := range room.Players {
		p := &room.Players[i]
		p.Score = 0
		p.Misses = 0
		p.UsedJoker = false
		p.UsedBadgeHint = false
		p.CorrectStreak = 0
		p.StreakMilestones = nil
	}
	room.CurrentPlayerIndex = a.intn(len(room.Players))
	a.stampTurnClock(room)

	if err := a.store.Set(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to persist room: %w", err)
	}

	a.publish(ctx, "GameStarted", room.RoomID, map[string]interface{}{
		"league":     room.League,
		"season":     room.Season,
		"leagueName": room.LeagueName,
		"players":    len(room.Players),
	})
	log.Info().
		Str("room_id", room.RoomID).
		Int("league", room.League).
		Int("season", room.Season).
		Int("teams", len(standings)).
		Msg("game started")
	return room, nil
}

// load fetches a room, translating the store's not-found into the
// state-machine error kind.
func (a *App) load(ctx context.Context, roomID string) (*models.Room, error) {
	room, err := a.store.Get(ctx, roomID)
	if errors.Is(err, roomstore.ErrNotFound) {
		return nil, newError(KindRoomNotFound, "room not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load room %s: %w", roomID, err)
	}
	return room, nil
}

// reconcileAndSave applies lazy timeout detection and persists the room if
// it was mutated. The timed-out turn is committed before whatever operation
// triggered the load proceeds.
func (a *App) reconcileAndSave(ctx context.Context, room *models.Room) error {
	if !a.reconcileTimeout(room) {
		return nil
	}
	if err := a.store.Set(ctx, room); err != nil {
		return fmt.Errorf("failed to persist timed-out turn: %w", err)
	}
	return nil
}

func (a *App) publish(ctx context.Context, eventType, roomID string, payload interface{}) {
	if a.events == nil {
		return
	}
	if err := a.events.Publish(ctx, eventType, roomID, payload); err != nil {
		log.Error().Err(err).Str("room_id", roomID).Str("event_type", eventType).Msg("failed to publish room event")
	}
}
