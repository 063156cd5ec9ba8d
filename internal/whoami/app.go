package whoami

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// App is the who-am-i party game engine. Rooms live in process memory only:
// a round lasts minutes, so durability across restarts is not worth a store
// round-trip. All mutations happen under one mutex.
type App struct {
	clock clockwork.Clock

	mu    sync.Mutex
	rooms map[string]*Room
	rand  *rand.Rand
}

func NewApp(clock clockwork.Clock) *App {
	return &App{
		clock: clock,
		rooms: make(map[string]*Room),
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand replaces the random source, used by tests for determinism.
func (a *App) WithRand(r *rand.Rand) *App {
	a.rand = r
	return a
}

func newID(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// snapshot deep-copies a room so callers never see later mutations.
func snapshot(room *Room) *Room {
	out := *room
	out.Players = make([]Player, len(room.Players))
	copy(out.Players, room.Players)
	out.Clues = append([]string(nil), room.Clues...)
	return &out
}

// CreateRoom allocates a lobby-phase room with the requester as creator.
func (a *App) CreateRoom(creatorName string) (*Room, error) {
	name := strings.TrimSpace(creatorName)
	if name == "" {
		return nil, newError(KindInvalidInput, "player name is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	room := &Room{
		RoomID:    newID("whoami"),
		CreatorID: newID("player"),
		Phase:     PhaseLobby,
		CreatedAt: a.clock.Now().UnixMilli(),
	}
	room.Players = []Player{{PlayerID: room.CreatorID, Name: name}}
	a.rooms[room.RoomID] = room

	log.Info().Str("room_id", room.RoomID).Str("creator", name).Msg("whoami room created")
	return snapshot(room), nil
}

// JoinRoom adds a player to a lobby-phase room and returns the new player id.
func (a *App) JoinRoom(roomID, playerName string) (string, error) {
	name := strings.TrimSpace(playerName)
	if name == "" {
		return "", newError(KindInvalidInput, "player name is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	room, ok := a.rooms[roomID]
	if !ok {
		return "", newError(KindRoomNotFound, "room not found")
	}
	if room.Phase != PhaseLobby {
		return "", newError(KindInvalidPhase, "game already started")
	}

	playerID := newID("player")
	room.Players = append(room.Players, Player{PlayerID: playerID, Name: name})
	return playerID, nil
}

// GetRoom returns a copy of the room state.
func (a *App) GetRoom(roomID string) (*Room, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	room, ok := a.rooms[roomID]
	if !ok {
		return nil, newError(KindRoomNotFound, "room not found")
	}
	return snapshot(room), nil
}

// StartGame transitions lobby → playing with a random puzzle. Creator only.
func (a *App) StartGame(roomID, playerID string) (*Room, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	room, ok := a.rooms[roomID]
	if !ok {
		return nil, newError(KindRoomNotFound, "room not found")
	}
	if room.Phase != PhaseLobby {
		return nil, newError(KindInvalidPhase, "game already started")
	}
	if room.CreatorID != playerID {
		return nil, newError(KindForbidden, "only the host can start the game")
	}

	a.dealPuzzle(room)
	log.Info().Str("room_id", roomID).Int("players", len(room.Players)).Msg("whoami game started")
	return snapshot(room), nil
}

// NextRound starts a fresh round from the reveal phase. Creator only.
func (a *App) NextRound(roomID, playerID string) (*Room, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	room, ok := a.rooms[roomID]
	if !ok {
		return nil, newError(KindRoomNotFound, "room not found")
	}
	if room.Phase != PhaseReveal {
		return nil, newError(KindInvalidPhase, "round still in progress")
	}
	if room.CreatorID != playerID {
		return nil, newError(KindForbidden, "only the host can start the next round")
	}

	a.dealPuzzle(room)
	return snapshot(room), nil
}

// dealPuzzle picks a random puzzle and resets every player for the round.
func (a *App) dealPuzzle(room *Room) {
	puzzle := puzzles[a.rand.Intn(len(puzzles))]
	room.Phase = PhasePlaying
	room.Clues = append([]string(nil), puzzle.Clues...)
	room.CorrectAnswer = puzzle.CorrectAnswer
	room.CurrentClueIndex = 0
	for i := range room.Players {
		room.Players[i].Action = nil
		room.Players[i].AnswerText = nil
	}
}

// SubmitAction records a player's answer or skip for the current clue. An
// answer locks the player in for the rest of the round; a skip frees them
// again when the next clue is revealed. Once every player has acted the room
// either advances a clue (someone skipped, clues remain) or moves to reveal.
func (a *App) SubmitAction(roomID, playerID string, action Action, answerText string) (*Room, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	room, ok := a.rooms[roomID]
	if !ok {
		return nil, newError(KindRoomNotFound, "room not found")
	}
	if room.Phase != PhasePlaying {
		return nil, newError(KindInvalidPhase, "no round in progress")
	}

	var player *Player
	for i := range room.Players {
		if room.Players[i].PlayerID == playerID {
			player = &room.Players[i]
			break
		}
	}
	if player == nil {
		return nil, newError(KindForbidden, "you are not in this room")
	}
	if player.Action != nil {
		return nil, newError(KindAlreadyAnswered, "you already acted this clue")
	}

	switch action {
	case ActionAnswer:
		text := strings.TrimSpace(answerText)
		if text == "" {
			return nil, newError(KindInvalidInput, "answer text is required")
		}
		player.Action = ptrAction(ActionAnswer)
		player.AnswerText = &text
	case ActionSkip:
		player.Action = ptrAction(ActionSkip)
	default:
		return nil, newError(KindInvalidInput, "action must be answer or skip")
	}

	a.settleClue(room)
	return snapshot(room), nil
}

// settleClue checks whether every player has acted and moves the round on:
// all answered → reveal; otherwise advance the clue (skippers get to act
// again), or reveal when the clue list is exhausted.
func (a *App) settleClue(room *Room) {
	allActed := true
	allAnswered := true
	for i := range room.Players {
		if room.Players[i].Action == nil {
			allActed = false
			allAnswered = false
			break
		}
		if *room.Players[i].Action != ActionAnswer {
			allAnswered = false
		}
	}
	if !allActed {
		return
	}

	if allAnswered || room.CurrentClueIndex+1 >= len(room.Clues) {
		room.Phase = PhaseReveal
		return
	}

	room.CurrentClueIndex++
	for i := range room.Players {
		p := &room.Players[i]
		if p.Action != nil && *p.Action == ActionSkip {
			p.Action = nil
			p.AnswerText = nil
		}
	}
}

func ptrAction(a Action) *Action {
	return &a
}
