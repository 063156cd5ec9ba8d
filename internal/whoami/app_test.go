package whoami

import (
	"math/rand"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func newTestApp() *App {
	return NewApp(clockwork.NewFakeClock()).WithRand(rand.New(rand.NewSource(1)))
}

// startedRoom creates a room with the given extra players and starts it.
func startedRoom(t *testing.T, app *App, extra ...string) (*Room, []string) {
	t.Helper()

	created, err := app.CreateRoom("Alice")
	require.NoError(t, err)

	ids := []string{created.CreatorID}
	for _, name := range extra {
		id, err := app.JoinRoom(created.RoomID, name)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	started, err := app.StartGame(created.RoomID, created.CreatorID)
	require.NoError(t, err)
	return started, ids
}

func TestCreateAndJoin(t *testing.T) {
	app := newTestApp()

	created, err := app.CreateRoom("Alice")
	require.NoError(t, err)
	require.Equal(t, PhaseLobby, created.Phase)
	require.Len(t, created.Players, 1)

	bobID, err := app.JoinRoom(created.RoomID, "Bob")
	require.NoError(t, err)

	loaded, err := app.GetRoom(created.RoomID)
	require.NoError(t, err)
	require.Len(t, loaded.Players, 2)
	require.Equal(t, bobID, loaded.Players[1].PlayerID)

	_, err = app.JoinRoom("whoami-missing", "Carol")
	require.Equal(t, KindRoomNotFound, KindOf(err))
}

func TestStartGameDealsPuzzle(t *testing.T) {
	app := newTestApp()
	room, _ := startedRoom(t, app, "Bob")

	require.Equal(t, PhasePlaying, room.Phase)
	require.NotEmpty(t, room.Clues)
	require.NotEmpty(t, room.CorrectAnswer)
	require.Zero(t, room.CurrentClueIndex)

	_, err := app.JoinRoom(room.RoomID, "Carol")
	require.Equal(t, KindInvalidPhase, KindOf(err))
}

func TestStartGameCreatorOnly(t *testing.T) {
	app := newTestApp()

	created, err := app.CreateRoom("Alice")
	require.NoError(t, err)
	bobID, err := app.JoinRoom(created.RoomID, "Bob")
	require.NoError(t, err)

	_, err = app.StartGame(created.RoomID, bobID)
	require.Equal(t, KindForbidden, KindOf(err))
}

func TestSkipAdvancesClueAndFreesSkippers(t *testing.T) {
	app := newTestApp()
	room, ids := startedRoom(t, app, "Bob")

	// Alice locks in an answer; Bob skips.
	_, err := app.SubmitAction(room.RoomID, ids[0], ActionAnswer, "Zidane")
	require.NoError(t, err)
	updated, err := app.SubmitAction(room.RoomID, ids[1], ActionSkip, "")
	require.NoError(t, err)

	require.Equal(t, PhasePlaying, updated.Phase)
	require.Equal(t, 1, updated.CurrentClueIndex)
	// Alice stays locked in; Bob may act on the new clue.
	require.NotNil(t, updated.Players[0].Action)
	require.Equal(t, "Zidane", *updated.Players[0].AnswerText)
	require.Nil(t, updated.Players[1].Action)
}

func TestAllAnsweredMovesToReveal(t *testing.T) {
	app := newTestApp()
	room, ids := startedRoom(t, app, "Bob")

	_, err := app.SubmitAction(room.RoomID, ids[0], ActionAnswer, "Zidane")
	require.NoError(t, err)
	updated, err := app.SubmitAction(room.RoomID, ids[1], ActionAnswer, "Ronaldinho")
	require.NoError(t, err)

	require.Equal(t, PhaseReveal, updated.Phase)
}

func TestExhaustedCluesForceReveal(t *testing.T) {
	app := newTestApp()
	room, ids := startedRoom(t, app)

	// Sole player skips through every clue; the round reveals itself.
	var updated *Room
	for i := 0; i < len(room.Clues); i++ {
		var err error
		updated, err = app.SubmitAction(room.RoomID, ids[0], ActionSkip, "")
		require.NoError(t, err)
	}
	require.Equal(t, PhaseReveal, updated.Phase)
}

func TestSubmitActionErrors(t *testing.T) {
	app := newTestApp()
	room, ids := startedRoom(t, app, "Bob")

	cases := []struct {
		name     string
		playerID string
		action   Action
		text     string
		want     Kind
	}{
		{name: "stranger", playerID: "player-x", action: ActionSkip, want: KindForbidden},
		{name: "answer without text", playerID: ids[0], action: ActionAnswer, want: KindInvalidInput},
		{name: "unknown action", playerID: ids[0], action: Action("shout"), want: KindInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := app.SubmitAction(room.RoomID, tc.playerID, tc.action, tc.text)
			require.Equal(t, tc.want, KindOf(err))
		})
	}

	_, err := app.SubmitAction(room.RoomID, ids[0], ActionAnswer, "Zidane")
	require.NoError(t, err)
	_, err = app.SubmitAction(room.RoomID, ids[0], ActionAnswer, "Zidane again")
	require.Equal(t, KindAlreadyAnswered, KindOf(err))
}

func TestNextRoundResetsPlayers(t *testing.T) {
	app := newTestApp()
	room, ids := startedRoom(t, app, "Bob")

	_, err := app.SubmitAction(room.RoomID, ids[0], ActionAnswer, "Zidane")
	require.NoError(t, err)
	revealed, err := app.SubmitAction(room.RoomID, ids[1], ActionAnswer, "Ronaldinho")
	require.NoError(t, err)
	require.Equal(t, PhaseReveal, revealed.Phase)

	// Only the host can move on, and only from the reveal.
	_, err = app.NextRound(room.RoomID, ids[1])
	require.Equal(t, KindForbidden, KindOf(err))

	next, err := app.NextRound(room.RoomID, ids[0])
	require.NoError(t, err)
	require.Equal(t, PhasePlaying, next.Phase)
	require.Zero(t, next.CurrentClueIndex)
	for _, p := range next.Players {
		require.Nil(t, p.Action)
		require.Nil(t, p.AnswerText)
	}

	_, err = app.NextRound(room.RoomID, ids[0])
	require.Equal(t, KindInvalidPhase, KindOf(err))
}

func TestSnapshotsAreIsolated(t *testing.T) {
	app := newTestApp()
	room, _ := startedRoom(t, app, "Bob")

	room.Players[0].Name = "Mallory"
	room.Clues[0] = "tampered"

	loaded, err := app.GetRoom(room.RoomID)
	require.NoError(t, err)
	require.Equal(t, "Alice", loaded.Players[0].Name)
	require.NotEqual(t, "tampered", loaded.Clues[0])
}
