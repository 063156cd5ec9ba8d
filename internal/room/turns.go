package room

import (
	"github.com/a-nahaitsev/vibe-server/internal/models"
)

// stampTurnClock restarts the per-turn countdown from the current wall
// clock, or clears it for untimed play.
func (a *App) stampTurnClock(room *models.Room) {
	now := a.nowMillis()
	room.TurnStartedAt = &now
	if room.TimerSeconds != nil {
		ends := now + int64(*room.TimerSeconds)*1000
		room.TurnEndsAt = &ends
	} else {
		room.TurnEndsAt = nil
	}
}

// advanceTurn clears the turn-scoped badge hint, restarts the countdown and
// moves the turn pointer to the next player still under the miss limit. When
// every player is out the game finishes instead.
func (a *App) advanceTurn(room *models.Room) {
	room.BadgeHintThisTurn = nil
	a.stampTurnClock(room)

	n := len(room.Players)
	next := (room.CurrentPlayerIndex + 1) % n
	start := next
	for {
		if !room.PlayerOut(next) {
			break
		}
		next = (next + 1) % n
		if next == start {
			room.Phase = models.PhaseFinished
			return
		}
	}
	room.CurrentPlayerIndex = next
}

// reconcileTimeout charges the current player a miss for an expired turn and
// advances exactly as a wrong guess would. Returns true when the room was
// mutated and needs persisting. Timeouts are detected here, on load, rather
// than by a scheduler: staleness is bounded by the poll interval, and no
// background task lifecycle is needed.
func (a *App) reconcileTimeout(room *models.Room) bool {
	if room.Phase != models.PhasePlaying {
		return false
	}
	if room.TimerSeconds == nil || room.TurnEndsAt == nil {
		return false
	}
	if a.nowMillis() < *room.TurnEndsAt {
		return false
	}

	current := room.CurrentPlayer()
	if current == nil {
		return false
	}
	current.Misses++

	record := models.PickRecord{
		PlayerID: current.PlayerID,
		TeamName: "(time's up)",
		Correct:  false,
		Points:   0,
		Timeout:  true,
	}
	room.LastPick = &record
	room.PickHistory = append(room.PickHistory, record)

	if len(room.RevealedRanks) >= len(room.Standings) {
		room.Phase = models.PhaseFinished
		return true
	}
	a.advanceTurn(room)
	return true
}
