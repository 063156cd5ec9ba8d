package gateway

import (
	"github.com/a-nahaitsev/vibe-server/internal/models"
)

// RoomView is the client-facing projection of a room: the stored record minus
// the turn-scoped badge hint, plus the server clock so polling clients can
// correct their countdown for skew.
type RoomView struct {
	models.Room
	// Shadows the stored field; always nil so it is omitted from the JSON.
	BadgeHintThisTurn *models.BadgeHint `json:"badgeHintThisTurn,omitempty"`
	ServerNow         int64             `json:"serverNow"`
	RemainingSeconds  *int              `json:"remainingSeconds,omitempty"`
}

func (g *Gateway) roomView(room *models.Room) *RoomView {
	now := g.clock.Now().UnixMilli()
	view := &RoomView{Room: *room, ServerNow: now}

	if room.Phase == models.PhasePlaying && room.TurnEndsAt != nil {
		remaining := int((*room.TurnEndsAt - now + 999) / 1000)
		if remaining < 0 {
			remaining = 0
		}
		view.RemainingSeconds = &remaining
	}
	return view
}
