package gateway

import (
	"net/http"

	"github.com/a-nahaitsev/vibe-server/internal/whoami"
)

// whoamiView hides round secrets until the reveal: the answer and the
// players' submitted texts stay server-side, and only revealed clues ship.
type whoamiView struct {
	whoami.Room
	Clues         []string `json:"clues"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
}

func projectWhoami(room *whoami.Room) *whoamiView {
	view := &whoamiView{Room: *room}

	if room.Phase == whoami.PhasePlaying && room.CurrentClueIndex+1 <= len(room.Clues) {
		view.Clues = room.Clues[:room.CurrentClueIndex+1]
	} else {
		view.Clues = room.Clues
	}

	if room.Phase == whoami.PhaseReveal {
		view.CorrectAnswer = room.CorrectAnswer
	} else {
		view.Players = make([]whoami.Player, len(room.Players))
		copy(view.Players, room.Players)
		for i := range view.Players {
			view.Players[i].AnswerText = nil
		}
	}
	return view
}

type whoamiCreateRequest struct {
	PlayerName string `json:"playerName"`
}

type whoamiCreateResponse struct {
	RoomID   string      `json:"roomId"`
	PlayerID string      `json:"playerId"`
	Room     *whoamiView `json:"room"`
}

func (g *Gateway) handleWhoamiCreate(w http.ResponseWriter, r *http.Request) {
	var req whoamiCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := g.whoami.CreateRoom(req.PlayerName)
	if err != nil {
		writeWhoamiError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, whoamiCreateResponse{
		RoomID:   created.RoomID,
		PlayerID: created.CreatorID,
		Room:     projectWhoami(created),
	})
}

type whoamiJoinRequest struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type whoamiJoinResponse struct {
	PlayerID string      `json:"playerId"`
	Room     *whoamiView `json:"room"`
}

func (g *Gateway) handleWhoamiJoin(w http.ResponseWriter, r *http.Request) {
	var req whoamiJoinRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.RoomID == "" {
		badRequest(w, "roomId is required")
		return
	}

	playerID, err := g.whoami.JoinRoom(req.RoomID, req.PlayerName)
	if err != nil {
		writeWhoamiError(w, err)
		return
	}
	joined, err := g.whoami.GetRoom(req.RoomID)
	if err != nil {
		writeWhoamiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, whoamiJoinResponse{PlayerID: playerID, Room: projectWhoami(joined)})
}

func (g *Gateway) handleWhoamiGet(w http.ResponseWriter, r *http.Request) {
	loaded, err := g.whoami.GetRoom(r.PathValue("roomID"))
	if err != nil {
		writeWhoamiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectWhoami(loaded))
}

type whoamiPlayerRequest struct {
	PlayerID string `json:"playerId"`
}

func (g *Gateway) handleWhoamiStart(w http.ResponseWriter, r *http.Request) {
	var req whoamiPlayerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PlayerID == "" {
		badRequest(w, "playerId is required")
		return
	}

	started, err := g.whoami.StartGame(r.PathValue("roomID"), req.PlayerID)
	if err != nil {
		writeWhoamiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectWhoami(started))
}

func (g *Gateway) handleWhoamiNextRound(w http.ResponseWriter, r *http.Request) {
	var req whoamiPlayerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PlayerID == "" {
		badRequest(w, "playerId is required")
		return
	}

	next, err := g.whoami.NextRound(r.PathValue("roomID"), req.PlayerID)
	if err != nil {
		writeWhoamiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectWhoami(next))
}

type whoamiActionRequest struct {
	PlayerID   string `json:"playerId"`
	Action     string `json:"action"`
	AnswerText string `json:"answerText"`
}

func (g *Gateway) handleWhoamiAction(w http.ResponseWriter, r *http.Request) {
	var req whoamiActionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PlayerID == "" {
		badRequest(w, "playerId is required")
		return
	}

	updated, err := g.whoami.SubmitAction(r.PathValue("roomID"), req.PlayerID, whoami.Action(req.Action), req.AnswerText)
	if err != nil {
		writeWhoamiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectWhoami(updated))
}
