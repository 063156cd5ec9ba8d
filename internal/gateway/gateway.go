package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/a-nahaitsev/vibe-server/internal/badge"
	"github.com/a-nahaitsev/vibe-server/internal/room"
	"github.com/a-nahaitsev/vibe-server/internal/teamnames"
	"github.com/a-nahaitsev/vibe-server/internal/whoami"
)

// Gateway is the HTTP surface: thin handlers that validate input, call the
// game engines and shape view-safe JSON responses. No game rules live here.
type Gateway struct {
	rooms  *room.App
	whoami *whoami.App
	badges *badge.Proxy
	teams  *teamnames.Directory
	clock  clockwork.Clock
}

func New(rooms *room.App, whoamiApp *whoami.App, badges *badge.Proxy, teams *teamnames.Directory, clock clockwork.Clock) *Gateway {
	return &Gateway{
		rooms:  rooms,
		whoami: whoamiApp,
		badges: badges,
		teams:  teams,
		clock:  clock,
	}
}

// Register wires every route onto the mux using method+path patterns.
func (g *Gateway) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/standings-draft/rooms", g.handleCreateRoom)
	mux.HandleFunc("POST /api/standings-draft/join", g.handleJoinRoom)
	mux.HandleFunc("GET /api/standings-draft/rooms/{roomID}", g.handleGetRoom)
	mux.HandleFunc("POST /api/standings-draft/rooms/{roomID}/start", g.handleStartGame)
	mux.HandleFunc("POST /api/standings-draft/rooms/{roomID}/pick", g.handlePick)
	mux.HandleFunc("GET /api/standings-draft/rooms/{roomID}/badge-hint", g.handleBadgeHint)
	mux.HandleFunc("GET /api/standings-draft/teams", g.handleTeamNames)

	mux.HandleFunc("POST /api/whoami/rooms", g.handleWhoamiCreate)
	mux.HandleFunc("POST /api/whoami/join", g.handleWhoamiJoin)
	mux.HandleFunc("GET /api/whoami/rooms/{roomID}", g.handleWhoamiGet)
	mux.HandleFunc("POST /api/whoami/rooms/{roomID}/start", g.handleWhoamiStart)
	mux.HandleFunc("POST /api/whoami/rooms/{roomID}/next-round", g.handleWhoamiNextRound)
	mux.HandleFunc("POST /api/whoami/rooms/{roomID}/action", g.handleWhoamiAction)

	mux.HandleFunc("GET /health", handleHealth)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Error().Err(err).Msg("failed to write health check response")
	}
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: message})
}

// writeRoomError maps standings-draft error kinds onto HTTP statuses.
// Kind-less errors are internal (store failures) and hide their detail.
func writeRoomError(w http.ResponseWriter, err error) {
	kind := room.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case room.KindRoomNotFound:
		status = http.StatusNotFound
	case room.KindForbidden:
		status = http.StatusForbidden
	case room.KindInvalidPhase, room.KindNotYourTurn, room.KindAlreadyUsed, room.KindPlayerEliminated:
		status = http.StatusConflict
	case room.KindInvalidInput, room.KindInvalidGuess:
		status = http.StatusBadRequest
	case room.KindUpstream:
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("internal error")
		writeJSON(w, status, errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorBody{Error: err.Error(), Kind: string(kind)})
}

func writeWhoamiError(w http.ResponseWriter, err error) {
	kind := whoami.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case whoami.KindRoomNotFound:
		status = http.StatusNotFound
	case whoami.KindForbidden:
		status = http.StatusForbidden
	case whoami.KindInvalidPhase, whoami.KindAlreadyAnswered:
		status = http.StatusConflict
	case whoami.KindInvalidInput:
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("internal error")
		writeJSON(w, status, errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorBody{Error: err.Error(), Kind: string(kind)})
}

func decodeBody(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		badRequest(w, "invalid JSON body")
		return false
	}
	return true
}
