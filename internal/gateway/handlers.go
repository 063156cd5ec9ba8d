package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/a-nahaitsev/vibe-server/clients/footballapi"
	"github.com/a-nahaitsev/vibe-server/internal/badge"
	"github.com/a-nahaitsev/vibe-server/internal/models"
	"github.com/a-nahaitsev/vibe-server/internal/room"
	"github.com/a-nahaitsev/vibe-server/internal/teamnames"
)

type createRoomRequest struct {
	PlayerName string `json:"playerName"`
}

type createRoomResponse struct {
	RoomID   string    `json:"roomId"`
	PlayerID string    `json:"playerId"`
	Room     *RoomView `json:"room"`
}

func (g *Gateway) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := g.rooms.CreateRoom(r.Context(), req.PlayerName)
	if err != nil {
		writeRoomError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createRoomResponse{
		RoomID:   created.RoomID,
		PlayerID: created.CreatorID,
		Room:     g.roomView(created),
	})
}

type joinRoomRequest struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type joinRoomResponse struct {
	PlayerID string    `json:"playerId"`
	Room     *RoomView `json:"room"`
}

func (g *Gateway) handleJoinRoom(w http.ResponseWriter, r *http.Request) {
	var req joinRoomRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.RoomID == "" {
		badRequest(w, "roomId is required")
		return
	}

	playerID, err := g.rooms.JoinRoom(r.Context(), req.RoomID, req.PlayerName)
	if err != nil {
		writeRoomError(w, err)
		return
	}
	joined, err := g.rooms.GetRoom(r.Context(), req.RoomID)
	if err != nil {
		writeRoomError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, joinRoomResponse{PlayerID: playerID, Room: g.roomView(joined)})
}

func (g *Gateway) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	loaded, err := g.rooms.GetRoom(r.Context(), r.PathValue("roomID"))
	if err != nil {
		writeRoomError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g.roomView(loaded))
}

type startGameRequest struct {
	PlayerID     string               `json:"playerId"`
	League       int                  `json:"league"`
	Season       int                  `json:"season"`
	LeagueName   string               `json:"leagueName"`
	Standings    []models.StandingRow `json:"standings"`
	TimerSeconds *int                 `json:"timerSeconds"`
	MissLimit    *int                 `json:"missLimit"`
}

func (g *Gateway) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var req startGameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PlayerID == "" {
		badRequest(w, "playerId is required")
		return
	}
	if _, ok := teamnames.LeagueToCountry[req.League]; !ok {
		badRequest(w, fmt.Sprintf("unknown league %d", req.League))
		return
	}
	if req.Season < footballapi.SeasonMin || req.Season > footballapi.SeasonMax {
		badRequest(w, fmt.Sprintf("season must be between %d and %d", footballapi.SeasonMin, footballapi.SeasonMax))
		return
	}
	if req.MissLimit != nil && *req.MissLimit != 3 && *req.MissLimit != 5 {
		badRequest(w, "missLimit must be 3 or 5")
		return
	}
	if req.TimerSeconds != nil && *req.TimerSeconds <= 0 {
		badRequest(w, "timerSeconds must be positive")
		return
	}

	started, err := g.rooms.StartGame(r.Context(), r.PathValue("roomID"), room.StartRequest{
		PlayerID:     req.PlayerID,
		League:       req.League,
		Season:       req.Season,
		LeagueName:   req.LeagueName,
		Standings:    req.Standings,
		TimerSeconds: req.TimerSeconds,
		MissLimit:    req.MissLimit,
	})
	if err != nil {
		writeRoomError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g.roomView(started))
}

type pickRequest struct {
	PlayerID     string `json:"playerId"`
	TeamID       int    `json:"teamId"`
	TeamName     string `json:"teamName"`
	GuessedPlace int    `json:"guessedPlace"`
	UseJoker     bool   `json:"useJoker"`
	UseBadgeHint bool   `json:"useBadgeHint"`
}

type pickResponse struct {
	*room.PickResult
	Room *RoomView `json:"room"`
}

func (g *Gateway) handlePick(w http.ResponseWriter, r *http.Request) {
	var req pickRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PlayerID == "" {
		badRequest(w, "playerId is required")
		return
	}

	roomID := r.PathValue("roomID")
	result, err := g.rooms.Pick(r.Context(), roomID, room.PickRequest{
		PlayerID:     req.PlayerID,
		TeamID:       req.TeamID,
		TeamName:     req.TeamName,
		GuessedPlace: req.GuessedPlace,
		UseJoker:     req.UseJoker,
		UseBadgeHint: req.UseBadgeHint,
	})
	if err != nil {
		writeRoomError(w, err)
		return
	}
	after, err := g.rooms.GetRoom(r.Context(), roomID)
	if err != nil {
		writeRoomError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pickResponse{PickResult: result, Room: g.roomView(after)})
}

// handleBadgeHint streams the blurred crest for the current turn. The real
// crest URL never reaches the client; only the obfuscated PNG does.
func (g *Gateway) handleBadgeHint(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		badRequest(w, "playerId is required")
		return
	}

	logoURL, err := g.rooms.BadgeHint(r.Context(), r.PathValue("roomID"), playerID)
	if err != nil {
		writeRoomError(w, err)
		return
	}

	png, err := g.badges.BlurredCrest(r.Context(), logoURL)
	if err != nil {
		if errors.Is(err, badge.ErrUpstream) {
			writeJSON(w, http.StatusBadGateway, errorBody{Error: "failed to fetch crest", Kind: string(room.KindUpstream)})
			return
		}
		log.Error().Err(err).Msg("failed to render badge hint")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(png); err != nil {
		log.Error().Err(err).Msg("failed to write badge hint response")
	}
}

type teamNamesResponse struct {
	Country string   `json:"country"`
	Names   []string `json:"names"`
}

func (g *Gateway) handleTeamNames(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	if country == "" {
		badRequest(w, "country is required")
		return
	}
	if !teamnames.KnownCountry(country) {
		badRequest(w, fmt.Sprintf("unknown country %q", country))
		return
	}

	names, err := g.teams.Names(r.Context(), country)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "failed to load team names", Kind: string(room.KindUpstream)})
		return
	}
	writeJSON(w, http.StatusOK, teamNamesResponse{Country: country, Names: names})
}
