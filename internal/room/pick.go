package room

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/a-nahaitsev/vibe-server/internal/models"
)

// PickRequest is one turn's guess: a team (by API id, falling back to
// normalized name) placed at a table position, with optional one-shot
// modifiers.
type PickRequest struct {
	PlayerID     string
	TeamID       int
	TeamName     string
	GuessedPlace int
	UseJoker     bool
	UseBadgeHint bool
}

// PickResult is the outcome returned to the acting player; everyone else
// discovers the change on their next poll.
type PickResult struct {
	Correct     bool `json:"correct"`
	Points      int  `json:"points"`
	StreakBonus int  `json:"streakBonus,omitempty"`
	Finished    bool `json:"finished"`
}

// Pick applies one guess to the room. Preconditions are checked in a fixed
// order, each with its own error kind; an expired turn is reconciled before
// any of them run, so a slow player may find the turn already gone.
func (a *App) Pick(ctx context.Context, roomID string, req PickRequest) (*PickResult, error) {
	room, err := a.load(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := a.reconcileAndSave(ctx, room); err != nil {
		return nil, err
	}

	if room.Phase != models.PhasePlaying {
		return nil, newError(KindInvalidPhase, "game not in play")
	}
	current := room.CurrentPlayer()
	if current == nil || current.PlayerID != req.PlayerID {
		return nil, newError(KindNotYourTurn, "not your turn")
	}
	// Eliminated players are skipped by turn advancement; this check is
	// defensive against stale records.
	if room.MissLimit != nil && current.Misses >= *room.MissLimit {
		return nil, newError(KindPlayerEliminated, "you're out (miss limit reached)")
	}
	if req.UseJoker && req.UseBadgeHint {
		return nil, newError(KindInvalidInput, "cannot use joker and badge hint on the same turn")
	}
	if req.UseJoker && current.UsedJoker {
		return nil, newError(KindAlreadyUsed, "joker already used this game")
	}
	if req.UseBadgeHint && current.UsedBadgeHint {
		return nil, newError(KindAlreadyUsed, "badge hint already used this game")
	}

	normalized := normalizeTeamName(req.TeamName)
	if req.TeamID <= 0 && normalized == "" {
		return nil, newError(KindInvalidInput, "team is required")
	}

	totalTeams := len(room.Standings)
	if req.GuessedPlace < 1 || req.GuessedPlace > totalTeams {
		return nil, newError(KindInvalidGuess, fmt.Sprintf("pick a place from 1 to %d", totalTeams))
	}
	if room.RankRevealed(req.GuessedPlace) {
		return nil, newError(KindInvalidGuess, "that place was already guessed")
	}

	// A one-shot modifier is consumed by the attempt, not refunded on a
	// wrong guess.
	if req.UseJoker {
		current.UsedJoker = true
	}
	if req.UseBadgeHint {
		current.UsedBadgeHint = true
	}

	row := a.resolveTeam(room, req.TeamID, normalized)
	if row == nil || room.RankRevealed(row.Rank) {
		return a.applyWrongPick(ctx, room, current, req)
	}
	return a.applyCorrectPick(ctx, room, current, req, row)
}

// resolveTeam looks the guessed team up in the snapshot, by API id first and
// then by normalized name.
func (a *App) resolveTeam(room *models.Room, teamID int, normalized string) *models.StandingRow {
	for i := range room.Standings {
		row := &room.Standings[i]
		if teamID > 0 && row.Team.ID == teamID {
			return row
		}
		if normalized != "" && normalizeTeamName(row.Team.Name) == normalized {
			return row
		}
	}
	return nil
}

func (a *App) applyWrongPick(ctx context.Context, room *models.Room, current *models.Player, req PickRequest) (*PickResult, error) {
	current.CorrectStreak = 0
	current.Misses++
	points := 0
	if req.UseJoker {
		points = -jokerWrongPenalty
	}
	current.Score += points

	guessed := req.GuessedPlace
	record := models.PickRecord{
		GuessedRank:   &guessed,
		PlayerID:      current.PlayerID,
		TeamName:      strings.TrimSpace(req.TeamName),
		Correct:       false,
		Points:        points,
		JokerUsed:     req.UseJoker,
		BadgeHintUsed: req.UseBadgeHint,
	}
	room.LastPick = &record
	room.PickHistory = append(room.PickHistory, record)

	a.advanceTurn(room)
	finished := room.Phase == models.PhaseFinished

	if err := a.store.Set(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to persist room: %w", err)
	}
	a.publishPick(ctx, room, &record, finished)
	return &PickResult{Correct: false, Points: points, Finished: finished}, nil
}

func (a *App) applyCorrectPick(ctx context.Context, room *models.Room, current *models.Player, req PickRequest, row *models.StandingRow) (*PickResult, error) {
	totalTeams := len(room.Standings)
	points := marginPoints(totalTeams, row.Rank, req.GuessedPlace)
	if req.UseJoker {
		// Joker doubles the positional score only, never streak bonuses.
		points *= 2
	}

	current.CorrectStreak++
	streakBonus := 0
	for _, milestone := range streakBonuses {
		if current.CorrectStreak >= milestone.Threshold && !containsInt(current.StreakMilestones, milestone.Threshold) {
			streakBonus += milestone.Bonus
			current.StreakMilestones = append(current.StreakMilestones, milestone.Threshold)
		}
	}
	points += streakBonus

	room.RevealedRanks = append(room.RevealedRanks, row.Rank)
	current.Score += points

	rank := row.Rank
	guessed := req.GuessedPlace
	record := models.PickRecord{
		Rank:          &rank,
		GuessedRank:   &guessed,
		PlayerID:      current.PlayerID,
		TeamName:      row.Team.Name,
		Correct:       true,
		Points:        points,
		JokerUsed:     req.UseJoker,
		BadgeHintUsed: req.UseBadgeHint,
		StreakBonus:   streakBonus,
	}
	room.LastPick = &record
	room.PickHistory = append(room.PickHistory, record)

	finished := len(room.RevealedRanks) >= totalTeams
	if finished {
		room.Phase = models.PhaseFinished
	} else {
		a.advanceTurn(room)
		finished = room.Phase == models.PhaseFinished
	}

	if err := a.store.Set(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to persist room: %w", err)
	}
	a.publishPick(ctx, room, &record, finished)
	return &PickResult{Correct: true, Points: points, StreakBonus: streakBonus, Finished: finished}, nil
}

func (a *App) publishPick(ctx context.Context, room *models.Room, record *models.PickRecord, finished bool) {
	a.publish(ctx, "PickMade", room.RoomID, record)
	if finished {
		a.publish(ctx, "GameFinished", room.RoomID, map[string]interface{}{
			"revealedRanks": len(room.RevealedRanks),
			"totalTeams":    len(room.Standings),
		})
	}
	log.Debug().
		Str("room_id", room.RoomID).
		Str("player_id", record.PlayerID).
		Bool("correct", record.Correct).
		Int("points", record.Points).
		Msg("pick applied")
}

// BadgeHint chooses (or returns the already-chosen) crest for the current
// turn. Selection alone never consumes the player's one-shot badge hint;
// only a pick submitted with the modifier does.
func (a *App) BadgeHint(ctx context.Context, roomID, playerID string) (string, error) {
	room, err := a.load(ctx, roomID)
	if err != nil {
		return "", err
	}
	if err := a.reconcileAndSave(ctx, room); err != nil {
		return "", err
	}

	if room.Phase != models.PhasePlaying {
		return "", newError(KindInvalidPhase, "game not in play")
	}
	current := room.CurrentPlayer()
	if current == nil || current.PlayerID != playerID {
		return "", newError(KindNotYourTurn, "not your turn")
	}
	if current.UsedBadgeHint {
		return "", newError(KindAlreadyUsed, "badge hint already used this game")
	}

	var unrevealed []models.StandingRow
	for _, row := range room.Standings {
		if !room.RankRevealed(row.Rank) {
			unrevealed = append(unrevealed, row)
		}
	}
	if len(unrevealed) == 0 {
		return "", newError(KindInvalidGuess, "no unrevealed teams")
	}

	// Idempotent within a turn: asking twice returns the same crest.
	if room.BadgeHintThisTurn != nil && room.BadgeHintThisTurn.PlayerID == playerID {
		return room.BadgeHintThisTurn.LogoURL, nil
	}

	row := unrevealed[a.intn(len(unrevealed))]
	if row.Team.Logo == "" {
		return "", newError(KindUpstream, "no crest available for the chosen team")
	}
	room.BadgeHintThisTurn = &models.BadgeHint{PlayerID: playerID, LogoURL: row.Team.Logo}

	if err := a.store.Set(ctx, room); err != nil {
		return "", fmt.Errorf("failed to persist room: %w", err)
	}
	return row.Team.Logo, nil
}

func containsInt(list []int, v int) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
