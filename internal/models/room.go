package models

// Phase is the coarse game stage of a standings-draft room.
type Phase string

const (
	PhaseLobby    Phase = "lobby"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// Goals holds goals scored for/against in one split of the season.
type Goals struct {
	For     int `json:"for"`
	Against int `json:"against"`
}

// SplitStats is one win/draw/loss split (overall, home or away).
type SplitStats struct {
	Played int   `json:"played"`
	Win    int   `json:"win"`
	Draw   int   `json:"draw"`
	Lose   int   `json:"lose"`
	Goals  Goals `json:"goals"`
}

// TeamRef identifies a team inside a standings row.
type TeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// StandingRow is one team in the league table, rank 1..N.
type StandingRow struct {
	Rank      int        `json:"rank"`
	Team      TeamRef    `json:"team"`
	Points    int        `json:"points"`
	GoalsDiff int        `json:"goalsDiff"`
	Group     string     `json:"group"`
	Form      string     `json:"form"`
	All       SplitStats `json:"all"`
	Home      SplitStats `json:"home"`
	Away      SplitStats `json:"away"`
}

// Player is one seat in a room. Per-game fields are reset on game start.
type Player struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	// Misses counts wrong answers this game (wrong team, already-revealed
	// rank, or turn timeout).
	Misses        int  `json:"misses"`
	UsedJoker     bool `json:"usedJoker"`
	UsedBadgeHint bool `json:"usedBadgeHint"`
	CorrectStreak int  `json:"correctStreak"`
	// StreakMilestones holds streak thresholds already rewarded this game.
	StreakMilestones []int `json:"streakMilestones"`
}

// PickRecord is the outcome of one turn (a guess or a timeout).
type PickRecord struct {
	Rank          *int   `json:"rank,omitempty"`
	GuessedRank   *int   `json:"guessedRank,omitempty"`
	PlayerID      string `json:"playerId"`
	TeamName      string `json:"teamName"`
	Correct       bool   `json:"correct"`
	Points        int    `json:"points"`
	Timeout       bool   `json:"timeout,omitempty"`
	JokerUsed     bool   `json:"jokerUsed,omitempty"`
	BadgeHintUsed bool   `json:"badgeHintUsed,omitempty"`
	StreakBonus   int    `json:"streakBonus,omitempty"`
}

// BadgeHint is the crest chosen for the current turn. It lives only until
// the turn advances and is never exposed to clients.
type BadgeHint struct {
	PlayerID string `json:"playerId"`
	LogoURL  string `json:"logoUrl"`
}

// Room is the root aggregate of one standings-draft game session. The store
// is the sole source of truth; clients only ever see projections of it.
//
// Timestamps are unix milliseconds, matching what polling clients consume.
type Room struct {
	RoomID    string   `json:"roomId"`
	CreatorID string   `json:"creatorId"`
	Players   []Player `json:"players"`
	Phase     Phase    `json:"phase"`
	// MissLimit caps wrong answers before a player is skipped in the turn
	// rotation; nil means unlimited.
	MissLimit  *int          `json:"missLimit"`
	League     int           `json:"league"`
	Season     int           `json:"season"`
	LeagueName string        `json:"leagueName"`
	Standings  []StandingRow `json:"standings"`
	// RevealedRanks grows monotonically as ranks are guessed correctly.
	RevealedRanks      []int        `json:"revealedRanks"`
	CurrentPlayerIndex int          `json:"currentPlayerIndex"`
	LastPick           *PickRecord  `json:"lastPick"`
	PickHistory        []PickRecord `json:"pickHistory,omitempty"`
	// TimerSeconds is the per-turn countdown; nil means untimed play.
	TimerSeconds  *int  `json:"timerSeconds"`
	TurnStartedAt *int64 `json:"turnStartedAt"`
	TurnEndsAt    *int64 `json:"turnEndsAt"`
	// BadgeHintThisTurn is persisted with the room but stripped from every
	// client-facing view.
	BadgeHintThisTurn *BadgeHint `json:"badgeHintThisTurn,omitempty"`
	CreatedAt         int64      `json:"createdAt"`
}

// CurrentPlayer returns the player whose turn it is, or nil when the index
// is out of range.
func (r *Room) CurrentPlayer() *Player {
	if r.CurrentPlayerIndex < 0 || r.CurrentPlayerIndex >= len(r.Players) {
		return nil
	}
	return &r.Players[r.CurrentPlayerIndex]
}

// RankRevealed reports whether the given rank has already been guessed.
func (r *Room) RankRevealed(rank int) bool {
	for _, revealed := range r.RevealedRanks {
		if revealed == rank {
			return true
		}
	}
	return false
}

// PlayerOut reports whether the player at index has reached the miss limit.
func (r *Room) PlayerOut(index int) bool {
	if r.MissLimit == nil {
		return false
	}
	if index < 0 || index >= len(r.Players) {
		return false
	}
	return r.Players[index].Misses >= *r.MissLimit
}
