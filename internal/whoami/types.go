package whoami

// Phase is the coarse stage of a who-am-i round.
type Phase string

const (
	PhaseLobby   Phase = "lobby"
	PhasePlaying Phase = "playing"
	PhaseReveal  Phase = "reveal"
)

// Action is a player's response to the current clue.
type Action string

const (
	ActionAnswer Action = "answer"
	ActionSkip   Action = "skip"
)

// Player is one seat in a who-am-i room. Action/AnswerText are reset per
// clue (skippers only) or per round.
type Player struct {
	PlayerID   string  `json:"playerId"`
	Name       string  `json:"name"`
	Action     *Action `json:"action"`
	AnswerText *string `json:"answerText"`
}

// Room is one who-am-i session. Unlike standings-draft rooms these are
// process-local only; the game is short-lived and restart loss is accepted.
type Room struct {
	RoomID    string   `json:"roomId"`
	CreatorID string   `json:"creatorId"`
	Players   []Player `json:"players"`
	Phase     Phase    `json:"phase"`
	// Clues for the current round, revealed one at a time.
	Clues            []string `json:"clues"`
	CorrectAnswer    string   `json:"correctAnswer"`
	CurrentClueIndex int      `json:"currentClueIndex"`
	CreatedAt        int64    `json:"createdAt"`
}

// Puzzle is a clue list with its answer.
type Puzzle struct {
	Clues         []string
	CorrectAnswer string
}
