package room

import "errors"

// Kind classifies a state-machine failure. Every kind is client-correctable;
// the gateway maps kinds to HTTP status codes.
type Kind string

const (
	KindRoomNotFound     Kind = "room_not_found"
	KindInvalidPhase     Kind = "invalid_phase"
	KindForbidden        Kind = "forbidden"
	KindNotYourTurn      Kind = "not_your_turn"
	KindPlayerEliminated Kind = "player_eliminated"
	KindInvalidInput     Kind = "invalid_input"
	KindAlreadyUsed      Kind = "already_used"
	KindInvalidGuess     Kind = "invalid_guess"
	// KindUpstream marks a failed call to an external collaborator
	// (standings API, crest fetch). The caller may retry; we never do.
	KindUpstream Kind = "upstream_failure"
)

// Error is a state-machine failure with a stable kind and a human message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the Kind from an error, or empty string for plain errors
// (store failures and other internals).
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}
