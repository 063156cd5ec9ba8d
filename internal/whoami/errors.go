package whoami

import "errors"

// Kind classifies a who-am-i failure for the gateway's status mapping.
type Kind string

const (
	KindRoomNotFound    Kind = "room_not_found"
	KindInvalidPhase    Kind = "invalid_phase"
	KindForbidden       Kind = "forbidden"
	KindInvalidInput    Kind = "invalid_input"
	KindAlreadyAnswered Kind = "already_answered"
)

// Error is a game-rule failure with a stable kind and a human message.
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

// KindOf extracts the Kind from an error, or empty string for plain errors.
func KindOf(err error) Kind {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	return ""
}
