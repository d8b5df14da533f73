package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSelection is returned when a split is attempted with no friend selected.
	ErrNoSelection = errors.New("no friend selected")
	// ErrUnknownFriend is returned when an action names a friend not in the ledger.
	ErrUnknownFriend = errors.New("unknown friend")
	// ErrDuplicateFriend is returned when a generated id collides with an existing friend.
	ErrDuplicateFriend = errors.New("duplicate friend id")
	// ErrUnknownAction is returned by Apply for action types it does not handle.
	ErrUnknownAction = errors.New("unknown action")
)

// ValidationError reports form input that was rejected before any state changed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func required(field string) error {
	return &ValidationError{Field: field, Reason: "is required"}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
