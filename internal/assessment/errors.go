package assessment

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAnswer is matched by every *InvalidAnswerError.
	ErrInvalidAnswer = errors.New("invalid answer")
	// ErrOutOfRange is matched by every *OutOfRangeError.
	ErrOutOfRange = errors.New("progress out of range")
	// ErrComplete is returned when asking a finished assessment for more.
	ErrComplete = errors.New("assessment complete")
	// ErrIncomplete is returned when results are requested too early.
	ErrIncomplete = errors.New("assessment not complete")
)

// InvalidAnswerError reports an answer value outside [MinAnswer, MaxAnswer].
// The caller should re-prompt; no state was changed.
type InvalidAnswerError struct {
	Value int
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("invalid answer %d: must be between %d and %d", e.Value, MinAnswer, MaxAnswer)
}

func (e *InvalidAnswerError) Is(target error) bool { return target == ErrInvalidAnswer }

// OutOfRangeError reports progress that does not address the layout, which
// means restored state is corrupt or belongs to a different bank.
type OutOfRangeError struct {
	Reason string
}

func (e *OutOfRangeError) Error() string {
	return "progress out of range: " + e.Reason
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }

func outOfRange(format string, args ...any) error {
	return &OutOfRangeError{Reason: fmt.Sprintf(format, args...)}
}
