package automaton

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange        = errors.New("invalid range")
	ErrUnlabeledTransition = errors.New("transition has no label")
	ErrNilState            = errors.New("nil state")
	ErrForeignState        = errors.New("state does not belong to this automaton")
	ErrStartNotFound       = errors.New("start state is not an endpoint of any transition")
	ErrUnknownAutomaton    = errors.New("unknown named automaton")
)

// SyntaxError is returned by NewRegExp for malformed expressions.
type SyntaxError struct {
	Pos     int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Message, e.Pos)
}
