package feasibility

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrDivisionUndefined = errors.New("division undefined")
	ErrIRRUndefined      = errors.New("irr undefined")
	ErrIRRNonConvergent  = errors.New("irr did not converge")
)

// Error wraps one of the sentinel kinds above with a detail message.
// Callers match with errors.Is(err, ErrIRRUndefined) etc.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

func invalidf(format string, args ...any) error {
	return &Error{Kind: ErrInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

func undefinedDivisionf(format string, args ...any) error {
	return &Error{Kind: ErrDivisionUndefined, Msg: fmt.Sprintf(format, args...)}
}

func irrUndefinedf(format string, args ...any) error {
	return &Error{Kind: ErrIRRUndefined, Msg: fmt.Sprintf(format, args...)}
}

func nonConvergentf(format string, args ...any) error {
	return &Error{Kind: ErrIRRNonConvergent, Msg: fmt.Sprintf(format, args...)}
}
