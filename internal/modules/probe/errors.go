package probe

import (
	"errors"
	"fmt"
)

// Kind identifies which stage of a measurement failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindMissingArgument
	KindMalformedURL
	KindConnection
	KindTransfer
)

func (k Kind) String() string {
	switch k {
	case KindMissingArgument:
		return "missing argument"
	case KindMalformedURL:
		return "malformed url"
	case KindConnection:
		return "connection"
	case KindTransfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// Error is the error type returned by the probe. Error() yields the
// underlying message only; callers add their own prefix.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// ErrMissingURL is returned when no target was given at all.
var ErrMissingURL = &Error{Kind: KindMissingArgument, Err: errors.New("A URL was not given.")}

// KindOf reports the Kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindUnknown
}
