package source

import (
	"errors"

	"github.com/ezrec/twopass/translate"
)

var f = translate.From

var (
	ErrIdentifierEmpty = errors.New(f("identifier missing"))
	ErrLineTooLong     = errors.New(f("line too long"))
)

type ErrIdentifierStart string

func (err ErrIdentifierStart) Error() string {
	return f("identifier '%v' must start with a letter", string(err))
}

type ErrIdentifierLength string

func (err ErrIdentifierLength) Error() string {
	return f("identifier '%v' longer than %d characters", string(err), MAX_IDENTIFIER)
}

type ErrIdentifierChar string

func (err ErrIdentifierChar) Error() string {
	return f("identifier '%v' must be letters and digits", string(err))
}

type ErrTrailing string

func (err ErrTrailing) Error() string {
	return f("unexpected '%v' at end of line", string(err))
}

// ErrFatal is a failure to read the source, not a problem in it.
type ErrFatal struct {
	LineNo int
	Err    error
}

func (err *ErrFatal) Error() string {
	return f("fatal: line %d: %v", err.LineNo, err.Err)
}

func (err *ErrFatal) Unwrap() error {
	return err.Err
}
