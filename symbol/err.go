package symbol

import (
	"errors"

	"github.com/ezrec/twopass/translate"
)

var f = translate.From

var (
	ErrAlreadyRelocated = errors.New(f("data already relocated"))
)

// ErrDuplicate is a second declaration of a name.
type ErrDuplicate struct {
	Name           string
	Kind           Kind
	Previous       Kind
	PreviousLineNo int
	LineNo         int
}

func (err *ErrDuplicate) Error() string {
	return f("%v '%v' already declared as %v on line %d", err.Kind, err.Name, err.Previous, err.PreviousLineNo)
}

// ErrEntryUndefined is an .entry without a matching label.
type ErrEntryUndefined struct {
	Name   string
	LineNo int
}

func (err *ErrEntryUndefined) Error() string {
	return f("entry '%v' is never defined", err.Name)
}
