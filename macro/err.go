package macro

import (
	"errors"

	"github.com/ezrec/twopass/translate"
)

var f = translate.From

var (
	ErrMacroLonelyEnd = errors.New(f("mcroend without mcro"))
)

type ErrMacroDuplicate struct {
	Name   string
	LineNo int
}

func (err *ErrMacroDuplicate) Error() string {
	return f("macro '%v' already defined on line %d", err.Name, err.LineNo)
}

// ErrNameTaken is a name already declared as a label, external or entry.
type ErrNameTaken struct {
	Name   string
	LineNo int
}

func (err *ErrNameTaken) Error() string {
	return f("'%v' already declared on line %d", err.Name, err.LineNo)
}

type ErrMacroUnterminated string

func (err ErrMacroUnterminated) Error() string {
	return f("macro '%v' without mcroend", string(err))
}
