package diag

import (
	"github.com/ezrec/twopass/translate"
)

var f = translate.From

// ErrSyntax locates an error on a source line.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrMacro marks an error on a line that came from a macro expansion.
type ErrMacro struct {
	Macro  string
	LineNo int
	Err    error
}

func (err *ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.LineNo, err.Err)
}

func (err *ErrMacro) Unwrap() error {
	return err.Err
}
