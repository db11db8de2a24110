package assembler

import (
	"errors"

	"github.com/ezrec/twopass/isa"
	"github.com/ezrec/twopass/translate"
)

var f = translate.From

var (
	ErrMemoryFull  = errors.New(f("memory full"))
	ErrNotEligible = errors.New(f("unit has errors"))
	ErrUnresolved  = errors.New(f("unit not resolved"))
	ErrDataEmpty   = errors.New(f(".data without values"))
	ErrStringQuote = errors.New(f(".string must be enclosed in double quotes"))
)

type ErrLabelEmpty string

func (err ErrLabelEmpty) Error() string {
	return f("label '%v' has no statement", string(err))
}

type ErrLabelColon string

func (err ErrLabelColon) Error() string {
	return f("label '%v' must be followed directly by ':'", string(err))
}

type ErrLabelIgnored string

func (err ErrLabelIgnored) Error() string {
	return f("label '%v' ignored", string(err))
}

type ErrMacroName string

func (err ErrMacroName) Error() string {
	return f("'%v' is already a macro", string(err))
}

type ErrStatementUnknown string

func (err ErrStatementUnknown) Error() string {
	return f("unknown statement '%v'", string(err))
}

type ErrDataValue string

func (err ErrDataValue) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrDataRange string

func (err ErrDataRange) Error() string {
	return f("'%v' does not fit in %d bits", string(err), isa.WORD_BITS)
}

type ErrSymbolUndefined string

func (err ErrSymbolUndefined) Error() string {
	return f("symbol '%v' undefined", string(err))
}

type ErrOperandCount struct {
	Name string
	Want int
	Got  int
}

func (err *ErrOperandCount) Error() string {
	return f("%v takes %d operands, not %d", err.Name, err.Want, err.Got)
}

type ErrAddressingMode struct {
	Name    string
	Operand string
	Mode    isa.Mode
}

func (err *ErrAddressingMode) Error() string {
	return f("%v can not use %v operand '%v'", err.Name, err.Mode, err.Operand)
}

// ErrUnitFailed holds every error of a unit that could not be assembled.
type ErrUnitFailed struct {
	Name string
	Err  error
}

func (err *ErrUnitFailed) Error() string {
	return f("%v: assembly failed\n%v", err.Name, err.Err)
}

func (err *ErrUnitFailed) Unwrap() error {
	return err.Err
}
