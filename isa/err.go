package isa

import (
	"errors"

	"github.com/ezrec/twopass/translate"
)

var f = translate.From

var (
	ErrOperandMissing = errors.New(f("operand missing"))
)

type ErrImmediateSyntax string

func (err ErrImmediateSyntax) Error() string {
	return f("'%v' is not an immediate number", string(err))
}

type ErrImmediateRange string

func (err ErrImmediateRange) Error() string {
	return f("'%v' does not fit in %d bits", string(err), VALUE_BITS)
}

type ErrRegisterInvalid string

func (err ErrRegisterInvalid) Error() string {
	return f("'%v' is not a register", string(err))
}

type ErrReserved string

func (err ErrReserved) Error() string {
	return f("'%v' is a reserved word", string(err))
}
