package isa

import (
	"strconv"
	"strings"

	"github.com/ezrec/twopass/source"
)

// Operand is a decoded instruction operand.
type Operand struct {
	Text     string
	Mode     Mode
	Register int    // Register number for indirect and register modes.
	Value    int    // Immediate value.
	Symbol   string // Referenced symbol for direct mode.
}

// Words returns the number of extra words the operand occupies.
// Register operands fold into the instruction word.
func (op Operand) Words() int {
	switch op.Mode {
	case MODE_IMMEDIATE, MODE_DIRECT:
		return 1
	}
	return 0
}

func registerName(text string) (reg int, ok bool) {
	if len(text) != 2 || text[0] != 'r' || text[1] < '0' || text[1] > '7' {
		return
	}
	return int(text[1] - '0'), true
}

// ParseOperand decodes the addressing mode of an operand.
//
// Even when an error is returned, op.Mode holds the mode the text was
// meant to have, so that word counting stays stable.
func ParseOperand(text string) (op Operand, err error) {
	text = strings.TrimSpace(text)
	op.Text = text

	switch {
	case len(text) == 0:
		op.Mode = MODE_DIRECT
		err = ErrOperandMissing
	case text[0] == '#':
		op.Mode = MODE_IMMEDIATE
		digits := text[1:]
		if !source.Numeric(digits) {
			err = ErrImmediateSyntax(text)
			return
		}
		var value int
		value, err = strconv.Atoi(digits)
		if err != nil || value < VALUE_MIN || value > VALUE_MAX {
			err = ErrImmediateRange(text)
			return
		}
		op.Value = value
	case text[0] == '*':
		op.Mode = MODE_INDIRECT
		reg, ok := registerName(text[1:])
		if !ok {
			err = ErrRegisterInvalid(text)
			return
		}
		op.Register = reg
	default:
		reg, ok := registerName(text)
		if ok {
			op.Mode = MODE_REGISTER
			op.Register = reg
			return
		}
		op.Mode = MODE_DIRECT
		err = source.CheckIdentifier(text)
		if err != nil {
			return
		}
		if Reserved(text) {
			err = ErrReserved(text)
			return
		}
		op.Symbol = text
	}

	return
}
