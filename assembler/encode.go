package assembler

import (
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/ezrec/twopass/isa"
	"github.com/ezrec/twopass/source"
	"github.com/ezrec/twopass/symbol"
)

// parseData decodes the values of a .data directive.
func parseData(rest string) (words []isa.Word, err error) {
	if len(rest) == 0 {
		err = ErrDataEmpty
		return
	}

	for _, token := range strings.Split(rest, ",") {
		token = strings.TrimSpace(token)
		if !source.Numeric(token) {
			return nil, ErrDataValue(token)
		}
		value, perr := strconv.Atoi(token)
		if perr != nil || value < isa.DATA_MIN || value > isa.DATA_MAX {
			return nil, ErrDataRange(token)
		}
		words = append(words, isa.MakeDataWord(value))
	}

	return
}

// parseString decodes a .string directive: one word per character, and
// a terminating zero.
func parseString(rest string) (words []isa.Word, err error) {
	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		err = ErrStringQuote
		return
	}

	text := rest[1 : len(rest)-1]
	words = make([]isa.Word, 0, len(text)+1)
	for n := range len(text) {
		words = append(words, isa.MakeDataWord(int(text[n])))
	}
	words = append(words, isa.MakeDataWord(0))

	return
}

// data places the words of a data directive. A directive with an error
// takes no space.
func (u *Unit) data(line source.Line, words []isa.Word, err error) {
	if err != nil {
		u.error(line, err)
		words = nil
	}

	u.Statements = append(u.Statements, Statement{
		Line:    line,
		Region:  symbol.REGION_DATA,
		Address: u.DC,
		Words:   len(words),
	})

	u.Data = append(u.Data, words...)
	u.DC += len(words)
}

// instruction encodes an instruction. Operands that name a symbol get a
// zero placeholder word and a Reference for pass 2.
//
// A faulty instruction still takes one word plus one per immediate or
// direct operand, so the addresses of the following lines do not shift.
func (u *Unit) instruction(line source.Line, inst isa.Instruction, rest string) {
	var texts []string
	if len(rest) != 0 {
		texts = strings.Split(rest, ",")
	}

	if len(texts) != inst.Operands {
		u.error(line, &ErrOperandCount{Name: inst.Name(), Want: inst.Operands, Got: len(texts)})
		texts = texts[:min(len(texts), inst.Operands)]
	}

	legal := []isa.Modes{inst.Dest}
	if inst.Operands == 2 {
		legal = []isa.Modes{inst.Source, inst.Dest}
	}

	ops := make([]isa.Operand, len(texts))
	valid := make([]bool, len(texts))
	for n, text := range texts {
		op, err := isa.ParseOperand(text)
		if err == nil && !legal[n].Has(op.Mode) {
			err = &ErrAddressingMode{Name: inst.Name(), Operand: op.Text, Mode: op.Mode}
		}
		if err != nil {
			u.error(line, err)
		}
		ops[n] = op
		valid[n] = err == nil
	}

	var src_mode, dst_mode isa.Mode
	var src_reg, dst_reg int
	if src := inst.Operands - 2; src >= 0 && src < len(ops) {
		src_mode, src_reg = ops[src].Mode, ops[src].Register
	}
	if dst := inst.Operands - 1; dst >= 0 && dst < len(ops) {
		dst_mode, dst_reg = ops[dst].Mode, ops[dst].Register
	}

	words := []isa.Word{isa.MakeOpcodeWord(inst.Opcode, src_mode, src_reg, dst_mode, dst_reg)}
	for n, op := range ops {
		switch op.Mode {
		case isa.MODE_IMMEDIATE:
			words = append(words, isa.MakeOperandWord(op.Value, isa.ARE_ABSOLUTE))
		case isa.MODE_DIRECT:
			if valid[n] {
				u.References = append(u.References, Reference{
					Symbol: op.Symbol,
					Offset: len(u.Code) + len(words),
					Mode:   op.Mode,
					Line:   line,
				})
			}
			words = append(words, 0)
		}
	}

	glog.V(2).Infof("%v:%d: %d: %v (%d words)", u.Name, line.LineNo, u.IC, inst.Name(), len(words))

	u.Statements = append(u.Statements, Statement{
		Line:    line,
		Region:  symbol.REGION_CODE,
		Address: u.IC,
		Words:   len(words),
	})

	u.Code = append(u.Code, words...)
	u.IC += len(words)
}
