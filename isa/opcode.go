package isa

import (
	"fmt"
)

// Opcode is an instruction operation code.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_MOV  = Opcode(0)  // mov
	OP_CMP  = Opcode(1)  // cmp
	OP_ADD  = Opcode(2)  // add
	OP_SUB  = Opcode(3)  // sub
	OP_LEA  = Opcode(4)  // lea
	OP_CLR  = Opcode(5)  // clr
	OP_NOT  = Opcode(6)  // not
	OP_INC  = Opcode(7)  // inc
	OP_DEC  = Opcode(8)  // dec
	OP_JMP  = Opcode(9)  // jmp
	OP_BNE  = Opcode(10) // bne
	OP_JSR  = Opcode(11) // jsr
	OP_RED  = Opcode(12) // red
	OP_PRN  = Opcode(13) // prn
	OP_RTS  = Opcode(14) // rts
	OP_STOP = Opcode(15) // stop
)

// Mode is an operand addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_IMMEDIATE = Mode(0) // immediate
	MODE_DIRECT    = Mode(1) // direct
	MODE_INDIRECT  = Mode(2) // indirect
	MODE_REGISTER  = Mode(3) // register
)

// Modes is a set of addressing modes.
type Modes uint8

// ModesOf builds a set of addressing modes.
func ModesOf(modes ...Mode) (ms Modes) {
	for _, mode := range modes {
		ms |= 1 << mode
	}
	return
}

// Has returns true if mode is in the set.
func (ms Modes) Has(mode Mode) bool {
	return ms&(1<<mode) != 0
}

var (
	MODES_NONE     = ModesOf()
	MODES_ALL      = ModesOf(MODE_IMMEDIATE, MODE_DIRECT, MODE_INDIRECT, MODE_REGISTER)
	MODES_WRITABLE = ModesOf(MODE_DIRECT, MODE_INDIRECT, MODE_REGISTER)
	MODES_JUMP     = ModesOf(MODE_DIRECT, MODE_INDIRECT)
	MODES_ADDRESS  = ModesOf(MODE_DIRECT)
)

// Are is the relocation class of an operand word.
type Are int

//go:generate go tool stringer -linecomment -type=Are
const (
	ARE_ABSOLUTE    = Are(0) // A
	ARE_EXTERNAL    = Are(1) // E
	ARE_RELOCATABLE = Are(2) // R
)

// Instruction describes one entry of the fixed instruction table.
type Instruction struct {
	Opcode   Opcode
	Operands int   // Required operand count.
	Source   Modes // Legal source addressing modes.
	Dest     Modes // Legal destination addressing modes.
}

// Name returns the mnemonic of the instruction.
func (inst Instruction) Name() string {
	return inst.Opcode.String()
}

var instructionTable = [...]Instruction{
	{OP_MOV, 2, MODES_ALL, MODES_WRITABLE},
	{OP_CMP, 2, MODES_ALL, MODES_ALL},
	{OP_ADD, 2, MODES_ALL, MODES_WRITABLE},
	{OP_SUB, 2, MODES_ALL, MODES_WRITABLE},
	{OP_LEA, 2, MODES_ADDRESS, MODES_WRITABLE},
	{OP_CLR, 1, MODES_NONE, MODES_WRITABLE},
	{OP_NOT, 1, MODES_NONE, MODES_WRITABLE},
	{OP_INC, 1, MODES_NONE, MODES_WRITABLE},
	{OP_DEC, 1, MODES_NONE, MODES_WRITABLE},
	{OP_JMP, 1, MODES_NONE, MODES_JUMP},
	{OP_BNE, 1, MODES_NONE, MODES_JUMP},
	{OP_JSR, 1, MODES_NONE, MODES_JUMP},
	{OP_RED, 1, MODES_NONE, MODES_WRITABLE},
	{OP_PRN, 1, MODES_NONE, MODES_ALL},
	{OP_RTS, 0, MODES_NONE, MODES_NONE},
	{OP_STOP, 0, MODES_NONE, MODES_NONE},
}

var instructionMap = func() map[string]Instruction {
	table := make(map[string]Instruction, len(instructionTable))
	for _, inst := range instructionTable {
		table[inst.Name()] = inst
	}
	return table
}()

// Lookup finds an instruction by mnemonic.
func Lookup(name string) (inst Instruction, ok bool) {
	inst, ok = instructionMap[name]
	return
}

// Instructions returns the instruction table in opcode order.
func Instructions() []Instruction {
	return instructionTable[:]
}

// Directive names.
const (
	DIRECTIVE_DATA   = ".data"
	DIRECTIVE_STRING = ".string"
	DIRECTIVE_ENTRY  = ".entry"
	DIRECTIVE_EXTERN = ".extern"

	MACRO_BEGIN = "mcro"
	MACRO_END   = "mcroend"
)

// Reserved is true for names that may not be used as identifiers.
func Reserved(name string) bool {
	if _, ok := instructionMap[name]; ok {
		return true
	}
	if _, ok := registerName(name); ok {
		return true
	}
	switch name {
	case MACRO_BEGIN, MACRO_END,
		DIRECTIVE_DATA[1:], DIRECTIVE_STRING[1:], DIRECTIVE_ENTRY[1:], DIRECTIVE_EXTERN[1:]:
		return true
	}
	return false
}

// Word is a single 16 bit memory word.
//
// An instruction word is laid out as:
//
//	15-12 opcode
//	11-10 source mode
//	 9-7  source register
//	 6-5  destination mode
//	 4-2  destination register
//	 1-0  ARE
//
// An operand word holds a 14 bit two's complement value in bits 15-2 and
// its ARE in bits 1-0. Data words use all 16 bits.
type Word uint16

const (
	WORD_BITS      = 16
	VALUE_BITS     = 14
	VALUE_MIN      = -(1 << (VALUE_BITS - 1))
	VALUE_MAX      = (1 << (VALUE_BITS - 1)) - 1
	DATA_MIN       = -(1 << (WORD_BITS - 1))
	DATA_MAX       = (1 << (WORD_BITS - 1)) - 1
	REGISTER_COUNT = 8
)

// MakeOpcodeWord creates the first word of an instruction.
func MakeOpcodeWord(op Opcode, src_mode Mode, src_reg int, dst_mode Mode, dst_reg int) Word {
	return Word((uint16(op)&0xf)<<12 |
		(uint16(src_mode)&0x3)<<10 |
		(uint16(src_reg)&0x7)<<7 |
		(uint16(dst_mode)&0x3)<<5 |
		(uint16(dst_reg)&0x7)<<2 |
		uint16(ARE_ABSOLUTE))
}

// MakeOperandWord creates an extra word for an immediate or direct operand.
func MakeOperandWord(value int, are Are) Word {
	return Word((uint16(value)&0x3fff)<<2 | uint16(are)&0x3)
}

// MakeDataWord creates a data image word.
func MakeDataWord(value int) Word {
	return Word(uint16(value))
}

// Opcode returns the operation code of an instruction word.
func (w Word) Opcode() Opcode {
	return Opcode((w >> 12) & 0xf)
}

// Source returns the source mode and register of an instruction word.
func (w Word) Source() (mode Mode, reg int) {
	mode = Mode((w >> 10) & 0x3)
	reg = int((w >> 7) & 0x7)
	return
}

// Dest returns the destination mode and register of an instruction word.
func (w Word) Dest() (mode Mode, reg int) {
	mode = Mode((w >> 5) & 0x3)
	reg = int((w >> 2) & 0x7)
	return
}

// Are returns the relocation class of the word.
func (w Word) Are() Are {
	return Are(w & 0x3)
}

// Value returns the sign extended value of an operand word.
func (w Word) Value() int {
	return int(int16(w) >> 2)
}

// String returns the word in binary.
func (w Word) String() string {
	return fmt.Sprintf("%016b", uint16(w))
}
