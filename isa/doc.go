// Package isa defines the instruction set targeted by the assembler.
//
// There are sixteen instructions taking zero, one or two operands. Each
// operand uses one of four addressing modes:
//
//	0 immediate          #-5
//	1 direct             LABEL
//	2 register indirect  *r3
//	3 register direct    r3
//
// Register operands are encoded in the instruction word itself, while
// immediate and direct operands each take one extra word.
package isa
