// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package macro implements the macro table and the macro preprocessor.
//
// Macros have no parameters. A definition is written as
//
//	mcro NAME
//	...body lines...
//	mcroend
//
// and a line consisting only of NAME is replaced by a copy of the body.
package macro

import (
	"slices"

	"github.com/golang/glog"

	"github.com/ezrec/twopass/diag"
	"github.com/ezrec/twopass/isa"
	"github.com/ezrec/twopass/source"
)

// Macro is a named block of source lines.
type Macro struct {
	Name   string
	LineNo int           // Line of the mcro keyword.
	Lines  []source.Line // Body, verbatim.
}

// Table holds the macros of a unit.
type Table struct {
	macros map[string]*Macro
	order  []string
}

// NewTable creates an empty macro table.
func NewTable() *Table {
	return &Table{
		macros: make(map[string]*Macro),
	}
}

// Define adds a completed macro.
func (mt *Table) Define(macro *Macro) (err error) {
	prior, ok := mt.macros[macro.Name]
	if ok {
		err = &ErrMacroDuplicate{Name: macro.Name, LineNo: prior.LineNo}
		return
	}

	mt.macros[macro.Name] = macro
	mt.order = append(mt.order, macro.Name)
	return
}

// Lookup finds a macro by name.
func (mt *Table) Lookup(name string) (macro *Macro, ok bool) {
	macro, ok = mt.macros[name]
	return
}

// Has is true if name is a defined macro.
func (mt *Table) Has(name string) bool {
	_, ok := mt.macros[name]
	return ok
}

// Names lists the macros in definition order.
func (mt *Table) Names() []string {
	return slices.Clone(mt.order)
}

// state of the preprocessor.
type state int

const (
	STATE_NORMAL     = state(0) // Copying and expanding lines.
	STATE_DEFINITION = state(1) // Collecting a macro body.
	STATE_DISCARD    = state(2) // Skipping the body of a rejected macro.
)

// Preprocessor expands macros in a stream of source lines.
type Preprocessor struct {
	Table   *Table     // Macros defined so far.
	Diag    *diag.List // Where errors are reported.
	MaxLine int        // Maximum significant line length, if non-zero.

	state    state
	current  *Macro
	declared map[string]int
}

func (pp *Preprocessor) error(line source.Line, err error) {
	pp.Diag.Error(&diag.ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: err})
}

// Expand returns lines with macro definitions removed and invocations
// replaced by the macro bodies.
func (pp *Preprocessor) Expand(lines []source.Line) (out []source.Line) {
	if pp.Table == nil {
		pp.Table = NewTable()
	}
	if pp.Diag == nil {
		pp.Diag = &diag.List{}
	}
	pp.declared = make(map[string]int)
	pp.state = STATE_NORMAL
	pp.current = nil

	for _, line := range lines {
		if pp.MaxLine > 0 && len(line.Text) > pp.MaxLine {
			pp.error(line, source.ErrLineTooLong)
		}

		keyword, rest := source.Word(source.StripComment(line.Text))

		switch pp.state {
		case STATE_DEFINITION:
			if keyword == isa.MACRO_END {
				pp.end(line, rest)
				continue
			}
			pp.current.Lines = append(pp.current.Lines, line)
			continue
		case STATE_DISCARD:
			if keyword == isa.MACRO_END {
				pp.state = STATE_NORMAL
			}
			continue
		}

		switch keyword {
		case isa.MACRO_BEGIN:
			pp.begin(line, rest)
			continue
		case isa.MACRO_END:
			pp.error(line, ErrMacroLonelyEnd)
			continue
		}

		macro, ok := pp.Table.Lookup(source.StripComment(line.Text))
		if ok {
			glog.V(2).Infof("%d: expand %v (%d lines)", line.LineNo, macro.Name, len(macro.Lines))
			for _, body := range macro.Lines {
				body.Macro = macro.Name
				body.CallLineNo = line.LineNo
				pp.declare(body)
				out = append(out, body)
			}
			continue
		}

		pp.declare(line)
		out = append(out, line)
	}

	if pp.state == STATE_DEFINITION {
		pp.Diag.Error(&diag.ErrSyntax{
			LineNo: pp.current.LineNo,
			Line:   isa.MACRO_BEGIN + " " + pp.current.Name,
			Err:    ErrMacroUnterminated(pp.current.Name),
		})
	}

	return
}

// begin validates a macro header and enters the definition state.
func (pp *Preprocessor) begin(line source.Line, rest string) {
	name, trailing := source.Word(rest)

	err := source.CheckIdentifier(name)
	if err == nil && isa.Reserved(name) {
		err = isa.ErrReserved(name)
	}
	if err == nil {
		err = source.Trailing(trailing)
	}
	if err == nil && pp.Table.Has(name) {
		prior, _ := pp.Table.Lookup(name)
		err = &ErrMacroDuplicate{Name: name, LineNo: prior.LineNo}
	}
	if err == nil {
		if lineno, ok := pp.declared[name]; ok {
			err = &ErrNameTaken{Name: name, LineNo: lineno}
		}
	}
	if err != nil {
		pp.error(line, err)
		pp.state = STATE_DISCARD
		return
	}

	glog.V(2).Infof("%d: define %v", line.LineNo, name)

	pp.current = &Macro{Name: name, LineNo: line.LineNo}
	pp.state = STATE_DEFINITION
}

// end completes the current macro.
func (pp *Preprocessor) end(line source.Line, rest string) {
	err := source.Trailing(rest)
	if err != nil {
		pp.error(line, err)
	}

	err = pp.Table.Define(pp.current)
	if err != nil {
		pp.error(line, err)
	}

	pp.current = nil
	pp.state = STATE_NORMAL
}

// declare notes the names a line declares, so that a later macro can not
// reuse them.
func (pp *Preprocessor) declare(line source.Line) {
	text := source.StripComment(line.Text)

	ident, after := source.Identifier(text)
	if len(ident) > 0 && len(after) > 0 && after[0] == ':' {
		word, rest := source.Word(after[1:])
		if word == isa.DIRECTIVE_EXTERN || word == isa.DIRECTIVE_ENTRY {
			text = word + " " + rest
		} else {
			if source.CheckIdentifier(ident) == nil {
				pp.note(ident, line.LineNo)
			}
			return
		}
	}

	word, rest := source.Word(text)
	if word == isa.DIRECTIVE_EXTERN || word == isa.DIRECTIVE_ENTRY {
		name, _ := source.Word(rest)
		if source.CheckIdentifier(name) == nil {
			pp.note(name, line.LineNo)
		}
	}
}

func (pp *Preprocessor) note(name string, lineno int) {
	if _, ok := pp.declared[name]; !ok {
		pp.declared[name] = lineno
	}
}
