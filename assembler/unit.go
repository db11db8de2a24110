package assembler

import (
	"io"
	"slices"

	"github.com/golang/glog"

	"github.com/ezrec/twopass/config"
	"github.com/ezrec/twopass/diag"
	"github.com/ezrec/twopass/isa"
	"github.com/ezrec/twopass/macro"
	"github.com/ezrec/twopass/output"
	"github.com/ezrec/twopass/source"
	"github.com/ezrec/twopass/symbol"
)

// Reference is an operand word waiting for the address of a symbol.
type Reference struct {
	Symbol string      // Name of the referenced symbol.
	Offset int         // Index of the placeholder word in the code.
	Mode   isa.Mode    // Addressing mode of the operand.
	Line   source.Line // Line of the instruction.
}

// Statement records where pass 1 placed a line, and how many words it
// took.
type Statement struct {
	Line    source.Line
	Region  symbol.Region
	Address int // Code address, or data offset before relocation.
	Words   int
}

// Unit is the state of one source unit through every stage.
type Unit struct {
	Name   string
	Config config.Config

	Macros  *macro.Table
	Symbols *symbol.Table
	Diag    diag.List

	IC   int        // Instruction counter, starting at the base address.
	DC   int        // Data counter, starting at zero.
	Code []isa.Word // Code image.
	Data []isa.Word // Data image.

	Expanded   []source.Line // Macro expanded source.
	Statements []Statement   // Pass 1 placement of every statement.
	References []Reference   // Operands naming a symbol.
	Externals  []output.Pair // Uses of external symbols, by address.

	expanded bool
	resolved bool
}

// NewUnit creates the context for assembling a unit.
func NewUnit(name string, cfg config.Config) *Unit {
	return &Unit{
		Name:    name,
		Config:  cfg,
		Macros:  macro.NewTable(),
		Symbols: symbol.NewTable(),
		IC:      cfg.BaseAddress,
	}
}

// error records an error on a line, noting the macro it came from.
func (u *Unit) error(line source.Line, err error) {
	u.Diag.Error(u.locate(line, err))
}

// warn records a warning on a line.
func (u *Unit) warn(line source.Line, err error) {
	u.Diag.Warn(u.locate(line, err))
}

func (u *Unit) locate(line source.Line, err error) error {
	if len(line.Macro) != 0 {
		err = &diag.ErrMacro{Macro: line.Macro, LineNo: line.CallLineNo, Err: err}
	}
	return &diag.ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: err}
}

func (u *Unit) failed() error {
	return &ErrUnitFailed{Name: u.Name, Err: u.Diag.Err()}
}

// Preprocess expands the macros of the source lines into u.Expanded.
func (u *Unit) Preprocess(lines []source.Line) {
	pp := &macro.Preprocessor{
		Table:   u.Macros,
		Diag:    &u.Diag,
		MaxLine: u.Config.MaxLine,
	}

	u.Expanded = pp.Expand(lines)
	u.expanded = u.Diag.Eligible()

	glog.V(1).Infof("%v: preprocessed %d lines into %d, %d macros", u.Name, len(lines), len(u.Expanded), len(u.Macros.Names()))
}

// ExpandedValid is true if preprocessing found no errors.
func (u *Unit) ExpandedValid() bool {
	return u.expanded
}

// Relocate places the data region after the final code address.
func (u *Unit) Relocate() (err error) {
	err = u.Symbols.Relocate(u.IC)
	if err != nil {
		return
	}

	glog.V(1).Infof("%v: data relocated to %d", u.Name, u.IC)
	return
}

// Object returns the assembled image of a resolved unit.
func (u *Unit) Object() (obj *output.Object, err error) {
	if !u.Diag.Eligible() {
		err = u.failed()
		return
	}
	if !u.resolved {
		err = ErrUnresolved
		return
	}

	obj = &output.Object{
		Base:      u.Config.BaseAddress,
		Code:      slices.Clone(u.Code),
		Data:      slices.Clone(u.Data),
		Externals: slices.Clone(u.Externals),
	}
	for _, sym := range u.Symbols.Entries() {
		obj.Entries = append(obj.Entries, output.Pair{Name: sym.Name, Address: sym.Address})
	}

	return
}

// Assemble runs every stage on a source unit.
//
// Problems in the source are returned as a single *ErrUnitFailed. A
// *source.ErrFatal is returned when the unit could not be processed at
// all.
func (u *Unit) Assemble(input io.Reader) (obj *output.Object, err error) {
	lines, err := source.Read(input)
	if err != nil {
		return
	}

	u.Preprocess(lines)

	err = u.Scan(u.Expanded)
	if err != nil {
		return
	}

	if !u.Diag.Eligible() {
		err = u.failed()
		return
	}

	err = u.Relocate()
	if err != nil {
		return
	}

	err = u.Resolve(u.References)
	if err != nil {
		return
	}

	obj, err = u.Object()
	return
}
