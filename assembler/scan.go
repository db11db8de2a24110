package assembler

import (
	"strings"

	"github.com/golang/glog"

	"github.com/ezrec/twopass/isa"
	"github.com/ezrec/twopass/source"
	"github.com/ezrec/twopass/symbol"
)

// Scan is pass 1. It places every statement, defines the labels and
// encodes the image with placeholders for symbol references.
//
// Only a fatal condition is returned; everything else goes to u.Diag.
func (u *Unit) Scan(lines []source.Line) (err error) {
	for _, line := range lines {
		if line.Ignored() {
			continue
		}

		u.scanLine(line)

		if u.IC+u.DC > u.Config.MemorySize {
			err = &source.ErrFatal{LineNo: line.LineNo, Err: ErrMemoryFull}
			return
		}
	}

	glog.V(1).Infof("%v: pass 1: IC=%d DC=%d, %d symbols, %d references", u.Name, u.IC, u.DC, u.Symbols.Len(), len(u.References))
	return
}

func (u *Unit) scanLine(line source.Line) {
	text := source.StripComment(line.Text)

	word, rest := source.Word(text)
	switch word {
	case isa.DIRECTIVE_EXTERN:
		u.extern(line, rest)
		return
	case isa.DIRECTIVE_ENTRY:
		u.entry(line, rest)
		return
	}

	label, stmt, err := splitLabel(text)
	if err != nil {
		u.error(line, err)
	}

	u.statement(line, label, stmt)
}

// splitLabel separates a leading 'NAME:' from the statement.
func splitLabel(text string) (label, stmt string, err error) {
	colon := strings.IndexByte(text, ':')
	if colon < 0 {
		return "", text, nil
	}

	candidate := text[:colon]
	if strings.ContainsAny(candidate, " \t\"") {
		// 'NAME :' is a misplaced colon, anything else is no label.
		trimmed := strings.TrimRight(candidate, " \t")
		if !strings.ContainsAny(trimmed, " \t\"") && source.CheckIdentifier(trimmed) == nil {
			err = ErrLabelColon(trimmed)
			stmt = strings.TrimSpace(text[colon+1:])
			return
		}
		return "", text, nil
	}

	stmt = strings.TrimSpace(text[colon+1:])

	err = source.CheckIdentifier(candidate)
	if err == nil && isa.Reserved(candidate) {
		err = isa.ErrReserved(candidate)
	}
	if err == nil {
		label = candidate
	}

	return
}

func (u *Unit) statement(line source.Line, label string, text string) {
	word, rest := source.Word(text)

	switch word {
	case "":
		if len(label) != 0 {
			u.error(line, ErrLabelEmpty(label))
		}
	case isa.DIRECTIVE_EXTERN, isa.DIRECTIVE_ENTRY:
		if len(label) != 0 {
			u.warn(line, ErrLabelIgnored(label))
		}
		if word == isa.DIRECTIVE_EXTERN {
			u.extern(line, rest)
		} else {
			u.entry(line, rest)
		}
	case isa.DIRECTIVE_DATA:
		u.define(line, label, symbol.REGION_DATA)
		words, err := parseData(rest)
		u.data(line, words, err)
	case isa.DIRECTIVE_STRING:
		u.define(line, label, symbol.REGION_DATA)
		words, err := parseString(rest)
		u.data(line, words, err)
	default:
		inst, ok := isa.Lookup(word)
		if !ok {
			u.error(line, ErrStatementUnknown(word))
			return
		}
		u.define(line, label, symbol.REGION_CODE)
		u.instruction(line, inst, rest)
	}
}

// define binds a label to the current counter of its region.
func (u *Unit) define(line source.Line, label string, region symbol.Region) {
	if len(label) == 0 {
		return
	}

	if u.Macros.Has(label) {
		u.error(line, ErrMacroName(label))
		return
	}

	address := u.IC
	if region == symbol.REGION_DATA {
		address = u.DC
	}

	err := u.Symbols.DefineLabel(label, region, address, line.LineNo)
	if err != nil {
		u.error(line, err)
		return
	}

	glog.V(2).Infof("%v:%d: %v label %v = %d", u.Name, line.LineNo, region, label, address)
}

// declared parses the single name of an .extern or .entry directive.
func (u *Unit) declared(rest string) (name string, err error) {
	name, trailing := source.Word(rest)

	err = source.CheckIdentifier(name)
	if err == nil && isa.Reserved(name) {
		err = isa.ErrReserved(name)
	}
	if err == nil {
		err = source.Trailing(trailing)
	}
	if err == nil && u.Macros.Has(name) {
		err = ErrMacroName(name)
	}

	return
}

func (u *Unit) extern(line source.Line, rest string) {
	name, err := u.declared(rest)
	if err == nil {
		err = u.Symbols.DeclareExternal(name, line.LineNo)
	}
	if err != nil {
		u.error(line, err)
		return
	}

	glog.V(2).Infof("%v:%d: extern %v", u.Name, line.LineNo, name)
}

func (u *Unit) entry(line source.Line, rest string) {
	name, err := u.declared(rest)
	if err == nil {
		err = u.Symbols.DeclareEntry(name, line.LineNo)
	}
	if err != nil {
		u.error(line, err)
		return
	}

	glog.V(2).Infof("%v:%d: entry %v", u.Name, line.LineNo, name)
}
