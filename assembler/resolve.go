package assembler

import (
	"cmp"
	"errors"
	"slices"

	"github.com/golang/glog"

	"github.com/ezrec/twopass/diag"
	"github.com/ezrec/twopass/isa"
	"github.com/ezrec/twopass/output"
	"github.com/ezrec/twopass/symbol"
)

// Resolve is pass 2. It patches every reference with the address of its
// symbol, records the uses of external symbols and completes the entries.
//
// The result does not depend on the order of refs.
func (u *Unit) Resolve(refs []Reference) (err error) {
	if !u.Diag.Eligible() {
		err = ErrNotEligible
		return
	}

	base := u.Config.BaseAddress
	for _, ref := range refs {
		sym, ok := u.Symbols.Lookup(ref.Symbol)
		switch {
		case ok && sym.Kind == symbol.KIND_EXTERNAL:
			u.Code[ref.Offset] = isa.MakeOperandWord(0, isa.ARE_EXTERNAL)
			u.Externals = append(u.Externals, output.Pair{Name: sym.Name, Address: base + ref.Offset})
		case ok && sym.Defined:
			u.Code[ref.Offset] = isa.MakeOperandWord(sym.Address, isa.ARE_RELOCATABLE)
		default:
			u.error(ref.Line, ErrSymbolUndefined(ref.Symbol))
		}
	}

	slices.SortFunc(u.Externals, func(a, b output.Pair) int {
		return cmp.Or(cmp.Compare(a.Address, b.Address), cmp.Compare(a.Name, b.Name))
	})

	for _, err := range u.Symbols.ResolveEntries() {
		var eu *symbol.ErrEntryUndefined
		if errors.As(err, &eu) {
			err = &diag.ErrSyntax{LineNo: eu.LineNo, Line: isa.DIRECTIVE_ENTRY + " " + eu.Name, Err: err}
		}
		u.Diag.Error(err)
	}

	u.resolved = true

	glog.V(1).Infof("%v: pass 2: %d references, %d external uses", u.Name, len(refs), len(u.Externals))
	return
}
