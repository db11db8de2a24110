// Package symbol implements the symbol table of an assembly unit.
package symbol

import (
	"cmp"
	"maps"
	"slices"
)

// Kind of a symbol.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_CODE           = Kind(0) // code
	KIND_DATA           = Kind(1) // data
	KIND_EXTERNAL       = Kind(2) // external
	KIND_ENTRY_PENDING  = Kind(3) // pending entry
	KIND_ENTRY_RESOLVED = Kind(4) // entry
)

// Region a label address belongs to.
type Region int

//go:generate go tool stringer -linecomment -type=Region
const (
	REGION_NONE = Region(0) // none
	REGION_CODE = Region(1) // code
	REGION_DATA = Region(2) // data
)

// Symbol is a named address.
type Symbol struct {
	Name    string
	Kind    Kind
	Region  Region // Region of the label, also kept for entries.
	Address int
	Defined bool // Set once Address has been assigned.
	LineNo  int  // Line of the first declaration.
}

// Entry is true for symbols exported with .entry.
func (sym *Symbol) Entry() bool {
	return sym.Kind == KIND_ENTRY_PENDING || sym.Kind == KIND_ENTRY_RESOLVED
}

// Table maps names to symbols.
type Table struct {
	symbols   map[string]*Symbol
	relocated bool
}

// NewTable creates an empty symbol table.
func NewTable() *Table {
	return &Table{
		symbols: make(map[string]*Symbol),
	}
}

// Lookup finds a symbol by name.
func (st *Table) Lookup(name string) (sym *Symbol, ok bool) {
	sym, ok = st.symbols[name]
	return
}

// Has is true if name has been declared in any way.
func (st *Table) Has(name string) bool {
	_, ok := st.symbols[name]
	return ok
}

// Len returns the number of symbols.
func (st *Table) Len() int {
	return len(st.symbols)
}

func (st *Table) duplicate(sym *Symbol, kind Kind, lineno int) error {
	return &ErrDuplicate{Name: sym.Name, Kind: kind, Previous: sym.Kind, PreviousLineNo: sym.LineNo, LineNo: lineno}
}

// DefineLabel binds name to an address in the code or data region.
//
// A label may complete a pending .entry declaration. Any other existing
// symbol with the same name is a duplicate.
func (st *Table) DefineLabel(name string, region Region, address int, lineno int) (err error) {
	kind := KIND_CODE
	if region == REGION_DATA {
		kind = KIND_DATA
	}

	sym, ok := st.symbols[name]
	if ok {
		if sym.Kind != KIND_ENTRY_PENDING || sym.Defined {
			return st.duplicate(sym, kind, lineno)
		}
		sym.Region = region
		sym.Address = address
		sym.Defined = true
		return
	}

	st.symbols[name] = &Symbol{
		Name:    name,
		Kind:    kind,
		Region:  region,
		Address: address,
		Defined: true,
		LineNo:  lineno,
	}

	return
}

// DeclareExternal declares name as defined outside of the unit.
func (st *Table) DeclareExternal(name string, lineno int) (err error) {
	sym, ok := st.symbols[name]
	if ok {
		return st.duplicate(sym, KIND_EXTERNAL, lineno)
	}

	st.symbols[name] = &Symbol{
		Name:   name,
		Kind:   KIND_EXTERNAL,
		LineNo: lineno,
	}

	return
}

// DeclareEntry marks name as exported. The name may already be a label,
// or the label may follow.
func (st *Table) DeclareEntry(name string, lineno int) (err error) {
	sym, ok := st.symbols[name]
	if !ok {
		st.symbols[name] = &Symbol{
			Name:   name,
			Kind:   KIND_ENTRY_PENDING,
			LineNo: lineno,
		}
		return
	}

	switch sym.Kind {
	case KIND_CODE, KIND_DATA:
		sym.Kind = KIND_ENTRY_PENDING
	default:
		err = st.duplicate(sym, KIND_ENTRY_PENDING, lineno)
	}

	return
}

// Relocate moves every data region address by offset. It may only be
// done once, after the size of the code region is known.
func (st *Table) Relocate(offset int) (err error) {
	if st.relocated {
		return ErrAlreadyRelocated
	}

	for _, sym := range st.symbols {
		if sym.Defined && sym.Region == REGION_DATA {
			sym.Address += offset
		}
	}
	st.relocated = true

	return
}

// ResolveEntries promotes every pending entry bound to a label, and
// reports the ones that never were.
func (st *Table) ResolveEntries() (errs []error) {
	for _, sym := range st.All() {
		if sym.Kind != KIND_ENTRY_PENDING {
			continue
		}
		if !sym.Defined {
			errs = append(errs, &ErrEntryUndefined{Name: sym.Name, LineNo: sym.LineNo})
			continue
		}
		sym.Kind = KIND_ENTRY_RESOLVED
	}
	return
}

// All returns every symbol, ordered by name.
func (st *Table) All() (syms []*Symbol) {
	syms = slices.Collect(maps.Values(st.symbols))
	slices.SortFunc(syms, func(a, b *Symbol) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return
}

// Entries returns the resolved entries, ordered by address.
func (st *Table) Entries() (syms []*Symbol) {
	for _, sym := range st.All() {
		if sym.Kind == KIND_ENTRY_RESOLVED {
			syms = append(syms, sym)
		}
	}
	slices.SortStableFunc(syms, func(a, b *Symbol) int {
		return cmp.Compare(a.Address, b.Address)
	})
	return
}
