// Package output assembles the memory image of a unit and writes its
// listings.
package output

import (
	"bufio"
	"fmt"
	"io"
	"iter"

	"github.com/ezrec/twopass/internal"
	"github.com/ezrec/twopass/isa"
	"github.com/ezrec/twopass/source"
)

// Pair is a named address, used for entries and external usages.
type Pair struct {
	Name    string
	Address int
}

// Object is the assembled image of a unit.
type Object struct {
	Base      int        // Address of the first code word.
	Code      []isa.Word // Instruction words.
	Data      []isa.Word // Data words, placed after the code.
	Entries   []Pair     // Exported labels, by address.
	Externals []Pair     // Every use of an external symbol, by address.
}

// CodeSize is the number of instruction words.
func (obj *Object) CodeSize() int {
	return len(obj.Code)
}

// DataSize is the number of data words.
func (obj *Object) DataSize() int {
	return len(obj.Data)
}

// Image iterates over the merged address space, code first.
func (obj *Object) Image() iter.Seq2[int, isa.Word] {
	return internal.IterSeq2Concat(
		internal.IterAddressed(obj.Base, obj.Code),
		internal.IterAddressed(obj.Base+len(obj.Code), obj.Data),
	)
}

// WriteObject writes the memory image listing: a header with the code and
// data sizes, then one address and word per line.
func (obj *Object) WriteObject(w io.Writer) (err error) {
	bw := bufio.NewWriter(w)

	_, err = fmt.Fprintf(bw, "%d %d\n", obj.CodeSize(), obj.DataSize())
	if err != nil {
		return
	}

	for addr, word := range obj.Image() {
		_, err = fmt.Fprintf(bw, "%04d %04x\n", addr, uint16(word))
		if err != nil {
			return
		}
	}

	err = bw.Flush()
	return
}

func writePairs(w io.Writer, pairs []Pair) (err error) {
	bw := bufio.NewWriter(w)
	for _, pair := range pairs {
		_, err = fmt.Fprintf(bw, "%v %04d\n", pair.Name, pair.Address)
		if err != nil {
			return
		}
	}
	err = bw.Flush()
	return
}

// WriteEntries writes the entry listing.
func (obj *Object) WriteEntries(w io.Writer) error {
	return writePairs(w, obj.Entries)
}

// WriteExternals writes the external usage listing.
func (obj *Object) WriteExternals(w io.Writer) error {
	return writePairs(w, obj.Externals)
}

// WriteExpanded writes macro expanded source lines.
func WriteExpanded(w io.Writer, lines []source.Line) (err error) {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		_, err = fmt.Fprintln(bw, line.Raw)
		if err != nil {
			return
		}
	}
	err = bw.Flush()
	return
}
