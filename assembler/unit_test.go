package assembler

import (
	"errors"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/twopass/config"
	"github.com/ezrec/twopass/diag"
	"github.com/ezrec/twopass/isa"
	"github.com/ezrec/twopass/macro"
	"github.com/ezrec/twopass/output"
	"github.com/ezrec/twopass/source"
	"github.com/ezrec/twopass/symbol"
)

func assemble(program []string) (u *Unit, obj *output.Object, err error) {
	u = NewUnit("test", config.Default())
	obj, err = u.Assemble(strings.NewReader(strings.Join(program, "\n")))
	return
}

func TestAssembleMacroExample(t *testing.T) {
	assert := assert.New(t)

	u, obj, err := assemble([]string{
		"mcro M",
		"add r1,r2",
		"mcroend",
		"M",
		"stop",
	})
	assert.NoError(err)
	assert.Empty(u.Diag.All())
	assert.Equal([]isa.Word{0x2ce8, 0xf000}, obj.Code)
	assert.Empty(obj.Data)
	assert.Equal(100, obj.Base)
	assert.Equal(2, len(u.Expanded))
}

var programFull = []string{
	"; full program",
	".extern X",
	".entry MAIN",
	"MAIN: mov #-1, X",
	"      lea STR, r3",
	"      jmp *r2",
	"",
	"      cmp X, LEN ; comment",
	"      stop",
	"STR:  .string \"ab\"",
	"LEN:  .data 3",
}

func TestAssembleFull(t *testing.T) {
	assert := assert.New(t)

	u, obj, err := assemble(programFull)
	assert.NoError(err)
	assert.True(u.Diag.Eligible())

	assert.Equal([]isa.Word{
		0x0020, 0xfffc, 0x0001, // mov #-1, X
		0x446c, 0x01ba, // lea STR, r3
		0x9048,                 // jmp *r2
		0x1420, 0x0001, 0x01c6, // cmp X, LEN
		0xf000, // stop
	}, obj.Code)
	assert.Equal([]isa.Word{'a', 'b', 0, 3}, obj.Data)

	assert.Equal([]output.Pair{{Name: "MAIN", Address: 100}}, obj.Entries)
	assert.Equal([]output.Pair{{Name: "X", Address: 102}, {Name: "X", Address: 107}}, obj.Externals)

	sym, ok := u.Symbols.Lookup("STR")
	assert.True(ok)
	assert.Equal(110, sym.Address)
	assert.Equal(symbol.KIND_DATA, sym.Kind)

	sym, ok = u.Symbols.Lookup("MAIN")
	assert.True(ok)
	assert.Equal(symbol.KIND_ENTRY_RESOLVED, sym.Kind)
	assert.Equal(symbol.REGION_CODE, sym.Region)
}

func TestLabelAddress(t *testing.T) {
	assert := assert.New(t)

	u, _, err := assemble([]string{
		"A: .data 7, 8",
		"B: inc r1",
		"C: .string \"xy\"",
		"D: mov A, B",
		"E: .data -1",
		"F: rts",
	})
	assert.NoError(err)

	// Code labels get the IC before their line, data labels the DC
	// before their line, moved after the final IC.
	expected := map[string]int{
		"B": 100,
		"D": 101,
		"F": 104,
		"A": 105 + 0,
		"C": 105 + 2,
		"E": 105 + 5,
	}
	for name, address := range expected {
		sym, ok := u.Symbols.Lookup(name)
		assert.True(ok, name)
		assert.Equal(address, sym.Address, name)
	}
}

func TestDataWordCount(t *testing.T) {
	assert := assert.New(t)

	u, obj, err := assemble([]string{
		"S: .string \"abc\"",
		"D: .data 1,-2,3",
		".string \"\"",
		".data +32767, -32768",
	})
	assert.NoError(err)
	assert.Equal(4+3+1+2, obj.DataSize())

	words := make([]int, 0, len(u.Statements))
	for _, stmt := range u.Statements {
		words = append(words, stmt.Words)
	}
	assert.Equal([]int{4, 3, 1, 2}, words)
	assert.Equal([]isa.Word{'a', 'b', 'c', 0, 1, 0xfffe, 3, 0, 0x7fff, 0x8000}, obj.Data)
}

func TestImageSize(t *testing.T) {
	assert := assert.New(t)

	u, obj, err := assemble([]string{
		"mov #1, r2",
		"cmp #-3, #4",
		"add *r1, r7",
		"prn #5",
		"not *r4",
		".data 1,2,3,4",
		"rts",
		".string \"hello\"",
		"stop",
	})
	assert.NoError(err)

	total := 0
	for _, stmt := range u.Statements {
		total += stmt.Words
	}

	size := 0
	for range obj.Image() {
		size++
	}
	assert.Equal(total, size)
	assert.Equal(2+3+1+2+1+1+1, obj.CodeSize())
}

func TestResolveOrder(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".extern E1",
		".extern E2",
		"L1: mov E1, L2",
		"L2: lea L3, E2",
		"    jsr E1",
		"    bne L1",
		"    cmp E2, E1",
		"L3: .data 5",
	}

	prepare := func() *Unit {
		u := NewUnit("order", config.Default())
		lines, err := source.Read(strings.NewReader(strings.Join(program, "\n")))
		assert.NoError(err)
		u.Preprocess(lines)
		assert.NoError(u.Scan(u.Expanded))
		assert.NoError(u.Relocate())
		return u
	}

	base := prepare()
	assert.NoError(base.Resolve(base.References))
	expected, err := base.Object()
	assert.NoError(err)

	rng := rand.New(rand.NewSource(1))
	for range 20 {
		u := prepare()
		refs := slices.Clone(u.References)
		rng.Shuffle(len(refs), func(i, j int) {
			refs[i], refs[j] = refs[j], refs[i]
		})
		assert.NoError(u.Resolve(refs))
		obj, err := u.Object()
		assert.NoError(err)
		assert.Equal(expected.Code, obj.Code)
		assert.Equal(expected.Externals, obj.Externals)
	}
}

func TestRelocateOnce(t *testing.T) {
	assert := assert.New(t)

	u := NewUnit("once", config.Default())
	assert.NoError(u.Scan(nil))
	assert.NoError(u.Relocate())
	assert.ErrorIs(u.Relocate(), symbol.ErrAlreadyRelocated)
}

func TestStageOrder(t *testing.T) {
	assert := assert.New(t)

	u := NewUnit("order", config.Default())
	_, err := u.Object()
	assert.ErrorIs(err, ErrUnresolved)

	u.Diag.Error(ErrMemoryFull)
	assert.ErrorIs(u.Resolve(nil), ErrNotEligible)

	_, err = u.Object()
	var uf *ErrUnitFailed
	assert.True(errors.As(err, &uf))
}

func TestNameCollision(t *testing.T) {
	assert := assert.New(t)

	table := [][]string{
		{"M: stop", "mcro M", "rts", "mcroend"},
		{"mcro M", "rts", "mcroend", "M: stop"},
		{".extern M", "mcro M", "rts", "mcroend", "stop"},
		{"mcro M", "rts", "mcroend", ".extern M"},
		{"mcro M", "rts", "mcroend", ".entry M"},
		{".entry M", "mcro M", "rts", "mcroend", "M: stop"},
	}

	for _, program := range table {
		name := strings.Join(program, "|")
		u, obj, err := assemble(program)
		assert.Nil(obj, name)
		assert.Len(u.Diag.Errors(), 1, name)

		var uf *ErrUnitFailed
		assert.True(errors.As(err, &uf), name)

		var taken *macro.ErrNameTaken
		var ismacro ErrMacroName
		assert.True(errors.As(err, &taken) || errors.As(err, &ismacro), name)
	}
}

func TestEntryUndefined(t *testing.T) {
	assert := assert.New(t)

	u, obj, err := assemble([]string{".entry X", "stop"})
	assert.Nil(obj)
	assert.Len(u.Diag.Errors(), 1)

	var eu *symbol.ErrEntryUndefined
	assert.True(errors.As(err, &eu))
	assert.Equal("X", eu.Name)
	assert.Equal(1, eu.LineNo)
}

func TestEntryOrder(t *testing.T) {
	assert := assert.New(t)

	for _, program := range [][]string{
		{".entry L", "L: stop"},
		{"L: stop", ".entry L"},
	} {
		_, obj, err := assemble(program)
		assert.NoError(err)
		assert.Equal([]output.Pair{{Name: "L", Address: 100}}, obj.Entries)
	}
}

func TestSymbolUndefined(t *testing.T) {
	assert := assert.New(t)

	u, obj, err := assemble([]string{"jmp NOWHERE", "stop"})
	assert.Nil(obj)
	assert.True(u.ExpandedValid())

	var su ErrSymbolUndefined
	assert.True(errors.As(err, &su))
	assert.Equal("NOWHERE", string(su))

	var se *diag.ErrSyntax
	assert.True(errors.As(err, &se))
	assert.Equal(1, se.LineNo)
}

func TestLabelIgnored(t *testing.T) {
	assert := assert.New(t)

	u, obj, err := assemble([]string{"L: .extern X", "jmp X"})
	assert.NoError(err)
	assert.Len(u.Diag.Warnings(), 1)
	assert.False(u.Symbols.Has("L"))

	var li ErrLabelIgnored
	assert.True(errors.As(u.Diag.Warnings()[0], &li))
	assert.Equal([]output.Pair{{Name: "X", Address: 101}}, obj.Externals)
}

func TestScanErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line  string
		words int // Code and data words still taken.
		check func(err error) bool
	}){
		{"frob r1", 0, func(err error) bool { var e ErrStatementUnknown; return errors.As(err, &e) }},
		{"L :stop", 1, func(err error) bool { var e ErrLabelColon; return errors.As(err, &e) }},
		{"L:", 0, func(err error) bool { var e ErrLabelEmpty; return errors.As(err, &e) }},
		{"1L: stop", 1, func(err error) bool { var e source.ErrIdentifierStart; return errors.As(err, &e) }},
		{"mov: stop", 1, func(err error) bool { var e isa.ErrReserved; return errors.As(err, &e) }},
		{"mov r1", 1, func(err error) bool { var e *ErrOperandCount; return errors.As(err, &e) }},
		{"stop r1", 1, func(err error) bool { var e *ErrOperandCount; return errors.As(err, &e) }},
		{"mov r1, #3", 2, func(err error) bool { var e *ErrAddressingMode; return errors.As(err, &e) }},
		{"lea #1, r1", 2, func(err error) bool { var e *ErrAddressingMode; return errors.As(err, &e) }},
		{"jmp r1", 1, func(err error) bool { var e *ErrAddressingMode; return errors.As(err, &e) }},
		{"prn #9000", 2, func(err error) bool { var e isa.ErrImmediateRange; return errors.As(err, &e) }},
		{"mov #x, r1", 2, func(err error) bool { var e isa.ErrImmediateSyntax; return errors.As(err, &e) }},
		{"inc *r9", 1, func(err error) bool { var e isa.ErrRegisterInvalid; return errors.As(err, &e) }},
		{"mov r1,", 2, func(err error) bool { return errors.Is(err, isa.ErrOperandMissing) }},
		{".data", 0, func(err error) bool { return errors.Is(err, ErrDataEmpty) }},
		{".data 1, x", 0, func(err error) bool { var e ErrDataValue; return errors.As(err, &e) }},
		{".data 1,,2", 0, func(err error) bool { var e ErrDataValue; return errors.As(err, &e) }},
		{".data 40000", 0, func(err error) bool { var e ErrDataRange; return errors.As(err, &e) }},
		{".string abc", 0, func(err error) bool { return errors.Is(err, ErrStringQuote) }},
		{".string \"abc", 0, func(err error) bool { return errors.Is(err, ErrStringQuote) }},
		{".extern", 0, func(err error) bool { return errors.Is(err, source.ErrIdentifierEmpty) }},
		{".extern X Y", 0, func(err error) bool { var e source.ErrTrailing; return errors.As(err, &e) }},
		{".entry r1", 0, func(err error) bool { var e isa.ErrReserved; return errors.As(err, &e) }},
	}

	for _, entry := range table {
		u := NewUnit("errors", config.Default())
		lines, err := source.Read(strings.NewReader(entry.line))
		assert.NoError(err)
		u.Preprocess(lines)
		assert.NoError(u.Scan(u.Expanded), entry.line)

		errs := u.Diag.Errors()
		assert.Len(errs, 1, entry.line)
		if len(errs) == 1 {
			assert.True(entry.check(errs[0]), "%v: %v", entry.line, errs[0])
		}
		assert.Equal(entry.words, len(u.Code)+len(u.Data), entry.line)
		assert.Equal(100+len(u.Code), u.IC, entry.line)
	}
}

func TestDuplicates(t *testing.T) {
	assert := assert.New(t)

	table := [][]string{
		{"L: stop", "L: rts"},
		{".extern L", "L: stop"},
		{"L: stop", ".extern L"},
		{".extern L", ".extern L"},
		{".extern L", ".entry L"},
		{".entry L", ".entry L", "L: stop"},
		{".entry L", "L: stop", "L: rts"},
	}

	for _, program := range table {
		name := strings.Join(program, "|")
		u, obj, err := assemble(program)
		assert.Nil(obj, name)
		assert.Len(u.Diag.Errors(), 1, name)

		var dup *symbol.ErrDuplicate
		assert.True(errors.As(err, &dup), name)
	}
}

func TestMacroDiagnostic(t *testing.T) {
	assert := assert.New(t)

	u, _, err := assemble([]string{
		"mcro BAD",
		"frob",
		"mcroend",
		"stop",
		"BAD",
	})
	assert.Error(err)
	assert.Len(u.Diag.Errors(), 1)

	var se *diag.ErrSyntax
	assert.True(errors.As(err, &se))
	assert.Equal(2, se.LineNo)

	var me *diag.ErrMacro
	assert.True(errors.As(err, &me))
	assert.Equal("BAD", me.Macro)
	assert.Equal(5, me.LineNo)
}

func TestPreprocessErrorsStillScan(t *testing.T) {
	assert := assert.New(t)

	u, obj, err := assemble([]string{
		"mcroend",
		"frob",
	})
	assert.Nil(obj)
	assert.False(u.ExpandedValid())
	assert.Len(u.Diag.Errors(), 2)

	var uf *ErrUnitFailed
	assert.True(errors.As(err, &uf))
	assert.Equal("test", uf.Name)
}

func TestMemoryFull(t *testing.T) {
	assert := assert.New(t)

	cfg := config.Default()
	cfg.MemorySize = 105

	u := NewUnit("full", cfg)
	_, err := u.Assemble(strings.NewReader("stop\n.data 1,2,3,4,5\n"))

	var fatal *source.ErrFatal
	assert.True(errors.As(err, &fatal))
	assert.ErrorIs(err, ErrMemoryFull)
	assert.Equal(2, fatal.LineNo)
}

func TestReadFatal(t *testing.T) {
	assert := assert.New(t)

	u := NewUnit("huge", config.Default())
	_, err := u.Assemble(strings.NewReader(strings.Repeat("x", 128*1024)))

	var fatal *source.ErrFatal
	assert.True(errors.As(err, &fatal))
}
