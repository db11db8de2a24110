// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package assembler translates one source unit into an object image.
//
// A unit goes through four stages, each a method of [Unit]:
//
//   - Preprocess expands macros.
//   - Scan (pass 1) classifies every line, assigns addresses to labels
//     and encodes everything that does not depend on a symbol.
//   - Relocate moves the data labels after the final code address.
//   - Resolve (pass 2) fills in the words that reference symbols.
//
// Errors are collected in the unit's diagnostics list rather than
// returned, so that every problem of a unit is reported in one run. A
// unit with any error never reaches pass 2, and never produces an object.
package assembler
