// Package diag accumulates the diagnostics of one assembly unit.
//
// Every stage of the assembler records errors here instead of stopping at
// the first one, so that a single run reports every problem in the unit. A
// recorded error closes the gate that lets the unit proceed to later passes.
package diag

import (
	"errors"
)

// Severity of a diagnostic.
type Severity int

const (
	SEVERITY_ERROR   = Severity(0)
	SEVERITY_WARNING = Severity(1)
)

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Severity Severity
	Err      error
}

// List is the ordered diagnostics of a unit.
type List struct {
	items  []Diagnostic
	errors int
}

// Error records an error and closes the gate.
func (dl *List) Error(err error) {
	dl.items = append(dl.items, Diagnostic{Severity: SEVERITY_ERROR, Err: err})
	dl.errors++
}

// Warn records a warning. Warnings never close the gate.
func (dl *List) Warn(err error) {
	dl.items = append(dl.items, Diagnostic{Severity: SEVERITY_WARNING, Err: err})
}

// Eligible reports whether the unit may proceed to the next pass.
func (dl *List) Eligible() bool {
	return dl.errors == 0
}

// All returns every diagnostic in the order reported.
func (dl *List) All() []Diagnostic {
	return dl.items
}

func (dl *List) filter(severity Severity) (errs []error) {
	for _, item := range dl.items {
		if item.Severity == severity {
			errs = append(errs, item.Err)
		}
	}
	return
}

// Errors returns the recorded errors.
func (dl *List) Errors() []error {
	return dl.filter(SEVERITY_ERROR)
}

// Warnings returns the recorded warnings.
func (dl *List) Warnings() []error {
	return dl.filter(SEVERITY_WARNING)
}

// Err joins all recorded errors, or returns nil.
func (dl *List) Err() error {
	return errors.Join(dl.Errors()...)
}
