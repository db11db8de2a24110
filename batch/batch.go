// Package batch assembles independent source units in parallel.
package batch

import (
	"io/fs"
	"runtime"
	"strings"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/ezrec/twopass/assembler"
	"github.com/ezrec/twopass/config"
	"github.com/ezrec/twopass/output"
)

// Result of assembling one unit.
type Result struct {
	Name   string          // Stem of the unit, without the source suffix.
	Unit   *assembler.Unit // State of the unit, nil if it could not be opened.
	Object *output.Object  // Assembled image, nil on failure.
	Err    error           // Why the unit failed.
}

// Stem removes the source suffix from a unit name, if present.
func Stem(name string, cfg config.Config) string {
	return strings.TrimSuffix(name, cfg.SourceSuffix)
}

// Run assembles every named unit from in, writing the listings of the
// successful ones to out. Each unit is independent: a failing unit never
// affects another. Results are in the order of names.
func Run(cfg config.Config, in fs.FS, out output.CreateFS, names []string) (results []Result) {
	results = make([]Result, len(names))

	jobs := cfg.Jobs
	if jobs == 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var group errgroup.Group
	group.SetLimit(jobs)

	for n, name := range names {
		group.Go(func() error {
			results[n] = runUnit(cfg, in, out, Stem(name, cfg))
			return nil
		})
	}

	_ = group.Wait()

	return
}

func runUnit(cfg config.Config, in fs.FS, out output.CreateFS, stem string) (result Result) {
	result.Name = stem
	filename := stem + cfg.SourceSuffix

	file, err := in.Open(filename)
	if err != nil {
		result.Err = err
		return
	}
	defer file.Close()

	unit := assembler.NewUnit(filename, cfg)
	result.Unit = unit

	obj, err := unit.Assemble(file)

	if cfg.WriteExpanded && unit.ExpandedValid() && unit.Expanded != nil {
		werr := output.EmitExpanded(out, stem, unit.Expanded, cfg)
		if werr != nil && err == nil {
			err = werr
		}
	}

	if err != nil {
		glog.V(1).Infof("%v: failed: %d errors", filename, len(unit.Diag.Errors()))
		result.Err = err
		return
	}

	err = output.Emit(out, stem, obj, cfg)
	if err != nil {
		result.Err = err
		return
	}

	glog.V(1).Infof("%v: %d code words, %d data words", filename, obj.CodeSize(), obj.DataSize())
	result.Object = obj
	return
}
