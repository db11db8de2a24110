// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ezrec/twopass/assembler"
	"github.com/ezrec/twopass/batch"
	"github.com/ezrec/twopass/config"
	"github.com/ezrec/twopass/diag"
	"github.com/ezrec/twopass/output"
	"github.com/ezrec/twopass/translate"
)

const (
	COLOUR_RESET   = "\x1b[0m"
	COLOUR_ERROR   = "\x1b[31m"
	COLOUR_WARNING = "\x1b[33m"
)

type options struct {
	config string
	out    string
	jobs   int
	dump   bool
	lang   string
}

func main() {
	var opts options

	cmd := &cobra.Command{
		Use:   "twopass [flags] FILE...",
		Short: "Two pass assembler",
		Long: `Twopass assembles each FILE.as into FILE.ob, with FILE.ent and
FILE.ext listing its entries and uses of external symbols, and FILE.am
holding the macro expanded source.

Files are independent, and are assembled in parallel.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// glog wants to see flag.Parse().
			_ = flag.CommandLine.Parse(nil)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args, os.Stderr)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.config, "config", "", "Starlark configuration file")
	flags.StringVar(&opts.out, "out", ".", "output directory")
	flags.IntVar(&opts.jobs, "jobs", -1, "units assembled in parallel, 0 for one per CPU")
	flags.BoolVar(&opts.dump, "dump", false, "dump the symbols and references of each unit")
	flags.StringVar(&opts.lang, "lang", "", "language of the diagnostics")
	flags.AddGoFlagSet(flag.CommandLine)

	err := cmd.Execute()
	glog.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", cmd.Name(), err)
		os.Exit(1)
	}
}

// sources converts the file arguments to paths below the working directory.
func sources(args []string) (names []string, err error) {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	for _, arg := range args {
		name := arg
		if filepath.IsAbs(name) {
			name, err = filepath.Rel(cwd, name)
			if err != nil {
				return
			}
		}
		name = filepath.ToSlash(filepath.Clean(name))
		if strings.HasPrefix(name, "../") || name == ".." {
			err = fmt.Errorf("%v: outside of the working directory", arg)
			return
		}
		names = append(names, name)
	}

	return
}

func run(opts options, args []string, stderr io.Writer) (err error) {
	if len(opts.lang) != 0 {
		err = translate.SetLanguage(opts.lang)
		if err != nil {
			return
		}
	}

	cfg := config.Default()
	if len(opts.config) != 0 {
		cfg, err = config.Load(opts.config, nil)
		if err != nil {
			return
		}
	}
	if opts.jobs >= 0 {
		cfg.Jobs = opts.jobs
	}

	names, err := sources(args)
	if err != nil {
		return
	}

	err = os.MkdirAll(opts.out, 0o755)
	if err != nil {
		return
	}

	colour := false
	if file, ok := stderr.(*os.File); ok {
		colour = term.IsTerminal(int(file.Fd()))
	}

	printer := pp.New()
	printer.SetOutput(stderr)
	printer.SetColoringEnabled(colour)

	results := batch.Run(cfg, os.DirFS("."), output.DirFS(opts.out), names)

	failed := 0
	for _, result := range results {
		if result.Unit != nil {
			report(stderr, result.Unit.Name, result.Unit.Diag.All(), colour)
			if opts.dump {
				printer.Println(result.Unit.Symbols.All())
				printer.Println(result.Unit.References)
			}
		}
		if result.Err != nil {
			failed++
			var uf *assembler.ErrUnitFailed
			if !errors.As(result.Err, &uf) {
				fmt.Fprintf(stderr, "%v: %v\n", result.Name, result.Err)
			}
		}
	}

	if failed != 0 {
		err = fmt.Errorf("%d of %d units failed", failed, len(results))
	}

	return
}

// report prints diagnostics as 'FILE:LINE: error: message'.
func report(w io.Writer, filename string, items []diag.Diagnostic, colour bool) {
	for _, item := range items {
		severity, code := "error", COLOUR_ERROR
		if item.Severity == diag.SEVERITY_WARNING {
			severity, code = "warning", COLOUR_WARNING
		}
		if colour {
			severity = code + severity + COLOUR_RESET
		}

		var se *diag.ErrSyntax
		if errors.As(item.Err, &se) {
			fmt.Fprintf(w, "%v:%d: %v: %v\n", filename, se.LineNo, severity, se.Err)
		} else {
			fmt.Fprintf(w, "%v: %v: %v\n", filename, severity, item.Err)
		}
	}
}
