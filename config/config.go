// Package config loads assembler settings from a Starlark file.
//
// A configuration file is a Starlark program whose top level assignments
// override the defaults:
//
//	base_address = DEFAULT_BASE_ADDRESS
//	memory_size = 4096
//	object_suffix = ".obj"
//	write_expanded = False
package config

import (
	"io"
	"maps"
	"slices"

	"github.com/golang/glog"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Config holds the settings of an assembly run.
type Config struct {
	BaseAddress     int    // Address of the first code word.
	MemorySize      int    // Number of addressable words.
	MaxLine         int    // Maximum significant characters per line.
	SourceSuffix    string // Suffix of source units.
	ExpandedSuffix  string // Suffix of the macro expanded source.
	ObjectSuffix    string // Suffix of the memory image listing.
	EntriesSuffix   string // Suffix of the entries listing.
	ExternalsSuffix string // Suffix of the externals listing.
	WriteExpanded   bool   // Write the macro expanded source.
	Jobs            int    // Units assembled in parallel, 0 for one per CPU.
}

const (
	DEFAULT_BASE_ADDRESS = 100
	DEFAULT_MEMORY_SIZE  = 4096
	DEFAULT_MAX_LINE     = 80
	MAX_MEMORY_SIZE      = 1 << 13 // Addresses must fit a 14 bit signed operand.
)

// Default returns the built in configuration.
func Default() Config {
	return Config{
		BaseAddress:     DEFAULT_BASE_ADDRESS,
		MemorySize:      DEFAULT_MEMORY_SIZE,
		MaxLine:         DEFAULT_MAX_LINE,
		SourceSuffix:    ".as",
		ExpandedSuffix:  ".am",
		ObjectSuffix:    ".ob",
		EntriesSuffix:   ".ent",
		ExternalsSuffix: ".ext",
		WriteExpanded:   true,
	}
}

// Validate checks that the settings are usable.
func (cfg Config) Validate() (err error) {
	switch {
	case cfg.BaseAddress < 0:
		err = ErrValueRange("base_address")
	case cfg.MemorySize <= cfg.BaseAddress, cfg.MemorySize > MAX_MEMORY_SIZE:
		err = ErrValueRange("memory_size")
	case cfg.MaxLine <= 0:
		err = ErrValueRange("max_line")
	case cfg.Jobs < 0:
		err = ErrValueRange("jobs")
	}
	return
}

type field struct {
	integer *int
	text    *string
	boolean *bool
}

func (cfg *Config) fields() map[string]field {
	return map[string]field{
		"base_address":     {integer: &cfg.BaseAddress},
		"memory_size":      {integer: &cfg.MemorySize},
		"max_line":         {integer: &cfg.MaxLine},
		"jobs":             {integer: &cfg.Jobs},
		"source_suffix":    {text: &cfg.SourceSuffix},
		"expanded_suffix":  {text: &cfg.ExpandedSuffix},
		"object_suffix":    {text: &cfg.ObjectSuffix},
		"entries_suffix":   {text: &cfg.EntriesSuffix},
		"externals_suffix": {text: &cfg.ExternalsSuffix},
		"write_expanded":   {boolean: &cfg.WriteExpanded},
	}
}

// Load evaluates a Starlark configuration. src may be nil, a string,
// a []byte or an io.Reader; if nil the file is read from filename.
func Load(filename string, src any) (cfg Config, err error) {
	cfg = Default()

	if reader, ok := src.(io.Reader); ok {
		src, err = io.ReadAll(reader)
		if err != nil {
			return
		}
	}

	predeclared := starlark.StringDict{
		"DEFAULT_BASE_ADDRESS": starlark.MakeInt(DEFAULT_BASE_ADDRESS),
		"DEFAULT_MEMORY_SIZE":  starlark.MakeInt(DEFAULT_MEMORY_SIZE),
		"DEFAULT_MAX_LINE":     starlark.MakeInt(DEFAULT_MAX_LINE),
	}

	thread := starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			glog.Infof("%v: %v", filename, msg)
		},
	}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, &thread, filename, src, predeclared)
	if err != nil {
		err = &ErrConfig{Filename: filename, Err: err}
		return
	}

	fields := cfg.fields()
	for _, key := range slices.Sorted(maps.Keys(globals)) {
		value := globals[key]
		if _, ok := value.(*starlark.Function); ok {
			// Helpers are allowed.
			continue
		}
		fld, ok := fields[key]
		if !ok {
			err = &ErrConfig{Filename: filename, Err: ErrKeyUnknown(key)}
			return
		}
		err = fld.set(key, value)
		if err != nil {
			err = &ErrConfig{Filename: filename, Err: err}
			return
		}
	}

	err = cfg.Validate()
	if err != nil {
		err = &ErrConfig{Filename: filename, Err: err}
	}

	return
}

func (fld field) set(key string, value starlark.Value) (err error) {
	switch {
	case fld.integer != nil:
		var v int
		err = starlark.AsInt(value, &v)
		if err != nil {
			err = &ErrValueType{Key: key, Want: "int", Got: value.Type()}
			return
		}
		*fld.integer = v
	case fld.text != nil:
		v, ok := starlark.AsString(value)
		if !ok {
			err = &ErrValueType{Key: key, Want: "string", Got: value.Type()}
			return
		}
		*fld.text = v
	case fld.boolean != nil:
		v, ok := value.(starlark.Bool)
		if !ok {
			err = &ErrValueType{Key: key, Want: "bool", Got: value.Type()}
			return
		}
		*fld.boolean = bool(v)
	}
	return
}
