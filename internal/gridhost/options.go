// Package gridhost holds the configuration and wiring shared by the grid
// commands: flag and environment handling, source selection, logging and
// frame composition.
package gridhost

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Source kinds accepted by Options.Source.
const (
	SourceSynthetic = "synthetic"
	SourceXLSX      = "xlsx"
	SourceSQLite    = "sqlite"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "GRID_"

// ErrUnknownSource is returned for a Source that names no known kind.
var ErrUnknownSource = errors.New("gridhost: unknown source")

// Options is the grid configuration of a command.
//
// Columns and Rows of zero mean "take them from the source" for the XLSX
// and SQLite sources.
type Options struct {
	Columns        uint32
	Rows           uint32
	CellWidth      float64
	CellHeight     float64
	HeaderHeight   float64
	ViewportWidth  float64
	ViewportHeight float64
	SegmentSize    uint32

	Source   string
	Path     string
	Sheet    string
	Table    string
	SkipRows uint32

	Ratio   float64
	Verbose bool
}

// Defaults returns the 5 × 1,000,000 synthetic grid with 80 × 24 cells in
// a 400 × 240 viewport.
func Defaults() Options {
	return Options{
		Columns:        5,
		Rows:           1_000_000,
		CellWidth:      80,
		CellHeight:     24,
		HeaderHeight:   30,
		ViewportWidth:  400,
		ViewportHeight: 240,
		SegmentSize:    100,
		Source:         SourceSynthetic,
		Ratio:          1,
	}
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process
// environment without overriding variables already set. A missing file
// is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("gridhost: load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from GRID_* variables found by lookup, such as
// GRID_ROWS or GRID_CELL_WIDTH. Pass os.LookupEnv for the process
// environment.
func (o *Options) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, f := range o.fields() {
		v, ok := lookup(EnvPrefix + f.env)
		if !ok {
			continue
		}
		if err := f.value.Set(v); err != nil {
			return fmt.Errorf("gridhost: %s%s=%q: %w", EnvPrefix, f.env, v, err)
		}
	}
	return nil
}

// Register defines one flag per field on flags, with the current field
// values as defaults.
func (o *Options) Register(flags *flag.FlagSet) {
	for _, f := range o.fields() {
		flags.Var(f.value, f.flag, f.usage)
	}
	flags.BoolVar(&o.Verbose, "v", o.Verbose, "verbose (debug) logging")
}

// EnvFile returns the env file commands load settings from: the value of
// GRID_ENV_FILE, or ".env".
func EnvFile() string {
	if p, ok := os.LookupEnv(EnvPrefix + "ENV_FILE"); ok {
		return p
	}
	return ".env"
}

// LoadOptions resolves Options for a command: defaults, then the env file
// and the process environment, then args parsed by flags. Command-specific
// flags may be defined on flags beforehand.
func LoadOptions(flags *flag.FlagSet, args []string) (Options, error) {
	o := Defaults()
	if err := LoadEnvFile(EnvFile()); err != nil {
		return o, err
	}
	if err := o.ApplyEnv(os.LookupEnv); err != nil {
		return o, err
	}
	o.Register(flags)
	if err := flags.Parse(args); err != nil {
		return o, err
	}
	return o, o.Validate()
}

// Validate checks the source selection.
func (o Options) Validate() error {
	switch o.Source {
	case SourceSynthetic:
	case SourceXLSX:
		if o.Path == "" {
			return errors.New("gridhost: xlsx source needs a path")
		}
	case SourceSQLite:
		if o.Path == "" || o.Table == "" {
			return errors.New("gridhost: sqlite source needs a path and a table")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, o.Source)
	}
	if o.SegmentSize == 0 {
		return errors.New("gridhost: segment size must be positive")
	}
	return nil
}

type field struct {
	flag  string
	env   string
	usage string
	value flag.Value
}

func (o *Options) fields() []field {
	return []field{
		{"columns", "COLUMNS", "number of columns (0: from source)", (*uint32Value)(&o.Columns)},
		{"rows", "ROWS", "number of rows (0: from source)", (*uint32Value)(&o.Rows)},
		{"cell-width", "CELL_WIDTH", "cell width in pixels", (*float64Value)(&o.CellWidth)},
		{"cell-height", "CELL_HEIGHT", "cell height in pixels", (*float64Value)(&o.CellHeight)},
		{"header-height", "HEADER_HEIGHT", "header band height in pixels", (*float64Value)(&o.HeaderHeight)},
		{"width", "VIEWPORT_WIDTH", "viewport width in pixels", (*float64Value)(&o.ViewportWidth)},
		{"height", "VIEWPORT_HEIGHT", "content viewport height in pixels", (*float64Value)(&o.ViewportHeight)},
		{"segment", "SEGMENT_SIZE", "rows per cached segment", (*uint32Value)(&o.SegmentSize)},
		{"source", "SOURCE", "row source: synthetic, xlsx or sqlite", (*stringValue)(&o.Source)},
		{"path", "PATH", "workbook or database path", (*stringValue)(&o.Path)},
		{"sheet", "SHEET", "worksheet name (default: active sheet)", (*stringValue)(&o.Sheet)},
		{"table", "TABLE", "database table", (*stringValue)(&o.Table)},
		{"skip", "SKIP_ROWS", "leading worksheet rows to skip", (*uint32Value)(&o.SkipRows)},
		{"ratio", "PIXEL_RATIO", "device pixel ratio", (*float64Value)(&o.Ratio)},
	}
}

type uint32Value uint32

func (v *uint32Value) Set(s string) error {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return err
	}
	*v = uint32Value(n)
	return nil
}

func (v *uint32Value) String() string { return strconv.FormatUint(uint64(*v), 10) }

type float64Value float64

func (v *float64Value) Set(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return err
	}
	*v = float64Value(f)
	return nil
}

func (v *float64Value) String() string { return strconv.FormatFloat(float64(*v), 'g', -1, 64) }

type stringValue string

func (v *stringValue) Set(s string) error {
	*v = stringValue(s)
	return nil
}

func (v *stringValue) String() string { return string(*v) }
