// internal/timings/record.go
package timings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
)

// Column positions in a timings row. Columns 2 and 3 are present in the
// file but carry nothing the report uses.
const (
	colCompiler = 0
	colVersion  = 1
	colVariant  = 4
	colThreads  = 5
	colSeconds  = 6

	minColumns = colSeconds + 1
)

var (
	// ErrShortRow is returned for rows with fewer than seven columns.
	ErrShortRow = errors.New("short row")
	// ErrEmptyField is returned when a grouping key is blank after trimming.
	ErrEmptyField = errors.New("empty field")
	// ErrBadThreads is returned when the thread count is not a whole number.
	ErrBadThreads = errors.New("bad thread count")
	// errFractional marks a thread count such as 2.5.
	errFractional = errors.New("not a whole number")
	// ErrBadSeconds is returned when the elapsed time is not a number.
	ErrBadSeconds = errors.New("bad elapsed time")
)

// Record is one schema-checked row of the timings file.
type Record struct {
	Compiler string  `json:"compiler" yaml:"compiler"`
	Version  string  `json:"version" yaml:"version"`
	Variant  string  `json:"variant" yaml:"variant"`
	Threads  int     `json:"threads" yaml:"threads"`
	Seconds  float64 `json:"seconds" yaml:"seconds"`
	// Line is the 1-based line the row was read from.
	Line int `json:"line" yaml:"line"`
}

// RowError describes a row that did not match the column schema.
type RowError struct {
	Line   int
	Column int
	Kind   error
	Err    error
}

func (e *RowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d, column %d: %v: %v", e.Line, e.Column, e.Kind, e.Err)
	}
	return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Kind)
}

// Unwrap exposes the error kind so callers can match it with errors.Is.
func (e *RowError) Unwrap() error { return e.Kind }

// Ingest is the result of reading a timings file: the rows that parsed and
// the rows that were skipped.
type Ingest struct {
	Records []Record
	Skipped []*RowError
}

// ReadOptions controls how rows that fail the schema are treated.
type ReadOptions struct {
	// Strict turns the first schema failure into a returned error.
	Strict bool
	// Logger receives one warning per skipped row. Nil uses slog.Default().
	Logger *slog.Logger
}

// ReadFile opens path and reads it with Read.
func ReadFile(path string, opts ReadOptions) (*Ingest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open timings file: %w", err)
	}
	defer f.Close()

	in, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return in, nil
}

// Read parses comma-delimited timings rows from r. There is no header;
// lines starting with '#' are comments. Rows that fail the schema are
// logged and skipped unless opts.Strict is set.
func Read(r io.Reader, opts ReadOptions) (*Ingest, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	in := &Ingest{}
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		rec, rowErr := parseRow(fields, line)
		if rowErr != nil {
			if opts.Strict {
				return nil, rowErr
			}
			logger.Warn("skipping malformed row",
				"line", rowErr.Line,
				"column", rowErr.Column,
				"kind", rowErr.Kind.Error(),
			)
			in.Skipped = append(in.Skipped, rowErr)
			continue
		}
		in.Records = append(in.Records, rec)
	}
	return in, nil
}

// parseRow applies the column schema (text, text, -, -, text, number, float).
func parseRow(fields []string, line int) (Record, *RowError) {
	if len(fields) < minColumns {
		return Record{}, &RowError{Line: line, Column: len(fields), Kind: ErrShortRow}
	}

	rec := Record{
		Compiler: strings.TrimSpace(fields[colCompiler]),
		Version:  strings.TrimSpace(fields[colVersion]),
		Variant:  strings.TrimSpace(fields[colVariant]),
		Line:     line,
	}
	if rec.Compiler == "" {
		return Record{}, &RowError{Line: line, Column: colCompiler, Kind: ErrEmptyField}
	}
	if rec.Variant == "" {
		return Record{}, &RowError{Line: line, Column: colVariant, Kind: ErrEmptyField}
	}

	threads, err := parseThreads(strings.TrimSpace(fields[colThreads]))
	if err != nil {
		return Record{}, &RowError{Line: line, Column: colThreads, Kind: ErrBadThreads, Err: err}
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(fields[colSeconds]), 64)
	if err != nil {
		return Record{}, &RowError{Line: line, Column: colSeconds, Kind: ErrBadSeconds, Err: err}
	}

	rec.Threads = threads
	rec.Seconds = seconds
	return rec, nil
}

// parseThreads accepts any numeric literal with an integral value, so
// "8", "8.0" and "8e0" all read as 8.
func parseThreads(field string) (int, error) {
	if n, err := strconv.Atoi(field); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q: %w", field, errFractional)
	}
	if f >= -math.MinInt || f < math.MinInt {
		return 0, fmt.Errorf("%q: %w", field, strconv.ErrRange)
	}
	return int(f), nil
}
