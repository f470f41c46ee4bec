// Package xlsxsource loads grid rows from a worksheet of an XLSX workbook.
//
// Worksheet row r (after any skipped header rows) becomes grid row r, and
// the cell in worksheet column c becomes the value of ggrid.ColumnKey(c).
// Empty cells are left out of the row so they render as the empty string.
//
//	src, err := xlsxsource.Open("report.xlsx", "Sheet1", xlsxsource.WithSkipRows(1))
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	rows, cols, err := src.Dimensions(ctx)
//	cfg := ggrid.NewConfig(cols, rows, 80, 24, 30, 800, 600)
//	ctrl, err := ggrid.NewController(cfg, 500, ggrid.WithSource(src))
package xlsxsource

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/gogpu/ggrid"
)

// ErrSheetNotFound is returned by Open when the workbook has no sheet of
// the requested name.
var ErrSheetNotFound = errors.New("xlsxsource: sheet not found")

// ctxCheckInterval is how many worksheet rows are scanned between context
// checks.
const ctxCheckInterval = 1024

// Option configures a Source.
type Option func(*Source)

// WithSkipRows skips the first n worksheet rows, typically a header row.
func WithSkipRows(n uint32) Option {
	return func(s *Source) {
		s.skip = n
	}
}

// Source is a ggrid.SegmentSource reading one worksheet.
//
// Rows are streamed, so each LoadRows call scans the worksheet from the top
// to the requested start row. The scan is bounded by the XLSX row limit.
// Source serializes reads and is safe for concurrent use.
type Source struct {
	mu    sync.Mutex
	file  *excelize.File
	sheet string
	skip  uint32

	// Worksheet dimensions, valid once scanned is set.
	scanned bool
	rows    uint32
	cols    uint32
}

var _ ggrid.SegmentSource = (*Source)(nil)

// Open opens the workbook at path and selects sheet. An empty sheet name
// selects the active sheet.
func Open(path, sheet string, opts ...Option) (*Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsxsource: open %s: %w", path, err)
	}
	s, err := New(f, sheet, opts...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an already opened workbook. Closing the Source closes f.
func New(f *excelize.File, sheet string, opts ...Option) (*Source, error) {
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	if !slices.Contains(f.GetSheetList(), sheet) {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}
	s := &Source{file: f, sheet: sheet}
	for _, opt := range opts {
		opt(s)
	}
	ggrid.Logger().Debug("xlsxsource: sheet opened", "sheet", sheet, "skip", s.skip)
	return s, nil
}

// Sheet returns the name of the worksheet being read.
func (s *Source) Sheet() string {
	return s.sheet
}

// Dimensions returns the number of data rows and the widest row's column
// count. The worksheet is scanned on the first successful call; later
// calls return the cached result.
func (s *Source) Dimensions(ctx context.Context) (rows, cols uint32, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.scanned {
		if s.rows, s.cols, err = s.scanDimensionsLocked(ctx); err != nil {
			return 0, 0, err
		}
		s.scanned = true
	}
	return s.rows, s.cols, nil
}

func (s *Source) scanDimensionsLocked(ctx context.Context) (uint32, uint32, error) {
	it, err := s.file.Rows(s.sheet)
	if err != nil {
		return 0, 0, fmt.Errorf("xlsxsource: read %s: %w", s.sheet, err)
	}
	defer it.Close()

	var n uint64
	var cols int
	for it.Next() {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, 0, err
			}
		}
		n++
		cells, err := it.Columns()
		if err != nil {
			return 0, 0, fmt.Errorf("xlsxsource: read %s row %d: %w", s.sheet, n, err)
		}
		if n > uint64(s.skip) {
			cols = max(cols, len(cells))
		}
	}
	if err := it.Error(); err != nil {
		return 0, 0, fmt.Errorf("xlsxsource: read %s: %w", s.sheet, err)
	}

	data := n - min(n, uint64(s.skip))
	return uint32(min(data, math.MaxUint32)), uint32(cols), nil
}

// LoadRows implements ggrid.SegmentSource. Rows past the end of the
// worksheet are not returned.
func (s *Source) LoadRows(ctx context.Context, start, end, columns uint32) ([]ggrid.Row, error) {
	if end <= start {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.file.Rows(s.sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsxsource: read %s: %w", s.sheet, err)
	}
	defer it.Close()

	first := uint64(start) + uint64(s.skip)
	last := uint64(end) + uint64(s.skip)
	out := make([]ggrid.Row, 0, end-start)

	for i := uint64(0); i < last && it.Next(); i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		cells, err := it.Columns()
		if err != nil {
			return nil, fmt.Errorf("xlsxsource: read %s row %d: %w", s.sheet, i+1, err)
		}
		if i >= first {
			out = append(out, toRow(cells, columns))
		}
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("xlsxsource: read %s: %w", s.sheet, err)
	}
	return out, nil
}

// Close releases the workbook.
func (s *Source) Close() error {
	return s.file.Close()
}

func toRow(cells []string, columns uint32) ggrid.Row {
	n := min(uint64(len(cells)), uint64(columns))
	row := make(ggrid.Row, n)
	for c := uint64(0); c < n; c++ {
		if cells[c] != "" {
			row[ggrid.ColumnKey(uint32(c))] = cells[c]
		}
	}
	return row
}
