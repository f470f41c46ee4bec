// Package sqlsource loads grid rows from a SQLite table.
//
// Rows are paged with LIMIT/OFFSET in rowid order. The j-th selected
// column becomes the value of ggrid.ColumnKey(j); NULL values are left out
// of the row so they render as the empty string.
//
//	src, err := sqlsource.Open("file:orders.db?mode=ro", "orders")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	rows, cols, err := src.Dimensions(ctx)
package sqlsource

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	_ "github.com/glebarez/go-sqlite" // registers the "sqlite" driver
	"github.com/jmoiron/sqlx"

	"github.com/gogpu/ggrid"
)

// DriverName is the database/sql driver used by Open.
const DriverName = "sqlite"

// ErrInvalidIdentifier is returned when a table or column name is not a
// plain SQL identifier.
var ErrInvalidIdentifier = errors.New("sqlsource: invalid identifier")

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Option configures a Source.
type Option func(*Source)

// WithColumns selects and orders the table columns mapped to grid
// columns. By default every column is selected in table order.
func WithColumns(names ...string) Option {
	return func(s *Source) {
		s.columns = names
	}
}

// Source is a ggrid.SegmentSource over one table. It is safe for
// concurrent use.
type Source struct {
	db      *sqlx.DB
	owned   bool
	table   string
	columns []string

	selectQuery string
	countQuery  string
}

var _ ggrid.SegmentSource = (*Source)(nil)

// Open connects to the SQLite database at dsn and reads from table.
func Open(dsn, table string, opts ...Option) (*Source, error) {
	db, err := sqlx.Connect(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlsource: connect: %w", err)
	}
	s, err := New(db, table, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// New reads from table through an existing connection pool. Closing the
// Source leaves db open.
func New(db *sqlx.DB, table string, opts ...Option) (*Source, error) {
	s := &Source{db: db, table: table}
	for _, opt := range opts {
		opt(s)
	}

	if !identRE.MatchString(table) {
		return nil, fmt.Errorf("%w: table %q", ErrInvalidIdentifier, table)
	}
	selectList := "*"
	if len(s.columns) > 0 {
		quoted := make([]string, len(s.columns))
		for i, c := range s.columns {
			if !identRE.MatchString(c) {
				return nil, fmt.Errorf("%w: column %q", ErrInvalidIdentifier, c)
			}
			quoted[i] = `"` + c + `"`
		}
		selectList = strings.Join(quoted, ", ")
	}

	s.selectQuery = fmt.Sprintf(`SELECT %s FROM "%s" ORDER BY rowid LIMIT ? OFFSET ?`, selectList, table)
	s.countQuery = fmt.Sprintf(`SELECT COUNT(*) FROM "%s"`, table)
	return s, nil
}

// Table returns the table being read.
func (s *Source) Table() string {
	return s.table
}

// Count returns the number of rows in the table.
func (s *Source) Count(ctx context.Context) (uint32, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, s.countQuery); err != nil {
		return 0, fmt.Errorf("sqlsource: count %s: %w", s.table, err)
	}
	return uint32(min(max(n, 0), math.MaxUint32)), nil
}

// Dimensions returns the row count and the number of selected columns.
func (s *Source) Dimensions(ctx context.Context) (rows, cols uint32, err error) {
	rows, err = s.Count(ctx)
	if err != nil {
		return 0, 0, err
	}
	if len(s.columns) > 0 {
		return rows, uint32(len(s.columns)), nil
	}

	r, err := s.db.QueryxContext(ctx, s.selectQuery, 0, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("sqlsource: columns of %s: %w", s.table, err)
	}
	defer r.Close()
	names, err := r.Columns()
	if err != nil {
		return 0, 0, fmt.Errorf("sqlsource: columns of %s: %w", s.table, err)
	}
	return rows, uint32(len(names)), nil
}

// LoadRows implements ggrid.SegmentSource.
func (s *Source) LoadRows(ctx context.Context, start, end, columns uint32) ([]ggrid.Row, error) {
	if end <= start {
		return nil, nil
	}
	r, err := s.db.QueryxContext(ctx, s.selectQuery, int64(end-start), int64(start))
	if err != nil {
		return nil, fmt.Errorf("sqlsource: query %s rows [%d, %d): %w", s.table, start, end, err)
	}
	defer r.Close()

	out := make([]ggrid.Row, 0, end-start)
	for r.Next() {
		vals, err := r.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("sqlsource: scan %s row %d: %w", s.table, int(start)+len(out), err)
		}
		out = append(out, toRow(vals, columns))
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("sqlsource: query %s: %w", s.table, err)
	}

	ggrid.Logger().Debug("sqlsource: rows loaded", "table", s.table, "start", start, "rows", len(out))
	return out, nil
}

// Close closes the connection pool if it was opened by Open.
func (s *Source) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

func toRow(vals []any, columns uint32) ggrid.Row {
	n := min(uint64(len(vals)), uint64(columns))
	row := make(ggrid.Row, n)
	for j := uint64(0); j < n; j++ {
		if v, ok := formatValue(vals[j]); ok {
			row[ggrid.ColumnKey(uint32(j))] = v
		}
	}
	return row
}

// formatValue renders a scanned SQLite value as cell text. The second
// result is false for NULL.
func formatValue(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case []byte:
		return string(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(x), true
	case time.Time:
		return x.Format(time.RFC3339), true
	default:
		return fmt.Sprint(x), true
	}
}
