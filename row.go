package ggrid

import (
	"maps"
	"strconv"
)

// columnKeyPrefix prefixes every column key.
const columnKeyPrefix = "col_"

// Row is one record of the grid: a mapping from column key to cell text.
// Keys are produced by ColumnKey; a column without an entry renders empty.
type Row map[string]string

// ColumnKey returns the key of column col, "col_" followed by the
// zero-based column index.
func ColumnKey(col uint32) string {
	return columnKeyPrefix + strconv.FormatUint(uint64(col), 10)
}

// Cell returns the text of column col, or "" when the row has no value for
// it.
func (r Row) Cell(col uint32) string {
	return r[ColumnKey(col)]
}

// Lookup returns the text of column col and whether it is present.
func (r Row) Lookup(col uint32) (string, bool) {
	v, ok := r[ColumnKey(col)]
	return v, ok
}

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}
