package ggrid

import (
	"context"
	"fmt"
)

// Segment is a contiguous run of rows materialized together. Segment i
// holds rows [i*segmentSize, min((i+1)*segmentSize, rows)).
//
// A Segment is immutable once loaded.
type Segment struct {
	// Index is the segment index, floor(Start / segmentSize).
	Index uint32
	// Start is the grid index of Rows[0].
	Start uint32
	// Rows are the segment's rows in grid order.
	Rows []Row
}

// Len returns the number of rows in the segment. The final segment of a
// grid may hold fewer than segmentSize rows.
func (s *Segment) Len() int {
	return len(s.Rows)
}

// Row returns the row at offset i within the segment. The second result is
// false when i is past the end of an under-full segment.
func (s *Segment) Row(i uint32) (Row, bool) {
	if uint64(i) >= uint64(len(s.Rows)) {
		return nil, false
	}
	return s.Rows[i], true
}

// SegmentSource produces the rows backing a segment.
//
// LoadRows returns the rows [start, end) of a grid with the given number of
// columns, in order. Implementations backed by remote or file storage may
// block; they should honor ctx. The returned rows become owned by the cache
// and must not be modified afterwards.
type SegmentSource interface {
	LoadRows(ctx context.Context, start, end, columns uint32) ([]Row, error)
}

// SegmentSourceFunc adapts a function to the SegmentSource interface.
type SegmentSourceFunc func(ctx context.Context, start, end, columns uint32) ([]Row, error)

// LoadRows implements SegmentSource.
func (f SegmentSourceFunc) LoadRows(ctx context.Context, start, end, columns uint32) ([]Row, error) {
	return f(ctx, start, end, columns)
}

// SyntheticSource generates placeholder rows whose cell text is derived
// from the cell coordinates alone: row r, column c holds "Data {r+1}-{c+1}".
// It stands in for a paging or query service.
type SyntheticSource struct{}

// LoadRows implements SegmentSource. It never fails.
func (SyntheticSource) LoadRows(_ context.Context, start, end, columns uint32) ([]Row, error) {
	if end < start {
		return nil, nil
	}
	rows := make([]Row, 0, end-start)
	for i := start; i < end; i++ {
		row := make(Row, columns)
		for j := uint32(0); j < columns; j++ {
			row[ColumnKey(j)] = SyntheticCell(i, j)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SyntheticCell returns the placeholder text SyntheticSource stores for the
// cell at row, col.
func SyntheticCell(row, col uint32) string {
	return fmt.Sprintf("Data %d-%d", uint64(row)+1, uint64(col)+1)
}
