package gridhost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gogpu/ggrid"
	"github.com/gogpu/ggrid/source/sqlsource"
	"github.com/gogpu/ggrid/source/xlsxsource"
)

// sizedSource is a row source that can report its own extent.
type sizedSource interface {
	ggrid.SegmentSource
	io.Closer
	Dimensions(ctx context.Context) (rows, cols uint32, err error)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Config returns the grid geometry described by o.
func (o Options) Config() ggrid.Config {
	return ggrid.NewConfig(o.Columns, o.Rows, o.CellWidth, o.CellHeight,
		o.HeaderHeight, o.ViewportWidth, o.ViewportHeight)
}

// Open builds the Controller described by o. For file-backed sources a
// zero Rows or Columns is replaced by the extent the source reports.
// The returned closer releases the source and must be called once the
// controller is no longer used.
func Open(ctx context.Context, o Options, logger *slog.Logger) (*ggrid.Controller, io.Closer, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}

	src, err := openSource(o)
	if err != nil {
		return nil, nil, err
	}
	var (
		rowSource ggrid.SegmentSource = ggrid.SyntheticSource{}
		closer    io.Closer           = nopCloser{}
	)
	if src != nil {
		rowSource, closer = src, src
		if o.Rows == 0 || o.Columns == 0 {
			rows, cols, err := src.Dimensions(ctx)
			if err != nil {
				return nil, nil, errors.Join(fmt.Errorf("gridhost: source dimensions: %w", err), src.Close())
			}
			if o.Rows == 0 {
				o.Rows = rows
			}
			if o.Columns == 0 {
				o.Columns = cols
			}
		}
	}

	ctrl, err := ggrid.NewController(o.Config(), o.SegmentSize,
		ggrid.WithSource(rowSource),
		ggrid.WithLogger(logger))
	if err != nil {
		return nil, nil, errors.Join(err, closer.Close())
	}
	logger.Info("gridhost: grid opened",
		"source", o.Source, "rows", o.Rows, "columns", o.Columns,
		"segmentSize", o.SegmentSize)
	return ctrl, closer, nil
}

func openSource(o Options) (sizedSource, error) {
	switch o.Source {
	case SourceXLSX:
		src, err := xlsxsource.Open(o.Path, o.Sheet, xlsxsource.WithSkipRows(o.SkipRows))
		if err != nil {
			return nil, fmt.Errorf("gridhost: open workbook: %w", err)
		}
		return src, nil
	case SourceSQLite:
		src, err := sqlsource.Open(o.Path, o.Table)
		if err != nil {
			return nil, fmt.Errorf("gridhost: open database: %w", err)
		}
		return src, nil
	}
	return nil, nil
}
