package gridhost

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func smallOptions() Options {
	o := Defaults()
	o.Rows = 1000
	return o
}

func TestOpenSynthetic(t *testing.T) {
	ctrl, closer, err := Open(context.Background(), smallOptions(), NewLogger(io.Discard, false))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer closer.Close()

	if got := ctrl.Config().Rows; got != 1000 {
		t.Errorf("Rows = %d, want 1000", got)
	}
	if got := ctrl.TotalHeight(); got != 24030 {
		t.Errorf("TotalHeight() = %v, want 24030", got)
	}
}

func TestOpenXLSXDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	f := excelize.NewFile()
	for r := 1; r <= 12; r++ {
		for c := 1; c <= 3; c++ {
			cell, _ := excelize.CoordinatesToCellName(c, r)
			if err := f.SetCellValue("Sheet1", cell, r*10+c); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	o := Defaults()
	o.Source, o.Path = SourceXLSX, path
	o.Rows, o.Columns = 0, 0
	ctrl, closer, err := Open(context.Background(), o, NewLogger(io.Discard, false))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer closer.Close()

	cfg := ctrl.Config()
	if cfg.Rows != 12 || cfg.Columns != 3 {
		t.Errorf("grid = %dx%d, want 12x3", cfg.Rows, cfg.Columns)
	}
	rows, _, err := ctrl.VisibleRows(context.Background(), 0)
	if err != nil {
		t.Fatalf("VisibleRows() error = %v", err)
	}
	if got := rows[0].Cell(2); got != "13" {
		t.Errorf("rows[0].Cell(2) = %q, want 13", got)
	}
}

func TestOpenErrors(t *testing.T) {
	o := Defaults()
	o.Source, o.Path = SourceXLSX, filepath.Join(t.TempDir(), "missing.xlsx")
	if _, _, err := Open(context.Background(), o, NewLogger(io.Discard, false)); err == nil {
		t.Error("Open(missing workbook) error = nil, want error")
	}

	o = Defaults()
	o.SegmentSize = 0
	if _, _, err := Open(context.Background(), o, NewLogger(io.Discard, false)); err == nil {
		t.Error("Open(zero segment) error = nil, want error")
	}
}

func TestBandsFrame(t *testing.T) {
	ctrl, closer, err := Open(context.Background(), smallOptions(), NewLogger(io.Discard, false))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer closer.Close()

	bands, err := NewBands(ctrl, 1)
	if err != nil {
		t.Fatalf("NewBands() error = %v", err)
	}
	frame, err := bands.Frame(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if got, want := frame.Bounds().Size(), image.Pt(400, 270); got != want {
		t.Fatalf("frame size = %v, want %v", got, want)
	}
	if got := ctrl.Cache().Indices(); len(got) != 1 || got[0] != 0 {
		t.Errorf("cached segments = %v, want [0]", got)
	}
}

func TestBandsRatio(t *testing.T) {
	ctrl, closer, err := Open(context.Background(), smallOptions(), NewLogger(io.Discard, false))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer closer.Close()

	bands, err := NewBands(ctrl, 2)
	if err != nil {
		t.Fatalf("NewBands() error = %v", err)
	}
	if bands.Ratio() != 2 {
		t.Errorf("Ratio() = %v, want 2", bands.Ratio())
	}
	if w, h := bands.Content.BackingSize(); w != 800 || h != 480 {
		t.Errorf("content backing = %dx%d, want 800x480", w, h)
	}
	if w, h := bands.Header.BackingSize(); w != 800 || h != 60 {
		t.Errorf("header backing = %dx%d, want 800x60", w, h)
	}
}

func TestCompose(t *testing.T) {
	red := image.NewUniform(color.RGBA{R: 255, A: 255})
	header := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := range 2 {
		for x := range 4 {
			header.Set(x, y, red.C)
		}
	}
	content := image.NewRGBA(image.Rect(0, 0, 3, 3))

	frame := Compose(header, content)
	if got, want := frame.Bounds().Size(), image.Pt(4, 5); got != want {
		t.Fatalf("Compose() size = %v, want %v", got, want)
	}
	if got := frame.RGBAAt(1, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("header pixel = %v, want red", got)
	}
	// transparent content shows the white background
	if got := frame.RGBAAt(1, 3); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("content pixel = %v, want white", got)
	}
}

func TestThumbnail(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	tests := []struct {
		name       string
		maxW, maxH int
		want       image.Point
	}{
		{"fits", 800, 800, image.Pt(400, 200)},
		{"width bound", 100, 100, image.Pt(100, 50)},
		{"height bound", 400, 20, image.Pt(40, 20)},
		{"no bound", 0, 0, image.Pt(400, 200)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Thumbnail(src, tt.maxW, tt.maxH).Bounds().Size(); got != tt.want {
				t.Errorf("Thumbnail() size = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug output at info level: %q", buf.String())
	}
	NewLogger(&buf, true).Debug("shown")
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Errorf("output = %q, want debug record", buf.String())
	}
}
