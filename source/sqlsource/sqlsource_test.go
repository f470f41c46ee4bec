package sqlsource

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/gogpu/ggrid"
)

// newTestDB returns an in-memory database holding an "orders" table with
// n rows. Every third row has a NULL note.
func newTestDB(t *testing.T, n int) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open(DriverName, ":memory:")
	if err != nil {
		t.Fatalf("sqlx.Open() error = %v", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	db.MustExec(`CREATE TABLE orders (id INTEGER, name TEXT, amount REAL, note TEXT)`)
	tx := db.MustBegin()
	for i := range n {
		var note any
		if i%3 != 0 {
			note = fmt.Sprintf("note %d", i)
		}
		tx.MustExec(`INSERT INTO orders (id, name, amount, note) VALUES (?, ?, ?, ?)`,
			i, fmt.Sprintf("item-%d", i), float64(i)+0.5, note)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	return db
}

func TestNew_InvalidIdentifier(t *testing.T) {
	db := newTestDB(t, 0)
	tests := []struct {
		name  string
		table string
		opts  []Option
	}{
		{"injection", "orders; DROP TABLE orders", nil},
		{"quoted", `"orders"`, nil},
		{"empty", "", nil},
		{"bad column", "orders", []Option{WithColumns("name", "1=1")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(db, tt.table, tt.opts...); !errors.Is(err, ErrInvalidIdentifier) {
				t.Errorf("New() error = %v, want ErrInvalidIdentifier", err)
			}
		})
	}
}

func TestDimensions(t *testing.T) {
	db := newTestDB(t, 42)

	src, err := New(db, "orders")
	if err != nil {
		t.Fatal(err)
	}
	rows, cols, err := src.Dimensions(context.Background())
	if err != nil {
		t.Fatalf("Dimensions() error = %v", err)
	}
	if rows != 42 || cols != 4 {
		t.Errorf("Dimensions() = %d, %d, want 42, 4", rows, cols)
	}

	narrow, err := New(db, "orders", WithColumns("name", "id"))
	if err != nil {
		t.Fatal(err)
	}
	if _, cols, _ := narrow.Dimensions(context.Background()); cols != 2 {
		t.Errorf("Dimensions() cols with WithColumns = %d, want 2", cols)
	}
}

func TestLoadRows(t *testing.T) {
	src, err := New(newTestDB(t, 42), "orders")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		start, end uint32
		wantLen    int
		wantFirst  string
	}{
		{"first page", 0, 10, 10, "0"},
		{"middle page", 10, 20, 10, "10"},
		{"short last page", 40, 50, 2, "40"},
		{"past the end", 50, 60, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := src.LoadRows(context.Background(), tt.start, tt.end, 4)
			if err != nil {
				t.Fatalf("LoadRows() error = %v", err)
			}
			if len(rows) != tt.wantLen {
				t.Fatalf("LoadRows() len = %d, want %d", len(rows), tt.wantLen)
			}
			if tt.wantLen > 0 && rows[0].Cell(0) != tt.wantFirst {
				t.Errorf("first id = %q, want %q", rows[0].Cell(0), tt.wantFirst)
			}
		})
	}
}

func TestLoadRows_Values(t *testing.T) {
	src, err := New(newTestDB(t, 3), "orders")
	if err != nil {
		t.Fatal(err)
	}
	rows, err := src.LoadRows(context.Background(), 0, 3, 4)
	if err != nil {
		t.Fatalf("LoadRows() error = %v", err)
	}

	if got := rows[1].Cell(1); got != "item-1" {
		t.Errorf("name = %q, want item-1", got)
	}
	if got := rows[1].Cell(2); got != "1.5" {
		t.Errorf("amount = %q, want 1.5", got)
	}
	if got := rows[1].Cell(3); got != "note 1" {
		t.Errorf("note = %q, want note 1", got)
	}
	if _, ok := rows[0].Lookup(3); ok {
		t.Error("NULL note stored, want it left out")
	}
	if got := rows[0].Cell(3); got != "" {
		t.Errorf("NULL note renders %q, want empty", got)
	}
}

func TestLoadRows_SelectedColumns(t *testing.T) {
	src, err := New(newTestDB(t, 5), "orders", WithColumns("name", "id"))
	if err != nil {
		t.Fatal(err)
	}
	rows, err := src.LoadRows(context.Background(), 2, 4, 2)
	if err != nil {
		t.Fatalf("LoadRows() error = %v", err)
	}
	if len(rows) != 2 || rows[0].Cell(0) != "item-2" || rows[0].Cell(1) != "2" {
		t.Errorf("rows = %v, want item-2/2 first", rows)
	}
}

func TestLoadRows_MissingTable(t *testing.T) {
	src, err := New(newTestDB(t, 1), "missing")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := src.LoadRows(context.Background(), 0, 10, 1); err == nil {
		t.Error("LoadRows() on a missing table succeeded")
	}
	if _, err := src.Count(context.Background()); err == nil {
		t.Error("Count() on a missing table succeeded")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.db")
	db, err := sqlx.Connect(DriverName, path)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	db.MustExec(`CREATE TABLE cells (a TEXT, b TEXT)`)
	db.MustExec(`INSERT INTO cells VALUES ('x', 'y'), ('z', NULL)`)
	_ = db.Close()

	src, err := Open(path, "cells")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	n, err := src.Count(context.Background())
	if err != nil || n != 2 {
		t.Errorf("Count() = %d, %v, want 2, nil", n, err)
	}
	if src.Table() != "cells" {
		t.Errorf("Table() = %q, want cells", src.Table())
	}
}

func TestControllerOverTable(t *testing.T) {
	src, err := New(newTestDB(t, 500), "orders")
	if err != nil {
		t.Fatal(err)
	}
	rows, cols, err := src.Dimensions(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	cfg := ggrid.NewConfig(cols, rows, 80, 24, 30, 320, 240)
	ctrl, err := ggrid.NewController(cfg, 100, ggrid.WithSource(src))
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	if err := ctrl.Preload(context.Background(), 2, 2); err != nil {
		t.Fatalf("Preload() error = %v", err)
	}

	visible, _, err := ctrl.VisibleRows(context.Background(), 24*250)
	if err != nil {
		t.Fatalf("VisibleRows() error = %v", err)
	}
	if len(visible) != 13 || visible[0].Cell(1) != "item-250" {
		t.Errorf("visible rows = %d starting %q, want 13 starting item-250", len(visible), visible[0].Cell(1))
	}
	if s := ctrl.Cache().Stats(); s.Misses != 0 {
		t.Errorf("frame over preloaded segment missed %d times, want 0", s.Misses)
	}
}
