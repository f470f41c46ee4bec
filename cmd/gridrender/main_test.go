package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	return img
}

func TestRunWritesFrame(t *testing.T) {
	t.Setenv("GRID_ENV_FILE", filepath.Join(t.TempDir(), "none.env"))
	out := filepath.Join(t.TempDir(), "grid.png")
	var stderr bytes.Buffer

	err := run(context.Background(), []string{"-rows", "500", "-top", "2400", "-output", out}, &stderr)
	if err != nil {
		t.Fatalf("run() error = %v\n%s", err, stderr.String())
	}
	if got, want := decodePNG(t, out).Bounds().Size(), image.Pt(400, 270); got != want {
		t.Errorf("frame size = %v, want %v", got, want)
	}
	if !strings.Contains(stderr.String(), "frame saved") {
		t.Errorf("log = %q, want a frame saved record", stderr.String())
	}
}

func TestRunRatioAndThumbnail(t *testing.T) {
	t.Setenv("GRID_ENV_FILE", filepath.Join(t.TempDir(), "none.env"))
	out := filepath.Join(t.TempDir(), "thumb.png")

	args := []string{"-rows", "50", "-ratio", "2", "-thumb-width", "200", "-output", out}
	if err := run(context.Background(), args, &bytes.Buffer{}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	// 800x540 at ratio 2, scaled to width 200
	if got, want := decodePNG(t, out).Bounds().Size(), image.Pt(200, 135); got != want {
		t.Errorf("thumbnail size = %v, want %v", got, want)
	}
}

func TestRunEnvFile(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, "grid.env")
	if err := os.WriteFile(env, []byte("GRID_VIEWPORT_WIDTH=160\nGRID_ROWS=10\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GRID_ENV_FILE", env)
	t.Cleanup(func() {
		os.Unsetenv("GRID_VIEWPORT_WIDTH")
		os.Unsetenv("GRID_ROWS")
	})
	out := filepath.Join(dir, "grid.png")

	if err := run(context.Background(), []string{"-output", out}, &bytes.Buffer{}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got := decodePNG(t, out).Bounds().Dx(); got != 160 {
		t.Errorf("frame width = %d, want 160", got)
	}
}

func TestRunErrors(t *testing.T) {
	t.Setenv("GRID_ENV_FILE", filepath.Join(t.TempDir(), "none.env"))
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-nope"}},
		{"unknown source", []string{"-source", "csv"}},
		{"missing workbook", []string{"-source", "xlsx", "-path", filepath.Join(t.TempDir(), "missing.xlsx")}},
		{"unwritable output", []string{"-rows", "5", "-output", filepath.Join(t.TempDir(), "no", "such", "dir.png")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(context.Background(), tt.args, &bytes.Buffer{}); err == nil {
				t.Error("run() error = nil, want error")
			}
		})
	}
}
