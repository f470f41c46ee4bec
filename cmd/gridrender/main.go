// Command gridrender renders one viewport of a grid to a PNG file.
//
// Grid settings come from the env file (GRID_ENV_FILE, default .env),
// GRID_* environment variables and flags, in increasing priority.
// For example:
//
//	gridrender -rows 1000000000 -top 24000000000 -output tail.png
//	gridrender -source xlsx -path book.xlsx -rows 0 -columns 0 -ratio 2
//	gridrender -source sqlite -path shop.db -table orders -rows 0 -columns 0
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"

	"github.com/gogpu/ggrid/internal/gridhost"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stderr); err != nil {
		log.Fatalf("gridrender: %v", err)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("gridrender", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		output = fs.String("output", "grid.png", "output file")
		left   = fs.Float64("left", 0, "horizontal scroll offset")
		top    = fs.Float64("top", 0, "vertical scroll offset")
		thumbW = fs.Int("thumb-width", 0, "scale the frame down to at most this width")
		thumbH = fs.Int("thumb-height", 0, "scale the frame down to at most this height")
	)
	opts, err := gridhost.LoadOptions(fs, args)
	if err != nil {
		return err
	}

	logger := gridhost.NewLogger(stderr, opts.Verbose)
	ctrl, closer, err := gridhost.Open(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	bands, err := gridhost.NewBands(ctrl, opts.Ratio)
	if err != nil {
		return err
	}
	frame, err := bands.Frame(ctx, *left, *top)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	var img image.Image = frame
	if *thumbW > 0 || *thumbH > 0 {
		w, h := *thumbW, *thumbH
		if w <= 0 {
			w = frame.Bounds().Dx()
		}
		if h <= 0 {
			h = frame.Bounds().Dy()
		}
		img = gridhost.Thumbnail(frame, w, h)
	}
	if err := savePNG(*output, img); err != nil {
		return err
	}

	stats := ctrl.Cache().Stats()
	logger.Info("frame saved", "output", *output,
		"size", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()),
		"segments", ctrl.Cache().Len(), "misses", stats.Misses)
	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
