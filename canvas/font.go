// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/ggrid"
)

// Parsed font sources are shared by every Canvas.
var (
	regularSource = sync.OnceValues(func() (*text.FontSource, error) {
		return text.NewFontSource(goregular.TTF)
	})
	monoSource = sync.OnceValues(func() (*text.FontSource, error) {
		return text.NewFontSource(gomono.TTF)
	})
)

// sourceFor returns the font source for a CSS-style family name.
func sourceFor(family string) (*text.FontSource, error) {
	if strings.EqualFold(strings.TrimSpace(family), "monospace") {
		return monoSource()
	}
	return regularSource()
}

type faceKey struct {
	mono bool
	px   float64
}

// faceCache holds faces by family class and device pixel size.
type faceCache map[faceKey]text.Face

func (fc faceCache) get(font ggrid.Font, scale float64) (text.Face, error) {
	key := faceKey{
		mono: strings.EqualFold(strings.TrimSpace(font.Family), "monospace"),
		px:   font.Size * scale,
	}
	if f, ok := fc[key]; ok {
		return f, nil
	}
	src, err := sourceFor(font.Family)
	if err != nil {
		return nil, fmt.Errorf("canvas: load font %q: %w", font.Family, err)
	}
	f := src.Face(key.px)
	fc[key] = f
	return f, nil
}
