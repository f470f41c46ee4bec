package ggrid

import "strconv"

// DrawingContext is the subset of a 2D canvas API the renderer draws with.
// Coordinates are logical pixels; implementations apply any device scale.
//
// Style setters never fail. Operations that touch pixels return an error
// from the underlying surface; the renderer aborts the current pass on the
// first one.
type DrawingContext interface {
	// ClearRect resets the rectangle to transparent.
	ClearRect(x, y, w, h float64)

	// SetFillStyle sets the color used by FillRect and FillText.
	// Colors are CSS-style hex strings ("#333", "#f2f2f2").
	SetFillStyle(color string)
	// SetStrokeStyle sets the color used by StrokeRect and Stroke.
	SetStrokeStyle(color string)
	// SetFont sets the font used by FillText.
	SetFont(font Font)
	// SetTextAlign sets how FillText positions text relative to x.
	SetTextAlign(align TextAlign)
	// SetTextBaseline sets how FillText positions text relative to y.
	SetTextBaseline(baseline TextBaseline)

	FillRect(x, y, w, h float64) error
	StrokeRect(x, y, w, h float64) error
	FillText(text string, x, y float64) error

	// BeginPath discards the current path.
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Stroke strokes the current path.
	Stroke() error
}

// Font describes a text face by family and pixel size.
type Font struct {
	Family string
	Size   float64
}

// String returns the CSS shorthand, e.g. "14px sans-serif".
func (f Font) String() string {
	return strconv.FormatFloat(f.Size, 'f', -1, 64) + "px " + f.Family
}

// TextAlign is the horizontal anchor of FillText.
type TextAlign uint8

// Text alignments.
const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

var textAlignNames = [...]string{
	AlignLeft:   "left",
	AlignCenter: "center",
	AlignRight:  "right",
}

// String returns the CSS name of the alignment.
func (a TextAlign) String() string {
	if int(a) < len(textAlignNames) {
		return textAlignNames[a]
	}
	return "unknown"
}

// TextBaseline is the vertical anchor of FillText.
type TextBaseline uint8

// Text baselines.
const (
	BaselineAlphabetic TextBaseline = iota
	BaselineTop
	BaselineMiddle
	BaselineBottom
)

var textBaselineNames = [...]string{
	BaselineAlphabetic: "alphabetic",
	BaselineTop:        "top",
	BaselineMiddle:     "middle",
	BaselineBottom:     "bottom",
}

// String returns the CSS name of the baseline.
func (b TextBaseline) String() string {
	if int(b) < len(textBaselineNames) {
		return textBaselineNames[b]
	}
	return "unknown"
}
