// Package recording provides a command-recording ggrid.DrawingContext.
//
// A Recorder captures every drawing call as a typed command instead of
// touching pixels. The resulting command stream can be inspected to check
// exactly what a header or content pass drew: which labels, at which
// positions, in which colors, and in which order.
//
// Commands are typed structs, following Cairo's inspectable recording
// surface rather than a binary display list.
//
// # Example
//
//	rec := recording.NewRecorder()
//	_ = ctrl.RenderHeader(rec, 0)
//
//	for _, t := range rec.Texts() {
//	    fmt.Println(t.Text, t.X, t.Y)
//	}
package recording

import (
	"fmt"

	"github.com/gogpu/ggrid"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// Style commands
	CmdSetFillStyle    CommandType = iota // Set fill color
	CmdSetStrokeStyle                     // Set stroke color
	CmdSetFont                            // Set font
	CmdSetTextAlign                       // Set horizontal text anchor
	CmdSetTextBaseline                    // Set vertical text anchor

	// Drawing commands
	CmdClearRect  // Clear a rectangle
	CmdFillRect   // Fill a rectangle
	CmdStrokeRect // Stroke a rectangle
	CmdFillText   // Draw text

	// Path commands
	CmdBeginPath // Discard current path
	CmdMoveTo    // Start a subpath
	CmdLineTo    // Add a line segment
	CmdStroke    // Stroke current path
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdSetFillStyle:    "SetFillStyle",
	CmdSetStrokeStyle:  "SetStrokeStyle",
	CmdSetFont:         "SetFont",
	CmdSetTextAlign:    "SetTextAlign",
	CmdSetTextBaseline: "SetTextBaseline",
	CmdClearRect:       "ClearRect",
	CmdFillRect:        "FillRect",
	CmdStrokeRect:      "StrokeRect",
	CmdFillText:        "FillText",
	CmdBeginPath:       "BeginPath",
	CmdMoveTo:          "MoveTo",
	CmdLineTo:          "LineTo",
	CmdStroke:          "Stroke",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is implemented by all recorded commands.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	X, Y, W, H float64
}

// String implements fmt.Stringer.
func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.W, r.H)
}

// --------------------------------------------------------------------------
// Style Commands
// --------------------------------------------------------------------------

// SetFillStyleCommand sets the fill color.
type SetFillStyleCommand struct {
	Color string
}

// Type implements Command.
func (SetFillStyleCommand) Type() CommandType { return CmdSetFillStyle }

// SetStrokeStyleCommand sets the stroke color.
type SetStrokeStyleCommand struct {
	Color string
}

// Type implements Command.
func (SetStrokeStyleCommand) Type() CommandType { return CmdSetStrokeStyle }

// SetFontCommand sets the text font.
type SetFontCommand struct {
	Font ggrid.Font
}

// Type implements Command.
func (SetFontCommand) Type() CommandType { return CmdSetFont }

// SetTextAlignCommand sets the horizontal text anchor.
type SetTextAlignCommand struct {
	Align ggrid.TextAlign
}

// Type implements Command.
func (SetTextAlignCommand) Type() CommandType { return CmdSetTextAlign }

// SetTextBaselineCommand sets the vertical text anchor.
type SetTextBaselineCommand struct {
	Baseline ggrid.TextBaseline
}

// Type implements Command.
func (SetTextBaselineCommand) Type() CommandType { return CmdSetTextBaseline }

// --------------------------------------------------------------------------
// Drawing Commands
// --------------------------------------------------------------------------

// ClearRectCommand resets a rectangle to transparent.
type ClearRectCommand struct {
	Rect Rect
}

// Type implements Command.
func (ClearRectCommand) Type() CommandType { return CmdClearRect }

// FillRectCommand fills a rectangle.
type FillRectCommand struct {
	Rect Rect
	// Color is the fill color in effect when the command was recorded.
	Color string
}

// Type implements Command.
func (FillRectCommand) Type() CommandType { return CmdFillRect }

// StrokeRectCommand strokes a rectangle outline.
type StrokeRectCommand struct {
	Rect Rect
	// Color is the stroke color in effect when the command was recorded.
	Color string
}

// Type implements Command.
func (StrokeRectCommand) Type() CommandType { return CmdStrokeRect }

// FillTextCommand draws a string anchored at (X, Y).
type FillTextCommand struct {
	Text     string
	X, Y     float64
	Color    string
	Font     ggrid.Font
	Align    ggrid.TextAlign
	Baseline ggrid.TextBaseline
}

// Type implements Command.
func (FillTextCommand) Type() CommandType { return CmdFillText }

// --------------------------------------------------------------------------
// Path Commands
// --------------------------------------------------------------------------

// BeginPathCommand discards the current path.
type BeginPathCommand struct{}

// Type implements Command.
func (BeginPathCommand) Type() CommandType { return CmdBeginPath }

// MoveToCommand starts a new subpath at (X, Y).
type MoveToCommand struct {
	X, Y float64
}

// Type implements Command.
func (MoveToCommand) Type() CommandType { return CmdMoveTo }

// LineToCommand adds a line from the current point to (X, Y).
type LineToCommand struct {
	X, Y float64
}

// Type implements Command.
func (LineToCommand) Type() CommandType { return CmdLineTo }

// StrokeCommand strokes the current path.
type StrokeCommand struct {
	// Color is the stroke color in effect when the command was recorded.
	Color string
	// Segments is the number of line segments in the stroked path.
	Segments int
}

// Type implements Command.
func (StrokeCommand) Type() CommandType { return CmdStroke }
