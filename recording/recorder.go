package recording

import "github.com/gogpu/ggrid"

// Recorder captures drawing operations as commands. It implements
// ggrid.DrawingContext, mirroring a canvas context's state: fill and
// stroke colors, font and text anchors are tracked and stamped onto the
// commands that use them.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	commands []Command

	fillStyle   string
	strokeStyle string
	font        ggrid.Font
	align       ggrid.TextAlign
	baseline    ggrid.TextBaseline

	// segments counts LineTo calls since the last BeginPath.
	segments int

	failType  CommandType
	failErr   error
	failAfter int
}

var _ ggrid.DrawingContext = (*Recorder)(nil)

// NewRecorder creates an empty Recorder with canvas defaults: black fill
// and stroke, 10px sans-serif, left/alphabetic text anchors.
func NewRecorder() *Recorder {
	return &Recorder{
		commands:    make([]Command, 0, 256),
		fillStyle:   "#000",
		strokeStyle: "#000",
		font:        ggrid.Font{Family: "sans-serif", Size: 10},
		align:       ggrid.AlignLeft,
		baseline:    ggrid.BaselineAlphabetic,
	}
}

// FailOn makes the (after+1)-th fallible command of type typ return err
// instead of being recorded, and every one after it too. Only FillRect,
// StrokeRect, FillText and Stroke can fail.
func (r *Recorder) FailOn(typ CommandType, after int, err error) {
	r.failType = typ
	r.failAfter = after
	r.failErr = err
}

// Commands returns the recorded commands in call order.
// The returned slice must not be modified.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	return len(r.commands)
}

// Reset discards every recorded command and restores the default state.
// A FailOn setting is kept.
func (r *Recorder) Reset() {
	failType, failAfter, failErr := r.failType, r.failAfter, r.failErr
	*r = *NewRecorder()
	r.failType, r.failAfter, r.failErr = failType, failAfter, failErr
}

// Count returns the number of recorded commands of type typ.
func (r *Recorder) Count(typ CommandType) int {
	n := 0
	for _, c := range r.commands {
		if c.Type() == typ {
			n++
		}
	}
	return n
}

// Texts returns the recorded FillText commands in call order.
func (r *Recorder) Texts() []FillTextCommand {
	var out []FillTextCommand
	for _, c := range r.commands {
		if t, ok := c.(FillTextCommand); ok {
			out = append(out, t)
		}
	}
	return out
}

// FillRects returns the recorded FillRect commands in call order.
func (r *Recorder) FillRects() []FillRectCommand {
	var out []FillRectCommand
	for _, c := range r.commands {
		if f, ok := c.(FillRectCommand); ok {
			out = append(out, f)
		}
	}
	return out
}

// StrokeRects returns the recorded StrokeRect commands in call order.
func (r *Recorder) StrokeRects() []StrokeRectCommand {
	var out []StrokeRectCommand
	for _, c := range r.commands {
		if s, ok := c.(StrokeRectCommand); ok {
			out = append(out, s)
		}
	}
	return out
}

// ClearRect implements ggrid.DrawingContext.
func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.record(ClearRectCommand{Rect: Rect{X: x, Y: y, W: w, H: h}})
}

// SetFillStyle implements ggrid.DrawingContext.
func (r *Recorder) SetFillStyle(color string) {
	r.fillStyle = color
	r.record(SetFillStyleCommand{Color: color})
}

// SetStrokeStyle implements ggrid.DrawingContext.
func (r *Recorder) SetStrokeStyle(color string) {
	r.strokeStyle = color
	r.record(SetStrokeStyleCommand{Color: color})
}

// SetFont implements ggrid.DrawingContext.
func (r *Recorder) SetFont(font ggrid.Font) {
	r.font = font
	r.record(SetFontCommand{Font: font})
}

// SetTextAlign implements ggrid.DrawingContext.
func (r *Recorder) SetTextAlign(align ggrid.TextAlign) {
	r.align = align
	r.record(SetTextAlignCommand{Align: align})
}

// SetTextBaseline implements ggrid.DrawingContext.
func (r *Recorder) SetTextBaseline(baseline ggrid.TextBaseline) {
	r.baseline = baseline
	r.record(SetTextBaselineCommand{Baseline: baseline})
}

// FillRect implements ggrid.DrawingContext.
func (r *Recorder) FillRect(x, y, w, h float64) error {
	if err := r.fail(CmdFillRect); err != nil {
		return err
	}
	r.record(FillRectCommand{Rect: Rect{X: x, Y: y, W: w, H: h}, Color: r.fillStyle})
	return nil
}

// StrokeRect implements ggrid.DrawingContext.
func (r *Recorder) StrokeRect(x, y, w, h float64) error {
	if err := r.fail(CmdStrokeRect); err != nil {
		return err
	}
	r.record(StrokeRectCommand{Rect: Rect{X: x, Y: y, W: w, H: h}, Color: r.strokeStyle})
	return nil
}

// FillText implements ggrid.DrawingContext.
func (r *Recorder) FillText(text string, x, y float64) error {
	if err := r.fail(CmdFillText); err != nil {
		return err
	}
	r.record(FillTextCommand{
		Text:     text,
		X:        x,
		Y:        y,
		Color:    r.fillStyle,
		Font:     r.font,
		Align:    r.align,
		Baseline: r.baseline,
	})
	return nil
}

// BeginPath implements ggrid.DrawingContext.
func (r *Recorder) BeginPath() {
	r.segments = 0
	r.record(BeginPathCommand{})
}

// MoveTo implements ggrid.DrawingContext.
func (r *Recorder) MoveTo(x, y float64) {
	r.record(MoveToCommand{X: x, Y: y})
}

// LineTo implements ggrid.DrawingContext.
func (r *Recorder) LineTo(x, y float64) {
	r.segments++
	r.record(LineToCommand{X: x, Y: y})
}

// Stroke implements ggrid.DrawingContext.
func (r *Recorder) Stroke() error {
	if err := r.fail(CmdStroke); err != nil {
		return err
	}
	r.record(StrokeCommand{Color: r.strokeStyle, Segments: r.segments})
	return nil
}

func (r *Recorder) record(c Command) {
	r.commands = append(r.commands, c)
}

// fail returns the injected error when typ is the failing type and its
// allowance is used up.
func (r *Recorder) fail(typ CommandType) error {
	if r.failErr == nil || typ != r.failType {
		return nil
	}
	if r.failAfter > 0 {
		r.failAfter--
		return nil
	}
	return r.failErr
}
