package ggrid

// Default visual constants.
const (
	DefaultHeaderBackground = "#f2f2f2"
	DefaultTextColor        = "#333"
	DefaultRowEven          = "#ffffff"
	DefaultRowOdd           = "#f9f9f9"
	DefaultBorderColor      = "#ddd"
	DefaultFontFamily       = "sans-serif"
	DefaultFontSize         = 14
)

// Style holds the colors and font used by the Renderer.
type Style struct {
	HeaderBackground string
	Text             string
	RowEven          string
	RowOdd           string
	Border           string
	Font             Font

	// AbsoluteStripes bands rows by their index in the grid rather than
	// their position in the viewport. The default banding starts every
	// frame with RowEven at the first supplied row.
	AbsoluteStripes bool
}

// DefaultStyle returns the standard grid look: light grey header, dark
// grey 14px sans-serif text, white and near-white row bands, light grey
// gridlines.
func DefaultStyle() Style {
	return Style{
		HeaderBackground: DefaultHeaderBackground,
		Text:             DefaultTextColor,
		RowEven:          DefaultRowEven,
		RowOdd:           DefaultRowOdd,
		Border:           DefaultBorderColor,
		Font:             Font{Family: DefaultFontFamily, Size: DefaultFontSize},
	}
}
