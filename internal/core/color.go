package core

// Color is a foreground color from the terminal's 16-color palette. The
// shell maps each value to a style; games only pick from this list.
type Color uint8

// Palette. Piece blocks use the bright colors; the dotted board background
// and secondary text use gray.
const (
	ColorDefault Color = iota
	ColorGray
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
)

var colorNames = [...]string{
	ColorDefault:       "default",
	ColorGray:          "gray",
	ColorBrightRed:     "bright_red",
	ColorBrightGreen:   "bright_green",
	ColorBrightYellow:  "bright_yellow",
	ColorBrightBlue:    "bright_blue",
	ColorBrightMagenta: "bright_magenta",
	ColorBrightCyan:    "bright_cyan",
	ColorBrightWhite:   "bright_white",
}

// String returns the palette name of the color.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}
