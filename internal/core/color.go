package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for track elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Palette is the ordered set of colors used for buildings and cars.
// Entities store an index into it so the simulation stays render-agnostic.
var Palette = []Color{
	ColorBlue, ColorCyan, ColorGreen, ColorBrightGreen,
	ColorBrightBlue, ColorMagenta, ColorYellow, ColorOrange,
	ColorRed, ColorWhite, ColorGray, ColorBrightCyan,
}

// PaletteColor returns the palette entry for an index, wrapping around.
func PaletteColor(i int) Color {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}
