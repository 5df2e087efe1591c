package core

// Color is a palette entry for a screen cell. The platform maps it to a
// terminal color; games only pick from the palette.
type Color uint8

// The hub palette. ColorDefault leaves the terminal's own foreground.
const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorGray
	ColorOrange
	ColorBrightWhite
	ColorNeonCyan
	ColorNeonPink
	ColorNeonLime
)

// ColorByName resolves a cosmetic color name ("cyan", "pink", "lime", "sunset")
// to a palette color. Unknown names map to ColorNeonCyan.
func ColorByName(name string) Color {
	switch name {
	case "pink":
		return ColorNeonPink
	case "lime":
		return ColorNeonLime
	case "sunset":
		return ColorOrange
	default:
		return ColorNeonCyan
	}
}
