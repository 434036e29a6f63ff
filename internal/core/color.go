package core

// Color is the foreground colour of a screen cell. The platform layer maps
// it to a terminal colour; the engine only picks one per tetromino.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed           // Z
	ColorGreen         // S
	ColorYellow        // O
	ColorBlue          // J
	ColorMagenta       // T
	ColorCyan          // I
	ColorOrange        // L
	ColorWhite         // locked cells
	ColorBrightYellow  // banners

	colorCount
)

var colorNames = [colorCount]string{
	ColorDefault:      "default",
	ColorRed:          "red",
	ColorGreen:        "green",
	ColorYellow:       "yellow",
	ColorBlue:         "blue",
	ColorMagenta:      "magenta",
	ColorCyan:         "cyan",
	ColorOrange:       "orange",
	ColorWhite:        "white",
	ColorBrightYellow: "bright yellow",
}

func (c Color) String() string {
	if c < colorCount {
		return colorNames[c]
	}
	return "unknown"
}
