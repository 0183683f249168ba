// Package draw renders the arena onto a terminal using ANSI escape sequences.
package draw

import (
	"fmt"
	"io"
	"os"

	"github.com/tomz197/kurve/internal/physics"
	"golang.org/x/term"
)

// Point is a position in logical (arena) coordinates.
type Point = physics.Point

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is an xterm 256-color palette index. ColorNone marks an empty pixel.
type Color uint8

// Palette entries used by the game.
const (
	ColorNone    Color = 0
	ColorBlue    Color = 63  // #5f5fff
	ColorMagenta Color = 207 // #ff5fff
	ColorRed     Color = 203 // #ff5f5f
	ColorGreen   Color = 83  // #5fff5f
	ColorGrey    Color = 250 // #bcbcbc
	ColorTitle   Color = 88  // #870000
	ColorReady   Color = 151 // #afd7af
	ColorPanel   Color = 233 // #121212
)

// basicColors are the first 16 xterm palette entries.
var basicColors = [16][3]uint8{
	{0, 0, 0}, {128, 0, 0}, {0, 128, 0}, {128, 128, 0},
	{0, 0, 128}, {128, 0, 128}, {0, 128, 128}, {192, 192, 192},
	{128, 128, 128}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{0, 0, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

// cubeLevels are the channel intensities of the 6x6x6 color cube.
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// RGB returns the color's red, green and blue components.
func (c Color) RGB() (r, g, b uint8) {
	switch {
	case c < 16:
		rgb := basicColors[c]
		return rgb[0], rgb[1], rgb[2]
	case c < 232:
		i := c - 16
		return cubeLevels[i/36], cubeLevels[(i/6)%6], cubeLevels[i%6]
	default:
		v := uint8(8 + 10*(c-232))
		return v, v, v
	}
}

// Hex returns the color as a CSS hex string, e.g. "#5f5fff".
func (c Color) Hex() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Foreground returns the escape sequence selecting c as text color.
func (c Color) Foreground() string {
	return fmt.Sprintf("\033[38;5;%dm", c)
}

// Background returns the escape sequence selecting c as background color.
func (c Color) Background() string {
	return fmt.Sprintf("\033[48;5;%dm", c)
}

// ResetStyle clears colors and attributes.
const ResetStyle = "\033[0m"

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// MoveCursor moves cursor to a specific position (1-based).
func MoveCursor(w io.Writer, x, y int) {
	fmt.Fprintf(w, "\033[%d;%dH", y, x)
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
