package term

import (
	"fmt"
	"image/color"
	"io"
)

// ANSIPalette is the 16 color palette most terminals support, in SGR
// order: the 8 normal colors followed by their bright variants.
var ANSIPalette = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0xff},
	color.RGBA{0xcd, 0x00, 0x00, 0xff},
	color.RGBA{0x00, 0xcd, 0x00, 0xff},
	color.RGBA{0xcd, 0xcd, 0x00, 0xff},
	color.RGBA{0x00, 0x00, 0xee, 0xff},
	color.RGBA{0xcd, 0x00, 0xcd, 0xff},
	color.RGBA{0x00, 0xcd, 0xcd, 0xff},
	color.RGBA{0xe5, 0xe5, 0xe5, 0xff},
	color.RGBA{0x7f, 0x7f, 0x7f, 0xff},
	color.RGBA{0xff, 0x00, 0x00, 0xff},
	color.RGBA{0x00, 0xff, 0x00, 0xff},
	color.RGBA{0xff, 0xff, 0x00, 0xff},
	color.RGBA{0x5c, 0x5c, 0xff, 0xff},
	color.RGBA{0xff, 0x00, 0xff, 0xff},
	color.RGBA{0x00, 0xff, 0xff, 0xff},
	color.RGBA{0xff, 0xff, 0xff, 0xff},
}

// ANSI writes escape sequences to a terminal.
type ANSI struct {
	io.Writer
}

func (a ANSI) csi(format string, args ...interface{}) {
	fmt.Fprintf(a, "\x1b["+format, args...)
}

// CursorPosition moves the cursor to a 1-based row and column.
func (a ANSI) CursorPosition(row, col int) {
	a.csi("%d;%dH", row, col)
}

func (a ANSI) Clear()      { a.csi("2J") }
func (a ANSI) HideCursor() { a.csi("?25l") }
func (a ANSI) ShowCursor() { a.csi("?25h") }
func (a ANSI) Bold()       { a.csi("1m") }
func (a ANSI) Reset()      { a.csi("0m") }
func (a ANSI) Normal()     { a.csi("22m") }

// Foreground sets the text color to the closest palette entry.
func (a ANSI) Foreground(c color.Color) {
	a.csi("%dm", sgr(c, 30, 90))
}

// Background sets the background color to the closest palette entry.
func (a ANSI) Background(c color.Color) {
	a.csi("%dm", sgr(c, 40, 100))
}

func sgr(c color.Color, normal, bright int) int {
	i := ANSIPalette.Index(c)
	if i < 8 {
		return normal + i
	}
	return bright + i - 8
}
