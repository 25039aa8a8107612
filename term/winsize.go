package term

import (
	"os"

	"golang.org/x/sys/unix"
)

// WinSize is the size of a terminal in cells and, when the terminal
// reports it, in pixels.
type WinSize struct {
	Rows   int
	Cols   int
	Width  int
	Height int
}

// CellAspect returns the width/height ratio of one character cell, falling
// back to 0.5 when the pixel size is unknown.
func (ws WinSize) CellAspect() float64 {
	if ws.Width == 0 || ws.Height == 0 || ws.Rows == 0 || ws.Cols == 0 {
		return 0.5
	}
	cellW := float64(ws.Width) / float64(ws.Cols)
	cellH := float64(ws.Height) / float64(ws.Rows)
	return cellW / cellH
}

// GetWinSize returns the size of the terminal attached to f.
func GetWinSize(f *os.File) (WinSize, error) {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return WinSize{}, os.NewSyscallError("GetWinsize", err)
	}
	return WinSize{
		Rows:   int(ws.Row),
		Cols:   int(ws.Col),
		Width:  int(ws.Xpixel),
		Height: int(ws.Ypixel),
	}, nil
}
