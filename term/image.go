package term

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/nfnt/resize"
)

// shades runs from darkest to brightest.
const shades = " .,:;i1tfLCG08@"

// drawFrame writes img into the top rows of a terminal of size ws, one
// colored character per cell. Every row starts with a cursor move so a
// partial frame never wraps into the next line.
func drawFrame(buf *bytes.Buffer, img image.Image, ws WinSize, rows int, light bool) {
	if rows > ws.Rows {
		rows = ws.Rows
	}
	if rows <= 0 || ws.Cols <= 0 {
		return
	}

	canvas := image.NewPaletted(image.Rect(0, 0, ws.Cols, rows), ANSIPalette)
	if dst := placement(img, canvas.Rect, ws.CellAspect()); !dst.Empty() {
		scaled := resize.Resize(uint(dst.Dx()), uint(dst.Dy()), img, resize.Bilinear)
		draw.Draw(canvas, dst, scaled, scaled.Bounds().Min, draw.Over)
	}

	a := ANSI{buf}
	for y := 0; y < rows; y++ {
		a.CursorPosition(y+1, 1)

		last := -1
		for _, p := range canvas.Pix[y*canvas.Stride : y*canvas.Stride+ws.Cols] {
			if int(p) != last {
				a.Foreground(ANSIPalette[p])
				last = int(p)
			}
			buf.WriteByte(shade(ANSIPalette[p], light))
		}
	}
}

// placement returns the largest centered rectangle inside area that shows
// img undistorted on cells with the given width/height ratio. It is empty
// when there is nothing to draw.
func placement(img image.Image, area image.Rectangle, aspect float64) image.Rectangle {
	if img == nil || img.Bounds().Empty() || aspect <= 0 {
		return image.Rectangle{}
	}

	b := img.Bounds()
	w, h := float64(b.Dx())/aspect, float64(b.Dy())
	scale := math.Min(float64(area.Dx())/w, float64(area.Dy())/h)

	size := image.Pt(int(w*scale), int(h*scale))
	if size.X <= 0 || size.Y <= 0 {
		return image.Rectangle{}
	}
	min := area.Min.Add(area.Size().Sub(size).Div(2))
	return image.Rectangle{Min: min, Max: min.Add(size)}
}

func shade(c color.Color, light bool) byte {
	y := int(color.GrayModel.Convert(c).(color.Gray).Y)
	i := y * (len(shades) - 1) / 0xff
	if light {
		i = len(shades) - 1 - i
	}
	return shades[i]
}
