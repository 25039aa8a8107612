package term

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var escapes = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

func visible(b []byte) string {
	return escapes.ReplaceAllString(string(b), "")
}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func frame(img image.Image, ws WinSize, rows int, light bool) string {
	var buf bytes.Buffer
	drawFrame(&buf, img, ws, rows, light)
	return visible(buf.Bytes())
}

func TestFrameDimensions(t *testing.T) {
	out := frame(solid(64, 48, color.White), WinSize{Rows: 13, Cols: 40}, 12, false)
	assert.Len(t, out, 40*12)
}

func TestFrameNil(t *testing.T) {
	out := frame(nil, WinSize{Rows: 3, Cols: 10}, 3, false)
	assert.Equal(t, strings.Repeat(" ", 30), out, "black canvas is blank")
}

func TestFrameLightBackground(t *testing.T) {
	ws := WinSize{Rows: 1, Cols: 4}
	assert.Equal(t, "    ", frame(nil, ws, 1, false))
	assert.Equal(t, "@@@@", frame(nil, ws, 1, true))
}

func TestFrameCentered(t *testing.T) {
	// Square cells: a square image on a wide canvas leaves blank columns
	// on both sides.
	ws := WinSize{Rows: 10, Cols: 40, Width: 400, Height: 100}
	out := frame(solid(10, 10, color.White), ws, 10, false)
	require.Len(t, out, 400)
	row := out[:40]
	assert.Equal(t, byte(' '), row[0])
	assert.Equal(t, byte(' '), row[39])
	assert.Equal(t, byte('@'), row[20])
}

func TestFrameRowsStartWithCursorMove(t *testing.T) {
	var buf bytes.Buffer
	drawFrame(&buf, nil, WinSize{Rows: 3, Cols: 2}, 2, false)
	assert.Equal(t, 2, strings.Count(buf.String(), "H"))
	assert.True(t, strings.HasPrefix(buf.String(), "\x1b[1;1H"))
	assert.Contains(t, buf.String(), "\x1b[2;1H")
}

func TestPlacement(t *testing.T) {
	area := image.Rect(0, 0, 40, 10)
	assert.Equal(t, image.Rect(15, 0, 25, 10), placement(solid(10, 10, color.White), area, 1))
	assert.Equal(t, image.Rect(10, 0, 30, 10), placement(solid(10, 10, color.White), area, 0.5))
	assert.True(t, placement(nil, area, 1).Empty())
	assert.True(t, placement(solid(1, 1000, color.White), area, 1).Empty())
}

func TestANSIColors(t *testing.T) {
	var buf bytes.Buffer
	a := ANSI{&buf}

	a.Foreground(color.RGBA{0xcd, 0, 0, 0xff})
	a.Background(color.White)
	a.CursorPosition(3, 7)
	assert.Equal(t, "\x1b[31m\x1b[107m\x1b[3;7H", buf.String())
}

func TestCellAspect(t *testing.T) {
	assert.Equal(t, 0.5, WinSize{Rows: 24, Cols: 80}.CellAspect())
	assert.Equal(t, 0.5, WinSize{Rows: 10, Cols: 10, Width: 100, Height: 200}.CellAspect())
}

func TestStateReducer(t *testing.T) {
	var s State

	s = StateReducer(s, TitleEvent("Nikon DSC D750"))
	s = StateReducer(s, ResizeEvent{WinSize{Rows: 24, Cols: 80}})
	assert.Equal(t, "Nikon DSC D750", s.Title)
	assert.Equal(t, 80, s.WinSize.Cols)

	s = StateReducer(s, LogEvent{Text: "focusing"})
	require.NotNil(t, s.Log)

	img := solid(2, 2, color.White)
	s = StateReducer(s, FrameEvent{img})
	assert.Equal(t, 1, s.Frames)
	assert.Equal(t, img, s.Image)
	assert.Nil(t, s.Log, "info messages clear on the next frame")

	s = StateReducer(s, LogEvent{Text: "busy", Level: LogLevelError})
	s = StateReducer(s, FrameEvent{img})
	require.NotNil(t, s.Log, "errors stay")

	s = StateReducer(s, ToggleLightEvent{})
	assert.True(t, s.Light)
	s = StateReducer(s, ToggleLightEvent{})
	assert.False(t, s.Light)

	assert.Equal(t, s, StateReducer(s, struct{}{}), "unknown events are ignored")
}

func TestRendererDraw(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererTo(&out)

	require.NoError(t, r.Draw())
	assert.Zero(t, out.Len(), "no size yet")

	r.Dispatch(ResizeEvent{WinSize{Rows: 6, Cols: 20}})
	r.Dispatch(TitleEvent("vcam"))
	r.Dispatch(FrameEvent{solid(8, 8, color.White)})
	require.NoError(t, r.Draw())

	screen := visible(out.Bytes())
	require.Len(t, screen, 120)
	status := screen[100:]
	assert.Equal(t, " vcam", status[:5])
	assert.True(t, strings.HasSuffix(status, "1 frames "))
}

func TestRendererNarrowStatus(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererTo(&out)
	r.Dispatch(ResizeEvent{WinSize{Rows: 3, Cols: 4}})
	r.Dispatch(LogEvent{Text: "a long message", Level: LogLevelError})

	require.NoError(t, r.Draw())
	assert.Len(t, visible(out.Bytes()), 12)
}

type failingReader struct{ reads int }

func (r *failingReader) Read([]byte) (int, error) {
	r.reads++
	return 0, errors.New("input/output error")
}

func TestReadRunes(t *testing.T) {
	var got []rune
	readRunes(strings.NewReader("ab"), func(c rune) { got = append(got, c) })
	assert.Equal(t, []rune{'a', 'b'}, got)

	r := &failingReader{}
	done := make(chan struct{})
	go func() {
		readRunes(r, func(rune) {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("read loop kept going after a read error")
	}
	assert.Equal(t, 1, r.reads)
}
