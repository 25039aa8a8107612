package term

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"
)

const statusHeight = 1

// Renderer draws the preview screen: the latest frame above a one line
// status bar. State changes arrive through Dispatch; frames that arrive
// while one is being drawn replace each other.
type Renderer struct {
	out io.Writer

	requestFrame chan struct{}
	done         chan struct{}

	stateMu sync.Mutex
	state   State

	stopOnce sync.Once
}

// NewRenderer returns a renderer drawing to stdout.
func NewRenderer() *Renderer {
	return NewRendererTo(os.Stdout)
}

// NewRendererTo returns a renderer drawing to out.
func NewRendererTo(out io.Writer) *Renderer {
	return &Renderer{
		out:          out,
		requestFrame: make(chan struct{}, 1),
		done:         make(chan struct{}),
	}
}

func (r *Renderer) GetState() State {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()

	return r.state
}

func (r *Renderer) Dispatch(e Event) {
	r.stateMu.Lock()
	newState := StateReducer(r.state, e)
	changed := !reflect.DeepEqual(r.state, newState)
	r.state = newState
	r.stateMu.Unlock()

	if changed {
		r.RequestFrame()
	}
}

func (r *Renderer) RequestFrame() {
	select {
	case r.requestFrame <- struct{}{}:
	default:
	}
}

// Draw renders the current state synchronously.
func (r *Renderer) Draw() error {
	s := r.GetState()
	if s.WinSize.Cols == 0 || s.WinSize.Rows <= statusHeight {
		return nil
	}

	var buf bytes.Buffer
	r.drawVideo(&buf, s)
	r.drawStatus(&buf, s)

	_, err := io.Copy(r.out, &buf)
	return err
}

func (r *Renderer) drawVideo(buf *bytes.Buffer, s State) {
	a := ANSI{buf}

	a.Background(color.Black)
	a.Bold()

	drawFrame(buf, s.Image, s.WinSize, s.WinSize.Rows-statusHeight, s.Light)
}

func (r *Renderer) drawStatus(buf *bytes.Buffer, s State) {
	a := ANSI{buf}
	width := s.WinSize.Cols

	a.CursorPosition(s.WinSize.Rows, 1)
	a.Normal()
	a.Background(color.RGBA{0x12, 0x12, 0x12, 0xff})

	right := fmt.Sprintf("%d frames ", s.Frames)
	left := " " + s.Title
	a.Foreground(color.RGBA{0x00, 0xff, 0xff, 0xff})
	if s.Log != nil {
		left = " " + s.Log.Text
		if s.Log.Level == LogLevelError {
			a.Foreground(color.RGBA{0xff, 0x00, 0x00, 0xff})
		}
	}

	line := fit(left, width-utf8.RuneCountInString(right))
	if pad := width - utf8.RuneCountInString(line) - utf8.RuneCountInString(right); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	line += right
	buf.WriteString(fit(line, width))
}

// fit truncates s to at most n runes.
func fit(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func (r *Renderer) loop() {
	for {
		select {
		case <-r.requestFrame:
			r.Draw()
		case <-r.done:
			return
		}
	}
}

// Start clears the screen and begins drawing on every state change.
func (r *Renderer) Start() {
	var buf bytes.Buffer

	a := ANSI{&buf}
	a.Clear()
	a.HideCursor()

	io.Copy(r.out, &buf)

	go r.loop()
}

// Stop ends drawing, clears the screen and restores the cursor.
func (r *Renderer) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)

		var buf bytes.Buffer
		a := ANSI{&buf}
		a.ShowCursor()
		a.Reset()
		a.Clear()
		a.CursorPosition(1, 1)

		io.Copy(r.out, &buf)
	})
}
