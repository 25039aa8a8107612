package term

import "image"

// An Event changes the preview state. Events are processed by Renderer's
// Dispatch method.
type Event interface{}

// FrameEvent is sent when a new preview frame has been decoded.
type FrameEvent struct {
	Image image.Image
}

// ResizeEvent indicates that the terminal window's size has changed.
type ResizeEvent struct {
	WinSize WinSize
}

// ToggleLightEvent switches between dark and light background rendering.
type ToggleLightEvent struct{}

// TitleEvent sets the status bar title.
type TitleEvent string

// LogLevel indicates the severity of a LogEvent message
type LogLevel int

const (
	LogLevelInfo LogLevel = iota
	LogLevelError
)

// A LogEvent shows a message in the status bar until the next frame.
type LogEvent struct {
	Text  string
	Level LogLevel
}
