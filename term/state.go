package term

import "image"

// State is everything the preview screen shows.
type State struct {
	// Frames comes first so that comparing states after a new frame
	// doesn't walk the pixels.
	Frames int
	Image  image.Image

	WinSize WinSize
	Light   bool

	// Title is shown on the left of the status bar, usually the camera model.
	Title string
	Log   *LogEvent
}
