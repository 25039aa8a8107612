package term

// StateReducer returns the state after event.
func StateReducer(s State, event Event) State {
	switch e := event.(type) {
	case FrameEvent:
		s.Image = e.Image
		s.Frames++
		if s.Log != nil && s.Log.Level == LogLevelInfo {
			s.Log = nil
		}
	case ResizeEvent:
		s.WinSize = e.WinSize
	case ToggleLightEvent:
		s.Light = !s.Light
	case TitleEvent:
		s.Title = string(e)
	case LogEvent:
		s.Log = &e
	}
	return s
}
