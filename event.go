package gphoto2

/*
#include <gphoto2/gphoto2.h>
*/
import "C"
import (
	"fmt"
	"unsafe"
)

// EventType is the kind of event returned by Camera.WaitEvent.
type EventType int

const (
	EventUnknown         EventType = C.GP_EVENT_UNKNOWN
	EventTimeout         EventType = C.GP_EVENT_TIMEOUT
	EventFileAdded       EventType = C.GP_EVENT_FILE_ADDED
	EventFolderAdded     EventType = C.GP_EVENT_FOLDER_ADDED
	EventCaptureComplete EventType = C.GP_EVENT_CAPTURE_COMPLETE
	EventFileChanged     EventType = C.GP_EVENT_FILE_CHANGED
)

func (t EventType) String() string {
	switch t {
	case EventUnknown:
		return "unknown"
	case EventTimeout:
		return "timeout"
	case EventFileAdded:
		return "file added"
	case EventFolderAdded:
		return "folder added"
	case EventCaptureComplete:
		return "capture complete"
	case EventFileChanged:
		return "file changed"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is something the camera reported.
type Event struct {
	Type EventType
	// Path is set for FileAdded, FolderAdded and FileChanged.
	Path FilePath
	// Text is the driver's description of an Unknown event, if any.
	Text string
}

func (e Event) String() string {
	switch e.Type {
	case EventFileAdded, EventFolderAdded, EventFileChanged:
		return fmt.Sprintf("%s: %s", e.Type, e.Path)
	case EventUnknown:
		if e.Text != "" {
			return fmt.Sprintf("%s: %s", e.Type, e.Text)
		}
	}
	return e.Type.String()
}

// newEvent copies the event payload. data stays owned by the caller.
func newEvent(typ C.CameraEventType, data unsafe.Pointer) Event {
	ev := Event{Type: EventType(typ)}

	switch ev.Type {
	case EventFileAdded, EventFolderAdded, EventFileChanged:
		if data != nil {
			ev.Path = newFilePath((*C.CameraFilePath)(data))
		}
	case EventUnknown:
		if data != nil {
			ev.Text = C.GoString((*C.char)(data))
		}
	}

	return ev
}
