package gphoto2

import "sync"

// Native callbacks get a handle instead of a Go pointer; the handle is
// looked up here when libgphoto2 calls back into Go.

type handleID uintptr

var (
	handlesMu  sync.Mutex
	nextHandle handleID
	handles    = make(map[handleID]interface{})
)

func register(v interface{}) handleID {
	handlesMu.Lock()
	defer handlesMu.Unlock()

	nextHandle++
	for nextHandle == 0 || handles[nextHandle] != nil {
		nextHandle++
	}
	handles[nextHandle] = v

	return nextHandle
}

func lookup(id handleID) interface{} {
	handlesMu.Lock()
	defer handlesMu.Unlock()

	return handles[id]
}

func unregister(id handleID) {
	handlesMu.Lock()
	defer handlesMu.Unlock()

	delete(handles, id)
}
