package gphoto2

/*
#include <stdint.h>
*/
import "C"

// Entry points called from bridge.c. The preamble here must stay free of
// definitions since it is copied into _cgo_export.h.

//export gp2goLog
func gp2goLog(level C.int, domain, str *C.char, handle C.uintptr_t) {
	sub, ok := lookup(handleID(handle)).(*LogSubscription)
	if !ok {
		return
	}
	sub.push(LogLevel(level), C.GoString(domain), C.GoString(str))
}

//export gp2goProgressStart
func gp2goProgressStart(handle C.uintptr_t, target C.float, text *C.char) C.uint {
	c, ok := lookup(handleID(handle)).(*Context)
	if !ok {
		return 0
	}
	return C.uint(c.progressStart(float32(target), C.GoString(text)))
}

//export gp2goProgressUpdate
func gp2goProgressUpdate(handle C.uintptr_t, id C.uint, current C.float) {
	if c, ok := lookup(handleID(handle)).(*Context); ok {
		c.progressUpdate(uint32(id), float32(current))
	}
}

//export gp2goProgressStop
func gp2goProgressStop(handle C.uintptr_t, id C.uint) {
	if c, ok := lookup(handleID(handle)).(*Context); ok {
		c.progressStop(uint32(id))
	}
}

//export gp2goContextText
func gp2goContextText(handle C.uintptr_t, kind C.int, text *C.char) {
	if c, ok := lookup(handleID(handle)).(*Context); ok {
		c.text(contextTextKind(kind), C.GoString(text))
	}
}

//export gp2goContextCancelled
func gp2goContextCancelled(handle C.uintptr_t) C.int {
	c, ok := lookup(handleID(handle)).(*Context)
	if !ok {
		return 0
	}
	if c.cancelled() {
		return 1
	}
	return 0
}
