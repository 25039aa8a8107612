// Package gphoto2 binds libgphoto2, the camera control library, for Go.
//
// Everything starts from a Context. A Context owns the native GPContext and a
// dedicated OS thread on which every native call for that context (and the
// cameras, files and widgets obtained through it) is executed, one at a time.
//
//	gctx, err := gphoto2.NewContext()
//	if err != nil {
//		return err
//	}
//	defer gctx.Close()
//
//	cam, err := gctx.AutodetectCamera(ctx)
//	if err != nil {
//		return err
//	}
//	defer cam.Close()
//
//	path, err := cam.CaptureImage(ctx)
//
// Handles are released exactly once, either by Close or, for files and
// configuration trees, by a finalizer if Close was never called.
package gphoto2

/*
#cgo pkg-config: libgphoto2 libgphoto2_port

#include <stdlib.h>
#include <gphoto2/gphoto2.h>
#include <gphoto2/gphoto2-version.h>
*/
import "C"
import (
	"errors"
	"unsafe"
)

// ErrClosed is returned when a handle is used after Close.
var ErrClosed = errors.New("gphoto2: use of closed handle")

// LibraryVersion returns the version string of the linked libgphoto2.
func LibraryVersion() string {
	v := C.gp_library_version(C.GP_VERSION_SHORT)
	if v == nil || *v == nil {
		return ""
	}
	return C.GoString(*v)
}

// cString is freed by the caller with freeString.
func cString(s string) *C.char {
	return C.CString(s)
}

func freeString(s *C.char) {
	C.free(unsafe.Pointer(s))
}

func call(ret C.int) error {
	_, err := checkResult(int(ret))
	return err
}

// unsafePointer passes a Go value to the void pointer parameters used by
// the widget value calls.
func unsafePointer[T any](p *T) unsafe.Pointer {
	return unsafe.Pointer(p)
}
