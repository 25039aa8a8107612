package gphoto2

/*
#include <gphoto2/gphoto2.h>
*/
import "C"

type listEntry struct {
	name  string
	value string
}

// cameraList wraps the native name/value list used for autodetection and
// folder listings.
type cameraList struct {
	ptr *C.CameraList
}

func newCameraList() (*cameraList, error) {
	var ptr *C.CameraList
	if err := call(C.gp_list_new(&ptr)); err != nil {
		return nil, err
	}
	return &cameraList{ptr: ptr}, nil
}

func (l *cameraList) free() {
	C.gp_list_unref(l.ptr)
}

func (l *cameraList) entries() ([]listEntry, error) {
	n, err := checkResult(int(C.gp_list_count(l.ptr)))
	if err != nil {
		return nil, err
	}

	out := make([]listEntry, 0, n)
	for i := 0; i < n; i++ {
		var name, value *C.char
		if err := call(C.gp_list_get_name(l.ptr, C.int(i), &name)); err != nil {
			return nil, err
		}
		if err := call(C.gp_list_get_value(l.ptr, C.int(i), &value)); err != nil {
			return nil, err
		}
		// Both strings belong to the list.
		out = append(out, listEntry{name: C.GoString(name), value: C.GoString(value)})
	}
	return out, nil
}

func (l *cameraList) names() ([]string, error) {
	entries, err := l.entries()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names, nil
}
