package gphoto2

/*
#include <stdlib.h>
#include <gphoto2/gphoto2.h>
*/
import "C"
import (
	"context"
	"sync"
	"time"
	"unsafe"
)

// Camera is an opened camera. Close it when done; the owning Context stays
// alive until then.
type Camera struct {
	ctx *Context
	ptr *C.Camera

	closeOnce sync.Once
}

func (c *Context) newCamera(ptr *C.Camera) (*Camera, error) {
	if err := c.acquire(); err != nil {
		C.gp_camera_unref(ptr)
		return nil, err
	}
	return &Camera{ctx: c, ptr: ptr}, nil
}

// do runs fn on the context's thread, failing with ErrClosed once the
// camera has been closed.
func (cam *Camera) do(ctx context.Context, fn func() error) error {
	return cam.ctx.do(ctx, func() error {
		if cam.ptr == nil {
			return ErrClosed
		}
		return fn()
	})
}

// Close ends the session with the camera and releases it.
func (cam *Camera) Close() error {
	var err error
	cam.closeOnce.Do(func() {
		err = cam.ctx.do(context.Background(), func() error {
			exitErr := call(C.gp_camera_exit(cam.ptr, cam.ctx.ptr))
			C.gp_camera_unref(cam.ptr)
			cam.ptr = nil
			return exitErr
		})
		cam.ctx.release()
	})
	return err
}

// CaptureImage takes a picture. The image stays on the camera at the
// returned path; use FS to download it.
func (cam *Camera) CaptureImage(ctx context.Context) (FilePath, error) {
	var path FilePath

	err := cam.do(ctx, func() error {
		var p C.CameraFilePath
		if err := call(C.gp_camera_capture(cam.ptr, C.GP_CAPTURE_IMAGE, &p, cam.ctx.ptr)); err != nil {
			return err
		}
		path = newFilePath(&p)
		return nil
	})

	return path, err
}

// CapturePreview grabs a preview frame (usually a small JPEG) without
// storing anything on the camera.
func (cam *Camera) CapturePreview(ctx context.Context) (*CameraFile, error) {
	var file *CameraFile

	err := cam.do(ctx, func() error {
		var ptr *C.CameraFile
		if err := call(C.gp_file_new(&ptr)); err != nil {
			return err
		}
		if err := call(C.gp_camera_capture_preview(cam.ptr, ptr, cam.ctx.ptr)); err != nil {
			C.gp_file_unref(ptr)
			return err
		}
		file = newCameraFile(cam.ctx, ptr)
		return nil
	})

	return file, err
}

// TriggerCapture releases the shutter without waiting for the image. The
// resulting file is announced through WaitEvent.
func (cam *Camera) TriggerCapture(ctx context.Context) error {
	return cam.do(ctx, func() error {
		return call(C.gp_camera_trigger_capture(cam.ptr, cam.ctx.ptr))
	})
}

// WaitEvent waits up to timeout for the next camera event. A Timeout event
// is returned when nothing happened.
func (cam *Camera) WaitEvent(ctx context.Context, timeout time.Duration) (Event, error) {
	var ev Event

	err := cam.do(ctx, func() error {
		var typ C.CameraEventType
		var data unsafe.Pointer

		if err := call(C.gp_camera_wait_for_event(cam.ptr, C.int(timeout.Milliseconds()), &typ, &data, cam.ctx.ptr)); err != nil {
			return err
		}
		defer C.free(data)

		ev = newEvent(typ, data)
		return nil
	})

	return ev, err
}

// Abilities returns the driver abilities of the camera.
func (cam *Camera) Abilities(ctx context.Context) (Abilities, error) {
	var out Abilities

	err := cam.do(ctx, func() error {
		var a C.CameraAbilities
		if err := call(C.gp_camera_get_abilities(cam.ptr, &a)); err != nil {
			return err
		}
		out = newAbilities(&a)
		return nil
	})

	return out, err
}

type cameraTextFunc func(*C.Camera, *C.CameraText, *C.GPContext) C.int

func (cam *Camera) text(ctx context.Context, fn cameraTextFunc) (string, error) {
	var out string

	err := cam.do(ctx, func() error {
		text := (*C.CameraText)(C.calloc(1, C.sizeof_CameraText))
		defer C.free(unsafe.Pointer(text))

		if err := call(fn(cam.ptr, text, cam.ctx.ptr)); err != nil {
			return err
		}
		out = C.GoString(&text.text[0])
		return nil
	})

	return out, err
}

// Summary returns a human readable description of the camera and its state.
func (cam *Camera) Summary(ctx context.Context) (string, error) {
	return cam.text(ctx, func(c *C.Camera, t *C.CameraText, gc *C.GPContext) C.int {
		return C.gp_camera_get_summary(c, t, gc)
	})
}

// About returns information about the camera driver.
func (cam *Camera) About(ctx context.Context) (string, error) {
	return cam.text(ctx, func(c *C.Camera, t *C.CameraText, gc *C.GPContext) C.int {
		return C.gp_camera_get_about(c, t, gc)
	})
}

// Manual returns the driver's manual text.
func (cam *Camera) Manual(ctx context.Context) (string, error) {
	return cam.text(ctx, func(c *C.Camera, t *C.CameraText, gc *C.GPContext) C.int {
		return C.gp_camera_get_manual(c, t, gc)
	})
}

// PortInfo returns the port the camera is connected through.
func (cam *Camera) PortInfo(ctx context.Context) (PortInfo, error) {
	var out PortInfo

	err := cam.do(ctx, func() error {
		var info C.GPPortInfo
		if err := call(C.gp_camera_get_port_info(cam.ptr, &info)); err != nil {
			return err
		}
		p, err := newPortInfo(info)
		if err != nil {
			return err
		}
		out = p
		return nil
	})

	return out, err
}

// Storages lists the storage media of the camera.
func (cam *Camera) Storages(ctx context.Context) ([]StorageInfo, error) {
	var out []StorageInfo

	err := cam.do(ctx, func() error {
		var sifs *C.CameraStorageInformation
		var n C.int

		if err := call(C.gp_camera_get_storageinfo(cam.ptr, &sifs, &n, cam.ctx.ptr)); err != nil {
			return err
		}
		if sifs == nil {
			return nil
		}
		defer C.free(unsafe.Pointer(sifs))

		for _, s := range unsafe.Slice(sifs, int(n)) {
			out = append(out, newStorageInfo(&s))
		}
		return nil
	})

	return out, err
}

// Config returns the full configuration tree. The returned widget is the
// root of the tree; Close it when done.
func (cam *Camera) Config(ctx context.Context) (*Widget, error) {
	var w *Widget

	err := cam.do(ctx, func() error {
		var ptr *C.CameraWidget
		if err := call(C.gp_camera_get_config(cam.ptr, &ptr, cam.ctx.ptr)); err != nil {
			return err
		}
		w = newWidgetTree(ptr)
		return nil
	})

	return w, err
}

// ConfigKey returns a single configuration widget by name, e.g.
// "shutterspeed". Close it when done.
func (cam *Camera) ConfigKey(ctx context.Context, name string) (*Widget, error) {
	var w *Widget

	err := cam.do(ctx, func() error {
		cname := cString(name)
		defer freeString(cname)

		var ptr *C.CameraWidget
		if err := call(C.gp_camera_get_single_config(cam.ptr, cname, &ptr, cam.ctx.ptr)); err != nil {
			return err
		}
		w = newWidgetTree(ptr)
		return nil
	})

	return w, err
}

// SetConfig writes w back to the camera. A root window writes the whole
// tree, any other widget is written on its own by name.
func (cam *Camera) SetConfig(ctx context.Context, w *Widget) error {
	return cam.do(ctx, func() error {
		widgetMu.RLock()
		defer widgetMu.RUnlock()

		if w.tree.resolve().freed {
			return ErrClosed
		}

		var typ C.CameraWidgetType
		if err := call(C.gp_widget_get_type(w.ptr, &typ)); err != nil {
			return err
		}
		if typ == C.GP_WIDGET_WINDOW {
			return call(C.gp_camera_set_config(cam.ptr, w.ptr, cam.ctx.ptr))
		}

		var name *C.char
		if err := call(C.gp_widget_get_name(w.ptr, &name)); err != nil {
			return err
		}
		return call(C.gp_camera_set_single_config(cam.ptr, name, w.ptr, cam.ctx.ptr))
	})
}

// FS returns the camera's filesystem.
func (cam *Camera) FS() *FS {
	return &FS{cam: cam}
}
