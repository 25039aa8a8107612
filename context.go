package gphoto2

/*
#include <stdlib.h>
#include <gphoto2/gphoto2.h>

#include "bridge.h"
*/
import "C"
import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dialup-inc/gphoto2/internal/worker"
)

// ProgressFuncs receive progress reports for long running operations such
// as downloads. Start returns an id that is passed to Update and Stop.
type ProgressFuncs struct {
	Start  func(target float32, text string) uint32
	Update func(id uint32, current float32)
	Stop   func(id uint32)
}

type contextTextKind int

const (
	contextError contextTextKind = iota
	contextStatus
	contextMessage
)

// A Context is the entry point to libgphoto2.
//
// It is safe for concurrent use; calls are queued and executed in order on
// the context's own OS thread.
type Context struct {
	ptr    *C.GPContext
	thread *worker.Thread
	handle handleID

	hooksMu   sync.Mutex
	progress  ProgressFuncs
	onError   func(string)
	onStatus  func(string)
	onMessage func(string)

	// running is only touched from the worker thread
	running context.Context

	refMu     sync.Mutex
	refs      int
	closeOnce sync.Once
}

// NewContext creates a native context and starts its worker thread.
func NewContext() (*Context, error) {
	ptr := C.gp_context_new()
	if ptr == nil {
		return nil, newError(ResultNoMemory, "gp_context_new")
	}

	c := &Context{
		ptr:    ptr,
		thread: worker.New(16),
		refs:   1,
	}
	c.handle = register(c)
	C.gp2go_context_install(ptr, C.uintptr_t(c.handle))

	return c, nil
}

// Close releases the caller's reference. The native context is destroyed
// once every Camera obtained from it has been closed too.
func (c *Context) Close() error {
	c.closeOnce.Do(c.release)
	return nil
}

func (c *Context) acquire() error {
	c.refMu.Lock()
	defer c.refMu.Unlock()

	if c.refs == 0 {
		return ErrClosed
	}
	c.refs++
	return nil
}

func (c *Context) release() {
	c.refMu.Lock()
	c.refs--
	last := c.refs == 0
	c.refMu.Unlock()

	if !last {
		return
	}

	c.thread.Do(context.Background(), func() {
		C.gp2go_context_uninstall(c.ptr)
		C.gp_context_unref(c.ptr)
		c.ptr = nil
	})
	c.thread.Stop()
	unregister(c.handle)
}

// do runs fn on the worker thread. While fn runs, the native cancel hook
// reports ctx's cancellation to libgphoto2.
func (c *Context) do(ctx context.Context, fn func() error) error {
	var err error
	werr := c.thread.Do(ctx, func() {
		if c.ptr == nil {
			err = ErrClosed
			return
		}
		c.running = ctx
		defer func() { c.running = nil }()
		err = fn()
	})
	if errors.Is(werr, worker.ErrStopped) {
		return ErrClosed
	}
	if werr != nil {
		return werr
	}
	if err != nil && KindOf(err) == KindCancelled && ctx.Err() != nil {
		return fmt.Errorf("%w: %w", err, ctx.Err())
	}
	return err
}

func (c *Context) cancelled() bool {
	return c.running != nil && c.running.Err() != nil
}

// SetProgressFuncs installs progress callbacks. They run on the context's
// worker thread and must not call back into the Context.
func (c *Context) SetProgressFuncs(p ProgressFuncs) {
	c.hooksMu.Lock()
	c.progress = p
	c.hooksMu.Unlock()
}

// SetErrorFunc installs a callback for error messages the library wants to
// show to a user.
func (c *Context) SetErrorFunc(fn func(text string)) {
	c.hooksMu.Lock()
	c.onError = fn
	c.hooksMu.Unlock()
}

// SetStatusFunc installs a callback for status updates.
func (c *Context) SetStatusFunc(fn func(text string)) {
	c.hooksMu.Lock()
	c.onStatus = fn
	c.hooksMu.Unlock()
}

// SetMessageFunc installs a callback for informational messages.
func (c *Context) SetMessageFunc(fn func(text string)) {
	c.hooksMu.Lock()
	c.onMessage = fn
	c.hooksMu.Unlock()
}

func (c *Context) progressStart(target float32, text string) uint32 {
	c.hooksMu.Lock()
	fn := c.progress.Start
	c.hooksMu.Unlock()

	if fn == nil {
		return 0
	}
	return fn(target, text)
}

func (c *Context) progressUpdate(id uint32, current float32) {
	c.hooksMu.Lock()
	fn := c.progress.Update
	c.hooksMu.Unlock()

	if fn != nil {
		fn(id, current)
	}
}

func (c *Context) progressStop(id uint32) {
	c.hooksMu.Lock()
	fn := c.progress.Stop
	c.hooksMu.Unlock()

	if fn != nil {
		fn(id)
	}
}

func (c *Context) text(kind contextTextKind, text string) {
	c.hooksMu.Lock()
	var fn func(string)
	switch kind {
	case contextError:
		fn = c.onError
	case contextStatus:
		fn = c.onStatus
	case contextMessage:
		fn = c.onMessage
	}
	c.hooksMu.Unlock()

	if fn != nil {
		fn(text)
	}
}

// CameraDescriptor identifies a camera by model name and port path, as
// returned by ListCameras.
type CameraDescriptor struct {
	Model string
	Port  string
}

func (d CameraDescriptor) String() string {
	return fmt.Sprintf("%s on %s", d.Model, d.Port)
}

// ListCameras autodetects connected cameras.
func (c *Context) ListCameras(ctx context.Context) ([]CameraDescriptor, error) {
	var cameras []CameraDescriptor

	err := c.do(ctx, func() error {
		list, err := newCameraList()
		if err != nil {
			return err
		}
		defer list.free()

		if err := call(C.gp_camera_autodetect(list.ptr, c.ptr)); err != nil {
			return err
		}

		entries, err := list.entries()
		if err != nil {
			return err
		}
		for _, e := range entries {
			cameras = append(cameras, CameraDescriptor{Model: e.name, Port: e.value})
		}
		return nil
	})

	return cameras, err
}

// AutodetectCamera opens the first camera the library finds.
func (c *Context) AutodetectCamera(ctx context.Context) (*Camera, error) {
	var cam *C.Camera

	err := c.do(ctx, func() error {
		var ptr *C.Camera
		if err := call(C.gp_camera_new(&ptr)); err != nil {
			return err
		}
		if err := call(C.gp_camera_init(ptr, c.ptr)); err != nil {
			C.gp_camera_unref(ptr)
			return err
		}
		cam = ptr
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.newCamera(cam)
}

// Camera opens the camera described by d.
func (c *Context) Camera(ctx context.Context, d CameraDescriptor) (*Camera, error) {
	var cam *C.Camera

	err := c.do(ctx, func() error {
		var ptr *C.Camera
		if err := call(C.gp_camera_new(&ptr)); err != nil {
			return err
		}
		if err := c.setupCamera(ptr, d); err != nil {
			C.gp_camera_unref(ptr)
			return err
		}
		cam = ptr
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.newCamera(cam)
}

// setupCamera must run on the worker thread.
func (c *Context) setupCamera(cam *C.Camera, d CameraDescriptor) error {
	abilities, err := c.loadAbilitiesList()
	if err != nil {
		return err
	}
	defer C.gp_abilities_list_free(abilities)

	model := cString(d.Model)
	defer freeString(model)

	idx := C.gp_abilities_list_lookup_model(abilities, model)
	if idx < 0 {
		return newError(Result(idx), fmt.Sprintf("model %q", d.Model))
	}

	var a C.CameraAbilities
	if err := call(C.gp_abilities_list_get_abilities(abilities, idx, &a)); err != nil {
		return err
	}
	if err := call(C.gp_camera_set_abilities(cam, a)); err != nil {
		return err
	}

	ports, err := loadPortInfoList()
	if err != nil {
		return err
	}
	defer C.gp_port_info_list_free(ports)

	path := cString(d.Port)
	defer freeString(path)

	p := C.gp_port_info_list_lookup_path(ports, path)
	if p < 0 {
		return newError(Result(p), fmt.Sprintf("port %q", d.Port))
	}

	var info C.GPPortInfo
	if err := call(C.gp_port_info_list_get_info(ports, p, &info)); err != nil {
		return err
	}
	if err := call(C.gp_camera_set_port_info(cam, info)); err != nil {
		return err
	}

	return call(C.gp_camera_init(cam, c.ptr))
}

// loadAbilitiesList must run on the worker thread. The caller frees the list.
func (c *Context) loadAbilitiesList() (*C.CameraAbilitiesList, error) {
	var list *C.CameraAbilitiesList
	if err := call(C.gp_abilities_list_new(&list)); err != nil {
		return nil, err
	}
	if err := call(C.gp_abilities_list_load(list, c.ptr)); err != nil {
		C.gp_abilities_list_free(list)
		return nil, err
	}
	return list, nil
}

// ListAbilities returns the abilities of every camera model the installed
// drivers support.
func (c *Context) ListAbilities(ctx context.Context) ([]Abilities, error) {
	var out []Abilities

	err := c.do(ctx, func() error {
		list, err := c.loadAbilitiesList()
		if err != nil {
			return err
		}
		defer C.gp_abilities_list_free(list)

		n, err := checkResult(int(C.gp_abilities_list_count(list)))
		if err != nil {
			return err
		}

		out = make([]Abilities, 0, n)
		for i := 0; i < n; i++ {
			var a C.CameraAbilities
			if err := call(C.gp_abilities_list_get_abilities(list, C.int(i), &a)); err != nil {
				return err
			}
			out = append(out, newAbilities(&a))
		}
		return nil
	})

	return out, err
}

// ListPorts returns every port the installed port drivers know about.
func (c *Context) ListPorts(ctx context.Context) ([]PortInfo, error) {
	var out []PortInfo

	err := c.do(ctx, func() error {
		list, err := loadPortInfoList()
		if err != nil {
			return err
		}
		defer C.gp_port_info_list_free(list)

		n, err := checkResult(int(C.gp_port_info_list_count(list)))
		if err != nil {
			return err
		}

		out = make([]PortInfo, 0, n)
		for i := 0; i < n; i++ {
			var info C.GPPortInfo
			if err := call(C.gp_port_info_list_get_info(list, C.int(i), &info)); err != nil {
				return err
			}
			p, err := newPortInfo(info)
			if err != nil {
				return err
			}
			out = append(out, p)
		}
		return nil
	})

	return out, err
}
