package gphoto2

/*
#include <stdlib.h>
#include <gphoto2/gphoto2.h>
*/
import "C"
import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// WidgetType is the kind of a configuration widget.
type WidgetType int

const (
	WidgetWindow  WidgetType = C.GP_WIDGET_WINDOW
	WidgetSection WidgetType = C.GP_WIDGET_SECTION
	WidgetText    WidgetType = C.GP_WIDGET_TEXT
	WidgetRange   WidgetType = C.GP_WIDGET_RANGE
	WidgetToggle  WidgetType = C.GP_WIDGET_TOGGLE
	WidgetRadio   WidgetType = C.GP_WIDGET_RADIO
	WidgetMenu    WidgetType = C.GP_WIDGET_MENU
	WidgetButton  WidgetType = C.GP_WIDGET_BUTTON
	WidgetDate    WidgetType = C.GP_WIDGET_DATE
)

func (t WidgetType) String() string {
	switch t {
	case WidgetWindow:
		return "window"
	case WidgetSection:
		return "section"
	case WidgetText:
		return "text"
	case WidgetRange:
		return "range"
	case WidgetToggle:
		return "toggle"
	case WidgetRadio:
		return "radio"
	case WidgetMenu:
		return "menu"
	case WidgetButton:
		return "button"
	case WidgetDate:
		return "date"
	default:
		return fmt.Sprintf("WidgetType(%d)", int(t))
	}
}

// HasValue reports whether widgets of this type carry a value.
func (t WidgetType) HasValue() bool {
	switch t {
	case WidgetWindow, WidgetSection, WidgetButton:
		return false
	}
	return true
}

// Widget trees are plain memory on the native side, so they don't go
// through a Context's worker. One lock guards all of them; trees are small
// and Append moves nodes between trees.
var widgetMu sync.RWMutex

// widgetTree owns a native widget tree. Once appended to another tree it
// forwards to that tree's owner.
type widgetTree struct {
	root  *C.CameraWidget
	owner *widgetTree
	freed bool
}

func (t *widgetTree) resolve() *widgetTree {
	for t.owner != nil {
		t = t.owner
	}
	return t
}

func (t *widgetTree) free() {
	t = t.resolve()
	if t.freed {
		return
	}
	C.gp_widget_free(t.root)
	t.root = nil
	t.freed = true
}

// Widget is a node of a configuration tree.
//
// Every node shares its tree: closing any of them frees the whole tree, and
// using a node of a closed tree fails with ErrClosed.
type Widget struct {
	ptr  *C.CameraWidget
	tree *widgetTree
}

func newWidgetTree(ptr *C.CameraWidget) *Widget {
	t := &widgetTree{root: ptr}
	runtime.SetFinalizer(t, func(t *widgetTree) {
		widgetMu.Lock()
		defer widgetMu.Unlock()
		if t.owner == nil {
			t.free()
		}
	})
	return &Widget{ptr: ptr, tree: t}
}

// NewWidget creates a standalone widget. It is the root of its own tree
// until appended to another widget.
func NewWidget(typ WidgetType, label string) (*Widget, error) {
	clabel := cString(label)
	defer freeString(clabel)

	var ptr *C.CameraWidget
	if err := call(C.gp_widget_new(C.CameraWidgetType(typ), clabel, &ptr)); err != nil {
		return nil, err
	}
	return newWidgetTree(ptr), nil
}

func (w *Widget) read(fn func() error) error {
	widgetMu.RLock()
	defer widgetMu.RUnlock()

	if w.tree.resolve().freed {
		return ErrClosed
	}
	return fn()
}

func (w *Widget) write(fn func() error) error {
	widgetMu.Lock()
	defer widgetMu.Unlock()

	if w.tree.resolve().freed {
		return ErrClosed
	}
	return fn()
}

func (w *Widget) child(ptr *C.CameraWidget) *Widget {
	return &Widget{ptr: ptr, tree: w.tree}
}

// Close frees the tree this widget belongs to.
func (w *Widget) Close() error {
	widgetMu.Lock()
	defer widgetMu.Unlock()

	w.tree.free()
	return nil
}

func (w *Widget) str(get func(*C.CameraWidget, **C.char) C.int) (string, error) {
	var out string
	err := w.read(func() error {
		var s *C.char
		if err := call(get(w.ptr, &s)); err != nil {
			return err
		}
		out = C.GoString(s)
		return nil
	})
	return out, err
}

// Name returns the widget's name, the key used by Camera.ConfigKey.
func (w *Widget) Name() (string, error) {
	return w.str(func(p *C.CameraWidget, s **C.char) C.int { return C.gp_widget_get_name(p, s) })
}

// Label returns the human readable label.
func (w *Widget) Label() (string, error) {
	return w.str(func(p *C.CameraWidget, s **C.char) C.int { return C.gp_widget_get_label(p, s) })
}

// Info returns the widget's help text.
func (w *Widget) Info() (string, error) {
	return w.str(func(p *C.CameraWidget, s **C.char) C.int { return C.gp_widget_get_info(p, s) })
}

// ID returns the widget's unique id within its tree.
func (w *Widget) ID() (int, error) {
	var out int
	err := w.read(func() error {
		var id C.int
		if err := call(C.gp_widget_get_id(w.ptr, &id)); err != nil {
			return err
		}
		out = int(id)
		return nil
	})
	return out, err
}

// Readonly reports whether the camera refuses changes to this widget.
func (w *Widget) Readonly() (bool, error) {
	var out bool
	err := w.read(func() error {
		var ro C.int
		if err := call(C.gp_widget_get_readonly(w.ptr, &ro)); err != nil {
			return err
		}
		out = ro != 0
		return nil
	})
	return out, err
}

// Changed reports whether the value was modified since the last call, and
// clears the flag.
func (w *Widget) Changed() (bool, error) {
	var out bool
	err := w.write(func() error {
		n, err := checkResult(int(C.gp_widget_changed(w.ptr)))
		out = n != 0
		return err
	})
	return out, err
}

// Type returns the widget type.
func (w *Widget) Type() (WidgetType, error) {
	var out WidgetType
	err := w.read(func() error {
		t, err := w.typ()
		out = t
		return err
	})
	return out, err
}

// typ must be called with widgetMu held.
func (w *Widget) typ() (WidgetType, error) {
	var t C.CameraWidgetType
	if err := call(C.gp_widget_get_type(w.ptr, &t)); err != nil {
		return 0, err
	}
	return WidgetType(t), nil
}

// Range returns the bounds and step of a Range widget.
func (w *Widget) Range() (min, max, step float32, err error) {
	err = w.read(func() error {
		if err := w.expect(WidgetRange); err != nil {
			return err
		}
		var cmin, cmax, cstep C.float
		if err := call(C.gp_widget_get_range(w.ptr, &cmin, &cmax, &cstep)); err != nil {
			return err
		}
		min, max, step = float32(cmin), float32(cmax), float32(cstep)
		return nil
	})
	return min, max, step, err
}

// Choices returns the options of a Menu or Radio widget.
func (w *Widget) Choices() ([]string, error) {
	var out []string
	err := w.read(func() error {
		if err := w.expect(WidgetMenu, WidgetRadio); err != nil {
			return err
		}
		var err error
		out, err = w.choices()
		return err
	})
	return out, err
}

func (w *Widget) choices() ([]string, error) {
	n, err := checkResult(int(C.gp_widget_count_choices(w.ptr)))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		var s *C.char
		if err := call(C.gp_widget_get_choice(w.ptr, C.int(i), &s)); err != nil {
			return nil, err
		}
		out = append(out, C.GoString(s))
	}
	return out, nil
}

func (w *Widget) expect(types ...WidgetType) error {
	t, err := w.typ()
	if err != nil {
		return err
	}
	for _, want := range types {
		if t == want {
			return nil
		}
	}
	return errorf(ResultBadParameters, "%s widget", t)
}

// ChildCount returns the number of direct children.
func (w *Widget) ChildCount() (int, error) {
	var out int
	err := w.read(func() error {
		n, err := checkResult(int(C.gp_widget_count_children(w.ptr)))
		out = n
		return err
	})
	return out, err
}

// Child returns the i-th direct child.
func (w *Widget) Child(i int) (*Widget, error) {
	var out *Widget
	err := w.read(func() error {
		var ptr *C.CameraWidget
		if err := call(C.gp_widget_get_child(w.ptr, C.int(i), &ptr)); err != nil {
			return err
		}
		out = w.child(ptr)
		return nil
	})
	return out, err
}

// Children returns all direct children.
func (w *Widget) Children() ([]*Widget, error) {
	var out []*Widget
	err := w.read(func() error {
		n, err := checkResult(int(C.gp_widget_count_children(w.ptr)))
		if err != nil {
			return err
		}
		out = make([]*Widget, 0, n)
		for i := 0; i < n; i++ {
			var ptr *C.CameraWidget
			if err := call(C.gp_widget_get_child(w.ptr, C.int(i), &ptr)); err != nil {
				return err
			}
			out = append(out, w.child(ptr))
		}
		return nil
	})
	return out, err
}

func (w *Widget) find(key string, get func(*C.CameraWidget, *C.char, **C.CameraWidget) C.int) (*Widget, error) {
	var out *Widget
	err := w.read(func() error {
		ckey := cString(key)
		defer freeString(ckey)

		var ptr *C.CameraWidget
		if err := call(get(w.ptr, ckey, &ptr)); err != nil {
			return err
		}
		out = w.child(ptr)
		return nil
	})
	return out, err
}

// ChildByName searches the subtree for a widget by name.
func (w *Widget) ChildByName(name string) (*Widget, error) {
	return w.find(name, func(p *C.CameraWidget, k *C.char, out **C.CameraWidget) C.int {
		return C.gp_widget_get_child_by_name(p, k, out)
	})
}

// ChildByLabel searches the subtree for a widget by label.
func (w *Widget) ChildByLabel(label string) (*Widget, error) {
	return w.find(label, func(p *C.CameraWidget, k *C.char, out **C.CameraWidget) C.int {
		return C.gp_widget_get_child_by_label(p, k, out)
	})
}

// ChildByID searches the subtree for a widget by id.
func (w *Widget) ChildByID(id int) (*Widget, error) {
	var out *Widget
	err := w.read(func() error {
		var ptr *C.CameraWidget
		if err := call(C.gp_widget_get_child_by_id(w.ptr, C.int(id), &ptr)); err != nil {
			return err
		}
		out = w.child(ptr)
		return nil
	})
	return out, err
}

// Walk calls fn for w and then, depth first, for every widget below it.
func (w *Widget) Walk(fn func(w *Widget, depth int) error) error {
	return w.walk(fn, 0)
}

func (w *Widget) walk(fn func(*Widget, int) error, depth int) error {
	if err := fn(w, depth); err != nil {
		return err
	}
	children, err := w.Children()
	if err != nil {
		return err
	}
	for _, c := range children {
		if err := c.walk(fn, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Value returns the current value:
//
//	Text, Menu, Radio  string
//	Range              float32
//	Toggle             bool
//	Date               time.Time
//	Window, Section, Button  nil
func (w *Widget) Value() (interface{}, error) {
	var out interface{}
	err := w.read(func() error {
		t, err := w.typ()
		if err != nil {
			return err
		}

		switch t {
		case WidgetText, WidgetMenu, WidgetRadio:
			var s *C.char
			if err := call(C.gp_widget_get_value(w.ptr, unsafePointer(&s))); err != nil {
				return err
			}
			out = C.GoString(s)
		case WidgetRange:
			var f C.float
			if err := call(C.gp_widget_get_value(w.ptr, unsafePointer(&f))); err != nil {
				return err
			}
			out = float32(f)
		case WidgetToggle:
			var i C.int
			if err := call(C.gp_widget_get_value(w.ptr, unsafePointer(&i))); err != nil {
				return err
			}
			out = i != 0
		case WidgetDate:
			var i C.int
			if err := call(C.gp_widget_get_value(w.ptr, unsafePointer(&i))); err != nil {
				return err
			}
			out = time.Unix(int64(i), 0)
		}
		return nil
	})
	return out, err
}

// SetValue changes the value. v must have the Go type Value returns for
// the widget type; float64 is accepted for Range. Range values must lie
// within the bounds and Menu and Radio values must be one of Choices.
func (w *Widget) SetValue(v interface{}) error {
	return w.write(func() error {
		t, err := w.typ()
		if err != nil {
			return err
		}

		switch t {
		case WidgetWindow, WidgetSection, WidgetButton:
			return errorf(ResultBadParameters, "%s widget has no value", t)

		case WidgetText, WidgetMenu, WidgetRadio:
			s, ok := v.(string)
			if !ok {
				return errorf(ResultBadParameters, "%s widget expects a string, got %T", t, v)
			}
			if t != WidgetText {
				choices, err := w.choices()
				if err != nil {
					return err
				}
				if !contains(choices, s) {
					return errorf(ResultBadParameters, "%q is not a valid choice", s)
				}
			}
			cs := cString(s)
			defer freeString(cs)
			return call(C.gp_widget_set_value(w.ptr, unsafePointer(cs)))

		case WidgetRange:
			var f float32
			switch n := v.(type) {
			case float32:
				f = n
			case float64:
				f = float32(n)
			default:
				return errorf(ResultBadParameters, "range widget expects a float, got %T", v)
			}
			var min, max, step C.float
			if err := call(C.gp_widget_get_range(w.ptr, &min, &max, &step)); err != nil {
				return err
			}
			if f < float32(min) || f > float32(max) {
				return errorf(ResultBadParameters, "%g is out of range [%g, %g]", f, float32(min), float32(max))
			}
			cf := C.float(f)
			return call(C.gp_widget_set_value(w.ptr, unsafePointer(&cf)))

		case WidgetToggle:
			b, ok := v.(bool)
			if !ok {
				return errorf(ResultBadParameters, "toggle widget expects a bool, got %T", v)
			}
			var ci C.int
			if b {
				ci = 1
			}
			return call(C.gp_widget_set_value(w.ptr, unsafePointer(&ci)))

		case WidgetDate:
			d, ok := v.(time.Time)
			if !ok {
				return errorf(ResultBadParameters, "date widget expects a time.Time, got %T", v)
			}
			ci := C.int(d.Unix())
			return call(C.gp_widget_set_value(w.ptr, unsafePointer(&ci)))
		}

		return errorf(ResultBadParameters, "unknown widget type %d", int(t))
	})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Append makes child, which must be the root of its own tree, a child of
// w. The child then belongs to w's tree.
func (w *Widget) Append(child *Widget) error {
	widgetMu.Lock()
	defer widgetMu.Unlock()

	parent := w.tree.resolve()
	ct := child.tree.resolve()
	if parent.freed || ct.freed {
		return ErrClosed
	}
	if ct == parent || ct.root != child.ptr {
		return errorf(ResultBadParameters, "only the root of another tree can be appended")
	}

	if err := call(C.gp_widget_append(w.ptr, child.ptr)); err != nil {
		return err
	}
	ct.root = nil
	ct.owner = parent
	return nil
}

// SetName sets the widget's name.
func (w *Widget) SetName(name string) error {
	return w.write(func() error {
		cname := cString(name)
		defer freeString(cname)
		return call(C.gp_widget_set_name(w.ptr, cname))
	})
}

// SetInfo sets the widget's help text.
func (w *Widget) SetInfo(info string) error {
	return w.write(func() error {
		cinfo := cString(info)
		defer freeString(cinfo)
		return call(C.gp_widget_set_info(w.ptr, cinfo))
	})
}

// SetRange sets the bounds of a Range widget.
func (w *Widget) SetRange(min, max, step float32) error {
	return w.write(func() error {
		if err := w.expect(WidgetRange); err != nil {
			return err
		}
		return call(C.gp_widget_set_range(w.ptr, C.float(min), C.float(max), C.float(step)))
	})
}

// AddChoice adds an option to a Menu or Radio widget.
func (w *Widget) AddChoice(choice string) error {
	return w.write(func() error {
		if err := w.expect(WidgetMenu, WidgetRadio); err != nil {
			return err
		}
		cchoice := cString(choice)
		defer freeString(cchoice)
		return call(C.gp_widget_add_choice(w.ptr, cchoice))
	})
}

// SetReadonly marks the widget read-only.
func (w *Widget) SetReadonly(readonly bool) error {
	return w.write(func() error {
		var ro C.int
		if readonly {
			ro = 1
		}
		return call(C.gp_widget_set_readonly(w.ptr, ro))
	})
}
