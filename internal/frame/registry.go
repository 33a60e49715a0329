package frame

import (
	"errors"

	"github.com/BurntSushi/xgb/xproto"
)

// ErrDuplicate is returned when a frame or child window is already registered.
var ErrDuplicate = errors.New("frame already registered")

// Registry keeps every live frame in two orders: insertion order, used by
// the taskbar, and z-order, most recently focused first. Both slices always
// hold the same frames.
type Registry struct {
	all    []*Frame
	zorder []*Frame
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Insert appends f to the insertion order and puts it at the head of the
// z-order.
func (r *Registry) Insert(f *Frame) error {
	for _, existing := range r.all {
		if existing == f || existing.Window == f.Window || existing.Child == f.Child {
			return ErrDuplicate
		}
	}
	r.all = append(r.all, f)
	r.zorder = append([]*Frame{f}, r.zorder...)
	return nil
}

// Remove drops f from both orders. It reports false when f was not present.
func (r *Registry) Remove(f *Frame) bool {
	var ok bool
	r.all, ok = remove(r.all, f)
	if !ok {
		return false
	}
	r.zorder, _ = remove(r.zorder, f)
	return true
}

func remove(frames []*Frame, f *Frame) ([]*Frame, bool) {
	for i, existing := range frames {
		if existing == f {
			return append(frames[:i], frames[i+1:]...), true
		}
	}
	return frames, false
}

// ByWindow finds the frame whose decoration window is w.
func (r *Registry) ByWindow(w xproto.Window) *Frame {
	for _, f := range r.all {
		if f.Window == w {
			return f
		}
	}
	return nil
}

// ByChild finds the frame wrapping client window w.
func (r *Registry) ByChild(w xproto.Window) *Frame {
	for _, f := range r.all {
		if f.Child == w {
			return f
		}
	}
	return nil
}

// MoveToFront puts f at the head of the z-order.
func (r *Registry) MoveToFront(f *Frame) {
	rest, ok := remove(r.zorder, f)
	if !ok {
		return
	}
	r.zorder = append([]*Frame{f}, rest...)
}

// MoveToBack puts f at the tail of the z-order.
func (r *Registry) MoveToBack(f *Frame) {
	rest, ok := remove(r.zorder, f)
	if !ok {
		return
	}
	r.zorder = append(rest, f)
}

// Top returns the first frame in z-order that is not minimized.
func (r *Registry) Top() *Frame {
	for _, f := range r.zorder {
		if !f.Minimized {
			return f
		}
	}
	return nil
}

// Front returns the head of the z-order, minimized or not.
func (r *Registry) Front() *Frame {
	if len(r.zorder) == 0 {
		return nil
	}
	return r.zorder[0]
}

// All returns a copy of the frames in insertion order.
func (r *Registry) All() []*Frame {
	return append([]*Frame(nil), r.all...)
}

// ZOrder returns a copy of the frames, most recently focused first.
func (r *Registry) ZOrder() []*Frame {
	return append([]*Frame(nil), r.zorder...)
}

// Len returns the number of registered frames.
func (r *Registry) Len() int {
	return len(r.all)
}
