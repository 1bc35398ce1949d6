// handle.go defines Handle, the single-owner token over a native frame.

package frame

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avframe/logger"
	"go.uber.org/atomic"
)

// Handle owns exactly one native frame and gives it back exactly once.
//
// Ownership enters a Handle through NewHandle or Adopt and leaves it through
// Release (the buffer is unreferenced) or Detach (the caller becomes the owner).
// Release and Detach may race; only the first one wins.
type Handle struct {
	native   *astiav.Frame
	pooled   bool
	released atomic.Bool
}

// NewHandle allocates an empty native frame, ready to be filled by a decoder.
func NewHandle() *Handle {
	return &Handle{native: Pool.Get(), pooled: true}
}

// Adopt takes the ownership of f. The caller must not use or free f afterwards
// except through the returned Handle. Release frees an adopted frame instead of
// pooling it.
func Adopt(f *astiav.Frame) (*Handle, error) {
	if f == nil {
		return nil, fmt.Errorf("cannot adopt a nil frame")
	}
	return &Handle{native: f}, nil
}

// Native returns the owned frame, or nil if the Handle was released or detached.
//
// The returned pointer must not be retained beyond the Handle lifetime.
func (h *Handle) Native() *astiav.Frame {
	if h == nil || h.released.Load() {
		return nil
	}
	return h.native
}

func (h *Handle) IsReleased() bool {
	return h == nil || h.released.Load()
}

// Clone returns a new Handle referencing the same native buffers.
// Each Handle must be released on its own.
func (h *Handle) Clone() (*Handle, error) {
	native := h.Native()
	if native == nil {
		return nil, ErrAlreadyReleased
	}
	dup, err := cloneAsReferenced(native)
	if err != nil {
		return nil, fmt.Errorf("unable to reference the frame: %w", err)
	}
	return &Handle{native: dup, pooled: true}, nil
}

// Release gives the native buffer back. Any call after the first one
// returns ErrAlreadyReleased and does nothing.
func (h *Handle) Release(ctx context.Context) error {
	if h == nil {
		return ErrAlreadyReleased
	}
	if !h.released.CompareAndSwap(false, true) {
		return ErrAlreadyReleased
	}
	logger.Tracef(ctx, "releasing frame %p (pooled: %t)", h.native, h.pooled)
	if !h.pooled {
		h.native.Free()
		return nil
	}
	Pool.Put(h.native)
	return nil
}

// Detach transfers the ownership of the native frame to the caller.
func (h *Handle) Detach() (*astiav.Frame, error) {
	if h == nil {
		return nil, ErrAlreadyReleased
	}
	if !h.released.CompareAndSwap(false, true) {
		return nil, ErrAlreadyReleased
	}
	return h.native, nil
}
