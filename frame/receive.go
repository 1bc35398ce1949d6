// receive.go classifies native frames filled by a decoder.

package frame

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avframe/logger"
)

// Decoder is the external decode step: it fills the given empty frame.
type Decoder interface {
	ReceiveFrame(ctx context.Context, f *astiav.Frame) error
}

// Receive lets the decoder fill a fresh frame and returns its read-only view.
// On error the fresh frame is released and the decoder error is returned as is,
// so astiav.ErrEagain and astiav.ErrEof can be checked with errors.Is.
func Receive(
	ctx context.Context,
	decoder Decoder,
) (_ret Frame, _err error) {
	logger.Tracef(ctx, "Receive")
	defer func() { logger.Tracef(ctx, "/Receive: %v, %v", _ret, _err) }()

	h := NewHandle()
	if err := decoder.ReceiveFrame(ctx, h.native); err != nil {
		h.Release(ctx)
		return nil, err
	}
	f, err := FromHandle(ctx, h)
	if err != nil {
		h.Release(ctx)
		return nil, err
	}
	return f, nil
}

// FromHandle builds the view over a filled frame and takes over the Handle.
//
// A frame with positive width and height is a *Video; a frame with a positive
// sample rate is an *Audio.
func FromHandle(
	ctx context.Context,
	h *Handle,
) (Frame, error) {
	f := h.Native()
	if f == nil {
		return nil, ErrAlreadyReleased
	}

	switch {
	case f.Width() > 0 && f.Height() > 0:
		return newVideo(h), nil
	case f.SampleRate() > 0 && f.NbSamples() >= 0:
		return newAudio(h), nil
	}
	logger.Debugf(ctx, "unable to classify the frame: %dx%d, %dHz, %d samples", f.Width(), f.Height(), f.SampleRate(), f.NbSamples())
	return nil, fmt.Errorf("%w: %dx%d, %dHz", ErrShapeUndetermined, f.Width(), f.Height(), f.SampleRate())
}
