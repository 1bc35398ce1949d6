package frame

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avframe/logger"
)

// NewVideo allocates a zero-filled (black) picture of the given geometry:
// luma and chroma planes with 4:2:0 subsampling, plus a full resolution
// alpha plane for PixelFormatYUVA.
func NewVideo(
	ctx context.Context,
	pixFmt PixelFormat,
	width, height int32,
) (_ret *Video, _err error) {
	logger.Tracef(ctx, "NewVideo(ctx, %s, %d, %d)", pixFmt, width, height)
	defer func() { logger.Tracef(ctx, "/NewVideo(ctx, %s, %d, %d): %v, %v", pixFmt, width, height, _ret, _err) }()

	request := fmt.Sprintf("a %s video frame %dx%d", pixFmt, width, height)
	if width <= 0 || height <= 0 {
		return nil, &AllocationError{Request: request, Err: ErrInvalidGeometry}
	}
	if !pixFmt.IsValid() {
		return nil, &AllocationError{Request: request, Err: fmt.Errorf("unknown pixel format %d", int(pixFmt))}
	}

	h := NewHandle()
	defer func() {
		if _err != nil {
			h.Release(ctx)
		}
	}()

	f := h.native
	f.SetWidth(int(width))
	f.SetHeight(int(height))
	f.SetPixelFormat(pixFmt.Astiav())
	f.SetColorRange(ColorRangeRestricted.Astiav())
	if err := f.AllocBuffer(0); err != nil {
		return nil, &AllocationError{Request: request, Err: err}
	}
	if err := f.ImageFillBlack(); err != nil {
		return nil, &AllocationError{Request: request, Err: fmt.Errorf("unable to fill the frame with black color: %w", err)}
	}
	return newVideo(h), nil
}

// NewAudio allocates silence-initialized sample buffers for sampleCount
// samples per channel. A zero sampleCount produces a frame without buffers.
func NewAudio(
	ctx context.Context,
	sampleFormat astiav.SampleFormat,
	channelLayout astiav.ChannelLayout,
	sampleRate, sampleCount int32,
) (_ret *Audio, _err error) {
	logger.Tracef(ctx, "NewAudio(ctx, %s, %s, %d, %d)", sampleFormat, channelLayout, sampleRate, sampleCount)
	defer func() {
		logger.Tracef(ctx, "/NewAudio(ctx, %s, %s, %d, %d): %v, %v", sampleFormat, channelLayout, sampleRate, sampleCount, _ret, _err)
	}()

	request := fmt.Sprintf("a %s audio frame %dHz x %d samples", sampleFormat, sampleRate, sampleCount)
	if sampleRate <= 0 || sampleCount < 0 {
		return nil, &AllocationError{Request: request, Err: ErrInvalidAudio}
	}

	h := NewHandle()
	defer func() {
		if _err != nil {
			h.Release(ctx)
		}
	}()

	f := h.native
	f.SetSampleFormat(sampleFormat)
	f.SetChannelLayout(channelLayout)
	f.SetSampleRate(int(sampleRate))
	f.SetNbSamples(int(sampleCount))
	if sampleCount > 0 {
		if err := f.AllocBuffer(0); err != nil {
			return nil, &AllocationError{Request: request, Err: err}
		}
	}
	a := newAudio(h)
	fillSilence(a.planes, sampleFormat)
	return a, nil
}

func fillSilence(planes []Plane, sampleFormat astiav.SampleFormat) {
	var silence byte
	switch sampleFormat {
	case astiav.SampleFormatU8, astiav.SampleFormatU8P:
		silence = 0x80
	}
	for _, p := range planes {
		for i := range p.Data {
			p.Data[i] = silence
		}
	}
}
