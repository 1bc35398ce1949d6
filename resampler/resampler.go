// resampler.go converts audio frames to a fixed PCM format in fixed-size chunks.

// Package resampler sizes and performs audio sample rate and format conversion.
package resampler

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avframe/codec"
	"github.com/xaionaro-go/avframe/frame"
	"github.com/xaionaro-go/avframe/internal"
	"github.com/xaionaro-go/avframe/logger"
)

// resampleHeadroom is added to the computed output sample count to cover
// the samples swresample keeps buffered from previous frames.
const resampleHeadroom = 64

type Resampler struct {
	AudioFifo               *astiav.AudioFifo
	SoftwareResampleContext *astiav.SoftwareResampleContext
	FormatInput             *codec.PCMAudioFormat
	FormatOutput            codec.PCMAudioFormat
	ResampledFrame          *astiav.Frame

	resampledCapacity int
}

func New(
	ctx context.Context,
	out codec.PCMAudioFormat,
) (_ret *Resampler, _err error) {
	logger.Tracef(ctx, "New: %s", out)
	defer func() { logger.Tracef(ctx, "/New: %s: %v %v", out, _ret, _err) }()

	if out.ChunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", out.ChunkSize)
	}
	if _, err := codec.BytesPerSample(out.SampleFormat); err != nil {
		return nil, err
	}

	fifo := astiav.AllocAudioFifo(
		out.SampleFormat,
		out.ChannelLayout.Channels(),
		out.ChunkSize,
	)
	if fifo == nil {
		return nil, fmt.Errorf("cannot alloc AudioFifo")
	}
	internal.SetFinalizerFree(ctx, fifo)

	swrCtx := astiav.AllocSoftwareResampleContext()
	if swrCtx == nil {
		return nil, fmt.Errorf("cannot alloc SoftwareResampleContext")
	}
	internal.SetFinalizerFree(ctx, swrCtx)

	r := &Resampler{
		AudioFifo:               fifo,
		SoftwareResampleContext: swrCtx,
		FormatOutput:            out,
		ResampledFrame:          frame.Pool.Get(),
	}
	if err := r.reserve(out.ChunkSize); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Resampler) Close(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Close")
	defer func() { logger.Debugf(ctx, "/Close: %v", _err) }()

	// the fifo and the context are freed by finalizers
	r.AudioFifo = nil
	r.SoftwareResampleContext = nil
	if r.ResampledFrame != nil {
		frame.Pool.Put(r.ResampledFrame)
		r.ResampledFrame = nil
	}
	return nil
}

func (r *Resampler) String() string {
	return fmt.Sprintf("Resampler<%s>", r.FormatOutput)
}

// reserve makes ResampledFrame able to take at least nbSamples samples.
func (r *Resampler) reserve(nbSamples int) error {
	if nbSamples <= r.resampledCapacity {
		r.ResampledFrame.SetNbSamples(r.resampledCapacity)
		return nil
	}
	f := r.ResampledFrame
	f.Unref()
	f.SetNbSamples(nbSamples)
	f.SetChannelLayout(r.FormatOutput.ChannelLayout)
	f.SetSampleFormat(r.FormatOutput.SampleFormat)
	f.SetSampleRate(r.FormatOutput.SampleRate)
	if err := f.AllocBuffer(0); err != nil {
		r.resampledCapacity = 0
		return fmt.Errorf("cannot alloc buffer for resampled frame: %w", err)
	}
	r.resampledCapacity = nbSamples
	return nil
}

func (r *Resampler) AllocateOutputFrame(
	ctx context.Context,
) (_ret *astiav.Frame, _err error) {
	logger.Tracef(ctx, "AllocateOutputFrame")
	defer func() { logger.Tracef(ctx, "/AllocateOutputFrame: %v", _err) }()

	f := frame.Pool.Get()
	f.SetNbSamples(r.FormatOutput.ChunkSize)
	f.SetChannelLayout(r.FormatOutput.ChannelLayout)
	f.SetSampleFormat(r.FormatOutput.SampleFormat)
	f.SetSampleRate(r.FormatOutput.SampleRate)
	if err := f.AllocBuffer(0); err != nil {
		frame.Pool.Put(f)
		return nil, fmt.Errorf("cannot alloc buffer for output frame: %w", err)
	}
	return f, nil
}

// SendFrame converts the input frame and queues the result. All the input
// frames must share the same sample format, rate and channel layout.
func (r *Resampler) SendFrame(
	ctx context.Context,
	in *frame.Audio,
) (_err error) {
	if in == nil {
		return &PreconditionError{Argument: "in", Value: nil, Reason: "is not an audio frame"}
	}
	logger.Tracef(ctx, "SendFrame: %s", in)
	defer func() { logger.Tracef(ctx, "/SendFrame: %s: %v", in, _err) }()

	native := in.Handle().Native()
	if native == nil {
		return frame.ErrAlreadyReleased
	}

	inFmt := codec.PCMAudioFormatFromFrame(in)
	inFmt.ChunkSize = 0
	if r.FormatInput == nil {
		r.FormatInput = inFmt
	} else if !r.FormatInput.Equal(*inFmt) {
		return fmt.Errorf("input frame format changed: %s -> %s: %w", r.FormatInput, inFmt, astiav.ErrInputChanged)
	}

	nbSamples, err := OutputSampleCount(in.SampleCount(), in.SampleRate(), int32(r.FormatOutput.SampleRate))
	if err != nil {
		return fmt.Errorf("cannot size the resampled frame: %w", err)
	}
	if err := r.reserve(int(nbSamples) + resampleHeadroom); err != nil {
		return err
	}

	if err := r.SoftwareResampleContext.ConvertFrame(native, r.ResampledFrame); err != nil {
		return fmt.Errorf("cannot convert frame: %w", err)
	}

	if nbSamples := r.ResampledFrame.NbSamples(); nbSamples == 0 {
		return nil
	}

	if _, err := r.AudioFifo.Write(r.ResampledFrame); err != nil {
		return fmt.Errorf("cannot write to AudioFifo: %w", err)
	}

	return nil
}

func (r *Resampler) receiveFrame(
	ctx context.Context,
	outputFrame *astiav.Frame,
	minSize int,
) (_err error) {
	logger.Tracef(ctx, "receiveFrame: %d", minSize)
	defer func() { logger.Tracef(ctx, "/receiveFrame: %d: %v", minSize, _err) }()

	if r.AudioFifo.Size() == 0 {
		return astiav.ErrEof
	}
	if r.AudioFifo.Size() < minSize {
		return astiav.ErrEagain
	}

	outputFrame.SetNbSamples(r.FormatOutput.ChunkSize)
	n, err := r.AudioFifo.Read(outputFrame)
	if err != nil {
		return fmt.Errorf("unable to read from AudioFifo: %w", err)
	}
	if n < minSize {
		logger.Errorf(ctx, "read less samples than requested: %d < %d", n, minSize)
	}
	outputFrame.SetNbSamples(n)
	return nil
}

// ReceiveFrame fills outputFrame with exactly ChunkSize samples. It returns
// astiav.ErrEagain if less are queued and astiav.ErrEof if none are.
func (r *Resampler) ReceiveFrame(
	ctx context.Context,
	outputFrame *astiav.Frame,
) error {
	return r.receiveFrame(ctx, outputFrame, r.FormatOutput.ChunkSize)
}

// ReceiveAudio is ReceiveFrame returning a fresh read-only frame.
func (r *Resampler) ReceiveAudio(
	ctx context.Context,
) (_ret *frame.Audio, _err error) {
	outputFrame, err := r.AllocateOutputFrame(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.ReceiveFrame(ctx, outputFrame); err != nil {
		frame.Pool.Put(outputFrame)
		return nil, err
	}
	h, err := frame.Adopt(outputFrame)
	if err != nil {
		return nil, err
	}
	f, err := frame.FromHandle(ctx, h)
	if err != nil {
		h.Release(ctx)
		return nil, err
	}
	return f.(*frame.Audio), nil
}

// Flush fills outputFrame with whatever is left queued (up to ChunkSize samples).
func (r *Resampler) Flush(
	ctx context.Context,
	outputFrame *astiav.Frame,
) error {
	return r.receiveFrame(ctx, outputFrame, 0)
}
