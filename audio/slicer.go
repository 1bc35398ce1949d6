// slicer.go batches small decoded audio frames into larger PCM chunks.

package audio

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avframe/codec"
	"github.com/xaionaro-go/avframe/frame"
	"github.com/xaionaro-go/avframe/logger"
	"github.com/xaionaro-go/avframe/resampler"
	"github.com/xaionaro-go/xsync"
)

const DefaultMinFramesToMerge = 16

type SlicerConfig struct {
	SampleFormat astiav.SampleFormat
	Channels     int32

	// MinFramesToMerge is the amount of frames merged into one Chunk;
	// DefaultMinFramesToMerge if zero.
	MinFramesToMerge int
}

// Chunk is a merged run of audio frames.
type Chunk struct {
	SampleFormat    astiav.SampleFormat
	SampleRate      int32
	PTS             int64
	Duration        int64
	NumberOfSamples int32

	// Planes has one buffer for a packed format and one per channel for a planar one.
	Planes [][]byte
}

type slice struct {
	sampleRate      int32
	pts             int64
	duration        int64
	numberOfSamples int32
	planes          [][]byte
}

// Slicer copies the samples out of the frames it is given (so the frames
// may be released right away) and merges every MinFramesToMerge of them
// into a Chunk.
type Slicer struct {
	Config SlicerConfig

	locker xsync.Mutex
	slices []slice
}

func NewSlicer(cfg SlicerConfig) (*Slicer, error) {
	if cfg.Channels <= 0 {
		return nil, fmt.Errorf("the amount of channels must be positive, got %d", cfg.Channels)
	}
	if _, err := codec.BytesPerSample(cfg.SampleFormat); err != nil {
		return nil, err
	}
	if cfg.MinFramesToMerge <= 0 {
		cfg.MinFramesToMerge = DefaultMinFramesToMerge
	}
	return &Slicer{
		Config: cfg,
		slices: make([]slice, 0, cfg.MinFramesToMerge),
	}, nil
}

func (s *Slicer) planeCount() int {
	if s.Config.SampleFormat.IsPlanar() {
		return int(s.Config.Channels)
	}
	return 1
}

// Add copies the frame samples; it returns a Chunk once enough frames are collected,
// otherwise nil.
func (s *Slicer) Add(
	ctx context.Context,
	f *frame.Audio,
) (*Chunk, error) {
	return xsync.DoA2R2(ctx, &s.locker, s.addLocked, ctx, f)
}

func (s *Slicer) addLocked(
	ctx context.Context,
	f *frame.Audio,
) (_ret *Chunk, _err error) {
	logger.Tracef(ctx, "Add: %s", f)
	defer func() { logger.Tracef(ctx, "/Add: %s: %v %v", f, _ret, _err) }()

	if f.SampleFormat() != s.Config.SampleFormat || int32(f.Channels()) != s.Config.Channels {
		return nil, fmt.Errorf(
			"expected %s with %d channels, but received %s with %d channels",
			s.Config.SampleFormat, s.Config.Channels, f.SampleFormat(), f.Channels(),
		)
	}
	if len(s.slices) > 0 && s.slices[0].sampleRate != f.SampleRate() {
		return nil, fmt.Errorf("sample rate changed: %d -> %d", s.slices[0].sampleRate, f.SampleRate())
	}

	dataSize, err := resampler.OutputByteSize(s.Config.Channels, f, s.Config.SampleFormat, f.SampleRate())
	if err != nil {
		return nil, fmt.Errorf("unable to compute the slice size: %w", err)
	}
	planeSize := int(dataSize) / s.planeCount()

	planes := f.Planes()
	if len(planes) != s.planeCount() {
		return nil, fmt.Errorf("expected %d planes, got %d", s.planeCount(), len(planes))
	}
	sl := slice{
		sampleRate:      f.SampleRate(),
		pts:             f.PTS(),
		duration:        f.Duration(),
		numberOfSamples: f.SampleCount(),
		planes:          make([][]byte, len(planes)),
	}
	for i, p := range planes {
		if len(p.Data) < planeSize {
			return nil, fmt.Errorf("plane %d is too short: %d < %d", i, len(p.Data), planeSize)
		}
		sl.planes[i] = make([]byte, planeSize)
		copy(sl.planes[i], p.Data)
	}
	s.slices = append(s.slices, sl)

	if len(s.slices) < s.Config.MinFramesToMerge {
		return nil, nil
	}
	return s.mergeLocked(ctx), nil
}

// Flush merges whatever is collected, returns nil if nothing is.
func (s *Slicer) Flush(ctx context.Context) *Chunk {
	return xsync.DoA1R1(ctx, &s.locker, s.mergeLocked, ctx)
}

// Reset drops everything collected.
func (s *Slicer) Reset(ctx context.Context) {
	s.locker.Do(ctx, func() {
		s.slices = s.slices[:0]
	})
}

func (s *Slicer) mergeLocked(ctx context.Context) *Chunk {
	if len(s.slices) == 0 {
		return nil
	}
	first := s.slices[0]
	chunk := &Chunk{
		SampleFormat: s.Config.SampleFormat,
		SampleRate:   first.sampleRate,
		PTS:          first.pts,
		Planes:       make([][]byte, len(first.planes)),
	}

	var totalPlaneSize int
	for _, sl := range s.slices {
		chunk.Duration += sl.duration
		chunk.NumberOfSamples += sl.numberOfSamples
		totalPlaneSize += len(sl.planes[0])
	}
	for i := range chunk.Planes {
		chunk.Planes[i] = make([]byte, 0, totalPlaneSize)
		for _, sl := range s.slices {
			chunk.Planes[i] = append(chunk.Planes[i], sl.planes[i]...)
		}
	}
	logger.Debugf(ctx, "merged %d slices into %d samples", len(s.slices), chunk.NumberOfSamples)
	s.slices = s.slices[:0]
	return chunk
}
