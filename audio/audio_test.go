package audio

import (
	"context"
	"encoding/binary"
	"math"
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avframe/frame"
)

func newTestAudio(
	t *testing.T,
	sampleFormat astiav.SampleFormat,
	channelLayout astiav.ChannelLayout,
	sampleCount int32,
	pts int64,
	fill func(plane int, data []byte),
) *frame.Audio {
	t.Helper()
	ctx := context.Background()
	a, err := frame.NewAudio(ctx, sampleFormat, channelLayout, 48000, sampleCount)
	require.NoError(t, err)
	t.Cleanup(func() { a.Release(ctx) })

	native := a.Handle().Native()
	native.SetPts(pts)
	native.SetDuration(int64(sampleCount))
	if fill != nil {
		for i, p := range a.Planes() {
			fill(i, p.Data)
		}
	}

	h, err := a.Handle().Clone()
	require.NoError(t, err)
	f, err := frame.FromHandle(ctx, h)
	require.NoError(t, err)
	t.Cleanup(func() { f.Release(ctx) })
	return f.(*frame.Audio)
}

func TestExtractSamples(t *testing.T) {
	t.Parallel()

	t.Run("PackedS16", func(t *testing.T) {
		t.Parallel()
		a := newTestAudio(t, astiav.SampleFormatS16, astiav.ChannelLayoutStereo, 4, 0, func(_ int, data []byte) {
			for i := 0; i < 4; i++ {
				binary.NativeEndian.PutUint16(data[(i*2)*2:], uint16(int16(i*1000)))
				binary.NativeEndian.PutUint16(data[(i*2+1)*2:], uint16(int16(-i*1000)))
			}
		})

		left, err := ExtractSamples(a, 0)
		require.NoError(t, err)
		right, err := ExtractSamples(a, 1)
		require.NoError(t, err)
		for i := 0; i < 4; i++ {
			require.InDelta(t, float64(i*1000)/32768.0, left[i], 1e-9)
			require.InDelta(t, float64(-i*1000)/32768.0, right[i], 1e-9)
		}
	})

	t.Run("PlanarFloat", func(t *testing.T) {
		t.Parallel()
		a := newTestAudio(t, astiav.SampleFormatFltp, astiav.ChannelLayoutStereo, 3, 0, func(plane int, data []byte) {
			for i := 0; i < 3; i++ {
				binary.NativeEndian.PutUint32(data[i*4:], math.Float32bits(float32(plane)+0.25*float32(i)))
			}
		})

		second, err := ExtractSamples(a, 1)
		require.NoError(t, err)
		require.Equal(t, []float64{1, 1.25, 1.5}, second)
	})

	t.Run("Silence", func(t *testing.T) {
		t.Parallel()
		a := newTestAudio(t, astiav.SampleFormatU8, astiav.ChannelLayoutMono, 5, 0, nil)
		samples, err := ExtractSamples(a, 0)
		require.NoError(t, err)
		require.Equal(t, make([]float64, 5), samples)
	})

	t.Run("ChannelOutOfRange", func(t *testing.T) {
		t.Parallel()
		a := newTestAudio(t, astiav.SampleFormatS16, astiav.ChannelLayoutMono, 5, 0, nil)
		_, err := ExtractSamples(a, 1)
		require.Error(t, err)
	})

	t.Run("Released", func(t *testing.T) {
		t.Parallel()
		a := newTestAudio(t, astiav.SampleFormatS16, astiav.ChannelLayoutMono, 5, 0, nil)
		require.NoError(t, a.Release(context.Background()))
		_, err := ExtractSamples(a, 0)
		require.ErrorIs(t, err, frame.ErrAlreadyReleased)
	})
}

func TestSlicer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("MergesPlanar", func(t *testing.T) {
		t.Parallel()
		s, err := NewSlicer(SlicerConfig{
			SampleFormat:     astiav.SampleFormatS16P,
			Channels:         2,
			MinFramesToMerge: 3,
		})
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			a := newTestAudio(t, astiav.SampleFormatS16P, astiav.ChannelLayoutStereo, 10, int64(100+i*10), func(plane int, data []byte) {
				for j := range data {
					data[j] = byte(plane*100 + i)
				}
			})
			chunk, err := s.Add(ctx, a)
			require.NoError(t, err)
			require.Nil(t, chunk)
		}

		a := newTestAudio(t, astiav.SampleFormatS16P, astiav.ChannelLayoutStereo, 10, 120, func(plane int, data []byte) {
			for j := range data {
				data[j] = byte(plane*100 + 2)
			}
		})
		chunk, err := s.Add(ctx, a)
		require.NoError(t, err)
		require.NotNil(t, chunk)

		require.Equal(t, int64(100), chunk.PTS)
		require.Equal(t, int64(30), chunk.Duration)
		require.Equal(t, int32(30), chunk.NumberOfSamples)
		require.Equal(t, int32(48000), chunk.SampleRate)
		require.Len(t, chunk.Planes, 2)
		for plane, data := range chunk.Planes {
			require.Len(t, data, 30*2)
			for i := 0; i < 3; i++ {
				for _, b := range data[i*20 : (i+1)*20] {
					require.Equal(t, byte(plane*100+i), b)
				}
			}
		}

		require.Nil(t, s.Flush(ctx))
	})

	t.Run("FlushPacked", func(t *testing.T) {
		t.Parallel()
		s, err := NewSlicer(SlicerConfig{SampleFormat: astiav.SampleFormatFlt, Channels: 2})
		require.NoError(t, err)
		require.Equal(t, DefaultMinFramesToMerge, s.Config.MinFramesToMerge)

		chunk, err := s.Add(ctx, newTestAudio(t, astiav.SampleFormatFlt, astiav.ChannelLayoutStereo, 7, 0, nil))
		require.NoError(t, err)
		require.Nil(t, chunk)

		chunk = s.Flush(ctx)
		require.NotNil(t, chunk)
		require.Len(t, chunk.Planes, 1)
		require.Len(t, chunk.Planes[0], 7*2*4)
		require.Equal(t, int32(7), chunk.NumberOfSamples)
	})

	t.Run("Reset", func(t *testing.T) {
		t.Parallel()
		s, err := NewSlicer(SlicerConfig{SampleFormat: astiav.SampleFormatFlt, Channels: 1})
		require.NoError(t, err)
		_, err = s.Add(ctx, newTestAudio(t, astiav.SampleFormatFlt, astiav.ChannelLayoutMono, 7, 0, nil))
		require.NoError(t, err)
		s.Reset(ctx)
		require.Nil(t, s.Flush(ctx))
	})

	t.Run("FormatMismatch", func(t *testing.T) {
		t.Parallel()
		s, err := NewSlicer(SlicerConfig{SampleFormat: astiav.SampleFormatFlt, Channels: 2})
		require.NoError(t, err)
		_, err = s.Add(ctx, newTestAudio(t, astiav.SampleFormatS16, astiav.ChannelLayoutStereo, 7, 0, nil))
		require.Error(t, err)
		_, err = s.Add(ctx, newTestAudio(t, astiav.SampleFormatFlt, astiav.ChannelLayoutMono, 7, 0, nil))
		require.Error(t, err)
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		t.Parallel()
		_, err := NewSlicer(SlicerConfig{SampleFormat: astiav.SampleFormatFlt})
		require.Error(t, err)
		_, err = NewSlicer(SlicerConfig{SampleFormat: astiav.SampleFormatNone, Channels: 1})
		require.Error(t, err)
	})
}
