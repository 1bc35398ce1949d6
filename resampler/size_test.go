package resampler

import (
	"context"
	"math"
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avframe/frame"
)

type audioShape struct {
	sampleRate  int32
	sampleCount int32
}

func (s audioShape) SampleRate() int32  { return s.sampleRate }
func (s audioShape) SampleCount() int32 { return s.sampleCount }

func TestOutputByteSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		channelCount  int32
		in            audioShape
		outFormat     astiav.SampleFormat
		outSampleRate int32
		want          int32
	}{
		{
			name:          "same rate s16 stereo",
			channelCount:  2,
			in:            audioShape{sampleRate: 44100, sampleCount: 1024},
			outFormat:     astiav.SampleFormatS16,
			outSampleRate: 44100,
			want:          4096,
		},
		{
			name:          "upsampling mono",
			channelCount:  1,
			in:            audioShape{sampleRate: 8000, sampleCount: 1000},
			outFormat:     astiav.SampleFormatS16,
			outSampleRate: 16000,
			want:          4000,
		},
		{
			name:          "rounds up",
			channelCount:  1,
			in:            audioShape{sampleRate: 44100, sampleCount: 1024},
			outFormat:     astiav.SampleFormatFlt,
			outSampleRate: 48000,
			// 1024*48000/44100 = 1114.55...
			want: 1115 * 4,
		},
		{
			name:          "downsampling planar double",
			channelCount:  6,
			in:            audioShape{sampleRate: 48000, sampleCount: 1},
			outFormat:     astiav.SampleFormatDblp,
			outSampleRate: 8000,
			want:          1 * 6 * 8,
		},
		{
			name:          "zero samples",
			channelCount:  2,
			in:            audioShape{sampleRate: 44100, sampleCount: 0},
			outFormat:     astiav.SampleFormatS32,
			outSampleRate: 96000,
			want:          0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := OutputByteSize(tt.channelCount, tt.in, tt.outFormat, tt.outSampleRate)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestOutputByteSizeIdentity(t *testing.T) {
	t.Parallel()

	for _, rate := range []int32{1, 7, 8000, 22050, 44100, 48000, 96000, 192000} {
		for _, sampleCount := range []int32{1, 3, 1023, 1024, 4096} {
			for _, outFormat := range []astiav.SampleFormat{astiav.SampleFormatU8, astiav.SampleFormatS16P, astiav.SampleFormatFlt, astiav.SampleFormatDbl} {
				got, err := OutputByteSize(3, audioShape{sampleRate: rate, sampleCount: sampleCount}, outFormat, rate)
				require.NoError(t, err)
				require.Equal(t, sampleCount*3*int32(outFormat.BytesPerSample()), got)
			}
		}
	}
}

func TestOutputByteSizePreconditions(t *testing.T) {
	t.Parallel()

	valid := audioShape{sampleRate: 44100, sampleCount: 1024}
	tests := []struct {
		name          string
		channelCount  int32
		in            AudioShape
		outFormat     astiav.SampleFormat
		outSampleRate int32
	}{
		{name: "zero input rate", channelCount: 2, in: audioShape{sampleRate: 0, sampleCount: 1024}, outFormat: astiav.SampleFormatS16, outSampleRate: 44100},
		{name: "negative input rate", channelCount: 2, in: audioShape{sampleRate: -1, sampleCount: 1024}, outFormat: astiav.SampleFormatS16, outSampleRate: 44100},
		{name: "zero channels", channelCount: 0, in: valid, outFormat: astiav.SampleFormatS16, outSampleRate: 44100},
		{name: "negative channels", channelCount: -2, in: valid, outFormat: astiav.SampleFormatS16, outSampleRate: 44100},
		{name: "zero output rate", channelCount: 2, in: valid, outFormat: astiav.SampleFormatS16, outSampleRate: 0},
		{name: "negative sample count", channelCount: 2, in: audioShape{sampleRate: 44100, sampleCount: -1}, outFormat: astiav.SampleFormatS16, outSampleRate: 44100},
		{name: "unknown format", channelCount: 2, in: valid, outFormat: astiav.SampleFormatNone, outSampleRate: 44100},
		{name: "nil frame", channelCount: 2, in: nil, outFormat: astiav.SampleFormatS16, outSampleRate: 44100},
		{name: "typed nil frame", channelCount: 2, in: (*frame.Audio)(nil), outFormat: astiav.SampleFormatS16, outSampleRate: 44100},
		{name: "overflow", channelCount: math.MaxInt32, in: audioShape{sampleRate: 1, sampleCount: math.MaxInt32}, outFormat: astiav.SampleFormatDbl, outSampleRate: math.MaxInt32},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := OutputByteSize(tt.channelCount, tt.in, tt.outFormat, tt.outSampleRate)
			require.ErrorIs(t, err, ErrPrecondition)
			var preconditionErr *PreconditionError
			require.ErrorAs(t, err, &preconditionErr)
			require.Zero(t, got)
		})
	}
}

func TestOutputSampleCount(t *testing.T) {
	t.Parallel()

	got, err := OutputSampleCount(1, 3, 2)
	require.NoError(t, err)
	require.Equal(t, int64(1), got)

	got, err = OutputSampleCount(3, 2, 3)
	require.NoError(t, err)
	require.Equal(t, int64(5), got)

	got, err = OutputSampleCount(math.MaxInt32, 1, math.MaxInt32)
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt32)*int64(math.MaxInt32), got)
}

func TestFrameOutputByteSize(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Audio", func(t *testing.T) {
		t.Parallel()
		a, err := frame.NewAudio(ctx, astiav.SampleFormatFltp, astiav.ChannelLayoutStereo, 8000, 1000)
		require.NoError(t, err)
		defer a.Release(ctx)

		got, err := FrameOutputByteSize(2, a, astiav.SampleFormatS16, 16000)
		require.NoError(t, err)
		require.Equal(t, int32(2000*2*2), got)
	})

	t.Run("Video", func(t *testing.T) {
		t.Parallel()
		v, err := frame.NewVideo(ctx, frame.PixelFormatYUV, 16, 16)
		require.NoError(t, err)
		defer v.Release(ctx)

		_, err = FrameOutputByteSize(2, v, astiav.SampleFormatS16, 16000)
		require.ErrorIs(t, err, ErrPrecondition)
	})

	t.Run("Nil", func(t *testing.T) {
		t.Parallel()
		_, err := FrameOutputByteSize(2, nil, astiav.SampleFormatS16, 16000)
		require.ErrorIs(t, err, ErrPrecondition)
	})
}
