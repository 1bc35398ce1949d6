// size.go computes the size of the buffer that receives resampled audio.

package resampler

import (
	"math"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avframe/codec"
	"github.com/xaionaro-go/avframe/frame"
)

// AudioShape is the part of an audio frame the sizing depends on.
// *frame.Audio implements it.
type AudioShape interface {
	SampleRate() int32
	SampleCount() int32
}

var _ AudioShape = (*frame.Audio)(nil)

// OutputSampleCount returns ceil(sampleCount * outSampleRate / inSampleRate):
// the amount of samples per channel that resampling sampleCount samples may
// produce. Rounding up keeps the destination buffer from being undersized.
func OutputSampleCount(
	sampleCount int32,
	inSampleRate int32,
	outSampleRate int32,
) (int64, error) {
	if sampleCount < 0 {
		return 0, &PreconditionError{Argument: "sampleCount", Value: sampleCount, Reason: "must not be negative"}
	}
	if inSampleRate <= 0 {
		return 0, &PreconditionError{Argument: "inSampleRate", Value: inSampleRate, Reason: "must be positive"}
	}
	if outSampleRate <= 0 {
		return 0, &PreconditionError{Argument: "outSampleRate", Value: outSampleRate, Reason: "must be positive"}
	}
	if inSampleRate == outSampleRate {
		return int64(sampleCount), nil
	}
	scaled := int64(sampleCount) * int64(outSampleRate)
	in := int64(inSampleRate)
	return (scaled + in - 1) / in, nil
}

// OutputByteSize returns how many bytes are needed to hold the audio of in
// after resampling it to channelCount channels of outSampleFormat at outSampleRate:
//
//	ceil(in.SampleCount() * outSampleRate / in.SampleRate()) * channelCount * bytesPerSample(outSampleFormat)
//
// The size is the same for packed and planar layouts (it is the sum over all planes).
// Invalid input is reported as a *PreconditionError, never as a zero size.
func OutputByteSize(
	channelCount int32,
	in AudioShape,
	outSampleFormat astiav.SampleFormat,
	outSampleRate int32,
) (int32, error) {
	if in == nil {
		return 0, &PreconditionError{Argument: "in", Value: nil, Reason: "is not an audio frame"}
	}
	if a, ok := in.(*frame.Audio); ok && a == nil {
		return 0, &PreconditionError{Argument: "in", Value: nil, Reason: "is not an audio frame"}
	}
	if channelCount <= 0 {
		return 0, &PreconditionError{Argument: "channelCount", Value: channelCount, Reason: "must be positive"}
	}
	bytesPerSample, err := codec.BytesPerSample(outSampleFormat)
	if err != nil {
		return 0, &PreconditionError{Argument: "outSampleFormat", Value: outSampleFormat, Reason: err.Error()}
	}
	if in.SampleRate() <= 0 {
		return 0, &PreconditionError{Argument: "in.SampleRate", Value: in.SampleRate(), Reason: "is not an audio frame: must be positive"}
	}

	sampleCount, err := OutputSampleCount(in.SampleCount(), in.SampleRate(), outSampleRate)
	if err != nil {
		return 0, err
	}

	// every factor is below 2^31 here, so checking after each step is enough
	size := sampleCount
	for _, factor := range []int64{int64(channelCount), int64(bytesPerSample)} {
		if size > math.MaxInt32 {
			break
		}
		size *= factor
	}
	if size > math.MaxInt32 {
		return 0, &PreconditionError{Argument: "in.SampleCount", Value: in.SampleCount(), Reason: "the output does not fit into int32"}
	}
	return int32(size), nil
}

// FrameOutputByteSize is OutputByteSize for any frame: a video frame is
// reported as a *PreconditionError.
func FrameOutputByteSize(
	channelCount int32,
	in frame.Frame,
	outSampleFormat astiav.SampleFormat,
	outSampleRate int32,
) (int32, error) {
	a, ok := in.(*frame.Audio)
	if !ok {
		return 0, &PreconditionError{Argument: "in", Value: in, Reason: "is not an audio frame"}
	}
	return OutputByteSize(channelCount, a, outSampleFormat, outSampleRate)
}
