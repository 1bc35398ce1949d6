// audio.go reads normalized samples out of audio frames.

// Package audio provides helpers to consume decoded audio frames.
package audio

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avframe/frame"
)

// ExtractSamples extracts samples of a specific channel of an audio frame,
// normalized to [-1, 1].
func ExtractSamples(f *frame.Audio, channel int) ([]float64, error) {
	channels := f.Channels()
	if channel < 0 || channel >= channels {
		return nil, fmt.Errorf("channel %d is out of range [0, %d)", channel, channels)
	}

	nbSamples := int(f.SampleCount())
	format := f.SampleFormat()
	planes := f.Planes()
	if planes == nil {
		return nil, frame.ErrAlreadyReleased
	}

	var (
		plane  []byte
		offset int
		step   int
	)
	if format.IsPlanar() {
		plane = planes[channel].Data
		offset, step = 0, 1
	} else {
		plane = planes[0].Data
		offset, step = channel, channels
	}

	res := make([]float64, nbSamples)
	if len(plane) == 0 {
		return res, nil
	}

	bps := format.BytesPerSample()
	if need := ((nbSamples-1)*step + offset + 1) * bps; nbSamples > 0 && len(plane) < need {
		return nil, fmt.Errorf("plane is too short: %d < %d", len(plane), need)
	}

	for i := range nbSamples {
		pos := (i*step + offset) * bps
		sample := plane[pos : pos+bps]
		switch format {
		case astiav.SampleFormatU8, astiav.SampleFormatU8P:
			res[i] = (float64(sample[0]) - 128) / 128.0
		case astiav.SampleFormatS16, astiav.SampleFormatS16P:
			res[i] = float64(int16(binary.NativeEndian.Uint16(sample))) / 32768.0
		case astiav.SampleFormatS32, astiav.SampleFormatS32P:
			res[i] = float64(int32(binary.NativeEndian.Uint32(sample))) / 2147483648.0
		case astiav.SampleFormatFlt, astiav.SampleFormatFltp:
			res[i] = float64(math.Float32frombits(binary.NativeEndian.Uint32(sample)))
		case astiav.SampleFormatDbl, astiav.SampleFormatDblp:
			res[i] = math.Float64frombits(binary.NativeEndian.Uint64(sample))
		default:
			return nil, fmt.Errorf("unsupported sample format: %v", format)
		}
	}
	return res, nil
}
