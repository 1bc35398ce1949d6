// pcm_audio_format.go defines PCMAudioFormat, the description of raw audio samples.

package codec

import (
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avframe/frame"
)

type PCMAudioFormat struct {
	SampleFormat  astiav.SampleFormat
	SampleRate    int
	ChannelLayout astiav.ChannelLayout
	ChunkSize     int
}

func PCMAudioFormatFromFrame(f *frame.Audio) *PCMAudioFormat {
	if f == nil {
		return nil
	}
	return &PCMAudioFormat{
		SampleFormat:  f.SampleFormat(),
		SampleRate:    int(f.SampleRate()),
		ChannelLayout: f.ChannelLayout(),
		ChunkSize:     int(f.SampleCount()),
	}
}

func (f PCMAudioFormat) Equal(other PCMAudioFormat) bool {
	return f.SampleFormat == other.SampleFormat &&
		f.SampleRate == other.SampleRate &&
		f.ChannelLayout.Equal(other.ChannelLayout) &&
		f.ChunkSize == other.ChunkSize
}

func (f PCMAudioFormat) String() string {
	return fmt.Sprintf("%s/%dHz/%s", f.SampleFormat, f.SampleRate, f.ChannelLayout)
}
