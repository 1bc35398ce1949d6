package frame

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
)

// Audio is a block of decoded samples.
type Audio struct {
	handle        *Handle
	sampleRate    int32
	sampleCount   int32
	sampleFormat  astiav.SampleFormat
	channelLayout astiav.ChannelLayout
	timing        Timing
	planes        []Plane
}

func newAudio(h *Handle) *Audio {
	f := h.native
	return &Audio{
		handle:        h,
		sampleRate:    int32(f.SampleRate()),
		sampleCount:   int32(f.NbSamples()),
		sampleFormat:  f.SampleFormat(),
		channelLayout: f.ChannelLayout(),
		timing:        timingFromNative(f),
		planes:        nativeAudioPlanes(f),
	}
}

func (*Audio) isFrame() {}

func (a *Audio) String() string {
	return fmt.Sprintf("Audio<%s %dHz %dch samples:%d pts:%d>",
		a.sampleFormat, a.sampleRate, a.Channels(), a.sampleCount, a.timing.PTS,
	)
}

// SampleRate returns the amount of samples per second.
func (a *Audio) SampleRate() int32 { return a.sampleRate }

// SampleCount returns the amount of samples per channel.
func (a *Audio) SampleCount() int32 { return a.sampleCount }

func (a *Audio) SampleFormat() astiav.SampleFormat   { return a.sampleFormat }
func (a *Audio) NativeFormatCode() int32             { return int32(a.sampleFormat) }
func (a *Audio) ChannelLayout() astiav.ChannelLayout { return a.channelLayout }
func (a *Audio) Channels() int                       { return a.channelLayout.Channels() }
func (a *Audio) Timing() Timing                      { return a.timing }
func (a *Audio) PTS() int64                          { return a.timing.PTS }
func (a *Audio) Duration() int64                     { return a.timing.Duration }
func (a *Audio) BestEffortTimestamp() int64          { return a.timing.BestEffortTimestamp }
func (a *Audio) PktDTS() int64                       { return a.timing.PktDTS }
func (a *Audio) Handle() *Handle                     { return a.handle }
func (a *Audio) Planes() []Plane                     { return livePlanes(a.handle, a.planes) }
func (a *Audio) LineSizes() []int                    { return lineSizesOf(a.planes) }
func (a *Audio) Release(ctx context.Context) error   { return a.handle.Release(ctx) }
