// frame.go defines the Frame sum type and the values shared by its cases.

// Package frame provides read-only views over decoded video and audio frames.
package frame

import (
	"context"
	"fmt"
	"time"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avframe/avconv"
)

// Frame is either a *Video or an *Audio.
type Frame interface {
	fmt.Stringer
	Handle() *Handle
	Timing() Timing
	NativeFormatCode() int32
	// Planes returns views into the native buffers, or nil once released.
	Planes() []Plane
	LineSizes() []int
	Release(ctx context.Context) error

	isFrame()
}

var (
	_ Frame = (*Video)(nil)
	_ Frame = (*Audio)(nil)
)

// Timing holds the timestamps of a frame in stream time-base units.
type Timing struct {
	PTS                 int64
	Duration            int64
	BestEffortTimestamp int64
	PktDTS              int64
}

func timingFromNative(f *astiav.Frame) Timing {
	return Timing{
		PTS:                 f.Pts(),
		Duration:            f.Duration(),
		BestEffortTimestamp: nativeBestEffortTimestamp(f),
		PktDTS:              f.PktDts(),
	}
}

func (t Timing) PTSAsDuration(timeBase astiav.Rational) time.Duration {
	return avconv.Duration(t.PTS, timeBase)
}

func (t Timing) DurationAsDuration(timeBase astiav.Rational) time.Duration {
	return avconv.Duration(t.Duration, timeBase)
}

func (t Timing) BestEffortTimestampAsDuration(timeBase astiav.Rational) time.Duration {
	return avconv.Duration(t.BestEffortTimestamp, timeBase)
}

// Plane is a non-owning view into one native buffer of a frame.
// It is valid only until the frame is released and must not be written.
type Plane struct {
	Data     []byte
	LineSize int
}

func livePlanes(h *Handle, planes []Plane) []Plane {
	if h.IsReleased() {
		return nil
	}
	result := make([]Plane, len(planes))
	copy(result, planes)
	return result
}

func lineSizesOf(planes []Plane) []int {
	result := make([]int, len(planes))
	for i, p := range planes {
		result[i] = p.LineSize
	}
	return result
}
