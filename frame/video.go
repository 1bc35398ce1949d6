package frame

import (
	"context"
	"fmt"
)

// Video is a decoded picture.
type Video struct {
	handle      *Handle
	width       int32
	height      int32
	pixelFormat PixelFormat
	colorRange  ColorRange
	formatCode  int32
	timing      Timing
	planes      []Plane
}

func newVideo(h *Handle) *Video {
	f := h.native
	pixFmt := PixelFormatFromAstiav(f.PixelFormat())
	return &Video{
		handle:      h,
		width:       int32(f.Width()),
		height:      int32(f.Height()),
		pixelFormat: pixFmt,
		colorRange:  ColorRangeFromAstiav(f.ColorRange()),
		formatCode:  nativeFormatCode(f),
		timing:      timingFromNative(f),
		planes:      nativeVideoPlanes(f, pixFmt.NumPlanes()),
	}
}

func (*Video) isFrame() {}

func (v *Video) String() string {
	return fmt.Sprintf("Video<%dx%d %s pts:%d>", v.width, v.height, v.pixelFormat, v.timing.PTS)
}

func (v *Video) Width() int32               { return v.width }
func (v *Video) Height() int32              { return v.height }
func (v *Video) PixelFormat() PixelFormat   { return v.pixelFormat }
func (v *Video) ColorRange() ColorRange     { return v.colorRange }
func (v *Video) NativeFormatCode() int32    { return v.formatCode }
func (v *Video) Timing() Timing             { return v.timing }
func (v *Video) PTS() int64                 { return v.timing.PTS }
func (v *Video) Duration() int64            { return v.timing.Duration }
func (v *Video) BestEffortTimestamp() int64 { return v.timing.BestEffortTimestamp }
func (v *Video) PktDTS() int64              { return v.timing.PktDTS }
func (v *Video) Handle() *Handle            { return v.handle }
func (v *Video) Planes() []Plane            { return livePlanes(v.handle, v.planes) }
func (v *Video) LineSizes() []int           { return lineSizesOf(v.planes) }

func (v *Video) Release(ctx context.Context) error {
	return v.handle.Release(ctx)
}
