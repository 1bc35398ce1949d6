// native.go reads the AVFrame fields that go-astiav does not expose.

package frame

/*
#cgo pkg-config: libavutil
#include <libavutil/frame.h>
#include <libavutil/pixdesc.h>
#include <libavutil/samplefmt.h>

static int avframe_plane_height(const AVFrame *f, int plane) {
	const AVPixFmtDescriptor *d = av_pix_fmt_desc_get(f->format);
	if (d == NULL) {
		return 0;
	}
	if (plane == 1 || plane == 2) {
		return -((-f->height) >> d->log2_chroma_h);
	}
	return f->height;
}

static int avframe_pix_fmt_planar_alpha(int format) {
	const AVPixFmtDescriptor *d = av_pix_fmt_desc_get(format);
	if (d == NULL) {
		return 0;
	}
	if (d->flags & AV_PIX_FMT_FLAG_RGB) {
		return 0;
	}
	return (d->flags & AV_PIX_FMT_FLAG_ALPHA) && (d->flags & AV_PIX_FMT_FLAG_PLANAR);
}

static uint8_t *avframe_plane(const AVFrame *f, int plane) {
	if (f->extended_data != NULL) {
		return f->extended_data[plane];
	}
	return f->data[plane];
}

static int avframe_audio_plane_count(const AVFrame *f) {
	if (!av_sample_fmt_is_planar(f->format)) {
		return 1;
	}
	return f->ch_layout.nb_channels;
}
*/
import "C"

import (
	"unsafe"

	"github.com/asticode/go-astiav"
)

func cFrame(f *astiav.Frame) *C.AVFrame {
	return (*C.AVFrame)(f.UnsafePointer())
}

func nativeBestEffortTimestamp(f *astiav.Frame) int64 {
	return int64(cFrame(f).best_effort_timestamp)
}

func nativeFormatCode(f *astiav.Frame) int32 {
	return int32(cFrame(f).format)
}

// nativeHasPlanarAlpha reports whether pixFmt is a planar YUV layout with a separate alpha plane.
func nativeHasPlanarAlpha(pixFmt astiav.PixelFormat) bool {
	return C.avframe_pix_fmt_planar_alpha(C.int(pixFmt)) != 0
}

func nativePlaneBytes(f *astiav.Frame, plane int, size int) []byte {
	if size <= 0 {
		return nil
	}
	ptr := C.avframe_plane(cFrame(f), C.int(plane))
	if ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), size)
}

// nativeVideoPlanes returns numPlanes views; each view spans lineSize*planeHeight bytes.
func nativeVideoPlanes(f *astiav.Frame, numPlanes int) []Plane {
	lineSizes := f.Linesize()
	planes := make([]Plane, numPlanes)
	for i := range planes {
		lineSize := lineSizes[i]
		height := int(C.avframe_plane_height(cFrame(f), C.int(i)))
		planes[i] = Plane{
			Data:     nativePlaneBytes(f, i, lineSize*height),
			LineSize: lineSize,
		}
	}
	return planes
}

// nativeAudioPlanes returns one view for packed formats and one per channel for planar ones.
// libav sets only linesize[0] for audio, it is the size of every plane.
func nativeAudioPlanes(f *astiav.Frame) []Plane {
	lineSize := f.Linesize()[0]
	count := int(C.avframe_audio_plane_count(cFrame(f)))
	planes := make([]Plane, count)
	for i := range planes {
		planes[i] = Plane{
			Data:     nativePlaneBytes(f, i, lineSize),
			LineSize: lineSize,
		}
	}
	return planes
}
