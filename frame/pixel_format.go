package frame

import (
	"fmt"

	"github.com/asticode/go-astiav"
)

// PixelFormat is the plane layout of a video frame.
type PixelFormat int

const (
	// PixelFormatYUV is 4:2:0 planar Y, U, V.
	PixelFormatYUV PixelFormat = iota

	// PixelFormatYUVA is PixelFormatYUV plus a full resolution alpha plane.
	PixelFormatYUVA
)

// PixelFormatFromAstiav maps every planar YUV format carrying an alpha plane
// (any bit depth or chroma subsampling) to PixelFormatYUVA.
func PixelFormatFromAstiav(pixFmt astiav.PixelFormat) PixelFormat {
	if nativeHasPlanarAlpha(pixFmt) {
		return PixelFormatYUVA
	}
	return PixelFormatYUV
}

func (pixFmt PixelFormat) Astiav() astiav.PixelFormat {
	switch pixFmt {
	case PixelFormatYUVA:
		return astiav.PixelFormatYuva420P
	default:
		return astiav.PixelFormatYuv420P
	}
}

func (pixFmt PixelFormat) NumPlanes() int {
	switch pixFmt {
	case PixelFormatYUVA:
		return 4
	default:
		return 3
	}
}

func (pixFmt PixelFormat) IsValid() bool {
	switch pixFmt {
	case PixelFormatYUV, PixelFormatYUVA:
		return true
	}
	return false
}

func (pixFmt PixelFormat) String() string {
	switch pixFmt {
	case PixelFormatYUV:
		return "yuv"
	case PixelFormatYUVA:
		return "yuva"
	default:
		return fmt.Sprintf("unknown_pixel_format_%d", int(pixFmt))
	}
}
