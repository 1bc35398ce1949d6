package frame

import (
	"fmt"

	"github.com/asticode/go-astiav"
)

// ColorRange is the luma/chroma value range of a video frame.
type ColorRange int

const (
	ColorRangeRestricted ColorRange = iota
	ColorRangeFull
)

func ColorRangeFromAstiav(r astiav.ColorRange) ColorRange {
	if r == astiav.ColorRangeJpeg {
		return ColorRangeFull
	}
	return ColorRangeRestricted
}

func (r ColorRange) Astiav() astiav.ColorRange {
	switch r {
	case ColorRangeFull:
		return astiav.ColorRangeJpeg
	default:
		return astiav.ColorRangeMpeg
	}
}

func (r ColorRange) String() string {
	switch r {
	case ColorRangeRestricted:
		return "restricted"
	case ColorRangeFull:
		return "full"
	default:
		return fmt.Sprintf("unknown_color_range_%d", int(r))
	}
}
