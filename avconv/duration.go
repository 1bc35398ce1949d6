// duration.go converts libav timestamps to and from time.Duration.

// Package avconv provides conversions between libav values and Go values.
package avconv

import (
	"math"
	"time"

	"github.com/asticode/go-astiav"
)

const (
	// see https://ffmpeg.org/doxygen/trunk/group__lavu__time.html#ga2eaefe702f95f619ea6f2d08afa01be1
	NoPTSValue = int64(math.MinInt64)
)

// NoDuration is what Duration returns for NoPTSValue.
const NoDuration = time.Duration(math.MinInt64)

func Duration(t int64, timeBase astiav.Rational) time.Duration {
	if t == NoPTSValue {
		return NoDuration
	}
	if timeBase.Den() == 0 {
		return NoDuration
	}
	return time.Duration(float64(t) * timeBase.Float64() * float64(time.Second))
}

func FromDuration(d time.Duration, timeBase astiav.Rational) int64 {
	if d == NoDuration || timeBase.Num() == 0 {
		return NoPTSValue
	}
	return int64(d.Seconds() / timeBase.Float64())
}
