// sample_format.go describes the audio sample formats the module knows about.

package codec

import (
	"fmt"
	"strings"

	"github.com/asticode/go-astiav"
)

type sampleFormatInfo struct {
	Name           string
	SampleFormat   astiav.SampleFormat
	BytesPerSample int
}

var sampleFormats = []sampleFormatInfo{
	{Name: "u8", SampleFormat: astiav.SampleFormatU8, BytesPerSample: 1},
	{Name: "u8p", SampleFormat: astiav.SampleFormatU8P, BytesPerSample: 1},
	{Name: "s16", SampleFormat: astiav.SampleFormatS16, BytesPerSample: 2},
	{Name: "s16p", SampleFormat: astiav.SampleFormatS16P, BytesPerSample: 2},
	{Name: "s32", SampleFormat: astiav.SampleFormatS32, BytesPerSample: 4},
	{Name: "s32p", SampleFormat: astiav.SampleFormatS32P, BytesPerSample: 4},
	{Name: "s64", SampleFormat: astiav.SampleFormatS64, BytesPerSample: 8},
	{Name: "s64p", SampleFormat: astiav.SampleFormatS64P, BytesPerSample: 8},
	{Name: "flt", SampleFormat: astiav.SampleFormatFlt, BytesPerSample: 4},
	{Name: "fltp", SampleFormat: astiav.SampleFormatFltp, BytesPerSample: 4},
	{Name: "dbl", SampleFormat: astiav.SampleFormatDbl, BytesPerSample: 8},
	{Name: "dblp", SampleFormat: astiav.SampleFormatDblp, BytesPerSample: 8},
}

// SampleFormatFromString parses the libav short name of a sample format
// ("s16", "fltp", ...), case-insensitively.
func SampleFormatFromString(s string) (astiav.SampleFormat, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for _, info := range sampleFormats {
		if info.Name == s {
			return info.SampleFormat, nil
		}
	}
	return astiav.SampleFormatNone, fmt.Errorf("unsupported sample format '%s'", s)
}

// SampleFormatNames lists the names accepted by SampleFormatFromString.
func SampleFormatNames() []string {
	result := make([]string, 0, len(sampleFormats))
	for _, info := range sampleFormats {
		result = append(result, info.Name)
	}
	return result
}

// BytesPerSample returns the size of one sample of one channel, or
// an error for a format outside of the known set.
func BytesPerSample(sampleFormat astiav.SampleFormat) (int, error) {
	for _, info := range sampleFormats {
		if info.SampleFormat == sampleFormat {
			return info.BytesPerSample, nil
		}
	}
	return 0, fmt.Errorf("unsupported sample format %d", int(sampleFormat))
}
