package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/avframe/codec"
	"github.com/xaionaro-go/avframe/frame"
	"github.com/xaionaro-go/avframe/logger"
	"github.com/xaionaro-go/avframe/resampler"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [flags]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "prints the size of the buffer needed to resample an audio frame,\n")
		fmt.Fprintf(os.Stderr, "or the plane layout of a video frame if --video is set\n\n")
		pflag.PrintDefaults()
	}

	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	channels := pflag.Int32("channels", 2, "the amount of output channels")
	sampleCount := pflag.Int32("samples", 1024, "the amount of input samples per channel")
	inRate := pflag.Int32("in-rate", 44100, "the input sample rate")
	outRate := pflag.Int32("out-rate", 48000, "the output sample rate")
	outFormatName := pflag.String("out-format", "s16", "the output sample format: "+strings.Join(codec.SampleFormatNames(), ", "))
	video := pflag.String("video", "", "allocate a video frame of the given geometry (e.g. 1920x1080) and print its planes")
	pixelFormatName := pflag.String("pixel-format", "yuv", "the pixel format for --video: yuv or yuva")
	pflag.Parse()
	if len(pflag.Args()) != 0 {
		pflag.Usage()
		os.Exit(1)
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.SetDefault(func() logger.Logger {
		return l
	})
	defer belt.Flush(ctx)
	logger.RedirectAstiav(ctx)

	var err error
	if *video != "" {
		err = printVideo(ctx, *video, *pixelFormatName)
	} else {
		err = printAudio(ctx, *channels, *sampleCount, *inRate, *outRate, *outFormatName)
	}
	if err != nil {
		logger.Errorf(ctx, "%v", err)
		belt.Flush(ctx)
		os.Exit(1)
	}
}

type audioShape struct {
	sampleRate  int32
	sampleCount int32
}

func (s audioShape) SampleRate() int32  { return s.sampleRate }
func (s audioShape) SampleCount() int32 { return s.sampleCount }

func printAudio(
	ctx context.Context,
	channels, sampleCount, inRate, outRate int32,
	outFormatName string,
) error {
	outFormat, err := codec.SampleFormatFromString(outFormatName)
	if err != nil {
		return err
	}

	in := audioShape{sampleRate: inRate, sampleCount: sampleCount}
	logger.Debugf(ctx, "input: %+v", in)

	size, err := resampler.OutputByteSize(channels, in, outFormat, outRate)
	if err != nil {
		return err
	}
	fmt.Printf("%d (%s)\n", size, humanize.IBytes(uint64(size)))
	return nil
}

func printVideo(
	ctx context.Context,
	geometry string,
	pixelFormatName string,
) error {
	var width, height int32
	if _, err := fmt.Sscanf(geometry, "%dx%d", &width, &height); err != nil {
		return fmt.Errorf("unable to parse the geometry '%s': %w", geometry, err)
	}

	var pixFmt frame.PixelFormat
	switch strings.ToLower(pixelFormatName) {
	case "yuv":
		pixFmt = frame.PixelFormatYUV
	case "yuva":
		pixFmt = frame.PixelFormatYUVA
	default:
		return fmt.Errorf("unknown pixel format '%s'", pixelFormatName)
	}

	v, err := frame.NewVideo(ctx, pixFmt, width, height)
	if err != nil {
		if errors.Is(err, frame.ErrAllocation) {
			return fmt.Errorf("%w (geometry '%s')", err, geometry)
		}
		return err
	}
	defer v.Release(ctx)

	var total uint64
	for i, p := range v.Planes() {
		fmt.Printf("plane %d: line size %d, %d bytes\n", i, p.LineSize, len(p.Data))
		total += uint64(len(p.Data))
	}
	fmt.Printf("total: %s\n", humanize.IBytes(total))
	return nil
}
