// Command spline-wav resamples WAV audio files by spline interpolation.
//
// Every channel is treated as a table of samples over the input sample
// positions and evaluated at the output sample positions. The whole file is
// held in memory.
//
// Usage:
//
//	spline-wav -rate 48 input.wav output.wav
//	spline-wav -rate 16 -degree catmull input.wav output.wav
//	spline-wav -rate 48 -fast input.wav output.wav          # float32 precision
//	spline-wav -rate 48 -parallel=false input.wav out.wav   # Disable parallel processing
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	spline "github.com/tphakala/go-spline"
)

const (
	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	kHzToHz  = 1000
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// CLI defaults
	defaultRateKHz  = 48.0
	defaultDegree   = "hermite"
	minRequiredArgs = 2

	// WAV format tag for integer PCM
	wavFormatPCM = 1

	// Largest sample count whose positions are all exact in float32
	maxExactFloat32 = 1 << 24
)

// Float constraint for generic resampling.
type Float = spline.Float

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rateKHz := flag.Float64("rate", defaultRateKHz, "Target sample rate in kHz (e.g., 16, 32, 44.1, 48, 96)")
	degreeName := flag.String("degree", defaultDegree, "Interpolation degree: constant, linear, hermite, catmull")
	fast := flag.Bool("fast", false, "Use float32 precision")
	parallel := flag.Bool("parallel", true, "Enable parallel channel processing (faster for stereo/multichannel)")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -rate 48 input.wav output.wav                  # Resample to 48kHz\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -rate 16 -degree linear speech.wav speech.wav # Cheap downsample\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	degree, err := spline.ParseDegree(*degreeName)
	if err != nil {
		return err
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	inputPath := args[0]
	outputPath := args[1]
	targetRate := int(*rateKHz * kHzToHz)

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Target rate: %d Hz", targetRate)
		log.Printf("Degree: %s", degree)
		if *fast {
			log.Printf("Precision: float32 (fast mode)")
		} else {
			log.Printf("Precision: float64 (high precision)")
		}
	}

	start := time.Now()
	var stats *resampleStats
	if *fast {
		stats, err = resampleWAVGeneric[float32](inputPath, outputPath, targetRate, degree, *verbose, *parallel)
	} else {
		stats, err = resampleWAVGeneric[float64](inputPath, outputPath, targetRate, degree, *verbose, *parallel)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Resampled %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz -> %d Hz (%d channels, %d-bit, %s)\n",
		stats.inputRate, stats.outputRate, stats.channels, stats.bitDepth, degree)
	fmt.Printf("  %d samples -> %d samples\n", stats.inputSamples, stats.outputSamples)
	fmt.Printf("  Duration: %.2fs\n", elapsed.Seconds())

	return nil
}

type resampleStats struct {
	inputRate     int
	outputRate    int
	channels      int
	bitDepth      int
	inputSamples  int64
	outputSamples int64
}

func resampleWAVGeneric[F Float](inputPath, outputPath string, targetRate int, degree spline.Degree, verbose, parallel bool) (*resampleStats, error) {
	// 1. Open and validate input
	input, err := openWAVInput(inputPath, verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	if targetRate <= 0 {
		return nil, fmt.Errorf("target rate must be positive, got %d Hz", targetRate)
	}
	if input.rate == targetRate {
		return nil, fmt.Errorf("input already at target rate %d Hz", targetRate)
	}

	// 2. Read and deinterleave
	pcm, err := input.decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}
	maxVal := getMaxValue(input.bitDepth)
	channelBufs := deinterleave[F](pcm.Data, input.channels, 1.0/maxVal)
	inputSamples := len(pcm.Data) / input.channels
	if inputSamples == 0 {
		return nil, fmt.Errorf("no audio samples in %s", inputPath)
	}

	// 3. One spline per channel over the shared sample positions
	if err := checkPositionRange[F](inputSamples); err != nil {
		return nil, err
	}
	positions := samplePositions[F](inputSamples)
	splines, err := createChannelSplines(positions, channelBufs, degree)
	if err != nil {
		return nil, err
	}

	// 4. Evaluate at the output positions
	queries := outputPositions[F](inputSamples, input.rate, targetRate)
	if verbose {
		log.Printf("Evaluating %d output samples per channel", len(queries))
	}
	resampled := evaluateChannels(splines.splines, queries, parallel)

	// 5. Interleave and write
	out := make([]int, len(queries)*input.channels)
	n := interleaveInto(resampled, out, maxVal)
	if err := writeWAV(outputPath, out[:n], targetRate, input.bitDepth, input.channels); err != nil {
		return nil, err
	}

	return &resampleStats{
		inputRate:     input.rate,
		outputRate:    targetRate,
		channels:      input.channels,
		bitDepth:      input.bitDepth,
		inputSamples:  int64(inputSamples),
		outputSamples: int64(len(queries)),
	}, nil
}
