package main

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	spline "github.com/tphakala/go-spline"
	"github.com/tphakala/go-spline/internal/simdops"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}

	return &wavInputInfo{
		file:     inputFile,
		decoder:  decoder,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: bitDepth,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// channelSplines holds one evaluator per channel. All channels share the
// sample position table; tangents are kept here because the evaluators
// borrow them.
type channelSplines[F Float] struct {
	splines  []*spline.Spline[F]
	tangents [][]F
}

// createChannelSplines builds one spline per channel over the shared
// positions xs.
func createChannelSplines[F Float](xs []F, channelBufs [][]F, degree spline.Degree) (*channelSplines[F], error) {
	cs := &channelSplines[F]{
		splines:  make([]*spline.Spline[F], len(channelBufs)),
		tangents: make([][]F, len(channelBufs)),
	}
	for ch, ys := range channelBufs {
		var (
			sp  *spline.Spline[F]
			err error
		)
		if degree == spline.Hermite {
			sp, cs.tangents[ch], err = spline.NewHermiteFromSamples(xs, ys)
		} else {
			sp, err = spline.NewFromPoints(xs, ys, degree)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create spline for channel %d: %w", ch, err)
		}
		cs.splines[ch] = sp
	}
	return cs, nil
}

// checkPositionRange reports an error when F cannot represent every sample
// position 0..n-1 exactly.
func checkPositionRange[F Float](n int) error {
	var zero F
	if _, ok := any(zero).(float32); ok && n > maxExactFloat32 {
		return fmt.Errorf("%d samples per channel exceeds float32 position range (%d), run without -fast",
			n, maxExactFloat32)
	}
	return nil
}

// samplePositions returns the input positions 0..n-1.
func samplePositions[F Float](n int) []F {
	xs := make([]F, n)
	for i := range xs {
		xs[i] = F(i)
	}
	return xs
}

// outputPositions returns, for every output sample, its position on the
// input sample grid.
func outputPositions[F Float](inputSamples, inputRate, outputRate int) []F {
	n := int(int64(inputSamples) * int64(outputRate) / int64(inputRate))
	step := float64(inputRate) / float64(outputRate)
	qs := make([]F, n)
	for j := range qs {
		qs[j] = F(float64(j) * step)
	}
	return qs
}

// evaluateChannels evaluates every channel spline at the query positions.
// Handles both parallel and sequential modes.
func evaluateChannels[F Float](splines []*spline.Spline[F], queries []F, parallel bool) [][]F {
	out := make([][]F, len(splines))

	// Parallel processing for multichannel
	if parallel && len(splines) > 1 {
		var wg sync.WaitGroup
		for ch := range splines {
			wg.Add(1)
			go func(channel int) {
				defer wg.Done()
				out[channel] = splines[channel].ValueAll(queries)
			}(ch)
		}
		wg.Wait()
		return out
	}

	for ch, sp := range splines {
		out[ch] = sp.ValueAll(queries)
	}
	return out
}

// deinterleave splits interleaved int samples into per-channel float slices
// normalized to [-1.0, 1.0].
func deinterleave[F Float](data []int, numChannels int, invMaxVal float64) [][]F {
	samplesPerChannel := len(data) / numChannels
	channelBufs := make([][]F, numChannels)
	for ch := range numChannels {
		channelBufs[ch] = make([]F, samplesPerChannel)
	}

	for i := range samplesPerChannel {
		base := i * numChannels
		for ch := range numChannels {
			channelBufs[ch][i] = F(data[base+ch])
		}
	}

	ops := simdops.For[F]()
	for _, buf := range channelBufs {
		ops.Scale(buf, buf, F(invMaxVal))
	}
	return channelBufs
}

// interleaveInto converts per-channel float slices into a preallocated int buffer,
// clamping to [-1.0, 1.0]. Returns the number of elements written.
func interleaveInto[F Float](channels [][]F, dst []int, maxVal float64) int {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return 0
	}

	numChannels := len(channels)
	samplesPerChannel := len(channels[0])
	totalLen := samplesPerChannel * numChannels
	if len(dst) < totalLen {
		return 0 // Caller should handle this
	}

	for i := range samplesPerChannel {
		base := i * numChannels
		for ch := range numChannels {
			sample := float64(channels[ch][i])
			if sample > 1.0 {
				sample = 1.0
			} else if sample < -1.0 {
				sample = -1.0
			}
			dst[base+ch] = int(sample * maxVal)
		}
	}
	return totalLen
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// writeWAV encodes interleaved samples to path.
func writeWAV(path string, data []int, sampleRate, bitDepth, channels int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return nil
}
