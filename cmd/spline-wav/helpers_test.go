package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	spline "github.com/tphakala/go-spline"
	"github.com/tphakala/go-spline/internal/testutil"
)

// writeTestWAV writes a 16-bit sine tone with the given channel count.
func writeTestWAV(t *testing.T, path string, rate, channels, frames int) {
	t.Helper()
	data := make([]int, frames*channels)
	for i := range frames {
		for ch := range channels {
			phase := float64(ch) * math.Pi / 4
			v := 0.5 * math.Sin(2*math.Pi*440*float64(i)/float64(rate)+phase)
			data[i*channels+ch] = int(v * maxInt16)
		}
	}
	require.NoError(t, writeWAV(path, data, rate, bitsPerSample16, channels))
}

func readTestWAV(t *testing.T, path string) (*audio.IntBuffer, *wav.Decoder) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	return buf, dec
}

func TestOpenWAVInput_FileNotFound(t *testing.T) {
	_, err := openWAVInput("/nonexistent/file.wav", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestOpenWAVInput_InvalidWAV(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.wav")
	err := os.WriteFile(invalidFile, []byte("not a wav file"), 0o644)
	require.NoError(t, err)

	_, err = openWAVInput(invalidFile, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestOpenWAVInput_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeTestWAV(t, path, 8000, 2, 800)

	info, err := openWAVInput(path, false)
	require.NoError(t, err)
	defer func() { _ = info.Close() }()

	assert.Equal(t, 8000, info.rate)
	assert.Equal(t, 2, info.channels)
	assert.Equal(t, bitsPerSample16, info.bitDepth)
}

func TestCreateChannelSplines(t *testing.T) {
	xs := samplePositions[float64](4)
	bufs := [][]float64{{0, 1, 0, -1}, {1, 1, 1, 1}}

	for _, degree := range []spline.Degree{spline.Constant, spline.Linear, spline.Hermite, spline.CatmullRom} {
		t.Run(degree.String(), func(t *testing.T) {
			cs, err := createChannelSplines(xs, bufs, degree)
			require.NoError(t, err)
			require.Len(t, cs.splines, 2)
			for ch, sp := range cs.splines {
				assert.Equal(t, degree, sp.Degree())
				assert.Equal(t, bufs[ch][2], sp.Value(2), "channel %d", ch)
			}
			if degree == spline.Hermite {
				assert.Len(t, cs.tangents[0], 4)
			}
		})
	}
}

func TestCreateChannelSplines_LengthMismatch(t *testing.T) {
	_, err := createChannelSplines(samplePositions[float64](3), [][]float64{{0, 1}}, spline.Linear)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel 0")
	assert.ErrorIs(t, err, spline.ErrLengthMismatch)
}

func TestOutputPositions(t *testing.T) {
	up := outputPositions[float64](4, 8000, 16000)
	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5}, up)

	down := outputPositions[float32](6, 16000, 8000)
	assert.Equal(t, []float32{0, 2, 4}, down)
}

func TestCheckPositionRange(t *testing.T) {
	require.NoError(t, checkPositionRange[float32](maxExactFloat32))
	require.NoError(t, checkPositionRange[float64](maxExactFloat32+1))

	err := checkPositionRange[float32](maxExactFloat32 + 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-fast")

	// Beyond 2^24 neighbouring positions collapse to the same float32.
	assert.Equal(t, float32(maxExactFloat32), float32(maxExactFloat32+1))
}

func TestEvaluateChannels_ParallelMatchesSequential(t *testing.T) {
	xs := samplePositions[float64](64)
	bufs := make([][]float64, 4)
	for ch := range bufs {
		bufs[ch] = make([]float64, len(xs))
		for i := range xs {
			bufs[ch][i] = math.Sin(float64(i)*0.3 + float64(ch))
		}
	}
	queries := outputPositions[float64](64, 3, 7)

	seq, err := createChannelSplines(xs, bufs, spline.CatmullRom)
	require.NoError(t, err)
	par, err := createChannelSplines(xs, bufs, spline.CatmullRom)
	require.NoError(t, err)

	want := evaluateChannels(seq.splines, queries, false)
	got := evaluateChannels(par.splines, queries, true)
	for ch := range bufs {
		assert.Equal(t, want[ch], got[ch], "channel %d", ch)
	}
}

func TestDeinterleaveInterleave_RoundTrip(t *testing.T) {
	data := []int{100, -200, 32767, -32767, 0, 5}
	bufs := deinterleave[float64](data, 2, 1.0/maxInt16)
	require.Len(t, bufs, 2)
	assert.InDelta(t, 1.0, bufs[0][1], 1e-12)
	assert.InDelta(t, -1.0, bufs[1][1], 1e-12)

	out := make([]int, len(data))
	n := interleaveInto(bufs, out, maxInt16)
	require.Equal(t, len(data), n)
	for i := range data {
		assert.InDelta(t, data[i], out[i], 1, "sample %d", i)
	}
}

func TestInterleaveInto_Clamps(t *testing.T) {
	out := make([]int, 2)
	n := interleaveInto([][]float32{{1.5}, {-3}}, out, maxInt16)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int{32767, -32767}, out)

	assert.Equal(t, 0, interleaveInto([][]float64{{0, 0}}, make([]int, 1), maxInt16))
}

func TestGetMaxValue(t *testing.T) {
	assert.Equal(t, maxInt16, getMaxValue(16))
	assert.Equal(t, maxInt24, getMaxValue(24))
	assert.Equal(t, maxInt32, getMaxValue(32))
	assert.Equal(t, maxInt16, getMaxValue(12))
}

func TestWriteWAV_InvalidDirectory(t *testing.T) {
	err := writeWAV("/nonexistent/dir/output.wav", []int{0}, 48000, 16, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestResampleWAVGeneric_Upsample(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")
	writeTestWAV(t, in, 8000, 2, 800)

	stats, err := resampleWAVGeneric[float64](in, out, 16000, spline.Hermite, false, true)
	require.NoError(t, err)
	assert.Equal(t, int64(800), stats.inputSamples)
	assert.Equal(t, int64(1600), stats.outputSamples)
	assert.Equal(t, 2, stats.channels)

	buf, dec := readTestWAV(t, out)
	assert.Equal(t, uint32(16000), dec.SampleRate)
	assert.Equal(t, uint16(2), dec.NumChans)
	require.Len(t, buf.Data, 1600*2)

	// Even output samples land on input samples and reproduce them exactly.
	orig, _ := readTestWAV(t, in)
	for i := 0; i < 800; i += 37 {
		assert.InDelta(t, orig.Data[i*2], buf.Data[i*4], 1, "frame %d", i)
	}

	peak := 0.0
	for _, v := range buf.Data {
		peak = max(peak, math.Abs(float64(v))/maxInt16)
	}
	testutil.AssertInRange(t, peak, 0.45, 0.55)
}

func TestResampleWAVGeneric_Float32Downsample(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")
	writeTestWAV(t, in, 16000, 1, 1600)

	stats, err := resampleWAVGeneric[float32](in, out, 8000, spline.Linear, false, false)
	require.NoError(t, err)
	assert.Equal(t, int64(800), stats.outputSamples)

	buf, _ := readTestWAV(t, out)
	assert.Len(t, buf.Data, 800)
}

func TestResampleWAVGeneric_SameRate(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	writeTestWAV(t, in, 8000, 1, 100)

	_, err := resampleWAVGeneric[float64](in, filepath.Join(dir, "out.wav"), 8000, spline.Linear, false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already at target rate")
}
