// Package pcmfixture decodes a WAV file into the windowed peak buffers
// WaveformQuantizer consumes. It exists for tests; cmd/rbxexport does not
// call it. Production analysis (tempo/key/waveform detection)
// is an external collaborator (spec.md §1 Out of scope) and is never
// exercised through this package.
package pcmfixture

import (
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"github.com/rbxport/rbxport/internal/bufseekio"
	"github.com/rbxport/rbxport/internal/model"
)

// DecodeWaveforms reads a WAV stream and windows it at the five fixed
// rates ANLZ waveform sections need (spec.md §4.6), returning the overall
// peak amplitude alongside the windowed buffers. The WAV decoder seeks
// around the chunk headers before reading PCM data, so the input is
// wrapped in a buffered seeker to keep that cheap on non-buffered sources
// like os.File.
func DecodeWaveforms(rs io.ReadSeeker, durationSeconds int) (model.WaveformBuffers, model.PCMStats, error) {
	dec := wav.NewDecoder(bufseekio.NewReadSeeker(rs))
	if !dec.IsValidFile() {
		return model.WaveformBuffers{}, model.PCMStats{}, errors.New("pcmfixture: invalid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return model.WaveformBuffers{}, model.PCMStats{}, errors.Wrap(err, "pcmfixture: decoding PCM buffer")
	}

	samples := monoSamples(buf)
	overallPeak := peakOf(samples)

	if durationSeconds <= 0 {
		durationSeconds = int(math.Ceil(float64(len(samples)) / float64(dec.SampleRate)))
		if durationSeconds == 0 {
			durationSeconds = 1
		}
	}

	return model.WaveformBuffers{
		Preview:      windowPeaks(samples, 400),
		Tiny:         windowPeaks(samples, 100),
		Detail:       windowPeaks(samples, 150*durationSeconds),
		ColorPreview: windowBandPeaks(samples, 1200),
		ColorDetail:  windowBandPeaks(samples, 150*durationSeconds),
	}, model.PCMStats{OverallPeak: overallPeak}, nil
}

func monoSamples(buf *audio.IntBuffer) []float64 {
	ch := buf.Format.NumChannels
	if ch < 1 {
		ch = 1
	}
	n := len(buf.Data) / ch
	out := make([]float64, n)
	maxVal := float64(int(1) << uint(buf.SourceBitDepth-1))
	if maxVal <= 0 {
		maxVal = 1 << 15
	}
	for i := 0; i < n; i++ {
		var sum float64
		for c := 0; c < ch; c++ {
			sum += float64(buf.Data[i*ch+c])
		}
		out[i] = (sum / float64(ch)) / maxVal
	}
	return out
}

func peakOf(samples []float64) float64 {
	var peak float64
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak
}

// windowPeaks splits samples into n equal windows and returns each
// window's peak absolute amplitude.
func windowPeaks(samples []float64, n int) []float64 {
	out := make([]float64, n)
	if n == 0 || len(samples) == 0 {
		return out
	}
	windowLen := len(samples) / n
	if windowLen < 1 {
		windowLen = 1
	}
	for i := 0; i < n; i++ {
		start := i * windowLen
		end := start + windowLen
		if start >= len(samples) {
			break
		}
		if end > len(samples) {
			end = len(samples)
		}
		out[i] = peakOf(samples[start:end])
	}
	return out
}

// windowBandPeaks approximates low/mid/high band peaks per window by
// scaling each window's peak by fixed factors (1, 0.8 and 0.6), since real
// band-splitting filters are
// an external analyzer concern (spec.md §1 Out of scope); this fixture
// only needs data with the right shape to exercise WaveformQuantizer.
func windowBandPeaks(samples []float64, n int) []model.BandPeaks {
	flat := windowPeaks(samples, n)
	out := make([]model.BandPeaks, n)
	for i, p := range flat {
		out[i] = model.BandPeaks{Low: p, Mid: p * 0.8, High: p * 0.6}
	}
	return out
}
