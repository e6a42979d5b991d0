package pcmfixture

import (
	"os"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func writeTestWAV(t *testing.T) *os.File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "fixture-*.wav")
	if err != nil {
		t.Fatal(err)
	}

	enc := wav.NewEncoder(f, 44100, 16, 1, 1)
	const n = 44100 // one second
	data := make([]int, n)
	for i := range data {
		if i%2 == 0 {
			data[i] = 10000
		} else {
			data[i] = -10000
		}
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 44100},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestDecodeWaveformsBufferLengths(t *testing.T) {
	f := writeTestWAV(t)
	defer f.Close()

	wf, stats, err := DecodeWaveforms(f, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(wf.Preview) != 400 {
		t.Errorf("Preview length = %d, want 400", len(wf.Preview))
	}
	if len(wf.Tiny) != 100 {
		t.Errorf("Tiny length = %d, want 100", len(wf.Tiny))
	}
	if len(wf.ColorPreview) != 1200 {
		t.Errorf("ColorPreview length = %d, want 1200", len(wf.ColorPreview))
	}
	if len(wf.Detail) != 150 {
		t.Errorf("Detail length = %d, want 150 (1 second * 150/s)", len(wf.Detail))
	}
	if stats.OverallPeak <= 0 {
		t.Error("expected a positive overall peak for a non-silent fixture")
	}
}
