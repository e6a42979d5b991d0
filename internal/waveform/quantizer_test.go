package waveform

import (
	"testing"

	"github.com/rbxport/rbxport/internal/model"
)

func TestPWAVLength(t *testing.T) {
	out := PWAV(model.WaveformBuffers{}, 0)
	if len(out) != PreviewWindows {
		t.Fatalf("len(PWAV) = %d, want %d", len(out), PreviewWindows)
	}
	for i, b := range out {
		if b&0x1F != 0 {
			t.Fatalf("stub window %d has nonzero height: 0x%02x", i, b)
		}
		if b>>5 != previewWhiteness {
			t.Fatalf("window %d whiteness = %d, want %d", i, b>>5, previewWhiteness)
		}
	}
}

func TestPWAVNormalization(t *testing.T) {
	buf := model.WaveformBuffers{Preview: make([]float64, PreviewWindows)}
	buf.Preview[0] = 1.0
	out := PWAV(buf, 1.0)
	if h := out[0] & 0x1F; h != previewHeightMax {
		t.Errorf("peak window height = %d, want max %d", h, previewHeightMax)
	}
}

func TestPWV2Floor(t *testing.T) {
	buf := model.WaveformBuffers{Tiny: make([]float64, TinyWindows)}
	out := PWV2(buf, 1.0)
	for i, h := range out {
		if h < tinyHeightFloor {
			t.Fatalf("window %d height %d below floor %d", i, h, tinyHeightFloor)
		}
	}
}

func TestPWV2StubIsZero(t *testing.T) {
	out := PWV2(model.WaveformBuffers{}, 0)
	for i, h := range out {
		if h != 0 {
			t.Fatalf("stub window %d = %d, want 0 (floor does not apply when analysis unavailable)", i, h)
		}
	}
}

func TestPWV3MaxHeightOnFullPeak(t *testing.T) {
	const duration = 2
	buf := model.WaveformBuffers{Detail: make([]float64, duration*DetailRatePerSecond)}
	for i := range buf.Detail {
		buf.Detail[i] = 1.0
	}
	out := PWV3(buf, 1.0, duration)
	max := 0
	for _, b := range out {
		if h := int(b & 0x1F); h > max {
			max = h
		}
	}
	if max != detailHeightMax {
		t.Errorf("max(heights(PWV3)) = %d, want %d", max, detailHeightMax)
	}
}

func TestPWV4ColorRanges(t *testing.T) {
	buf := model.WaveformBuffers{ColorPreview: make([]model.BandPeaks, ColorPreviewWindows)}
	for i := range buf.ColorPreview {
		buf.ColorPreview[i] = model.BandPeaks{Low: 1, Mid: 1, High: 1}
	}
	out := PWV4(buf, 1.0)
	if len(out) != ColorPreviewWindows*6 {
		t.Fatalf("len(PWV4) = %d, want %d", len(out), ColorPreviewWindows*6)
	}
	lowColor := out[1]
	if lowColor < lowColorMin || lowColor > lowColorMax {
		t.Errorf("low band color 0x%02x outside [0x%02x,0x%02x]", lowColor, lowColorMin, lowColorMax)
	}
	midColor := out[3]
	if midColor < dimColorMin || midColor > dimColorMax {
		t.Errorf("mid band color 0x%02x outside [0x%02x,0x%02x]", midColor, dimColorMin, dimColorMax)
	}
}

func TestPWV5HeightBounds(t *testing.T) {
	const duration = 1
	buf := model.WaveformBuffers{ColorDetail: make([]model.BandPeaks, duration*DetailRatePerSecond)}
	for i := range buf.ColorDetail {
		buf.ColorDetail[i] = model.BandPeaks{Low: 0.5, Mid: 0.2, High: 0.8}
	}
	out := PWV5(buf, 1.0, duration)
	if len(out) != duration*DetailRatePerSecond*2 {
		t.Fatalf("len(PWV5) = %d, want %d", len(out), duration*DetailRatePerSecond*2)
	}
	for i := 0; i < duration*DetailRatePerSecond; i++ {
		h := out[i*2] & 0x1F
		if h < colorDetailHeightMin || h > colorDetailHeightMax {
			t.Fatalf("entry %d height %d outside [%d,%d]", i, h, colorDetailHeightMin, colorDetailHeightMax)
		}
	}
}
