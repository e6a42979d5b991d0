// Package waveform implements WaveformQuantizer (spec.md §4.6.1): it turns
// pre-windowed PCM peak sequences into the fixed-layout byte sequences
// consumed by the five ANLZ waveform tags (PWAV, PWV2, PWV3, PWV4, PWV5).
//
// Normalization is global-peak: every window's height is derived from the
// same overall_peak shared by all five representations of a track, never
// from a per-representation peak. This is the one invariant (§4.6.1,
// testable property 10) that distinguishes a rendered waveform from a
// silent one in the player UI.
package waveform

import (
	"bytes"
	"math"

	"github.com/icza/bitio"

	"github.com/rbxport/rbxport/internal/model"
)

// Fixed entry counts and bit-field ranges per spec.md §4.6.
const (
	PreviewWindows = 400
	TinyWindows    = 100
	ColorPreviewWindows = 1200
	DetailRatePerSecond = 150

	previewHeightMax = 31 // 5 bits
	previewWhiteness = 5  // 3 bits

	tinyHeightMax = 15 // 4 bits
	tinyHeightFloor = 1

	detailHeightMax = 31 // 5 bits
	detailWhiteness = 7  // 3 bits

	colorPreviewHeightMax = 127 // stored in a full byte, 8-bit range 0-127

	colorDetailHeightMin = 12 // 5 bits, floor 12
	colorDetailHeightMax = 31 // 5 bits, ceiling 31
	rgb3Max              = 7  // 3-bit channel
	blue5Max             = 31 // 5-bit channel
)

// Low-band colors are bright, mid/high-band colors are dim (§4.6 PWV4).
const (
	lowColorMin  = 0xE0
	lowColorMax  = 0xFF
	dimColorMin  = 0x01
	dimColorMax  = 0x30
)

// normalize maps peak into [0,1] relative to overallPeak. A non-positive
// overallPeak means AnalysisUnavailable (§7): normalize always returns 0,
// producing zero-height stub entries that are still validly encoded bytes.
func normalize(peak, overallPeak float64) float64 {
	if overallPeak <= 0 {
		return 0
	}
	n := peak / overallPeak
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// scale linearly maps a [0,1] normalized value into [lo,hi], rounding to the
// nearest integer.
func scale(norm float64, lo, hi int) int {
	return lo + int(math.Round(norm*float64(hi-lo)))
}

// PWAV renders the 400-byte monochrome preview: each byte is
// (whiteness:3 | height:5) with whiteness fixed at 5.
func PWAV(b model.WaveformBuffers, overallPeak float64) []byte {
	buf := new(bytes.Buffer)
	bw := bitio.NewWriter(buf)
	for i := 0; i < PreviewWindows; i++ {
		var peak float64
		if i < len(b.Preview) {
			peak = b.Preview[i]
		}
		height := scale(normalize(peak, overallPeak), 0, previewHeightMax)
		// 3 bits: whiteness. 5 bits: height.
		bw.WriteBits(uint64(previewWhiteness), 3)
		bw.WriteBits(uint64(height), 5)
	}
	bw.Close()
	return buf.Bytes()
}

// PWV2 renders the 100-byte tiny preview: height only (4 bits), floored to
// at least 1 whenever analysis is available (overallPeak > 0).
func PWV2(b model.WaveformBuffers, overallPeak float64) []byte {
	out := make([]byte, TinyWindows)
	for i := 0; i < TinyWindows; i++ {
		var peak float64
		if i < len(b.Tiny) {
			peak = b.Tiny[i]
		}
		height := scale(normalize(peak, overallPeak), 0, tinyHeightMax)
		if overallPeak > 0 && height < tinyHeightFloor {
			height = tinyHeightFloor
		}
		out[i] = byte(height)
	}
	return out
}

// PWV3 renders the monochrome detail waveform at 150 entries per second:
// each byte is (whiteness:3 | height:5) with whiteness fixed at 7.
func PWV3(b model.WaveformBuffers, overallPeak float64, durationSeconds int) []byte {
	n := durationSeconds * DetailRatePerSecond
	buf := new(bytes.Buffer)
	bw := bitio.NewWriter(buf)
	for i := 0; i < n; i++ {
		var peak float64
		if i < len(b.Detail) {
			peak = b.Detail[i]
		}
		height := scale(normalize(peak, overallPeak), 0, detailHeightMax)
		bw.WriteBits(uint64(detailWhiteness), 3)
		bw.WriteBits(uint64(height), 5)
	}
	bw.Close()
	return buf.Bytes()
}

// PWV4 renders the fixed 1200-entry, 3-band color preview: each entry is 6
// bytes, one (height:8, color:8) pair per band (low, mid, high).
func PWV4(b model.WaveformBuffers, overallPeak float64) []byte {
	out := make([]byte, ColorPreviewWindows*6)
	for i := 0; i < ColorPreviewWindows; i++ {
		var bp model.BandPeaks
		if i < len(b.ColorPreview) {
			bp = b.ColorPreview[i]
		}
		off := i * 6
		writeBand(out[off:off+2], bp.Low, overallPeak, lowColorMin, lowColorMax)
		writeBand(out[off+2:off+4], bp.Mid, overallPeak, dimColorMin, dimColorMax)
		writeBand(out[off+4:off+6], bp.High, overallPeak, dimColorMin, dimColorMax)
	}
	return out
}

// writeBand fills a (height, color) byte pair for one PWV4 band column.
func writeBand(dst []byte, peak, overallPeak float64, colorMin, colorMax int) {
	norm := normalize(peak, overallPeak)
	height := scale(norm, 0, colorPreviewHeightMax)
	color := scale(norm, colorMin, colorMax)
	dst[0] = byte(height)
	dst[1] = byte(color)
}

// PWV5 renders the color detail waveform at 150 entries per second: each
// entry packs a 5-bit height (floor 12, ceiling 31) and a 3-band RGB color
// into 2 bytes.
//
//	byte 0 = (blue_low3  << 5) | (height & 0x1F)
//	byte 1 = (red3       << 5) | (green3 << 2) | blue_high2
//
// Blue is a 5-bit channel split across both bytes; red and green are 3-bit
// channels. Red is derived from the high band, green from the mid band, and
// blue from the low band; height reflects the loudest of the three bands.
func PWV5(b model.WaveformBuffers, overallPeak float64, durationSeconds int) []byte {
	n := durationSeconds * DetailRatePerSecond
	buf := new(bytes.Buffer)
	bw := bitio.NewWriter(buf)
	for i := 0; i < n; i++ {
		var bp model.BandPeaks
		if i < len(b.ColorDetail) {
			bp = b.ColorDetail[i]
		}
		loudest := bp.Low
		if bp.Mid > loudest {
			loudest = bp.Mid
		}
		if bp.High > loudest {
			loudest = bp.High
		}
		height := scale(normalize(loudest, overallPeak), colorDetailHeightMin, colorDetailHeightMax)
		if overallPeak <= 0 {
			height = 0
		}
		red := scale(normalize(bp.High, overallPeak), 0, rgb3Max)
		green := scale(normalize(bp.Mid, overallPeak), 0, rgb3Max)
		blue := scale(normalize(bp.Low, overallPeak), 0, blue5Max)

		// 3 bits: blue (low). 5 bits: height.      -- byte 0
		// 3 bits: red. 3 bits: green. 2 bits: blue (high). -- byte 1
		bw.WriteBits(uint64(blue&0x07), 3)
		bw.WriteBits(uint64(height&0x1F), 5)
		bw.WriteBits(uint64(red&0x07), 3)
		bw.WriteBits(uint64(green&0x07), 3)
		bw.WriteBits(uint64((blue>>3)&0x03), 2)
	}
	bw.Close()
	return buf.Bytes()
}
