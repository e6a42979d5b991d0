package pdbrows

import (
	"encoding/binary"
	"testing"
)

func TestTrackRowStringReferentialIntegrity(t *testing.T) {
	r := TrackRow{
		ID:              1,
		DurationSeconds: 210,
		Title:           "Fresh",
		DateAdded:       "2026-07-29",
		AnalyzePath:     "/PIONEER/USBANLZ/P001/aabbccdd/ANLZ0000",
		Filename:        "Fresh.mp3",
		FilePath:        "Music/Fresh.mp3",
		AutoloadHotcues: "ON",
	}
	row, err := r.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if len(row) > r.Stride(1) {
		t.Fatalf("encoded row (%d bytes) exceeds single-row stride %d", len(row), r.Stride(1))
	}

	for slot := 0; slot < numStringSlots; slot++ {
		off := binary.LittleEndian.Uint16(row[trackFixedHeaderSize+2*slot:])
		if int(off) >= len(row) {
			t.Fatalf("slot %d offset %d out of bounds (row is %d bytes)", slot, off, len(row))
		}
		// Every offset must land on a valid DeviceSQL string header byte
		// (short-ascii: odd low bit; long forms: 0x40 or 0x90).
		h := row[off]
		if h&1 == 0 && h != 0x40 && h != 0x90 {
			t.Errorf("slot %d offset %d does not point at a string header byte: 0x%02x", slot, off, h)
		}
	}

	// Unused slots must all share the single empty-string byte at 0x88.
	emptyOff := binary.LittleEndian.Uint16(row[trackFixedHeaderSize+2*1:]) // slot 1 is unused
	if int(emptyOff) != stringOffsetTableEnd {
		t.Errorf("unused slot offset = %d, want %d (shared empty string)", emptyOff, stringOffsetTableEnd)
	}
}

func TestTrackRowTempoField(t *testing.T) {
	r := TrackRow{ID: 2, TempoBPM100: 14001}
	row, err := r.Encode()
	if err != nil {
		t.Fatal(err)
	}
	got := binary.LittleEndian.Uint32(row[offTempo:])
	if got != 14001 {
		t.Errorf("tempo field = %d, want 14001", got)
	}
}

func TestTrackRowUnknownTempoIsZero(t *testing.T) {
	r := TrackRow{ID: 3}
	row, err := r.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if got := binary.LittleEndian.Uint32(row[offTempo:]); got != 0 {
		t.Errorf("tempo field = %d, want 0 for unknown tempo", got)
	}
}

func TestSimpleRowFilePtr8(t *testing.T) {
	r := ArtistRow{ID: 1, Name: "A"}
	row, err := r.Encode()
	if err != nil {
		t.Fatal(err)
	}
	ptr := row[4]
	if int(ptr) != 6 {
		t.Fatalf("FilePtr8 = %d, want 6 (end of fixed header)", ptr)
	}
	if row[ptr]&1 == 0 && row[ptr] != 0x40 && row[ptr] != 0x90 {
		t.Errorf("FilePtr8 does not point at a string header byte")
	}
}
