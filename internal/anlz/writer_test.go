package anlz

import (
	"bytes"
	"testing"

	"github.com/rbxport/rbxport/internal/config"
	"github.com/rbxport/rbxport/internal/model"
)

// parseTags walks a written ANLZ file and returns the sequence of section
// tags, skipping the PMAI file header.
func parseTags(t *testing.T, data []byte) []string {
	t.Helper()
	if string(data[:4]) != "PMAI" {
		t.Fatalf("file does not start with PMAI magic: % x", data[:4])
	}
	pos := pmaiHeaderSize
	var tags []string
	for pos < len(data) {
		tag := string(data[pos : pos+4])
		lenTag := be32(data[pos+8 : pos+12])
		tags = append(tags, tag)
		pos += int(lenTag)
	}
	return tags
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func TestWriteDATTagOrder(t *testing.T) {
	var buf bytes.Buffer
	bundle := model.AnalysisBundle{TempoBPM: 140, Beats: []model.Beat{{TimeMs: 0, BeatInBar: 1}}}
	if err := WriteDAT(&buf, "/PIONEER/USBANLZ/P001/aabbccdd/ANLZ0000", bundle, config.Default()); err != nil {
		t.Fatal(err)
	}
	got := parseTags(t, buf.Bytes())
	want := []string{"PPTH", "PVBR", "PQTZ", "PWAV", "PWV2"}
	if len(got) != len(want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tag[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestWriteEXTTagOrder(t *testing.T) {
	var buf bytes.Buffer
	bundle := model.AnalysisBundle{}
	if err := WriteEXT(&buf, "/PIONEER/USBANLZ/P001/aabbccdd/ANLZ0000", bundle, 180); err != nil {
		t.Fatal(err)
	}
	got := parseTags(t, buf.Bytes())
	want := []string{"PPTH", "PWV3", "PWV4", "PWV5"}
	if len(got) != len(want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tag[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestPQTZHeaderOnlyWhenNoBeats(t *testing.T) {
	s, err := buildPQTZ(0, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.lenTag(); got != 24 {
		t.Errorf("lenTag() = %d, want 24 for a beat-less PQTZ section", got)
	}
}

func TestPQTZWithBeats(t *testing.T) {
	beats := []model.Beat{{TimeMs: 0, BeatInBar: 1}, {TimeMs: 500, BeatInBar: 2}}
	s, err := buildPQTZ(140, beats, false)
	if err != nil {
		t.Fatal(err)
	}
	want := uint32(24 + 8*len(beats))
	if got := s.lenTag(); got != want {
		t.Errorf("lenTag() = %d, want %d", got, want)
	}
}
