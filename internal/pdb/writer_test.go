package pdb

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/rbxport/rbxport/internal/pdballoc"
	"github.com/rbxport/rbxport/internal/pdbpage"
	"github.com/rbxport/rbxport/internal/pdbrows"
)

func singleTrackRows() TableRows {
	return TableRows{
		pdballoc.Tracks: {pdbrows.TrackRow{ID: 1, DurationSeconds: 200, Title: "One", AnalyzePath: "/PIONEER/USBANLZ/P001/aaaaaaaa/ANLZ0000"}},
		pdballoc.Artists: {pdbrows.ArtistRow{ID: 1, Name: "Artist"}},
		pdballoc.Albums:  {pdbrows.AlbumRow{ID: 1, Name: "Album"}},
		pdballoc.Genres:  {pdbrows.GenreRow{ID: 1, Name: "Genre"}},
		pdballoc.Keys:    {pdbrows.KeyRow{ID: 1, Name: "8A"}},
	}
}

func TestWriteSingleTrackExportSize(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, singleTrackRows(), AuxBlobs{HistoryRowCount: 1}); err != nil {
		t.Fatal(err)
	}
	if buf.Len()%pdbpage.PageSize != 0 {
		t.Fatalf("output size %d is not a whole number of pages", buf.Len())
	}
	nextUnused := binary.LittleEndian.Uint32(buf.Bytes()[fhNextUnusedPage:])
	if int(nextUnused)*pdbpage.PageSize != buf.Len() {
		t.Errorf("file size %d != next_unused_page(%d)*4096", buf.Len(), nextUnused)
	}
}

func TestWriteTracksPageChain(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, singleTrackRows(), AuxBlobs{HistoryRowCount: 1}); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	tracksHeader := data[1*pdbpage.PageSize : 2*pdbpage.PageSize]
	next := binary.LittleEndian.Uint32(tracksHeader[0x0C:])
	if next != 2 {
		t.Fatalf("Tracks header next_page = %d, want 2", next)
	}
	tracksData := data[2*pdbpage.PageSize : 3*pdbpage.PageSize]
	seq := binary.LittleEndian.Uint32(tracksData[0x10:])
	if seq != 10 {
		t.Errorf("Tracks first data page sequence = %d, want 10", seq)
	}
	unk3 := tracksData[0x19]
	if unk3 != 0x20 {
		t.Errorf("Tracks first data page unk3 = 0x%02x, want 0x20", unk3)
	}
}
