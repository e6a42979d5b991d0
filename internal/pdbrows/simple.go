package pdbrows

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/rbxport/rbxport/internal/devicesql"
)

// encodeNamed renders the classic FilePtr8 row shape used by Artist, Album,
// Genre, Key, Label and Color rows (spec.md §4.2.2): a small fixed header
// ending in a one-byte pointer, followed immediately by the row's single
// DeviceSQL string. The pointer byte holds the offset of the string
// relative to the start of the row, per the "FilePtr8" convention (read at
// the pointer's own position, interpreted relative to the row's absolute
// page offset).
func encodeNamed(fixed []byte, ptrOffset int, name string) ([]byte, error) {
	enc, err := devicesql.Encode(name)
	if err != nil {
		return nil, errors.Wrap(err, "encoding row name")
	}
	strOffset := len(fixed)
	if strOffset > 0xFF {
		return nil, errors.Errorf("row header of %d bytes exceeds FilePtr8 range", strOffset)
	}
	fixed[ptrOffset] = byte(strOffset)
	out := make([]byte, 0, len(fixed)+len(enc))
	out = append(out, fixed...)
	out = append(out, enc...)
	return out, nil
}

// ArtistRow encodes one Artists-table row.
type ArtistRow struct {
	ID   uint32
	Name string
}

var _ Row = ArtistRow{}

func (ArtistRow) Stride(int) int { return 28 }

func (r ArtistRow) Encode() ([]byte, error) {
	fixed := make([]byte, 6)
	binary.LittleEndian.PutUint32(fixed[0:4], r.ID)
	return encodeNamed(fixed, 4, r.Name)
}

// AlbumRow encodes one Albums-table row. ArtistID is always 0 (spec.md
// §3.2: albums carry no artist reference).
type AlbumRow struct {
	ID   uint32
	Name string
}

var _ Row = AlbumRow{}

// Stride returns 44 for a lone row on its page, else 40 (spec.md §4.2.2).
func (AlbumRow) Stride(rowsOnPage int) int {
	if rowsOnPage <= 1 {
		return 44
	}
	return 40
}

func (r AlbumRow) Encode() ([]byte, error) {
	fixed := make([]byte, 10)
	binary.LittleEndian.PutUint32(fixed[0:4], r.ID)
	binary.LittleEndian.PutUint32(fixed[4:8], 0) // artist_id, always 0
	return encodeNamed(fixed, 8, r.Name)
}

// GenreRow encodes one Genres-table row.
type GenreRow struct {
	ID   uint32
	Name string
}

var _ Row = GenreRow{}

func (GenreRow) Stride(int) int { return 20 }

func (r GenreRow) Encode() ([]byte, error) {
	fixed := make([]byte, 6)
	binary.LittleEndian.PutUint32(fixed[0:4], r.ID)
	return encodeNamed(fixed, 4, r.Name)
}

// KeyRow encodes one Keys-table row.
type KeyRow struct {
	ID   uint32
	Name string
}

var _ Row = KeyRow{}

func (KeyRow) Stride(int) int { return 12 }

func (r KeyRow) Encode() ([]byte, error) {
	fixed := make([]byte, 6)
	binary.LittleEndian.PutUint32(fixed[0:4], r.ID)
	return encodeNamed(fixed, 4, r.Name)
}

// LabelRow encodes one Labels-table row. Spec.md does not call out this
// table's stride explicitly; it is given Genre's compact shape since both
// are single bare-name lookup tables.
type LabelRow struct {
	ID   uint32
	Name string
}

var _ Row = LabelRow{}

func (LabelRow) Stride(int) int { return 20 }

func (r LabelRow) Encode() ([]byte, error) {
	fixed := make([]byte, 6)
	binary.LittleEndian.PutUint32(fixed[0:4], r.ID)
	return encodeNamed(fixed, 4, r.Name)
}

// ColorPresetNames are the 8 fixed color presets (spec.md §3.2), in ID
// order (IDs 1-8).
var ColorPresetNames = [8]string{
	"Pink", "Red", "Orange", "Yellow", "Green", "Aqua", "Blue", "Purple",
}

// ColorRow encodes one Colors-table row. Colors is always exactly the 8
// fixed presets.
type ColorRow struct {
	ID   uint32
	Name string
}

var _ Row = ColorRow{}

func (ColorRow) Stride(int) int { return 24 }

func (r ColorRow) Encode() ([]byte, error) {
	fixed := make([]byte, 6)
	binary.LittleEndian.PutUint32(fixed[0:4], r.ID)
	return encodeNamed(fixed, 4, r.Name)
}
