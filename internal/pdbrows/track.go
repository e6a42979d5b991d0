package pdbrows

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/rbxport/rbxport/internal/devicesql"
)

// Track row string slot indices (spec.md §4.2.1). Only these are ever
// populated with real content; every other slot among the 21 points at the
// shared empty-string byte.
const (
	SlotAutoloadHotcues = 7
	SlotDateAdded       = 10
	SlotAnalyzePath     = 14
	SlotAnalyzeDate     = 15
	SlotTitle           = 17
	SlotFilename        = 19
	SlotFilePath        = 20

	numStringSlots = 21
)

// Track row fixed-header byte offsets (spec.md §4.2.1).
const (
	offSubtype      = 0x00
	offIndexShift   = 0x02
	offBitmask      = 0x04
	offSampleRate   = 0x08
	offComposerID   = 0x0C
	offFileSize     = 0x10
	offU2           = 0x14
	offU3U4         = 0x18
	offArtworkID    = 0x1C
	offKeyID        = 0x20
	offOrigArtistID = 0x24
	offLabelID      = 0x28
	offRemixerID    = 0x2C
	offBitrate      = 0x30
	offTrackNumber  = 0x34
	offTempo        = 0x38
	offGenreID      = 0x3C
	offAlbumID      = 0x40
	offArtistID     = 0x44
	offID           = 0x48
	offDiscNumber   = 0x4C
	offPlayCount    = 0x4E
	offYear         = 0x50
	offSampleDepth  = 0x52
	offDuration     = 0x54
	offU5           = 0x56
	offColorID      = 0x58
	offRating       = 0x59
	offFileType     = 0x5A
	offU7           = 0x5C

	trackFixedHeaderSize = 0x5E
	stringOffsetTableEnd = trackFixedHeaderSize + 2*numStringSlots // 0x88
)

// Fixed constants for the track row's undocumented fields (spec.md §9 Open
// Questions). Implementations are told to expose these as configurable
// constants; here they are the package-level baseline values observed in
// small reference exports.
const (
	trackBitmaskBaseline = 0x0700
	trackU5Constant      = 0x0029
	trackU7Constant      = 0x0003
	// TrackU2Offset is added to the track ID to derive the u2 field
	// (offset 0x14). Diverges on large exports per spec.md §9; kept as a
	// named constant so the derivation lives in one place.
	TrackU2Offset = 20
)

// TrackRow holds every field needed to encode one Tracks-table row.
type TrackRow struct {
	ID                int
	IndexInPage       int // 0-based position of this row within its page
	SampleRate        uint32
	ComposerID        uint32
	FileSize          uint32
	ArtworkID         uint32
	KeyID             uint32
	OriginalArtistID  uint32
	LabelID           uint32
	RemixerID         uint32
	Bitrate           uint32
	TrackNumber       uint32
	TempoBPM100       uint32 // BPM * 100
	GenreID           uint32
	AlbumID           uint32
	ArtistID          uint32
	DiscNumber        uint16
	PlayCount         uint16
	Year              uint16
	SampleDepth       uint16
	DurationSeconds   uint16
	ColorID           uint8
	Rating            uint8
	FileType          uint16

	Title        string
	DateAdded    string
	AnalyzePath  string
	AnalyzeDate  string
	Filename     string
	FilePath     string
	AutoloadHotcues string // conventionally "ON"
}

var _ Row = TrackRow{}

// Stride returns 332 for a lone row on its page, else 344 (spec.md §4.2.1).
func (TrackRow) Stride(rowsOnPage int) int {
	if rowsOnPage <= 1 {
		return 332
	}
	return 344
}

// Encode renders the fixed 94-byte header, the 21-entry string offset
// table, and the inline string payload (shared empty string first, then
// each populated slot in ascending slot order).
func (r TrackRow) Encode() ([]byte, error) {
	slots := map[int]string{
		SlotAutoloadHotcues: r.AutoloadHotcues,
		SlotDateAdded:       r.DateAdded,
		SlotAnalyzePath:     r.AnalyzePath,
		SlotAnalyzeDate:     r.AnalyzeDate,
		SlotTitle:           r.Title,
		SlotFilename:        r.Filename,
		SlotFilePath:        r.FilePath,
	}

	payload := []byte{devicesql.EmptyString}
	offsets := make([]uint16, numStringSlots)
	for i := 0; i < numStringSlots; i++ {
		s, populated := slots[i]
		if !populated || s == "" {
			offsets[i] = stringOffsetTableEnd // points at the shared empty byte
			continue
		}
		enc, err := devicesql.Encode(s)
		if err != nil {
			return nil, errors.Wrapf(err, "track row %d: encoding slot %d", r.ID, i)
		}
		offsets[i] = uint16(stringOffsetTableEnd + len(payload))
		payload = append(payload, enc...)
	}

	row := make([]byte, trackFixedHeaderSize, trackFixedHeaderSize+2*numStringSlots+len(payload))
	putU16(row, offSubtype, 0x0024)
	putU16(row, offIndexShift, uint16(r.IndexInPage))
	putU32(row, offBitmask, trackBitmaskBaseline)
	putU32(row, offSampleRate, r.SampleRate)
	putU32(row, offComposerID, r.ComposerID)
	putU32(row, offFileSize, r.FileSize)
	putU32(row, offU2, uint32(r.ID)+TrackU2Offset)
	putU32(row, offU3U4, 0)
	putU32(row, offArtworkID, r.ArtworkID)
	putU32(row, offKeyID, r.KeyID)
	putU32(row, offOrigArtistID, r.OriginalArtistID)
	putU32(row, offLabelID, r.LabelID)
	putU32(row, offRemixerID, r.RemixerID)
	putU32(row, offBitrate, r.Bitrate)
	putU32(row, offTrackNumber, r.TrackNumber)
	putU32(row, offTempo, r.TempoBPM100)
	putU32(row, offGenreID, r.GenreID)
	putU32(row, offAlbumID, r.AlbumID)
	putU32(row, offArtistID, r.ArtistID)
	putU32(row, offID, uint32(r.ID))
	putU16(row, offDiscNumber, r.DiscNumber)
	putU16(row, offPlayCount, r.PlayCount)
	putU16(row, offYear, r.Year)
	putU16(row, offSampleDepth, r.SampleDepth)
	putU16(row, offDuration, r.DurationSeconds)
	putU16(row, offU5, trackU5Constant)
	row[offColorID] = r.ColorID
	row[offRating] = r.Rating
	putU16(row, offFileType, r.FileType)
	putU16(row, offU7, trackU7Constant)

	for _, off := range offsets {
		row = binary.LittleEndian.AppendUint16(row, off)
	}
	row = append(row, payload...)

	return row, nil
}

func putU16(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:off+2], v)
}

func putU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}
