package pdbrows

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/rbxport/rbxport/internal/devicesql"
)

// PlaylistTreeRow encodes one PlaylistTree-table row (spec.md §4.2.3): a
// named node in the playlist tree, either a folder or a leaf playlist.
type PlaylistTreeRow struct {
	ID       uint32
	ParentID uint32
	Sort     uint32
	IsFolder bool
	Name     string
}

var _ Row = PlaylistTreeRow{}

func (PlaylistTreeRow) Stride(int) int { return 44 }

func (r PlaylistTreeRow) Encode() ([]byte, error) {
	enc, err := devicesql.Encode(r.Name)
	if err != nil {
		return nil, errors.Wrap(err, "encoding playlist name")
	}
	const headerSize = 16
	fixed := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(fixed[0:4], r.ParentID)
	folder := uint32(0)
	if r.IsFolder {
		folder = 1
	}
	binary.LittleEndian.PutUint32(fixed[4:8], folder)
	binary.LittleEndian.PutUint32(fixed[8:12], r.Sort)
	binary.LittleEndian.PutUint32(fixed[12:16], r.ID)
	out := make([]byte, 0, headerSize+len(enc))
	out = append(out, fixed...)
	out = append(out, enc...)
	return out, nil
}

// PlaylistEntryRow encodes one PlaylistEntries-table row (spec.md §4.2.3):
// the association of a track to a playlist at a given position. Entries
// carry no strings.
type PlaylistEntryRow struct {
	EntryIndex uint32
	TrackID    uint32
	PlaylistID uint32
}

var _ Row = PlaylistEntryRow{}

func (PlaylistEntryRow) Stride(int) int { return 12 }

func (r PlaylistEntryRow) Encode() ([]byte, error) {
	out := make([]byte, 12)
	binary.LittleEndian.PutUint32(out[0:4], r.EntryIndex)
	binary.LittleEndian.PutUint32(out[4:8], r.TrackID)
	binary.LittleEndian.PutUint32(out[8:12], r.PlaylistID)
	return out, nil
}
