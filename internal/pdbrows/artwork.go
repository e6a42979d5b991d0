package pdbrows

import "encoding/binary"

// ArtworkRow encodes one Artwork-table row: an (artwork_id, path) pair for
// one unique piece of artwork (spec.md §3.2).
type ArtworkRow struct {
	ID   uint32
	Path string
}

var _ Row = ArtworkRow{}

// Stride is 44: the 6-byte fixed header plus the short-ascii encoding of
// the longest path Plan produces ("PIONEER/Artwork/00001/a<uint32>.jpg",
// at most 37 characters plus its 1-byte header).
func (ArtworkRow) Stride(int) int { return 44 }

func (r ArtworkRow) Encode() ([]byte, error) {
	fixed := make([]byte, 6)
	binary.LittleEndian.PutUint32(fixed[0:4], r.ID)
	return encodeNamed(fixed, 4, r.Path)
}
