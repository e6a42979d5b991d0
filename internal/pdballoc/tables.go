// Package pdballoc implements PageAllocator (spec.md §4.4): it assigns
// absolute page numbers to every table's header, data, overflow and
// empty-candidate pages under the fixed reserved-page map.
package pdballoc

// TableType tags a PDB table. Values follow table order in spec.md §4.4;
// the spec gives no canonical numeric tags, so this numbering (0-indexed
// in declaration order) is this implementation's own choice, recorded in
// DESIGN.md.
type TableType uint32

const (
	Tracks TableType = iota
	Genres
	Artists
	Albums
	Labels
	Keys
	Colors
	Playlists
	PlaylistEntries
	Artwork
	Unknown1
	Unknown2
	Unknown3
	Unknown4
	Unknown5
	Unknown6
	Unknown7
	Columns
	HistoryPlaylists
	HistoryEntries
	History
)

// auxiliaryTables are the header-only tables spanning pages 19-32
// (spec.md §4.4) that carry no rows this exporter produces.
var auxiliaryTables = []TableType{Unknown1, Unknown2, Unknown3, Unknown4, Unknown5, Unknown6, Unknown7}

// orderedTables is the fixed table-pointer array order for the file
// header (spec.md §4.5).
var orderedTables = func() []TableType {
	t := []TableType{Tracks, Genres, Artists, Albums, Labels, Keys, Colors, Playlists, PlaylistEntries, Artwork}
	t = append(t, auxiliaryTables...)
	t = append(t, Columns, HistoryPlaylists, HistoryEntries, History)
	return t
}()

// SequenceBase returns base[table] from spec.md §4.3.2.
func SequenceBase(t TableType) uint32 {
	switch t {
	case Tracks, History:
		return 10
	case Genres:
		return 8
	case Artists:
		return 7
	case Albums:
		return 9
	case Playlists:
		return 6
	case PlaylistEntries:
		return 11
	default:
		return 0
	}
}
