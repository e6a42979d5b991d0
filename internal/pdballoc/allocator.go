package pdballoc

import (
	"github.com/pkg/errors"

	"github.com/rbxport/rbxport/internal/model"
)

// TableLayout is one table's resolved page assignment.
type TableLayout struct {
	Type           TableType
	HeaderPage     uint32
	DataPages      []uint32 // in chain order; empty for header-only tables
	EmptyCandidate uint32   // 0 when the table has no empty-candidate of its own
}

func (l TableLayout) FirstPage() uint32 {
	if len(l.DataPages) == 0 {
		return l.HeaderPage
	}
	return l.DataPages[0]
}

func (l TableLayout) LastPage() uint32 {
	if len(l.DataPages) == 0 {
		return l.HeaderPage
	}
	return l.DataPages[len(l.DataPages)-1]
}

// Plan is the fully resolved page map for one export.
type Plan struct {
	Tables         map[TableType]TableLayout
	NextUnusedPage uint32
}

// fixedSlot describes a table's rigid header/first-data/special-second-data
// pages (spec.md §4.4).
type fixedSlot struct {
	header  uint32
	data    uint32
	special uint32 // 0 if the table has no reserved second data slot
}

var fixedSlots = map[TableType]fixedSlot{
	Tracks:          {header: 1, data: 2, special: 51},
	Genres:          {header: 3, data: 4},
	Artists:         {header: 5, data: 6},
	Albums:          {header: 7, data: 8},
	Labels:          {header: 9, data: 10},
	Keys:            {header: 11, data: 12, special: 50},
	Colors:          {header: 13, data: 14},
	Playlists:       {header: 15, data: 16},
	PlaylistEntries: {header: 17, data: 18, special: 52},
	// Artwork has no page map entry in spec.md; it draws a header/data pair
	// from the otherwise-unused tail of the always-zero reserved range
	// (pages 41-49, DESIGN.md), with its own reserved second-data slot so a
	// non-overflowing export never touches the dynamic pool for it either.
	Artwork: {header: 47, data: 48, special: 49},
}

var auxHeaderPages = map[TableType]uint32{
	Unknown1: 19, Unknown2: 21, Unknown3: 23, Unknown4: 25,
	Unknown5: 27, Unknown6: 29, Unknown7: 31,
}

// blobSlot describes a verbatim-blob table's header and fixed data page
// (spec.md §4.5 rule 3; these four tables are never regenerated).
type blobSlot struct {
	header uint32
	data   uint32
}

var blobSlots = map[TableType]blobSlot{
	Columns:          {header: 33, data: 34},
	HistoryPlaylists: {header: 35, data: 36},
	HistoryEntries:   {header: 37, data: 38},
	History:          {header: 39, data: 40},
}

// cascadeOrder is the priority order in which tables draw overflow pages
// and an empty_candidate from the shared dynamic pool (pages 53+). Spec.md
// §4.4 rule 2 names Tracks, Artists, Albums (and "similarly" Genres);
// Labels/Colors/Playlists/PlaylistEntries/Keys/Artwork, in that order, are
// this implementation's own completion of the cascade (DESIGN.md).
var cascadeOrder = []TableType{
	Tracks, Artists, Albums, Genres, Labels, Colors, Playlists, PlaylistEntries, Keys, Artwork,
}

// reservedEmptyCandidate gives the six tables with no special second-data
// slot a fixed, never-overflowing empty_candidate page drawn from the
// always-zero reserved range (pages 41-49, spec.md §4.4), so a table that
// never overflows never has to draw from the dynamic pool just to have an
// empty_candidate (DESIGN.md).
var reservedEmptyCandidate = map[TableType]uint32{
	Genres:    41,
	Artists:   42,
	Albums:    43,
	Labels:    44,
	Colors:    45,
	Playlists: 46,
}

// Allocate resolves the full page map given, for each core table, the
// number of data pages PageBuilder's packing already decided it needs
// (minimum 1).
func Allocate(dataPageCounts map[TableType]int) (*Plan, error) {
	tables := make(map[TableType]TableLayout)

	for t, slot := range fixedSlots {
		tables[t] = TableLayout{
			Type:       t,
			HeaderPage: slot.header,
			DataPages:  []uint32{slot.data},
		}
	}

	for t, p := range auxHeaderPages {
		tables[t] = TableLayout{Type: t, HeaderPage: p}
	}
	for t, slot := range blobSlots {
		tables[t] = TableLayout{Type: t, HeaderPage: slot.header, DataPages: []uint32{slot.data}}
	}

	cursor := uint32(53)
	for _, t := range cascadeOrder {
		slot, ok := fixedSlots[t]
		if !ok {
			return nil, model.New(model.PlanningError, errors.Errorf("pdballoc: %v has no fixed slot", t))
		}
		n := dataPageCounts[t]
		if n < 1 {
			n = 1
		}
		layout := tables[t]

		remaining := n - 1 // beyond the fixed first data page
		overflowed := remaining > 0
		if slot.special != 0 && remaining > 0 {
			layout.DataPages = append(layout.DataPages, slot.special)
			remaining--
		}
		for ; remaining > 0; remaining-- {
			layout.DataPages = append(layout.DataPages, cursor)
			cursor++
		}

		switch {
		case overflowed:
			// The reserved special slot (if any) was already consumed as
			// an overflow data page above, so the candidate comes fresh
			// from the dynamic pool.
			layout.EmptyCandidate = cursor
			cursor++
		case slot.special != 0:
			layout.EmptyCandidate = slot.special
		default:
			layout.EmptyCandidate = reservedEmptyCandidate[t]
		}
		tables[t] = layout
	}

	nextUnused := cursor
	return &Plan{Tables: tables, NextUnusedPage: nextUnused}, nil
}

// OrderedTables returns every table in the fixed file-header pointer-array
// order (spec.md §4.5).
func OrderedTables() []TableType {
	out := make([]TableType, len(orderedTables))
	copy(out, orderedTables)
	return out
}
