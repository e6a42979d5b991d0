package pdb

import (
	"encoding/binary"

	"github.com/rbxport/rbxport/internal/pdballoc"
	"github.com/rbxport/rbxport/internal/pdbpage"
)

// File header page layout. Spec.md §4.5/§6.2 pin three offsets exactly
// (page_size at 0x04, sequence at 0x14, next_unused_page at 0x1C); the
// remaining fields are this implementation's own placement in the gaps,
// documented in DESIGN.md.
const (
	fhMagic          = 0x00
	fhPageSize       = 0x04
	fhNumTables      = 0x08
	fhUnknown1       = 0x10
	fhSequence       = 0x14
	fhNextUnusedPage = 0x1C
	fhTableArray     = 0x20

	fhTableEntrySize = 16
	fhUnknown1Value  = 5
)

func buildFileHeader(plan *pdballoc.Plan, sequence uint32) []byte {
	page := make([]byte, pdbpage.PageSize)

	tables := pdballoc.OrderedTables()
	binary.LittleEndian.PutUint32(page[fhMagic:], 0)
	binary.LittleEndian.PutUint32(page[fhPageSize:], pdbpage.PageSize)
	binary.LittleEndian.PutUint32(page[fhNumTables:], uint32(len(tables)))
	binary.LittleEndian.PutUint32(page[fhNextUnusedPage:], plan.NextUnusedPage)
	binary.LittleEndian.PutUint32(page[fhUnknown1:], fhUnknown1Value)
	binary.LittleEndian.PutUint32(page[fhSequence:], sequence)

	for i, t := range tables {
		layout := plan.Tables[t]
		off := fhTableArray + i*fhTableEntrySize
		binary.LittleEndian.PutUint32(page[off:], uint32(t))
		binary.LittleEndian.PutUint32(page[off+4:], layout.EmptyCandidate)
		binary.LittleEndian.PutUint32(page[off+8:], layout.FirstPage())
		binary.LittleEndian.PutUint32(page[off+12:], layout.LastPage())
	}
	return page
}
