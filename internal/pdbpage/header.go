// Package pdbpage implements PageBuilder (spec.md §4.3): it packs a
// sequence of row images into one 4096-byte PDB page, with the row heap,
// the row-index footer, and the page header.
package pdbpage

// Page geometry constants (spec.md §4.3).
const (
	PageSize   = 4096
	HeaderSize = 0x28

	// RowGroupSize is the number of row slots per row-index footer group.
	RowGroupSize = 16
	// fullGroupSize is the byte size of a full (16-slot) footer group: 16
	// little-endian u16 offsets plus present_flags and unknown (2 bytes each).
	fullGroupSize = RowGroupSize*2 + 4
)

// Page header flag bytes (spec.md §4.3, page_flags at offset 0x1B).
const (
	FlagData              = 0x24
	FlagExtendedRowCount   = 0x34
	FlagHeader             = 0x64
	FlagAuxiliary          = 0x44
)

// Header is the 40-byte PDB page header.
type Header struct {
	PageIndex  uint32
	TableType  uint32
	NextPage   uint32
	Sequence   uint32
	NumRows    int // logical row count on this page
	PageFlags  byte
	Unk5       uint16 // usually 0x0001
	Unk6       uint16 // usually 0x0000
	Unk7       uint16 // usually 0x0000
	FreeSize   uint16
	UsedSize   uint16
}

// cyclicMarker returns unk3 = (r mod 8) * 0x20 (spec.md §4.3.2).
func cyclicMarker(numRows int) byte {
	return byte((numRows % 8) * 0x20)
}

// rowCountFields derives num_rows_small, num_rows_large, the "heavy" flag
// and the effective page_flags byte from the logical row count. Pages
// holding 255 or more rows switch to the 16-bit extended row counter; this
// module treats that switch and the "heavy" marker (unk4) as the same
// condition (spec.md §9 names both as unresolved open questions; this
// implementation's resolution is recorded in DESIGN.md).
func rowCountFields(numRows int, baseFlags byte) (numRowsSmall uint8, numRowsLarge uint16, heavy uint8, pageFlags byte) {
	const extendedThreshold = 255
	if numRows < extendedThreshold {
		return uint8(numRows), 0, 0, baseFlags
	}
	effFlags := baseFlags
	if baseFlags == FlagData {
		effFlags = FlagExtendedRowCount
	}
	return 0xFF, 0x1fff, 1, effFlags
}

// encode renders the 40-byte page header.
func (h Header) encode() []byte {
	numRowsSmall, numRowsLarge, heavy, pageFlags := rowCountFields(h.NumRows, h.PageFlags)
	if h.Unk5 == 0 {
		h.Unk5 = 0x0001
	}

	b := make([]byte, HeaderSize)
	putU32(b, 0x00, 0)
	putU32(b, 0x04, h.PageIndex)
	putU32(b, 0x08, h.TableType)
	putU32(b, 0x0C, h.NextPage)
	putU32(b, 0x10, h.Sequence)
	putU32(b, 0x14, 0)
	b[0x18] = numRowsSmall
	b[0x19] = cyclicMarker(h.NumRows)
	b[0x1A] = heavy
	b[0x1B] = pageFlags
	putU16(b, 0x1C, h.FreeSize)
	putU16(b, 0x1E, h.UsedSize)
	putU16(b, 0x20, h.Unk5)
	putU16(b, 0x22, numRowsLarge)
	putU16(b, 0x24, h.Unk6)
	putU16(b, 0x26, h.Unk7)
	return b
}

func putU16(b []byte, off int, v uint16) {
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
}

func putU32(b []byte, off int, v uint32) {
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
	b[off+2] = byte(v >> 16)
	b[off+3] = byte(v >> 24)
}
