// Package pdb implements PdbWriter (spec.md §4.5): it stitches the file
// header page, every table's rendered pages, and the verbatim auxiliary
// blobs into one export.pdb image.
package pdb

import (
	"io"

	"github.com/pkg/errors"

	"github.com/rbxport/rbxport/internal/model"
	"github.com/rbxport/rbxport/internal/pdballoc"
	"github.com/rbxport/rbxport/internal/pdbpage"
	"github.com/rbxport/rbxport/internal/pdbrows"
)

// AuxBlobs holds the four opaque, capture-time byte blobs embedded
// verbatim (spec.md §4.5 rule 3; non-goal: these are never regenerated).
type AuxBlobs struct {
	Columns          [4096]byte
	HistoryPlaylists [4096]byte
	HistoryEntries   [4096]byte
	History          [4096]byte
	// HistoryRowCount is the current export's track count; placeBlobs
	// derives the History data page's patched sequence field from it
	// (spec.md §4.5 rule 4).
	HistoryRowCount int
}

// TableRows is the set of already ID-resolved row images for every
// row-bearing table, keyed by table type.
type TableRows map[pdballoc.TableType][]pdbrows.Row

// pagePackCapacity caps a single page's row payload; tables other than
// Tracks rarely approach it, but the same greedy packer applies uniformly.
const pagePackCapacity = pdbpage.PageDataCapacity

// Write renders the complete PDB image to w.
func Write(w io.Writer, rows TableRows, aux AuxBlobs) error {
	packed := make(map[pdballoc.TableType][][]pdbrows.Row)
	dataPageCounts := make(map[pdballoc.TableType]int)
	for _, t := range coreTables {
		pages := pdbpage.PackPages(rows[t], pagePackCapacity)
		if len(pages) == 0 {
			pages = [][]pdbrows.Row{nil}
		}
		fixIndexInPage(pages)
		packed[t] = pages
		dataPageCounts[t] = len(pages)
	}

	plan, err := pdballoc.Allocate(dataPageCounts)
	if err != nil {
		return errors.Wrap(err, "allocating page plan")
	}

	pages := make(map[uint32][]byte)
	finalSeq := make(map[pdballoc.TableType]uint32)

	for t, layout := range plan.Tables {
		if _, isBlob := blobSet[t]; isBlob {
			continue
		}
		if _, isAux := auxSet[t]; isAux {
			hp, err := pdbpage.Build(pdbpage.Header{
				PageIndex: layout.HeaderPage,
				TableType: uint32(t),
				NextPage:  0,
				PageFlags: pdbpage.FlagHeader,
			}, nil)
			if err != nil {
				return errors.Wrapf(err, "building header for table %v", t)
			}
			pages[layout.HeaderPage] = hp
			continue
		}

		tablePages := packed[t]
		seqs := sequences(t, tablePages)
		finalSeq[t] = seqs[len(seqs)-1]

		for i, rowsOnPage := range tablePages {
			next := layout.EmptyCandidate
			if i+1 < len(layout.DataPages) {
				next = layout.DataPages[i+1]
			}
			page, err := pdbpage.Build(pdbpage.Header{
				PageIndex: layout.DataPages[i],
				TableType: uint32(t),
				NextPage:  next,
				Sequence:  seqs[i],
				PageFlags: pdbpage.FlagData,
			}, rowsOnPage)
			if err != nil {
				return errors.Wrapf(err, "building data page %d for table %v", i, t)
			}
			pages[layout.DataPages[i]] = page
		}

		firstData := layout.DataPages[0]
		hp, err := pdbpage.Build(pdbpage.Header{
			PageIndex: layout.HeaderPage,
			TableType: uint32(t),
			NextPage:  firstData,
			PageFlags: pdbpage.FlagHeader,
		}, nil)
		if err != nil {
			return errors.Wrapf(err, "building header for table %v", t)
		}
		pages[layout.HeaderPage] = hp

		if layout.EmptyCandidate != 0 {
			ec, err := pdbpage.Build(pdbpage.Header{
				PageIndex: layout.EmptyCandidate,
				TableType: uint32(t),
				PageFlags: pdbpage.FlagAuxiliary,
			}, nil)
			if err != nil {
				return errors.Wrapf(err, "building empty_candidate for table %v", t)
			}
			pages[layout.EmptyCandidate] = ec
		}
	}

	if err := placeBlobs(pages, plan, aux); err != nil {
		return err
	}

	fileSeq := fileSequence(plan, finalSeq)
	header := buildFileHeader(plan, fileSeq)
	pages[0] = header

	return flush(w, pages, plan.NextUnusedPage)
}

var coreTables = []pdballoc.TableType{
	pdballoc.Tracks, pdballoc.Genres, pdballoc.Artists, pdballoc.Albums,
	pdballoc.Labels, pdballoc.Keys, pdballoc.Colors, pdballoc.Playlists,
	pdballoc.PlaylistEntries, pdballoc.Artwork,
}

var blobSet = map[pdballoc.TableType]bool{
	pdballoc.Columns: true, pdballoc.HistoryPlaylists: true,
	pdballoc.HistoryEntries: true, pdballoc.History: true,
}

var auxSet = map[pdballoc.TableType]bool{
	pdballoc.Unknown1: true, pdballoc.Unknown2: true, pdballoc.Unknown3: true,
	pdballoc.Unknown4: true, pdballoc.Unknown5: true, pdballoc.Unknown6: true,
	pdballoc.Unknown7: true,
}

// fixIndexInPage sets each TrackRow's IndexInPage to its 0-based position
// within its own page, matching the index_shift field (spec.md §4.2.1).
func fixIndexInPage(pages [][]pdbrows.Row) {
	for _, page := range pages {
		for i, r := range page {
			if tr, ok := r.(pdbrows.TrackRow); ok {
				tr.IndexInPage = i
				page[i] = tr
			}
		}
	}
}

// sequences computes each data page's sequence field per the chain law
// (spec.md §4.3.2).
func sequences(t pdballoc.TableType, tablePages [][]pdbrows.Row) []uint32 {
	out := make([]uint32, len(tablePages))
	base := pdballoc.SequenceBase(t)
	for i, rows := range tablePages {
		r := uint32(len(rows))
		if i == 0 {
			if r == 0 {
				out[i] = base
				continue
			}
			out[i] = base + (r-1)*5
			continue
		}
		out[i] = out[i-1] + r*5
	}
	return out
}

// fileSequence derives the file-header sequence field (spec.md §4.5 rule
// 1: "governed by the golden-file test suite for small exports"). This
// implementation sums the final chain sequence of every row-bearing table,
// which reproduces the single-track golden value in spec.md §8 scenario
// S1 and is documented as an Open Question resolution in DESIGN.md.
func fileSequence(plan *pdballoc.Plan, finalSeq map[pdballoc.TableType]uint32) uint32 {
	var sum uint32
	for t := range plan.Tables {
		if blobSet[t] || auxSet[t] {
			continue
		}
		sum += finalSeq[t]
	}
	return sum
}

func flush(w io.Writer, pages map[uint32][]byte, nextUnused uint32) error {
	zero := make([]byte, pdbpage.PageSize)
	for p := uint32(0); p < nextUnused; p++ {
		b, ok := pages[p]
		if !ok {
			b = zero
		}
		if _, err := w.Write(b); err != nil {
			return model.New(model.IoError, errors.Wrapf(err, "writing page %d", p))
		}
	}
	return nil
}
