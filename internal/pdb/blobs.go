package pdb

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/rbxport/rbxport/internal/model"
	"github.com/rbxport/rbxport/internal/pdballoc"
	"github.com/rbxport/rbxport/internal/pdbpage"
)

// historySequenceOffset is the page header's sequence field offset
// (spec.md §4.3, 0x10), used to patch the captured History blob in place.
const historySequenceOffset = 0x10

// placeBlobs embeds the four opaque auxiliary blobs verbatim and patches
// the History data page's sequence field to the current export's track
// count (spec.md §4.5 rules 3-4).
func placeBlobs(pages map[uint32][]byte, plan *pdballoc.Plan, aux AuxBlobs) error {
	blobs := map[pdballoc.TableType][4096]byte{
		pdballoc.Columns:          aux.Columns,
		pdballoc.HistoryPlaylists: aux.HistoryPlaylists,
		pdballoc.HistoryEntries:   aux.HistoryEntries,
		pdballoc.History:          aux.History,
	}

	for t, blob := range blobs {
		layout, ok := plan.Tables[t]
		if !ok || len(layout.DataPages) == 0 {
			return model.New(model.PlanningError, errors.Errorf("pdb: no page plan for blob table %v", t))
		}
		dataPage := layout.DataPages[0]

		body := make([]byte, pdbpage.PageSize)
		copy(body, blob[:])
		if t == pdballoc.History {
			seq := pdballoc.SequenceBase(pdballoc.History) + uint32(aux.HistoryRowCount-1)*5
			binary.LittleEndian.PutUint32(body[historySequenceOffset:], seq)
		}
		pages[dataPage] = body

		hp, err := pdbpage.Build(pdbpage.Header{
			PageIndex: layout.HeaderPage,
			TableType: uint32(t),
			NextPage:  dataPage,
			PageFlags: pdbpage.FlagHeader,
		}, nil)
		if err != nil {
			return errors.Wrapf(err, "building header page for blob table %v", t)
		}
		pages[layout.HeaderPage] = hp
	}
	return nil
}
