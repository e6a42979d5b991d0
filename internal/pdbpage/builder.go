package pdbpage

import (
	"github.com/pkg/errors"

	"github.com/rbxport/rbxport/internal/model"
	"github.com/rbxport/rbxport/internal/pdbrows"
)

// PageDataCapacity bounds how many row bytes plus footer bytes a single
// page may hold (spec.md §4.3.3): page size minus header size, the whole
// space shared by the row heap and the row-index footer.
const PageDataCapacity = PageSize - HeaderSize

// PackPages greedily splits rows into page-sized groups: it keeps adding
// rows to the current page while the rows' encoded stride plus the
// resulting row-index footer still fit PageDataCapacity, and starts a new
// page as soon as the next row would overflow it (spec.md §4.3.3).
func PackPages(rows []pdbrows.Row, capacity int) [][]pdbrows.Row {
	if capacity <= 0 {
		capacity = PageDataCapacity
	}
	var pages [][]pdbrows.Row
	var cur []pdbrows.Row
	for _, r := range rows {
		candidateLen := len(cur) + 1
		stride := r.Stride(candidateLen)
		used := stride*candidateLen + footerSize(candidateLen)
		if used > capacity && len(cur) > 0 {
			pages = append(pages, cur)
			cur = []pdbrows.Row{r}
			continue
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		pages = append(pages, cur)
	}
	return pages
}

// Build renders one complete 4096-byte page: the row heap starting at
// HeaderSize, the row-index footer at the page's end, and the page header
// filled in with the derived row count, free size and used size.
func Build(header Header, rows []pdbrows.Row) ([]byte, error) {
	rowsOnPage := len(rows)
	offsets := make([]uint16, 0, rowsOnPage)
	body := make([]byte, 0, PageDataCapacity)
	cursor := HeaderSize

	for i, r := range rows {
		if cursor > 0xFFFF {
			return nil, model.New(model.PagingOverflow, errors.Errorf("row %d offset %d exceeds 16-bit page offset range", i, cursor))
		}
		offsets = append(offsets, uint16(cursor))

		enc, err := r.Encode()
		if err != nil {
			return nil, model.New(model.EncodingError, errors.Wrapf(err, "encoding row %d", i))
		}
		stride := r.Stride(rowsOnPage)
		if len(enc) > stride {
			return nil, model.New(model.PagingOverflow, errors.Errorf("row %d encodes to %d bytes, exceeds stride %d", i, len(enc), stride))
		}
		padded := make([]byte, stride)
		copy(padded, enc)
		body = append(body, padded...)
		cursor += stride
	}

	footer := buildFooter(offsets)
	footerStart := PageSize - len(footer)
	if cursor > footerStart {
		return nil, model.New(model.PagingOverflow, errors.Errorf("page overflow: %d rows need %d bytes, only %d available", rowsOnPage, cursor-HeaderSize, footerStart-HeaderSize))
	}

	header.NumRows = rowsOnPage
	header.UsedSize = uint16(cursor - HeaderSize)
	header.FreeSize = uint16(footerStart - cursor)

	page := make([]byte, PageSize)
	copy(page, header.encode())
	copy(page[HeaderSize:], body)
	copy(page[footerStart:], footer)
	return page, nil
}
