// Package anlz implements AnlzWriter (spec.md §4.6): the per-track tagged
// section files (.DAT and .EXT) carrying beatgrid, VBR index, path and
// waveform data. All integers are big-endian, the opposite convention from
// the PDB encoder (internal/pdb); the two writer facades are kept in
// separate packages so one endianness never leaks into the other (spec.md
// §9 "Endian asymmetry").
package anlz

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// commonHeaderSize is the size, in bytes, of every section's fixed prefix:
// a 4-byte ASCII tag followed by two big-endian u32 length fields.
const commonHeaderSize = 12

// section is one tagged section of an ANLZ file: a 4-byte ASCII tag, a
// len_header field locating where this section's fixed sub-header ends and
// its variable payload begins, a len_tag field giving the section's total
// length, and the body (sub-header plus payload) itself.
type section struct {
	tag       string
	lenHeader uint32
	body      []byte
}

// lenTag is the section's total length: the common 12-byte prefix plus the
// body that follows it.
func (s section) lenTag() uint32 {
	return commonHeaderSize + uint32(len(s.body))
}

// encode renders the section's bytes in order: tag, len_header, len_tag,
// body.
func (s section) encode() []byte {
	out := make([]byte, 0, commonHeaderSize+len(s.body))
	out = append(out, s.tag...)
	out = binary.BigEndian.AppendUint32(out, s.lenHeader)
	out = binary.BigEndian.AppendUint32(out, s.lenTag())
	out = append(out, s.body...)
	return out
}

// newSection validates the tag length and wraps a pre-built body.
func newSection(tag string, lenHeader uint32, body []byte) (section, error) {
	if len(tag) != 4 {
		return section{}, errors.Errorf("anlz: section tag %q must be 4 ASCII characters", tag)
	}
	return section{tag: tag, lenHeader: lenHeader, body: body}, nil
}

// writeSections assembles a PMAI file header followed by the given sections
// and returns the whole file's bytes, per spec.md §4.6's file-level layout.
func writeSections(sections []section) []byte {
	var body bytes.Buffer
	for _, s := range sections {
		body.Write(s.encode())
	}

	pmai := buildPMAI(pmaiHeaderSize+body.Len(), len(sections))

	out := make([]byte, 0, len(pmai)+body.Len())
	out = append(out, pmai...)
	out = append(out, body.Bytes()...)
	return out
}
