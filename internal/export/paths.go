package export

import (
	"crypto/md5"
	"fmt"
	"hash/fnv"
)

// AnalyzePath computes the content-addressed ANLZ directory for a track's
// audio path (spec.md §4.7): `PIONEER/USBANLZ/Pxxx/yyyyyyyy/`. Spec.md
// names FNV-1a as the hash but not how a single 32-bit digest splits into
// a 3-hex and an 8-hex component; this implementation takes the low 12
// bits of the digest for `xxx` and the full digest for `yyyyyyyy`
// (documented in DESIGN.md).
func AnalyzePath(audioPath string) string {
	h := fnv.New32a()
	h.Write([]byte(audioPath))
	sum := h.Sum32()
	return fmt.Sprintf("PIONEER/USBANLZ/P%03X/%08x", sum&0xFFF, sum)
}

// ArtworkDedup assigns stable artwork IDs by content hash (MD5) and
// reports, for each unique image, the device paths for its 80x80 and
// 240x240 variants (spec.md §4.7).
type ArtworkDedup struct {
	ids   map[[md5.Size]byte]uint32
	order [][md5.Size]byte
}

func NewArtworkDedup() *ArtworkDedup {
	return &ArtworkDedup{ids: make(map[[md5.Size]byte]uint32)}
}

// IDFor returns the stable artwork ID for this JPEG-80 content, assigning
// a new one in first-seen order if unseen.
func (d *ArtworkDedup) IDFor(jpeg80 []byte) uint32 {
	sum := md5.Sum(jpeg80)
	if id, ok := d.ids[sum]; ok {
		return id
	}
	id := uint32(len(d.order) + 1)
	d.ids[sum] = id
	d.order = append(d.order, sum)
	return id
}

// Count returns the number of distinct artwork images assigned so far.
func (d *ArtworkDedup) Count() int {
	return len(d.order)
}

// Paths returns the small (80x80) and medium (240x240) device paths for
// an artwork ID.
func Paths(artworkID uint32) (small, medium string) {
	return fmt.Sprintf("PIONEER/Artwork/00001/a%d.jpg", artworkID),
		fmt.Sprintf("PIONEER/Artwork/00001/a%d_m.jpg", artworkID)
}
