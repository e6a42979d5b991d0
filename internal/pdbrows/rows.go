// Package pdbrows implements RowEncoders (spec.md §4.2): the byte-image
// producers for each PDB entity-row kind. Every row type exposes the same
// narrow interface so PageBuilder can stay generic over which table it is
// packing (spec.md §9 "Polymorphism across row kinds").
package pdbrows

// Row is the shared interface every entity-row encoder implements.
type Row interface {
	// Encode renders the row's full byte image: fixed header, any string
	// offset table, and inline string payload. The returned slice is not
	// yet padded to a page stride; PageBuilder zero-pads it.
	Encode() ([]byte, error)
	// Stride returns the fixed byte stride this row must occupy on the
	// page, given the total number of rows sharing that page (some tables
	// use a different stride for single-row pages, spec.md §4.2.2/§4.2.1).
	Stride(rowsOnPage int) int
}
