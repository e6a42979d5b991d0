// Package devicesql implements the DeviceSQL variable-length string
// convention (spec.md §4.1) used throughout the PDB row encoders.
package devicesql

import (
	"unicode/utf16"

	"github.com/pkg/errors"

	"github.com/rbxport/rbxport/internal/model"
)

// EmptyString is the one-byte encoding of the zero-length string: the
// short-ascii header byte for length 0, h = ((0+1)<<1)|1 = 0x03. Any row
// field that is absent must point at a copy of this byte, never at offset 0
// of the row.
const EmptyString = byte(0x03)

const (
	longASCIIFlag  = 0x40
	longUTF16Flag  = 0x90
	shortLenLimit  = 126
)

// Encode returns the DeviceSQL wire encoding of s, choosing the shortest form
// that can represent it: short-ascii, long-ascii, or long-utf16le.
//
// An EncodingError-class failure is returned if s is UTF-16 and its byte
// length would overflow the 16-bit length field used by the long forms.
func Encode(s string) ([]byte, error) {
	if s == "" {
		return []byte{EmptyString}, nil
	}

	if isASCII(s) && len(s) <= shortLenLimit {
		h := byte((len(s)+1)<<1) | 1
		out := make([]byte, 0, 1+len(s))
		out = append(out, h)
		out = append(out, s...)
		return out, nil
	}

	if isASCII(s) {
		n := len(s)
		length := n + 4
		if length > 0xFFFF {
			return nil, model.New(model.EncodingError, errors.Errorf("devicesql: ascii string of %d bytes exceeds u16 length field", n))
		}
		out := make([]byte, 0, 4+n)
		out = append(out, longASCIIFlag)
		out = append(out, byte(length), byte(length>>8))
		out = append(out, 0)
		out = append(out, s...)
		return out, nil
	}

	units := utf16.Encode([]rune(s))
	byteLen := 2 * len(units)
	length := byteLen + 4
	if length > 0xFFFF {
		return nil, model.New(model.EncodingError, errors.Errorf("devicesql: utf16 string of %d chars exceeds u16 length field", len(units)))
	}
	out := make([]byte, 0, 4+byteLen)
	out = append(out, longUTF16Flag)
	out = append(out, byte(length), byte(length>>8))
	out = append(out, 0)
	for _, u := range units {
		out = append(out, byte(u), byte(u>>8))
	}
	return out, nil
}

// isASCII reports whether every rune in s fits in a single 7-bit ASCII byte.
func isASCII(s string) bool {
	for _, r := range s {
		if r > 0x7F {
			return false
		}
	}
	return true
}

// Len returns the number of bytes Encode(s) produces. It runs Encode and
// measures the result.
func Len(s string) (int, error) {
	enc, err := Encode(s)
	if err != nil {
		return 0, err
	}
	return len(enc), nil
}
