package devicesql

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeEmpty(t *testing.T) {
	got, err := Encode("")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{0x03}) {
		t.Errorf("Encode(\"\") = % x, want [03]", got)
	}
}

func TestEncodeShortASCII(t *testing.T) {
	got, err := Encode("ON")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{byte((len("ON")+1)<<1) | 1, 'O', 'N'}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode(\"ON\") = % x, want % x", got, want)
	}
}

func TestEncodeLongASCII(t *testing.T) {
	s := strings.Repeat("a", 200)
	got, err := Encode(s)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != longASCIIFlag {
		t.Fatalf("flag byte = 0x%02x, want 0x%02x", got[0], longASCIIFlag)
	}
	length := int(got[1]) | int(got[2])<<8
	if length != len(s)+4 {
		t.Errorf("length = %d, want %d", length, len(s)+4)
	}
	if got[3] != 0 {
		t.Errorf("pad byte = 0x%02x, want 0x00", got[3])
	}
	if string(got[4:]) != s {
		t.Errorf("payload mismatch")
	}
}

func TestEncodeUTF16(t *testing.T) {
	s := "Déjà Vu"
	got, err := Encode(s)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != longUTF16Flag {
		t.Fatalf("flag byte = 0x%02x, want 0x%02x", got[0], longUTF16Flag)
	}
	nchars := len([]rune(s))
	length := int(got[1]) | int(got[2])<<8
	if length != 2*nchars+4 {
		t.Errorf("length = %d, want %d", length, 2*nchars+4)
	}
}

func TestEncodeMixedRowStaysASCII(t *testing.T) {
	// Only the non-ASCII field should switch forms; unrelated fields in the
	// same row stay short-ascii.
	ascii, err := Encode("Fresh")
	if err != nil {
		t.Fatal(err)
	}
	if ascii[0]&1 == 0 {
		t.Errorf("expected short-ascii form for pure-ASCII string")
	}
	nonASCII, err := Encode("Déjà Vu")
	if err != nil {
		t.Fatal(err)
	}
	if nonASCII[0] != longUTF16Flag {
		t.Errorf("non-ASCII flag byte = 0x%02x, want 0x%02x", nonASCII[0], longUTF16Flag)
	}
}
