package azgaar

import (
	"errors"
	"math"
	"testing"
)

func TestDecodeColor(t *testing.T) {
	got, err := DecodeColor("#3a7d22")
	if err != nil {
		t.Fatalf("DecodeColor failed: %v", err)
	}

	want := RGBA{R: 0x3a / 255.0, G: 0x7d / 255.0, B: 0x22 / 255.0, A: 1}
	if !colorsClose(got, want) {
		t.Errorf("DecodeColor(#3a7d22) = %v, want %v", got, want)
	}
	if math.Abs(got.R-0.227) > 0.001 || math.Abs(got.G-0.490) > 0.001 || math.Abs(got.B-0.133) > 0.001 {
		t.Errorf("decoded channels %v out of expected range", got)
	}
}

func TestDecodeColorNoMarker(t *testing.T) {
	with, err := DecodeColor("#ffffff")
	if err != nil {
		t.Fatalf("DecodeColor failed: %v", err)
	}
	without, err := DecodeColor("ffffff")
	if err != nil {
		t.Fatalf("DecodeColor failed: %v", err)
	}
	if with != without {
		t.Errorf("marker changed result: %v vs %v", with, without)
	}
	if with.R != 1 || with.G != 1 || with.B != 1 || with.A != 1 {
		t.Errorf("DecodeColor(#ffffff) = %v, want all ones", with)
	}
}

func TestDecodeColorInvalid(t *testing.T) {
	bad := []string{"", "#", "#fff", "#fffffff", "#gggggg", "12345", "#12 456"}
	for _, s := range bad {
		if _, err := DecodeColor(s); !errors.Is(err, ErrInvalidColorFormat) {
			t.Errorf("DecodeColor(%q): expected ErrInvalidColorFormat, got %v", s, err)
		}
	}
}

func TestDecodePaletteSubstitutesDefault(t *testing.T) {
	palette, invalid := DecodePalette([]string{"#000000", "oops", "#ff0000"})

	if invalid != 1 {
		t.Errorf("expected 1 invalid entry, got %d", invalid)
	}
	if len(palette) != 3 {
		t.Fatalf("expected 3 palette entries, got %d", len(palette))
	}
	if palette[1] != DefaultColor {
		t.Errorf("invalid entry not replaced by default: %v", palette[1])
	}
	if palette[2].R != 1 || palette[2].G != 0 || palette[2].B != 0 {
		t.Errorf("valid entry decoded wrong: %v", palette[2])
	}
}

func colorsClose(a, b RGBA) bool {
	const eps = 1e-9
	return math.Abs(a.R-b.R) < eps &&
		math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps &&
		math.Abs(a.A-b.A) < eps
}
