package colour

import (
	"math"
	"testing"
)

func TestDeriveDeterministic(t *testing.T) {
	a := Derive("Marketing")
	b := Derive("Marketing")
	if a != b {
		t.Fatalf("same name must derive the same colour: %s != %s", a, b)
	}
}

func TestDeriveCaseInsensitive(t *testing.T) {
	if Derive("Marketing") != Derive("mArKeTiNg") {
		t.Fatal("derivation must ignore case")
	}
}

func TestDeriveReturnsPaletteColour(t *testing.T) {
	for _, name := range []string{"", "a", "Marketing", "Personal", "日本語プロジェクト"} {
		c := Derive(name)
		found := false
		for _, p := range palette {
			if p == c {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("Derive(%q) = %q is not in the palette", name, c)
		}
	}
}

func TestPaletteIndexNegativeHash(t *testing.T) {
	// math.MinInt32 has no positive counterpart, so negation is not an
	// option; the index must still land inside the palette.
	if got := paletteIndex(math.MinInt32); got < 0 || got >= len(palette) {
		t.Fatalf("paletteIndex(MinInt32) = %d, out of range", got)
	}
	for _, h := range []int32{-1, -31, math.MinInt32 + 1} {
		if got := paletteIndex(h); got < 0 || got >= len(palette) {
			t.Fatalf("paletteIndex(%d) = %d, out of range", h, got)
		}
	}
}

func TestReadableText(t *testing.T) {
	cases := []struct {
		bg   string
		want string
	}{
		{"#FFFFFF", "#1f1f1f"},
		{"#000000", "#ffffff"},
		{"#1C7ED6", "#ffffff"},
		{"#F59F00", "#1f1f1f"},
		{"bogus", "#ffffff"},
	}
	for _, c := range cases {
		if got := ReadableText(c.bg); got != c.want {
			t.Errorf("ReadableText(%q) = %q, want %q", c.bg, got, c.want)
		}
	}
}
