package scale

import (
	"testing"

	"github.com/cbegin/musicbytes-go/internal/melody"
)

func TestCMajorMapperFoldsModuloSix(t *testing.T) {
	m := CMajor.Mapper()
	want := []uint8{60, 62, 64, 65, 67, 69, 60, 62}
	for raw, w := range want {
		tone := m(uint8(raw), 0, 0)
		if tone.Pitch != w {
			t.Fatalf("raw %d -> pitch %d, want %d", raw, tone.Pitch, w)
		}
	}
	a := m(5, 3, 128)
	if a.Frequency != 400 {
		t.Fatalf("A frequency = %v, want 400", a.Frequency)
	}
	if a.Duration != melody.Quarter || a.Volume != 0.5 {
		t.Fatalf("tone = %+v", a)
	}
}

func TestParseNote(t *testing.T) {
	cases := map[string]Note{
		"C":      C,
		"csharp": CSharp,
		"Bb":     BFlat,
		"f#":     FSharp,
		" gflat": GFlat,
	}
	for in, want := range cases {
		got, err := ParseNote(in)
		if err != nil {
			t.Fatalf("ParseNote(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseNote(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseNote("h"); err == nil {
		t.Fatal("expected error for unknown note")
	}
	if CSharp.Semitone() != DFlat.Semitone() {
		t.Fatal("enharmonic notes should share a semitone")
	}
}

func TestLookup(t *testing.T) {
	cases := []struct {
		name  string
		first uint8
		size  int
	}{
		{"c-major", 60, 6},
		{"g-major", 67, 7},
		{"a-minor-pentatonic", 69, 5},
		{"fsharp-chromatic", 66, 12},
	}
	for _, tc := range cases {
		s, err := Lookup(tc.name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", tc.name, err)
		}
		if len(s.Pitches) != tc.size || s.Pitches[0] != tc.first {
			t.Fatalf("Lookup(%q) = %+v", tc.name, s)
		}
		if s.Name != tc.name {
			t.Fatalf("name = %q, want %q", s.Name, tc.name)
		}
	}
	for _, bad := range []string{"", "major", "h-major", "c-lydian"} {
		if _, err := Lookup(bad); err == nil {
			t.Fatalf("Lookup(%q) should fail", bad)
		}
	}
}

func TestNamesResolve(t *testing.T) {
	for _, name := range Names() {
		if _, err := Lookup(name); err != nil {
			t.Fatalf("listed scale %q does not resolve: %v", name, err)
		}
	}
}

func TestEmptyScaleFallsBackToRawPitch(t *testing.T) {
	tone := Scale{Name: "empty"}.Mapper()(3, 0, 0)
	if tone.Pitch != 3 {
		t.Fatalf("pitch = %d, want 3", tone.Pitch)
	}
}
