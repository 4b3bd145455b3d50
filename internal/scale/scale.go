package scale

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cbegin/musicbytes-go/internal/melody"
)

type Note int

const (
	C Note = iota
	CSharp
	DFlat
	D
	DSharp
	EFlat
	E
	F
	FSharp
	GFlat
	G
	GSharp
	AFlat
	A
	ASharp
	BFlat
	B
)

var noteSemitones = map[Note]int{
	C: 0, CSharp: 1, DFlat: 1, D: 2, DSharp: 3, EFlat: 3, E: 4, F: 5,
	FSharp: 6, GFlat: 6, G: 7, GSharp: 8, AFlat: 8, A: 9, ASharp: 10, BFlat: 10, B: 11,
}

var noteNames = map[string]Note{
	"c": C, "csharp": CSharp, "c#": CSharp, "dflat": DFlat, "db": DFlat,
	"d": D, "dsharp": DSharp, "d#": DSharp, "eflat": EFlat, "eb": EFlat,
	"e": E, "f": F, "fsharp": FSharp, "f#": FSharp, "gflat": GFlat, "gb": GFlat,
	"g": G, "gsharp": GSharp, "g#": GSharp, "aflat": AFlat, "ab": AFlat,
	"a": A, "asharp": ASharp, "a#": ASharp, "bflat": BFlat, "bb": BFlat, "b": B,
}

func ParseNote(name string) (Note, error) {
	n, ok := noteNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("not a valid note: %q", name)
	}
	return n, nil
}

// Semitone returns the pitch class of n, 0 for C through 11 for B.
func (n Note) Semitone() int { return noteSemitones[n] }

// Scale is an ordered set of MIDI-style pitches a raw 3-bit pitch field is
// folded onto.
type Scale struct {
	Name    string
	Pitches []uint8
}

// Mapper returns a melody.Mapper choosing Pitches[pitch % len(Pitches)].
func (s Scale) Mapper() melody.Mapper {
	pitches := append([]uint8(nil), s.Pitches...)
	if len(pitches) == 0 {
		return melody.NewTone
	}
	return func(pitch, duration, volume uint8) melody.Tone {
		p := pitches[int(pitch)%len(pitches)]
		return melody.NewTone(p, duration, volume)
	}
}

// CMajor is C D E F G A around middle C.
var CMajor = Scale{Name: "c-major", Pitches: []uint8{60, 62, 64, 65, 67, 69}}

const baseOctavePitch = 60

var (
	majorSteps           = []int{0, 2, 4, 5, 7, 9, 11}
	minorPentatonicSteps = []int{0, 3, 5, 7, 10}
	chromaticSteps       = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
)

func fromSteps(name string, root Note, steps []int) Scale {
	pitches := make([]uint8, len(steps))
	for i, s := range steps {
		pitches[i] = uint8(baseOctavePitch + root.Semitone() + s)
	}
	return Scale{Name: name, Pitches: pitches}
}

func Major(root Note) Scale {
	return fromSteps(root.String()+"-major", root, majorSteps)
}

func MinorPentatonic(root Note) Scale {
	return fromSteps(root.String()+"-minor-pentatonic", root, minorPentatonicSteps)
}

func Chromatic(root Note) Scale {
	return fromSteps(root.String()+"-chromatic", root, chromaticSteps)
}

var canonicalNames = [...]string{
	"c", "csharp", "dflat", "d", "dsharp", "eflat", "e", "f",
	"fsharp", "gflat", "g", "gsharp", "aflat", "a", "asharp", "bflat", "b",
}

func (n Note) String() string {
	if n < C || n > B {
		return "unknown"
	}
	return canonicalNames[n]
}

var builders = map[string]func(Note) Scale{
	"major":            Major,
	"minor-pentatonic": MinorPentatonic,
	"chromatic":        Chromatic,
}

// Lookup resolves names such as "c-major", "a-minor-pentatonic" or
// "fsharp-chromatic". "c-major" is always the six-note CMajor scale.
func Lookup(name string) (Scale, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == CMajor.Name {
		return CMajor, nil
	}
	root, kind, ok := strings.Cut(name, "-")
	if !ok {
		return Scale{}, fmt.Errorf("unknown scale %q", name)
	}
	build, ok := builders[kind]
	if !ok {
		return Scale{}, fmt.Errorf("unknown scale %q", name)
	}
	n, err := ParseNote(root)
	if err != nil {
		return Scale{}, fmt.Errorf("unknown scale %q: %w", name, err)
	}
	return build(n), nil
}

// Names lists the scales offered by default.
func Names() []string {
	names := []string{CMajor.Name, "a-minor-pentatonic", "c-chromatic", "g-major"}
	sort.Strings(names)
	return names
}
