// Package musicbytes turns arbitrary binary data into music: the bytes are
// decoded as a bitstream of note records and rendered to PCM audio, MIDI, or
// frequency tables.
package musicbytes

import (
	"io"

	intmel "github.com/cbegin/musicbytes-go/internal/melody"
	intscale "github.com/cbegin/musicbytes-go/internal/scale"
)

type (
	Tone     = intmel.Tone
	Melody   = intmel.Melody
	Duration = intmel.Duration
	// Mapper converts the raw pitch (0..7), duration (0..15) and volume
	// (0..255) fields of a record into a Tone.
	Mapper = intmel.Mapper
)

const (
	Double              = intmel.Double
	Whole               = intmel.Whole
	Half                = intmel.Half
	Quarter             = intmel.Quarter
	Eighth              = intmel.Eighth
	Sixteenth           = intmel.Sixteenth
	ThirtySecond        = intmel.ThirtySecond
	SixtyFourth         = intmel.SixtyFourth
	HundredTwentyEighth = intmel.HundredTwentyEighth

	MinSourceSize = intmel.MinSourceSize
)

var (
	ErrFileTooSmall   = intmel.ErrFileTooSmall
	ErrIO             = intmel.ErrIO
	ErrInvalidMapping = intmel.ErrInvalidMapping
)

// NewTone is a helper for Mapper implementations.
func NewTone(pitch, duration, volume uint8) Tone {
	return intmel.NewTone(pitch, duration, volume)
}

var cMajor = intscale.CMajor.Mapper()

// CMajor maps the pitch field onto C D E F G A.
func CMajor(pitch, duration, volume uint8) Tone {
	return cMajor(pitch, duration, volume)
}

// ScaleMapper resolves a scale name such as "c-major" or
// "a-minor-pentatonic" to a Mapper.
func ScaleMapper(name string) (Mapper, error) {
	s, err := intscale.Lookup(name)
	if err != nil {
		return nil, err
	}
	return s.Mapper(), nil
}

func ScaleNames() []string { return intscale.Names() }

func Decode(data []byte, m Mapper) (*Melody, error) {
	return intmel.Decode(data, m)
}

func DecodeReader(r io.Reader, m Mapper) (*Melody, error) {
	return intmel.DecodeReader(r, m)
}

func DecodeFile(path string, m Mapper) (*Melody, error) {
	return intmel.DecodeFile(path, m)
}
