package melody

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cbegin/musicbytes-go/internal/bitstream"
)

const (
	// MinSourceSize is the smallest accepted source, in bytes.
	MinSourceSize = 15
	// BitsPerNote is the stride of one note record in the bitstream.
	BitsPerNote = 18

	tempoBits    = 8
	pitchBits    = 3
	durationBits = 4
	volumeBits   = 8
)

var (
	ErrFileTooSmall   = fmt.Errorf("file too small: must be at least %d bytes", MinSourceSize)
	ErrIO             = errors.New("i/o error")
	ErrInvalidMapping = errors.New("invalid mapping")
)

// Decode reads src as a bitstream: one tempo byte followed by note records
// on an 18-bit stride. Each record's raw fields are passed to m.
//
// The stride counter never consumes the final bit of the stream, and only
// the 15 payload bits of each record move the read cursor. Files encoded by
// earlier versions depend on both.
func Decode(src []byte, m Mapper) (*Melody, error) {
	if len(src) < MinSourceSize {
		return nil, ErrFileTooSmall
	}
	if m == nil {
		return nil, fmt.Errorf("%w: nil mapper", ErrInvalidMapping)
	}
	r := bitstream.NewReader(src)
	total := r.Len()

	raw, err := r.ReadBits(tempoBits)
	if err != nil {
		return nil, fmt.Errorf("%w: read tempo: %w", ErrIO, err)
	}
	mel := &Melody{
		BPM:   Tempo(uint8(raw)),
		Units: make([]Tone, 0, MaxUnits(len(src))),
	}

	var counter uint64 = tempoBits
	for counter+BitsPerNote <= total-1 {
		pitch, duration, volume, err := readRecord(r)
		if err != nil {
			return nil, fmt.Errorf("%w: note %d at bit %d: %w", ErrIO, len(mel.Units), r.Offset(), err)
		}
		if err := CheckRaw(pitch, duration, volume); err != nil {
			return nil, err
		}
		mel.Units = append(mel.Units, m(pitch, duration, volume))
		counter += BitsPerNote
	}
	return mel, nil
}

func readRecord(r *bitstream.Reader) (pitch, duration, volume uint8, err error) {
	p, err := r.ReadBits(pitchBits)
	if err != nil {
		return 0, 0, 0, err
	}
	d, err := r.ReadBits(durationBits)
	if err != nil {
		return 0, 0, 0, err
	}
	v, err := r.ReadBits(volumeBits)
	if err != nil {
		return 0, 0, 0, err
	}
	return uint8(p), uint8(d), uint8(v), nil
}

// CheckRaw reports ErrInvalidMapping when a raw field exceeds its bit width.
func CheckRaw(pitch, duration, volume uint8) error {
	if pitch >= 1<<pitchBits {
		return fmt.Errorf("%w: pitch %d out of range", ErrInvalidMapping, pitch)
	}
	if duration >= 1<<durationBits {
		return fmt.Errorf("%w: duration %d out of range", ErrInvalidMapping, duration)
	}
	return nil
}

// DecodeReader reads all of r and decodes it.
func DecodeReader(r io.Reader, m Mapper) (*Melody, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return Decode(src, m)
}

// DecodeFile decodes the file at path. The size check happens before the
// contents are read.
func DecodeFile(path string, m Mapper) (*Melody, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if info.Size() < MinSourceSize {
		return nil, ErrFileTooSmall
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return Decode(src, m)
}

// MaxUnits returns how many note records a source of size bytes yields.
func MaxUnits(size int) int {
	if size < MinSourceSize {
		return 0
	}
	usable := uint64(size)*8 - 1 - tempoBits
	return int(usable / BitsPerNote)
}
