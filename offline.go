package musicbytes

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	intexport "github.com/cbegin/musicbytes-go/internal/export"
	intmel "github.com/cbegin/musicbytes-go/internal/melody"
	intsynth "github.com/cbegin/musicbytes-go/internal/synth"
)

const (
	SampleRate = intsynth.SampleRate
	// FrequencyLimit caps the embedded frequency table.
	FrequencyLimit = intsynth.DefaultFrequencyLimit
)

const wavFormatPCM = 1

type RenderOption = intsynth.Option

// WithWorkers renders tones concurrently; output order is unchanged.
func WithWorkers(n int) RenderOption { return intsynth.WithWorkers(n) }

func RenderSamples(ctx context.Context, m *Melody, opts ...RenderOption) ([]int16, error) {
	return intsynth.Render(ctx, m, opts...)
}

// SampleCount is the number of samples one tone of duration d lasts at bpm.
func SampleCount(bpm uint8, d Duration) int {
	return intsynth.SampleCount(bpm, d)
}

// WriteWAV writes samples as a mono 16-bit PCM WAV at SampleRate.
func WriteWAV(w io.WriteSeeker, samples []int16) error {
	enc := wav.NewEncoder(w, intsynth.SampleRate, intsynth.BitDepth, intsynth.Channels, wavFormatPCM)
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: intsynth.Channels, SampleRate: intsynth.SampleRate},
		Data:           data,
		SourceBitDepth: intsynth.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("%w: write wav: %w", intmel.ErrIO, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: finish wav: %w", intmel.ErrIO, err)
	}
	return nil
}

// WriteWAVFile renders m and writes it to path. A failed write leaves
// whatever was written in place.
func WriteWAVFile(ctx context.Context, path string, m *Melody, opts ...RenderOption) error {
	samples, err := RenderSamples(ctx, m, opts...)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", intmel.ErrIO, err)
	}
	if err := WriteWAV(f, samples); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", intmel.ErrIO, err)
	}
	return nil
}

// Frequencies returns every tone's frequency in whole Hz.
func Frequencies(m *Melody) []int { return intsynth.Frequencies(m) }

// LimitedFrequencies returns at most limit frequencies.
func LimitedFrequencies(m *Melody, limit int) []int {
	return intsynth.LimitedFrequencies(m, limit)
}

// ArduinoSource renders up to FrequencyLimit frequencies as a C array
// declaration plus count.
func ArduinoSource(m *Melody) string { return intexport.Arduino(m) }

// JSONFrequencies renders all frequencies as a newline-terminated JSON array.
func JSONFrequencies(m *Melody) string { return intexport.JSON(m) }

func WriteMIDI(w io.Writer, m *Melody) error { return intexport.WriteMIDI(w, m) }
