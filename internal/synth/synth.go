package synth

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/cbegin/musicbytes-go/internal/melody"
)

const (
	SampleRate = 44100
	Channels   = 1
	BitDepth   = 16

	// DefaultFrequencyLimit is the array size of the embedded export.
	DefaultFrequencyLimit = 100
)

type Option func(*config)

type config struct {
	workers int
}

// WithWorkers renders up to n tones concurrently. n <= 1 renders serially.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		cfg.workers = n
	}
}

// SampleCount returns the number of samples a tone of duration d lasts at bpm.
func SampleCount(bpm uint8, d melody.Duration) int {
	if bpm == 0 {
		return 0
	}
	secondsPerBeat := 60 / float64(bpm)
	return int(math.Round(secondsPerBeat * d.Beats() * SampleRate))
}

// RenderTone generates one tone. The phase is measured against the tone's
// own length and restarts at zero for every tone.
func RenderTone(bpm uint8, t melody.Tone) []int16 {
	n := SampleCount(bpm, t.Duration)
	out := make([]int16, n)
	renderInto(out, t)
	return out
}

func renderInto(dst []int16, t melody.Tone) {
	n := len(dst)
	amplitude := math.MaxInt16 * t.Volume
	for i := range dst {
		phase := float64(i) / float64(n)
		dst[i] = int16(math.Round(math.Sin(phase*t.Frequency*2*math.Pi) * amplitude))
	}
}

// Spans returns the sample count of every tone in m, in order.
func Spans(m *melody.Melody) []int {
	spans := make([]int, len(m.Units))
	for i, t := range m.Units {
		spans[i] = SampleCount(m.BPM, t.Duration)
	}
	return spans
}

// Render concatenates the samples of every tone in melody order.
func Render(ctx context.Context, m *melody.Melody, opts ...Option) ([]int16, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	spans := Spans(m)
	offsets := make([]int, len(spans)+1)
	for i, n := range spans {
		offsets[i+1] = offsets[i] + n
	}
	out := make([]int16, offsets[len(spans)])

	if cfg.workers <= 1 {
		for i, t := range m.Units {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			renderInto(out[offsets[i]:offsets[i+1]], t)
		}
		return out, nil
	}

	// Each tone owns a disjoint slice of out, so order is fixed by offsets
	// rather than by completion.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for i, t := range m.Units {
		dst := out[offsets[i]:offsets[i+1]]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			renderInto(dst, t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Frequencies returns each tone's frequency truncated to whole Hz.
func Frequencies(m *melody.Melody) []int {
	return LimitedFrequencies(m, len(m.Units))
}

// LimitedFrequencies returns at most limit frequencies from the start of m.
func LimitedFrequencies(m *melody.Melody, limit int) []int {
	n := min(len(m.Units), max(limit, 0))
	out := make([]int, n)
	for i := range out {
		out[i] = int(m.Units[i].Frequency)
	}
	return out
}
