package export

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/cbegin/musicbytes-go/internal/melody"
	"github.com/cbegin/musicbytes-go/internal/synth"
)

// TicksPerQuarter is the MIDI time resolution used by WriteMIDI.
const TicksPerQuarter = 960

// Arduino renders up to synth.DefaultFrequencyLimit frequencies as C source
// for a fixed-size firmware array.
func Arduino(m *melody.Melody) string {
	freqs := synth.LimitedFrequencies(m, synth.DefaultFrequencyLimit)
	var b strings.Builder
	fmt.Fprintf(&b, "int tone_count = %d;\n", len(freqs))
	fmt.Fprintf(&b, "int tones[%d] = {%s};\n", len(freqs), joinInts(freqs))
	return b.String()
}

// JSON renders every tone's frequency as a JSON array followed by a newline.
func JSON(m *melody.Melody) string {
	return "[" + joinInts(synth.Frequencies(m)) + "]\n"
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

// WriteMIDI writes m as a single-track Standard MIDI File. Silent tones and
// pitches outside the MIDI key range become rests.
func WriteMIDI(w io.Writer, m *melody.Melody) error {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("musicbytes"))
	tr.Add(0, smf.MetaTempo(float64(m.BPM)))

	var rest uint32
	for _, t := range m.Units {
		ticks := uint32(math.Round(t.Duration.Beats() * TicksPerQuarter))
		vel := uint8(math.Round(t.Volume * 127))
		if vel == 0 || ticks == 0 || t.Pitch > 127 {
			rest += ticks
			continue
		}
		tr.Add(rest, midi.NoteOn(0, t.Pitch, vel))
		tr.Add(ticks, midi.NoteOff(0, t.Pitch))
		rest = 0
	}
	tr.Close(rest)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)
	if err := s.Add(tr); err != nil {
		return fmt.Errorf("midi: add track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("%w: write midi: %w", melody.ErrIO, err)
	}
	return nil
}
