package audio

import (
	"math"
	"sort"
	"sync/atomic"
)

// PCMSource plays a rendered mono int16 buffer as stereo float32 frames.
// Callbacks run on the audio thread.
type PCMSource struct {
	samples []int16
	starts  []int // first sample of each tone
	loop    bool

	pos      int
	tone     int
	gainBits atomic.Uint64
	finished atomic.Bool

	OnTone func(index int)
	OnLoop func()
	OnEnd  func()
}

// NewPCMSource wraps samples. spans holds the per-tone sample counts in
// order and is used to report tone changes.
func NewPCMSource(samples []int16, spans []int, loop bool) *PCMSource {
	starts := make([]int, len(spans))
	off := 0
	for i, n := range spans {
		starts[i] = off
		off += n
	}
	s := &PCMSource{samples: samples, starts: starts, loop: loop, tone: -1}
	s.SetGain(1)
	return s
}

// SetGain scales the output. It is safe to call while playing.
func (s *PCMSource) SetGain(gain float64) {
	s.gainBits.Store(math.Float64bits(gain))
}

func (s *PCMSource) Gain() float64 {
	return math.Float64frombits(s.gainBits.Load())
}

func (s *PCMSource) Finished() bool { return s.finished.Load() }

// Process implements SampleSource. The mono signal is copied to both
// channels; once the buffer is exhausted without looping the remainder is
// silence.
func (s *PCMSource) Process(dst []float32) {
	gain := s.Gain()
	for i := 0; i+1 < len(dst); i += 2 {
		if s.pos >= len(s.samples) {
			if !s.loop || len(s.samples) == 0 {
				s.end()
				dst[i], dst[i+1] = 0, 0
				continue
			}
			s.pos = 0
			s.tone = -1
			if s.OnLoop != nil {
				s.OnLoop()
			}
		}
		s.advanceTone()
		v := float32(float64(s.samples[s.pos]) * gain / math.MaxInt16)
		dst[i], dst[i+1] = v, v
		s.pos++
	}
}

func (s *PCMSource) advanceTone() {
	next := s.tone + 1
	for next < len(s.starts) && s.starts[next] <= s.pos {
		s.tone = next
		if s.OnTone != nil {
			s.OnTone(next)
		}
		next++
	}
}

func (s *PCMSource) end() {
	if s.finished.CompareAndSwap(false, true) && s.OnEnd != nil {
		s.OnEnd()
	}
}

// ToneAt returns the index of the tone containing sample offset pos, or -1.
func (s *PCMSource) ToneAt(pos int) int {
	if pos < 0 || pos >= len(s.samples) || len(s.starts) == 0 {
		return -1
	}
	return sort.SearchInts(s.starts, pos+1) - 1
}
