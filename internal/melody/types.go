package melody

import "math"

const (
	BasePitch     = 69
	BaseFrequency = 400.0
)

type Duration int

const (
	Double Duration = iota
	Whole
	Half
	Quarter
	Eighth
	Sixteenth
	ThirtySecond
	SixtyFourth
	HundredTwentyEighth
)

var durationTable = [...]Duration{
	Double, Whole, Half, Quarter, Eighth, Sixteenth, ThirtySecond, SixtyFourth, HundredTwentyEighth,
}

var beatMultipliers = [...]float64{8, 4, 2, 1, 0.5, 0.25, 0.125, 0.0625, 0.03125}

var durationNames = [...]string{
	"double", "whole", "half", "quarter", "eighth", "sixteenth", "thirty-second", "sixty-fourth", "hundred-twenty-eighth",
}

// DurationFromRaw maps a raw duration nibble onto the nine categories, wrapping modulo 9.
func DurationFromRaw(raw uint8) Duration {
	return durationTable[int(raw)%len(durationTable)]
}

// Beats returns the length of the duration measured in quarter-note beats.
func (d Duration) Beats() float64 {
	if d < Double || d > HundredTwentyEighth {
		return 0
	}
	return beatMultipliers[d]
}

func (d Duration) String() string {
	if d < Double || d > HundredTwentyEighth {
		return "unknown"
	}
	return durationNames[d]
}

// Tone is one decoded note.
type Tone struct {
	Pitch     uint8
	Duration  Duration
	Volume    float64 // [0, 1)
	Frequency float64 // Hz
}

// Frequency returns the equal-tempered frequency of pitch, anchored at
// pitch 69 = 400 Hz.
func Frequency(pitch uint8) float64 {
	return BaseFrequency * math.Pow(2, (float64(pitch)-BasePitch)/12)
}

// NewTone builds a Tone from a scale pitch plus the raw duration and volume
// fields of a note record.
func NewTone(pitch, duration, volume uint8) Tone {
	return Tone{
		Pitch:     pitch,
		Duration:  DurationFromRaw(duration),
		Volume:    float64(volume) / 256,
		Frequency: Frequency(pitch),
	}
}

// Mapper turns the raw fields of one note record into a Tone. Pitch is 0..7,
// duration 0..15 and volume 0..255.
type Mapper func(pitch, duration, volume uint8) Tone

// Melody is the decoded note sequence. It is not modified after Decode
// returns it.
type Melody struct {
	BPM   uint8
	Units []Tone
}

// Tempo derives beats per minute from the raw tempo byte. The result is
// always in [120, 239].
func Tempo(raw uint8) uint8 {
	return raw%120 + 120
}
