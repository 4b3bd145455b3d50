package synth

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/cbegin/musicbytes-go/internal/melody"
)

func testMelody(bpm uint8, n int) *melody.Melody {
	m := &melody.Melody{BPM: bpm}
	for i := 0; i < n; i++ {
		m.Units = append(m.Units, melody.NewTone(uint8(60+i%12), uint8(i%16), uint8(40+i*7)))
	}
	return m
}

func TestSampleCountFormula(t *testing.T) {
	cases := []struct {
		bpm  uint8
		d    melody.Duration
		want int
	}{
		{120, melody.Quarter, 22050},
		{120, melody.Double, 176400},
		{120, melody.HundredTwentyEighth, 689},
		{135, melody.Eighth, 9800},
		{239, melody.Whole, 44285},
	}
	for _, tc := range cases {
		if got := SampleCount(tc.bpm, tc.d); got != tc.want {
			t.Fatalf("SampleCount(%d, %v) = %d, want %d", tc.bpm, tc.d, got, tc.want)
		}
	}
	if SampleCount(0, melody.Quarter) != 0 {
		t.Fatal("zero bpm should produce no samples")
	}
}

func TestRenderToneShape(t *testing.T) {
	tone := melody.Tone{Pitch: 69, Duration: melody.Quarter, Volume: 0.5, Frequency: 400}
	samples := RenderTone(120, tone)
	if len(samples) != 22050 {
		t.Fatalf("len = %d, want 22050", len(samples))
	}
	if samples[0] != 0 {
		t.Fatalf("first sample = %d, want 0", samples[0])
	}
	amp := 32767 * 0.5
	for _, i := range []int{1, 100, 777, 22049} {
		want := int16(math.Round(math.Sin(float64(i)/22050*400*2*math.Pi) * amp))
		if samples[i] != want {
			t.Fatalf("sample %d = %d, want %d", i, samples[i], want)
		}
	}
	var peak int16
	for _, s := range samples {
		if s > peak {
			peak = s
		}
	}
	if peak < 16000 || peak > 16384 {
		t.Fatalf("peak = %d, want near half scale", peak)
	}
}

func TestRenderToneSilent(t *testing.T) {
	samples := RenderTone(150, melody.NewTone(72, 4, 0))
	for i, s := range samples {
		if s != 0 {
			t.Fatalf("sample %d = %d, want silence", i, s)
		}
	}
}

func TestRenderConcatenatesInOrder(t *testing.T) {
	m := testMelody(133, 9)
	got, err := Render(context.Background(), m)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var want []int16
	for _, tone := range m.Units {
		want = append(want, RenderTone(m.BPM, tone)...)
	}
	if !slices.Equal(got, want) {
		t.Fatalf("concatenated render differs from per-tone render (len %d vs %d)", len(got), len(want))
	}
	total := 0
	for _, n := range Spans(m) {
		total += n
	}
	if total != len(got) {
		t.Fatalf("spans sum = %d, want %d", total, len(got))
	}
}

func TestRenderParallelMatchesSerial(t *testing.T) {
	m := testMelody(201, 40)
	serial, err := Render(context.Background(), m)
	if err != nil {
		t.Fatalf("serial: %v", err)
	}
	parallel, err := Render(context.Background(), m, WithWorkers(8))
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	if !slices.Equal(serial, parallel) {
		t.Fatal("parallel render must keep melody order")
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, opts := range [][]Option{nil, {WithWorkers(4)}} {
		if _, err := Render(ctx, testMelody(120, 5), opts...); !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, want context.Canceled", err)
		}
	}
}

func TestRenderEmptyMelody(t *testing.T) {
	out, err := Render(context.Background(), &melody.Melody{BPM: 120})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("len = %d, want 0", len(out))
	}
}

func TestLimitedFrequencies(t *testing.T) {
	long := testMelody(120, 250)
	if got := len(LimitedFrequencies(long, DefaultFrequencyLimit)); got != 100 {
		t.Fatalf("len = %d, want 100", got)
	}
	short := &melody.Melody{BPM: 120, Units: []melody.Tone{
		melody.NewTone(69, 0, 0), melody.NewTone(81, 0, 0), melody.NewTone(70, 0, 0),
	}}
	got := LimitedFrequencies(short, DefaultFrequencyLimit)
	want := []int{400, 800, 423}
	if !slices.Equal(got, want) {
		t.Fatalf("frequencies = %v, want %v", got, want)
	}
	if len(LimitedFrequencies(short, -3)) != 0 {
		t.Fatal("negative limit should yield nothing")
	}
	if len(Frequencies(long)) != 250 {
		t.Fatal("Frequencies should not truncate")
	}
}
