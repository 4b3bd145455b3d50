package musicbytes

import (
	"context"
	"errors"
	"sync"

	intaudio "github.com/cbegin/musicbytes-go/internal/audio"
	intsynth "github.com/cbegin/musicbytes-go/internal/synth"
)

// PlaybackEvent carries playback events from Watch().
type PlaybackEvent struct {
	Kind      int // EventToneStarted, EventLoopCompleted or EventPlaybackEnded
	ToneIndex int
}

const (
	EventToneStarted int = iota
	EventLoopCompleted
	EventPlaybackEnded
)

type PlayerOption func(*playerConfig)

type playerConfig struct {
	loopPlayback bool
	workers      int
	sampleTap    func([]float32)
}

func defaultPlayerConfig() playerConfig {
	return playerConfig{workers: 1}
}

func WithLoopPlayback(enabled bool) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.loopPlayback = enabled
	}
}

// WithRenderWorkers sets how many tones are synthesized concurrently before
// playback starts.
func WithRenderWorkers(n int) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.workers = n
	}
}

// WithSampleTap installs a callback invoked with each generated stereo buffer.
// The callback runs on the audio thread; keep work brief and non-blocking.
func WithSampleTap(tap func([]float32)) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.sampleTap = tap
	}
}

// Player plays a Melody through the system audio device.
type Player struct {
	mu           sync.Mutex
	audio        *intaudio.Player
	source       *intaudio.PCMSource
	volume       float64
	loopPlayback bool
	workers      int
	sampleTap    func([]float32)
	done         chan struct{}
	eventCh      chan PlaybackEvent
	eventChMu    sync.Mutex
}

type tappedSource struct {
	*intaudio.PCMSource
	tap func([]float32)
}

func (s tappedSource) Process(dst []float32) {
	s.PCMSource.Process(dst)
	s.tap(dst)
}

func NewPlayer(opts ...PlayerOption) (*Player, error) {
	cfg := defaultPlayerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers < 1 {
		return nil, errors.New("render workers must be positive")
	}
	return &Player{
		volume:       1,
		loopPlayback: cfg.loopPlayback,
		workers:      cfg.workers,
		sampleTap:    cfg.sampleTap,
	}, nil
}

// Play renders m and starts playing it, replacing any current playback.
func (p *Player) Play(ctx context.Context, m *Melody) error {
	samples, err := intsynth.Render(ctx, m, intsynth.WithWorkers(p.workers))
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	src := intaudio.NewPCMSource(samples, intsynth.Spans(m), p.loopPlayback)
	src.SetGain(p.volume)
	src.OnTone = func(i int) {
		p.sendEvent(PlaybackEvent{Kind: EventToneStarted, ToneIndex: i})
	}
	src.OnLoop = func() {
		p.sendEvent(PlaybackEvent{Kind: EventLoopCompleted, ToneIndex: -1})
	}
	src.OnEnd = func() {
		p.sendEvent(PlaybackEvent{Kind: EventPlaybackEnded, ToneIndex: -1})
		p.signalDone()
	}

	var source intaudio.SampleSource = src
	if p.sampleTap != nil {
		source = tappedSource{PCMSource: src, tap: p.sampleTap}
	}
	backend, err := intaudio.NewPlayer(intsynth.SampleRate, source)
	if err != nil {
		return err
	}
	if p.audio != nil {
		_ = p.audio.Stop()
	}
	// Signal any existing Wait() that the previous playback was replaced
	if p.done != nil {
		close(p.done)
	}
	p.done = make(chan struct{})
	p.audio = backend
	p.source = src
	p.audio.Play()
	return nil
}

func (p *Player) sendEvent(ev PlaybackEvent) {
	p.eventChMu.Lock()
	ch := p.eventCh
	p.eventChMu.Unlock()
	if ch != nil {
		select {
		case ch <- ev:
		default:
			// Channel full; drop event
		}
	}
}

func (p *Player) signalDone() {
	p.mu.Lock()
	done := p.done
	p.done = nil
	p.mu.Unlock()
	if done != nil {
		close(done)
	}
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Pause()
	}
}

func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Play()
	}
}

func (p *Player) Stop() error {
	p.mu.Lock()
	if p.audio == nil {
		p.mu.Unlock()
		return nil
	}
	err := p.audio.Stop()
	p.audio = nil
	p.source = nil
	done := p.done
	p.done = nil
	p.mu.Unlock()
	p.sendEvent(PlaybackEvent{Kind: EventPlaybackEnded, ToneIndex: -1})
	if done != nil {
		close(done)
	}
	return err
}

// Wait blocks until the current playback ends. With loop playback enabled it
// blocks until Stop is called.
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Watch returns a channel that receives playback events. The channel is
// buffered (cap 16) and events are dropped when it is full. Only the most
// recent Watch() channel receives events; call Watch before Play.
func (p *Player) Watch() <-chan PlaybackEvent {
	ch := make(chan PlaybackEvent, 16)
	p.eventChMu.Lock()
	p.eventCh = ch
	p.eventChMu.Unlock()
	return ch
}

// SetMasterVolume sets the runtime volume scalar. 1.0 is default.
func (p *Player) SetMasterVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = volume
	if p.source != nil {
		p.source.SetGain(volume)
	}
}

func (p *Player) MasterVolume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// PlaybackPosition returns the sample offset the listener hears now and the
// index of the tone at that offset, or (0, -1) when idle.
func (p *Player) PlaybackPosition() (int64, int) {
	p.mu.Lock()
	a, src := p.audio, p.source
	p.mu.Unlock()
	if a == nil {
		return 0, -1
	}
	pos := int64(a.Position().Seconds() * intsynth.SampleRate)
	return pos, src.ToneAt(int(pos))
}
