package musicbytes

import "testing"

func TestPlayerMasterVolumeRuntimeAPI(t *testing.T) {
	pl, err := NewPlayer()
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	if got := pl.MasterVolume(); got != 1 {
		t.Fatalf("default master volume = %v, want 1", got)
	}
	pl.SetMasterVolume(0.35)
	if got := pl.MasterVolume(); got != 0.35 {
		t.Fatalf("master volume = %v, want 0.35", got)
	}
	pl.SetMasterVolume(-2)
	if got := pl.MasterVolume(); got != 0 {
		t.Fatalf("master volume should clamp to 0, got %v", got)
	}
}

func TestPlayerIdleState(t *testing.T) {
	pl, err := NewPlayer(WithLoopPlayback(true))
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	if pos, tone := pl.PlaybackPosition(); pos != 0 || tone != -1 {
		t.Fatalf("idle position = (%d, %d), want (0, -1)", pos, tone)
	}
	if err := pl.Stop(); err != nil {
		t.Fatalf("stop while idle: %v", err)
	}
	pl.Wait()
}

func TestPlayerRejectsZeroWorkers(t *testing.T) {
	if _, err := NewPlayer(WithRenderWorkers(0)); err == nil {
		t.Fatal("expected error for zero render workers")
	}
}
