package audio

import (
	"context"
	"sync"
	"testing"
	"time"

	"camtrigger-go/bus"
	"camtrigger-go/types"
)

type recordingBeeper struct {
	mu    sync.Mutex
	plays []types.ToneBurst
}

func (r *recordingBeeper) Play(freqHz uint32, durationMs uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plays = append(r.plays, types.ToneBurst{FreqHz: freqHz, DurationMs: durationMs})
}

func (r *recordingBeeper) snapshot() []types.ToneBurst {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.ToneBurst, len(r.plays))
	copy(out, r.plays)
	return out
}

func waitPlays(t *testing.T, r *recordingBeeper, n int) []types.ToneBurst {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := r.snapshot(); len(got) >= n {
			return got
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("beeper never reached %d plays", n)
	return nil
}

func TestToneBurst(t *testing.T) {
	b := bus.NewBus(16)
	bp := &recordingBeeper{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Run(ctx, b.NewConnection("audio"), bp)

	conn := b.NewConnection("test")
	// Retained keeps the burst for the service even if it has not
	// finished subscribing yet.
	conn.Publish(conn.NewMessage(bus.T("audio", "tone"),
		types.ToneBurst{FreqHz: 1047, DurationMs: 60}, true))

	got := waitPlays(t, bp, 1)
	if got[0].FreqHz != 1047 || got[0].DurationMs != 60 {
		t.Fatalf("play = %+v", got[0])
	}
}

func TestTonePatternRepeats(t *testing.T) {
	b := bus.NewBus(16)
	bp := &recordingBeeper{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Run(ctx, b.NewConnection("audio"), bp)

	conn := b.NewConnection("test")
	conn.Publish(conn.NewMessage(bus.T("audio", "pattern"), types.TonePattern{
		Repeats: 3,
		Tones: []types.ToneBurst{
			{FreqHz: 1319, DurationMs: 120},
			{FreqHz: 1175, DurationMs: 160},
		},
	}, true))

	got := waitPlays(t, bp, 6)
	if len(got) != 6 {
		t.Fatalf("plays = %d, want 6", len(got))
	}
	for i, p := range got {
		wantFreq := uint32(1319)
		if i%2 == 1 {
			wantFreq = 1175
		}
		if p.FreqHz != wantFreq {
			t.Fatalf("play %d freq = %d, want %d", i, p.FreqHz, wantFreq)
		}
	}
}
