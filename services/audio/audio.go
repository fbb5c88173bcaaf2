// services/audio/audio.go
package audio

import (
	"context"

	"camtrigger-go/bus"
	"camtrigger-go/types"
)

var topicAll = bus.T("audio", "#")

// Beeper plays a single square-wave tone for its duration and then
// silences the output. Play blocks for the duration.
type Beeper interface {
	Play(freqHz uint32, durationMs uint16)
}

// Run plays audio/tone bursts and audio/pattern sequences on the
// beeper until ctx is cancelled. Playback is serialized; a pattern in
// flight delays later tones rather than mixing with them.
func Run(ctx context.Context, conn *bus.Connection, bp Beeper) {
	sub := conn.Subscribe(topicAll)
	defer conn.Unsubscribe(sub)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, open := <-sub.Channel():
			if !open {
				return
			}
			switch p := msg.Payload.(type) {
			case types.ToneBurst:
				bp.Play(p.FreqHz, p.DurationMs)
			case types.TonePattern:
				playPattern(ctx, bp, p)
			}
		}
	}
}

func playPattern(ctx context.Context, bp Beeper, p types.TonePattern) {
	reps := int(p.Repeats)
	if reps < 1 {
		reps = 1
	}
	for i := 0; i < reps; i++ {
		for _, tone := range p.Tones {
			if ctx.Err() != nil {
				return
			}
			bp.Play(tone.FreqHz, tone.DurationMs)
		}
	}
}
