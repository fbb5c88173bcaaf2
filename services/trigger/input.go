package trigger

import (
	"context"
	"time"

	"camtrigger-go/types"
	"camtrigger-go/x/strconvx"
)

// waitMode makes the "wait forever vs. wait N ms vs. poll once"
// distinction explicit on the single key-input primitive.
type waitMode uint8

const (
	waitForever waitMode = iota
	waitBounded
	pollOnce
)

// nextKey returns the next decoded key press from the keypad service.
// waitForever blocks until a key or cancellation; waitBounded gives up
// after d; pollOnce never blocks. A bounded wait with d <= 0 degrades
// to a poll.
func (s *service) nextKey(ctx context.Context, mode waitMode, d time.Duration) (rune, bool) {
	// Drain anything already queued first so a pending press is never
	// lost to a timer race.
	select {
	case msg, open := <-s.keys.Channel():
		if !open {
			return 0, false
		}
		if ev, ok := msg.Payload.(types.KeyEvent); ok {
			return ev.Key, true
		}
	default:
	}

	if mode == pollOnce || (mode == waitBounded && d <= 0) {
		return 0, false
	}

	var timeout <-chan time.Time
	var timer *time.Timer
	if mode == waitBounded {
		timer = time.NewTimer(d)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return 0, false
		case <-timeout:
			return 0, false
		case msg, open := <-s.keys.Channel():
			if !open {
				return 0, false
			}
			if ev, ok := msg.Payload.(types.KeyEvent); ok {
				return ev.Key, true
			}
		}
	}
}

// readPositiveInt collects a numeric value one key at a time, with
// backspace editing. A submit that does not parse to an accepted
// strictly-positive integer clears the buffer and re-shows the prompt;
// it never advances with a bad value. Returns ok=false only on
// cancellation.
func (s *service) readPositiveInt(ctx context.Context, prompt string, accept func(int) bool) (int, bool) {
	buf := ""
	s.show(rowPrompt, prompt)
	s.show(rowEntry, "> ")
	for {
		k, ok := s.nextKey(ctx, waitForever, 0)
		if !ok {
			return 0, false
		}
		s.wake()
		switch {
		case k >= '0' && k <= '9':
			if len(buf) < maxEntryDigits {
				buf += string(k)
			}
			s.show(rowEntry, "> "+buf)
		case k == types.KeyBackspace:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
			s.show(rowEntry, "> "+buf)
		case k == types.KeyEnter:
			v, err := strconvx.Atoi(buf)
			if err == nil && v > 0 && accept(v) {
				return v, true
			}
			buf = ""
			s.show(rowPrompt, prompt)
			s.show(rowEntry, "> ")
		}
	}
}
