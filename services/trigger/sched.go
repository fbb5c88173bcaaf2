package trigger

import "time"

// scheduler advances a running session on one-second boundaries. The
// host loop runs much faster than 1Hz; the scheduler self-throttles by
// holding the next boundary timestamp and acting only once it is
// reached or passed. Skipped boundaries are not made up: after a stall
// it simply waits for the next one.
type scheduler struct {
	sess *Session
	tick time.Duration
	next time.Time
}

func newScheduler(sess *Session, now time.Time, tick time.Duration) *scheduler {
	if tick <= 0 {
		tick = time.Second
	}
	return &scheduler{sess: sess, tick: tick, next: now.Add(tick)}
}

// Due returns how long until the next boundary (<= 0 once reached).
func (sc *scheduler) Due(now time.Time) time.Duration {
	return sc.next.Sub(now)
}

// Tick advances the session if the boundary has been reached. fired
// reports that the shutter must be released now; done reports that
// this shot spent the photo budget. The caller owns the shutter: the
// scheduler only does the countdown/count bookkeeping.
func (sc *scheduler) Tick(now time.Time) (fired, done bool) {
	if sc.sess.Done() {
		return false, true
	}
	if now.Before(sc.next) {
		return false, false
	}
	sc.next = now.Add(sc.tick)

	sc.sess.CountdownS--
	if sc.sess.CountdownS > 0 {
		return false, false
	}
	// Shot boundary: re-arm immediately, then count the photo.
	sc.sess.CountdownS = sc.sess.IntervalS
	sc.sess.PhotoCount++
	return true, sc.sess.Done()
}
