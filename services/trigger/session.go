package trigger

import (
	"camtrigger-go/errcode"
)

// Session is the single mutable context for one intervalometer run.
// It is owned by the service loop; the scheduler mutates it once per
// elapsed second and once per completed photo, never concurrently.
type Session struct {
	IntervalS   int // seconds between shots, user-entered, > 0
	DurationMin int // total run length in minutes, user-entered, > 0
	MaxPhotos   int // floor(DurationMin*60 / IntervalS), fixed at start
	PhotoCount  int // 0..MaxPhotos
	CountdownS  int // IntervalS..0, re-armed after each shot
}

// NewSession validates the user-entered settings and derives the fixed
// fields. A fractional tail of the duration is never photographed: the
// photo budget is the floor of duration/interval, and an interval at
// least as long as the whole duration is rejected outright so a run
// always has a reachable completion.
func NewSession(intervalS, durationMin int) (*Session, error) {
	if intervalS <= 0 || durationMin <= 0 {
		return nil, errcode.InvalidInput
	}
	maxPhotos := durationMin * 60 / intervalS
	if maxPhotos < 1 {
		return nil, errcode.IntervalTooLong
	}
	return &Session{
		IntervalS:   intervalS,
		DurationMin: durationMin,
		MaxPhotos:   maxPhotos,
		CountdownS:  intervalS,
	}, nil
}

// IntervalMS and DurationMS are the derived millisecond views.
func (s *Session) IntervalMS() int64 { return int64(s.IntervalS) * 1000 }
func (s *Session) DurationMS() int64 { return int64(s.DurationMin) * 60_000 }

// Done reports the terminal condition: the photo budget is spent.
func (s *Session) Done() bool { return s.PhotoCount >= s.MaxPhotos }
