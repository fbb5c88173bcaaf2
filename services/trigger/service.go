// services/trigger/service.go
package trigger

import (
	"context"
	"time"

	"camtrigger-go/bus"
	"camtrigger-go/types"
	"camtrigger-go/x/strconvx"
	"camtrigger-go/x/timex"
)

// -----------------------------------------------------------------------------
// Topics and fixed keys
// -----------------------------------------------------------------------------

var (
	topicKeyEvent     = bus.T("key", "event")
	topicBattery      = bus.T("power", "battery", "value")
	topicConfig       = bus.T("config", "trigger")
	topicState        = bus.T("trigger", "state")
	topicDisplayLine  = bus.T("display", "line")
	topicDisplayClear = bus.T("display", "clear")
	topicScreenWake   = bus.T("screen", "wake")
	topicTone         = bus.T("audio", "tone")
	topicPattern      = bus.T("audio", "pattern")
)

const (
	keyIntervalometer = '1'
	keyManual         = '2'
	defaultAbortKey   = 'D'

	rowPrompt = 0
	rowEntry  = 1
	rowStatus = 2

	maxEntryDigits = 4

	abortPause = 800 * time.Millisecond
)

// Capture feedback beep and the completion jingle (played three times).
var (
	captureTone     = types.ToneBurst{FreqHz: 1047, DurationMs: 60}
	completionTones = []types.ToneBurst{
		{FreqHz: 1319, DurationMs: 120},
		{FreqHz: 1175, DurationMs: 160},
	}
)

// mode is the session state machine's current state.
type mode uint8

const (
	modeAwaitingInput mode = iota
	modeIntervalometer
	modeManual
)

func (m mode) String() string {
	switch m {
	case modeIntervalometer:
		return types.ModeIntervalometer
	case modeManual:
		return types.ModeManual
	}
	return types.ModeAwaitingInput
}

// -----------------------------------------------------------------------------
// Service
// -----------------------------------------------------------------------------

type service struct {
	conn    *bus.Connection
	shutter Shutter

	keys    *bus.Subscription
	battSub *bus.Subscription
	cfgSub  *bus.Subscription

	mode     mode
	sess     *Session
	abortKey rune
	battery  types.BatteryValue

	// Injection points so the state machine is testable at speed.
	tick  time.Duration // scheduler boundary, nominally one second
	now   func() time.Time
	sleep func(time.Duration)
}

func newService(conn *bus.Connection, sh Shutter) *service {
	return &service{
		conn:     conn,
		shutter:  sh,
		abortKey: defaultAbortKey,
		tick:     time.Second,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Run drives the session state machine until ctx is cancelled.
func Run(ctx context.Context, conn *bus.Connection, sh Shutter) {
	newService(conn, sh).run(ctx)
}

func (s *service) run(ctx context.Context) {
	s.keys = s.conn.Subscribe(topicKeyEvent)
	s.battSub = s.conn.Subscribe(topicBattery)
	s.cfgSub = s.conn.Subscribe(topicConfig)
	defer s.conn.Unsubscribe(s.keys)
	defer s.conn.Unsubscribe(s.battSub)
	defer s.conn.Unsubscribe(s.cfgSub)

	s.publishState()
	for ctx.Err() == nil {
		s.drainConfig()
		switch s.mode {
		case modeAwaitingInput:
			s.runMenu(ctx)
		case modeIntervalometer:
			s.runIntervalometer(ctx)
		case modeManual:
			s.runManual(ctx)
		}
	}
}

// -----------------------------------------------------------------------------
// AwaitingInput: menu + settings collection
// -----------------------------------------------------------------------------

func (s *service) runMenu(ctx context.Context) {
	s.clear()
	s.show(rowPrompt, "1:TIMER  2:MANUAL")
	k, ok := s.nextKey(ctx, waitForever, 0)
	if !ok {
		return
	}
	s.wake()
	switch k {
	case keyIntervalometer:
		if s.collectSettings(ctx) {
			s.mode = modeIntervalometer
			s.publishState()
		}
	case keyManual:
		s.mode = modeManual
		s.publishState()
	}
}

// collectSettings gathers interval seconds then duration minutes. The
// duration prompt re-prompts until the pair yields at least one photo,
// so a running session always has a reachable completion.
func (s *service) collectSettings(ctx context.Context) bool {
	s.clear()
	interval, ok := s.readPositiveInt(ctx, "INTERVAL SEC?", func(int) bool { return true })
	if !ok {
		return false
	}
	var sess *Session
	_, ok = s.readPositiveInt(ctx, "DURATION MIN?", func(m int) bool {
		candidate, err := NewSession(interval, m)
		if err != nil {
			return false
		}
		sess = candidate
		return true
	})
	if !ok {
		return false
	}
	s.sess = sess
	return true
}

// -----------------------------------------------------------------------------
// IntervalometerRunning
// -----------------------------------------------------------------------------

func (s *service) runIntervalometer(ctx context.Context) {
	sched := newScheduler(s.sess, s.now(), s.tick)
	s.clear()
	s.showStatus()
	for {
		// Poll for keys only until the next boundary; an in-flight
		// blast is never interrupted, so abort latency is at worst one
		// tick plus one blast.
		k, got := s.nextKey(ctx, waitBounded, sched.Due(s.now()))
		if ctx.Err() != nil {
			return
		}
		if got {
			if k == s.abortKey {
				s.show(rowStatus, "ABORTED")
				s.sleep(abortPause)
				s.reset()
				return
			}
			// Any other key only wakes the screen.
			s.wake()
			continue
		}

		fired, done := sched.Tick(s.now())
		if fired {
			s.shutter.Snap()
		}
		s.refreshBattery()
		s.publishState()
		s.showStatus()
		if done {
			s.show(rowStatus, "COMPLETE")
			s.playCompletion()
			s.nextKey(ctx, waitForever, 0) // one key acknowledges
			s.reset()
			return
		}
	}
}

func (s *service) showStatus() {
	line := strconvx.Itoa(s.sess.PhotoCount) + "/" + strconvx.Itoa(s.sess.MaxPhotos) +
		"  T-" + strconvx.Itoa(s.sess.CountdownS)
	if s.battery.Low {
		line += "  LOW BATT"
	}
	s.show(rowStatus, line)
}

// -----------------------------------------------------------------------------
// ManualControl
// -----------------------------------------------------------------------------

func (s *service) runManual(ctx context.Context) {
	s.clear()
	s.show(rowPrompt, "MANUAL: ANY KEY")
	for {
		k, ok := s.nextKey(ctx, waitForever, 0)
		if !ok {
			return
		}
		s.wake()
		if k == s.abortKey {
			s.reset()
			return
		}
		s.shutter.Snap()
		s.beep(captureTone)
		s.show(rowPrompt, "MANUAL: ANY KEY")
	}
}

// -----------------------------------------------------------------------------
// Side effects and housekeeping
// -----------------------------------------------------------------------------

func (s *service) reset() {
	s.sess = nil
	s.mode = modeAwaitingInput
	s.publishState()
}

func (s *service) publishState() {
	st := types.TriggerState{Mode: s.mode.String(), TS: timex.NowMs()}
	if s.sess != nil {
		st.IntervalS = s.sess.IntervalS
		st.DurationMin = s.sess.DurationMin
		st.PhotoCount = s.sess.PhotoCount
		st.MaxPhotos = s.sess.MaxPhotos
		st.CountdownS = s.sess.CountdownS
	}
	s.conn.Publish(s.conn.NewMessage(topicState, st, true))
}

func (s *service) show(row int, text string) {
	s.conn.Publish(s.conn.NewMessage(topicDisplayLine, types.DisplayLine{Row: row, Text: text}, false))
}

func (s *service) clear() {
	s.conn.Publish(s.conn.NewMessage(topicDisplayClear, types.DisplayClear{}, false))
}

func (s *service) wake() {
	s.conn.Publish(s.conn.NewMessage(topicScreenWake, types.ScreenWake{}, false))
}

func (s *service) beep(t types.ToneBurst) {
	s.conn.Publish(s.conn.NewMessage(topicTone, t, false))
}

func (s *service) playCompletion() {
	s.conn.Publish(s.conn.NewMessage(topicPattern, types.TonePattern{
		Repeats: 3,
		Tones:   completionTones,
	}, false))
}

// refreshBattery keeps only the newest retained battery reading; it is
// read once per tick to pick the low-battery indication.
func (s *service) refreshBattery() {
	for {
		select {
		case msg, open := <-s.battSub.Channel():
			if !open {
				return
			}
			if bv, ok := msg.Payload.(types.BatteryValue); ok {
				s.battery = bv
			}
		default:
			return
		}
	}
}

// drainConfig applies any pending config/trigger updates.
func (s *service) drainConfig() {
	for {
		select {
		case msg, open := <-s.cfgSub.Channel():
			if !open {
				return
			}
			if m, ok := msg.Payload.(map[string]any); ok {
				if ak, ok := m["abort_key"].(string); ok && ak != "" {
					s.abortKey = rune(ak[0])
				}
			}
		default:
			return
		}
	}
}
