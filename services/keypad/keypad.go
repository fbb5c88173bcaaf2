// services/keypad/keypad.go
package keypad

import (
	"context"
	"time"

	"camtrigger-go/bus"
	"camtrigger-go/types"
	"camtrigger-go/x/timex"
)

var (
	topicKeyEvent   = bus.T("key", "event")
	topicScreenWake = bus.T("screen", "wake")
	topicConfig     = bus.T("config", "keypad")
)

const (
	defaultScanMS   = 10
	defaultDebounce = 2
)

// RowPin is a matrix row strobe: idle high, driven low to select.
type RowPin interface {
	Set(level bool)
}

// ColPin is a matrix column sense line, pulled up; low while a key in
// the selected row is held.
type ColPin interface {
	Get() bool
}

type Config struct {
	Rows   []RowPin
	Cols   []ColPin
	Layout [][]rune // Layout[row][col], e.g. '5', 'D', KeyEnter

	ScanMS        int // scan period, 0 for default
	DebounceScans int // consecutive identical scans to accept, 0 for default
}

// scanner turns raw matrix probes into debounced key-down edges. One
// key at a time; ghosting from multi-press is not worth fighting on a
// 16-key pad.
type scanner struct {
	rows   []RowPin
	cols   []ColPin
	layout [][]rune

	need int
	cand rune // candidate from the last probe, 0 = none
	seen int
	down rune // currently accepted key, 0 = none
}

func newScanner(cfg Config) *scanner {
	need := cfg.DebounceScans
	if need <= 0 {
		need = defaultDebounce
	}
	return &scanner{rows: cfg.Rows, cols: cfg.Cols, layout: cfg.Layout, need: need}
}

// scan performs one matrix pass and reports a key-down edge once the
// same reading has been stable for the debounce window. Releases clear
// the held state silently.
func (s *scanner) scan() (rune, bool) {
	k := s.probe()
	if k != s.cand {
		s.cand, s.seen = k, 1
	} else if s.seen < s.need {
		s.seen++
	}
	if s.seen < s.need || s.cand == s.down {
		return 0, false
	}
	s.down = s.cand
	return s.down, s.down != 0
}

func (s *scanner) probe() rune {
	for ri, row := range s.rows {
		row.Set(false)
		for ci, col := range s.cols {
			if !col.Get() {
				row.Set(true)
				return s.layout[ri][ci]
			}
		}
		row.Set(true)
	}
	return 0
}

// Run scans the matrix until ctx is cancelled, publishing one key/event
// per debounced press plus a screen wake.
func Run(ctx context.Context, conn *bus.Connection, cfg Config) {
	sc := newScanner(cfg)

	scanMS := cfg.ScanMS
	if scanMS <= 0 {
		scanMS = defaultScanMS
	}
	cfgSub := conn.Subscribe(topicConfig)
	defer conn.Unsubscribe(cfgSub)

	interval := time.Duration(scanMS) * time.Millisecond
	t := time.NewTimer(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, open := <-cfgSub.Channel():
			if !open {
				return
			}
			if m, ok := msg.Payload.(map[string]any); ok {
				if v, ok := asInt(m["scan_ms"]); ok && v > 0 {
					interval = time.Duration(v) * time.Millisecond
				}
			}
		case <-t.C:
			if k, ok := sc.scan(); ok {
				conn.Publish(conn.NewMessage(topicKeyEvent,
					types.KeyEvent{Key: k, TS: timex.NowMs()}, false))
				conn.Publish(conn.NewMessage(topicScreenWake, types.ScreenWake{}, false))
			}
			t.Reset(interval)
		}
	}
}

// asInt accepts the numeric shapes a decoded config value can take.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
