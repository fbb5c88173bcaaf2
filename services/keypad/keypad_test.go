package keypad

import (
	"context"
	"sync"
	"testing"
	"time"

	"camtrigger-go/bus"
	"camtrigger-go/types"
)

// fakeMatrix simulates a 2x2 pad. A column reads low only while its
// key's row is selected (strobed low). Locked because the bus-level
// test presses keys from the test goroutine while Run scans.
type fakeMatrix struct {
	mu       sync.Mutex
	selected int // row currently driven low, -1 = none
	heldRow  int
	heldCol  int // -1 = nothing held
}

type fakeRow struct {
	m  *fakeMatrix
	ri int
}

func (r *fakeRow) Set(level bool) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if !level {
		r.m.selected = r.ri
	} else if r.m.selected == r.ri {
		r.m.selected = -1
	}
}

type fakeCol struct {
	m  *fakeMatrix
	ci int
}

func (c *fakeCol) Get() bool {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if c.m.heldCol == c.ci && c.m.heldRow == c.m.selected {
		return false
	}
	return true
}

func newFakePad() (*fakeMatrix, Config) {
	m := &fakeMatrix{selected: -1, heldCol: -1}
	cfg := Config{
		Rows:   []RowPin{&fakeRow{m: m, ri: 0}, &fakeRow{m: m, ri: 1}},
		Cols:   []ColPin{&fakeCol{m: m, ci: 0}, &fakeCol{m: m, ci: 1}},
		Layout: [][]rune{{'1', '2'}, {'D', types.KeyEnter}},
	}
	return m, cfg
}

func (m *fakeMatrix) press(row, col int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.heldRow, m.heldCol = row, col
}

func (m *fakeMatrix) release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.heldCol = -1
}

func TestScannerDebouncedEdge(t *testing.T) {
	m, cfg := newFakePad()
	cfg.DebounceScans = 2
	sc := newScanner(cfg)

	if _, ok := sc.scan(); ok {
		t.Fatal("edge with nothing held")
	}

	m.press(0, 1)
	if _, ok := sc.scan(); ok {
		t.Fatal("accepted on the first scan")
	}
	k, ok := sc.scan()
	if !ok || k != '2' {
		t.Fatalf("scan = %q/%v, want '2'", k, ok)
	}
	// Holding produces no repeats.
	for i := 0; i < 10; i++ {
		if _, ok := sc.scan(); ok {
			t.Fatal("repeat while held")
		}
	}

	// Release (debounced, silent), then a second press edges again.
	m.release()
	sc.scan()
	sc.scan()
	m.press(1, 0)
	sc.scan()
	k, ok = sc.scan()
	if !ok || k != 'D' {
		t.Fatalf("scan = %q/%v, want 'D'", k, ok)
	}
}

func TestScannerBounceSuppressed(t *testing.T) {
	m, cfg := newFakePad()
	cfg.DebounceScans = 3
	sc := newScanner(cfg)

	// Contact chatter: held, open, held. The stability counter restarts
	// on every change, so no edge fires.
	m.press(1, 1)
	sc.scan()
	m.release()
	sc.scan()
	m.press(1, 1)
	sc.scan()
	if _, ok := sc.scan(); ok {
		t.Fatal("edge from a bouncing contact")
	}
	k, ok := sc.scan()
	if !ok || k != types.KeyEnter {
		t.Fatalf("scan = %q/%v, want enter", k, ok)
	}
}

func TestRunPublishesKeyAndWake(t *testing.T) {
	m, cfg := newFakePad()
	cfg.ScanMS = 2

	b := bus.NewBus(16)
	conn := b.NewConnection("test")
	keys := conn.Subscribe(bus.T("key", "event"))
	wake := conn.Subscribe(bus.T("screen", "wake"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Run(ctx, b.NewConnection("keypad"), cfg)

	time.Sleep(20 * time.Millisecond) // let the scanner settle on idle
	m.press(0, 0)

	select {
	case msg := <-keys.Channel():
		ev, ok := msg.Payload.(types.KeyEvent)
		if !ok || ev.Key != '1' {
			t.Fatalf("key event = %#v", msg.Payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no key event")
	}
	select {
	case <-wake.Channel():
	case <-time.After(2 * time.Second):
		t.Fatal("no screen wake")
	}

	// Held key stays a single event.
	select {
	case msg := <-keys.Channel():
		t.Fatalf("unexpected repeat: %#v", msg.Payload)
	case <-time.After(50 * time.Millisecond):
	}
}
