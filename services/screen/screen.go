// services/screen/screen.go
package screen

import (
	"context"
	"time"

	"camtrigger-go/bus"
)

var (
	topicWake   = bus.T("screen", "wake")
	topicConfig = bus.T("config", "screen")
)

const defaultTimeoutS = 30

// Backlight switches the display backlight.
type Backlight interface {
	Set(on bool)
}

// Run keeps the backlight on while activity flows and switches it off
// after the idle timeout. Every screen/wake re-arms the timer.
func Run(ctx context.Context, conn *bus.Connection, bl Backlight) {
	wakeSub := conn.Subscribe(topicWake)
	cfgSub := conn.Subscribe(topicConfig)
	defer conn.Unsubscribe(wakeSub)
	defer conn.Unsubscribe(cfgSub)

	timeout := time.Duration(defaultTimeoutS) * time.Second

	bl.Set(true)
	t := time.NewTimer(timeout)
	defer t.Stop()

	rearm := func() {
		if !t.Stop() {
			select {
			case <-t.C:
			default:
			}
		}
		t.Reset(timeout)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, open := <-wakeSub.Channel():
			if !open {
				return
			}
			bl.Set(true)
			rearm()
		case msg, open := <-cfgSub.Channel():
			if !open {
				return
			}
			if m, ok := msg.Payload.(map[string]any); ok {
				if v, ok := asInt(m["timeout_s"]); ok && v > 0 {
					timeout = time.Duration(v) * time.Second
					rearm()
				}
			}
		case <-t.C:
			bl.Set(false)
		}
	}
}

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
