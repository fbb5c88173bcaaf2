// services/console/console.go
//
// Mirrors bus traffic onto a serial sink, one line per message. Meant
// for a terminal attached to the debug UART; invaluable when the only
// other output is a 16x2 character display.
package console

import (
	"context"
	"io"

	"camtrigger-go/bus"
	"camtrigger-go/types"
	"camtrigger-go/x/strconvx"
)

var topicAll = bus.T("#")

// Run traces every bus message to w until ctx is cancelled.
func Run(ctx context.Context, conn *bus.Connection, w io.Writer) {
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
			w.Write([]byte(render(msg)))
		}
	}
}

// render formats without fmt; fmt's reflection is too heavy for the
// rp2040 build.
func render(msg *bus.Message) string {
	line := ""
	for i, tok := range msg.Topic {
		if i > 0 {
			line += "/"
		}
		switch t := tok.(type) {
		case string:
			line += t
		case int:
			line += strconvx.Itoa(t)
		default:
			line += "?"
		}
	}
	line += " " + renderPayload(msg.Payload)
	if msg.Retained {
		line += " [r]"
	}
	return line + "\r\n"
}

func renderPayload(p any) string {
	switch v := p.(type) {
	case nil:
		return "-"
	case string:
		return v
	case int:
		return strconvx.Itoa(v)
	case types.KeyEvent:
		return "key=" + string(v.Key)
	case types.DisplayLine:
		return "row=" + strconvx.Itoa(v.Row) + " " + v.Text
	case types.DisplayClear:
		return "clear"
	case types.ScreenWake:
		return "wake"
	case types.BatteryValue:
		s := "batt=" + strconvx.Itoa(int(v.Percent)) + "%"
		if v.Low {
			s += " LOW"
		}
		return s
	case types.ToneBurst:
		return "tone=" + strconvx.Itoa(int(v.FreqHz)) + "Hz/" +
			strconvx.Itoa(int(v.DurationMs)) + "ms"
	case types.TonePattern:
		return "pattern x" + strconvx.Itoa(int(v.Repeats))
	case types.TriggerState:
		return "mode=" + v.Mode +
			" " + strconvx.Itoa(v.PhotoCount) + "/" + strconvx.Itoa(v.MaxPhotos) +
			" T-" + strconvx.Itoa(v.CountdownS)
	}
	return "?"
}
