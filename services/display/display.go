// services/display/display.go
package display

import (
	"context"

	"camtrigger-go/bus"
	"camtrigger-go/types"
)

var topicAll = bus.T("display", "#")

// TextSink is a row-addressed character display. Rows are clipped by
// the sink itself; writers do not know the panel geometry.
type TextSink interface {
	WriteLine(row int, text string)
	Clear()
}

// Run forwards display/line and display/clear traffic to the sink
// until ctx is cancelled.
func Run(ctx context.Context, conn *bus.Connection, sink TextSink) {
	sub := conn.Subscribe(topicAll)
	defer conn.Unsubscribe(sub)

	sink.Clear()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, open := <-sub.Channel():
			if !open {
				return
			}
			switch p := msg.Payload.(type) {
			case types.DisplayLine:
				sink.WriteLine(p.Row, p.Text)
			case types.DisplayClear:
				sink.Clear()
			}
		}
	}
}
