//go:build !rp2040

package main

import (
	"bufio"
	"context"
	"os"

	"camtrigger-go/bus"
	"camtrigger-go/drivers/irled"
	"camtrigger-go/types"
	"camtrigger-go/x/strx"
	"camtrigger-go/x/timex"
)

// Host build: the full service stack against fake peripherals, driven
// from the terminal. Type digits and newline for enter; the display
// and bus trace go to stdout.

var deviceID = strx.Coalesce(os.Getenv("CAMTRIGGER_DEVICE"), "host")

type consoleDisplay struct{}

func (consoleDisplay) WriteLine(row int, text string) {
	println("lcd[" + string(rune('0'+row)) + "] " + text)
}

func (consoleDisplay) Clear() {
	println("lcd --------")
}

type consoleBacklight struct{ on bool }

func (b *consoleBacklight) Set(on bool) {
	if on != b.on {
		b.on = on
		if on {
			println("backlight on")
		} else {
			println("backlight off")
		}
	}
}

type consoleBeeper struct{}

func (consoleBeeper) Play(freqHz uint32, durationMs uint16) {
	// The trace console already logs the tone traffic.
}

type fixedADC struct{ mv int32 }

func (f fixedADC) ReadMillivolts() int32 { return f.mv }

// silentPin swallows the ~38kHz waveform; individual carrier edges are
// useless on a terminal.
type silentPin struct{}

func (silentPin) Set(bool) {}

func stdinKeys(ctx context.Context, b *bus.Bus) {
	conn := b.NewConnection("stdin")
	go func() {
		r := bufio.NewReader(os.Stdin)
		for ctx.Err() == nil {
			ch, _, err := r.ReadRune()
			if err != nil {
				return
			}
			if ch == '\r' {
				continue
			}
			if ch == 0x7f { // terminal backspace
				ch = types.KeyBackspace
			}
			conn.Publish(conn.NewMessage(bus.T("key", "event"),
				types.KeyEvent{Key: ch, TS: timex.NowMs()}, false))
			conn.Publish(conn.NewMessage(bus.T("screen", "wake"), types.ScreenWake{}, false))
		}
	}()
}

func openPeripherals() peripherals {
	return peripherals{
		display:    consoleDisplay{},
		backlight:  &consoleBacklight{},
		beeper:     consoleBeeper{},
		adc:        fixedADC{mv: 3900},
		irPin:      silentPin{},
		gate:       irled.NopGate{},
		trace:      os.Stdout,
		startInput: stdinKeys,
	}
}
